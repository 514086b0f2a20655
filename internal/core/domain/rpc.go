package domain

// JSON-RPC methods forwarded by the proxy.
const (
	MethodBlockNumber                         = "eth_blockNumber"
	MethodGetBlockByNumber                    = "eth_getBlockByNumber"
	MethodGetTransactionByBlockNumberAndIndex = "eth_getTransactionByBlockNumberAndIndex"
)

// JSONRPCVersion is the version tag sent on every upstream request.
const JSONRPCVersion = "2.0"

// DefaultRequestID is the id sent on every upstream request.
const DefaultRequestID = 1

// RPCRequest is a JSON-RPC 2.0 request envelope.
type RPCRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

// NewRPCRequest builds an envelope for method. Nil params are sent as an empty list.
func NewRPCRequest(method string, params ...any) RPCRequest {
	if params == nil {
		params = []any{}
	}
	return RPCRequest{
		JSONRPC: JSONRPCVersion,
		Method:  method,
		Params:  params,
		ID:      DefaultRequestID,
	}
}
