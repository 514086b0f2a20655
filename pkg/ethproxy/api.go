// Package ethproxy defines the public API contract of the JSON-RPC proxy service.
package ethproxy

import (
	"context"
	"encoding/json"
)

// Proxy validates caller input and relays the provider's JSON response verbatim.
type Proxy interface {
	// LatestBlockNumber forwards eth_blockNumber with no parameters.
	LatestBlockNumber(ctx context.Context) (data json.RawMessage, err error)

	// BlockByNumber forwards eth_getBlockByNumber after checking the block number is hexadecimal.
	// showFullTransaction is nil when the caller omitted it.
	BlockByNumber(ctx context.Context, blockNumber, showFullTransaction json.RawMessage) (data json.RawMessage, err error)

	// TransactionByBlockNumberAndIndex forwards eth_getTransactionByBlockNumberAndIndex
	// after checking the block number and then the index are hexadecimal.
	TransactionByBlockNumberAndIndex(ctx context.Context, blockNumber, index json.RawMessage) (data json.RawMessage, err error)
}
