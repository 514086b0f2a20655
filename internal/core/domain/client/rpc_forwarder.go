// Package client defines the port through which the proxy reaches the JSON-RPC provider.
//
//go:generate mockery --name=RPCForwarder --dir=. --output=../../application/mocks/mock_client --outpkg=mock_client --filename=rpc_forwarder.go
package client

import (
	"context"
	"encoding/json"

	"eth_rpc_proxy/internal/core/domain"
)

// RPCForwarder sends one JSON-RPC request upstream and returns the raw response body.
type RPCForwarder interface {
	// Forward posts req to the provider. The returned payload is the provider's
	// JSON body, unmodified, including JSON-RPC error objects.
	Forward(ctx context.Context, req domain.RPCRequest) (json.RawMessage, error)
}
