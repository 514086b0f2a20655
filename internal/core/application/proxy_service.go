// Package application contains the request validation and forwarding logic of the proxy.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"eth_rpc_proxy/internal/core/domain"
	"eth_rpc_proxy/internal/core/domain/client"
	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/pkg/ethproxy"
)

const (
	fieldBlockNumber = "blockNumber"
	fieldIndex       = "index"
)

var jsonFalse = json.RawMessage("false")

// ProxyService implements the ethproxy.Proxy interface.
type ProxyService struct {
	forwarder client.RPCForwarder
	logger    logger.AppLogger
}

// Compile-time check to ensure ProxyService implements ethproxy.Proxy
var _ ethproxy.Proxy = (*ProxyService)(nil)

// NewProxyService creates a new instance of ProxyService.
func NewProxyService(forwarder client.RPCForwarder, appLogger logger.AppLogger) (*ProxyService, error) {
	if appLogger == nil {
		return nil, errors.New("NewProxyService: appLogger is nil")
	}
	if forwarder == nil {
		appLogger.Error("NewProxyService: forwarder is nil")
		return nil, errors.New("NewProxyService: forwarder is nil")
	}
	return &ProxyService{
		forwarder: forwarder,
		logger:    appLogger.With("component", "ProxyService"),
	}, nil
}

// LatestBlockNumber forwards eth_blockNumber. There is nothing to validate.
func (s *ProxyService) LatestBlockNumber(ctx context.Context) (json.RawMessage, error) {
	return s.forward(ctx, domain.NewRPCRequest(domain.MethodBlockNumber))
}

// BlockByNumber forwards eth_getBlockByNumber with [blockNumber, showFullTransaction].
func (s *ProxyService) BlockByNumber(
	ctx context.Context,
	blockNumber, showFullTransaction json.RawMessage,
) (json.RawMessage, error) {
	if blockNumber == nil {
		return nil, domain.MissingFieldError(fieldBlockNumber)
	}
	if showFullTransaction == nil {
		showFullTransaction = jsonFalse
	}

	number := domain.ParamString(blockNumber)
	if err := domain.ValidateHex(number, ""); err != nil {
		s.logger.Debug("Rejected block number", "value", number, "error", err)
		return nil, err
	}

	return s.forward(ctx, domain.NewRPCRequest(domain.MethodGetBlockByNumber, number, showFullTransaction))
}

// TransactionByBlockNumberAndIndex forwards eth_getTransactionByBlockNumberAndIndex
// with [blockNumber, index]. The block number is checked before the index.
func (s *ProxyService) TransactionByBlockNumberAndIndex(
	ctx context.Context,
	blockNumber, index json.RawMessage,
) (json.RawMessage, error) {
	if blockNumber == nil {
		return nil, domain.MissingFieldError(fieldBlockNumber)
	}
	if index == nil {
		return nil, domain.MissingFieldError(fieldIndex)
	}

	number := domain.ParamString(blockNumber)
	idx := domain.ParamString(index)

	if err := domain.ValidateHex(number, domain.FieldLabelBlockNumber); err != nil {
		s.logger.Debug("Rejected block number", "value", number, "error", err)
		return nil, err
	}
	if err := domain.ValidateHex(idx, domain.FieldLabelIndex); err != nil {
		s.logger.Debug("Rejected transaction index", "value", idx, "error", err)
		return nil, err
	}

	return s.forward(ctx, domain.NewRPCRequest(domain.MethodGetTransactionByBlockNumberAndIndex, number, idx))
}

func (s *ProxyService) forward(ctx context.Context, req domain.RPCRequest) (json.RawMessage, error) {
	data, err := s.forwarder.Forward(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("forwarding %s: %w", req.Method, err)
	}
	return data, nil
}
