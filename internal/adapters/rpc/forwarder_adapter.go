// Package rpc implements the upstream forwarder that posts JSON-RPC requests to the provider over HTTP.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"eth_rpc_proxy/internal/core/domain"
	"eth_rpc_proxy/internal/core/domain/client"
	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/internal/metrics"
)

// ForwarderAdapter implements client.RPCForwarder with a single HTTP POST per call.
type ForwarderAdapter struct {
	rpcURL     string
	httpClient *http.Client
	logger     logger.AppLogger
	metrics    *metrics.Metrics
}

// Compile-time check to ensure ForwarderAdapter implements client.RPCForwarder
var _ client.RPCForwarder = (*ForwarderAdapter)(nil)

// NewForwarderAdapter creates a new forwarder. A nil httpClient falls back to
// http.DefaultClient; m may be nil to disable instrumentation.
func NewForwarderAdapter(
	rpcURL string,
	httpClient *http.Client,
	appLogger logger.AppLogger,
	m *metrics.Metrics,
) *ForwarderAdapter {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if appLogger == nil {
		appLogger = logger.NewDiscardLogger()
	}
	return &ForwarderAdapter{
		rpcURL:     rpcURL,
		httpClient: httpClient,
		logger:     appLogger.With("component", "ForwarderAdapter"),
		metrics:    m,
	}
}

// Forward posts req to the provider and returns its JSON body unchanged.
// Provider-side errors, JSON-RPC error objects and non-2xx statuses with a JSON
// body are relayed, not turned into Go errors.
func (a *ForwarderAdapter) Forward(ctx context.Context, req domain.RPCRequest) (json.RawMessage, error) {
	start := time.Now()
	body, err := a.doRPC(ctx, req)
	a.metrics.ObserveUpstream(req.Method, outcomeOf(err), time.Since(start))
	if err != nil {
		a.logger.Error("Upstream call failed", "rpc_method", req.Method, "error", err)
		return nil, err
	}
	return body, nil
}

func (a *ForwarderAdapter) doRPC(ctx context.Context, req domain.RPCRequest) (json.RawMessage, error) {
	jsonReqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RPC request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.rpcURL, bytes.NewReader(jsonReqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create HTTP request: %w", domain.ErrUpstreamUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError("failed to execute HTTP request", err)
	}
	defer func() {
		if errClose := httpResp.Body.Close(); errClose != nil {
			a.logger.Warn("Failed to close upstream response body", "rpc_method", req.Method, "error", errClose)
		}
	}()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, classifyTransportError("failed to read response body", err)
	}

	if !json.Valid(bodyBytes) {
		return nil, fmt.Errorf("%w: HTTP status %s, body: %.256s", domain.ErrUpstreamMalformed, httpResp.Status, bodyBytes)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		a.logger.Warn("Relaying non-2xx upstream response",
			"rpc_method", req.Method,
			"http_status", httpResp.StatusCode,
		)
	}

	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(bodyBytes, &rpcResp); err == nil && rpcResp.Error != nil {
		a.logger.Info("Relaying upstream JSON-RPC error",
			"rpc_method", req.Method,
			"rpc_error_code", rpcResp.Error.Code,
			"rpc_error_message", rpcResp.Error.Message,
		)
	}

	return json.RawMessage(bodyBytes), nil
}

func classifyTransportError(msg string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %s: %w", domain.ErrUpstreamTimeout, msg, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrUpstreamUnavailable, msg, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, domain.ErrUpstreamMalformed):
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeUnavailable
	}
}
