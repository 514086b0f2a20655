package rpc_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eth_rpc_proxy/internal/adapters/rpc"
	"eth_rpc_proxy/internal/core/domain"
	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/internal/metrics"
)

func newUpstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func assertUpstreamOutcome(t *testing.T, m *metrics.Metrics, method, outcome string) {
	t.Helper()
	expected := `
# HELP eth_rpc_proxy_upstream_requests_total JSON-RPC calls sent to the provider by method and outcome.
# TYPE eth_rpc_proxy_upstream_requests_total counter
eth_rpc_proxy_upstream_requests_total{method="` + method + `",outcome="` + outcome + `"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "eth_rpc_proxy_upstream_requests_total"))
}

func TestForwarderAdapter_Forward(t *testing.T) {
	var gotBody []byte
	var gotContentType, gotPath, gotMethod string
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x10d4f"}`))
	})

	m := metrics.New()
	fwd := rpc.NewForwarderAdapter(srv.URL+"/v3/project", srv.Client(), logger.NewDiscardLogger(), m)

	got, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodBlockNumber))
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "/v3/project", gotPath)
	assert.JSONEq(t, `{"jsonrpc":"2.0","method":"eth_blockNumber","params":[],"id":1}`, string(gotBody))
	assert.Equal(t, `{"jsonrpc":"2.0","id":1,"result":"0x10d4f"}`, string(got))
	assertUpstreamOutcome(t, m, domain.MethodBlockNumber, metrics.OutcomeOK)
}

func TestForwarderAdapter_RelaysUpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "JSON-RPC error object",
			status: http.StatusOK,
			body:   `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"invalid argument 0"}}`,
		},
		{
			name:   "Non-2xx with JSON body",
			status: http.StatusUnauthorized,
			body:   `{"jsonrpc":"2.0","id":1,"error":{"code":-32002,"message":"invalid project id"}}`,
		},
		{
			name:   "Null result",
			status: http.StatusOK,
			body:   `{"jsonrpc":"2.0","id":1,"result":null}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			fwd := rpc.NewForwarderAdapter(srv.URL, srv.Client(), nil, nil)

			got, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodGetBlockByNumber, "0x1", false))
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(got))
		})
	}
}

func TestForwarderAdapter_MalformedBody(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	})
	m := metrics.New()
	fwd := rpc.NewForwarderAdapter(srv.URL, srv.Client(), logger.NewDiscardLogger(), m)

	_, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodBlockNumber))
	require.ErrorIs(t, err, domain.ErrUpstreamMalformed)
	assert.Contains(t, err.Error(), "502")
	assertUpstreamOutcome(t, m, domain.MethodBlockNumber, metrics.OutcomeMalformed)
}

func TestForwarderAdapter_EmptyBody(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	fwd := rpc.NewForwarderAdapter(srv.URL, srv.Client(), nil, nil)

	_, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodBlockNumber))
	assert.ErrorIs(t, err, domain.ErrUpstreamMalformed)
}

func TestForwarderAdapter_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	httpClient := srv.Client()
	httpClient.Timeout = 50 * time.Millisecond

	m := metrics.New()
	fwd := rpc.NewForwarderAdapter(srv.URL, httpClient, logger.NewDiscardLogger(), m)

	_, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodBlockNumber))
	require.ErrorIs(t, err, domain.ErrUpstreamTimeout)
	assertUpstreamOutcome(t, m, domain.MethodBlockNumber, metrics.OutcomeTimeout)
}

func TestForwarderAdapter_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m := metrics.New()
	fwd := rpc.NewForwarderAdapter(url, nil, logger.NewDiscardLogger(), m)

	_, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodBlockNumber))
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assertUpstreamOutcome(t, m, domain.MethodBlockNumber, metrics.OutcomeUnavailable)
}

func TestForwarderAdapter_InvalidURL(t *testing.T) {
	fwd := rpc.NewForwarderAdapter("://bad", nil, nil, nil)

	_, err := fwd.Forward(context.Background(), domain.NewRPCRequest(domain.MethodBlockNumber))
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
