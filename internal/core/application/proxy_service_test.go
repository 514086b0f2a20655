package application_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eth_rpc_proxy/internal/core/application"
	"eth_rpc_proxy/internal/core/application/mocks/mock_client"
	"eth_rpc_proxy/internal/core/domain"
	applogger "eth_rpc_proxy/internal/logger"
)

// paramsJSON returns a matcher on the marshalled params of the forwarded request.
func paramsJSON(t *testing.T, method, want string) any {
	t.Helper()
	return mock.MatchedBy(func(req domain.RPCRequest) bool {
		b, err := json.Marshal(req.Params)
		if err != nil {
			return false
		}
		return req.Method == method && req.JSONRPC == "2.0" && req.ID == 1 && string(b) == want
	})
}

func TestProxyService_LatestBlockNumber(t *testing.T) {
	service, fwd := setupService(t)
	ctx := context.Background()
	upstream := json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":"0x12a05f200"}`)

	fwd.On("Forward", ctx, paramsJSON(t, domain.MethodBlockNumber, `[]`)).Return(upstream, nil).Once()

	got, err := service.LatestBlockNumber(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(upstream), string(got))
}

func TestProxyService_BlockByNumber(t *testing.T) {
	tests := []struct {
		name       string
		number     string
		full       json.RawMessage
		wantParams string
	}{
		{name: "Default showFullTransaction", number: `"0x1b4"`, wantParams: `["0x1b4",false]`},
		{name: "Explicit true", number: `"0x1b4"`, full: json.RawMessage(`true`), wantParams: `["0x1b4",true]`},
		{name: "Integer block number", number: `436`, wantParams: `["436",false]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, fwd := setupService(t)
			ctx := context.Background()

			fwd.On("Forward", ctx, paramsJSON(t, domain.MethodGetBlockByNumber, tt.wantParams)).
				Return(json.RawMessage(`{"result":null}`), nil).Once()

			got, err := service.BlockByNumber(ctx, json.RawMessage(tt.number), tt.full)
			require.NoError(t, err)
			assert.JSONEq(t, `{"result":null}`, string(got))
		})
	}
}

func TestProxyService_BlockByNumber_Missing(t *testing.T) {
	service, fwd := setupService(t)

	_, err := service.BlockByNumber(context.Background(), nil, nil)
	assert.ErrorIs(t, err, domain.ErrMissingField)
	fwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

func TestProxyService_BlockByNumber_InvalidHex(t *testing.T) {
	service, fwd := setupService(t)

	_, err := service.BlockByNumber(context.Background(), json.RawMessage(`"latest"`), nil)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, domain.DefaultFieldLabel, vErr.Field)
	fwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
}

func TestProxyService_TransactionByBlockNumberAndIndex(t *testing.T) {
	service, fwd := setupService(t)
	ctx := context.Background()
	upstream := json.RawMessage(`{"jsonrpc":"2.0","id":1,"result":{"hash":"0xabc"}}`)

	fwd.On("Forward", ctx, paramsJSON(t, domain.MethodGetTransactionByBlockNumberAndIndex, `["0x1b4","0x0"]`)).
		Return(upstream, nil).Once()

	got, err := service.TransactionByBlockNumberAndIndex(ctx, json.RawMessage(`"0x1b4"`), json.RawMessage(`"0x0"`))
	require.NoError(t, err)
	assert.JSONEq(t, string(upstream), string(got))
}

func TestProxyService_TransactionByBlockNumberAndIndex_ValidationOrder(t *testing.T) {
	tests := []struct {
		name      string
		number    string
		index     string
		wantField string
	}{
		{name: "Block number checked first", number: `"xyz"`, index: `"zz"`, wantField: domain.FieldLabelBlockNumber},
		{name: "Block number only", number: `"xyz"`, index: `"0x0"`, wantField: domain.FieldLabelBlockNumber},
		{name: "Index", number: `"0x1b4"`, index: `"0xg"`, wantField: domain.FieldLabelIndex},
		{name: "Null index", number: `"0x1b4"`, index: `null`, wantField: domain.FieldLabelIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, fwd := setupService(t)

			_, err := service.TransactionByBlockNumberAndIndex(
				context.Background(), json.RawMessage(tt.number), json.RawMessage(tt.index),
			)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Contains(t, vErr.Message, tt.wantField)
			fwd.AssertNotCalled(t, "Forward", mock.Anything, mock.Anything)
		})
	}
}

func TestProxyService_TransactionByBlockNumberAndIndex_Missing(t *testing.T) {
	service, _ := setupService(t)
	ctx := context.Background()

	_, err := service.TransactionByBlockNumberAndIndex(ctx, json.RawMessage(`"0x1"`), nil)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	// A missing index wins over an invalid block number.
	_, err = service.TransactionByBlockNumberAndIndex(ctx, json.RawMessage(`"xyz"`), nil)
	assert.ErrorIs(t, err, domain.ErrMissingField)

	_, err = service.TransactionByBlockNumberAndIndex(ctx, nil, json.RawMessage(`"0x0"`))
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestProxyService_ForwardError(t *testing.T) {
	service, fwd := setupService(t)
	ctx := context.Background()

	fwd.On("Forward", ctx, mock.Anything).Return(nil, domain.ErrUpstreamTimeout).Once()

	_, err := service.LatestBlockNumber(ctx)
	assert.True(t, errors.Is(err, domain.ErrUpstreamTimeout))
	assert.Contains(t, err.Error(), domain.MethodBlockNumber)
}

func TestNewProxyService_NilDependencies(t *testing.T) {
	_, err := application.NewProxyService(nil, applogger.NewDiscardLogger())
	assert.Error(t, err)

	_, err = application.NewProxyService(mock_client.NewRPCForwarder(t), nil)
	assert.Error(t, err)
}

func setupService(t *testing.T) (*application.ProxyService, *mock_client.RPCForwarder) {
	t.Helper()
	fwd := mock_client.NewRPCForwarder(t)

	service, err := application.NewProxyService(fwd, applogger.NewDiscardLogger())
	if err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	return service, fwd
}
