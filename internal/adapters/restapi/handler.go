package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"eth_rpc_proxy/internal/core/domain"
	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/pkg/ethproxy"
)

// HTTPHandler handles incoming HTTP requests for the proxy routes.
type HTTPHandler struct {
	proxy  ethproxy.Proxy
	logger logger.AppLogger
}

// NewHTTPHandler creates a new handler with the necessary service dependency.
func NewHTTPHandler(proxy ethproxy.Proxy, appLogger logger.AppLogger) (*HTTPHandler, error) {
	if proxy == nil {
		return nil, errors.New("proxy cannot be nil for HTTPHandler")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for HTTPHandler")
	}
	return &HTTPHandler{
		proxy:  proxy,
		logger: appLogger,
	}, nil
}

// HandleGetLatestBlockNumber handles requests to GET /getLatestBlockNumber.
// Any request body is ignored.
func (h *HTTPHandler) HandleGetLatestBlockNumber(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)

	if !allowMethod(w, r, http.MethodGet, requestLogger) {
		return
	}

	data, err := h.proxy.LatestBlockNumber(r.Context())
	if err != nil {
		respondWithDomainError(w, err, requestLogger)
		return
	}

	respondWithData(w, data, requestLogger)
}

// HandleGetBlockByNumber handles requests to POST /getBlockByNumber.
func (h *HTTPHandler) HandleGetBlockByNumber(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)

	if !allowMethod(w, r, http.MethodPost, requestLogger) {
		return
	}

	body, err := decodeRequestBody(r, requestLogger)
	if err != nil {
		respondWithDomainError(w, err, requestLogger)
		return
	}

	data, err := h.proxy.BlockByNumber(r.Context(), body.field("blockNumber"), body.field("showFullTransaction"))
	if err != nil {
		respondWithDomainError(w, err, requestLogger)
		return
	}

	respondWithData(w, data, requestLogger)
}

// HandleGetTransactionByBlockNumberAndIndex handles requests to POST /getTransactionByBlockNumberAndIndex.
func (h *HTTPHandler) HandleGetTransactionByBlockNumberAndIndex(w http.ResponseWriter, r *http.Request) {
	requestLogger := h.requestLogger(r)

	if !allowMethod(w, r, http.MethodPost, requestLogger) {
		return
	}

	body, err := decodeRequestBody(r, requestLogger)
	if err != nil {
		respondWithDomainError(w, err, requestLogger)
		return
	}

	data, err := h.proxy.TransactionByBlockNumberAndIndex(r.Context(), body.field("blockNumber"), body.field("index"))
	if err != nil {
		respondWithDomainError(w, err, requestLogger)
		return
	}

	respondWithData(w, data, requestLogger)
}

// HandleNotFound answers every unregistered path.
func (h *HTTPHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	respondWithError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound), h.requestLogger(r))
}

func (h *HTTPHandler) requestLogger(r *http.Request) logger.AppLogger {
	if l := loggerFromContext(r.Context()); l != nil {
		return l
	}
	return h.logger.With("method", r.Method, "path", r.URL.Path)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string, l logger.AppLogger) bool {
	if r.Method == method {
		return true
	}
	l.Warn("Method not allowed", "allowed", method)
	w.Header().Set("Allow", method)
	respondWithError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), l)
	return false
}

// decodeRequestBody reads a JSON object body. Anything else is ErrInvalidRequestBody.
func decodeRequestBody(r *http.Request, l logger.AppLogger) (requestBody, error) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			l.Warn("Failed to close request body", "error", err)
		}
	}()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequestBody, err)
	}

	var body requestBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequestBody, err)
	}
	if body == nil {
		// Literal null.
		return nil, domain.ErrInvalidRequestBody
	}
	return body, nil
}

// statusForError maps a domain error to the HTTP status and envelope message.
func statusForError(err error) (int, string) {
	var vErr *domain.ValidationError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, http.StatusText(http.StatusRequestEntityTooLarge)
	case errors.As(err, &vErr):
		return vErr.StatusCode, vErr.Message
	case errors.Is(err, domain.ErrMissingField), errors.Is(err, domain.ErrInvalidRequestBody):
		return http.StatusBadRequest, MessageBadRequest
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout)
	case errors.Is(err, domain.ErrUpstreamUnavailable), errors.Is(err, domain.ErrUpstreamMalformed):
		return http.StatusBadGateway, http.StatusText(http.StatusBadGateway)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

func respondWithDomainError(w http.ResponseWriter, err error, l logger.AppLogger) {
	code, message := statusForError(err)
	if code >= http.StatusInternalServerError {
		l.Error("Request failed", "error", err)
	}
	respondWithError(w, code, message, l)
}

// respondWithData sends the success envelope around the provider payload.
func respondWithData(w http.ResponseWriter, data json.RawMessage, l logger.AppLogger) {
	respondWithJSON(w, http.StatusOK, SuccessResponse{
		Status: StatusBody{Code: http.StatusOK, Message: MessageSuccess},
		Data:   data,
	}, l)
}

// respondWithError sends the error envelope with the given code and message.
func respondWithError(w http.ResponseWriter, code int, message string, l logger.AppLogger) {
	if l == nil {
		l = logger.NewSlogAdapter(slog.Default())
	}
	l.Warn("Responding with error", "http_code", code, "message", message)
	respondWithJSON(w, code, ErrorResponse{Status: StatusBody{Code: code, Message: message}}, l)
}

// respondWithJSON marshals the given payload into JSON and writes it to the response writer.
func respondWithJSON(w http.ResponseWriter, code int, payload any, l logger.AppLogger) {
	response, err := json.Marshal(payload)
	if err != nil {
		l.Error("Error marshaling JSON response",
			"error", err.Error(),
			"payload_type", fmt.Sprintf("%T", payload),
		)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":{"code":500,"message":"Internal Server Error"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	n, writeErr := w.Write(response)
	if writeErr != nil {
		l.Error("Error writing response body", "error", writeErr, "bytes_written", n)
	}
}
