package restapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/internal/metrics"
)

// HeaderRequestID carries the request identifier in both directions.
const HeaderRequestID = "X-Request-ID"

// maxRequestBodyBytes caps POST bodies.
const maxRequestBodyBytes = 1 << 20

type loggerKey struct{}

func withLogger(ctx context.Context, l logger.AppLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) logger.AppLogger {
	l, _ := ctx.Value(loggerKey{}).(logger.AppLogger)
	return l
}

// statusRecorder remembers the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// instrument assigns a request id, attaches a request-scoped logger, limits the
// body size, recovers panics and records access logs and metrics.
func instrument(next http.Handler, appLogger logger.AppLogger, m *metrics.Metrics) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)

		requestLogger := appLogger.With("method", r.Method, "path", r.URL.Path, "request_id", requestID)
		r = r.WithContext(withLogger(r.Context(), requestLogger))
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

		rec := &statusRecorder{ResponseWriter: w}
		defer func() {
			if p := recover(); p != nil {
				requestLogger.Error("Panic while handling request", "panic", p)
				if rec.status == 0 {
					respondWithError(rec, http.StatusInternalServerError,
						http.StatusText(http.StatusInternalServerError), requestLogger)
				}
			}

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			elapsed := time.Since(start)
			m.ObserveRequest(route, status, elapsed)
			requestLogger.Info("Request handled", "status", status, "duration_ms", elapsed.Milliseconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
