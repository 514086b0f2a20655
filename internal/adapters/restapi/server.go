package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"eth_rpc_proxy/internal/config"
	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/internal/metrics"
	"eth_rpc_proxy/pkg/ethproxy"
)

// Route paths.
const (
	PathGetLatestBlockNumber                = "/getLatestBlockNumber"
	PathGetBlockByNumber                    = "/getBlockByNumber"
	PathGetTransactionByBlockNumberAndIndex = "/getTransactionByBlockNumberAndIndex"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logger.AppLogger
}

// NewServer creates a new instance of the REST API server.
// m may be nil, in which case no metrics are recorded or exposed.
func NewServer(proxy ethproxy.Proxy, appLogger logger.AppLogger, cfg *config.Config, m *metrics.Metrics) (*Server, error) {
	if proxy == nil {
		return nil, errors.New("proxy cannot be nil for Server")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for Server")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil for Server")
	}

	h, err := NewHTTPHandler(proxy, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handler: %w", err)
	}

	smux := setupRouter(h, cfg.Metrics, m)

	server := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           instrument(smux, appLogger, m),
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.Server.IdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.Server.ReadHeaderTimeoutSeconds) * time.Second,
	}

	return &Server{
		httpServer: server,
		logger:     appLogger,
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the HTTP server. It returns nil after a graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server ListenAndServe error", "error", err)
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	s.logger.Info("HTTP server stopped gracefully.")
	return nil
}

// setupRouter creates a new ServeMux and registers all API handlers.
func setupRouter(h *HTTPHandler, metricsCfg config.MetricsConfig, m *metrics.Metrics) *http.ServeMux {
	smux := http.NewServeMux()

	smux.HandleFunc(PathGetLatestBlockNumber, h.HandleGetLatestBlockNumber)
	smux.HandleFunc(PathGetBlockByNumber, h.HandleGetBlockByNumber)
	smux.HandleFunc(PathGetTransactionByBlockNumberAndIndex, h.HandleGetTransactionByBlockNumberAndIndex)
	smux.HandleFunc("/", h.HandleNotFound)

	h.logger.Info("Available Endpoints:")
	h.logger.Info("  GET  " + PathGetLatestBlockNumber)
	h.logger.Info("  POST " + PathGetBlockByNumber + "  (Body: {'blockNumber':'0x...','showFullTransaction':false})")
	h.logger.Info("  POST " + PathGetTransactionByBlockNumberAndIndex + "  (Body: {'blockNumber':'0x...','index':'0x...'})")

	if metricsCfg.Enabled && m != nil {
		smux.Handle("GET "+metricsCfg.Path, m.Handler())
		h.logger.Info("  GET  " + metricsCfg.Path)
	}

	return smux
}
