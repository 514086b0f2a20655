package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"eth_rpc_proxy/internal/adapters/restapi"
	"eth_rpc_proxy/internal/adapters/rpc"
	"eth_rpc_proxy/internal/config"
	"eth_rpc_proxy/internal/core/application"
	"eth_rpc_proxy/internal/logger"
	"eth_rpc_proxy/internal/metrics"
)

const shutdownTimeout = 15 * time.Second

// main is entry point of application.
func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configFile string
		envFile    string
	)

	cmd := &cobra.Command{
		Use:   "rpcproxy",
		Short: "HTTP to Ethereum JSON-RPC proxy",
		Long: `Forward block and transaction lookups to an Ethereum JSON-RPC provider.

The provider URL is <upstream.base_url>/<PROJECT_ID>. PROJECT_ID is read from
the environment, a .env file or upstream.project_id in the YAML config.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "Path to YAML configuration file (default: "+config.DefaultConfigFilePath+")")
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to dotenv file (default: "+config.DefaultEnvFilePath+")")

	return cmd
}

func run(parent context.Context, cfg *config.Config) error {
	if parent == nil {
		parent = context.Background()
	}

	appLogger, err := logger.NewAppLogger(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	appLogger.Info("Configuration loaded",
		"port", cfg.Server.Port,
		"upstream_base_url", cfg.Upstream.BaseURL,
		"metrics_enabled", cfg.Metrics.Enabled,
	)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.Upstream.ClientTimeoutSeconds) * time.Second}
	forwarder := rpc.NewForwarderAdapter(cfg.Upstream.URL(), httpClient, appLogger, m)

	proxyService, err := application.NewProxyService(forwarder, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create proxy service: %w", err)
	}

	apiServer, err := restapi.NewServer(proxyService, appLogger, cfg, m)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if err := serve(parent, appLogger, apiServer); err != nil {
		appLogger.Error("Shutting down due to error", "error", err)
		return err
	}
	appLogger.Info("Application shut down gracefully.")
	return nil
}

// serve runs the API server until it fails or the process receives SIGINT/SIGTERM.
func serve(parent context.Context, appLogger logger.AppLogger, apiServer *restapi.Server) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			appLogger.Info("Shutting down due to OS signal...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return apiServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
