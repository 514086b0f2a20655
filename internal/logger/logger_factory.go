package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"eth_rpc_proxy/internal/config"
)

// NewAppLogger creates an AppLogger writing to stdout with the configured level and format.
// The underlying slog logger also becomes the process default.
func NewAppLogger(cfg config.LoggerConfig) (AppLogger, error) {
	slogLogger, err := newSlogLogger(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slogLogger)

	return NewSlogAdapter(slogLogger), nil
}

// NewDiscardLogger returns an AppLogger that drops every record.
func NewDiscardLogger() AppLogger {
	return NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSlogLogger(cfg config.LoggerConfig, out io.Writer) (*slog.Logger, error) {
	level, err := toSlogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler, err := toSlogHandler(cfg.Format, out, opts)
	if err != nil {
		return nil, fmt.Errorf("logger setup failed: %w", err)
	}

	return slog.New(handler), nil
}

// toSlogLevel converts a config.LogLevel to a slog.Level.
func toSlogLevel(level config.LogLevel) (slog.Level, error) {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug, nil
	case config.LogLevelInfo:
		return slog.LevelInfo, nil
	case config.LogLevelWarn:
		return slog.LevelWarn, nil
	case config.LogLevelError:
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported logger level: %s", level)
	}
}

// toSlogHandler creates a slog.Handler based on the config.LogFormat.
func toSlogHandler(format config.LogFormat, out io.Writer, opts *slog.HandlerOptions) (slog.Handler, error) {
	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(out, opts), nil
	case config.LogFormatText:
		return slog.NewTextHandler(out, opts), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
