package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Default config values.
const (
	DefaultServerPort                     = ":8080"
	DefaultLoggerLevel                    = LogLevelInfo
	DefaultLoggerFormat                   = LogFormatJSON
	DefaultUpstreamBaseURL                = "https://mainnet.infura.io/v3"
	DefaultServerReadTimeoutSeconds       = 30
	DefaultServerWriteTimeoutSeconds      = 30
	DefaultServerIdleTimeoutSeconds       = 60
	DefaultServerReadHeaderTimeoutSeconds = 30
	DefaultUpstreamClientTimeoutSeconds   = 20
	DefaultMetricsPath                    = "/metrics"
	DefaultConfigFilePath                 = "config.yml"
)

// Environment variables that override values from the YAML file.
const (
	EnvProjectID       = "PROJECT_ID"
	EnvUpstreamBaseURL = "UPSTREAM_BASE_URL"
)

// LogLevel defines the type for logger levels.
type LogLevel string

// LogFormat defines the type for logger output formats.
type LogFormat string

// Defines the supported logger levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Defines the supported logger output formats.
const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logger   LoggerConfig   `yaml:"logger"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds all configuration related to the HTTP server.
type ServerConfig struct {
	Port                     string `yaml:"port"`
	ReadTimeoutSeconds       int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds      int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds       int    `yaml:"idle_timeout_seconds"`
	ReadHeaderTimeoutSeconds int    `yaml:"read_header_timeout_seconds"`
}

// LoggerConfig holds all configuration related to logging.
type LoggerConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// UpstreamConfig holds all configuration related to the JSON-RPC provider.
type UpstreamConfig struct {
	BaseURL              string `yaml:"base_url"`
	ProjectID            string `yaml:"project_id"`
	ClientTimeoutSeconds int    `yaml:"client_timeout_seconds"`
}

// MetricsConfig holds configuration for the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// URL returns the provider endpoint, base URL joined with the project identifier.
func (u UpstreamConfig) URL() string {
	return strings.TrimRight(u.BaseURL, "/") + "/" + u.ProjectID
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" || (strings.HasPrefix(c.Server.Port, ":") && len(c.Server.Port) == 1) {
		return errors.New("server port (config key: server.port) cannot be empty or just ':'")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(string(c.Logger.Level))] {
		return fmt.Errorf(
			"invalid logger level (config key: logger.level): '%s', must be one of: debug, info, warn, error",
			c.Logger.Level,
		)
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(string(c.Logger.Format))] {
		return fmt.Errorf(
			"invalid logger format (config key: logger.format): '%s', must be one of: json, text",
			c.Logger.Format,
		)
	}

	if c.Upstream.BaseURL == "" {
		return errors.New("upstream base URL (config key: upstream.base_url) cannot be empty")
	}
	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid upstream base URL (config key: upstream.base_url): %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid upstream base URL scheme %q (config key: upstream.base_url), expected http or https", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("upstream base URL (config key: upstream.base_url) is missing a host")
	}
	if strings.TrimSpace(c.Upstream.ProjectID) == "" {
		return fmt.Errorf("upstream project id (config key: upstream.project_id, env: %s) cannot be empty", EnvProjectID)
	}
	if c.Upstream.ClientTimeoutSeconds <= 0 {
		return errors.New("upstream client timeout seconds (config key: upstream.client_timeout_seconds) must be greater than 0")
	}

	if c.Server.ReadTimeoutSeconds < 0 {
		return errors.New("server read timeout seconds (config key: server.read_timeout_seconds) cannot be negative")
	}
	if c.Server.WriteTimeoutSeconds < 0 {
		return errors.New("server write timeout seconds (config key: server.write_timeout_seconds) cannot be negative")
	}
	if c.Server.IdleTimeoutSeconds < 0 {
		return errors.New("server idle timeout seconds (config key: server.idle_timeout_seconds) cannot be negative")
	}
	if c.Server.ReadHeaderTimeoutSeconds < 0 {
		return errors.New(
			"server read header timeout seconds (config key: server.read_header_timeout_seconds) cannot be negative",
		)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path (config key: metrics.path) must start with '/', got '%s'", c.Metrics.Path)
	}

	return nil
}
