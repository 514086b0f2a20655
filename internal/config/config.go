// Package config implements application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFilePath is the dotenv file read when no explicit path is given.
const DefaultEnvFilePath = ".env"

// Default returns a Config populated with default values for every section.
// The project identifier has no default and must come from the file or the environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                     DefaultServerPort,
			ReadTimeoutSeconds:       DefaultServerReadTimeoutSeconds,
			WriteTimeoutSeconds:      DefaultServerWriteTimeoutSeconds,
			IdleTimeoutSeconds:       DefaultServerIdleTimeoutSeconds,
			ReadHeaderTimeoutSeconds: DefaultServerReadHeaderTimeoutSeconds,
		},
		Logger: LoggerConfig{
			Level:  DefaultLoggerLevel,
			Format: DefaultLoggerFormat,
		},
		Upstream: UpstreamConfig{
			BaseURL:              DefaultUpstreamBaseURL,
			ClientTimeoutSeconds: DefaultUpstreamClientTimeoutSeconds,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
// Variables already present in the environment are not overridden.
// A missing default file is not an error; a missing explicit file is.
func LoadEnvFile(filePath string) error {
	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultEnvFilePath
	}

	if err := godotenv.Load(loadPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && (filePath == "" || filePath == DefaultEnvFilePath) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", loadPath, err)
	}
	return nil
}

// LoadConfig loads the configuration from a YAML file, applies environment
// overrides and validates the result.
func LoadConfig(filePath string) (*Config, error) {
	cfg := Default()

	loadPath := filePath
	if loadPath == "" {
		loadPath = DefaultConfigFilePath
	}

	fileBytes, err := os.ReadFile(loadPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(fileBytes, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file '%s': %w", loadPath, err)
		}
	case errors.Is(err, fs.ErrNotExist) && (filePath == "" || filePath == DefaultConfigFilePath):
		// Defaults plus environment.
	default:
		return nil, fmt.Errorf("failed to read config file '%s': %w", loadPath, err)
	}

	applyEnvOverrides(cfg)
	normalize(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides replaces file values with non-empty environment values.
func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvProjectID)); v != "" {
		cfg.Upstream.ProjectID = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvUpstreamBaseURL)); v != "" {
		cfg.Upstream.BaseURL = v
	}
}

// normalize fills in values left blank by the YAML file.
func normalize(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = DefaultLoggerLevel
	}
	if cfg.Logger.Format == "" {
		cfg.Logger.Format = DefaultLoggerFormat
	}
	cfg.Logger.Level = LogLevel(strings.ToLower(string(cfg.Logger.Level)))
	cfg.Logger.Format = LogFormat(strings.ToLower(string(cfg.Logger.Format)))
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
}
