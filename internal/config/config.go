// Package config provides configuration loading and validation for the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Default timing values. The gateway deadline and the autosave interval
// mirror the client-facing contract: a gateway call is abandoned after 30
// seconds and persisted state is flushed every 30 seconds.
const (
	DefaultPort             = 8080
	DefaultGatewayTimeout   = 30 * time.Second
	DefaultAutosaveInterval = 30 * time.Second
)

// Config represents the server configuration. Values can come from the
// environment, an optional JSON file, or CLI flags; flags win over the file,
// the file wins over the environment.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Upstream API keys
	GeminiAPIKey string `json:"gemini_api_key,omitempty"` // Chat/grading upstream
	OpenAIAPIKey string `json:"openai_api_key,omitempty"` // Text-to-speech upstream

	// Timing
	GatewayTimeoutSeconds   int `json:"gateway_timeout_seconds,omitempty"`
	AutosaveIntervalSeconds int `json:"autosave_interval_seconds,omitempty"`
}

// FromEnv builds a Config from environment variables with defaults applied.
func FromEnv() Config {
	cfg := Config{
		Port:         DefaultPort,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}

	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}

	return cfg
}

// LoadFile loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Used to layer a config file over environment values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.OpenAIAPIKey == "" {
		result.OpenAIAPIKey = defaults.OpenAIAPIKey
	}
	if result.GatewayTimeoutSeconds == 0 {
		result.GatewayTimeoutSeconds = defaults.GatewayTimeoutSeconds
	}
	if result.AutosaveIntervalSeconds == 0 {
		result.AutosaveIntervalSeconds = defaults.AutosaveIntervalSeconds
	}

	return result
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in [0, 65535]")
	}
	if c.GatewayTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'gateway_timeout_seconds' must be non-negative")
	}
	if c.AutosaveIntervalSeconds < 0 {
		return fmt.Errorf("config error: 'autosave_interval_seconds' must be non-negative")
	}
	return nil
}

// GatewayTimeout returns the configured gateway deadline, or the default.
func (c *Config) GatewayTimeout() time.Duration {
	if c.GatewayTimeoutSeconds > 0 {
		return time.Duration(c.GatewayTimeoutSeconds) * time.Second
	}
	return DefaultGatewayTimeout
}

// AutosaveInterval returns the configured autosave interval, or the default.
func (c *Config) AutosaveInterval() time.Duration {
	if c.AutosaveIntervalSeconds > 0 {
		return time.Duration(c.AutosaveIntervalSeconds) * time.Second
	}
	return DefaultAutosaveInterval
}
