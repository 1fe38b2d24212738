package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads configuration from a YAML file, applies defaults, applies
// environment variable overrides, and validates the result. Environment
// variables follow the naming convention DIRGATE_SECTION_FIELD and always
// take precedence over file values.
//
// The loading sequence is:
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
func Load(path string) (*Config, error) {
	cfg := Config{Retry: RetryConfig{Jitter: true}}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromEnv builds a configuration entirely from defaults and environment
// variables, for deployments without a config file.
func LoadFromEnv() (*Config, error) {
	cfg := Config{Retry: RetryConfig{Jitter: true}}
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// applyEnvOverrides applies DIRGATE_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	setString := func(key string, target *string) {
		if val := os.Getenv(key); val != "" {
			*target = val
		}
	}
	setDuration := func(key string, target *time.Duration) {
		if val := os.Getenv(key); val != "" {
			if d, err := time.ParseDuration(val); err == nil {
				*target = d
			}
		}
	}
	setBool := func(key string, target *bool) {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				*target = b
			}
		}
	}

	setString("DIRGATE_TENANT_ID", &cfg.Auth.TenantID)
	setString("DIRGATE_CLIENT_ID", &cfg.Auth.ClientID)
	setString("DIRGATE_CLIENT_SECRET", &cfg.Auth.ClientSecret)
	setString("DIRGATE_TOKEN_URL", &cfg.Auth.TokenURL)

	setString("DIRGATE_GRAPH_BASE_URL", &cfg.Graph.BaseURL)
	setDuration("DIRGATE_GRAPH_TIMEOUT", &cfg.Graph.Timeout)

	if val := os.Getenv("DIRGATE_RETRY_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retry.MaxRetries = &i
		}
	}
	setDuration("DIRGATE_RETRY_BASE_DELAY", &cfg.Retry.BaseDelay)
	setDuration("DIRGATE_RETRY_MAX_DELAY", &cfg.Retry.MaxDelay)
	setBool("DIRGATE_RETRY_JITTER", &cfg.Retry.Jitter)

	setString("DIRGATE_LOG_LEVEL", &cfg.Telemetry.Logging.Level)
	setString("DIRGATE_LOG_FORMAT", &cfg.Telemetry.Logging.Format)
	setBool("DIRGATE_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	setString("DIRGATE_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
}
