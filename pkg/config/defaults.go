package config

import "time"

// Default values applied to unset configuration fields.
const (
	DefaultBaseURL             = "https://graph.microsoft.com/v1.0"
	DefaultTimeout             = 30 * time.Second
	DefaultMaxIdleConns        = 100
	DefaultMaxIdleConnsPerHost = 10
	DefaultIdleConnTimeout     = 90 * time.Second
	DefaultUserAgent           = "dirgate"

	DefaultMaxRetries = 3
	DefaultBaseDelay  = 1 * time.Second
	DefaultMaxDelay   = 30 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsNamespace     = "dirgate"

	DefaultWatchDebounce = 250 * time.Millisecond
)

// ApplyDefaults fills unset fields with default values. Credentials are never
// defaulted; Validate rejects their absence.
func ApplyDefaults(cfg *Config) {
	if cfg.Graph.BaseURL == "" {
		cfg.Graph.BaseURL = DefaultBaseURL
	}
	if cfg.Graph.Timeout <= 0 {
		cfg.Graph.Timeout = DefaultTimeout
	}
	if cfg.Graph.MaxIdleConns <= 0 {
		cfg.Graph.MaxIdleConns = DefaultMaxIdleConns
	}
	if cfg.Graph.MaxIdleConnsPerHost <= 0 {
		cfg.Graph.MaxIdleConnsPerHost = DefaultMaxIdleConnsPerHost
	}
	if cfg.Graph.IdleConnTimeout <= 0 {
		cfg.Graph.IdleConnTimeout = DefaultIdleConnTimeout
	}
	if cfg.Graph.UserAgent == "" {
		cfg.Graph.UserAgent = DefaultUserAgent
	}

	// An explicit max_retries: 0 is a valid setting (no retries), so only a
	// nil pointer counts as unset.
	if cfg.Retry.MaxRetries == nil {
		retries := DefaultMaxRetries
		cfg.Retry.MaxRetries = &retries
	}
	if cfg.Retry.BaseDelay <= 0 {
		cfg.Retry.BaseDelay = DefaultBaseDelay
	}
	if cfg.Retry.MaxDelay <= 0 {
		cfg.Retry.MaxDelay = DefaultMaxDelay
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}

	if cfg.Watch.Debounce <= 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}
}

// DefaultConfig returns a configuration with all defaults applied and no
// credentials set.
func DefaultConfig() *Config {
	cfg := &Config{Retry: RetryConfig{Jitter: true}}
	ApplyDefaults(cfg)
	return cfg
}
