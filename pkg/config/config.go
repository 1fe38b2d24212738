package config

import "time"

// Config is the root configuration for the dirgate server.
type Config struct {
	// Auth contains the directory tenant credentials
	Auth AuthConfig `yaml:"auth"`

	// Graph contains the Graph API client settings
	Graph GraphConfig `yaml:"graph"`

	// Retry contains the default retry policy for all queries
	Retry RetryConfig `yaml:"retry"`

	// Telemetry contains logging and metrics settings
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch contains config hot-reload settings
	Watch WatchConfig `yaml:"watch"`
}

// AuthConfig contains the client-credentials settings for token acquisition.
// All three identifiers are required; their absence is a fatal startup
// condition, not a per-call error.
type AuthConfig struct {
	// TenantID is the directory tenant identifier
	TenantID string `yaml:"tenant_id"`

	// ClientID is the application (client) identifier
	ClientID string `yaml:"client_id"`

	// ClientSecret is the application client secret
	ClientSecret string `yaml:"client_secret"`

	// TokenURL overrides the token endpoint (primarily for tests)
	TokenURL string `yaml:"token_url"`
}

// GraphConfig contains the HTTP client settings for the Graph API.
type GraphConfig struct {
	// BaseURL is the API root
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout
	Timeout time.Duration `yaml:"timeout"`

	// MaxIdleConns is the connection pool size
	MaxIdleConns int `yaml:"max_idle_conns"`

	// MaxIdleConnsPerHost is the per-host connection pool size
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host"`

	// IdleConnTimeout is how long idle connections are kept
	IdleConnTimeout time.Duration `yaml:"idle_conn_timeout"`

	// UserAgent is sent with every request
	UserAgent string `yaml:"user_agent"`
}

// RetryConfig contains the default retry policy applied to every query.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt. A
	// pointer so that an explicit 0 (no retries) is distinguishable from
	// an unset field.
	MaxRetries *int `yaml:"max_retries"`

	// BaseDelay is the backoff for the first retry
	BaseDelay time.Duration `yaml:"base_delay"`

	// MaxDelay caps the computed backoff
	MaxDelay time.Duration `yaml:"max_delay"`

	// Jitter randomizes the backoff by up to ±25%
	Jitter bool `yaml:"jitter"`

	// RetryableStatusCodes overrides the retryable status set
	RetryableStatusCodes []int `yaml:"retryable_status_codes"`
}

// Retries returns the configured retry count, or the default when the field
// was never set. An explicit max_retries: 0 disables retries.
func (rc RetryConfig) Retries() int {
	if rc.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *rc.MaxRetries
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error")
	Level string `yaml:"level"`

	// Format is the output format ("json", "text")
	Format string `yaml:"format"`

	// AddSource includes file:line in log records
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls whether the metrics listener starts
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address for the /metrics endpoint
	ListenAddress string `yaml:"listen_address"`

	// Namespace is the metric name prefix
	Namespace string `yaml:"namespace"`
}

// WatchConfig controls hot-reloading of the configuration file.
type WatchConfig struct {
	// Enabled controls whether the config file is watched for changes
	Enabled bool `yaml:"enabled"`

	// Debounce is the quiet period before a change triggers a reload
	Debounce time.Duration `yaml:"debounce"`
}
