package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks structural validity of the configuration. Missing
// credentials are reported together so an operator can fix them in one pass.
func Validate(cfg *Config) error {
	var problems []string

	if cfg.Auth.TenantID == "" {
		problems = append(problems, "auth.tenant_id is required (or DIRGATE_TENANT_ID)")
	}
	if cfg.Auth.ClientID == "" {
		problems = append(problems, "auth.client_id is required (or DIRGATE_CLIENT_ID)")
	}
	if cfg.Auth.ClientSecret == "" {
		problems = append(problems, "auth.client_secret is required (or DIRGATE_CLIENT_SECRET)")
	}

	if u, err := url.Parse(cfg.Graph.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("graph.base_url %q is not a valid URL", cfg.Graph.BaseURL))
	}
	if cfg.Retry.MaxRetries != nil && *cfg.Retry.MaxRetries < 0 {
		problems = append(problems, "retry.max_retries must not be negative")
	}
	if cfg.Retry.MaxDelay < cfg.Retry.BaseDelay {
		problems = append(problems, "retry.max_delay must be >= retry.base_delay")
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("telemetry.logging.level %q is not one of debug, info, warn, error", cfg.Telemetry.Logging.Level))
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("telemetry.logging.format %q is not one of json, text", cfg.Telemetry.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
