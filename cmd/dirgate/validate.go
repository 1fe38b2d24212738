package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dirgate-hq/dirgate/pkg/cli"
	"dirgate-hq/dirgate/pkg/config"
)

var validateFlags struct {
	format string
}

// configSummary is the printable shape of a validated configuration. Secrets
// are reduced to presence booleans.
type configSummary struct {
	ConfigFile      string `json:"configFile"`
	TenantID        string `json:"tenantId"`
	ClientID        string `json:"clientId"`
	ClientSecretSet bool   `json:"clientSecretSet"`
	BaseURL         string `json:"baseUrl"`
	Timeout         string `json:"timeout"`
	MaxRetries      int    `json:"maxRetries"`
	BaseDelay       string `json:"baseDelay"`
	MaxDelay        string `json:"maxDelay"`
	Jitter          bool   `json:"jitter"`
	LogLevel        string `json:"logLevel"`
	LogFormat       string `json:"logFormat"`
	MetricsEnabled  bool   `json:"metricsEnabled"`
	WatchEnabled    bool   `json:"watchEnabled"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file without connecting to the
directory API.

Validation checks credential presence, the retry policy bounds, and the
telemetry settings, and reports every problem it finds rather than
stopping at the first one.

Examples:
  # Validate the default config
  dirgate validate

  # Validate a specific file
  dirgate validate --config /etc/dirgate/config.yaml

  # Machine-readable summary
  dirgate validate --format json`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

func validateConfig(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseFormat(validateFlags.format)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	summary := configSummary{
		ConfigFile:      cfgFile,
		TenantID:        cfg.Auth.TenantID,
		ClientID:        cfg.Auth.ClientID,
		ClientSecretSet: cfg.Auth.ClientSecret != "",
		BaseURL:         cfg.Graph.BaseURL,
		Timeout:         cfg.Graph.Timeout.String(),
		MaxRetries:      cfg.Retry.Retries(),
		BaseDelay:       cfg.Retry.BaseDelay.String(),
		MaxDelay:        cfg.Retry.MaxDelay.String(),
		Jitter:          cfg.Retry.Jitter,
		LogLevel:        cfg.Telemetry.Logging.Level,
		LogFormat:       cfg.Telemetry.Logging.Format,
		MetricsEnabled:  cfg.Telemetry.Metrics.Enabled,
		WatchEnabled:    cfg.Watch.Enabled,
	}

	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, summary)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Println()
	fmt.Printf("Config file:  %s\n", summary.ConfigFile)
	fmt.Printf("Tenant:       %s\n", summary.TenantID)
	fmt.Printf("Client ID:    %s\n", summary.ClientID)
	fmt.Printf("Base URL:     %s\n", summary.BaseURL)
	fmt.Printf("Timeout:      %s\n", summary.Timeout)
	fmt.Printf("Retries:      %d (base %s, max %s, jitter %t)\n",
		summary.MaxRetries, summary.BaseDelay, summary.MaxDelay, summary.Jitter)
	fmt.Printf("Logging:      %s/%s\n", summary.LogLevel, summary.LogFormat)
	fmt.Printf("Metrics:      %t\n", summary.MetricsEnabled)
	fmt.Printf("Config watch: %t\n", summary.WatchEnabled)
	return nil
}
