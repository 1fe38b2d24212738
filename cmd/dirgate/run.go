package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"dirgate-hq/dirgate/pkg/cli"
	"dirgate-hq/dirgate/pkg/config"
	"dirgate-hq/dirgate/pkg/directory"
	"dirgate-hq/dirgate/pkg/graph"
	"dirgate-hq/dirgate/pkg/telemetry/health"
	"dirgate-hq/dirgate/pkg/telemetry/logging"
	"dirgate-hq/dirgate/pkg/telemetry/metrics"
	"dirgate-hq/dirgate/pkg/tools"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve the directory tool catalog on stdio",
	Long: `Serve the directory tool catalog over the Model Context Protocol
on standard input/output.

All logging goes to stderr; stdout carries the protocol stream. When the
config watcher is enabled, changes to the retry policy and log level are
picked up without a restart.

Examples:
  # Serve with default config
  dirgate run

  # Serve with custom config
  dirgate run --config /etc/dirgate/config.yaml

  # Override log level
  dirgate run --log-level debug

  # Validate config without serving
  dirgate run --dry-run`,
	RunE: runGateway,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without serving")
}

func runGateway(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, levelVar, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	ctx := cli.SetupSignalHandler()

	// Diagnostics listener: metrics plus health and version endpoints (optional)
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())

		checker := health.New(5 * time.Second)
		checker.RegisterCheck("config", func(ctx context.Context) error {
			_, cerr := config.Load(cfgFile)
			return cerr
		})
		health.Register(mux, checker, Version, GitCommit, BuildDate)

		metricsSrv := &http.Server{
			Addr:    cfg.Telemetry.Metrics.ListenAddress,
			Handler: mux,
		}
		go func() {
			logger.Info("diagnostics listener started", "address", cfg.Telemetry.Metrics.ListenAddress)
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("diagnostics listener failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	client, err := graph.NewClient(clientConfig(cfg))
	if err != nil {
		return cli.NewCommandError("run", err)
	}

	svc := directory.NewService(client, retryPolicy(cfg.Retry), logger, collector)
	srv := tools.NewServer(svc, logger, Version)

	// Config hot-reload (optional)
	if cfg.Watch.Enabled {
		watcher := config.NewWatcher(cfgFile, cfg.Watch.Debounce, logger)
		go func() {
			err := watcher.Watch(ctx, func(next *config.Config) {
				svc.SetPolicy(retryPolicy(next.Retry))
				if level, perr := logging.ParseLevel(next.Telemetry.Logging.Level); perr == nil {
					levelVar.Set(level)
				}
				logger.Info("configuration reloaded",
					"max_retries", next.Retry.Retries(),
					"log_level", next.Telemetry.Logging.Level)
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
	}

	logger.Info("serving directory tools on stdio",
		"version", Version,
		"base_url", cfg.Graph.BaseURL,
		"tenant", cfg.Auth.TenantID)

	if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return cli.NewCommandError("run", err)
	}
	logger.Info("shutdown complete")
	return nil
}

// retryPolicy converts the configured retry settings into the policy applied
// to every query.
func retryPolicy(rc config.RetryConfig) graph.Policy {
	return graph.Policy{
		MaxRetries:      rc.Retries(),
		BaseDelay:       rc.BaseDelay,
		MaxDelay:        rc.MaxDelay,
		Jitter:          rc.Jitter,
		RetryableStatus: rc.RetryableStatusCodes,
	}
}

func clientConfig(cfg *config.Config) graph.ClientConfig {
	return graph.ClientConfig{
		BaseURL:             cfg.Graph.BaseURL,
		TenantID:            cfg.Auth.TenantID,
		ClientID:            cfg.Auth.ClientID,
		ClientSecret:        cfg.Auth.ClientSecret,
		TokenURL:            cfg.Auth.TokenURL,
		Timeout:             cfg.Graph.Timeout,
		MaxIdleConns:        cfg.Graph.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.Graph.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.Graph.IdleConnTimeout,
		UserAgent:           cfg.Graph.UserAgent,
	}
}
