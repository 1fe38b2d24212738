/*
Package cli provides command-line interface utilities for dirgate.

The cli package includes output formatters, error types, and signal handling
used by the dirgate command.

Output Formatting:

Commands that print results support text and JSON output:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, summary); err != nil {
		return err
	}

Error Types:

ConfigError and CommandError distinguish configuration problems (reported
before anything starts) from runtime command failures:

	cfg, err := config.Load(path)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
