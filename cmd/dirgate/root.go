package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "dirgate",
	Short: "Dirgate - read-only directory query gateway",
	Long: `Dirgate is a read-only directory query gateway that exposes users,
groups, applications, devices, and administrative reports from the
Microsoft Graph API as tools over the Model Context Protocol.

Every query is validated and sanitized before it leaves the process,
every failure is classified into a fixed error taxonomy, and transient
failures are retried with exponential backoff honoring server-provided
Retry-After hints.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
