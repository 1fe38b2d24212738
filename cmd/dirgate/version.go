package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"dirgate-hq/dirgate/pkg/cli"
	"dirgate-hq/dirgate/pkg/telemetry/health"
)

var (
	// Version is the semantic version (set by build flags)
	Version = "0.1.0"
	// GitCommit is the git commit hash (set by build flags)
	GitCommit = "unknown"
	// BuildDate is the build timestamp (set by build flags)
	BuildDate = "unknown"
)

var versionFlags struct {
	format string
}

// buildInfo is the same shape the diagnostics listener serves on /version,
// so the CLI and the probe endpoint can never disagree.
func buildInfo() health.VersionInfo {
	return health.VersionInfo{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
		GoVersion: runtime.Version(),
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the gateway version, Git commit, and build date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := cli.ParseFormat(versionFlags.format)
		if err != nil {
			return cli.NewCommandError("version", err)
		}

		info := buildInfo()
		if format == cli.FormatJSON {
			return cli.NewFormatter(format).FormatTo(os.Stdout, info)
		}

		fmt.Printf("dirgate %s\n", info.Version)
		fmt.Printf("Commit:     %s\n", info.Commit)
		fmt.Printf("Built:      %s\n", info.BuildTime)
		fmt.Printf("Go:         %s (%s/%s)\n", info.GoVersion, runtime.GOOS, runtime.GOARCH)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVar(&versionFlags.format, "format", "text", "output format: text, json")
}
