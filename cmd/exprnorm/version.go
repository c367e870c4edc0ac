package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"exprnorm/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type versionPayload struct {
	version.Info
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	payload := versionPayload{
		Info:      version.Current(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	switch format {
	case "json":
		return writeJSON(os.Stdout, payload)
	case "pretty":
		fmt.Fprintf(os.Stdout, "exprnorm %s\n", version.Colored())
		if payload.GitCommit != "" {
			fmt.Fprintf(os.Stdout, "commit:  %s\n", payload.GitCommit)
		}
		if payload.BuildDate != "" {
			fmt.Fprintf(os.Stdout, "built:   %s\n", payload.BuildDate)
		}
		fmt.Fprintf(os.Stdout, "go:      %s (%s)\n", payload.GoVersion, payload.Platform)
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
}
