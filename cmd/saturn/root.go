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
	Use:   "saturn",
	Short: "Mercator Saturn - deployment retention enforcement",
	Long: `Mercator Saturn keeps deployment environments tidy by enforcing a
retention policy against a deployment API.

Each prune run lists the deployments of one environment, keeps the most
recent ones according to the configured keep count, honors a single
optional exclusion, and deletes the rest:
  - Keep-count retention with optional exclusions
  - Dry-run reporting before any deletion
  - Local SQLite audit trail of prune runs
  - Prometheus Pushgateway metrics per run

For more information, visit: https://github.com/mercator-hq/saturn`,
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

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
