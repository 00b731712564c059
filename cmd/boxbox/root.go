package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SingSongScreamAlong/ok-box-box/pkg/config"
	"github.com/SingSongScreamAlong/ok-box-box/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "boxbox",
	Short: "Race-control incident evaluation engine",
	Long: `Boxbox evaluates race incidents against discipline profiles and produces
recommendations for human race-control stewards.

It provides:
  - Condition-tree rule evaluation over incident facts
  - Caution recommendations (slow zone, local and global yellow)
  - Penalty recommendations with at-fault analysis
  - Review flagging for ambiguous incidents
  - An incident archive for post-session stewarding`,
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
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the application configuration. Without --config the
// defaults are used so commands work out of the box.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	return config.LoadWithEnvOverrides(cfgFile)
}

// newLogger builds the command logger from configuration and the
// --verbose flag.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Telemetry.Logging.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:     level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	})
}
