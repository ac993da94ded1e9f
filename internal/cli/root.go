// Package cli is the radar-runner command surface: one subcommand per task
// kind plus status and config helpers.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

var (
	cfgFile   string
	logLevel  string
	program   string
	logPretty bool
)

var rootCmd = &cobra.Command{
	Use:           "radar-runner",
	Short:         "Schedule radar-fundamentos collections inside market hours",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "runner file (default <config-dir>/radar/radar-runner.conf)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&program, "program", "", "external collector program (overrides programa)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", true, "human-readable log output")

	rootCmd.AddCommand(
		quotesNowCmd,
		quotesCmd,
		historicalCmd,
		indicatorsCmd,
		indicatorsNowCmd,
		statusCmd,
		configCmd,
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
