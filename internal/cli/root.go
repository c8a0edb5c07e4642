// Package cli implements the olstudio command line: a thin presentation
// layer over the pipeline library. All analysis happens in the library;
// the CLI only loads files, drives one session, and renders results.
package cli

import (
	"fmt"
	"os"

	"log/slog"

	"github.com/spf13/cobra"

	"github.com/olstudio/olstudio/internal/logging"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "olstudio",
	Short: "Run repeatable OLS regression studies against tabular datasets",
	Long: `olstudio takes a CSV dataset through validation, cleaning and a series
of OLS regression fits, reporting descriptive statistics, distribution
summaries and regression diagnostics for each model variant.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// newLogger builds the process logger honoring the --debug flag.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return logging.New(level)
}
