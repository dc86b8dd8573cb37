// Package app contains the Cobra command tree for chargewatch.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagDebug   bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "chargewatch",
	Short: "Charging-session analytics for PowerFlex sites",
	Long: `chargewatch queries the charging-session API, classifies sessions
(empty, microsession, normal) with a charging-performance tier, aggregates
per-day and per-user statistics, and renders the results as console text,
charts, CSV, or PDF.

One invocation is one report: fetch, classify, aggregate, render, exit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("chargewatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  analyze   Empty/microsession analysis with daily breakdown")
		fmt.Println("  users     Per-user session grouping (including unclaimed)")
		fmt.Println("  sessions  List raw sessions or inspect one by ID")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/chargewatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Print request and pipeline diagnostics to stderr")
}

// debugf prints a diagnostic line to stderr when --debug is set.
func debugf(format string, args ...any) {
	if flagDebug {
		fmt.Fprintf(os.Stderr, "debug: "+format+"\n", args...)
	}
}
