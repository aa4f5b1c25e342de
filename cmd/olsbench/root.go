package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/alexshd/olsbench/report"
)

var version = "0.1.0"

// NewRootCmd returns the olsbench command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "olsbench",
		Short:   "Estimate the cost of small code paths by linear regression",
		Version: version,
		Long: `olsbench runs each benchmark body in batches of growing size, times every
batch, and fits a line through (iterations, elapsed). The slope is the cost of
one call; R² tells how far to trust it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, _ := cmd.Flags().GetString("log-level")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return setupLogging(level, noColor)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, print help
			return cmd.Help()
		},
	}

	root.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())

	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string, noColor bool) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: "15:04:05",
			NoColor:    noColor || !report.ColorEnabled(os.Stderr),
		}),
	))
	return nil
}
