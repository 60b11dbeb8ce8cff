// Command lead-harmonizer maps multi-language automotive lead CSVs onto one
// fixed schema.
//
// Commands:
//
//	harmonize INPUT  write INPUT_harmonized.csv next to INPUT
//	demo             write a sample multi-language lead file
//	check            report the configuration
//	serve            start the HTTP API
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"lead-harmonizer/internal/config"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	verbose bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "lead-harmonizer",
		Short:         "Map multi-language automotive lead CSVs onto a unified schema",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			opts.cfg = config.Load()
			slog.SetDefault(newLogger(opts.verbose))
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newHarmonizeCmd(opts),
		newDemoCmd(),
		newCheckCmd(opts),
		newServeCmd(opts),
	)

	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
