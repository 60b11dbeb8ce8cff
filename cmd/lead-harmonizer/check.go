package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lead-harmonizer/internal/transform"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			out := cmd.OutOrStdout()

			key := "missing"
			if cfg.OpenAI.APIKey != "" {
				key = "configured"
			}

			fmt.Fprintf(out, "OPENAI_API_KEY:  %s\n", key)
			fmt.Fprintf(out, "OPENAI_MODEL:    %s\n", cfg.OpenAI.Model)

			if cfg.OpenAI.BaseURL != "" {
				fmt.Fprintf(out, "OPENAI_BASE_URL: %s\n", cfg.OpenAI.BaseURL)
			}

			fmt.Fprintf(out, "classifier:      %s (resolved %s)\n", cfg.Classifier, cfg.Mode())
			fmt.Fprintf(out, "workers:         %d\n", cfg.Workers)
			fmt.Fprintf(out, "min confidence:  %.2f\n", cfg.MinConfidence)
			fmt.Fprintf(out, "transformations: %s\n", strings.Join(transform.DefaultRegistry().Names(), ", "))

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration incomplete: %w", err)
			}

			fmt.Fprintln(out, "Ready.")

			return nil
		},
	}
}
