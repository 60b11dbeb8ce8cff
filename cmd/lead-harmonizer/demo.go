package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lead-harmonizer/internal/demo"
)

func newDemoCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Write a sample multi-language lead CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := demo.WriteFile(output); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sample CSV file created: %s\n", output)
			fmt.Fprintf(out, "Headers: %v\n", demo.Header)
			fmt.Fprintf(out, "Try running: lead-harmonizer harmonize %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", demo.DefaultFile, "file to write")

	return cmd
}
