package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"lead-harmonizer/internal/mapping"
	"lead-harmonizer/internal/pipeline"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/store"
	"lead-harmonizer/internal/table"
	"lead-harmonizer/internal/transform"
)

const previewRecords = 3

// reportedCodes are the cell problems counted in the summary.
var reportedCodes = []string{
	transform.CodeInvalidPrice,
	transform.CodeInvalidEmail,
	transform.CodeInvalidPhone,
	transform.CodeUnknownFuelType,
	transform.CodeUnknownLeadSource,
	transform.CodeSuspectYear,
	table.CodeMalformedRow,
	table.CodePaddedRow,
	table.CodeTruncatedRow,
}

type harmonizeOptions struct {
	output     string
	mapping    string
	suggest    string
	sqlite     string
	workers    int
	classifier string
	dump       bool
	promote    bool
}

func newHarmonizeCmd(root *rootOptions) *cobra.Command {
	opts := &harmonizeOptions{}

	cmd := &cobra.Command{
		Use:   "harmonize INPUT",
		Short: "Harmonize a lead CSV into the unified schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHarmonize(cmd, root, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output CSV path (default INPUT_harmonized.csv)")
	f.StringVar(&opts.mapping, "mapping", "", "mapping file with pinned columns and rule overrides")
	f.StringVar(&opts.suggest, "suggest", "", "write the resolved mapping as a mapping file")
	f.StringVar(&opts.sqlite, "sqlite", "", "also export records and mappings to this SQLite database")
	f.IntVar(&opts.workers, "workers", 0, "concurrent classifier calls (default from HARMONIZER_WORKERS)")
	f.StringVar(&opts.classifier, "classifier", "", "auto, openai or rules (default from HARMONIZER_CLASSIFIER)")
	f.BoolVar(&opts.dump, "dump", false, "print the resolved mapping")
	f.BoolVar(&opts.promote, "promote", false, "with --suggest, write mapped suggestions as pinned columns")

	return cmd
}

func runHarmonize(cmd *cobra.Command, root *rootOptions, opts *harmonizeOptions, input string) error {
	cfg := root.cfg
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}

	if opts.classifier != "" {
		cfg.Classifier = opts.classifier
	}

	if opts.mapping == "" {
		opts.mapping = cfg.RulesFile
	}

	logger := slog.Default()

	mf, err := loadMapping(opts.mapping, logger)
	if err != nil {
		return err
	}

	h, err := newHarmonizer(cfg, mf, logger)
	if err != nil {
		return err
	}

	output := opts.output
	if output == "" {
		output = pipeline.DefaultOutputPath(input)
	}

	ctx := cmd.Context()

	rep, err := h.HarmonizeFile(ctx, input, output)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if opts.dump {
		spew.Fdump(out, rep.Results())
	}

	if opts.suggest != "" {
		suggested := mapping.ExportSuggestions(rep.Mapping)
		if opts.promote {
			suggested.Promote()
		}

		if err := mapping.WriteFile(suggested, opts.suggest); err != nil {
			return err
		}

		fmt.Fprintf(out, "Mapping suggestions written to: %s\n", opts.suggest)
	}

	if opts.sqlite != "" {
		if err := store.Export(ctx, opts.sqlite, rep); err != nil {
			return err
		}

		fmt.Fprintf(out, "Records exported to: %s\n", opts.sqlite)
	}

	printReport(out, rep)
	fmt.Fprintf(out, "Harmonized data saved to: %s\n", output)

	return nil
}

func printReport(w io.Writer, rep *pipeline.Report) {
	fmt.Fprintf(w, "Run %s (%s, language %s)\n", rep.RunID, rep.Encoding, rep.Language.Language)
	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  records processed: %d\n", len(rep.Records))
	fmt.Fprintf(w, "  fields mapped:     %d\n", rep.Summary.Mapped)
	fmt.Fprintf(w, "  fields rejected:   %d\n", rep.Summary.Rejected)
	fmt.Fprintf(w, "  columns unmapped:  %d\n", rep.Summary.Unmapped)
	fmt.Fprintf(w, "  quality score:     %.2f\n", rep.QualityScore)

	if missing := rep.Mapping.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, "  missing fields:    %v\n", missing)
	}

	for _, col := range rep.Columns {
		r, ok := rep.Mapping.Result(col.Name)
		if !ok {
			continue
		}

		fmt.Fprintf(w, "  %-24s [%s] -> %-15s %.2f %s\n", col.Name, col.Language, r.Target, r.Confidence, r.Status)
	}

	if n := len(rep.Diagnostics.Warnings); n > 0 {
		fmt.Fprintf(w, "  warnings:          %d\n", n)

		for _, code := range reportedCodes {
			if hits := rep.Diagnostics.ByCode(code); len(hits) > 0 {
				fmt.Fprintf(w, "    %-20s %d\n", code, len(hits))
			}
		}
	}

	n := min(previewRecords, len(rep.Records))
	if n == 0 {
		return
	}

	fmt.Fprintf(w, "\nPreview (first %d records):\n", n)

	for i, rec := range rep.Records[:n] {
		fmt.Fprintf(w, "  Record %d:\n", i+1)

		for _, f := range schema.Fields() {
			if v, ok := rec.Get(f); ok {
				fmt.Fprintf(w, "    %s: %s\n", f, v)
			}
		}
	}

	fmt.Fprintln(w)
}
