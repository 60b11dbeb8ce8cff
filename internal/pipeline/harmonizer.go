package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"lead-harmonizer/internal/classify"
	"lead-harmonizer/internal/diagnostic"
	"lead-harmonizer/internal/lang"
	"lead-harmonizer/internal/resolve"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/table"
	"lead-harmonizer/internal/transform"
)

// Options configure a Harmonizer. Classifier is required.
type Options struct {
	Classifier  classify.ColumnClassifier
	Transformer *transform.Transformer
	Pins        classify.Pins
	// Workers bounds concurrent classifier calls; 1 or less is sequential.
	Workers int
	Logger  *slog.Logger
}

// Harmonizer runs the pipeline. It holds no per-run state and may serve
// concurrent runs.
type Harmonizer struct {
	classifier  classify.ColumnClassifier
	transformer *transform.Transformer
	workers     int
	logger      *slog.Logger
}

// New builds a Harmonizer from opts.
func New(opts Options) (*Harmonizer, error) {
	if opts.Classifier == nil {
		return nil, fmt.Errorf("pipeline: classifier is required")
	}

	if opts.Transformer == nil {
		opts.Transformer = transform.Default()
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Harmonizer{
		classifier:  classify.WithPins(opts.Classifier, opts.Pins),
		transformer: opts.Transformer,
		workers:     opts.Workers,
		logger:      opts.Logger,
	}, nil
}

// Transformer returns the field transformer runs use.
func (h *Harmonizer) Transformer() *transform.Transformer {
	return h.transformer
}

// Run harmonizes a CSV document.
func (h *Harmonizer) Run(ctx context.Context, r io.Reader) (*Report, error) {
	t, diags, err := table.Read(r)
	if err != nil {
		return nil, err
	}

	return h.RunTable(ctx, t, diags), nil
}

// RunTable harmonizes an already parsed table. diags, if not nil, are the
// reader diagnostics and are carried into the report.
func (h *Harmonizer) RunTable(ctx context.Context, t *table.Table, diags *diagnostic.Diagnostics) *Report {
	rep := &Report{
		RunID:       uuid.NewString(),
		Encoding:    t.Encoding,
		Diagnostics: &diagnostic.Diagnostics{},
	}
	rep.Diagnostics.Merge(diags)

	log := h.logger.With("run_id", rep.RunID)

	cols := t.Columns()
	for i := range cols {
		cols[i].Translated = lang.Gloss(cols[i].Name)
		cols[i].Language = lang.Detect(cols[i].Name).Language
	}

	rep.Columns = cols
	rep.Language = lang.Detect(t.Header...)

	log.Info("classifying columns", "columns", len(cols), "rows", t.Len(),
		"language", rep.Language.Language, "workers", max(h.workers, 1))

	results := classify.ClassifyAll(ctx, h.classifier, cols, h.workers)

	rep.Mapping = resolve.Resolve(results)
	rep.Summary = resolve.Summarize(rep.Mapping)

	for _, res := range rep.Mapping.Results() {
		log.Debug("column resolved", "column", res.Column, "target", res.Target,
			"status", res.Status, "confidence", res.Confidence, "rationale", res.Rationale)
	}

	log.Info("mapping resolved", "mapped", rep.Summary.Mapped, "rejected", rep.Summary.Rejected,
		"unmapped", rep.Summary.Unmapped, "missing_fields", len(rep.Summary.MissingFields))

	rep.Records = make([]schema.TargetRecord, 0, t.Len())
	rep.Outcomes = make([][]transform.FieldOutcome, 0, t.Len())

	for i := range t.Len() {
		res := h.transformer.Apply(rep.Mapping, transform.Row{
			Index:    i + 1,
			Cells:    t.Row(i),
			Language: rep.Language.Language,
		})

		rep.Records = append(rep.Records, res.Record)
		rep.Outcomes = append(rep.Outcomes, res.Outcomes)
		rep.Diagnostics.Merge(&res.Diagnostics)
	}

	rep.QualityScore = qualityScore(rep.Outcomes)

	log.Info("rows transformed", "records", len(rep.Records), "quality_score", rep.QualityScore,
		"warnings", len(rep.Diagnostics.Warnings))

	return rep
}

// HarmonizeFile reads in, harmonizes it and writes the CSV to out. A missing
// input fails before anything else happens and no output is written.
func (h *Harmonizer) HarmonizeFile(ctx context.Context, in, out string) (*Report, error) {
	t, diags, err := table.ReadFile(in)
	if err != nil {
		return nil, err
	}

	rep := h.RunTable(ctx, t, diags)

	if err := table.WriteFile(out, rep.Records); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}

	h.logger.Info("output written", "run_id", rep.RunID, "path", out)

	return rep, nil
}
