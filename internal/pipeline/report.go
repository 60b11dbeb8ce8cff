package pipeline

import (
	"path/filepath"
	"strings"

	"lead-harmonizer/internal/diagnostic"
	"lead-harmonizer/internal/lang"
	"lead-harmonizer/internal/resolve"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/transform"
)

// Report is everything a run produced.
type Report struct {
	RunID    string
	Encoding string
	// Language is the language detected over all headers.
	Language lang.Detection
	Columns  []schema.SourceColumn
	Mapping  schema.ResolvedMapping
	Summary  resolve.Summary
	Records  []schema.TargetRecord
	// Outcomes holds the per-field outcomes of every row, parallel to Records.
	Outcomes     [][]transform.FieldOutcome
	QualityScore float64
	Diagnostics  *diagnostic.Diagnostics
}

// Results returns the resolved classification of every column.
func (r *Report) Results() []schema.ClassificationResult {
	return r.Mapping.Results()
}

// Languages returns the detected language per column name.
func (r *Report) Languages() map[string]string {
	out := make(map[string]string, len(r.Columns))
	for _, c := range r.Columns {
		out[c.Name] = c.Language
	}

	return out
}

// qualityScore is the share of cell outcomes that are valid, fixed or
// enriched. A run with no outcomes scores 0.
func qualityScore(outcomes [][]transform.FieldOutcome) float64 {
	var good, total int

	for _, row := range outcomes {
		for _, o := range row {
			total++

			if o.Verdict.Good() {
				good++
			}
		}
	}

	if total == 0 {
		return 0
	}

	return float64(good) / float64(total)
}

// DefaultOutputPath returns <dir>/<stem>_harmonized.csv for input.
func DefaultOutputPath(input string) string {
	dir := filepath.Dir(input)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	return filepath.Join(dir, stem+"_harmonized.csv")
}
