package classify

import (
	"context"
	"slices"

	"lead-harmonizer/internal/schema"
)

// Pins are column decisions taken from a mapping file.
type Pins struct {
	Columns map[string]schema.Field
	Ignore  []string
}

// IsEmpty reports whether p decides nothing.
func (p Pins) IsEmpty() bool {
	return len(p.Columns) == 0 && len(p.Ignore) == 0
}

type pinned struct {
	inner ColumnClassifier
	pins  Pins
}

// WithPins wraps inner so that pinned and ignored columns skip
// classification entirely.
func WithPins(inner ColumnClassifier, pins Pins) ColumnClassifier {
	if pins.IsEmpty() {
		return inner
	}

	return &pinned{inner: inner, pins: pins}
}

func (p *pinned) Classify(ctx context.Context, col schema.SourceColumn) schema.ClassificationResult {
	if slices.Contains(p.pins.Ignore, col.Name) {
		return schema.UnmappedResult(col, "ignored by mapping file")
	}

	if f, ok := p.pins.Columns[col.Name]; ok && f.Valid() {
		return schema.ClassificationResult{
			Column:     col.Name,
			Ordinal:    col.Ordinal,
			Target:     f,
			Confidence: 1,
			Rationale:  "pinned by mapping file",
			Status:     schema.StatusMapped,
		}
	}

	return p.inner.Classify(ctx, col)
}
