package transform

import (
	"strings"

	"lead-harmonizer/internal/diagnostic"
	"lead-harmonizer/internal/schema"
)

// Row is one input record keyed by source column name.
type Row struct {
	// Index is the 1-based data row number, header excluded.
	Index int
	Cells map[string]string
	// Language is the header language detected for the file.
	Language string
}

// FieldOutcome pairs an outcome with its field.
type FieldOutcome struct {
	Field schema.Field `json:"field" msgpack:"field"`
	Outcome
}

// RowResult is everything Apply learned about one row.
type RowResult struct {
	Record schema.TargetRecord
	// Outcomes lists the fields that had a source or an enrichment, in
	// schema order.
	Outcomes    []FieldOutcome
	Diagnostics diagnostic.Diagnostics
}

// Transformer applies a Registry to rows. It is safe for concurrent use.
type Transformer struct {
	registry *Registry
	tables   *index
}

// New returns a transformer using registry and tables. A nil registry means
// DefaultRegistry.
func New(registry *Registry, tables Tables) *Transformer {
	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Transformer{registry: registry, tables: newIndex(tables)}
}

// Default returns a transformer with the built-in rules and tables.
func Default() *Transformer {
	return New(nil, DefaultTables())
}

// Registry returns the rule table in use.
func (t *Transformer) Registry() *Registry {
	return t.registry
}

// Apply builds the target record for row. It never fails: problems with a
// cell are recorded as diagnostics and the rest of the row goes on.
func (t *Transformer) Apply(m schema.ResolvedMapping, row Row) RowResult {
	ctx := RowContext{
		Row:      row.Index,
		Language: row.Language,
		raw:      make(map[schema.Field]string, schema.FieldCount),
		tables:   t.tables,
	}

	for f, col := range m.Sources() {
		if v, ok := row.Cells[col]; ok {
			ctx.raw[f] = v
		}
	}

	var res RowResult

	for _, f := range schema.Fields() {
		tr, ok := t.registry.Get(f)
		if !ok {
			continue
		}

		col, mapped := m.Source(f)
		value := ctx.raw[f]

		var out Outcome

		switch {
		case mapped && strings.TrimSpace(value) != "":
			out = tr.Apply(value, ctx)
		case tr.Enrich != nil:
			out = tr.Enrich(ctx)
			if out.Missing && !mapped {
				continue
			}
		case mapped:
			out = Missing()
		default:
			continue
		}

		if !out.Missing {
			res.Record.Set(f, out.Value)
		}

		res.Outcomes = append(res.Outcomes, FieldOutcome{Field: f, Outcome: out})

		if out.Code != "" {
			loc := diagnostic.Location{Row: row.Index, Column: col, Field: string(f)}
			if out.Verdict == VerdictInvalid {
				res.Diagnostics.AddWarning(out.Code, out.Note, loc)
			} else {
				res.Diagnostics.AddInfo(out.Code, out.Note, loc)
			}
		}
	}

	return res
}
