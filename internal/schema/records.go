package schema

import (
	"encoding/json"
	"slices"
)

// SourceColumn is one input header with the evidence used to classify it.
type SourceColumn struct {
	Name    string `json:"name" yaml:"name" msgpack:"name"`
	Ordinal int    `json:"ordinal" yaml:"ordinal" msgpack:"ordinal"`
	// Sample is the first non-empty cell of the column, trimmed.
	Sample string `json:"sample" yaml:"sample" msgpack:"sample"`
	// Translated is the English gloss of Name; equal to Name when no gloss is known.
	Translated string `json:"translated" yaml:"translated" msgpack:"translated"`
	// Language is the ISO 639-1 code detected for Name, or "und".
	Language string `json:"language" yaml:"language" msgpack:"language"`
}

// ClassificationResult is the verdict for one source column.
type ClassificationResult struct {
	Column     string  `json:"column" yaml:"column" msgpack:"column"`
	Ordinal    int     `json:"ordinal" yaml:"ordinal" msgpack:"ordinal"`
	Target     Field   `json:"target" yaml:"target" msgpack:"target"`
	Confidence float64 `json:"confidence" yaml:"confidence" msgpack:"confidence"`
	Rationale  string  `json:"rationale" yaml:"rationale" msgpack:"rationale"`
	Status     Status  `json:"status" yaml:"status" msgpack:"status"`
}

// UnmappedResult returns an unmapped result for col with zero confidence.
func UnmappedResult(col SourceColumn, rationale string) ClassificationResult {
	return ClassificationResult{
		Column:    col.Name,
		Ordinal:   col.Ordinal,
		Target:    Unmapped,
		Rationale: rationale,
		Status:    StatusUnmapped,
	}
}

// ResolvedMapping maps each target field to at most one source column.
// It is immutable once built.
type ResolvedMapping struct {
	results []ClassificationResult
	sources map[Field]string
}

// NewResolvedMapping indexes the mapped entries of results. The caller is
// responsible for having already resolved conflicts; when two mapped entries
// claim the same field the first one wins.
func NewResolvedMapping(results []ClassificationResult) ResolvedMapping {
	m := ResolvedMapping{
		results: slices.Clone(results),
		sources: make(map[Field]string, FieldCount),
	}

	for _, r := range m.results {
		if r.Status != StatusMapped || !r.Target.Valid() {
			continue
		}

		if _, taken := m.sources[r.Target]; !taken {
			m.sources[r.Target] = r.Column
		}
	}

	return m
}

// Source returns the column mapped to f.
func (m ResolvedMapping) Source(f Field) (string, bool) {
	col, ok := m.sources[f]
	return col, ok
}

// Results returns every classification result in column order.
func (m ResolvedMapping) Results() []ClassificationResult {
	return slices.Clone(m.results)
}

// Result returns the result recorded for column.
func (m ResolvedMapping) Result(column string) (ClassificationResult, bool) {
	for _, r := range m.results {
		if r.Column == column {
			return r, true
		}
	}

	return ClassificationResult{}, false
}

// Missing lists target fields that no column maps to, in schema order.
func (m ResolvedMapping) Missing() []Field {
	var out []Field

	for _, f := range order {
		if _, ok := m.sources[f]; !ok {
			out = append(out, f)
		}
	}

	return out
}

// Sources returns a copy of the field -> column index.
func (m ResolvedMapping) Sources() map[Field]string {
	out := make(map[Field]string, len(m.sources))
	for k, v := range m.sources {
		out[k] = v
	}

	return out
}

// TargetRecord is one output row. Every field either carries a value or is
// explicitly missing.
type TargetRecord struct {
	values  [FieldCount]string
	present [FieldCount]bool
}

// Set stores v for f. It is meant for the code building the record; a
// finished record is treated as read-only.
func (r *TargetRecord) Set(f Field, v string) {
	if i := f.Index(); i >= 0 {
		r.values[i] = v
		r.present[i] = true
	}
}

// Get returns the value of f and whether it is present.
func (r TargetRecord) Get(f Field) (string, bool) {
	i := f.Index()
	if i < 0 || !r.present[i] {
		return "", false
	}

	return r.values[i], true
}

// Values returns the cells in output order; missing fields are empty strings.
func (r TargetRecord) Values() []string {
	out := make([]string, FieldCount)
	for i := range order {
		if r.present[i] {
			out[i] = r.values[i]
		}
	}

	return out
}

// Map returns the present fields keyed by field name.
func (r TargetRecord) Map() map[string]string {
	out := make(map[string]string, FieldCount)
	for i, f := range order {
		if r.present[i] {
			out[string(f)] = r.values[i]
		}
	}

	return out
}

// MarshalJSON renders the present fields as an object.
func (r TargetRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}
