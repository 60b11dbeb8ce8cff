package transform

//go:generate go tool stringer -type=Verdict -linecomment -output=verdict_string.go

// Verdict is what a transformation did to one cell.
type Verdict int

const (
	VerdictMissing  Verdict = iota // missing
	VerdictValid                   // valid
	VerdictFixed                   // fixed
	VerdictEnriched                // enriched
	VerdictInvalid                 // invalid
)

// Good reports whether the cell counts towards data quality.
func (v Verdict) Good() bool {
	return v == VerdictValid || v == VerdictFixed || v == VerdictEnriched
}

// MarshalText implements encoding.TextMarshaler.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
