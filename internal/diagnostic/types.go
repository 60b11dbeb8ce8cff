package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"lead-harmonizer/internal/common"
)

// Diagnostics holds all diagnostic information collected during a run.
type Diagnostics struct {
	Errors   []Diagnostic `json:"errors,omitempty" msgpack:"errors,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty" msgpack:"warnings,omitempty"`
	Infos    []Diagnostic `json:"infos,omitempty" msgpack:"infos,omitempty"`
}

// Location points a diagnostic at a source column, a target field, a data row,
// or any combination of those. Row is 1-based; zero means "not row specific".
type Location struct {
	Column string `json:"column,omitempty" msgpack:"column,omitempty"`
	Field  string `json:"field,omitempty" msgpack:"field,omitempty"`
	Row    int    `json:"row,omitempty" msgpack:"row,omitempty"`
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity `json:"severity" msgpack:"severity"`
	// Code is a unique identifier for this type of diagnostic.
	Code string `json:"code" msgpack:"code"`
	// Message is the human-readable description.
	Message string `json:"message" msgpack:"message"`
	// Location identifies what the diagnostic relates to.
	Location
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText renders the severity by name in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// New builds a diagnostic without attaching it to a collection.
func New(severity Severity, code, message string, loc Location) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  message,
		Location: loc,
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message string, loc Location) {
	d.Errors = append(d.Errors, New(SeverityError, code, message, loc))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message string, loc Location) {
	d.Warnings = append(d.Warnings, New(SeverityWarning, code, message, loc))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message string, loc Location) {
	d.Infos = append(d.Infos, New(SeverityInfo, code, message, loc))
}

// Add files an already built diagnostic under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Count returns the total number of diagnostics of every severity.
func (d *Diagnostics) Count() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// ByCode returns every diagnostic with the given code, errors first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				out = append(out, diag)
			}
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Row > 0 {
		prefix = append(prefix, fmt.Sprintf("[row %d]", d.Row))
	}

	if d.Column != "" {
		prefix = append(prefix, d.Column)
	}

	if d.Field != "" {
		prefix = append(prefix, "->"+d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
