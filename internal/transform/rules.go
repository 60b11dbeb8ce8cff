package transform

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"lead-harmonizer/internal/common"
	"lead-harmonizer/internal/lang"
	"lead-harmonizer/internal/match"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/syntax"
)

// Diagnostic codes attached to outcomes.
const (
	CodeInvalidPrice      = "invalid_price"
	CodeAmbiguousDecimal  = "ambiguous_decimal"
	CodeInvalidEmail      = "invalid_email"
	CodeInvalidPhone      = "invalid_phone"
	CodeUnknownFuelType   = "unknown_fuel_type"
	CodeUnknownLeadSource = "unknown_lead_source"
	CodeSuspectYear       = "suspect_year"
	CodeInferredCountry   = "inferred_country"
)

const (
	minYear = 1900
	maxYear = 2100
)

// Outcome is the result of one transformation.
type Outcome struct {
	Value   string  `json:"value" msgpack:"value"`
	Missing bool    `json:"missing" msgpack:"missing"`
	Verdict Verdict `json:"verdict" msgpack:"verdict"`
	Code    string  `json:"code,omitempty" msgpack:"code,omitempty"`
	Note    string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Missing returns an outcome for a cell with no value.
func Missing() Outcome {
	return Outcome{Missing: true, Verdict: VerdictMissing}
}

// RowContext gives a rule read access to the rest of the row.
type RowContext struct {
	Row      int
	Language string

	raw    map[schema.Field]string
	tables *index
}

// Raw returns the untransformed value mapped to f in this row.
func (c RowContext) Raw(f schema.Field) (string, bool) {
	v, ok := c.raw[f]
	return v, ok
}

// Rule transforms a non-empty cell value.
type Rule func(value string, row RowContext) Outcome

// Enricher produces a value for a field the row does not carry.
type Enricher func(row RowContext) Outcome

func settle(original, value string) Outcome {
	if value == original {
		return Outcome{Value: value, Verdict: VerdictValid}
	}

	return Outcome{Value: value, Verdict: VerdictFixed}
}

func invalid(value, code, note string) Outcome {
	return Outcome{Value: value, Verdict: VerdictInvalid, Code: code, Note: note}
}

// Trim passes the value through without surrounding whitespace.
func Trim(value string, _ RowContext) Outcome {
	return settle(value, strings.TrimSpace(value))
}

// ConvertToDecimal parses a currency amount. A value without digits or a
// negative amount leaves the field missing.
func ConvertToDecimal(value string, _ RowContext) Outcome {
	amount, err := syntax.ParseAmount(value)
	if err != nil {
		out := invalid("", CodeInvalidPrice, fmt.Sprintf("price %q: %v", value, err))
		out.Missing = true

		return out
	}

	out := settle(value, syntax.FormatDecimal(amount.Value))
	if amount.Ambiguous {
		out.Code = CodeAmbiguousDecimal
		out.Note = fmt.Sprintf("price %q read as %s; the separator could also be a decimal point", value, out.Value)
	}

	return out
}

// ValidateEmail lowercases a well-formed address and flags anything else.
func ValidateEmail(value string, _ RowContext) Outcome {
	trimmed := strings.TrimSpace(value)
	if !syntax.IsEmail(trimmed) {
		return invalid(value, CodeInvalidEmail, fmt.Sprintf("%q is not an email address", value))
	}

	return settle(value, strings.ToLower(trimmed))
}

// NormalizePhone accepts displayable phone numbers as they are.
func NormalizePhone(value string, _ RowContext) Outcome {
	trimmed := strings.TrimSpace(value)
	if !syntax.IsPhone(trimmed) {
		return invalid(value, CodeInvalidPhone, fmt.Sprintf("%q is not a phone number", value))
	}

	return settle(value, trimmed)
}

// NormalizeFuelType maps fuel synonyms to the canonical fuel names.
func NormalizeFuelType(value string, row RowContext) Outcome {
	return lookup(value, row.tables.fuel, CodeUnknownFuelType, "fuel type")
}

// ValidateLeadSource maps lead source synonyms to the canonical channels.
func ValidateLeadSource(value string, row RowContext) Outcome {
	return lookup(value, row.tables.lead, CodeUnknownLeadSource, "lead source")
}

func lookup(value string, table map[string]string, code, what string) Outcome {
	trimmed := strings.TrimSpace(value)
	if canonical, ok := table[lookupKey(trimmed)]; ok {
		return settle(value, canonical)
	}

	// unknown values pass through
	return invalid(trimmed, code, fmt.Sprintf("%s %q not in vocabulary", what, trimmed))
}

// CheckYear keeps the value but flags anything that is not a plausible
// four-digit model year.
func CheckYear(value string, _ RowContext) Outcome {
	trimmed := strings.TrimSpace(value)

	y, err := strconv.Atoi(trimmed)
	if err != nil || len(trimmed) != 4 || !common.IsInRange(minYear, y, maxYear) {
		return invalid(trimmed, CodeSuspectYear, fmt.Sprintf("%q is not a model year", trimmed))
	}

	return settle(value, trimmed)
}

// CanonicalCountry maps localized country names to the canonical name and
// keeps unknown names as they are.
func CanonicalCountry(value string, row RowContext) Outcome {
	trimmed := strings.TrimSpace(value)
	if canonical, ok := row.tables.countries[lookupKey(trimmed)]; ok {
		return settle(value, canonical)
	}

	return settle(value, trimmed)
}

// InferCountry guesses the country of a row from first names in the
// customer and dealer names. The header language only breaks ties between
// countries sharing a name. Without a recognizable name the field stays
// missing.
func InferCountry(row RowContext) Outcome {
	hinted, hasHint := lang.CountryOf(row.Language)

	for _, f := range []schema.Field{schema.CustomerName, schema.DealerName} {
		raw, ok := row.Raw(f)
		if !ok {
			continue
		}

		for _, tok := range match.Tokenize(raw) {
			countries := row.tables.names[tok]
			if len(countries) == 0 {
				continue
			}

			country := countries[0]
			if hasHint && slices.Contains(countries, hinted) {
				country = hinted
			}

			return Outcome{
				Value:   country,
				Verdict: VerdictEnriched,
				Code:    CodeInferredCountry,
				Note:    fmt.Sprintf("country inferred from %s first name %q", f, tok),
			}
		}
	}

	return Missing()
}
