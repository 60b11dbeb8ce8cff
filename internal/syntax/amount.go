package syntax

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Convention is the digit grouping implied by a currency marker.
type Convention string

const (
	// ConventionUnknown means no marker was present.
	ConventionUnknown Convention = ""
	// ConventionEuropean groups thousands with "." and uses "," for decimals.
	ConventionEuropean Convention = "european"
	// ConventionUS groups thousands with "," and uses "." for decimals.
	ConventionUS Convention = "us"
)

var (
	ErrNoDigits = errors.New("no digits in amount")
	ErrNegative = errors.New("amount is negative")
)

// Amount is a parsed currency value.
type Amount struct {
	Value      float64
	Symbol     string
	Convention Convention
	// Ambiguous is set when a single separator followed by exactly three
	// digits was read without a leading marker confirming the convention.
	// "198.500" may be 198500 or 198.5.
	Ambiguous bool
}

type marker struct {
	text       string
	convention Convention
	// code markers are ISO codes and only count as a whole word.
	code bool
}

// markers are tried in order. "Europa" and "Monsieur" carry no marker.
var markers = []marker{
	{"EUR", ConventionEuropean, true},
	{"USD", ConventionUS, true},
	{"GBP", ConventionUS, true},
	{"€", ConventionEuropean, false},
	{"$", ConventionUS, false},
	{"£", ConventionUS, false},
}

var isoCodePattern = regexp.MustCompile(`(?:^|[^\p{L}])(EUR|USD|GBP)(?:[^\p{L}]|$)`)

// findMarker locates the first marker of the table in upper, an
// upper-cased amount, and returns its byte offset.
func findMarker(upper string) (marker, int, bool) {
	codes := make(map[string]int)
	for _, loc := range isoCodePattern.FindAllStringSubmatchIndex(upper, -1) {
		if code := upper[loc[2]:loc[3]]; codes[code] == 0 {
			codes[code] = loc[2] + 1
		}
	}

	for _, m := range markers {
		if m.code {
			if at := codes[m.text]; at > 0 {
				return m, at - 1, true
			}

			continue
		}

		if idx := strings.Index(upper, m.text); idx >= 0 {
			return m, idx, true
		}
	}

	return marker{}, -1, false
}

// HasCurrencyMarker reports whether s contains a currency symbol or a
// standalone ISO code.
func HasCurrencyMarker(s string) bool {
	_, _, ok := findMarker(strings.ToUpper(s))
	return ok
}

// ParseAmount parses a non-negative currency amount.
//
// The marker decides the convention wherever it sits: "€" and "EUR" mean
// European grouping, "$", "£", "USD" and "GBP" mean US grouping. When both
// "." and "," appear, the last one is the decimal separator. A lone separator
// followed by exactly three digits is a thousands separator unless the
// convention makes it the decimal point. A trailing US marker over such a
// group ("45,000 USD", "12.500 $") is flagged ambiguous, since the layout
// is European.
func ParseAmount(s string) (Amount, error) {
	var a Amount

	raw := strings.TrimSpace(s)
	upper := strings.ToUpper(raw)
	disputed := false

	if m, idx, ok := findMarker(upper); ok {
		a.Symbol = m.text
		a.Convention = m.convention

		trailing := strings.TrimSpace(upper[:idx]) != "" && strings.TrimSpace(upper[idx+len(m.text):]) == ""
		disputed = trailing && m.convention != ConventionEuropean

		upper = upper[:idx] + upper[idx+len(m.text):]
	}

	var digits strings.Builder

	negative := false
	seenDigit := false

	for _, r := range upper {
		switch {
		case unicode.IsDigit(r):
			seenDigit = true

			digits.WriteRune(r)
		case r == '.' || r == ',':
			digits.WriteRune(r)
		case r == '-' && !seenDigit:
			negative = true
		}
	}

	if !seenDigit {
		return a, fmt.Errorf("parse amount %q: %w", s, ErrNoDigits)
	}

	if negative {
		return a, fmt.Errorf("parse amount %q: %w", s, ErrNegative)
	}

	normalized, ambiguous := normalizeSeparators(digits.String(), a.Convention)
	a.Ambiguous = ambiguous || (disputed && loneThousandsGroup(digits.String()))

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return a, fmt.Errorf("parse amount %q: %w", s, err)
	}

	a.Value = v

	return a, nil
}

// normalizeSeparators rewrites s so that strconv.ParseFloat can read it.
func normalizeSeparators(s string, conv Convention) (string, bool) {
	s = strings.TrimRight(s, ".,")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		decimal := "."
		if lastComma > lastDot {
			decimal = ","
		}

		return toDecimal(s, decimal), false

	case lastDot < 0 && lastComma < 0:
		return s, false
	}

	sep := "."
	if lastComma >= 0 {
		sep = ","
	}

	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, ""), false
	}

	tail := s[strings.Index(s, sep)+1:]
	if len(tail) != 3 {
		return toDecimal(s, sep), false
	}

	// Three-digit group: read as thousands unless the marker says otherwise.
	switch {
	case conv == ConventionEuropean && sep == ",":
		return toDecimal(s, sep), false
	case conv == ConventionUS && sep == ".":
		return toDecimal(s, sep), false
	case conv == ConventionUnknown:
		return strings.ReplaceAll(s, sep, ""), true
	default:
		return strings.ReplaceAll(s, sep, ""), false
	}
}

// loneThousandsGroup reports whether s has a single separator followed by
// exactly three digits.
func loneThousandsGroup(s string) bool {
	s = strings.TrimRight(s, ".,")
	if strings.Count(s, ".")+strings.Count(s, ",") != 1 {
		return false
	}

	return len(s)-strings.IndexAny(s, ".,")-1 == 3
}

// toDecimal drops every separator except the last occurrence of decimal,
// which becomes ".".
func toDecimal(s, decimal string) string {
	idx := strings.LastIndex(s, decimal)
	intPart := strings.NewReplacer(".", "", ",", "").Replace(s[:idx])
	frac := s[idx+1:]

	return intPart + "." + frac
}

// FormatDecimal renders v with a trailing ".0" for integral values, so that
// 198500 prints as "198500.0".
func FormatDecimal(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}

	return out
}
