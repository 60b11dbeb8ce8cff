package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeHeader normalizes a CSV header for fuzzy matching.
// The normalization pipeline:
// 1. Strip diacritics ("Préço" -> "Preco").
// 2. Tokenize CamelCase and split on separators.
// 3. Case-fold to lower.
// 4. Join the tokens without separators.
func NormalizeHeader(s string) string {
	return strings.Join(Tokenize(s), "")
}

// Tokenize splits a header into normalized lowercase tokens.
// Examples:
//   - "email_cliente" -> ["email", "cliente"]
//   - "KundenTelefon" -> ["kunden", "telefon"]
//   - "Année Modèle" -> ["annee", "modele"]
func Tokenize(s string) []string {
	tokens := tokenizeCamelCase(StripDiacritics(strings.TrimSpace(s)))
	for i, t := range tokens {
		tokens[i] = strings.ToLower(t)
	}

	return tokens
}

// StripDiacritics removes combining marks after canonical decomposition.
// Letters without a decomposition (ß, ø) are kept as they are.
func StripDiacritics(s string) string {
	// transform.Chain keeps state, so each call builds its own chain.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return out
}

// tokenizeCamelCase splits s on separators and on case boundaries. A run
// of capitals stays one token unless it is followed by a lowercase letter,
// which starts the next word: "VINNumber" is "VIN" and "Number".
func tokenizeCamelCase(s string) []string {
	var (
		tokens []string
		start  = -1
	)

	rs := []rune(s)
	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, string(rs[start:end]))
		}

		start = -1
	}

	for i, r := range rs {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush(i)
		case start < 0:
			start = i
		case wordBoundary(rs, i):
			flush(i)
			start = i
		}
	}

	flush(len(rs))

	return tokens
}

// wordBoundary reports whether an uppercase rune at i begins a new word:
// after a lowercase letter or digit, or as the last capital of an acronym
// that runs into a lowercase letter.
func wordBoundary(rs []rune, i int) bool {
	if !unicode.IsUpper(rs[i]) {
		return false
	}

	if !unicode.IsUpper(rs[i-1]) {
		return true
	}

	return i+1 < len(rs) && unicode.IsLower(rs[i+1])
}
