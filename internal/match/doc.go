// Package match provides header normalization, Levenshtein distance calculation,
// and candidate ranking of CSV headers against the target schema.
//
// Key functions:
//   - NormalizeHeader: normalizes headers for fuzzy matching (diacritics, case, separators)
//   - Levenshtein: computes rune-level edit distance between strings
//   - RankFields: ranks the target fields a header may correspond to
package match
