// Package diagnostic provides structured warnings, errors, and
// "why this mapped" explanations for a harmonization run.
//
// Key capabilities:
//   - Reader warnings for ragged rows and renamed headers
//   - Classification failures downgraded to unmapped columns
//   - Per-cell transformation flags (invalid email, invalid phone, ambiguous price)
//   - Mapping file validation errors
package diagnostic
