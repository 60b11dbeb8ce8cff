// Package table reads lead CSV files into memory and writes harmonized ones.
//
// The reader is tolerant: it detects UTF-8 (with or without BOM), UTF-16 with
// a BOM and falls back to Windows-1252 for anything that is not valid UTF-8.
// Ragged rows are padded or truncated, blank and duplicate headers are
// renamed, and every such repair is reported as a diagnostic. Only a missing
// or empty input is an error.
//
// The writer always emits the fixed target schema header and writes files
// atomically, so a failed run never leaves a partial output behind.
package table
