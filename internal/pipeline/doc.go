// Package pipeline runs one harmonization: read the table, gloss and detect
// header languages, classify every column, resolve conflicts, transform every
// row and, for files, write the result.
//
// The stages are plain sequential function calls. The only fan-out is the
// optional classifier worker pool, which does not change the result.
package pipeline
