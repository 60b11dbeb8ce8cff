// Package store exports harmonization runs to a SQLite database.
//
// Two tables are kept, both keyed by run_id so that several runs can share
// one file:
//
//	leads            one row per harmonized record, one column per field
//	column_mappings  one row per source column with its resolution
package store
