// Package mapping provides the YAML mapping file: parsing, validation and
// the export of resolved suggestions.
//
// YAML turns best-effort classification into a deterministic run. A human
// reviews the suggestions of one run, pins the columns they agree with and
// feeds the file back with --mapping.
//
// # Schema Overview
//
//	version: "1"
//	# Pinned columns (highest priority, confidence 1.0)
//	columns:
//	  marca: vehicle_make
//	  codice_concessionario: dealer_name
//	# Columns never classified
//	ignore:
//	  - note_interne
//	# Suggestions from a previous run (informational)
//	auto:
//	  - column: prezzo
//	    field: price
//	    confidence: 0.85
//	    rationale: sample "€198.500" carries a currency marker
//	unresolved:
//	  - column: km
//	    status: unmapped
//	    rationale: no header vocabulary matched
//	# Extra vocabulary merged over the built-in tables
//	rules:
//	  fuel_types:
//	    metano: LPG
//	  countries:
//	    helvetia: Switzerland
//
// # Priority Order
//
//  1. "ignore" entries are never classified
//  2. "columns" pins bypass the classifier
//  3. everything else is classified automatically
//
// Pinning a column to "unmapped" is the same as ignoring it. The "auto" and
// "unresolved" sections are written by ExportSuggestions and are not read
// back as decisions; promote an entry to "columns" to make it binding.
package mapping
