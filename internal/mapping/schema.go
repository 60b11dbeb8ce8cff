package mapping

import (
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/transform"
)

// CurrentVersion is the only mapping file version understood.
const CurrentVersion = "1"

// MappingFile is the root of a YAML mapping file.
type MappingFile struct {
	Version string `yaml:"version"`
	// Columns pins source columns to target fields.
	Columns map[string]string `yaml:"columns,omitempty"`
	// Ignore lists source columns that are never classified.
	Ignore []string `yaml:"ignore,omitempty"`
	// Auto holds the mapped suggestions of a previous run.
	Auto []AutoEntry `yaml:"auto,omitempty"`
	// Unresolved holds rejected and unmapped columns of a previous run.
	Unresolved []AutoEntry `yaml:"unresolved,omitempty"`
	// Rules extends the built-in lookup tables.
	Rules transform.Tables `yaml:"rules,omitempty"`
}

// AutoEntry records one classification outcome for human review.
type AutoEntry struct {
	Column     string        `yaml:"column"`
	Field      schema.Field  `yaml:"field,omitempty"`
	Confidence float64       `yaml:"confidence,omitempty"`
	Status     schema.Status `yaml:"status"`
	Rationale  string        `yaml:"rationale,omitempty"`
}
