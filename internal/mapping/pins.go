package mapping

import (
	"slices"

	"lead-harmonizer/internal/classify"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/transform"
)

// Pins returns the column decisions of mf. Pins to unknown fields are
// skipped; Validate reports them. A pin to "unmapped" becomes an ignore.
func (mf *MappingFile) Pins() classify.Pins {
	if mf == nil {
		return classify.Pins{}
	}

	pins := classify.Pins{
		Columns: make(map[string]schema.Field, len(mf.Columns)),
		Ignore:  slices.Clone(mf.Ignore),
	}

	for col, value := range mf.Columns {
		f, err := schema.ParseField(value)
		if err != nil {
			continue
		}

		if f == schema.Unmapped {
			pins.Ignore = append(pins.Ignore, col)
			continue
		}

		pins.Columns[col] = f
	}

	slices.Sort(pins.Ignore)

	return pins
}

// Tables returns the built-in lookup tables extended with the rules of mf.
func (mf *MappingFile) Tables() transform.Tables {
	if mf == nil {
		return transform.DefaultTables()
	}

	return transform.DefaultTables().Merge(mf.Rules)
}
