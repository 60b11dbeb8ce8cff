package transform

import (
	"slices"

	"lead-harmonizer/internal/schema"
)

// Transformation is the named rule applied to one target field.
type Transformation struct {
	Name  string
	Apply Rule
	// Enrich, when set, fills the field for rows that do not carry it.
	Enrich Enricher
}

// Registry holds one transformation per target field.
type Registry struct {
	byField map[schema.Field]Transformation
}

// NewRegistry creates a registry where every field is trimmed only.
func NewRegistry() *Registry {
	r := &Registry{byField: make(map[schema.Field]Transformation, schema.FieldCount)}
	for _, f := range schema.Fields() {
		r.byField[f] = Transformation{Name: "trim", Apply: Trim}
	}

	return r
}

// DefaultRegistry returns the standard rule table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Set(schema.Price, Transformation{Name: "convert_to_decimal", Apply: ConvertToDecimal})
	r.Set(schema.CustomerEmail, Transformation{Name: "validate_email", Apply: ValidateEmail})
	r.Set(schema.CustomerPhone, Transformation{Name: "normalize_phone", Apply: NormalizePhone})
	r.Set(schema.FuelType, Transformation{Name: "normalize_fuel_type", Apply: NormalizeFuelType})
	r.Set(schema.LeadSource, Transformation{Name: "validate_lead_source", Apply: ValidateLeadSource})
	r.Set(schema.Year, Transformation{Name: "check_year", Apply: CheckYear})
	r.Set(schema.Country, Transformation{Name: "infer_country", Apply: CanonicalCountry, Enrich: InferCountry})

	return r
}

// Set replaces the transformation of f. Unknown fields are ignored.
func (r *Registry) Set(f schema.Field, t Transformation) {
	if !f.Valid() || t.Apply == nil {
		return
	}

	r.byField[f] = t
}

// Get returns the transformation of f.
func (r *Registry) Get(f schema.Field) (Transformation, bool) {
	t, ok := r.byField[f]
	return t, ok
}

// Names returns the distinct transformation names, sorted.
func (r *Registry) Names() []string {
	var names []string

	for _, t := range r.byField {
		if !slices.Contains(names, t.Name) {
			names = append(names, t.Name)
		}
	}

	slices.Sort(names)

	return names
}

// NameOf returns the transformation name used for f, or "" if none.
func (r *Registry) NameOf(f schema.Field) string {
	return r.byField[f].Name
}
