package schema

import (
	"fmt"
	"slices"
	"strings"
)

// Field is a target schema field name.
type Field string

const (
	VehicleMake   Field = "vehicle_make"
	VehicleModel  Field = "vehicle_model"
	Price         Field = "price"
	FuelType      Field = "fuel_type"
	Year          Field = "year"
	DealerName    Field = "dealer_name"
	Country       Field = "country"
	CustomerName  Field = "customer_name"
	CustomerEmail Field = "customer_email"
	CustomerPhone Field = "customer_phone"
	LeadSource    Field = "lead_source"

	// Unmapped is the sentinel target of a column that matches no field.
	Unmapped Field = "unmapped"
)

// Kind is the declared value kind of a field.
type Kind string

const (
	KindString  Kind = "string"
	KindDecimal Kind = "decimal"
	KindInteger Kind = "integer"
)

type fieldInfo struct {
	kind        Kind
	description string
}

var order = [FieldCount]Field{
	VehicleMake, VehicleModel, Price, FuelType, Year, DealerName,
	Country, CustomerName, CustomerEmail, CustomerPhone, LeadSource,
}

// FieldCount is the number of target fields.
const FieldCount = 11

var info = map[Field]fieldInfo{
	VehicleMake:   {KindString, "Manufacturer/brand (BMW, Mercedes, Audi, Toyota, etc.)"},
	VehicleModel:  {KindString, "Specific model (X5, A4, Golf, Camry, etc.)"},
	Price:         {KindDecimal, "Vehicle price/cost (numbers, currency symbols)"},
	FuelType:      {KindString, "Fuel/energy type (Gasoline, Diesel, Electric, Hybrid, LPG)"},
	Year:          {KindInteger, "Manufacturing/model year (4-digit years)"},
	DealerName:    {KindString, "Dealership, salesperson, or seller name"},
	Country:       {KindString, "Country of sale/origin"},
	CustomerName:  {KindString, "Customer's full name"},
	CustomerEmail: {KindString, "Customer's email address"},
	CustomerPhone: {KindString, "Customer's phone/telephone number"},
	LeadSource:    {KindString, "Lead generation source (website, referral, phone, etc.)"},
}

// Fields returns the target fields in output order.
func Fields() []Field {
	return slices.Clone(order[:])
}

// Header returns the output header row.
func Header() []string {
	out := make([]string, len(order))
	for i, f := range order {
		out[i] = string(f)
	}

	return out
}

// ParseField validates s against the schema. Surrounding whitespace and case
// are ignored. "unmapped" is accepted and returns Unmapped.
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if f == Unmapped || f.Valid() {
		return f, nil
	}

	return Unmapped, fmt.Errorf("%q is not a target schema field", s)
}

// Valid reports whether f is one of the eleven target fields.
func (f Field) Valid() bool {
	_, ok := info[f]
	return ok
}

// Index returns the output position of f, or -1 for anything outside the schema.
func (f Field) Index() int {
	return slices.Index(order[:], f)
}

// Kind returns the declared value kind of f.
func (f Field) Kind() Kind {
	if fi, ok := info[f]; ok {
		return fi.kind
	}

	return KindString
}

// Describe returns the one-line description of f.
func Describe(f Field) string {
	return info[f].description
}
