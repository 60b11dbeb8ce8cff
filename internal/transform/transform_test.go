package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-harmonizer/internal/schema"
)

func defaultContext() RowContext {
	return RowContext{tables: newIndex(DefaultTables())}
}

func TestConvertToDecimal(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		missing   bool
		ambiguous bool
	}{
		{in: "€198.500", want: "198500.0"},
		{in: "$45,000", want: "45000.0"},
		{in: "1.234,56 €", want: "1234.56"},
		{in: "45,000.50", want: "45000.5"},
		{in: "32000", want: "32000.0"},
		{in: "198.500", want: "198500.0", ambiguous: true},
		{in: "€", missing: true},
		{in: "on request", missing: true},
		{in: "-5.000 €", missing: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := ConvertToDecimal(tt.in, defaultContext())

			assert.Equal(t, tt.missing, out.Missing)

			if tt.missing {
				assert.Equal(t, VerdictInvalid, out.Verdict)
				assert.Equal(t, CodeInvalidPrice, out.Code)

				return
			}

			assert.Equal(t, tt.want, out.Value)
			assert.Equal(t, VerdictFixed, out.Verdict)

			if tt.ambiguous {
				assert.Equal(t, CodeAmbiguousDecimal, out.Code)
			} else {
				assert.Empty(t, out.Code)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	out := ValidateEmail("A.Ferrari@Libero.IT", defaultContext())
	assert.Equal(t, "a.ferrari@libero.it", out.Value)
	assert.Equal(t, VerdictFixed, out.Verdict)

	out = ValidateEmail("a.ferrari@libero.it", defaultContext())
	assert.Equal(t, VerdictValid, out.Verdict)

	out = ValidateEmail("Ferrari at libero", defaultContext())
	assert.Equal(t, "Ferrari at libero", out.Value)
	assert.False(t, out.Missing)
	assert.Equal(t, VerdictInvalid, out.Verdict)
	assert.Equal(t, CodeInvalidEmail, out.Code)
}

func TestNormalizePhone(t *testing.T) {
	out := NormalizePhone("+39 333 1234567", defaultContext())
	assert.Equal(t, "+39 333 1234567", out.Value)
	assert.Equal(t, VerdictValid, out.Verdict)

	out = NormalizePhone("call me", defaultContext())
	assert.Equal(t, "call me", out.Value)
	assert.Equal(t, VerdictInvalid, out.Verdict)
	assert.Equal(t, CodeInvalidPhone, out.Code)
}

func TestNormalizeFuelType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Benzina", "Gasoline"},
		{"Électrique", "Electric"},
		{"ELEKTRISCH", "Electric"},
		{"elétrico", "Electric"},
		{" gasoil ", "Diesel"},
		{"Híbrido", "Hybrid"},
		{"GPL", "LPG"},
		{"Diesel", "Diesel"},
		{"unknownfuel", "unknownfuel"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFuelType(tt.in, defaultContext()).Value)
		})
	}

	assert.Equal(t, VerdictValid, NormalizeFuelType("Diesel", defaultContext()).Verdict)
	assert.Equal(t, CodeUnknownFuelType, NormalizeFuelType("unknownfuel", defaultContext()).Code)
}

func TestValidateLeadSource(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sito Web", "Website"},
		{"web", "Website"},
		{"Empfehlung", "Referral"},
		{"Téléphone", "Phone"},
		{"Autohaus", "Showroom"},
		{"fiera", "fiera"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLeadSource(tt.in, defaultContext()).Value)
		})
	}
}

func TestCheckYear(t *testing.T) {
	assert.Equal(t, VerdictValid, CheckYear("2021", defaultContext()).Verdict)
	assert.Equal(t, VerdictFixed, CheckYear(" 2021", defaultContext()).Verdict)

	for _, in := range []string{"21", "1850", "20xx", "02021"} {
		out := CheckYear(in, defaultContext())
		assert.Equal(t, in, out.Value)
		assert.Equal(t, CodeSuspectYear, out.Code, in)
	}
}

func TestCanonicalCountry(t *testing.T) {
	assert.Equal(t, "Italy", CanonicalCountry("Italia", defaultContext()).Value)
	assert.Equal(t, "Germany", CanonicalCountry("deutschland", defaultContext()).Value)
	assert.Equal(t, "Spain", CanonicalCountry("España", defaultContext()).Value)
	assert.Equal(t, "Andorra", CanonicalCountry(" Andorra ", defaultContext()).Value)
}

func TestInferCountry(t *testing.T) {
	ctx := func(lang string, raw map[schema.Field]string) RowContext {
		c := defaultContext()
		c.Language = lang
		c.raw = raw

		return c
	}

	tests := []struct {
		name string
		ctx  RowContext
		want string
	}{
		{"customer first name", ctx("", map[schema.Field]string{schema.CustomerName: "Hans Becker"}), Germany},
		{"diacritics folded", ctx("", map[schema.Field]string{schema.CustomerName: "João Silva"}), Portugal},
		{"shared name uses first country", ctx("", map[schema.Field]string{schema.CustomerName: "José Martins"}), Spain},
		{"shared name follows header language", ctx("pt", map[schema.Field]string{schema.CustomerName: "José Martins"}), Portugal},
		{"dealer name", ctx("", map[schema.Field]string{schema.DealerName: "Garage Pierre"}), France},
		{"second name token", ctx("", map[schema.Field]string{schema.CustomerName: "Rossi, Mario"}), Italy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := InferCountry(tt.ctx)

			assert.Equal(t, tt.want, out.Value)
			assert.Equal(t, VerdictEnriched, out.Verdict)
			assert.Equal(t, CodeInferredCountry, out.Code)
		})
	}
}

func TestInferCountry_NoEvidenceStaysMissing(t *testing.T) {
	c := defaultContext()
	c.Language = "it"
	c.raw = map[schema.Field]string{schema.CustomerName: "Zed"}

	out := InferCountry(c)
	assert.True(t, out.Missing)
	assert.Empty(t, out.Code)

	c.raw = nil
	assert.True(t, InferCountry(c).Missing)
}

func TestTablesMerge(t *testing.T) {
	base := DefaultTables()
	merged := base.Merge(Tables{
		FuelTypes:  map[string]string{"metano": "CNG", "benzina": "Petrol"},
		FirstNames: map[string][]string{Italy: {"chiara"}},
	})

	assert.Equal(t, "Petrol", merged.FuelTypes["benzina"])
	assert.Equal(t, "CNG", merged.FuelTypes["metano"])
	assert.Contains(t, merged.FirstNames[Italy], "chiara")
	assert.Contains(t, merged.FirstNames[Italy], "giovanni")

	// base untouched
	assert.Equal(t, "Gasoline", base.FuelTypes["benzina"])
	assert.NotContains(t, base.FirstNames[Italy], "chiara")
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, "convert_to_decimal", r.NameOf(schema.Price))
	assert.Equal(t, "trim", r.NameOf(schema.VehicleMake))
	assert.Equal(t, []string{
		"check_year", "convert_to_decimal", "infer_country", "normalize_fuel_type",
		"normalize_phone", "trim", "validate_email", "validate_lead_source",
	}, r.Names())

	r.Set(schema.Unmapped, Transformation{Name: "nope", Apply: Trim})
	assert.NotContains(t, r.Names(), "nope")

	tr, ok := r.Get(schema.Country)
	require.True(t, ok)
	assert.NotNil(t, tr.Enrich)
}

func TestTransformer_Apply(t *testing.T) {
	m := schema.NewResolvedMapping([]schema.ClassificationResult{
		{Column: "marca", Target: schema.VehicleMake, Confidence: 0.8, Status: schema.StatusMapped},
		{Column: "email_cliente", Ordinal: 1, Target: schema.CustomerEmail, Confidence: 1, Status: schema.StatusMapped},
		{Column: "prezzo", Ordinal: 2, Target: schema.Price, Confidence: 0.9, Status: schema.StatusMapped},
		{Column: "telefono", Ordinal: 3, Target: schema.CustomerPhone, Confidence: 0.9, Status: schema.StatusMapped},
		{Column: "cliente", Ordinal: 4, Target: schema.CustomerName, Confidence: 0.9, Status: schema.StatusMapped},
	})

	res := Default().Apply(m, Row{
		Index: 1,
		Cells: map[string]string{
			"marca":         " Ferrari ",
			"email_cliente": "A.Ferrari@Libero.IT",
			"prezzo":        "trattabile",
			"telefono":      "",
			"cliente":       "Giovanni Rossi",
			"note":          "ignored",
		},
		Language: "it",
	})

	brand, _ := res.Record.Get(schema.VehicleMake)
	assert.Equal(t, "Ferrari", brand)

	email, _ := res.Record.Get(schema.CustomerEmail)
	assert.Equal(t, "a.ferrari@libero.it", email)

	_, ok := res.Record.Get(schema.Price)
	assert.False(t, ok, "unparsable price stays missing")

	_, ok = res.Record.Get(schema.CustomerPhone)
	assert.False(t, ok, "empty phone stays missing")

	country, _ := res.Record.Get(schema.Country)
	assert.Equal(t, Italy, country)

	_, ok = res.Record.Get(schema.FuelType)
	assert.False(t, ok)

	// mapped fields plus the enriched country
	assert.Len(t, res.Outcomes, 6)
	require.Len(t, res.Diagnostics.ByCode(CodeInvalidPrice), 1)
	assert.Equal(t, "prezzo", res.Diagnostics.ByCode(CodeInvalidPrice)[0].Column)
	assert.Len(t, res.Diagnostics.ByCode(CodeInferredCountry), 1)
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "enriched", VerdictEnriched.String())
	assert.True(t, VerdictFixed.Good())
	assert.False(t, VerdictInvalid.Good())
	assert.False(t, VerdictMissing.Good())
}
