package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-harmonizer/internal/classify"
	"lead-harmonizer/internal/schema"
	"lead-harmonizer/internal/table"
)

const header = "vehicle_make,vehicle_model,price,fuel_type,year,dealer_name,country,customer_name,customer_email,customer_phone,lead_source\n"

// fixedClassifier answers from a table, like a deterministic model would.
type fixedClassifier map[string]schema.ClassificationResult

func (f fixedClassifier) Classify(_ context.Context, col schema.SourceColumn) schema.ClassificationResult {
	res, ok := f[col.Name]
	if !ok {
		return schema.UnmappedResult(col, "not in table")
	}

	res.Column = col.Name
	res.Ordinal = col.Ordinal
	res.Status = schema.StatusMapped

	return res
}

func harmonizer(t *testing.T, c classify.ColumnClassifier, workers int) *Harmonizer {
	t.Helper()

	h, err := New(Options{Classifier: c, Workers: workers})
	require.NoError(t, err)

	return h
}

func TestHarmonizeFile_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "leads.csv")
	require.NoError(t, os.WriteFile(in, []byte("marca,email_cliente,prezzo\nFerrari,a.ferrari@libero.it,€198.500\n"), 0o644))

	h := harmonizer(t, fixedClassifier{
		"marca":         {Target: schema.VehicleMake, Confidence: 0.8},
		"email_cliente": {Target: schema.CustomerEmail, Confidence: 1.0},
		"prezzo":        {Target: schema.Price, Confidence: 0.9},
	}, 1)

	out := DefaultOutputPath(in)
	rep, err := h.HarmonizeFile(context.Background(), in, out)
	require.NoError(t, err)

	require.Len(t, rep.Records, 1)

	got := rep.Records[0].Map()
	assert.Equal(t, "Ferrari", got["vehicle_make"])
	assert.Equal(t, "198500.0", got["price"])
	assert.Equal(t, "a.ferrari@libero.it", got["customer_email"])

	for _, f := range schema.Fields() {
		switch f {
		case schema.VehicleMake, schema.Price, schema.CustomerEmail:
		default:
			_, ok := rep.Records[0].Get(f)
			assert.False(t, ok, "%s should be missing", f)
		}
	}

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, header+"Ferrari,,198500.0,,,,,,a.ferrari@libero.it,,\n", string(data))

	assert.Equal(t, 3, rep.Summary.Mapped)
	assert.Len(t, rep.Summary.MissingFields, schema.FieldCount-3)
	assert.InDelta(t, 1.0, rep.QualityScore, 1e-9)
	assert.NotEmpty(t, rep.RunID)
}

func TestRun_PolicyClassifierSameOutput(t *testing.T) {
	stub := classify.StubCapability{
		"marca":         {TargetField: "vehicle_make", Confidence: 0.8},
		"email_cliente": {TargetField: "customer_email", Confidence: 1.0},
		"prezzo":        {TargetField: "price", Confidence: 0.9},
	}
	h := harmonizer(t, classify.New(stub, classify.DefaultConfig(), nil), 1)

	rep, err := h.Run(context.Background(), strings.NewReader("marca,email_cliente,prezzo\nFerrari,A.Ferrari@Libero.IT,€198.500\n"))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{"Ferrari", "", "198500.0", "", "", "", "", "", "a.ferrari@libero.it", "", ""},
		rep.Records[0].Values())

	email, ok := rep.Mapping.Result("email_cliente")
	require.True(t, ok)
	assert.GreaterOrEqual(t, email.Confidence, 0.9)
}

func TestHarmonizeFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.csv")

	h := harmonizer(t, fixedClassifier{}, 1)
	rep, err := h.HarmonizeFile(context.Background(), filepath.Join(dir, "nope.csv"), out)

	require.ErrorIs(t, err, table.ErrInputNotFound)
	assert.Nil(t, rep)
	assert.NoFileExists(t, out)
}

func TestRun_Conflict(t *testing.T) {
	h := harmonizer(t, fixedClassifier{
		"cliente_nome":   {Target: schema.CustomerName, Confidence: 0.6},
		"nombre_cliente": {Target: schema.CustomerName, Confidence: 0.9},
	}, 1)

	rep, err := h.Run(context.Background(), strings.NewReader("cliente_nome,nombre_cliente\nMario Rossi,Carlos García\n"))
	require.NoError(t, err)

	src, ok := rep.Mapping.Source(schema.CustomerName)
	require.True(t, ok)
	assert.Equal(t, "nombre_cliente", src)

	loser, _ := rep.Mapping.Result("cliente_nome")
	assert.Equal(t, schema.StatusRejected, loser.Status)
	assert.Equal(t, 1, rep.Summary.Rejected)

	name, _ := rep.Records[0].Get(schema.CustomerName)
	assert.Equal(t, "Carlos García", name)

	country, _ := rep.Records[0].Get(schema.Country)
	assert.Equal(t, "Spain", country, "inferred from the winning name column")
}

const multilingual = `Marca,Modello,Prezzo,Kraftstoff,Année,Concessionario,Kunde,email_cliente,Telefono,Fuente,note
BMW,X5,€65.000,Benzin,2022,Autohaus Berlin,Hans Becker,h.becker@web.de,+49 30 1234567,Sito Web,
Renault,Clio,"12.500 €",Essence,2019,Garage Pierre,Marie Dubois,MARIE@ORANGE.FR,+33 1 23456789,Empfehlung,richiamare
Fiat,500e,"$30,000",Elettrico,2023,,Giovanni Bianchi,g.bianchi@libero,333-1234567,passaparola,
`

func TestRun_WorkersDoNotChangeOutput(t *testing.T) {
	c := classify.New(classify.RuleCapability{}, classify.DefaultConfig(), nil)

	seq, err := harmonizer(t, c, 1).Run(context.Background(), strings.NewReader(multilingual))
	require.NoError(t, err)

	par, err := harmonizer(t, c, 6).Run(context.Background(), strings.NewReader(multilingual))
	require.NoError(t, err)

	assert.Equal(t, seq.Results(), par.Results())
	assert.Equal(t, seq.Records, par.Records)
}

func TestRun_Multilingual(t *testing.T) {
	c := classify.New(classify.RuleCapability{}, classify.DefaultConfig(), nil)

	rep, err := harmonizer(t, c, 4).Run(context.Background(), strings.NewReader(multilingual))
	require.NoError(t, err)
	require.Len(t, rep.Records, 3)

	sources := rep.Mapping.Sources()
	assert.Equal(t, "Marca", sources[schema.VehicleMake])
	assert.Equal(t, "Prezzo", sources[schema.Price])
	assert.Equal(t, "Kraftstoff", sources[schema.FuelType])
	assert.Equal(t, "email_cliente", sources[schema.CustomerEmail])
	assert.Equal(t, "Telefono", sources[schema.CustomerPhone])

	note, _ := rep.Mapping.Result("note")
	assert.Equal(t, schema.StatusUnmapped, note.Status)

	bmw := rep.Records[0].Map()
	assert.Equal(t, "65000.0", bmw["price"])
	assert.Equal(t, "Gasoline", bmw["fuel_type"])
	assert.Equal(t, "Germany", bmw["country"])

	renault := rep.Records[1].Map()
	assert.Equal(t, "12500.0", renault["price"])
	assert.Equal(t, "marie@orange.fr", renault["customer_email"])
	assert.Equal(t, "Referral", renault["lead_source"])

	// the bad email is kept as is and reported
	fiat := rep.Records[2].Map()
	assert.Equal(t, "g.bianchi@libero", fiat["customer_email"])
	assert.NotEmpty(t, rep.Diagnostics.ByCode("invalid_email"))

	assert.Greater(t, rep.QualityScore, 0.5)
	assert.Less(t, rep.QualityScore, 1.0)
	assert.Equal(t, "it", rep.Language.Language)
}

func TestRun_Pins(t *testing.T) {
	h, err := New(Options{
		Classifier: classify.New(classify.RuleCapability{}, classify.DefaultConfig(), nil),
		Pins: classify.Pins{
			Columns: map[string]schema.Field{"codice": schema.DealerName},
			Ignore:  []string{"Marca"},
		},
	})
	require.NoError(t, err)

	rep, err := h.Run(context.Background(), strings.NewReader("Marca,codice\nBMW,D-042\n"))
	require.NoError(t, err)

	assert.Equal(t, "D-042", rep.Records[0].Map()["dealer_name"])

	_, ok := rep.Records[0].Get(schema.VehicleMake)
	assert.False(t, ok)
}

func TestNew_RequiresClassifier(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestDefaultOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "leads_harmonized.csv"), DefaultOutputPath(filepath.Join("data", "leads.csv")))
	assert.Equal(t, "leads_harmonized.csv", DefaultOutputPath("leads"))
}
