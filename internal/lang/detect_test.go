package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectGlossary(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  string
	}{
		{"italian headers", []string{"marca", "modello", "prezzo", "carburante"}, Italian},
		{"spanish headers", []string{"marca", "precio", "combustible", "nombre_cliente"}, Spanish},
		{"french headers", []string{"marque", "prix", "Année"}, French},
		{"german headers", []string{"Marke", "Preis", "Kraftstoff", "Händler"}, German},
		{"portuguese headers", []string{"preço", "combustível", "telefone"}, Portuguese},
		{"english headers", []string{"make", "price", "fuel"}, English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Detect(tt.texts...)
			assert.Equal(t, tt.want, d.Language)
			assert.Equal(t, "glossary", d.Method)
			assert.Greater(t, d.Confidence, 0.0)
			assert.LessOrEqual(t, d.Confidence, 1.0)
		})
	}
}

func TestDetectSharedTokenTieBreak(t *testing.T) {
	// "marca" is shared by it/es/pt; the preference order picks Italian.
	d := Detect("marca")
	assert.Equal(t, Italian, d.Language)
	assert.InDelta(t, 1.0/3.0, d.Confidence, 1e-9)
}

func TestDetectUndetermined(t *testing.T) {
	d := Detect("xq", "zz")
	assert.Equal(t, Undetermined, d.Language)
	assert.Equal(t, "none", d.Method)
}

func TestGloss(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"prezzo_auto", "price car"},
		{"Kraftstoff", "fuel"},
		{"nombre_cliente", "name customer"},
		{"Téléphone", "phone"},
		{"chilometri", "chilometri"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Gloss(tt.header))
		})
	}
}

func TestCountryOf(t *testing.T) {
	c, ok := CountryOf(Portuguese)
	assert.True(t, ok)
	assert.Equal(t, "Portugal", c)

	c, ok = CountryOf(English)
	assert.True(t, ok)
	assert.Equal(t, "UK", c)

	_, ok = CountryOf(Undetermined)
	assert.False(t, ok)
}
