package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lead-harmonizer/internal/mapping"
	"lead-harmonizer/internal/schema"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("HARMONIZER_CLASSIFIER", "")
	t.Setenv("HARMONIZER_RULES_FILE", "")

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

func TestDemoThenHarmonize(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "leads.csv")

	out, err := execute(t, "demo", "-o", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Sample CSV file created")

	suggest := filepath.Join(dir, "suggest.yaml")
	db := filepath.Join(dir, "leads.db")

	out, err = execute(t, "harmonize", in, "--classifier", "rules", "--suggest", suggest, "--promote", "--sqlite", db, "--dump")
	require.NoError(t, err)
	assert.Contains(t, out, "fields mapped:")
	assert.Contains(t, out, "Preview (first 3 records)")
	assert.Contains(t, out, "email_cliente")

	data, err := os.ReadFile(filepath.Join(dir, "leads_harmonized.csv"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("vehicle_make,")))

	mf, err := mapping.LoadFile(suggest)
	require.NoError(t, err)

	assert.Empty(t, mf.Auto)
	assert.Equal(t, string(schema.CustomerEmail), mf.Columns["email_cliente"])
	assert.Equal(t, string(schema.Price), mf.Columns["prezzo"])

	assert.FileExists(t, db)
}

func TestHarmonize_MissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "harmonize", filepath.Join(dir, "nope.csv"), "--classifier", "rules")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file not found")
	assert.NoFileExists(t, filepath.Join(dir, "nope_harmonized.csv"))
}

func TestHarmonize_InvalidMappingFile(t *testing.T) {
	dir := t.TempDir()
	mf := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(mf, []byte("version: \"1\"\ncolumns:\n  marca: horsepower\n"), 0o644))

	_, err := execute(t, "harmonize", filepath.Join(dir, "in.csv"), "--mapping", mf)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mapping file")
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		classifier string
		wantErr    bool
	}{
		{"auto falls back to rules", "", false},
		{"openai needs a key", "openai", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			t.Setenv("HARMONIZER_CLASSIFIER", tt.classifier)

			cmd := newRootCmd()

			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetArgs([]string{"check"})

			err := cmd.Execute()
			assert.Contains(t, out.String(), "OPENAI_API_KEY:  missing")

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "configuration incomplete")
				return
			}

			require.NoError(t, err)
			assert.Contains(t, out.String(), "resolved rules")
			assert.Contains(t, out.String(), "convert_to_decimal")
		})
	}
}
