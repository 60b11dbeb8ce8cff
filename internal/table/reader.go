package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"lead-harmonizer/internal/common"
	"lead-harmonizer/internal/diagnostic"
	"lead-harmonizer/internal/schema"
)

var (
	// ErrInputNotFound is returned when the input path does not exist.
	ErrInputNotFound = errors.New("input file not found")
	// ErrEmptyInput is returned for input without a header line.
	ErrEmptyInput = errors.New("empty input: no header row")
)

// Diagnostic codes emitted while reading.
const (
	CodeMalformedRow    = "malformed_row"
	CodePaddedRow       = "padded_row"
	CodeTruncatedRow    = "truncated_row"
	CodeBlankHeader     = "blank_header"
	CodeDuplicateHeader = "duplicate_header"
)

// Table is a parsed CSV file. Every row has exactly len(Header) cells.
type Table struct {
	Header   []string
	Rows     [][]string
	Encoding string
}

// ReadFile opens path and reads it. A missing file yields ErrInputNotFound.
func ReadFile(path string) (*Table, *diagnostic.Diagnostics, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}

		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses a CSV document. Repairs are reported in the returned
// diagnostics; the error is reserved for unreadable input.
func Read(r io.Reader) (*Table, *diagnostic.Diagnostics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	decoded, enc, err := DetectAndDecode(data)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmptyInput
		}

		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	diags := &diagnostic.Diagnostics{}
	t := &Table{Header: uniqueHeader(header, diags), Encoding: enc}
	width := len(t.Header)

	for n := 1; ; n++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		loc := diagnostic.Location{Row: n}

		if err != nil {
			diags.AddWarning(CodeMalformedRow, fmt.Sprintf("row %d skipped: %v", n, err), loc)
			continue
		}

		switch {
		case len(row) < width:
			diags.AddWarning(CodePaddedRow,
				fmt.Sprintf("row has %d cells, expected %d; padding with empty values", len(row), width), loc)

			row = append(row, make([]string, width-len(row))...)
		case len(row) > width:
			diags.AddWarning(CodeTruncatedRow,
				fmt.Sprintf("row has %d cells, expected %d; extra cells dropped", len(row), width), loc)

			row = row[:width]
		}

		t.Rows = append(t.Rows, row)
	}

	return t, diags, nil
}

// uniqueHeader trims names, names blank columns column_<n> and suffixes
// repeated names with _2, _3 and so on.
func uniqueHeader(header []string, diags *diagnostic.Diagnostics) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
			diags.AddWarning(CodeBlankHeader, fmt.Sprintf("header %d is blank; named %s", i+1, name),
				diagnostic.Location{Column: name})
		}

		if seen[name] {
			base := name
			for n := 2; seen[name]; n++ {
				name = base + "_" + strconv.Itoa(n)
			}

			diags.AddWarning(CodeDuplicateHeader, fmt.Sprintf("header %q repeated; renamed to %s", base, name),
				diagnostic.Location{Column: name})
		}

		seen[name] = true
		out[i] = name
	}

	return out
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Row returns row i keyed by header name.
func (t *Table) Row(i int) map[string]string {
	cells := make(map[string]string, len(t.Header))
	for j, name := range t.Header {
		cells[name] = t.Rows[i][j]
	}

	return cells
}

// Columns describes every column with its first non-blank cell as sample.
// Translated is set to the name; callers with a better gloss overwrite it.
func (t *Table) Columns() []schema.SourceColumn {
	cols := make([]schema.SourceColumn, len(t.Header))

	for j, name := range t.Header {
		values := make([]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			values = append(values, row[j])
		}

		sample, _ := common.FirstNonBlank(values...)
		cols[j] = schema.SourceColumn{Name: name, Ordinal: j, Sample: sample, Translated: name}
	}

	return cols
}
