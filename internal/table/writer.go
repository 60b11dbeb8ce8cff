package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lead-harmonizer/internal/schema"
)

// Write emits the target schema header followed by one line per record.
func Write(w io.Writer, records []schema.TargetRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(schema.Header()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(rec.Values()); err != nil {
			return fmt.Errorf("write record %d: %w", i+1, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteFile writes records to path through a temporary file in the same
// directory, renamed into place once complete.
func WriteFile(path string, records []schema.TargetRecord) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}

	if err = Write(tmp, records); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}

	return nil
}
