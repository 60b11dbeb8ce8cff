package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"lead-harmonizer/internal/pipeline"
	"lead-harmonizer/internal/schema"
)

const (
	leadsTable    = "leads"
	mappingsTable = "column_mappings"
)

func columnType(f schema.Field) string {
	switch f.Kind() {
	case schema.KindDecimal:
		return "REAL"
	case schema.KindInteger:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

// Export appends rep to the SQLite database at path, creating the tables on
// first use. The whole run is written in one transaction.
func Export(ctx context.Context, path string, rep *pipeline.Report) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := createTables(ctx, tx); err != nil {
		return err
	}

	if err := insertLeads(ctx, tx, rep); err != nil {
		return err
	}

	if err := insertMappings(ctx, tx, rep); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func createTables(ctx context.Context, tx *sql.Tx) error {
	defs := []string{`"run_id" TEXT NOT NULL`, `"row_index" INTEGER NOT NULL`}
	for _, f := range schema.Fields() {
		defs = append(defs, fmt.Sprintf("%q %s", string(f), columnType(f)))
	}

	for _, stmt := range []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (%s)`, leadsTable, strings.Join(defs, ",")),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %q (
			"run_id" TEXT NOT NULL,
			"column" TEXT NOT NULL,
			"ordinal" INTEGER NOT NULL,
			"target" TEXT NOT NULL,
			"confidence" REAL NOT NULL,
			"status" TEXT NOT NULL,
			"rationale" TEXT
		)`, mappingsTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_leads_run ON %q(run_id)`, leadsTable),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_column_mappings_run ON %q(run_id)`, mappingsTable),
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}

	return nil
}

func insertLeads(ctx context.Context, tx *sql.Tx, rep *pipeline.Report) error {
	cols := []string{`"run_id"`, `"row_index"`}
	for _, f := range schema.Fields() {
		cols = append(cols, fmt.Sprintf("%q", string(f)))
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`,
		leadsTable, strings.Join(cols, ","), ph))
	if err != nil {
		return fmt.Errorf("prepare leads insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range rep.Records {
		args := make([]any, 0, len(cols))
		args = append(args, rep.RunID, i+1)

		for _, f := range schema.Fields() {
			args = append(args, sqliteValue(rec, f))
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert lead %d: %w", i+1, err)
		}
	}

	return nil
}

func insertMappings(ctx context.Context, tx *sql.Tx, rep *pipeline.Report) error {
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %q ("run_id","column","ordinal","target","confidence","status","rationale") VALUES (?,?,?,?,?,?,?)`,
		mappingsTable))
	if err != nil {
		return fmt.Errorf("prepare mapping insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rep.Results() {
		if _, err := stmt.ExecContext(ctx, rep.RunID, r.Column, r.Ordinal, string(r.Target),
			r.Confidence, r.Status.String(), r.Rationale); err != nil {
			return fmt.Errorf("insert mapping %q: %w", r.Column, err)
		}
	}

	return nil
}

// sqliteValue converts a cell to the value stored for f: NULL when missing,
// numbers for numeric fields when they parse, text otherwise.
func sqliteValue(rec schema.TargetRecord, f schema.Field) any {
	v, ok := rec.Get(f)
	if !ok {
		return nil
	}

	switch f.Kind() {
	case schema.KindDecimal:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	case schema.KindInteger:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}

	return v
}
