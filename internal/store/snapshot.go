package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/mimic/internal/record"
)

var tableNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ExportSnapshot writes the store's full contents to a SQLite database
// at the given path, one table per entity with one row per record. Each
// row holds the record identifier and its canonical JSON rendering.
//
// The snapshot is a debugging artifact: it lets a failing scenario's
// store state be inspected with ordinary SQL tooling. The live store
// never reads it back.
func (s *Store) ExportSnapshot(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open snapshot database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("connect to snapshot database: %w", err)
	}

	// Single writer; the export owns the file for its duration.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("apply snapshot pragmas: %w", err)
	}

	names := s.entityNames()
	sort.Strings(names)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		if !tableNamePattern.MatchString(name) {
			return fmt.Errorf("entity %q is not exportable as a table name", name)
		}
		recs, err := s.GetAll(name)
		if err != nil {
			return err
		}
		if err := exportEntity(tx, name, recs); err != nil {
			return fmt.Errorf("export %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func exportEntity(tx *sql.Tx, name string, recs []*record.Record) error {
	ddl := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %q (id TEXT PRIMARY KEY, seq INTEGER NOT NULL, data TEXT NOT NULL)", name)
	if _, err := tx.Exec(ddl); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %q (id, seq, data) VALUES (?, ?, ?)", name))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, rec := range recs {
		data, err := record.Canonical(rec)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(rec.ID.String(), i, string(data)); err != nil {
			return err
		}
	}
	return nil
}
