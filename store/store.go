// Package store materializes a code-graph event stream into a SQLite
// database so the folded graph can be queried with plain SQL. Logical edge
// identity is the primary key of each table, which makes re-indexing and
// re-emission after rechecks naturally last-write-wins.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/LegacyCodeHQ/codegraph/depgraph"
)

const schema = `
CREATE TABLE IF NOT EXISTS modules (
	module TEXT PRIMARY KEY,
	file   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS imports (
	importer TEXT NOT NULL,
	importee TEXT NOT NULL,
	file     TEXT NOT NULL,
	PRIMARY KEY (importer, importee)
);
CREATE TABLE IF NOT EXISTS class_defs (
	fullname TEXT PRIMARY KEY,
	file     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS class_refs (
	src  TEXT NOT NULL,
	dst  TEXT NOT NULL,
	kind TEXT NOT NULL,
	file TEXT NOT NULL,
	PRIMARY KEY (src, dst, kind)
);
CREATE TABLE IF NOT EXISTS function_defs (
	fullname TEXT PRIMARY KEY,
	file     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS calls (
	caller TEXT NOT NULL,
	callee TEXT NOT NULL,
	file   TEXT NOT NULL,
	PRIMARY KEY (caller, callee)
);
`

// Open opens (creating if needed) a graph database at path. Use ":memory:"
// for a throwaway database.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize graph database: %w", err)
	}
	return db, nil
}

// Index folds an event stream into the database inside one transaction.
// An invalidate record deletes the stale module's rows the same way the
// in-memory fold discards its generation, so the recheck's re-emission
// replaces them.
func Index(db *sql.DB, records []depgraph.Record) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin indexing: %w", err)
	}
	defer tx.Rollback()

	for _, record := range records {
		if err := indexRecord(tx, record); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index: %w", err)
	}
	return nil
}

func indexRecord(tx *sql.Tx, record depgraph.Record) error {
	var err error
	switch record.Type {
	case depgraph.TypeModule:
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO modules (module, file) VALUES (?, ?)`,
			record.Module, record.File)

	case depgraph.TypeImport:
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO imports (importer, importee, file) VALUES (?, ?, ?)`,
			record.Importer, record.Importee, record.File)

	case depgraph.TypeInvalidate:
		err = invalidate(tx, record)

	case depgraph.TypeClassDef:
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO class_defs (fullname, file) VALUES (?, ?)`,
			record.Fullname, record.File)

	case depgraph.TypeClassRef:
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO class_refs (src, dst, kind, file) VALUES (?, ?, ?, ?)`,
			record.Src, record.Dst, record.Kind, record.File)

	case depgraph.TypeFunctionDef:
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO function_defs (fullname, file) VALUES (?, ?)`,
			record.Fullname, record.File)

	case depgraph.TypeCall:
		_, err = tx.Exec(
			`INSERT OR REPLACE INTO calls (caller, callee, file) VALUES (?, ?, ?)`,
			record.Caller, record.Callee, record.File)

	default:
		// Unknown record types from newer producers are skipped.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to index %s record: %w", record.Type, err)
	}
	return nil
}

// invalidate drops every fact owned by the stale module's file. The module
// binding itself survives, matching depgraph.Fold.
func invalidate(tx *sql.Tx, record depgraph.Record) error {
	file := record.File
	if file == "" {
		err := tx.QueryRow(
			`SELECT file FROM modules WHERE module = ?`, record.Module).Scan(&file)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to resolve invalidated module %s: %w", record.Module, err)
		}
	}

	for _, stmt := range []string{
		`DELETE FROM imports WHERE file = ?`,
		`DELETE FROM class_defs WHERE file = ?`,
		`DELETE FROM class_refs WHERE file = ?`,
		`DELETE FROM function_defs WHERE file = ?`,
		`DELETE FROM calls WHERE file = ?`,
	} {
		if _, err := tx.Exec(stmt, file); err != nil {
			return fmt.Errorf("failed to invalidate %s: %w", record.Module, err)
		}
	}
	return nil
}
