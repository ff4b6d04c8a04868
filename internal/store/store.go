// Package store persists benchmark runs to SQLite: one *sql.DB, one init()
// that creates every table, modernc.org/sqlite as the driver and
// google/uuid for generated IDs.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

// ErrNotFound is returned when a requested run, result, or grammar does not
// exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite-backed history of bench runs and their results.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st := &Store{db: db}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (s *Store) init() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT NOT NULL PRIMARY KEY,
			started_at INTEGER NOT NULL,
			alphabet TEXT NOT NULL,
			sample_size INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			algorithm TEXT NOT NULL,
			n INTEGER NOT NULL,
			mean_size REAL NOT NULL,
			mean_seconds REAL NOT NULL,
			PRIMARY KEY (run_id, algorithm, n)
		);`,
		`CREATE TABLE IF NOT EXISTS grammars (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			algorithm TEXT NOT NULL,
			n INTEGER NOT NULL,
			sample_index INTEGER NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (run_id, algorithm, n, sample_index)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return wrapDBError(err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}
	return nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return fmt.Errorf("constraint violation: %w", err)
		}
		return fmt.Errorf("sqlite: %s: %w", sqlite.ErrorCodeString[sqliteErr.Code()], err)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
