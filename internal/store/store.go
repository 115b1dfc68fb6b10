// Package store persists loaded meshes and scan-run results to a local
// SQLite file between cmd/raycastsim invocations. It sits entirely
// outside internal/raycast's core contract (spec §5: the simulator
// itself is pure in-memory); internal/raycast never imports this
// package, the dependency runs one way.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/velocity.report/internal/monitoring"
)

// Store wraps a *sql.DB opened against a SQLite file, grounded on
// internal/db.DB's thin *sql.DB embedding and its applyPragmas step.
type Store struct {
	*sql.DB
}

// applyPragmas sets the WAL/synchronous/busy-timeout PRAGMAs the teacher
// applies to every connection regardless of how the database was created.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	return nil
}

// Open opens (creating if necessary) the SQLite file at path, applies
// PRAGMAs, and runs every pending migration up to the latest version.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	s := &Store{db}
	if err := applyPragmas(db); err != nil {
		return nil, fmt.Errorf("failed to apply PRAGMAs: %w", err)
	}
	if err := s.MigrateUp(); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	monitoring.Logf("store: opened %s", path)
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.DB.Close()
}
