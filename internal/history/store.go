// Package history provides the bounded, sqlite-backed log of past scans.
// It is an audit trail for the adapters and is entirely independent of the
// scan result cache: cache hits and evictions are invisible here.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLimit is the number of records retained when no explicit limit is
// configured.
const DefaultLimit = 50

// Store wraps the history database. Appends beyond the retention limit drop
// the oldest records.
type Store struct {
	*sql.DB
	limit int
}

// Open opens the history database at path, creating it and its parent
// directory if needed, and applies migrations. limit bounds how many records
// are retained; values below 1 fall back to DefaultLimit.
func Open(path string, limit int) (*Store, error) {
	if limit < 1 {
		limit = DefaultLimit
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection: sqlite allows one writer and the history log is
	// low-traffic.
	db.SetMaxOpenConns(1)

	s := &Store{DB: db, limit: limit}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Limit returns the retention limit.
func (s *Store) Limit() int {
	return s.limit
}
