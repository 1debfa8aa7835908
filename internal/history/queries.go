package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dirscope/dirscope/internal/scan"
)

// Append adds a record and drops the oldest rows beyond the retention limit.
func (s *Store) Append(rec *Record) error {
	items := rec.Items
	if items == nil {
		items = []scan.Item{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	result, err := s.Exec(`
		INSERT INTO scan_history (path, scanned_at, total_size, total_size_formatted, items)
		VALUES (?, ?, ?, ?, ?)`,
		rec.Path, rec.ScannedAt, rec.TotalSize, rec.SizeFormat, string(itemsJSON),
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id

	_, err = s.Exec(`
		DELETE FROM scan_history
		WHERE id NOT IN (SELECT id FROM scan_history ORDER BY id DESC LIMIT ?)`,
		s.limit,
	)
	return err
}

// List returns all records, newest first.
func (s *Store) List() ([]*Record, error) {
	rows, err := s.Query(`
		SELECT id, path, scanned_at, total_size, total_size_formatted, items
		FROM scan_history ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestByPath returns the most recent record for path, or nil when the path
// was never scanned.
func (s *Store) LatestByPath(path string) (*Record, error) {
	rows, err := s.Query(`
		SELECT id, path, scanned_at, total_size, total_size_formatted, items
		FROM scan_history WHERE path = ? ORDER BY id DESC LIMIT 1`, path)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRecord(rows)
}

// Count returns the number of retained records.
func (s *Store) Count() (int, error) {
	var n int
	err := s.QueryRow("SELECT COUNT(*) FROM scan_history").Scan(&n)
	return n, err
}

// Clear removes all records.
func (s *Store) Clear() error {
	_, err := s.Exec("DELETE FROM scan_history")
	return err
}

func scanRecord(rows *sql.Rows) (*Record, error) {
	var (
		rec       Record
		scannedAt time.Time
		itemsJSON string
	)

	err := rows.Scan(&rec.ID, &rec.Path, &scannedAt, &rec.TotalSize, &rec.SizeFormat, &itemsJSON)
	if err != nil {
		return nil, err
	}
	rec.ScannedAt = scannedAt

	rec.Items = []scan.Item{}
	if err := json.Unmarshal([]byte(itemsJSON), &rec.Items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	return &rec, nil
}
