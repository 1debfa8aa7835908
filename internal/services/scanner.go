// Package services coordinates the scan engine with the history log and
// metrics. Every adapter (HTTP handlers, desktop bindings, scheduler) goes
// through this layer rather than driving the engine directly.
package services

import (
	"log"
	"time"

	"github.com/dirscope/dirscope/internal/history"
	"github.com/dirscope/dirscope/internal/metrics"
	"github.com/dirscope/dirscope/internal/scan"
)

// Scanner runs scans and records successful ones in the history log.
type Scanner struct {
	engine  *scan.Scanner
	history *history.Store
}

// NewScanner creates a new scanner service.
func NewScanner(engine *scan.Scanner, hist *history.Store) *Scanner {
	return &Scanner{
		engine:  engine,
		history: hist,
	}
}

// Scan scans path and appends a history record on success. A history write
// failure is logged but does not fail the scan.
func (s *Scanner) Scan(path string, forceRefresh bool) (*scan.Result, error) {
	start := time.Now()

	result, err := s.engine.Scan(path, forceRefresh)
	if err != nil {
		metrics.RecordScan("error", time.Since(start))
		return nil, err
	}

	metrics.RecordScan("ok", time.Since(start))
	metrics.SetCacheEntries(s.engine.Cache().Len())

	rec := &history.Record{
		Path:       result.Path,
		ScannedAt:  time.Now().UTC(),
		TotalSize:  result.TotalSize,
		SizeFormat: result.TotalSizeFormatted,
		Items:      result.Items,
	}
	if err := s.history.Append(rec); err != nil {
		log.Printf("services: failed to record history for %s: %v", result.Path, err)
	}

	return result, nil
}

// History returns all history records, newest first.
func (s *Scanner) History() ([]*history.Record, error) {
	return s.history.List()
}

// HistoryItem returns the most recent history record for path reshaped as a
// scan result, with ScanTime zeroed to signal it was not freshly computed.
// Returns nil when the path has no history.
func (s *Scanner) HistoryItem(path string) (*scan.Result, error) {
	rec, err := s.history.LatestByPath(path)
	if err != nil || rec == nil {
		return nil, err
	}

	return &scan.Result{
		Items:              rec.Items,
		TotalSize:          rec.TotalSize,
		TotalSizeFormatted: rec.SizeFormat,
		ScanTime:           0,
		Path:               rec.Path,
	}, nil
}

// ClearHistory removes all history records.
func (s *Scanner) ClearHistory() error {
	return s.history.Clear()
}
