package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dirscope/dirscope/internal/history"
	"github.com/dirscope/dirscope/internal/scan"
)

func testService(t *testing.T) *Scanner {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), history.DefaultLimit)
	if err != nil {
		t.Fatalf("failed to open history store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	engine := scan.NewScanner(scan.NewCache(scan.CacheConfig{MaxEntries: 50, MaxBytes: 1 << 30}))
	return NewScanner(engine, store)
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestScanRecordsHistory(t *testing.T) {
	svc := testService(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 500)
	writeFile(t, filepath.Join(root, "sub", "b.bin"), 250)

	result, err := svc.Scan(root, false)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if result.TotalSize != 750 {
		t.Errorf("TotalSize = %d, want 750", result.TotalSize)
	}

	records, err := svc.History()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d history records, want 1", len(records))
	}
	if records[0].Path != root {
		t.Errorf("record path = %q, want %q", records[0].Path, root)
	}
	if records[0].TotalSize != 750 {
		t.Errorf("record total = %d, want 750", records[0].TotalSize)
	}
	if len(records[0].Items) != len(result.Items) {
		t.Errorf("record has %d items, result has %d", len(records[0].Items), len(result.Items))
	}
}

func TestFailedScanLeavesNoHistory(t *testing.T) {
	svc := testService(t)

	_, err := svc.Scan(filepath.Join(t.TempDir(), "missing"), false)
	if !errors.Is(err, scan.ErrNotAccessible) {
		t.Fatalf("error = %v, want ErrNotAccessible", err)
	}

	records, err := svc.History()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d history records after a failed scan, want 0", len(records))
	}
}

func TestHistoryItem(t *testing.T) {
	svc := testService(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 123)

	if _, err := svc.Scan(root, false); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	item, err := svc.HistoryItem(root)
	if err != nil {
		t.Fatalf("history item failed: %v", err)
	}
	if item == nil {
		t.Fatal("got nil for a scanned path")
	}
	if item.TotalSize != 123 {
		t.Errorf("TotalSize = %d, want 123", item.TotalSize)
	}
	if item.ScanTime != 0 {
		t.Errorf("ScanTime = %f, want 0 for a history replay", item.ScanTime)
	}
	if item.Path != root {
		t.Errorf("Path = %q, want %q", item.Path, root)
	}
}

func TestHistoryItemUnknownPath(t *testing.T) {
	svc := testService(t)

	item, err := svc.HistoryItem("/never-scanned")
	if err != nil {
		t.Fatalf("history item failed: %v", err)
	}
	if item != nil {
		t.Errorf("got %+v for an unknown path, want nil", item)
	}
}

func TestClearHistory(t *testing.T) {
	svc := testService(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.bin"), 1)

	if _, err := svc.Scan(root, false); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if err := svc.ClearHistory(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	records, err := svc.History()
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records after clear, want 0", len(records))
	}
}
