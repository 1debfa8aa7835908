package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/dirscope/dirscope/internal/scan"
)

func testStore(t *testing.T, limit int) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), limit)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(path string, size int64) *Record {
	return &Record{
		Path:       path,
		ScannedAt:  time.Now().UTC(),
		TotalSize:  size,
		SizeFormat: scan.FormatSize(size),
		Items: []scan.Item{
			{Path: "a.txt", Name: "a.txt", Size: size, SizeFormatted: scan.FormatSize(size), IsDir: false},
		},
	}
}

func TestAppendAndList(t *testing.T) {
	store := testStore(t, DefaultLimit)

	if err := store.Append(sampleRecord("/data/one", 100)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append(sampleRecord("/data/two", 200)); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}

	// Newest first.
	if records[0].Path != "/data/two" {
		t.Errorf("records[0].Path = %q, want /data/two", records[0].Path)
	}
	if records[1].Path != "/data/one" {
		t.Errorf("records[1].Path = %q, want /data/one", records[1].Path)
	}

	if records[0].TotalSize != 200 {
		t.Errorf("TotalSize = %d, want 200", records[0].TotalSize)
	}
	if len(records[0].Items) != 1 || records[0].Items[0].Name != "a.txt" {
		t.Errorf("items did not round-trip: %+v", records[0].Items)
	}
}

func TestAppendTrimsToLimit(t *testing.T) {
	store := testStore(t, 5)

	for i := 0; i < 12; i++ {
		rec := sampleRecord(fmt.Sprintf("/data/%d", i), int64(i))
		if err := store.Append(rec); err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 5 {
		t.Errorf("count = %d, want 5", n)
	}

	records, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// The newest five survive.
	if records[0].Path != "/data/11" {
		t.Errorf("newest = %q, want /data/11", records[0].Path)
	}
	if records[len(records)-1].Path != "/data/7" {
		t.Errorf("oldest retained = %q, want /data/7", records[len(records)-1].Path)
	}
}

func TestLatestByPath(t *testing.T) {
	store := testStore(t, DefaultLimit)

	if err := store.Append(sampleRecord("/data", 100)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append(sampleRecord("/other", 50)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append(sampleRecord("/data", 300)); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	rec, err := store.LatestByPath("/data")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if rec == nil {
		t.Fatal("got nil record for a known path")
	}
	if rec.TotalSize != 300 {
		t.Errorf("TotalSize = %d, want the latest entry's 300", rec.TotalSize)
	}

	missing, err := store.LatestByPath("/never-scanned")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if missing != nil {
		t.Errorf("got %+v for an unknown path, want nil", missing)
	}
}

func TestClear(t *testing.T) {
	store := testStore(t, DefaultLimit)

	if err := store.Append(sampleRecord("/data", 100)); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d after clear, want 0", n)
	}
}

func TestEmptyItemsDecodeToSlice(t *testing.T) {
	store := testStore(t, DefaultLimit)

	rec := sampleRecord("/data", 0)
	rec.Items = nil
	if err := store.Append(rec); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	got, err := store.LatestByPath("/data")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if got.Items == nil {
		t.Error("items decoded to nil, want an empty slice")
	}
}
