package scan

import (
	"fmt"
	"testing"
	"time"
)

func testCache(maxEntries int, maxBytes int64) *Cache {
	return NewCache(CacheConfig{MaxEntries: maxEntries, MaxBytes: maxBytes})
}

func resultWithItems(n int) Result {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{Path: fmt.Sprintf("item-%d", i), Size: int64(i)}
	}
	return Result{Items: items, TotalSize: int64(n)}
}

func TestCacheLookupMiss(t *testing.T) {
	c := testCache(10, 1<<20)
	if _, _, ok := c.Lookup("/nope"); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestCacheInsertLookup(t *testing.T) {
	c := testCache(10, 1<<20)
	c.Insert("/data", resultWithItems(3))

	got, observedAt, ok := c.Lookup("/data")
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got.Items) != 3 {
		t.Errorf("items = %d, want 3", len(got.Items))
	}
	if observedAt.IsZero() {
		t.Error("observedAt not set")
	}

	// The returned result is a copy; mutating it must not corrupt the cache.
	got.Items[0].Path = "mutated"
	again, _, _ := c.Lookup("/data")
	if again.Items[0].Path == "mutated" {
		t.Error("cache entry shares item storage with caller")
	}
}

func TestFresh(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name       string
		observedAt time.Time
		mtime      time.Time
		want       bool
	}{
		{"observed after mtime", now, now.Add(-time.Second), true},
		{"observed equals mtime", now, now, true},
		{"observed before mtime", now.Add(-time.Second), now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fresh(tt.observedAt, tt.mtime); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCacheEvictionBound(t *testing.T) {
	c := testCache(5, 1<<30)

	for i := 0; i < 20; i++ {
		c.Insert(fmt.Sprintf("/root-%02d", i), resultWithItems(1))
	}

	if n := c.Len(); n > 5 {
		t.Errorf("cache holds %d entries, want at most 5", n)
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := testCache(2, 1<<30)

	c.Insert("/first", resultWithItems(1))
	time.Sleep(2 * time.Millisecond)
	c.Insert("/second", resultWithItems(1))
	time.Sleep(2 * time.Millisecond)
	c.Insert("/third", resultWithItems(1))

	if _, _, ok := c.Lookup("/first"); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, _, ok := c.Lookup("/third"); !ok {
		t.Error("newest entry should survive")
	}
}

func TestCacheByteBudget(t *testing.T) {
	// Budget fits roughly one large entry; inserting a second evicts.
	c := testCache(100, 100*itemFootprintBytes)

	c.Insert("/a", resultWithItems(90))
	time.Sleep(2 * time.Millisecond)
	c.Insert("/b", resultWithItems(90))

	if n := c.Len(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
	if _, _, ok := c.Lookup("/b"); !ok {
		t.Error("newest entry should survive the budget eviction")
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := testCache(10, 1<<30)
	c.Insert("/data", resultWithItems(1))
	c.Insert("/data/sub", resultWithItems(1))
	c.Insert("/database", resultWithItems(1))
	c.Insert("/other", resultWithItems(1))

	c.InvalidatePrefix("/data")

	for _, key := range []string{"/data", "/data/sub", "/database"} {
		if _, _, ok := c.Lookup(key); ok {
			t.Errorf("%s should have been invalidated", key)
		}
	}
	if _, _, ok := c.Lookup("/other"); !ok {
		t.Error("/other should survive prefix invalidation")
	}
}

func TestCacheClear(t *testing.T) {
	c := testCache(10, 1<<30)
	c.Insert("/a", resultWithItems(2))
	c.Insert("/b", resultWithItems(2))

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if c.EstimatedBytes() != 0 {
		t.Errorf("EstimatedBytes = %d after Clear, want 0", c.EstimatedBytes())
	}
}

func TestCacheEstimatedBytes(t *testing.T) {
	c := testCache(10, 1<<30)
	c.Insert("/a", resultWithItems(4))

	want := int64(4) * itemFootprintBytes
	if got := c.EstimatedBytes(); got != want {
		t.Errorf("EstimatedBytes = %d, want %d", got, want)
	}
}
