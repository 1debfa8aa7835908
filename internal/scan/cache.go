package scan

import (
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/dirscope/dirscope/internal/metrics"
)

const cacheShards = 16

// itemFootprintBytes approximates the in-memory cost of one cached Item,
// including its backing strings. Cache budget accounting is an estimate of
// process memory, not of disk bytes.
const itemFootprintBytes = 192

// CacheConfig bounds the scan cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached roots.
	MaxEntries int
	// MaxBytes is the approximate memory budget across all entries.
	MaxBytes int64
}

type cacheEntry struct {
	result     Result
	observedAt time.Time
	estBytes   int64
}

type cacheShard struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
}

// Cache is a bounded concurrent store of scan results keyed by canonical,
// slash-normalized root path. It is constructed explicitly and handed to a
// Scanner; there is no process-wide singleton.
//
// Eviction removes the entry with the oldest observation time. That is age
// of data, not recency of use: a frequently revalidated entry backed by an
// old scan is evicted ahead of a stale, never-reused one. Known limitation,
// kept deliberately.
//
// Entries never expire on a timer; they leave only through eviction, prefix
// invalidation, or Clear. Concurrent inserts racing the capacity check can
// transiently overshoot the bounds by a small amount, since eviction and
// insert are not one atomic step.
type Cache struct {
	cfg    CacheConfig
	shards [cacheShards]cacheShard
}

// NewCache creates an empty cache with the given bounds.
func NewCache(cfg CacheConfig) *Cache {
	c := &Cache{cfg: cfg}
	for i := range c.shards {
		c.shards[i].entries = make(map[string]*cacheEntry)
	}
	return c
}

func (c *Cache) shard(key string) *cacheShard {
	return &c.shards[xxhash.Sum64String(key)%cacheShards]
}

// Lookup returns a copy of the cached result for key and the time it was
// observed. No freshness validation happens here; that is Fresh's job.
func (c *Cache) Lookup(key string) (Result, time.Time, bool) {
	s := c.shard(key)
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return Result{}, time.Time{}, false
	}
	return cloneResult(e.result), e.observedAt, true
}

// Fresh reports whether an entry observed at observedAt is still usable for
// a root whose current mtime is mtime. A directory's own mtime changes when
// immediate children are added, removed or renamed; deep nested changes may
// not bump it, so this is a cheap heuristic, not a guarantee.
func Fresh(observedAt, mtime time.Time) bool {
	return !observedAt.Before(mtime)
}

// Insert stores result under key, evicting the oldest entry first if either
// capacity bound would be exceeded.
func (c *Cache) Insert(key string, result Result) {
	est := int64(len(result.Items)) * itemFootprintBytes

	if c.Len() >= c.cfg.MaxEntries || c.EstimatedBytes()+est > c.cfg.MaxBytes {
		c.evictOldest()
	}

	s := c.shard(key)
	s.mu.Lock()
	s.entries[key] = &cacheEntry{
		result:     cloneResult(result),
		observedAt: time.Now(),
		estBytes:   est,
	}
	s.mu.Unlock()
}

// InvalidatePrefix removes every entry whose key starts with prefix. Used
// before recomputing a root so cached results for its subdirectories are
// dropped as well.
func (c *Cache) InvalidatePrefix(prefix string) {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for key := range s.entries {
			if strings.HasPrefix(key, prefix) {
				delete(s.entries, key)
			}
		}
		s.mu.Unlock()
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		s.entries = make(map[string]*cacheEntry)
		s.mu.Unlock()
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// EstimatedBytes returns the estimated memory held by all entries.
func (c *Cache) EstimatedBytes() int64 {
	var n int64
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for _, e := range s.entries {
			n += e.estBytes
		}
		s.mu.RUnlock()
	}
	return n
}

// evictOldest removes the entry with the oldest observation time, if any.
func (c *Cache) evictOldest() {
	var (
		oldestShard *cacheShard
		oldestKey   string
		oldestAt    time.Time
	)

	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for key, e := range s.entries {
			if oldestShard == nil || e.observedAt.Before(oldestAt) {
				oldestShard = s
				oldestKey = key
				oldestAt = e.observedAt
			}
		}
		s.mu.RUnlock()
	}

	if oldestShard == nil {
		return
	}

	oldestShard.mu.Lock()
	// The entry may have been replaced since the read pass; dropping the
	// replacement is still within the eviction contract.
	if _, ok := oldestShard.entries[oldestKey]; ok {
		delete(oldestShard.entries, oldestKey)
		metrics.RecordCacheEviction()
	}
	oldestShard.mu.Unlock()
}

func cloneResult(r Result) Result {
	items := make([]Item, len(r.Items))
	copy(items, r.Items)
	r.Items = items
	return r
}
