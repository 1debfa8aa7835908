package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dirscope/dirscope/internal/metrics"
)

// Scanner validates scan requests, consults the result cache, and drives the
// traversal -> aggregation -> assembly pipeline on a miss. The cache is
// injected at construction; Scanner holds no other state and is safe for
// concurrent use.
type Scanner struct {
	cache *Cache
}

// NewScanner creates a Scanner backed by the given cache.
func NewScanner(cache *Cache) *Scanner {
	return &Scanner{cache: cache}
}

// Cache returns the injected result cache.
func (s *Scanner) Cache() *Cache {
	return s.cache
}

// Scan computes the disk usage of every file and directory under path.
//
// The canonical (absolute, symlink-resolved, slash-normalized) form of path
// is the cache key. Unless forceRefresh is set, a cached result that passes
// the mtime freshness check is returned with ScanTime reset to 0. On a miss
// the whole cached subtree under the root is invalidated first, the pipeline
// runs, and the new result is inserted. The returned result carries the
// caller's original path for display, not the canonical one.
//
// There is no cancellation: a scan runs to completion once started.
func (s *Scanner) Scan(path string, forceRefresh bool) (*Result, error) {
	input := strings.TrimSpace(path)
	if input == "" {
		return nil, ErrEmptyPath
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAccessible, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, input)
	}

	root, err := canonicalize(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCanonicalize, err)
	}

	if !forceRefresh {
		if cached, observedAt, ok := s.cache.Lookup(root); ok && Fresh(observedAt, info.ModTime()) {
			metrics.RecordCacheHit()
			cached.ScanTime = 0
			cached.Path = input
			return &cached, nil
		}
	}
	metrics.RecordCacheMiss()

	// Cached results for subdirectories of this root may be stale too.
	s.cache.InvalidatePrefix(root)

	start := time.Now()

	batches := make(chan []fileEntry, 4)
	go func() {
		defer close(batches)
		traverse(filepath.FromSlash(root), func(batch []fileEntry) {
			batches <- batch
		})
	}()
	dirSizes, fileSizes := aggregate(root, batches)

	result := assemble(root, dirSizes, fileSizes)
	result.ScanTime = time.Since(start).Seconds()
	result.Path = input

	s.cache.Insert(root, *result)

	return result, nil
}

// canonicalize resolves p to an absolute, symlink-free, slash-normalized
// form with no trailing separator (the filesystem root "/" excepted).
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	root := filepath.ToSlash(resolved)
	if len(root) > 1 {
		root = strings.TrimSuffix(root, "/")
	}
	return root, nil
}
