package scan

import (
	"path"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

const bucketShards = 16

// bucketMap is a sharded string -> int64 counter. Per-shard locking keeps
// concurrent ancestor increments from serializing on a single mutex.
type bucketMap struct {
	shards [bucketShards]bucketShard
}

type bucketShard struct {
	mu sync.Mutex
	m  map[string]int64
}

func newBucketMap() *bucketMap {
	b := &bucketMap{}
	for i := range b.shards {
		b.shards[i].m = make(map[string]int64)
	}
	return b
}

func (b *bucketMap) add(key string, n int64) {
	s := &b.shards[xxhash.Sum64String(key)%bucketShards]
	s.mu.Lock()
	s.m[key] += n
	s.mu.Unlock()
}

// snapshot merges all shards into a plain map. Call only after all writers
// have finished.
func (b *bucketMap) snapshot() map[string]int64 {
	size := 0
	for i := range b.shards {
		size += len(b.shards[i].m)
	}
	out := make(map[string]int64, size)
	for i := range b.shards {
		for k, v := range b.shards[i].m {
			out[k] = v
		}
	}
	return out
}

// aggregate drains batches of file entries and produces two mappings: the
// cumulative size of every directory strictly between a file and root, and
// the size of every file. root must be slash-normalized with no trailing
// separator (except the filesystem root "/"); it is excluded from the
// directory mapping.
//
// Batches are processed by a bounded pool of workers. Each file contributes
// only to its own ancestor chain, so there is no inter-file ordering and the
// work is embarrassingly parallel.
func aggregate(root string, batches <-chan []fileEntry) (dirs, files map[string]int64) {
	dirBuckets := newBucketMap()
	fileBuckets := newBucketMap()

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for batch := range batches {
		batch := batch
		g.Go(func() error {
			for _, f := range batch {
				p := filepath.ToSlash(f.path)
				fileBuckets.add(p, f.size)
				for dir := path.Dir(p); dir != root; {
					dirBuckets.add(dir, f.size)
					parent := path.Dir(dir)
					if parent == dir {
						break
					}
					dir = parent
				}
			}
			return nil
		})
	}

	// Workers never return an error; Wait is only a join point.
	_ = g.Wait()

	return dirBuckets.snapshot(), fileBuckets.snapshot()
}
