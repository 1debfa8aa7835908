package scan

import (
	"os"
	"path/filepath"
)

// fileEntry is one regular file discovered during traversal.
type fileEntry struct {
	path string // absolute, native separators
	size int64
}

// traverseBatchSize caps how many file entries are buffered before the batch
// is handed to the aggregator. Bounding the batch keeps peak memory flat on
// very large trees.
const traverseBatchSize = 10000

// traverse walks the subtree under root with an explicit work stack and
// delivers regular files to emit in batches of at most traverseBatchSize.
//
// Traversal is best-effort: directories that cannot be listed and entries
// whose metadata cannot be read (permission errors, concurrent removal) are
// silently skipped. Symlinks are never followed: a symlink to a directory is
// not descended into, and symlinks to files do not appear in the results.
func traverse(root string, emit func([]fileEntry)) {
	stack := []string{root}
	batch := make([]fileEntry, 0, traverseBatchSize)

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}

		for _, entry := range entries {
			child := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				stack = append(stack, child)
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			batch = append(batch, fileEntry{path: child, size: info.Size()})
			if len(batch) >= traverseBatchSize {
				emit(batch)
				batch = make([]fileEntry, 0, traverseBatchSize)
			}
		}
	}

	if len(batch) > 0 {
		emit(batch)
	}
}
