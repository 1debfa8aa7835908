package scan

import (
	"path"
	"sort"
	"strings"
)

// Item is one file or directory in a scan result. Path is relative to the
// scan root and always uses forward slashes.
type Item struct {
	Path          string `json:"path"`
	Name          string `json:"name"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"sizeFormatted"`
	IsDir         bool   `json:"isDir"`
}

// Result is the outcome of one completed scan. Items is sorted by size,
// largest first, with equal sizes ordered by path. TotalSize counts file
// items only; directory sizes are derived from the same files and are not
// added a second time. ScanTime is 0 when the result was served from cache.
type Result struct {
	Items              []Item  `json:"items"`
	TotalSize          int64   `json:"totalSize"`
	TotalSizeFormatted string  `json:"totalSizeFormatted"`
	ScanTime           float64 `json:"scanTime"`
	Path               string  `json:"path"`
}

// assemble converts the aggregation mappings into a sorted Result. Keys that
// normalize to an empty relative path (the root itself) are skipped.
func assemble(root string, dirSizes, fileSizes map[string]int64) *Result {
	items := make([]Item, 0, len(dirSizes)+len(fileSizes))
	var total int64

	for dir, size := range dirSizes {
		rel := relativeTo(root, dir)
		if rel == "" {
			continue
		}
		items = append(items, Item{
			Path:          rel,
			Name:          path.Base(rel),
			Size:          size,
			SizeFormatted: FormatSize(size),
			IsDir:         true,
		})
	}

	for file, size := range fileSizes {
		rel := relativeTo(root, file)
		if rel == "" {
			continue
		}
		items = append(items, Item{
			Path:          rel,
			Name:          path.Base(rel),
			Size:          size,
			SizeFormatted: FormatSize(size),
			IsDir:         false,
		})
		total += size
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Size != items[j].Size {
			return items[i].Size > items[j].Size
		}
		return items[i].Path < items[j].Path
	})

	return &Result{
		Items:              items,
		TotalSize:          total,
		TotalSizeFormatted: FormatSize(total),
	}
}

// relativeTo strips the root prefix from a slash-normalized path beneath it.
// Returns "" for the root itself.
func relativeTo(root, p string) string {
	if p == root {
		return ""
	}
	return strings.TrimPrefix(strings.TrimPrefix(p, root), "/")
}
