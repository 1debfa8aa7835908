// Package scan implements the disk-usage scan engine: recursive directory
// traversal, bottom-up size aggregation over every ancestor directory, and a
// bounded, modification-time-aware cache of completed results.
//
// Traversal uses an explicit work stack so arbitrarily deep trees cannot
// exhaust the call stack. Aggregation fans out over batches of files; each
// file adds its size to the buckets of its own ancestor chain only, so the
// sharded counters see little lock contention.
package scan
