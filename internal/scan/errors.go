package scan

import "errors"

// Sentinel errors for the ways a scan request can be rejected. Use errors.Is
// to classify. Unreadable entries inside the tree never surface as errors;
// only the root itself failing is fatal to a scan.
var (
	// ErrEmptyPath is returned for an empty or whitespace-only path.
	// No I/O is attempted.
	ErrEmptyPath = errors.New("path is empty")

	// ErrNotAccessible is returned when the root's metadata cannot be read
	// (missing path, permission denied).
	ErrNotAccessible = errors.New("path is not accessible")

	// ErrNotDirectory is returned when the root exists but is not a directory.
	ErrNotDirectory = errors.New("path is not a directory")

	// ErrCanonicalize is returned when the root cannot be resolved to an
	// absolute, symlink-free form.
	ErrCanonicalize = errors.New("path cannot be canonicalized")
)
