package scan

import "fmt"

const sizeUnit = 1024.0

// FormatSize renders a byte count as a human-readable string using binary
// (1024-based) thresholds: whole bytes below 1 KB, one decimal place above.
// Sizes are never negative in practice; negative input is clamped to "0 B".
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	if bytes < 1024 {
		return fmt.Sprintf("%d B", bytes)
	}
	kb := float64(bytes) / sizeUnit
	if kb < sizeUnit {
		return fmt.Sprintf("%.1f KB", kb)
	}
	mb := kb / sizeUnit
	if mb < sizeUnit {
		return fmt.Sprintf("%.1f MB", mb)
	}
	gb := mb / sizeUnit
	return fmt.Sprintf("%.1f GB", gb)
}
