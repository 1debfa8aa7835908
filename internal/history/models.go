package history

import (
	"time"

	"github.com/dirscope/dirscope/internal/scan"
)

// Record is one entry in the scan history log. JSON field names follow the
// wire format the frontend expects.
type Record struct {
	ID         int64       `json:"-"`
	Path       string      `json:"path"`
	ScannedAt  time.Time   `json:"scanTime"`
	TotalSize  int64       `json:"totalSize"`
	SizeFormat string      `json:"sizeFormat"`
	Items      []scan.Item `json:"items"`
}
