// Package webfs provides the embedded web assets for the frontend.
package webfs

import "embed"

//go:embed all:static
var FS embed.FS
