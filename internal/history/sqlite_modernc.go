//go:build !cgo_sqlite

package history

import _ "modernc.org/sqlite"

const driverName = "sqlite"
