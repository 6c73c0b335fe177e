// Package migrations contiene el esquema SQLite embebido.
package migrations

import "embed"

// FS archivos NNN_nombre.sql aplicados en orden por sqlite.Open.
//
//go:embed *.sql
var FS embed.FS
