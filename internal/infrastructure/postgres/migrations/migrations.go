// Package migrations contiene el esquema PostgreSQL embebido.
package migrations

import "embed"

// FS archivos NNN_nombre.sql aplicados en orden por postgres.ApplyMigrations.
//
//go:embed *.sql
var FS embed.FS
