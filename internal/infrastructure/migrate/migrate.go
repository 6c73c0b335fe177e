// Package migrate lee migraciones SQL embebidas (secciones "-- +migrate Up/Down").
package migrate

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration archivo de migración listo para aplicar.
type Migration struct {
	Name string
	Up   string
}

// Load devuelve las migraciones *.sql de la raíz de fsys ordenadas por nombre.
// Los archivos sin sección Up con contenido se omiten.
func Load(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("leer directorio de migraciones: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("leer migración %s: %w", name, err)
		}
		up := ExtractUp(string(content))
		if strings.TrimSpace(up) == "" {
			continue
		}
		out = append(out, Migration{Name: name, Up: up})
	}
	return out, nil
}

// ExtractUp devuelve el SQL de la sección Up (todo el archivo si no hay marcadores).
func ExtractUp(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	rest := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(rest, downMarker); downIdx != -1 {
		return rest[:downIdx]
	}
	return rest
}
