// Package calendar normaliza fechas de formulario al formato canónico YYYY-MM-DD.
package calendar

import (
	"errors"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Layout formato canónico de fecha de calendario.
const Layout = "2006-01-02"

// ErrInvalidDate el texto no se reconoce como fecha.
var ErrInvalidDate = errors.New("fecha inválida")

// Parse interpreta s en cualquier formato habitual (ISO, RFC 3339, mm/dd/yyyy, "January 2, 2006"...).
// Las fechas con zona horaria se llevan a UTC; las que no la tienen se toman como UTC.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(Layout, s); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t.UTC(), nil
}

// Normalize devuelve la fecha de calendario (UTC) de s como YYYY-MM-DD.
func Normalize(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return t.Format(Layout), nil
}

// Today devuelve la fecha UTC de now como YYYY-MM-DD.
func Today(now time.Time) string {
	return now.UTC().Format(Layout)
}

// FormatLocal formatea una fecha canónica para mostrar ("Jan 10, 2024").
// Si no se puede interpretar se devuelve tal cual.
func FormatLocal(s string) string {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}
