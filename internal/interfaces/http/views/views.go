// Package views contiene las plantillas HTML del dashboard embebidas en el binario.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	html "github.com/gofiber/template/html/v2"

	"github.com/jhoicas/booking-dashboard/internal/domain/calendar"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/money"
)

// Layout plantilla base de todas las páginas.
const Layout = "layouts/main"

//go:embed templates
var templates embed.FS

// New construye el motor de plantillas con las funciones de formato del dashboard.
func New() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err) // el directorio está embebido; solo falla si se renombra
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	for name, fn := range Funcs() {
		engine.AddFunc(name, fn)
	}
	return engine
}

// Funcs funciones disponibles en las plantillas.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":    money.Format,
		"amount":   money.InputValue,
		"date":     calendar.FormatLocal,
		"statuses": func() []entity.CustomerStatus { return entity.CustomerStatuses },
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"add": func(a, b int) int { return a + b },
	}
}
