// Package views holds the HTML templates rendered by the controllers.
package views

import (
	"embed"
	"html/template"
	"time"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers available inside every template
var Funcs = template.FuncMap{
	"qty":      models.FormatQuantity,
	"deref":    deref,
	"date":     date,
	"datetime": datetime,
	"selected": selected,
}

// Load parses every page; each page is addressed by its file name, e.g. "receptek.html"
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006.01.02")
}

func datetime(t time.Time) string {
	return t.Local().Format("2006.01.02 15:04")
}

// selected reports whether an optional id points at id
func selected(current *uint, id uint) bool {
	return current != nil && *current == id
}
