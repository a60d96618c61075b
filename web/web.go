// Package web holds the HTML templates served by the calculator.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// ParseTemplates parses the layout together with page and returns the set.
func ParseTemplates(page string) (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
}
