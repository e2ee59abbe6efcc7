// Package web bundles the admin panel templates and static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/gin-contrib/multitemplate"

	"github.com/noah-isme/tutorbot-admin/pkg/format"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages lists the page templates; each is rendered inside templates/layout.html.
var Pages = []string{"dashboard", "students", "topics", "sessions", "progress"}

// Static returns the static asset tree rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// FuncMap holds the helpers available to every template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"format_datetime": formatDatetime,
		"score": func(v *float64) string {
			if v == nil {
				return "-"
			}
			return fmt.Sprintf("%.1f", *v)
		},
		"percent": func(done, total int) int {
			if total <= 0 {
				return 0
			}
			return done * 100 / total
		},
	}
}

// formatDatetime accepts an optional Go layout; the default is format.DisplayLayout.
func formatDatetime(value interface{}, layout ...string) string {
	l := format.DisplayLayout
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}
	return format.FormatValue(value, l)
}

// NewRenderer builds a multitemplate renderer with one named template per page.
func NewRenderer() (multitemplate.Renderer, error) {
	layout, err := templateFS.ReadFile("templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	renderer := multitemplate.NewRenderer()
	for _, page := range Pages {
		body, err := templateFS.ReadFile("templates/" + page + ".html")
		if err != nil {
			return nil, fmt.Errorf("read %s template: %w", page, err)
		}
		renderer.AddFromStringsFuncs(page, FuncMap(), string(layout), string(body))
	}
	return renderer, nil
}
