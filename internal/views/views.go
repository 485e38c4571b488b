// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/shrimpsizemoose/skola/internal/models"
)

//go:embed templates
var templateFS embed.FS

// Page is the data handed to every template.
type Page struct {
	Title     string
	SearchKey string
	Records   any
	Record    any
	Form      map[string]string
	Error     string
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under templates/<entity>/ together with the shared layout.
// Pages are addressed as "<entity>/<page>", e.g. "student/list".
func New(dateFormat string) (*Renderer, error) {
	funcs := template.FuncMap{
		"date": func(d models.Date) string {
			if d.IsZero() {
				return "-"
			}
			return d.Format(dateFormat)
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == "templates/layout.html" || !strings.HasSuffix(path, ".html") {
			return nil
		}

		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", path)
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", path, err)
		}

		name := strings.TrimSuffix(strings.TrimPrefix(path, "templates/"), ".html")
		r.pages[name] = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render executes the page into a buffer first so a template error never leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
