package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/drallgood/bookstore-storefront/internal/models"
)

//go:embed templates static
var assets embed.FS

// Renderer executes the embedded page templates.
// Every page is parsed once together with the layout and partials.
type Renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// NewRenderer parses all templates. placeholder is the cover URL format
// with one %s for the size.
func NewRenderer(placeholder string) (*Renderer, error) {
	funcs := template.FuncMap{
		"price":    FormatPrice,
		"date":     FormatDate,
		"badge":    StatusBadgeClass,
		"statuses": func() []models.OrderStatus { return models.OrderStatuses },
		"inc":      func(n int) int { return n + 1 },
		"dec":      func(n int) int { return n - 1 },
		"cover": func(url, size string) string {
			return CoverURL(url, size, placeholder)
		},
	}

	base, err := template.New("base").Funcs(funcs).ParseFS(assets, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	files, err := fs.Glob(assets, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	r := &Renderer{base: base, pages: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout for %s: %w", name, err)
		}
		if _, err := clone.ParseFS(assets, file); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", name, err)
		}
		r.pages[name] = clone
	}
	return r, nil
}

// HasPage reports whether a page template exists
func (r *Renderer) HasPage(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Page renders a full page inside the layout
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, page Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return write(w, status, t, "layout", page)
}

// Fragment renders one named partial without the layout
func (r *Renderer) Fragment(w http.ResponseWriter, status int, name string, data interface{}) error {
	return write(w, status, r.base, name, data)
}

func write(w http.ResponseWriter, status int, t *template.Template, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static returns the embedded static assets
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
