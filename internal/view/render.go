package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/dukerupert/hbnb/internal/page"
)

const layoutTemplate = "layout.html"

// Renderer executes one template set per page, each made of the shared
// layout plus the page's content template.
type Renderer struct {
	templates map[page.Page]*template.Template
}

// NewRenderer parses layout.html and every page template from fsys.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	templates := make(map[page.Page]*template.Template)
	for _, p := range page.All() {
		tmpl, err := template.ParseFS(fsys, layoutTemplate, p.Template())
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.Template(), err)
		}
		templates[p] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

// Render writes p with data. Output is buffered so a failing template never
// sends a partial page.
func (r *Renderer) Render(w io.Writer, p page.Page, data any) error {
	tmpl, ok := r.templates[p]
	if !ok {
		return fmt.Errorf("no template for page %s", p)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, layoutTemplate, data); err != nil {
		return fmt.Errorf("execute %s: %w", p.Template(), err)
	}
	_, err := buf.WriteTo(w)
	return err
}
