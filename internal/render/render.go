// Package render parses the page templates and executes the shared layout.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"finitefield.org/labs-web/internal/format"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Assets returns the embedded static files, rooted so that css/site.css is
// served at /assets/css/site.css.
func Assets() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Options configures a Renderer.
type Options struct {
	// Dev reparses templates on every render.
	Dev bool
	// Dir, when set, is read instead of the embedded templates. Used with Dev
	// to edit templates without rebuilding.
	Dir string
	// Now backs the year template func. Defaults to time.Now.
	Now func() time.Time
}

// Renderer executes the "base" layout with page data.
type Renderer struct {
	opts   Options
	mu     sync.RWMutex
	cached *template.Template
}

// New parses the templates once and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &Renderer{opts: opts}
	t, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.cached = t
	return r, nil
}

func (r *Renderer) source() fs.FS {
	if r.opts.Dir != "" {
		return os.DirFS(r.opts.Dir)
	}
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"year":  func() int { return r.opts.Now().Year() },
		"join":  strings.Join,
		"count": format.Count,
		"date":  format.FmtDate,
	}
}

func (r *Renderer) parse() (*template.Template, error) {
	t, err := template.New("_root").Funcs(r.funcs()).ParseFS(r.source(), "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("render: parse templates: %w", err)
	}
	if t.Lookup("base") == nil {
		return nil, fmt.Errorf("render: base template not defined")
	}
	return t, nil
}

func (r *Renderer) templates() (*template.Template, error) {
	if r.opts.Dev {
		t, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.cached = t
		r.mu.Unlock()
		return t, nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cached, nil
}

// Execute renders the layout with data into a buffer.
func (r *Renderer) Execute(data any) ([]byte, error) {
	t, err := r.templates()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("render: execute: %w", err)
	}
	return buf.Bytes(), nil
}

// HTML renders data and writes it with status. Nothing is written when
// rendering fails, so the caller can still send an error response.
func (r *Renderer) HTML(w http.ResponseWriter, status int, data any) error {
	body, err := r.Execute(data)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}
