// Package render turns reconciled records into static HTML pages. The
// Engine seam keeps the page renderer independent of the template
// implementation; the default engine wraps html/template with a parse cache.
package render

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
	"sync"
)

var (
	// ErrTemplateNotFound indicates a render call named an unregistered template.
	ErrTemplateNotFound = errors.New("render: template not found")
	// ErrEngineRequired indicates the renderer was constructed without an engine.
	ErrEngineRequired = errors.New("render: template engine is required")
)

// Engine renders a named template against the given data.
type Engine interface {
	Render(name string, data any) (string, error)
}

// HTMLEngine is the default Engine backed by html/template. Templates are
// parsed once on registration and cached for the lifetime of the engine.
type HTMLEngine struct {
	mu    sync.RWMutex
	cache map[string]*template.Template
	funcs template.FuncMap
}

// NewHTMLEngine builds an engine preloaded with the built-in page templates.
func NewHTMLEngine() (*HTMLEngine, error) {
	e := &HTMLEngine{
		cache: map[string]*template.Template{},
		funcs: template.FuncMap{
			"safe": func(s string) template.HTML { return template.HTML(s) },
			"join": func(items []string, sep string) string { return strings.Join(items, sep) },
		},
	}
	for name, source := range builtinTemplates() {
		if err := e.Register(name, source); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Register parses and caches a template under the given name, replacing any
// previous registration. Custom layouts override the built-in pages this way.
func (e *HTMLEngine) Register(name, source string) error {
	tmpl, err := template.New(name).Funcs(e.funcs).Parse(source)
	if err != nil {
		return fmt.Errorf("render: parse template %s: %w", name, err)
	}
	e.mu.Lock()
	e.cache[name] = tmpl
	e.mu.Unlock()
	return nil
}

// Render executes a registered template.
func (e *HTMLEngine) Render(name string, data any) (string, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[name]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render: execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
