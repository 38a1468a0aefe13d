package gotemplate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"

	"github.com/goliatone/go-modelschema/pkg/emit/template"
)

// Engine renders pongo2 templates behind the template.TemplateRenderer
// contract. Templates load from an fs.FS and are parsed once; parsed
// templates are cached per name.
type Engine struct {
	mu    sync.RWMutex
	set   *pongo2.TemplateSet
	cache map[string]*pongo2.Template
	ext   string
}

var _ template.TemplateRenderer = (*Engine)(nil)

// Option adjusts engine construction.
type Option func(*settings)

type settings struct {
	files fs.FS
	ext   string
}

// WithFS supplies the filesystem templates load from.
func WithFS(files fs.FS) Option {
	return func(s *settings) {
		s.files = files
	}
}

// WithExtension overrides the ".tpl" default appended to bare template names.
func WithExtension(ext string) Option {
	return func(s *settings) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s.ext = ext
	}
}

// WithGoTemplateOptions accepts construction options for the go-template
// engine this adapter mirrors. The pongo2 backend has no matching knobs and
// ignores them.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*settings) {}
}

// New builds an Engine from the supplied options. A template filesystem is
// required.
func New(options ...Option) (*Engine, error) {
	cfg := settings{ext: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.files == nil {
		return nil, errors.New("gotemplate: template filesystem is required")
	}

	engine := &Engine{
		set:   pongo2.NewSet("modelschema", pongo2.NewFSLoader(cfg.files)),
		cache: make(map[string]*pongo2.Template),
		ext:   cfg.ext,
	}
	registerBuiltinFilters()
	return engine, nil
}

// Render treats name as inline template content when it carries template
// markup, otherwise as the name of a template to load.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads name from the template filesystem and executes it. The
// configured extension is appended when name does not already carry it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is not initialized")
	}
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}

	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, fmt.Sprintf("template %q", name), out)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("gotemplate: engine is not initialized")
	}

	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, data, "inline template", out)
}

// GlobalContext merges data into the globals every template sees.
func (e *Engine) GlobalContext(data any) error {
	if e == nil || e.set == nil {
		return errors.New("gotemplate: engine is not initialized")
	}
	if data == nil {
		return nil
	}

	global, err := toContext(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.set.Globals == nil {
		e.set.Globals = make(pongo2.Context)
	}
	e.set.Globals.Update(global)
	return nil
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, what string, out []io.Writer) (string, error) {
	viewContext, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: convert data: %w", err)
	}

	var buf bytes.Buffer

	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()

	if err != nil {
		return "", fmt.Errorf("gotemplate: execute %s: %w", what, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load template %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}
