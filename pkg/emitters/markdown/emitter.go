package markdown

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/emit"
	emittemplate "github.com/goliatone/go-modelschema/pkg/emit/template"
	gotemplate "github.com/goliatone/go-modelschema/pkg/emit/template/gotemplate"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer emittemplate.TemplateRenderer
}

// WithTemplatesFS swaps the embedded template bundle for files.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir reads templates from a directory instead of the embedded
// bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer replaces the default template engine.
func WithTemplateRenderer(renderer emittemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Emitter struct {
	templates emittemplate.TemplateRenderer
}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the markdown emitter applying any provided options.
func New(options ...Option) (*Emitter, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("markdown emitter: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Emitter{templates: renderer}, nil
}

func (e *Emitter) Name() string {
	return "markdown"
}

func (e *Emitter) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Emit renders the definition into a Markdown reference page. Hidden
// attributes stay out of the table unless options request them.
func (e *Emitter) Emit(_ context.Context, def schema.Definition, options emit.Options) ([]byte, error) {
	if e.templates == nil {
		return nil, fmt.Errorf("markdown emitter: template renderer is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("markdown emitter: %w", err)
	}

	result, err := e.templates.RenderTemplate("templates/model.tmpl", documentContext(def, options))
	if err != nil {
		return nil, fmt.Errorf("markdown emitter: render template: %w", err)
	}
	return []byte(result), nil
}

func documentContext(def schema.Definition, options emit.Options) map[string]any {
	heading := options.Heading
	if heading == "" {
		heading = def.Meta.Label
	}
	if heading == "" {
		heading = def.Name
	}

	ctx := map[string]any{
		"heading": heading,
		"model": map[string]any{
			"name":             def.Name,
			"table":            def.Table,
			"primary_key":      def.PrimaryKey,
			"primary_key_cast": cast.Canonical(def.PrimaryKeyCast),
			"label":            def.Meta.Label,
			"description":      def.Meta.Description,
		},
		"fields": fieldRows(def, options.IncludeHidden),
	}
	for key, value := range options.Extra {
		ctx[key] = value
	}
	return ctx
}

func fieldRows(def schema.Definition, includeHidden bool) []map[string]any {
	rows := make([]map[string]any, 0, len(def.Fields))
	for _, name := range def.FieldNames() {
		field, _ := def.Field(name)
		if field.Hidden && !includeHidden {
			continue
		}
		rows = append(rows, map[string]any{
			"name":        name,
			"cast":        cast.Canonical(field.Cast),
			"rules":       escapeCell(field.Rules),
			"default":     escapeCell(defaultText(field.Default)),
			"access":      accessFlags(def, name, field),
			"label":       field.Label,
			"description": field.Description,
		})
	}
	return rows
}

func accessFlags(def schema.Definition, name string, field schema.Field) string {
	flags := make([]string, 0, 4)
	if name == def.PrimaryKey {
		flags = append(flags, "primary key")
	}
	if field.Guarded {
		flags = append(flags, "guarded")
	}
	if field.Fillable {
		flags = append(flags, "fillable")
	}
	if field.Hidden {
		flags = append(flags, "hidden")
	}
	return strings.Join(flags, ", ")
}

func defaultText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// escapeCell keeps pipe-joined rule lists from breaking the table markup.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
