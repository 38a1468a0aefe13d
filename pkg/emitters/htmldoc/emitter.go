package htmldoc

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/cast"
	"github.com/goliatone/go-modelschema/pkg/emit"
	emittemplate "github.com/goliatone/go-modelschema/pkg/emit/template"
	gotemplate "github.com/goliatone/go-modelschema/pkg/emit/template/gotemplate"
	"github.com/goliatone/go-modelschema/pkg/schema"
	theme "github.com/goliatone/go-theme"
)

const stylesheetAssetKey = "docs.stylesheet"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer emittemplate.TemplateRenderer
	defaultStyles    bool
	stylesheet       string
}

// WithTemplatesFS overrides the embedded page templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads page templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer swaps in a different rendering engine.
func WithTemplateRenderer(renderer emittemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithDefaultStyles inlines the embedded stylesheet into generated pages so
// they render styled without any asset pipeline.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.defaultStyles = true
	}
}

// WithStylesheet links pages against an external stylesheet URL. A theme
// asset resolver takes precedence when it supplies one.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = href
	}
}

type Emitter struct {
	templates     emittemplate.TemplateRenderer
	defaultStyles bool
	stylesheet    string
}

var _ emit.Emitter = (*Emitter)(nil)

// New constructs the HTML emitter applying any provided options.
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
			return nil, fmt.Errorf("htmldoc emitter: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Emitter{
		templates:     renderer,
		defaultStyles: cfg.defaultStyles,
		stylesheet:    cfg.stylesheet,
	}, nil
}

func (e *Emitter) Name() string {
	return "html"
}

func (e *Emitter) ContentType() string {
	return "text/html; charset=utf-8"
}

// DefaultPartials maps partial slots onto the embedded templates that render
// them when no theme override applies.
func DefaultPartials() map[string]string {
	return map[string]string{
		"docs.head":   "templates/partials/head.tmpl",
		"docs.footer": "templates/partials/footer.tmpl",
	}
}

// Emit renders the definition into a full HTML page. Theme configuration in
// the options drives CSS variables, chrome partials, and stylesheet links.
func (e *Emitter) Emit(_ context.Context, def schema.Definition, options emit.Options) ([]byte, error) {
	if e.templates == nil {
		return nil, fmt.Errorf("htmldoc emitter: template renderer is nil")
	}
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("htmldoc emitter: %w", err)
	}

	page := documentContext(def, options)
	page["theme"] = themeContext(options.Theme)
	if href := e.stylesheetURL(options.Theme); href != "" {
		page["stylesheet_url"] = href
	}
	if e.defaultStyles {
		page["inline_styles"] = defaultStylesheet()
	}
	page["head_html"] = e.partialHTML("docs.head", options.Theme, page)
	page["footer_html"] = e.partialHTML("docs.footer", options.Theme, page)

	result, err := e.templates.RenderTemplate("templates/model.tmpl", page)
	if err != nil {
		return nil, fmt.Errorf("htmldoc emitter: render template: %w", err)
	}
	return []byte(result), nil
}

// partialHTML renders a chrome slot. Theme overrides name templates inside
// the theme bundle; when that bundle is not mounted in the emitter's FS the
// embedded partial still renders the slot.
func (e *Emitter) partialHTML(slot string, cfg *theme.RendererConfig, data map[string]any) string {
	path := DefaultPartials()[slot]
	if cfg != nil && cfg.Partials[slot] != "" {
		path = cfg.Partials[slot]
	}
	if path == "" {
		return ""
	}

	html, err := e.templates.RenderTemplate(path, data)
	if err == nil {
		return html
	}
	fallback := DefaultPartials()[slot]
	if fallback == "" || fallback == path {
		return ""
	}
	html, err = e.templates.RenderTemplate(fallback, data)
	if err != nil {
		return ""
	}
	return html
}

func (e *Emitter) stylesheetURL(cfg *theme.RendererConfig) string {
	if cfg != nil && cfg.AssetURL != nil {
		if href := cfg.AssetURL(stylesheetAssetKey); href != "" {
			return href
		}
	}
	return e.stylesheet
}

func themeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"name":           cfg.Theme,
		"variant":        cfg.Variant,
		"tokens":         cfg.Tokens,
		"css_vars":       cfg.CSSVars,
		"css_vars_style": cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
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
			"description":      sanitizeDescription(def.Meta.Description),
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
			"rules":       field.Rules,
			"default":     defaultText(field.Default),
			"access":      accessFlags(def, name, field),
			"label":       field.Label,
			"description": sanitizeDescription(field.Description),
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
