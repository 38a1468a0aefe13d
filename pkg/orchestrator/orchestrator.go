package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	openapiParser "github.com/goliatone/go-modelschema/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-modelschema/internal/schemadoc/loader"
	nativeParser "github.com/goliatone/go-modelschema/internal/schemadoc/parser"
	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/emitters/htmldoc"
	"github.com/goliatone/go-modelschema/pkg/emitters/markdown"
	"github.com/goliatone/go-modelschema/pkg/emitters/sqlddl"
	"github.com/goliatone/go-modelschema/pkg/overlay"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

const defaultEmitterName = "markdown"

// Decorator mutates a parsed definition before it is emitted. Overlay
// decorators and the sensitive-fields decorator implement it.
type Decorator interface {
	Decorate(def *schema.Definition) error
}

// Option adjusts orchestrator construction.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(loader schemadoc.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a parser used for every document regardless of detected
// format.
func WithParser(parser schemadoc.Parser) Option {
	return func(o *Orchestrator) {
		o.forcedParser = parser
	}
}

// WithFormatParser injects the parser used for one detected document format.
func WithFormatParser(format schemadoc.Format, parser schemadoc.Parser) Option {
	return func(o *Orchestrator) {
		if parser == nil {
			return
		}
		if o.parsers == nil {
			o.parsers = make(map[schemadoc.Format]schemadoc.Parser)
		}
		o.parsers[format] = parser
	}
}

// WithRegistry injects an emitter registry.
func WithRegistry(registry *emit.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithEmitters registers additional emitters once the registry is ready.
func WithEmitters(emitters ...emit.Emitter) Option {
	return func(o *Orchestrator) {
		if len(emitters) == 0 {
			return
		}
		o.pendingEmitters = append(o.pendingEmitters, emitters...)
	}
}

// WithDefaultEmitter overrides the emitter used when a request omits an
// explicit Emitter field.
func WithDefaultEmitter(name string) Option {
	return func(o *Orchestrator) {
		o.defaultEmitter = name
	}
}

// WithSchemaTransformer registers a Transformer that can mutate the parsed
// definition set before per-model decorators run.
func WithSchemaTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators that run against each parsed definition
// before emitting.
func WithDecorators(decorators ...Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithOverlayFS supplies an fs.FS holding overlay documents. The loaded store
// becomes a decorator running after any decorators registered explicitly.
func WithOverlayFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.overlayFS = fsys
	}
}

// Orchestrator coordinates the full pipeline from schema document to emitted
// output.
type Orchestrator struct {
	loader            schemadoc.Loader
	forcedParser      schemadoc.Parser
	parsers           map[schemadoc.Format]schemadoc.Parser
	registry          *emit.Registry
	pendingEmitters   []emit.Emitter
	defaultEmitter    string
	transformer       Transformer
	decorators        []Decorator
	overlayFS         fs.FS
	overlayConfigured bool
	themeSelector     ThemeSelector
	themeName         string
	themeVariant      string
	overrides         map[string][]DefinitionOverride
	initialiseErr     error
	defaultsApplied   bool
}

// New builds an Orchestrator from the options, then fills every dependency
// the options left unset with its built-in implementation.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultEmitter: defaultEmitterName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to emit output for a model from a
// schema document.
type Request struct {
	// Source identifies where the schema document lives. Optional when
	// Document is supplied.
	Source schemadoc.Source

	// Document skips the loader for callers that already hold the raw
	// schema payload.
	Document *schemadoc.Document

	// Model selects which definition to emit. Optional when the document
	// declares exactly one model.
	Model string

	// Emitter names the emitter to use. If empty, the orchestrator falls
	// back to the configured default emitter.
	Emitter string

	// EmitOptions carries per-request instructions such as heading overrides
	// or hidden-attribute visibility. When omitted, emitters receive the
	// zero-value struct.
	EmitOptions emit.Options

	// ThemeName and ThemeVariant select the theme applied to themed
	// emitters. Empty values fall back to the configured defaults.
	ThemeName    string
	ThemeVariant string
}

// Definitions executes the loader and parser stages followed by transformers
// and decorators, returning every model the document declares.
func (o *Orchestrator) Definitions(ctx context.Context, req Request) (map[string]schema.Definition, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if !o.defaultsApplied {
		o.applyDefaults()
		if err := o.initialiseErr; err != nil {
			return nil, err
		}
	}
	return o.definitions(ctx, req)
}

// Generate executes the full pipeline and returns the emitted bytes for one
// model.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	definitions, err := o.Definitions(ctx, req)
	if err != nil {
		return nil, err
	}

	def, err := selectDefinition(definitions, req.Model)
	if err != nil {
		return nil, err
	}

	emitter, err := o.emitterFor(req.Emitter)
	if err != nil {
		return nil, err
	}

	options := req.EmitOptions
	if options.Theme == nil {
		cfg, err := o.themeConfig(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		options.Theme = cfg
	}

	output, err := emitter.Emit(ctx, def, options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emit output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) definitions(ctx context.Context, req Request) (map[string]schema.Definition, error) {
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}

	parser, err := o.parserFor(doc)
	if err != nil {
		return nil, err
	}

	definitions, err := parser.Definitions(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse definitions: %w", err)
	}

	if err := o.applyTransformer(ctx, definitions); err != nil {
		return nil, err
	}
	if err := o.applyDecorators(definitions); err != nil {
		return nil, err
	}
	if err := o.applyOverrides(definitions); err != nil {
		return nil, err
	}

	return definitions, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schemadoc.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schemadoc.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schemadoc.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) parserFor(doc schemadoc.Document) (schemadoc.Parser, error) {
	if o.forcedParser != nil {
		return o.forcedParser, nil
	}

	format := schemadoc.DetectFormat(doc.Raw())
	if format == schemadoc.FormatUnknown {
		return nil, fmt.Errorf("orchestrator: unable to detect format of %s", doc.Location())
	}
	parser, ok := o.parsers[format]
	if !ok {
		return nil, fmt.Errorf("orchestrator: no parser registered for format %q", format)
	}
	return parser, nil
}

func (o *Orchestrator) emitterFor(name string) (emit.Emitter, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: emitter registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultEmitter
	}

	if target != "" {
		emitter, err := o.registry.Get(target)
		if err == nil {
			return emitter, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: emitter %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no emitters registered")
	}

	emitter, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: emitter %q: %w", names[0], err)
	}
	return emitter, nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, definitions map[string]schema.Definition) error {
	if o.transformer == nil || len(definitions) == 0 {
		return nil
	}
	if err := o.transformer.Transform(ctx, definitions); err != nil {
		return fmt.Errorf("orchestrator: transform definitions: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDecorators(definitions map[string]schema.Definition) error {
	if len(o.decorators) == 0 || len(definitions) == 0 {
		return nil
	}
	for _, name := range sortedModelNames(definitions) {
		def := definitions[name]
		for _, decorator := range o.decorators {
			if decorator == nil {
				continue
			}
			if err := decorator.Decorate(&def); err != nil {
				return fmt.Errorf("orchestrator: decorate %s: %w", name, err)
			}
		}
		definitions[name] = def
	}
	return nil
}

func selectDefinition(definitions map[string]schema.Definition, model string) (schema.Definition, error) {
	if model != "" {
		def, ok := definitions[model]
		if !ok {
			return schema.Definition{}, fmt.Errorf("orchestrator: model %q not found", model)
		}
		return def, nil
	}
	if len(definitions) == 1 {
		for _, def := range definitions {
			return def, nil
		}
	}
	return schema.Definition{}, fmt.Errorf("orchestrator: model is required when the document declares %d models", len(definitions))
}

func sortedModelNames(definitions map[string]schema.Definition) []string {
	names := make([]string, 0, len(definitions))
	for name := range definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(schemadoc.NewLoaderOptions())
	}
	if o.parsers == nil {
		o.parsers = make(map[schemadoc.Format]schemadoc.Parser)
	}
	if _, ok := o.parsers[schemadoc.FormatNative]; !ok {
		o.parsers[schemadoc.FormatNative] = nativeParser.New(schemadoc.NewParserOptions())
	}
	if _, ok := o.parsers[schemadoc.FormatOpenAPI]; !ok {
		o.parsers[schemadoc.FormatOpenAPI] = openapiParser.New(schemadoc.NewParserOptions())
	}
	if o.registry == nil {
		o.registry = emit.NewRegistry()
		o.registerDefaultEmitters()
	}
	for _, emitter := range o.pendingEmitters {
		if emitter == nil {
			continue
		}
		if err := o.registry.Register(emitter); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register emitter: %w", err)
		}
	}
	o.pendingEmitters = nil
	if o.defaultEmitter == "" {
		o.defaultEmitter = defaultEmitterName
	}

	o.ensureOverlayDecorator()

	o.defaultsApplied = true
}

func (o *Orchestrator) registerDefaultEmitters() {
	sqlEmitter, err := sqlddl.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default emitters: %w", err)
		return
	}
	markdownEmitter, err := markdown.New()
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default emitters: %w", err)
		return
	}
	htmlEmitter, err := htmldoc.New(htmldoc.WithDefaultStyles())
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default emitters: %w", err)
		return
	}
	o.registry.MustRegister(sqlEmitter)
	o.registry.MustRegister(markdownEmitter)
	o.registry.MustRegister(htmlEmitter)
}

func (o *Orchestrator) ensureOverlayDecorator() {
	if o.overlayConfigured {
		return
	}
	o.overlayConfigured = true

	if o.overlayFS == nil {
		return
	}

	store, err := overlay.LoadFS(o.overlayFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load overlays: %w", err)
		return
	}
	if store.Empty() {
		return
	}

	o.decorators = append(o.decorators, overlay.NewDecorator(store))
}
