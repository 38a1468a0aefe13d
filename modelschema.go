// Package modelschema declares per-model schemas and derives runtime
// behaviour from them: attribute casting, guarded assignment, defaults,
// validation rules, document parsing, and artifact emitters. The root package
// re-exports the common types and constructors; implementations live under
// pkg/ and internal/.
package modelschema

import (
	"context"

	openapiParser "github.com/goliatone/go-modelschema/internal/openapi/parser"
	internalLoader "github.com/goliatone/go-modelschema/internal/schemadoc/loader"
	nativeParser "github.com/goliatone/go-modelschema/internal/schemadoc/parser"
	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/model"
	"github.com/goliatone/go-modelschema/pkg/orchestrator"
	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
	"github.com/goliatone/go-modelschema/pkg/validate"
)

// Definition is the static schema declared for one model.
type Definition = schema.Definition

// Field is the per-attribute schema entry inside a Definition.
type Field = schema.Field

// Record is the runtime attribute bag bound to a Definition.
type Record = model.Record

// Validator evaluates pipe-joined rule lists against an attribute bag.
type Validator = validate.Validator

// Rules maps attribute names onto their rule lists.
type Rules = validate.Rules

// Emitter generates an artifact from a Definition.
type Emitter = emit.Emitter

// EmitOptions carries per-request emitter configuration.
type EmitOptions = emit.Options

// Request describes one generation run handed to the orchestrator.
type Request = orchestrator.Request

// DefinitionOverride patches a single attribute after parsing.
type DefinitionOverride = orchestrator.DefinitionOverride

// Source identifies where a schema document comes from.
type Source = schemadoc.Source

// Document is a loaded schema document ready for parsing.
type Document = schemadoc.Document

// Loader fetches schema documents from files, fs.FS, or HTTP.
type Loader = schemadoc.Loader

// Parser normalises documents into Definitions keyed by model name.
type Parser = schemadoc.Parser

// New declares a Definition, applying table and primary key conventions.
func New(name string, fields map[string]Field) Definition {
	return schema.New(name, fields)
}

// NewRecord builds a record for the definition with empty attributes.
func NewRecord(def Definition, options ...model.Option) *Record {
	return model.New(def, options...)
}

// NewOrchestrator builds the generation pipeline with any options applied,
// the single place to wire loaders, parsers, decorators, and emitters.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a document loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...schemadoc.LoaderOption) Loader {
	return internalLoader.New(schemadoc.NewLoaderOptions(options...))
}

// NewParser constructs the native YAML document parser.
func NewParser(options ...schemadoc.ParserOption) Parser {
	return nativeParser.New(schemadoc.NewParserOptions(options...))
}

// NewOpenAPIParser constructs the OpenAPI component schema parser.
func NewOpenAPIParser(options ...schemadoc.ParserOption) Parser {
	return openapiParser.New(schemadoc.NewParserOptions(options...))
}

// GenerateDDL loads the schema document, resolves the named model, and emits
// its CREATE TABLE statement. It is the simplest entry point for callers that
// just want storage DDL.
func GenerateDDL(ctx context.Context, source Source, modelName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:  source,
		Model:   modelName,
		Emitter: "sql",
	})
}

// GenerateDocs renders the named model's Markdown reference page.
func GenerateDocs(ctx context.Context, source Source, modelName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:  source,
		Model:   modelName,
		Emitter: "markdown",
	})
}

// GenerateFromDocument runs the named emitter against a pre-loaded document.
// The loader stage is skipped; every later stage follows the usual pipeline.
func GenerateFromDocument(ctx context.Context, doc Document, modelName, emitterName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Document: &doc,
		Model:    modelName,
		Emitter:  emitterName,
	})
}

// WithDefinitionOverrides registers code-level attribute overrides applied
// after parsing and decoration.
func WithDefinitionOverrides(overrides []DefinitionOverride) orchestrator.Option {
	return orchestrator.WithDefinitionOverrides(overrides)
}

// WithThemeSelector forwards a go-theme selector to the orchestrator; theme
// and variant choices resolve before the HTML emitter runs.
func WithThemeSelector(selector orchestrator.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeProvider registers a theme registry together with the default
// theme and variant applied when requests leave them unset.
func WithThemeProvider(provider orchestrator.ThemeSelector, defaultTheme, defaultVariant string) orchestrator.Option {
	return orchestrator.WithThemeProvider(provider, defaultTheme, defaultVariant)
}
