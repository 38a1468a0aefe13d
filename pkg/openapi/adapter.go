package openapi

import (
	"context"
	"errors"

	"github.com/goliatone/go-modelschema/pkg/schema"
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

// Adapter bundles a document loader with the OpenAPI parser so callers can go
// from a source to definitions in one step, outside the orchestrator
// pipeline.
type Adapter struct {
	loader schemadoc.Loader
	parser schemadoc.Parser
}

// NewAdapter constructs an adapter from the supplied loader and parser.
func NewAdapter(loader schemadoc.Loader, parser schemadoc.Parser) *Adapter {
	return &Adapter{
		loader: loader,
		parser: parser,
	}
}

// Name returns the registry identifier for the OpenAPI import.
func (a *Adapter) Name() string {
	return DefaultParserName
}

// Definitions loads the source and parses its component schemas into model
// definitions keyed by name.
func (a *Adapter) Definitions(ctx context.Context, src schemadoc.Source) (map[string]schema.Definition, error) {
	if a == nil || a.loader == nil {
		return nil, errors.New("openapi adapter: loader is nil")
	}
	if a.parser == nil {
		return nil, errors.New("openapi adapter: parser is nil")
	}

	doc, err := a.loader.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	if !Detect(doc.Raw()) {
		return nil, errors.New("openapi adapter: document is not OpenAPI")
	}
	return a.parser.Definitions(ctx, doc)
}
