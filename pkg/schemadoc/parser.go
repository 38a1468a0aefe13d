package schemadoc

import (
	"context"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Parser normalises definition documents into schema definitions keyed by
// model name. Both the native YAML format and OpenAPI component schemas
// arrive through the same contract.
type Parser interface {
	Definitions(ctx context.Context, doc Document) (map[string]schema.Definition, error)
}

// ParserOptions exposes toggles shared by the parser implementations.
type ParserOptions struct {
	// StrictCasts rejects cast tags outside the built-in vocabulary instead
	// of passing them through for custom registries to resolve. Defaults to
	// false so documents can declare casts registered at runtime.
	StrictCasts bool

	// DefaultPrimaryKey names the attribute assumed to be the primary key
	// when a model does not declare one. Defaults to "id".
	DefaultPrimaryKey string
}

// ParserOption adjusts ParserOptions before a parser is built.
type ParserOption func(*ParserOptions)

// WithStrictCasts toggles rejection of unknown cast tags.
func WithStrictCasts(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.StrictCasts = enabled
	}
}

// WithDefaultPrimaryKey overrides the assumed primary key attribute.
func WithDefaultPrimaryKey(name string) ParserOption {
	return func(opts *ParserOptions) {
		if name != "" {
			opts.DefaultPrimaryKey = name
		}
	}
}

// NewParserOptions folds the options over the defaults. Both parser
// implementations resolve their configuration through this helper so the
// defaults stay in one place.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		StrictCasts:       false,
		DefaultPrimaryKey: "id",
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level modelschema package to avoid import cycles.
