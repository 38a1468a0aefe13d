package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Transformer mutates the parsed definition set before per-model decorators
// run. Implementations can rename models, rewrite tables, or perform
// arbitrary cross-model rewrites.
type Transformer interface {
	Transform(ctx context.Context, definitions map[string]schema.Definition) error
}

// TransformerFunc lets a bare function serve as a Transformer.
type TransformerFunc func(ctx context.Context, definitions map[string]schema.Definition) error

// Transform calls fn; a nil function is a no-op.
func (fn TransformerFunc) Transform(ctx context.Context, definitions map[string]schema.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, definitions)
}

// TablePrefixTransformer namespaces every storage table with a fixed prefix.
// Deployments that share one database across applications use it to keep
// generated DDL from colliding.
type TablePrefixTransformer struct {
	prefix string
}

// NewTablePrefixTransformer constructs a transformer adding prefix to every
// table name.
func NewTablePrefixTransformer(prefix string) (*TablePrefixTransformer, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, errors.New("table prefix transformer: prefix is required")
	}
	return &TablePrefixTransformer{prefix: prefix}, nil
}

// Transform rewrites the table of every definition in the set.
func (t *TablePrefixTransformer) Transform(ctx context.Context, definitions map[string]schema.Definition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for name, def := range definitions {
		if strings.HasPrefix(def.Table, t.prefix) {
			continue
		}
		def.Table = t.prefix + def.Table
		definitions[name] = def
	}
	return nil
}
