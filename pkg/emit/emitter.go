package emit

import (
	"context"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Emitter converts a definition into a byte representation (SQL, Markdown,
// HTML, ...).
type Emitter interface {
	Name() string
	ContentType() string
	Emit(ctx context.Context, def schema.Definition, options Options) ([]byte, error)
}
