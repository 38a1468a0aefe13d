package emit

import (
	theme "github.com/goliatone/go-theme"
)

// Options describe per-request data that emitters can use to customise their
// output without mutating the definition pipeline.
type Options struct {
	// Heading overrides the title derived from the model name and metadata.
	Heading string
	// IncludeHidden emits hidden attributes too. Generated documentation
	// normally omits them, matching what serialized records expose.
	IncludeHidden bool
	// Theme carries the resolved theme configuration for HTML emitters:
	// design tokens, CSS variables, partial overrides, and the asset URL
	// resolver. Nil means the emitter's built-in presentation.
	Theme *theme.RendererConfig
	// Extra carries emitter-specific values merged into the template
	// context under their own keys.
	Extra map[string]any
}
