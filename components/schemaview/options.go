package schemaview

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	APIPath  string
	DocsPath string

	IncludeHidden bool
	Guard         GuardFunc

	Registry    *schema.Registry
	Emitter     emit.Emitter
	EmitOptions emit.Options

	Logger *zap.SugaredLogger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		APIPath:  "/api/models",
		DocsPath: "/docs/models",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.applyFallbacks()
	return opts
}

// applyFallbacks restores required fields a caller-built Options value may
// have left zero. Handler and route construction re-run it on pre-built
// values so a literal Options{} still serves.
func (o *Options) applyFallbacks() {
	if o.APIPath == "" {
		o.APIPath = "/api/models"
	}
	if o.DocsPath == "" {
		o.DocsPath = "/docs/models"
	}
	if o.Registry == nil {
		o.Registry = schema.NewRegistry()
	}
}

func WithAPIPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.APIPath = path
	}
}

func WithDocsPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DocsPath = path
	}
}

func WithIncludeHidden(include bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IncludeHidden = include
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithRegistry serves definitions from a shared registry. The registry is
// consulted per request, so models registered later become visible.
func WithRegistry(registry *schema.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

// WithDefinitions registers the given definitions on a fresh registry.
func WithDefinitions(definitions ...schema.Definition) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		registry := schema.NewRegistry()
		for _, def := range definitions {
			registry.MustRegister(def)
		}
		o.Registry = registry
	}
}

// WithEmitter overrides the emitter used for HTML reference pages.
func WithEmitter(emitter emit.Emitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Emitter = emitter
	}
}

// WithEmitOptions forwards emit options (theme configuration, extra context)
// to the page emitter.
func WithEmitOptions(options emit.Options) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmitOptions = options
	}
}

func WithLogger(logger *zap.SugaredLogger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
