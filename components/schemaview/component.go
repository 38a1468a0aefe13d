package schemaview

import "net/http"

// Component bundles the schema endpoints with their resolved configuration
// so hosts can mount the viewer as one value. Build it through New; the
// handler is prepared once and reused across mounts.
type Component struct {
	opts    Options
	handler http.Handler
}

// New resolves the options and prepares the handler the component serves.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{
		opts:    opts,
		handler: HandlerWithOptions(opts),
	}
}

// Options returns a copy of the resolved configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Handler returns the prepared net/http handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return c.handler
}

// RegisterRoutes mounts the component's endpoints under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
