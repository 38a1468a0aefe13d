package schemaview

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the router surface the component registers itself on. An
// *http.ServeMux satisfies it directly.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path of the JSON API under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.APIPath)
}

// RegisterRoutes registers the schema endpoints under basePath on mux and
// returns the JSON API mount path.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers handlers under basePath using a
// pre-built Options value, filling in fallbacks for any zeroed required
// fields.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("schemaview: missing mux")
	}
	opts.applyFallbacks()

	apiPattern := mountPath(basePath, opts.APIPath)
	docsPattern := mountPath(basePath, opts.DocsPath)
	handler := handlerWithPaths(opts, apiPattern, docsPattern)

	mux.Handle(apiPattern, handler)
	mux.Handle(apiPattern+"/", handler)
	mux.Handle(docsPattern+"/", handler)
	return apiPattern, nil
}

// mountPath joins basePath and routePath into one pattern, tolerating
// missing or duplicated slashes on either side.
func mountPath(basePath, routePath string) string {
	route := strings.TrimSpace(routePath)
	if route == "" {
		route = "/"
	}
	if route[0] != '/' {
		route = "/" + route
	}

	base := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if base == "" {
		return route
	}
	if base[0] != '/' {
		base = "/" + base
	}
	return base + route
}
