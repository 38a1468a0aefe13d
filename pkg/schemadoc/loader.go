package schemadoc

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches definition documents from the source kinds declared in this
// package. The implementation lives under internal/schemadoc/loader; this
// contract is what the orchestrator and the root facade program against.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures source resolution. Loading is offline-first: URL
// sources stay disabled until a client is supplied or the fallback enabled.
type LoaderOptions struct {
	// FileSystem backs fs sources. File sources read the host filesystem
	// regardless.
	FileSystem fs.FS

	// HTTPClient serves url sources when set. Timeouts and proxies belong to
	// the client; RequestTimeout only fills in when the client has none.
	HTTPClient *http.Client

	// AllowHTTPFallback builds a default client for url sources when none is
	// supplied.
	AllowHTTPFallback bool

	// RequestTimeout caps remote fetches.
	RequestTimeout time.Duration
}

// LoaderOption adjusts LoaderOptions before a loader is built.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithHTTPClient injects a custom HTTP client for remote documents.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback opts into remote loading with a default client and an
// optional request timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTPFallback = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions resolves a set of LoaderOption values into the final
// configuration. Nil options are skipped.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var cfg LoaderOptions
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
