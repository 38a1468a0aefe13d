package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

// Loader resolves schema documents from local files, an fs.FS, or HTTP
// endpoints. Remote fetching stays disabled unless the options carry a
// client or opt into the fallback, so loading is offline-first.
type Loader struct {
	files   fs.FS
	client  *http.Client
	timeout time.Duration
}

var _ schemadoc.Loader = (*Loader)(nil)

// New builds a Loader from resolved options. A supplied HTTP client is
// cloned before timeout adjustments so the caller's client never mutates.
func New(options schemadoc.LoaderOptions) schemadoc.Loader {
	l := &Loader{
		files:   options.FileSystem,
		timeout: options.RequestTimeout,
	}
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if clone.Timeout == 0 && l.timeout > 0 {
			clone.Timeout = l.timeout
		}
		l.client = &clone
	case options.AllowHTTPFallback:
		l.client = &http.Client{Timeout: l.timeout}
	}
	return l
}

// Load reads the bytes behind src and wraps them in a Document.
func (l *Loader) Load(ctx context.Context, src schemadoc.Source) (schemadoc.Document, error) {
	if src == nil {
		return schemadoc.Document{}, errors.New("schemadoc loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return schemadoc.Document{}, err
	}

	location := src.Location()
	var (
		data []byte
		err  error
	)
	switch kind := src.Kind(); kind {
	case schemadoc.SourceKindFile:
		data, err = l.readFile(location)
	case schemadoc.SourceKindFS:
		data, err = l.readFS(location)
	case schemadoc.SourceKindURL:
		data, err = l.fetch(ctx, location)
	default:
		err = fmt.Errorf("schemadoc loader: unsupported source kind %q", kind)
	}
	if err != nil {
		return schemadoc.Document{}, err
	}
	return schemadoc.NewDocument(src, data)
}

func (l *Loader) readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("schemadoc loader: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemadoc loader: read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) readFS(name string) ([]byte, error) {
	if l.files == nil {
		return nil, errors.New("schemadoc loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("schemadoc loader: fs path is required")
	}
	data, err := fs.ReadFile(l.files, name)
	if err != nil {
		return nil, fmt.Errorf("schemadoc loader: read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("schemadoc loader: http support disabled")
	}
	if rawURL == "" {
		return nil, errors.New("schemadoc loader: url is required")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("schemadoc loader: build request: %w", err)
	}
	res, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schemadoc loader: fetch %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("schemadoc loader: fetch %s: unexpected status %d", rawURL, res.StatusCode)
	}
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("schemadoc loader: read response: %w", err)
	}
	return data, nil
}
