package schemaview

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-modelschema/pkg/emit"
	"github.com/goliatone/go-modelschema/pkg/emitters/htmldoc"
	"github.com/goliatone/go-modelschema/pkg/schema"
)

// HTTPError lets guard errors pick the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs a status code with an optional cause.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err == nil {
		return http.StatusText(e.StatusCode())
	}
	return e.Err.Error()
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns the configured code, or 500 when unset.
func (e StatusError) StatusCode() int {
	if e.Code > 0 {
		return e.Code
	}
	return http.StatusInternalServerError
}

type listResponse struct {
	Data []ModelSummary `json:"data"`
}

type detailResponse struct {
	Data ModelDetail `json:"data"`
}

// Handler builds the component's net/http handler from default options plus
// any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

// NewHandler is the constructor form of Handler.
func NewHandler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options
// value, filling in fallbacks for any zeroed required fields.
func HandlerWithOptions(opts Options) http.Handler {
	opts.applyFallbacks()
	return handlerWithPaths(opts, opts.APIPath, opts.DocsPath)
}

// handlerWithPaths dispatches on the fully mounted paths, which differ from
// the configured ones when the component is registered under a base path.
func handlerWithPaths(opts Options, apiPath, docsPath string) http.Handler {
	emitter, emitterErr := resolveEmitter(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
		default:
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		path := r.URL.Path
		switch {
		case path == apiPath || path == apiPath+"/":
			serveList(w, r, opts)
		case strings.HasPrefix(path, apiPath+"/"):
			serveDetail(w, r, opts, strings.TrimPrefix(path, apiPath+"/"))
		case strings.HasPrefix(path, docsPath+"/"):
			serveDocs(w, r, opts, emitter, emitterErr, strings.TrimPrefix(path, docsPath+"/"))
		default:
			http.NotFound(w, r)
		}
	})
}

func resolveEmitter(opts Options) (emit.Emitter, error) {
	if opts.Emitter != nil {
		return opts.Emitter, nil
	}
	return htmldoc.New(htmldoc.WithDefaultStyles())
}

func serveList(w http.ResponseWriter, r *http.Request, opts Options) {
	summaries := make([]ModelSummary, 0)
	for _, name := range opts.Registry.List() {
		def, err := opts.Registry.Get(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, summaryFromDefinition(def, opts.IncludeHidden))
	}
	writeJSON(w, r, listResponse{Data: summaries})
}

func serveDetail(w http.ResponseWriter, r *http.Request, opts Options, name string) {
	def, ok := lookupModel(opts, name)
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, r, detailResponse{Data: detailFromDefinition(def, opts.IncludeHidden)})
}

func serveDocs(w http.ResponseWriter, r *http.Request, opts Options, emitter emit.Emitter, emitterErr error, name string) {
	if emitterErr != nil {
		if opts.Logger != nil {
			opts.Logger.Errorw("Model page emitter unavailable", "error", emitterErr)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	def, ok := lookupModel(opts, name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	emitOptions := opts.EmitOptions
	emitOptions.IncludeHidden = opts.IncludeHidden

	page, err := emitter.Emit(r.Context(), def, emitOptions)
	if err != nil {
		if opts.Logger != nil {
			opts.Logger.Errorw("Render model page failed", "model", def.Name, "error", err)
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", emitter.ContentType())
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(page)
}

func lookupModel(opts Options, name string) (schema.Definition, bool) {
	if name == "" || strings.Contains(name, "/") {
		return schema.Definition{}, false
	}
	def, err := opts.Registry.Get(name)
	if err != nil {
		return schema.Definition{}, false
	}
	return def, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

// writeGuardError answers a rejected request, defaulting to 403 unless the
// guard error carries its own status.
func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if c := httpErr.StatusCode(); c > 0 {
			code = c
		}
	}
	http.Error(w, http.StatusText(code), code)
}
