package cast

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-modelschema/pkg/schema"
)

// Func converts a single value between its native and storage forms. nil
// never reaches a Func; the registry short-circuits it.
type Func func(value any) (any, error)

var aliases = map[string]string{
	"int":        schema.CastInteger,
	"bool":       schema.CastBoolean,
	"real":       schema.CastFloat,
	"double":     schema.CastFloat,
	"json":       schema.CastArray,
	"collection": schema.CastArray,
}

// Canonical resolves a cast tag to its canonical form: trimmed, lowercased,
// aliases mapped (int->integer, bool->boolean, real/double->float,
// json/collection->array). Unknown tags come back unchanged.
func Canonical(tag string) string {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}
	return normalized
}

// Registry holds the read- and write-direction dispatch tables keyed by
// canonical cast tag.
type Registry struct {
	mu    sync.RWMutex
	read  map[string]Func
	write map[string]Func
}

// NewRegistry creates a registry seeded with the built-in handlers.
func NewRegistry() *Registry {
	r := &Registry{
		read:  make(map[string]Func),
		write: make(map[string]Func),
	}
	registerBuiltins(r)
	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the shared built-in registry. Records constructed without
// an explicit registry fall back to it.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// RegisterRead adds a read-direction handler for tag. Registering a tag that
// already has a read handler returns an error.
func (r *Registry) RegisterRead(tag string, fn Func) error {
	return r.register(tag, fn, true)
}

// RegisterWrite adds a write-direction handler for tag.
func (r *Registry) RegisterWrite(tag string, fn Func) error {
	return r.register(tag, fn, false)
}

func (r *Registry) register(tag string, fn Func, read bool) error {
	canonical := Canonical(tag)
	if canonical == "" {
		return fmt.Errorf("cast: tag is required")
	}
	if fn == nil {
		return fmt.Errorf("cast: handler for %q is required", canonical)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	table := r.write
	direction := "write"
	if read {
		table = r.read
		direction = "read"
	}
	if _, exists := table[canonical]; exists {
		return fmt.Errorf("cast: %s handler for %q already registered", direction, canonical)
	}
	table[canonical] = fn
	return nil
}

// Read applies the read-direction handler for tag. nil values and unknown
// tags pass through unchanged.
func (r *Registry) Read(tag string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	r.mu.RLock()
	fn, ok := r.read[Canonical(tag)]
	r.mu.RUnlock()

	if !ok {
		return value, nil
	}
	return fn(value)
}

// Write applies the write-direction handler for tag. nil values and tags
// without a write entry are stored as-is.
func (r *Registry) Write(tag string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}

	r.mu.RLock()
	fn, ok := r.write[Canonical(tag)]
	r.mu.RUnlock()

	if !ok {
		return value, nil
	}
	return fn(value)
}

// HasRead reports whether tag resolves to a read-direction handler.
func (r *Registry) HasRead(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.read[Canonical(tag)]
	return ok
}

// HasWrite reports whether tag resolves to a write-direction handler.
func (r *Registry) HasWrite(tag string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.write[Canonical(tag)]
	return ok
}

// Tags returns the sorted canonical tags with at least one handler.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(r.read)+len(r.write))
	for tag := range r.read {
		seen[tag] = struct{}{}
	}
	for tag := range r.write {
		seen[tag] = struct{}{}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
