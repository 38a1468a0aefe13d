package emit

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves emitters by name. The zero value is not usable; construct
// with NewRegistry. All methods are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	emitters map[string]Emitter
}

// NewRegistry returns a registry with no emitters.
func NewRegistry() *Registry {
	return &Registry{emitters: make(map[string]Emitter)}
}

// Register adds emitter under its Name. Nil emitters, empty names, and
// duplicates are rejected.
func (r *Registry) Register(emitter Emitter) error {
	if emitter == nil {
		return fmt.Errorf("emit: nil emitter")
	}
	name := emitter.Name()
	if name == "" {
		return fmt.Errorf("emit: emitter has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emitters[name]; taken {
		return fmt.Errorf("emit: duplicate emitter %q", name)
	}
	r.emitters[name] = emitter
	return nil
}

// MustRegister is Register for init-time wiring; failures panic.
func (r *Registry) MustRegister(emitter Emitter) {
	if err := r.Register(emitter); err != nil {
		panic(err)
	}
}

// Get returns the named emitter.
func (r *Registry) Get(name string) (Emitter, error) {
	r.mu.RLock()
	emitter, ok := r.emitters[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("emit: unknown emitter %q", name)
	}
	return emitter, nil
}

// List returns the registered emitter names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.emitters))
	for name := range r.emitters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.emitters[name]
	return ok
}
