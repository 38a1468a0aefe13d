package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores model definitions by name, providing discovery and
// duplication safeguards. Orchestrated pipelines register parsed definitions
// here so emitters, repositories, and components can look them up.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry returns a registry with no definitions.
func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]Definition),
	}
}

// Register adds a definition by its Name. Duplicate names return an error.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("schema: definition name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.Name]; exists {
		return fmt.Errorf("schema: model %q already registered", def.Name)
	}

	r.definitions[def.Name] = def.Clone()
	return nil
}

// MustRegister is Register for init-time wiring; failures panic.
func (r *Registry) MustRegister(def Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Replace stores a definition, overwriting any existing entry with the same
// name. Overlays use this after decorating a registered definition.
func (r *Registry) Replace(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("schema: definition name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.definitions[def.Name] = def.Clone()
	return nil
}

// Get retrieves a definition by model name.
func (r *Registry) Get(name string) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[name]
	if !ok {
		return Definition{}, fmt.Errorf("schema: model %q not found", name)
	}
	return def.Clone(), nil
}

// MustGet panics if the definition is missing.
func (r *Registry) MustGet(name string) Definition {
	def, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return def
}

// List returns a sorted list of registered model names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a model is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.definitions[name]
	return ok
}
