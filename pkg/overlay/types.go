package overlay

// Store keeps the parsed model overlays from overlay documents. It is safe
// for concurrent readers when treated as immutable after construction.
type Store struct {
	models map[string]Model
}

// Model describes the overrides for a specific model definition.
type Model struct {
	Name   string
	Source string
	Table  string
	Meta   MetaConfig
	Fields map[string]FieldConfig
}

// MetaConfig overrides the documentation metadata of a definition.
type MetaConfig struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

// FieldConfig customises a declared attribute. Pointer fields distinguish
// "leave as declared" from an explicit override.
type FieldConfig struct {
	Cast        string `json:"cast,omitempty" yaml:"cast,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Rules       string `json:"rules,omitempty" yaml:"rules,omitempty"`
	AppendRules string `json:"appendRules,omitempty" yaml:"appendRules,omitempty"`
	Guarded     *bool  `json:"guarded,omitempty" yaml:"guarded,omitempty"`
	Fillable    *bool  `json:"fillable,omitempty" yaml:"fillable,omitempty"`
	Hidden      *bool  `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Model returns the overlay for the supplied model name.
func (s *Store) Model(name string) (Model, bool) {
	if s == nil {
		return Model{}, false
	}
	model, ok := s.models[name]
	return model, ok
}

// Empty reports whether the store holds any overlays.
func (s *Store) Empty() bool {
	return s == nil || len(s.models) == 0
}
