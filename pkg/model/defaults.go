package model

import (
	"fmt"
	"sort"
)

// ApplyDefaults assigns schema-declared defaults to a new record, skipping
// attributes that already carry a pending value. bypassGuard is explicit:
// callers that want guarded attributes populated pass true rather than
// toggling any shared state. Persisted records are left untouched, which
// also makes repeated calls no-ops.
func (r *Record) ApplyDefaults(bypassGuard bool) error {
	if r.exists {
		return nil
	}

	defaults := r.def.Defaults()
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)

	dirty := r.Dirty()
	for _, name := range names {
		if _, pending := dirty[name]; pending {
			continue
		}
		if _, present := r.attributes[name]; present {
			continue
		}
		if err := r.set(name, defaults[name], bypassGuard); err != nil {
			return fmt.Errorf("model: default for %q: %w", name, err)
		}
	}
	return nil
}

// Fill mass-assigns values through Set. When the schema declares fillable
// attributes, assignment is restricted to that whitelist; other keys are
// silently skipped, matching the guard's silent-drop behavior.
func (r *Record) Fill(values map[string]any, bypassGuard bool) error {
	fillable := r.def.FillableNames()
	whitelist := make(map[string]struct{}, len(fillable))
	for _, name := range fillable {
		whitelist[name] = struct{}{}
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(whitelist) > 0 {
			if _, ok := whitelist[key]; !ok {
				continue
			}
		}
		if err := r.set(key, values[key], bypassGuard); err != nil {
			return err
		}
	}
	return nil
}
