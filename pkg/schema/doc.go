// Package schema defines the declarative model descriptions consumed by the
// rest of the module: per-attribute cast tags, defaults, guard and visibility
// flags, validation rules, and registration-time capability hooks.
package schema
