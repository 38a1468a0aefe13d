// Package model implements the record side of a schema declaration: an
// attribute bag with dirty tracking, guard-aware mutation, default
// population, cast dispatch on reads and writes, and validation-rule
// derivation. A Record is not safe for concurrent use; it models one row
// being built or edited.
package model
