// Package markdown emits reference documentation for model definitions as
// Markdown. One definition renders to one page: heading, storage metadata,
// and an attribute table covering casts, rules, defaults, and access flags.
package markdown
