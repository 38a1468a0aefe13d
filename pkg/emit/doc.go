// Package emit defines the contracts for turning registered definitions into
// generated artifacts: SQL migrations, Markdown references, HTML pages.
// Emitters register by name so callers can discover and select them at
// runtime.
package emit
