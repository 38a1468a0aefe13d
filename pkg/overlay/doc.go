// Package overlay loads and applies definition overlays that adjust parsed
// model definitions without editing the source documents: relabelled fields,
// tightened rules, guard and visibility flags, replacement defaults. The
// package keeps the parsers unaware of site-specific customisation while
// providing a simple decorator that orchestrator callers can opt into.
package overlay
