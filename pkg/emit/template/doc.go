// Package template defines emitter-agnostic template interfaces and
// adapters. Emitters depend on the seam, not on a concrete engine, so
// deployments can swap template backends without touching emit logic.
package template
