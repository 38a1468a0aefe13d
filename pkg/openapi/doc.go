// Package openapi exposes the public surface of the OpenAPI import: the
// vendor extension vocabulary, payload detection, and an adapter bundling a
// document loader with the OpenAPI parser. The kin-openapi backed parser
// implementation lives under internal/openapi and is constructed through the
// root package, keeping the dependency hidden from consumers.
package openapi
