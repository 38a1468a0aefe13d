// Package schemadoc exposes the public contracts for the loader and parser
// stages that turn raw model definition documents into registered schema
// definitions. Implementations live under internal/schemadoc and
// internal/openapi so parsing dependencies stay hidden from consumers.
package schemadoc
