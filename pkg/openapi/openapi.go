package openapi

import (
	"github.com/goliatone/go-modelschema/pkg/schemadoc"
)

// DefaultParserName identifies the OpenAPI parser in registries and CLIs.
const DefaultParserName = "openapi"

// Vendor extensions steer the definition mapping where OpenAPI has no native
// vocabulary. Schema-level keys pick the storage table and primary key;
// property-level keys override the derived cast tag, append declared rules,
// and whitelist attributes for mass assignment.
const (
	TableExtension      = "x-model-table"
	PrimaryKeyExtension = "x-model-primary-key"
	CastExtension       = "x-model-cast"
	RulesExtension      = "x-model-rules"
	FillableExtension   = "x-model-fillable"
)

// Detect reports whether the raw payload appears to be an OpenAPI document.
func Detect(raw []byte) bool {
	return schemadoc.DetectFormat(raw) == schemadoc.FormatOpenAPI
}
