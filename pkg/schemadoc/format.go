package schemadoc

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Format names the document flavours the parsers understand.
type Format string

const (
	FormatUnknown Format = ""
	FormatNative  Format = "native"
	FormatOpenAPI Format = "openapi"
)

// DetectFormat sniffs a raw payload and reports which parser should handle
// it. Native documents carry a top-level "models" key; OpenAPI documents a
// version marker. Unknown payloads return FormatUnknown so callers can fail
// with context.
func DetectFormat(raw []byte) Format {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return FormatUnknown
	}

	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return FormatOpenAPI
			}
			if _, ok := payload["swagger"]; ok {
				return FormatOpenAPI
			}
			if _, ok := payload["models"]; ok {
				return FormatNative
			}
		}
		return FormatUnknown
	}

	lower := strings.ToLower(string(trimmed))
	if strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:") {
		return FormatOpenAPI
	}
	if strings.Contains(lower, "models:") {
		return FormatNative
	}
	return FormatUnknown
}
