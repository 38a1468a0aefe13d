package markdown

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded documentation templates so callers can
// reuse or extend the built-in page layout.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
