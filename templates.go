package modelschema

import (
	"io/fs"

	"github.com/goliatone/go-modelschema/pkg/emitters/htmldoc"
)

// EmbeddedTemplates exposes the built-in HTML documentation templates so
// callers can reuse or extend them without importing the emitter package
// directly.
func EmbeddedTemplates() fs.FS {
	return htmldoc.TemplatesFS()
}
