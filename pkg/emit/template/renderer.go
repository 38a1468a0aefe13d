package template

import (
	"io"
)

// TemplateRenderer is the engine seam the emitters render through. The
// method set matches github.com/goliatone/go-template so either engine
// satisfies it without an adapter shim.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
