package template

import (
	"io"
)

// TemplateRenderer is the contract the widget relies on to turn named
// templates or inline template strings into markup. Every render returns the
// output and also writes it to any supplied writers.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
