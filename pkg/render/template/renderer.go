package template

import (
	"io"
)

// Renderer mirrors the github.com/goliatone/go-template engine contract,
// providing the seam the log renderers rely on so hosts can swap layout
// engines without touching the property pipeline.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
