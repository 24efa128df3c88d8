package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-revtpl/pkg/render/template"
	"github.com/goliatone/go-revtpl/pkg/render/template/gotemplate"
)

// TextOption configures the text renderer.
type TextOption func(*TextRenderer)

// WithTextEngine injects a custom layout engine.
func WithTextEngine(engine template.Renderer) TextOption {
	return func(r *TextRenderer) {
		r.engine = engine
	}
}

// TextRenderer lays out one line (or block) per commit using the template's
// layout string. Rows that failed evaluation render as an error line so a
// single bad commit does not hide the rest of the log.
type TextRenderer struct {
	engine template.Renderer
}

// NewText constructs the text renderer, defaulting to the pongo2-backed
// layout engine.
func NewText(options ...TextOption) (*TextRenderer, error) {
	r := &TextRenderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New()
		if err != nil {
			return nil, fmt.Errorf("render: default layout engine: %w", err)
		}
		r.engine = engine
	}
	return r, nil
}

// Name implements Renderer.
func (r *TextRenderer) Name() string { return "text" }

// Render implements Renderer.
func (r *TextRenderer) Render(ctx context.Context, log Log, _ RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("render: context is required")
	}
	if log.Template == nil {
		return nil, errors.New("render: log template is required")
	}

	var out strings.Builder
	for _, row := range log.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.Err != nil {
			fmt.Fprintf(&out, "error: %v\n", row.Err)
			continue
		}
		line, err := r.engine.RenderString(log.Template.Layout, row.Values)
		if err != nil {
			return nil, fmt.Errorf("render: layout commit %s: %w", row.ID.Hex(), err)
		}
		out.WriteString(strings.TrimRight(line, "\n"))
		out.WriteByte('\n')
	}
	return []byte(out.String()), nil
}
