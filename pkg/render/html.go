package render

import (
	"context"
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-revtpl/pkg/render/template"
	"github.com/goliatone/go-revtpl/pkg/render/template/gotemplate"
)

// HTMLOption configures the html renderer.
type HTMLOption func(*HTMLRenderer)

// WithHTMLEngine injects a custom layout engine.
func WithHTMLEngine(engine template.Renderer) HTMLOption {
	return func(r *HTMLRenderer) {
		r.engine = engine
	}
}

// WithSanitizer overrides the policy applied to commit-derived strings.
func WithSanitizer(policy *bluemonday.Policy) HTMLOption {
	return func(r *HTMLRenderer) {
		r.policy = policy
	}
}

// HTMLRenderer emits a standalone HTML document with one list entry per
// commit. Commit messages and author fields are user-controlled input, so
// every string value passes through a bluemonday policy before it reaches
// the layout.
type HTMLRenderer struct {
	engine template.Renderer
	policy *bluemonday.Policy
}

// NewHTML constructs the html renderer with a strict sanitising policy and
// the default layout engine.
func NewHTML(options ...HTMLOption) (*HTMLRenderer, error) {
	r := &HTMLRenderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.policy == nil {
		r.policy = bluemonday.StrictPolicy()
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
func (r *HTMLRenderer) Name() string { return "html" }

// Render implements Renderer.
func (r *HTMLRenderer) Render(ctx context.Context, log Log, opts RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("render: context is required")
	}
	if log.Template == nil {
		return nil, errors.New("render: log template is required")
	}

	title := opts.Title
	if title == "" {
		title = "log"
	}

	var out strings.Builder
	out.WriteString("<!doctype html>\n<html>\n<head>\n")
	fmt.Fprintf(&out, "<title>%s</title>\n", html.EscapeString(title))
	writeThemeStyle(&out, themeCSSVars(opts.Theme))
	out.WriteString("</head>\n<body>\n<ul class=\"revtpl-log\">\n")

	for _, row := range log.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.Err != nil {
			fmt.Fprintf(&out, "<li class=\"revtpl-error\">%s</li>\n", html.EscapeString(row.Err.Error()))
			continue
		}
		entry, err := r.engine.RenderString(log.Template.Layout, r.sanitizeValues(row.Values))
		if err != nil {
			return nil, fmt.Errorf("render: layout commit %s: %w", row.ID.Hex(), err)
		}
		fmt.Fprintf(&out, "<li>%s</li>\n", strings.TrimSpace(entry))
	}

	out.WriteString("</ul>\n</body>\n</html>\n")
	return []byte(out.String()), nil
}

func (r *HTMLRenderer) sanitizeValues(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	for key, value := range values {
		if s, ok := value.(string); ok {
			out[key] = r.policy.Sanitize(s)
			continue
		}
		out[key] = value
	}
	return out
}

func writeThemeStyle(out *strings.Builder, vars map[string]string) {
	if len(vars) == 0 {
		return
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out.WriteString("<style>\n:root {\n")
	for _, key := range keys {
		fmt.Fprintf(out, "  %s: %s;\n", key, vars[key])
	}
	out.WriteString("}\n</style>\n")
}
