// Package revtpl is the convenience surface over the template-property
// language: assemble a render session, compile a log template, evaluate it
// over a commit universe, and lay the rows out with a named renderer.
package revtpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-revtpl/pkg/language"
	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/render"
)

// Template aliases render.Template for callers wiring bindings by hand.
type Template = render.Template

// Extension aliases the language extension point.
type Extension = language.Extension

// Option customises log rendering.
type Option func(*config)

type config struct {
	extensions []language.Extension
	registry   *render.Registry
	renderer   string
	logger     zerolog.Logger
	eval       render.EvalOptions
	renderOpts render.RenderOptions
}

// WithExtension registers a language extension for the session.
func WithExtension(ext language.Extension) Option {
	return func(cfg *config) {
		if ext == nil {
			return
		}
		cfg.extensions = append(cfg.extensions, ext)
	}
}

// WithRegistry injects a custom renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(cfg *config) {
		cfg.registry = registry
	}
}

// WithRenderer names the renderer to use; the default is "text".
func WithRenderer(name string) Option {
	return func(cfg *config) {
		cfg.renderer = name
	}
}

// WithLogger injects the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithEvalOptions tunes evaluation (fail-fast, parallelism).
func WithEvalOptions(opts render.EvalOptions) Option {
	return func(cfg *config) {
		cfg.eval = opts
	}
}

// WithRenderOptions forwards per-request renderer instructions.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(cfg *config) {
		cfg.renderOpts = opts
	}
}

// NewSession assembles a language session over the supplied universe; a thin
// re-export for hosts that drive compilation and evaluation themselves.
func NewSession(repo object.Universe, options ...language.SessionOption) (*language.Session, error) {
	return language.NewSession(repo, options...)
}

// RenderLog compiles the template against a fresh session and renders every
// commit in the universe. It is the simplest entry point for callers that
// just want output bytes.
func RenderLog(ctx context.Context, repo object.Universe, tpl Template, options ...Option) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("revtpl: context is required")
	}

	cfg := &config{renderer: "text", logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	sessionOpts := []language.SessionOption{language.WithLogger(cfg.logger)}
	for _, ext := range cfg.extensions {
		sessionOpts = append(sessionOpts, language.WithExtension(ext))
	}
	session, err := language.NewSession(repo, sessionOpts...)
	if err != nil {
		return nil, err
	}

	compiled, err := render.Compile(session, tpl)
	if err != nil {
		return nil, err
	}

	rows, err := compiled.Evaluate(ctx, repo, cfg.eval)
	if err != nil {
		return nil, err
	}

	registry := cfg.registry
	if registry == nil {
		registry, err = defaultRegistry()
		if err != nil {
			return nil, err
		}
	}
	renderer, err := registry.Get(cfg.renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, render.Log{Template: compiled, Rows: rows}, cfg.renderOpts)
	if err != nil {
		return nil, fmt.Errorf("revtpl: render output: %w", err)
	}
	return output, nil
}

func defaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	text, err := render.NewText()
	if err != nil {
		return nil, fmt.Errorf("revtpl: text renderer: %w", err)
	}
	registry.MustRegister(text)

	html, err := render.NewHTML()
	if err != nil {
		return nil, fmt.Errorf("revtpl: html renderer: %w", err)
	}
	registry.MustRegister(html)

	return registry, nil
}
