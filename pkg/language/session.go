package language

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-revtpl/pkg/extensions"
	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/parse"
	"github.com/goliatone/go-revtpl/pkg/property"
)

// selfKeyword names the implicit receiver; `commit.id` and `id` compile to
// the same property.
const selfKeyword = "commit"

// Extension contributes named methods and cached singleton state to a render
// session. BuildFnTable is pure and called once at registration;
// BuildCacheExtensions runs once before any rendering and seeds the
// session's extension map.
type Extension interface {
	BuildFnTable() *FnTable
	BuildCacheExtensions(ext *extensions.Map)
}

// SessionOption customises session assembly.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	extensions []Extension
	logger     zerolog.Logger
	base       *FnTable
}

// WithExtension registers a language extension. Order matters only for
// diagnostics; method names must be unique across the base table and all
// registered extensions.
func WithExtension(ext Extension) SessionOption {
	return func(cfg *sessionConfig) {
		if ext == nil {
			return
		}
		cfg.extensions = append(cfg.extensions, ext)
	}
}

// WithLogger injects the session logger. The default discards everything.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.logger = logger
	}
}

// WithBaseTable overrides the host's base vocabulary; primarily for tests
// that want a minimal table.
func WithBaseTable(table *FnTable) SessionOption {
	return func(cfg *sessionConfig) {
		cfg.base = table
	}
}

// Session is one render session's view of the language: the merged function
// table plus the context passed to builders. Compiled properties may be
// shared across goroutines; the session itself performs no synchronisation
// beyond the extension map's freeze.
type Session struct {
	context *Context
	table   *FnTable
}

// NewSession assembles a session: base vocabulary, extension fragments
// merged with collision detection, extension state seeded and frozen.
func NewSession(repo object.Universe, options ...SessionOption) (*Session, error) {
	if repo == nil {
		return nil, errors.New("language: object universe is required")
	}

	cfg := &sessionConfig{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	table := cfg.base
	if table == nil {
		table = BaseFnTable()
	}

	ext := extensions.NewMap()
	for _, extension := range cfg.extensions {
		if err := table.Merge(extension.BuildFnTable()); err != nil {
			return nil, fmt.Errorf("language: merge extension table: %w", err)
		}
		extension.BuildCacheExtensions(ext)
	}
	ext.Freeze()

	cfg.logger.Debug().
		Int("methods", table.Len()).
		Int("cache_extensions", ext.Len()).
		Msg("language session assembled")

	return &Session{
		context: NewContext(repo, ext, cfg.logger),
		table:   table,
	}, nil
}

// Context returns the language context shared by all builders.
func (s *Session) Context() *Context {
	return s.context
}

// Table returns the merged function table.
func (s *Session) Table() *FnTable {
	return s.table
}

// Compile parses and builds a property expression. All shape errors (unknown
// method, arity, literal kind) surface here, before any commit is evaluated.
func (s *Session) Compile(source string) (property.Wrapped, error) {
	expr, err := parse.ParseExpression(source)
	if err != nil {
		return property.Wrapped{}, err
	}
	return s.build(BuildContext{Source: source}, expr)
}

func (s *Session) build(bctx BuildContext, expr parse.Expression) (property.Wrapped, error) {
	call, ok := expr.(*parse.MethodCall)
	if !ok {
		return property.Wrapped{}, parse.NewError("expected a commit method call", expr.Span())
	}

	chain, err := flattenChain(call)
	if err != nil {
		return property.Wrapped{}, err
	}

	head := chain[0]
	if head.Receiver == nil && head.Name == selfKeyword && len(head.Args) == 0 {
		chain = chain[1:]
		if len(chain) == 0 {
			return property.Wrapped{}, parse.NewError("expected a method call on commit", head.Span())
		}
	}

	first := chain[0]
	builder, ok := s.table.LookupCommitMethod(first.Name)
	if !ok {
		return property.Wrapped{}, parse.NoSuchMethod(first.Name, first.NameSpan)
	}

	wrapped, err := builder(s.context, bctx, property.Identity(), callSite(first))
	if err != nil {
		return property.Wrapped{}, err
	}

	if len(chain) > 1 {
		next := chain[1]
		return property.Wrapped{}, parse.UnexpectedExpression(
			fmt.Sprintf("cannot call method %q on %s result", next.Name, wrapped.Kind()),
			next.NameSpan,
		)
	}
	return wrapped, nil
}

// flattenChain unwinds receiver links into evaluation order.
func flattenChain(call *parse.MethodCall) ([]*parse.MethodCall, error) {
	var chain []*parse.MethodCall
	for node := parse.Expression(call); node != nil; {
		current, ok := node.(*parse.MethodCall)
		if !ok {
			return nil, parse.NewError("expected a method call", node.Span())
		}
		chain = append([]*parse.MethodCall{current}, chain...)
		node = current.Receiver
	}
	return chain, nil
}

func callSite(call *parse.MethodCall) *parse.CallSite {
	return parse.NewCallSite(call.Name, call.NameSpan, call.Args, call.Span())
}
