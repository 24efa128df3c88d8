// Package language assembles the template-property language for one render
// session: the function table of method builders, the language context they
// receive, and the extension registration protocol. Everything here is
// per-session state passed explicitly to builders; nothing is stored in
// process globals, so independent sessions stay testable and parallelizable.
package language

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-revtpl/pkg/extensions"
	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/property"
)

// Context is handed to every method builder. It exposes the object universe,
// the session's frozen extension state, and the type-erasure helpers used to
// return heterogeneous results through the function table.
type Context struct {
	repo       object.Universe
	extensions *extensions.Map
	logger     zerolog.Logger
}

// NewContext builds a language context. The extensions map is expected to be
// frozen before the first property executes.
func NewContext(repo object.Universe, ext *extensions.Map, logger zerolog.Logger) *Context {
	if ext == nil {
		ext = extensions.NewMap()
	}
	return &Context{repo: repo, extensions: ext, logger: logger}
}

// Repo returns the read-only object universe.
func (c *Context) Repo() object.Universe {
	return c.repo
}

// Extensions returns the session's extension-state map.
func (c *Context) Extensions() *extensions.Map {
	return c.extensions
}

// Logger returns the session logger.
func (c *Context) Logger() zerolog.Logger {
	return c.logger
}

// WrapInteger erases an integer property for the function table.
func (c *Context) WrapInteger(prop property.Property[int64]) property.Wrapped {
	return property.WrapInteger(prop)
}

// WrapBoolean erases a boolean property for the function table.
func (c *Context) WrapBoolean(prop property.Property[bool]) property.Wrapped {
	return property.WrapBoolean(prop)
}

// WrapString erases a string property for the function table.
func (c *Context) WrapString(prop property.Property[string]) property.Wrapped {
	return property.WrapString(prop)
}

// CacheExtension looks up the singleton of type T seeded by an extension at
// session start. ok == false means the host wired a builder without seeding
// its state; that is a programming error, not a user-facing condition.
func CacheExtension[T any](c *Context) (*T, bool) {
	return extensions.Get[T](c.extensions)
}
