package language

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/parse"
	"github.com/goliatone/go-revtpl/pkg/property"
)

// BuildContext carries build-scoped information into method builders.
type BuildContext struct {
	// Source is the full expression text being compiled, for diagnostics.
	Source string
}

// BuildFunc compiles one method call into a wrapped property. It receives
// the property representing "the commit so far" (the identity property for a
// bare method), validates the call's arguments, captures literal values at
// build time, and returns the property performing the per-object work.
// Registering a builder never triggers evaluation.
type BuildFunc func(ctx *Context, bctx BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error)

// FnTable maps method names to builders. The host builds a base table and
// merges extension fragments into it; name collisions are an integrity error
// reported to the host, never a runtime concern.
type FnTable struct {
	commitMethods map[string]BuildFunc
}

// NewFnTable returns an empty table. Extensions use the same type for the
// fragments they contribute.
func NewFnTable() *FnTable {
	return &FnTable{commitMethods: make(map[string]BuildFunc)}
}

// RegisterCommitMethod adds a builder under the given name. Duplicate names
// and empty registrations return an error.
func (t *FnTable) RegisterCommitMethod(name string, fn BuildFunc) error {
	if name == "" {
		return fmt.Errorf("language: method name is required")
	}
	if fn == nil {
		return fmt.Errorf("language: method %q has no builder", name)
	}
	if _, exists := t.commitMethods[name]; exists {
		return fmt.Errorf("language: method %q already registered", name)
	}
	t.commitMethods[name] = fn
	return nil
}

// MustRegisterCommitMethod panics on registration failure. Useful when
// assembling static tables.
func (t *FnTable) MustRegisterCommitMethod(name string, fn BuildFunc) {
	if err := t.RegisterCommitMethod(name, fn); err != nil {
		panic(err)
	}
}

// Merge folds another table's methods into this one, failing on the first
// name collision.
func (t *FnTable) Merge(other *FnTable) error {
	if other == nil {
		return nil
	}
	for name, fn := range other.commitMethods {
		if err := t.RegisterCommitMethod(name, fn); err != nil {
			return err
		}
	}
	return nil
}

// LookupCommitMethod returns the builder registered under name.
func (t *FnTable) LookupCommitMethod(name string) (BuildFunc, bool) {
	fn, ok := t.commitMethods[name]
	return fn, ok
}

// CommitMethodNames returns the registered names, sorted, for discovery and
// diagnostics.
func (t *FnTable) CommitMethodNames() []string {
	names := make([]string, 0, len(t.commitMethods))
	for name := range t.commitMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered methods.
func (t *FnTable) Len() int {
	return len(t.commitMethods)
}
