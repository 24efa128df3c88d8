// Package render turns compiled log templates into output: it evaluates a
// template's property bindings against every commit in a universe and hands
// the resulting rows to a named renderer (text, html) for layout.
package render

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-revtpl/pkg/language"
	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/property"
)

// Template pairs a layout string with named property-expression bindings.
// The layout belongs to the layout engine; each binding value is a property
// expression compiled through the session's function table.
type Template struct {
	Layout   string
	Bindings map[string]string
}

// CompiledTemplate holds the layout plus the compiled bindings. Compiled
// properties close only over build-time constants, so one compiled template
// may be evaluated from many goroutines.
type CompiledTemplate struct {
	Layout   string
	bindings map[string]property.Wrapped
	names    []string
}

// Compile binds every template expression through the session. All shape
// errors (unknown methods, bad arguments) surface here, before any commit
// is touched.
func Compile(session *language.Session, tpl Template) (*CompiledTemplate, error) {
	if session == nil {
		return nil, errors.New("render: session is required")
	}
	if tpl.Layout == "" {
		return nil, errors.New("render: template layout is required")
	}

	compiled := &CompiledTemplate{
		Layout:   tpl.Layout,
		bindings: make(map[string]property.Wrapped, len(tpl.Bindings)),
	}
	for name, source := range tpl.Bindings {
		if name == "" {
			return nil, errors.New("render: binding name is required")
		}
		wrapped, err := session.Compile(source)
		if err != nil {
			return nil, fmt.Errorf("render: compile binding %q: %w", name, err)
		}
		compiled.bindings[name] = wrapped
		compiled.names = append(compiled.names, name)
	}
	sort.Strings(compiled.names)
	return compiled, nil
}

// BindingNames returns the binding names, sorted.
func (t *CompiledTemplate) BindingNames() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Row is one commit's evaluated bindings. Err is set when any binding failed
// for that commit; other rows are unaffected.
type Row struct {
	ID     object.ID
	Values map[string]any
	Err    error
}

// Log is the renderer-facing result of evaluating a compiled template over
// a universe.
type Log struct {
	Template *CompiledTemplate
	Rows     []Row
}

// EvalOptions tunes template evaluation.
type EvalOptions struct {
	// FailFast aborts on the first per-commit failure instead of reporting
	// it on that commit's row.
	FailFast bool

	// Parallelism caps concurrent per-commit evaluations; values below 2
	// evaluate sequentially.
	Parallelism int
}

// Evaluate runs every binding against every commit in the universe.
// Per-commit failures land on the affected row unless FailFast is set;
// enumeration failures abort the batch.
func (t *CompiledTemplate) Evaluate(ctx context.Context, repo object.Universe, opts EvalOptions) ([]Row, error) {
	if ctx == nil {
		return nil, errors.New("render: context is required")
	}
	ids, err := repo.CommitIDs()
	if err != nil {
		return nil, fmt.Errorf("render: enumerate commits: %w", err)
	}

	rows := make([]Row, len(ids))
	if opts.Parallelism > 1 {
		t.evaluateParallel(repo, ids, rows, opts.Parallelism)
	} else {
		for i, id := range ids {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows[i] = t.evaluateRow(repo, id)
		}
	}

	if opts.FailFast {
		for _, row := range rows {
			if row.Err != nil {
				return nil, row.Err
			}
		}
	}
	return rows, nil
}

func (t *CompiledTemplate) evaluateParallel(repo object.Universe, ids []object.ID, rows []Row, workers int) {
	if workers > len(ids) {
		workers = len(ids)
	}

	var wg sync.WaitGroup
	indices := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				rows[i] = t.evaluateRow(repo, ids[i])
			}
		}()
	}
	for i := range ids {
		indices <- i
	}
	close(indices)
	wg.Wait()
}

func (t *CompiledTemplate) evaluateRow(repo object.Universe, id object.ID) Row {
	row := Row{ID: id}

	commit, err := repo.Commit(id)
	if err != nil {
		row.Err = &property.EvalError{ID: id, Err: err}
		return row
	}

	row.Values = make(map[string]any, len(t.names))
	for _, name := range t.names {
		value, err := t.bindings[name].Eval(commit)
		if err != nil {
			row.Err = &property.EvalError{ID: id, Err: fmt.Errorf("binding %q: %w", name, err)}
			return row
		}
		row.Values[name] = value
	}
	return row
}

// Renderer produces output bytes from an evaluated log.
type Renderer interface {
	Name() string
	Render(ctx context.Context, log Log, opts RenderOptions) ([]byte, error)
}
