package property

import (
	"fmt"

	"github.com/goliatone/go-revtpl/pkg/object"
)

// Property is a deferred computation from a commit to a typed result. A
// property never mutates shared state: it closes only over constants captured
// when it was built, so a compiled property is safe to evaluate from many
// goroutines over different commits.
type Property[T any] func(commit object.Commit) (T, error)

// Identity returns the commit itself; it is the starting point of every
// method chain.
func Identity() Property[object.Commit] {
	return func(commit object.Commit) (object.Commit, error) {
		return commit, nil
	}
}

// Constant ignores the commit and yields a fixed value.
func Constant[T any](value T) Property[T] {
	return func(object.Commit) (T, error) {
		return value, nil
	}
}

// Map composes a property with a fallible transform. The transform runs only
// when the upstream property succeeds.
func Map[A, B any](prop Property[A], transform func(A) (B, error)) Property[B] {
	return func(commit object.Commit) (B, error) {
		var zero B
		upstream, err := prop(commit)
		if err != nil {
			return zero, err
		}
		return transform(upstream)
	}
}

// EvalError annotates a per-object evaluation failure with the commit it
// occurred on. It surfaces per object; a batch render reports it for that
// row without aborting the others unless the host opted into fail-fast.
type EvalError struct {
	ID  object.ID
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate commit %s: %v", e.ID.Hex(), e.Err)
}

// Unwrap exposes the underlying failure.
func (e *EvalError) Unwrap() error {
	return e.Err
}
