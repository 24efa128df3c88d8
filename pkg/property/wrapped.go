package property

import (
	"errors"
	"strconv"

	"github.com/goliatone/go-revtpl/pkg/object"
)

// Kind enumerates the closed set of result types a wrapped property can
// carry. The function table stores heterogeneous builders uniformly behind
// this type-erasure boundary.
type Kind int

const (
	// KindInvalid marks the zero Wrapped value.
	KindInvalid Kind = iota
	KindInteger
	KindBoolean
	KindString
)

// String names the kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Wrapped is a type-erased property over the closed result-kind set. The
// zero value is invalid; obtain instances through WrapInteger, WrapBoolean,
// or WrapString.
type Wrapped struct {
	kind    Kind
	integer Property[int64]
	boolean Property[bool]
	str     Property[string]
}

// WrapInteger erases an integer property.
func WrapInteger(prop Property[int64]) Wrapped {
	return Wrapped{kind: KindInteger, integer: prop}
}

// WrapBoolean erases a boolean property.
func WrapBoolean(prop Property[bool]) Wrapped {
	return Wrapped{kind: KindBoolean, boolean: prop}
}

// WrapString erases a string property.
func WrapString(prop Property[string]) Wrapped {
	return Wrapped{kind: KindString, str: prop}
}

// Kind reports the wrapped result type.
func (w Wrapped) Kind() Kind {
	return w.kind
}

// IsValid reports whether the wrapper holds a property.
func (w Wrapped) IsValid() bool {
	return w.kind != KindInvalid
}

// Integer returns the underlying integer property when the kind matches.
func (w Wrapped) Integer() (Property[int64], bool) {
	return w.integer, w.kind == KindInteger
}

// Boolean returns the underlying boolean property when the kind matches.
func (w Wrapped) Boolean() (Property[bool], bool) {
	return w.boolean, w.kind == KindBoolean
}

// String returns the underlying string property when the kind matches.
func (w Wrapped) String() (Property[string], bool) {
	return w.str, w.kind == KindString
}

// Eval executes the wrapped property against a commit and returns the typed
// result as int64, bool, or string.
func (w Wrapped) Eval(commit object.Commit) (any, error) {
	switch w.kind {
	case KindInteger:
		return w.integer(commit)
	case KindBoolean:
		return w.boolean(commit)
	case KindString:
		return w.str(commit)
	default:
		return nil, errors.New("property: evaluate invalid wrapped property")
	}
}

// Format evaluates the property and renders the result as display text.
func (w Wrapped) Format(commit object.Commit) (string, error) {
	value, err := w.Eval(commit)
	if err != nil {
		return "", err
	}
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return v, nil
	default:
		return "", errors.New("property: unsupported result type")
	}
}
