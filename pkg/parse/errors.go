package parse

import "fmt"

// Span locates a byte range inside the source expression. End is exclusive.
type Span struct {
	Start int
	End   int
}

// String renders the span for diagnostics.
func (s Span) String() string {
	if s.End <= s.Start+1 {
		return fmt.Sprintf("offset %d", s.Start)
	}
	return fmt.Sprintf("offset %d-%d", s.Start, s.End)
}

// ErrorKind classifies build-time diagnostics so hosts and tests can react to
// specific failure shapes without matching message text.
type ErrorKind int

const (
	// KindSyntax covers malformed source: bad tokens, unbalanced parens,
	// trailing garbage.
	KindSyntax ErrorKind = iota

	// KindNoSuchMethod reports a method name missing from the function table.
	KindNoSuchMethod

	// KindInvalidArguments reports an argument count or literal-shape
	// mismatch detected before any object is evaluated.
	KindInvalidArguments
)

// Error is a build/parse diagnostic. It always carries the span of the
// offending source so hosts can point at the exact argument or method name.
// Errors of this type are raised while compiling an expression, never while
// evaluating one.
type Error struct {
	Kind    ErrorKind
	Message string
	Span    Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("parse: %s (at %s)", e.Message, e.Span)
}

// NewError builds a syntax diagnostic.
func NewError(message string, span Span) *Error {
	return &Error{Kind: KindSyntax, Message: message, Span: span}
}

// NoSuchMethod reports an unknown method name at the given span.
func NoSuchMethod(name string, span Span) *Error {
	return &Error{
		Kind:    KindNoSuchMethod,
		Message: fmt.Sprintf("no such method %q", name),
		Span:    span,
	}
}

// InvalidArguments reports an arity or argument-shape mismatch.
func InvalidArguments(message string, span Span) *Error {
	return &Error{Kind: KindInvalidArguments, Message: message, Span: span}
}

// UnexpectedExpression reports an argument whose shape does not match what
// the builder expects, e.g. a computed expression where a literal is needed.
func UnexpectedExpression(message string, span Span) *Error {
	return &Error{Kind: KindInvalidArguments, Message: message, Span: span}
}
