package parse

import "fmt"

// Argument validators used by method builders. Shape errors must surface at
// build time: a compiled expression is typically evaluated against every
// commit in a log, and deferring validation would multiply one mistake into
// a failure per object.

// ExpectNoArguments fails unless the call's argument list is empty.
func ExpectNoArguments(call *CallSite) error {
	if len(call.Args) != 0 {
		return InvalidArguments(
			fmt.Sprintf("method %q expects no arguments, got %d", call.Name, len(call.Args)),
			argumentsSpan(call),
		)
	}
	return nil
}

// ExpectExactArguments fails unless exactly count arguments are present, and
// returns them for destructuring.
func ExpectExactArguments(call *CallSite, count int) ([]Expression, error) {
	if len(call.Args) != count {
		return nil, InvalidArguments(
			fmt.Sprintf("method %q expects %d argument(s), got %d", call.Name, count, len(call.Args)),
			argumentsSpan(call),
		)
	}
	return call.Args, nil
}

// ExpectStringLiteralWith fails unless the expression is a literal string
// (not a computed property), then applies the caller-supplied refinement.
// The refinement receives the literal value and its span so it can produce
// precise diagnostics of its own.
func ExpectStringLiteralWith[T any](expr Expression, refine func(value string, span Span) (T, error)) (T, error) {
	literal, ok := expr.(*StringLiteral)
	if !ok {
		var zero T
		return zero, UnexpectedExpression("expected string literal", expr.Span())
	}
	return refine(literal.Value, literal.Span())
}

// ExpectIntegerLiteral fails unless the expression is a literal decimal
// integer, returning its value.
func ExpectIntegerLiteral(expr Expression) (int64, error) {
	literal, ok := expr.(*IntegerLiteral)
	if !ok {
		return 0, UnexpectedExpression("expected integer literal", expr.Span())
	}
	return literal.Value, nil
}

func argumentsSpan(call *CallSite) Span {
	if len(call.Args) == 0 {
		return call.FullSpan
	}
	return Span{call.Args[0].Span().Start, call.Args[len(call.Args)-1].Span().End}
}
