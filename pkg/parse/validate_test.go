package parse

import (
	"errors"
	"testing"
)

func callSiteFor(t *testing.T, input string) *CallSite {
	t.Helper()
	expr, err := ParseExpression(input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}
	call, ok := expr.(*MethodCall)
	if !ok {
		t.Fatalf("expected method call, got %T", expr)
	}
	return call.callSite()
}

func TestExpectNoArguments(t *testing.T) {
	if err := ExpectNoArguments(callSiteFor(t, "summary()")); err != nil {
		t.Fatalf("empty call should pass: %v", err)
	}

	err := ExpectNoArguments(callSiteFor(t, `summary("x")`))
	if err == nil {
		t.Fatal("expected arity error")
	}
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindInvalidArguments {
		t.Fatalf("expected invalid-arguments error, got %v", err)
	}
}

func TestExpectExactArguments(t *testing.T) {
	args, err := ExpectExactArguments(callSiteFor(t, `num_char_in_id("1")`), 1)
	if err != nil {
		t.Fatalf("exact arity should pass: %v", err)
	}
	if len(args) != 1 {
		t.Fatalf("argument count: %d", len(args))
	}

	if _, err := ExpectExactArguments(callSiteFor(t, "num_char_in_id()"), 1); err == nil {
		t.Fatal("expected arity error for missing argument")
	}
	if _, err := ExpectExactArguments(callSiteFor(t, `num_char_in_id("a", "b")`), 1); err == nil {
		t.Fatal("expected arity error for extra argument")
	}
}

func TestExpectStringLiteralWith(t *testing.T) {
	call := callSiteFor(t, `num_char_in_id("1")`)
	value, err := ExpectStringLiteralWith(call.Args[0], func(value string, span Span) (string, error) {
		return value, nil
	})
	if err != nil {
		t.Fatalf("refinement should pass: %v", err)
	}
	if value != "1" {
		t.Fatalf("refined value: %q", value)
	}

	// Computed expressions are rejected before the refinement runs.
	call = callSiteFor(t, "num_char_in_id(summary)")
	_, err = ExpectStringLiteralWith(call.Args[0], func(string, Span) (string, error) {
		t.Fatal("refinement must not run for non-literal arguments")
		return "", nil
	})
	var perr *Error
	if !errors.As(err, &perr) || perr.Kind != KindInvalidArguments {
		t.Fatalf("expected invalid-arguments error, got %v", err)
	}
}

func TestExpectStringLiteralWithRefinementSpan(t *testing.T) {
	call := callSiteFor(t, `num_char_in_id("abc")`)
	_, err := ExpectStringLiteralWith(call.Args[0], func(value string, span Span) (rune, error) {
		if len(value) != 1 {
			return 0, UnexpectedExpression("expected singular character argument", span)
		}
		return rune(value[0]), nil
	})
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parse.Error, got %T", err)
	}
	if perr.Span != (Span{15, 20}) {
		t.Fatalf("diagnostic span should point at the argument: %v", perr.Span)
	}
}

func TestExpectIntegerLiteral(t *testing.T) {
	call := callSiteFor(t, "short_id(8)")
	value, err := ExpectIntegerLiteral(call.Args[0])
	if err != nil {
		t.Fatalf("integer literal should pass: %v", err)
	}
	if value != 8 {
		t.Fatalf("literal value: %d", value)
	}

	call = callSiteFor(t, `short_id("8")`)
	if _, err := ExpectIntegerLiteral(call.Args[0]); err == nil {
		t.Fatal("expected invalid-arguments error for string literal")
	}
}
