package parse

import (
	"errors"
	"testing"
)

func TestParseBareIdentifier(t *testing.T) {
	expr, err := ParseExpression("summary")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	call, ok := expr.(*MethodCall)
	if !ok {
		t.Fatalf("expected method call, got %T", expr)
	}
	if call.Name != "summary" || call.Receiver != nil || len(call.Args) != 0 {
		t.Fatalf("unexpected call: %+v", call)
	}
	if call.NameSpan != (Span{0, 7}) {
		t.Fatalf("name span: %v", call.NameSpan)
	}
}

func TestParseChainedCallWithArguments(t *testing.T) {
	expr, err := ParseExpression(`commit.num_char_in_id("1")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	call, ok := expr.(*MethodCall)
	if !ok {
		t.Fatalf("expected method call, got %T", expr)
	}
	if call.Name != "num_char_in_id" {
		t.Fatalf("method name: %q", call.Name)
	}

	receiver, ok := call.Receiver.(*MethodCall)
	if !ok || receiver.Name != "commit" {
		t.Fatalf("receiver: %+v", call.Receiver)
	}

	if len(call.Args) != 1 {
		t.Fatalf("argument count: %d", len(call.Args))
	}
	literal, ok := call.Args[0].(*StringLiteral)
	if !ok {
		t.Fatalf("expected string literal, got %T", call.Args[0])
	}
	if literal.Value != "1" {
		t.Fatalf("literal value: %q", literal.Value)
	}
	if literal.Span() != (Span{22, 25}) {
		t.Fatalf("literal span: %v", literal.Span())
	}
}

func TestParseIntegerArgumentAndSingleQuotes(t *testing.T) {
	expr, err := ParseExpression("short_id(8)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	call := expr.(*MethodCall)
	if v, ok := call.Args[0].(*IntegerLiteral); !ok || v.Value != 8 {
		t.Fatalf("integer argument: %+v", call.Args[0])
	}

	expr, err = ParseExpression("num_char_in_id('x')")
	if err != nil {
		t.Fatalf("parse single quotes: %v", err)
	}
	call = expr.(*MethodCall)
	if v, ok := call.Args[0].(*StringLiteral); !ok || v.Value != "x" {
		t.Fatalf("string argument: %+v", call.Args[0])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{name: "trailing garbage", input: "summary)"},
		{name: "missing close paren", input: "short_id(8"},
		{name: "unterminated string", input: `num_char_in_id("1`},
		{name: "missing method after dot", input: "commit."},
		{name: "bad character", input: "summary # nope"},
		{name: "empty", input: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseExpression(tc.input)
			if err == nil {
				t.Fatalf("expected parse error for %q", tc.input)
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *parse.Error, got %T", err)
			}
			if perr.Kind != KindSyntax {
				t.Fatalf("expected syntax kind, got %v", perr.Kind)
			}
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	expr, err := ParseExpression(`num_char_in_id("\n")`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	call := expr.(*MethodCall)
	literal := call.Args[0].(*StringLiteral)
	if literal.Value != "\n" {
		t.Fatalf("escape decoding: %q", literal.Value)
	}
}
