package property

import (
	"errors"
	"testing"

	"github.com/goliatone/go-revtpl/pkg/object"
)

func TestMapComposesTransforms(t *testing.T) {
	commit := object.Commit{ID: object.MustIDFromHex("a1b2c3"), Message: "hello"}

	message := Map(Identity(), func(c object.Commit) (string, error) {
		return c.Message, nil
	})
	length := Map(message, func(s string) (int64, error) {
		return int64(len(s)), nil
	})

	got, err := length(commit)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if got != 5 {
		t.Fatalf("composed value: want 5, got %d", got)
	}
}

func TestMapShortCircuitsOnUpstreamError(t *testing.T) {
	boom := errors.New("boom")
	failing := Property[string](func(object.Commit) (string, error) {
		return "", boom
	})

	ran := false
	prop := Map(failing, func(string) (int64, error) {
		ran = true
		return 0, nil
	})

	_, err := prop(object.Commit{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if ran {
		t.Fatal("transform must not run after upstream failure")
	}
}

func TestConstantIgnoresCommit(t *testing.T) {
	prop := Constant(int64(42))
	got, err := prop(object.Commit{})
	if err != nil || got != 42 {
		t.Fatalf("constant: got %d, %v", got, err)
	}
}

func TestWrappedKindsAndEval(t *testing.T) {
	commit := object.Commit{ID: object.MustIDFromHex("0011")}

	cases := []struct {
		name   string
		wrap   Wrapped
		kind   Kind
		expect any
	}{
		{name: "integer", wrap: WrapInteger(Constant(int64(7))), kind: KindInteger, expect: int64(7)},
		{name: "boolean", wrap: WrapBoolean(Constant(true)), kind: KindBoolean, expect: true},
		{name: "string", wrap: WrapString(Constant("hi")), kind: KindString, expect: "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.wrap.Kind() != tc.kind {
				t.Fatalf("kind: want %v, got %v", tc.kind, tc.wrap.Kind())
			}
			got, err := tc.wrap.Eval(commit)
			if err != nil {
				t.Fatalf("eval: %v", err)
			}
			if got != tc.expect {
				t.Fatalf("value: want %v, got %v", tc.expect, got)
			}
		})
	}
}

func TestWrappedFormat(t *testing.T) {
	commit := object.Commit{}

	cases := []struct {
		name   string
		wrap   Wrapped
		expect string
	}{
		{name: "integer", wrap: WrapInteger(Constant(int64(-3))), expect: "-3"},
		{name: "boolean", wrap: WrapBoolean(Constant(false)), expect: "false"},
		{name: "string", wrap: WrapString(Constant("abc")), expect: "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.wrap.Format(commit)
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if got != tc.expect {
				t.Fatalf("formatted: want %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestInvalidWrappedEvalFails(t *testing.T) {
	var zero Wrapped
	if zero.IsValid() {
		t.Fatal("zero wrapped should be invalid")
	}
	if _, err := zero.Eval(object.Commit{}); err == nil {
		t.Fatal("expected error evaluating invalid wrapped property")
	}
}

func TestEvalErrorUnwraps(t *testing.T) {
	inner := errors.New("backend down")
	err := &EvalError{ID: object.MustIDFromHex("a1"), Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("EvalError should unwrap to the underlying failure")
	}
}
