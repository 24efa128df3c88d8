package render

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-revtpl/pkg/language"
	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/property"
)

func testSession(t *testing.T) (*language.Session, *object.MemoryUniverse) {
	t.Helper()
	repo := object.NewMemoryUniverse(
		object.Commit{ID: object.MustIDFromHex("a1b2c3"), Message: "add parser"},
		object.Commit{ID: object.MustIDFromHex("000111"), Message: "fix cache\n\ndetails"},
	)
	session, err := language.NewSession(repo)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session, repo
}

func TestCompileTemplate(t *testing.T) {
	session, _ := testSession(t)

	compiled, err := Compile(session, Template{
		Layout:   "{{ short }} {{ subject }}",
		Bindings: map[string]string{"short": "short_id(4)", "subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if diff := cmp.Diff([]string{"short", "subject"}, compiled.BindingNames()); diff != "" {
		t.Fatalf("binding names mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileTemplateErrors(t *testing.T) {
	session, _ := testSession(t)

	if _, err := Compile(session, Template{Bindings: map[string]string{"x": "id"}}); err == nil {
		t.Fatal("expected error for empty layout")
	}
	if _, err := Compile(session, Template{
		Layout:   "{{ x }}",
		Bindings: map[string]string{"x": "nope()"},
	}); err == nil {
		t.Fatal("expected error for unknown method in binding")
	}
	if _, err := Compile(nil, Template{Layout: "{{ x }}"}); err == nil {
		t.Fatal("expected error for nil session")
	}
}

func TestEvaluateRows(t *testing.T) {
	session, repo := testSession(t)
	compiled, err := Compile(session, Template{
		Layout:   "{{ id }} {{ subject }}",
		Bindings: map[string]string{"id": "short_id(4)", "subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	rows, err := compiled.Evaluate(context.Background(), repo, EvalOptions{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("row count: %d", len(rows))
	}
	if rows[0].Values["id"] != "a1b2" || rows[0].Values["subject"] != "add parser" {
		t.Fatalf("first row: %+v", rows[0].Values)
	}
	if rows[1].Values["subject"] != "fix cache" {
		t.Fatalf("second row: %+v", rows[1].Values)
	}
}

// flakyUniverse fails single-commit lookups for one ID while enumeration
// still succeeds.
type flakyUniverse struct {
	inner *object.MemoryUniverse
	bad   object.ID
}

func (u *flakyUniverse) CommitIDs() ([]object.ID, error) {
	return u.inner.CommitIDs()
}

func (u *flakyUniverse) Commit(id object.ID) (object.Commit, error) {
	if id.Equal(u.bad) {
		return object.Commit{}, errors.New("object store corrupted")
	}
	return u.inner.Commit(id)
}

func TestEvaluateIsolatesRowFailures(t *testing.T) {
	session, repo := testSession(t)
	compiled, err := Compile(session, Template{
		Layout:   "{{ subject }}",
		Bindings: map[string]string{"subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	flaky := &flakyUniverse{inner: repo, bad: object.MustIDFromHex("a1b2c3")}
	rows, err := compiled.Evaluate(context.Background(), flaky, EvalOptions{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if rows[0].Err == nil {
		t.Fatal("expected row error for corrupted commit")
	}
	var evalErr *property.EvalError
	if !errors.As(rows[0].Err, &evalErr) {
		t.Fatalf("expected *property.EvalError, got %T", rows[0].Err)
	}
	if !evalErr.ID.Equal(flaky.bad) {
		t.Fatalf("error should carry the failing ID, got %s", evalErr.ID.Hex())
	}
	if rows[1].Err != nil || rows[1].Values["subject"] != "fix cache" {
		t.Fatalf("healthy row affected: %+v", rows[1])
	}
}

func TestEvaluateFailFast(t *testing.T) {
	session, repo := testSession(t)
	compiled, err := Compile(session, Template{
		Layout:   "{{ subject }}",
		Bindings: map[string]string{"subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	flaky := &flakyUniverse{inner: repo, bad: object.MustIDFromHex("a1b2c3")}
	if _, err := compiled.Evaluate(context.Background(), flaky, EvalOptions{FailFast: true}); err == nil {
		t.Fatal("expected fail-fast error")
	}
}

func TestEvaluateParallelMatchesSequential(t *testing.T) {
	repo := object.NewMemoryUniverse()
	for i := 0; i < 20; i++ {
		repo.Add(object.Commit{
			ID:      object.MustIDFromHex(fmt.Sprintf("%04x", i)),
			Message: fmt.Sprintf("commit %d", i),
		})
	}
	session, err := language.NewSession(repo)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	compiled, err := Compile(session, Template{
		Layout:   "{{ id }} {{ subject }}",
		Bindings: map[string]string{"id": "id", "subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	sequential, err := compiled.Evaluate(context.Background(), repo, EvalOptions{})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parallel, err := compiled.Evaluate(context.Background(), repo, EvalOptions{Parallelism: 4})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if diff := cmp.Diff(sequential, parallel); diff != "" {
		t.Fatalf("parallel rows diverge (-seq +par):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	text, err := NewText()
	if err != nil {
		t.Fatalf("new text renderer: %v", err)
	}
	if err := registry.Register(text); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := registry.Register(text); err == nil {
		t.Fatal("expected duplicate registration error")
	}

	got, err := registry.Get("text")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "text" {
		t.Fatalf("renderer name: %q", got.Name())
	}
	if _, err := registry.Get("missing"); err == nil {
		t.Fatal("expected not-found error")
	}
	if !registry.Has("text") || registry.Has("missing") {
		t.Fatal("Has misreports registration state")
	}
	if diff := cmp.Diff([]string{"text"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestTextRendererOutput(t *testing.T) {
	session, repo := testSession(t)
	compiled, err := Compile(session, Template{
		Layout:   "{{ short }} {{ subject }}",
		Bindings: map[string]string{"short": "short_id(4)", "subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	rows, err := compiled.Evaluate(context.Background(), repo, EvalOptions{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	text, err := NewText()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := text.Render(context.Background(), Log{Template: compiled, Rows: rows}, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "a1b2 add parser\n0001 fix cache\n"
	if string(out) != want {
		t.Fatalf("output:\nwant %q\ngot  %q", want, out)
	}
}

func TestTextRendererReportsRowErrors(t *testing.T) {
	session, _ := testSession(t)
	compiled, err := Compile(session, Template{
		Layout:   "{{ subject }}",
		Bindings: map[string]string{"subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	rows := []Row{
		{ID: object.MustIDFromHex("a1b2c3"), Err: errors.New("backend down")},
		{ID: object.MustIDFromHex("000111"), Values: map[string]any{"subject": "still here"}},
	}
	text, err := NewText()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := text.Render(context.Background(), Log{Template: compiled, Rows: rows}, RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("line count: %d (%q)", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "error: ") {
		t.Fatalf("first line should report the error: %q", lines[0])
	}
	if lines[1] != "still here" {
		t.Fatalf("second line: %q", lines[1])
	}
}

func TestHTMLRendererSanitizesValues(t *testing.T) {
	session, _ := testSession(t)
	compiled, err := Compile(session, Template{
		Layout:   "{{ subject | safe }}",
		Bindings: map[string]string{"subject": "summary"},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	rows := []Row{{
		ID:     object.MustIDFromHex("a1b2c3"),
		Values: map[string]any{"subject": `<script>alert(1)</script>release notes`},
	}}

	renderer, err := NewHTML()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), Log{Template: compiled, Rows: rows}, RenderOptions{Title: "demo <log>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	doc := string(out)
	if strings.Contains(doc, "<script>") {
		t.Fatal("script tag survived sanitising")
	}
	if !strings.Contains(doc, "release notes") {
		t.Fatalf("text content lost:\n%s", doc)
	}
	if !strings.Contains(doc, "<title>demo &lt;log&gt;</title>") {
		t.Fatalf("title not escaped:\n%s", doc)
	}
	if !strings.Contains(doc, `<ul class="revtpl-log">`) {
		t.Fatalf("list wrapper missing:\n%s", doc)
	}
}
