package language

import (
	"fmt"
	"time"

	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/parse"
	"github.com/goliatone/go-revtpl/pkg/property"
)

// BaseFnTable returns the host's fixed commit vocabulary. Extensions merge
// additional methods on top of this table at session start.
func BaseFnTable() *FnTable {
	table := NewFnTable()

	table.MustRegisterCommitMethod("id", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			return c.ID.Hex(), nil
		})), nil
	})

	table.MustRegisterCommitMethod("short_id", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		args, err := parse.ExpectExactArguments(call, 1)
		if err != nil {
			return property.Wrapped{}, err
		}
		length, err := parse.ExpectIntegerLiteral(args[0])
		if err != nil {
			return property.Wrapped{}, err
		}
		if length <= 0 {
			return property.Wrapped{}, parse.UnexpectedExpression(
				fmt.Sprintf("expected positive length, got %d", length), args[0].Span())
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			encoded := c.ID.Hex()
			if int64(len(encoded)) > length {
				encoded = encoded[:length]
			}
			return encoded, nil
		})), nil
	})

	table.MustRegisterCommitMethod("description", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			return c.Message, nil
		})), nil
	})

	table.MustRegisterCommitMethod("summary", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			return c.Summary(), nil
		})), nil
	})

	table.MustRegisterCommitMethod("author", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			return c.Author.Name, nil
		})), nil
	})

	table.MustRegisterCommitMethod("author_email", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			return c.Author.Email, nil
		})), nil
	})

	table.MustRegisterCommitMethod("committer", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			return c.Committer.Name, nil
		})), nil
	})

	table.MustRegisterCommitMethod("timestamp", func(ctx *Context, _ BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapString(property.Map(self, func(c object.Commit) (string, error) {
			if c.Author.When.IsZero() {
				return "", nil
			}
			return c.Author.When.Format(time.RFC3339), nil
		})), nil
	})

	return table
}
