// Package hexcounter is a language extension counting decimal digits inside
// canonical commit ID encodings. It contributes the commit methods
// num_digits_in_id, has_most_digits, and num_char_in_id, and seeds one cached
// singleton holding the repository-wide digit maximum.
package hexcounter

import (
	"fmt"

	"github.com/goliatone/go-revtpl/pkg/cache"
	"github.com/goliatone/go-revtpl/pkg/extensions"
	"github.com/goliatone/go-revtpl/pkg/language"
	"github.com/goliatone/go-revtpl/pkg/object"
	"github.com/goliatone/go-revtpl/pkg/parse"
	"github.com/goliatone/go-revtpl/pkg/property"
)

// Extension implements language.Extension.
type Extension struct{}

// New returns the hexcounter extension.
func New() *Extension {
	return &Extension{}
}

// NumDigitsInID counts ASCII decimal digits in the canonical encoding of id.
func NumDigitsInID(id object.ID) int64 {
	var count int64
	for _, ch := range id.Hex() {
		if ch >= '0' && ch <= '9' {
			count++
		}
	}
	return count
}

func numCharInID(commit object.Commit, match rune) (int64, error) {
	var count int64
	for _, ch := range commit.ID.Hex() {
		if ch == match {
			count++
		}
	}
	return count, nil
}

// MostDigitsInID holds the repository-wide maximum digit count, computed at
// most once per session on first use and shared by every property that
// references it. An empty universe yields 0.
type MostDigitsInID struct {
	count cache.Cell[int64]
}

// Count returns the maximum, scanning the full universe on first access.
// Enumeration failures surface as evaluation errors and are not cached, so a
// later evaluation retries the scan.
func (m *MostDigitsInID) Count(repo object.Universe) (int64, error) {
	return m.count.GetOrCompute(func() (int64, error) {
		ids, err := repo.CommitIDs()
		if err != nil {
			return 0, fmt.Errorf("hexcounter: enumerate commits: %w", err)
		}
		var most int64
		for _, id := range ids {
			if n := NumDigitsInID(id); n > most {
				most = n
			}
		}
		return most, nil
	})
}

// BuildFnTable implements language.Extension.
func (e *Extension) BuildFnTable() *language.FnTable {
	table := language.NewFnTable()

	table.MustRegisterCommitMethod("num_digits_in_id", func(ctx *language.Context, _ language.BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapInteger(property.Map(self, func(c object.Commit) (int64, error) {
			return NumDigitsInID(c.ID), nil
		})), nil
	})

	table.MustRegisterCommitMethod("has_most_digits", func(ctx *language.Context, _ language.BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		if err := parse.ExpectNoArguments(call); err != nil {
			return property.Wrapped{}, err
		}
		state, ok := language.CacheExtension[MostDigitsInID](ctx)
		if !ok {
			return property.Wrapped{}, fmt.Errorf("hexcounter: cache state not seeded")
		}
		repo := ctx.Repo()
		return ctx.WrapBoolean(property.Map(self, func(c object.Commit) (bool, error) {
			most, err := state.Count(repo)
			if err != nil {
				return false, err
			}
			return NumDigitsInID(c.ID) == most, nil
		})), nil
	})

	table.MustRegisterCommitMethod("num_char_in_id", func(ctx *language.Context, _ language.BuildContext, self property.Property[object.Commit], call *parse.CallSite) (property.Wrapped, error) {
		args, err := parse.ExpectExactArguments(call, 1)
		if err != nil {
			return property.Wrapped{}, err
		}
		match, err := parse.ExpectStringLiteralWith(args[0], func(value string, span parse.Span) (rune, error) {
			runes := []rune(value)
			if len(runes) != 1 {
				return 0, parse.UnexpectedExpression("expected singular character argument", span)
			}
			return runes[0], nil
		})
		if err != nil {
			return property.Wrapped{}, err
		}
		return ctx.WrapInteger(property.Map(self, func(c object.Commit) (int64, error) {
			return numCharInID(c, match)
		})), nil
	})

	return table
}

// BuildCacheExtensions implements language.Extension, seeding the singleton
// holding the repository-wide maximum.
func (e *Extension) BuildCacheExtensions(ext *extensions.Map) {
	extensions.Insert(ext, &MostDigitsInID{})
}
