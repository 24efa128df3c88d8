// Package gitsource adapts a git repository into the object.Universe
// consumed by render sessions, using go-git so hosts need no git binary.
package gitsource

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gitobject "github.com/go-git/go-git/v5/plumbing/object"

	"github.com/goliatone/go-revtpl/pkg/object"
)

// Source exposes a git repository's commit set as an object universe.
// go-git repositories are safe for concurrent reads, so a Source can be
// shared across render workers.
type Source struct {
	repo *git.Repository
}

// Open opens the repository at path (plain or bare).
func Open(path string) (*Source, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("gitsource: open %s: %w", path, err)
	}
	return &Source{repo: repo}, nil
}

// New wraps an already-open repository.
func New(repo *git.Repository) (*Source, error) {
	if repo == nil {
		return nil, errors.New("gitsource: repository is required")
	}
	return &Source{repo: repo}, nil
}

// CommitIDs enumerates every commit object in the repository's store,
// matching the "evaluate over everything" query the aggregate computations
// expect.
func (s *Source) CommitIDs() ([]object.ID, error) {
	iter, err := s.repo.CommitObjects()
	if err != nil {
		return nil, fmt.Errorf("gitsource: enumerate commits: %w", err)
	}
	defer iter.Close()

	var ids []object.ID
	for {
		commit, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gitsource: iterate commits: %w", err)
		}
		ids = append(ids, object.NewID(commit.Hash[:]))
	}
	return ids, nil
}

// Commit looks up one commit by ID.
func (s *Source) Commit(id object.ID) (object.Commit, error) {
	raw := id.Bytes()
	if len(raw) != len(plumbing.Hash{}) {
		return object.Commit{}, fmt.Errorf("gitsource: id %s is not a git hash", id.Hex())
	}
	var hash plumbing.Hash
	copy(hash[:], raw)

	commit, err := s.repo.CommitObject(hash)
	if err != nil {
		return object.Commit{}, fmt.Errorf("gitsource: commit %s: %w", id.Hex(), err)
	}
	return convert(commit), nil
}

func convert(commit *gitobject.Commit) object.Commit {
	return object.Commit{
		ID:        object.NewID(commit.Hash[:]),
		Author:    signature(commit.Author),
		Committer: signature(commit.Committer),
		Message:   commit.Message,
	}
}

func signature(sig gitobject.Signature) object.Signature {
	return object.Signature{Name: sig.Name, Email: sig.Email, When: sig.When}
}
