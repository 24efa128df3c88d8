package object

import "fmt"

// Universe is the read-only handle over the full enumerable set of commits
// available to a render session. Aggregate computations (repository-wide
// maxima and similar) delegate enumeration to this collaborator.
//
// Methods deliberately take no context: compiled properties are pure
// per-object functions with no cancellation semantics, and implementations
// are expected to be safe for concurrent use.
type Universe interface {
	// CommitIDs enumerates every commit ID in the universe.
	CommitIDs() ([]ID, error)

	// Commit looks up a single commit by ID.
	Commit(id ID) (Commit, error)
}

// MemoryUniverse is an in-memory Universe used by tests, examples, and hosts
// that assemble commit sets programmatically. It preserves insertion order.
type MemoryUniverse struct {
	order   []ID
	commits map[string]Commit
}

// NewMemoryUniverse builds a universe holding the supplied commits. Later
// duplicates of the same ID replace earlier ones without changing order.
func NewMemoryUniverse(commits ...Commit) *MemoryUniverse {
	u := &MemoryUniverse{commits: make(map[string]Commit, len(commits))}
	for _, commit := range commits {
		u.Add(commit)
	}
	return u
}

// Add inserts or replaces a commit.
func (u *MemoryUniverse) Add(commit Commit) {
	key := commit.ID.Hex()
	if _, exists := u.commits[key]; !exists {
		u.order = append(u.order, commit.ID)
	}
	u.commits[key] = commit
}

// CommitIDs returns the IDs in insertion order.
func (u *MemoryUniverse) CommitIDs() ([]ID, error) {
	out := make([]ID, len(u.order))
	copy(out, u.order)
	return out, nil
}

// Commit returns the commit with the supplied ID.
func (u *MemoryUniverse) Commit(id ID) (Commit, error) {
	commit, ok := u.commits[id.Hex()]
	if !ok {
		return Commit{}, fmt.Errorf("object: commit %s not found", id.Hex())
	}
	return commit, nil
}

// Len reports the number of commits held.
func (u *MemoryUniverse) Len() int {
	return len(u.order)
}
