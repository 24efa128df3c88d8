package object

import (
	"strings"
	"time"
)

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

// Commit is an immutable value describing a single versioned unit. Commits
// are passed by value through the property pipeline and are never mutated.
type Commit struct {
	ID        ID
	Author    Signature
	Committer Signature
	Message   string
}

// Summary returns the first line of the commit message, trimmed.
func (c Commit) Summary() string {
	message := strings.TrimSpace(c.Message)
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		message = message[:idx]
	}
	return strings.TrimSpace(message)
}
