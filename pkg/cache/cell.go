// Package cache provides the compute-once primitive used for expensive
// repository-wide aggregates: a value computed lazily on first access and
// shared by every later reader in the same render session.
package cache

import "sync"

// attempt tracks one in-flight computation. Its fields are written before
// done is closed, so waiters observing the close also observe the outcome.
type attempt[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Cell wraps a single lazily-computed, immutable value. It moves from empty
// to computed exactly once on success: concurrent first arrivers share one
// computation, with exactly one goroutine running the compute function while
// the others block until it finishes. After a successful computation every
// read is non-blocking.
//
// Failure policy: a failed computation is NOT cached. The error is delivered
// to the caller that triggered the attempt and to every caller that was
// blocked on it; the next arrival after that starts a fresh attempt. A
// transient backend error therefore does not poison the session.
//
// The zero value is an empty, usable cell.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	ready   chan struct{} // closed once value is set; nil until first success
	current *attempt[T]
}

// GetOrCompute returns the cached value, computing it with fn on first
// access. fn runs at most once per successful value for the life of the
// cell, regardless of how many callers arrive or how many properties
// reference the cell.
func (c *Cell[T]) GetOrCompute(fn func() (T, error)) (T, error) {
	c.mu.Lock()
	if c.ready != nil {
		value := c.value
		c.mu.Unlock()
		return value, nil
	}
	if att := c.current; att != nil {
		c.mu.Unlock()
		<-att.done
		if att.err != nil {
			var zero T
			return zero, att.err
		}
		return att.value, nil
	}

	att := &attempt[T]{done: make(chan struct{})}
	c.current = att
	c.mu.Unlock()

	value, err := fn()

	c.mu.Lock()
	c.current = nil
	if err == nil {
		c.value = value
		c.ready = make(chan struct{})
		close(c.ready)
	}
	c.mu.Unlock()

	att.value, att.err = value, err
	close(att.done)
	return value, err
}

// Done reports whether the cell holds a computed value.
func (c *Cell[T]) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready != nil
}

// Peek returns the computed value without triggering computation.
func (c *Cell[T]) Peek() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready == nil {
		var zero T
		return zero, false
	}
	return c.value, true
}
