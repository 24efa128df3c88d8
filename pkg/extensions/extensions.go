// Package extensions provides the session-scoped, type-keyed store of
// singleton extension state. The map is populated once while the host
// assembles a render session, frozen before the first property executes,
// and read-only for the rest of the session.
package extensions

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
)

// Map stores at most one singleton value per concrete type. Inserting a
// second value of the same type, or inserting after Freeze, is a host
// programming error and panics; it is never a user-facing condition.
type Map struct {
	mu     sync.Mutex
	frozen atomic.Bool
	values map[reflect.Type]any
}

// NewMap returns an empty, unfrozen map.
func NewMap() *Map {
	return &Map{values: make(map[reflect.Type]any)}
}

// Freeze marks the map read-only. Freezing twice is harmless. Freeze acts as
// the publish barrier: once frozen, lookups take no locks and the map is safe
// to share across worker goroutines.
func (m *Map) Freeze() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frozen.Store(true)
}

// Len reports the number of registered singletons.
func (m *Map) Len() int {
	if m.frozen.Load() {
		return len(m.values)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// Insert registers the singleton for type T. It panics on duplicate
// registration or when the map is frozen.
func Insert[T any](m *Map, value *T) {
	if value == nil {
		panic("extensions: insert nil singleton")
	}
	key := reflect.TypeOf(value).Elem()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen.Load() {
		panic(fmt.Sprintf("extensions: insert %s into frozen map", key))
	}
	if _, exists := m.values[key]; exists {
		panic(fmt.Sprintf("extensions: duplicate singleton %s", key))
	}
	m.values[key] = value
}

// Get returns the singleton registered for type T. Absence indicates a host
// wiring bug (an extension contributed builders without seeding its state),
// so callers typically treat ok == false as fatal.
func Get[T any](m *Map) (*T, bool) {
	key := reflect.TypeOf((*T)(nil)).Elem()

	if !m.frozen.Load() {
		m.mu.Lock()
		defer m.mu.Unlock()
	}
	value, ok := m.values[key]
	if !ok {
		return nil, false
	}
	return value.(*T), true
}
