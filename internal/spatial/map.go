package spatial

import "github.com/l1jgo/tilecore/internal/coord"

// Map associates values with (x, y) coordinates. Lookups that miss return the
// map's empty value, which is the zero value of V unless set at construction.
// Not safe for concurrent use.
type Map[V any] struct {
	t     table[V]
	empty V
}

// NewMap returns a map with the default capacity and load factor.
func NewMap[V any]() *Map[V] {
	var empty V
	return NewMapWithCapacity(DefaultCapacity, DefaultLoadFactor, empty)
}

// NewMapWithCapacity returns a map whose bucket table has the given side length
// (rounded up to a power of two). The table grows, never shrinks, once
// size exceeds capacity² × loadFactor.
func NewMapWithCapacity[V any](capacity int, loadFactor float32, empty V) *Map[V] {
	m := &Map[V]{empty: empty}
	m.t.init(capacity, loadFactor)
	return m
}

// Size returns the number of live keys.
func (m *Map[V]) Size() int { return m.t.size }

// Capacity returns the current side length of the bucket table.
func (m *Map[V]) Capacity() int { return m.t.side() }

// Empty returns the sentinel returned on misses.
func (m *Map[V]) Empty() V { return m.empty }

func (m *Map[V]) Get(x, y int) V {
	if e := m.t.find(coord.Encode(x, y)); e != nil {
		return e.value
	}
	return m.empty
}

// Lookup is Get with an explicit presence flag.
func (m *Map[V]) Lookup(x, y int) (V, bool) {
	if e := m.t.find(coord.Encode(x, y)); e != nil {
		return e.value, true
	}
	return m.empty, false
}

func (m *Map[V]) ContainsKey(x, y int) bool {
	return m.t.find(coord.Encode(x, y)) != nil
}

// Put stores value at (x, y) and returns the previous value, or the empty
// sentinel if there was none. Replacing a value is not a structural change.
func (m *Map[V]) Put(x, y int, value V) V {
	key := coord.Encode(x, y)
	if e := m.t.find(key); e != nil {
		old := e.value
		e.value = value
		return old
	}
	m.t.insert(key, value)
	return m.empty
}

// Remove deletes (x, y) and returns its value, or the empty sentinel.
func (m *Map[V]) Remove(x, y int) V {
	e := m.t.find(coord.Encode(x, y))
	if e == nil {
		return m.empty
	}
	m.t.unlink(e)
	return e.value
}

func (m *Map[V]) Clear() { m.t.clear() }

// Iterator returns a fail-fast iterator over all entries.
func (m *Map[V]) Iterator() *MapIterator[V] {
	it := &MapIterator[V]{}
	it.start(&m.t)
	return it
}

// Each calls fn for every entry. It returns ErrConcurrentModification if fn
// structurally modifies the map.
func (m *Map[V]) Each(fn func(x, y int, value V)) error {
	it := m.Iterator()
	for it.Next() {
		fn(it.X(), it.Y(), it.Value())
	}
	return it.Err()
}

// MapIterator iterates a Map or MultiMap. Use it like bufio.Scanner:
//
//	for it.Next() { ... }
//	if err := it.Err(); err != nil { ... }
type MapIterator[V any] struct {
	tableIterator[V]
}

// Next advances to the next entry. It returns false at the end or once a
// concurrent modification has been detected.
func (it *MapIterator[V]) Next() bool { return it.advance() }

func (it *MapIterator[V]) Key() int32 { return it.current.key }
func (it *MapIterator[V]) X() int     { return coord.DecodeX(it.current.key) }
func (it *MapIterator[V]) Y() int     { return coord.DecodeY(it.current.key) }
func (it *MapIterator[V]) Value() V   { return it.current.value }

// SetValue replaces the current entry's value in place.
func (it *MapIterator[V]) SetValue(v V) { it.current.value = v }

// Remove deletes the current entry without invalidating the iterator.
func (it *MapIterator[V]) Remove() error { return it.remove() }

// Err returns ErrConcurrentModification if iteration stopped because the
// underlying map changed.
func (it *MapIterator[V]) Err() error { return it.err }
