package spatial

import "github.com/l1jgo/tilecore/internal/coord"

// MultiMap is a Map that allows several values per coordinate. The order of
// values sharing a coordinate is undefined.
type MultiMap[V any] struct {
	t table[V]
}

func NewMultiMap[V any]() *MultiMap[V] {
	return NewMultiMapWithCapacity[V](DefaultCapacity, DefaultLoadFactor)
}

func NewMultiMapWithCapacity[V any](capacity int, loadFactor float32) *MultiMap[V] {
	m := &MultiMap[V]{}
	m.t.init(capacity, loadFactor)
	return m
}

// Size returns the total number of values, counting duplicates.
func (m *MultiMap[V]) Size() int { return m.t.size }

// Put always adds a new entry, even when (x, y) is already present.
func (m *MultiMap[V]) Put(x, y int, value V) {
	m.t.insert(coord.Encode(x, y), value)
}

func (m *MultiMap[V]) ContainsKey(x, y int) bool {
	return m.t.find(coord.Encode(x, y)) != nil
}

// GetAll appends every value stored at (x, y) to out.
func (m *MultiMap[V]) GetAll(x, y int, out []V) []V {
	key := coord.Encode(x, y)
	for e := m.t.buckets[m.t.index(key)]; e != nil; e = e.next {
		if e.key == key {
			out = append(out, e.value)
		}
	}
	return out
}

// Remove deletes the first value at (x, y) for which match returns true.
func (m *MultiMap[V]) Remove(x, y int, match func(V) bool) bool {
	key := coord.Encode(x, y)
	for e := m.t.buckets[m.t.index(key)]; e != nil; e = e.next {
		if e.key == key && match(e.value) {
			return m.t.unlink(e)
		}
	}
	return false
}

// RemoveAll deletes every value at (x, y) and returns how many were removed.
func (m *MultiMap[V]) RemoveAll(x, y int) int {
	key := coord.Encode(x, y)
	idx := m.t.index(key)
	removed := 0
	var prev *entry[V]
	for e := m.t.buckets[idx]; e != nil; e = e.next {
		if e.key != key {
			prev = e
			continue
		}
		if prev == nil {
			m.t.buckets[idx] = e.next
		} else {
			prev.next = e.next
		}
		removed++
	}
	if removed > 0 {
		m.t.size -= removed
		m.t.modCount++
	}
	return removed
}

func (m *MultiMap[V]) Clear() { m.t.clear() }

func (m *MultiMap[V]) Iterator() *MapIterator[V] {
	it := &MapIterator[V]{}
	it.start(&m.t)
	return it
}

// Each calls fn for every entry, duplicates included.
func (m *MultiMap[V]) Each(fn func(x, y int, value V)) error {
	it := m.Iterator()
	for it.Next() {
		fn(it.X(), it.Y(), it.Value())
	}
	return it.Err()
}
