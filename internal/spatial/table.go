package spatial

import (
	"errors"

	"github.com/l1jgo/tilecore/internal/coord"
)

// ErrConcurrentModification is reported by an iterator whose map was
// structurally modified by something other than the iterator itself.
var ErrConcurrentModification = errors.New("spatial: concurrent modification during iteration")

const (
	// DefaultCapacity is the default side length of the bucket table.
	DefaultCapacity = 16
	// DefaultLoadFactor is the default size / bucket ratio that triggers growth.
	DefaultLoadFactor = 0.75
)

type entry[V any] struct {
	key   int32
	value V
	next  *entry[V]
}

// table is the chained hash table shared by Map and MultiMap. Buckets form a
// side × side square and a coordinate hashes to its position modulo the side,
// so neighboring coordinates land in neighboring buckets.
type table[V any] struct {
	buckets    []*entry[V]
	bits       uint
	size       int
	loadFactor float32
	modCount   int
}

func (t *table[V]) init(capacity int, loadFactor float32) {
	if loadFactor <= 0 {
		loadFactor = DefaultLoadFactor
	}
	bits := uint(0)
	for 1<<bits < capacity {
		bits++
	}
	t.bits = bits
	t.loadFactor = loadFactor
	t.buckets = make([]*entry[V], 1<<(2*bits))
}

func (t *table[V]) side() int { return 1 << t.bits }

func (t *table[V]) index(key int32) int {
	mask := int32(t.side() - 1)
	x, y := int32(coord.DecodeX(key)), int32(coord.DecodeY(key))
	return int((y&mask)<<t.bits | x&mask)
}

// insert links a new entry at the head of its bucket and grows if needed.
func (t *table[V]) insert(key int32, value V) {
	idx := t.index(key)
	t.buckets[idx] = &entry[V]{key: key, value: value, next: t.buckets[idx]}
	t.size++
	t.modCount++
	if float32(t.size) > float32(len(t.buckets))*t.loadFactor {
		t.grow()
	}
}

func (t *table[V]) find(key int32) *entry[V] {
	for e := t.buckets[t.index(key)]; e != nil; e = e.next {
		if e.key == key {
			return e
		}
	}
	return nil
}

// unlink removes the given entry, reporting whether it was present.
func (t *table[V]) unlink(target *entry[V]) bool {
	idx := t.index(target.key)
	var prev *entry[V]
	for e := t.buckets[idx]; e != nil; prev, e = e, e.next {
		if e != target {
			continue
		}
		if prev == nil {
			t.buckets[idx] = e.next
		} else {
			prev.next = e.next
		}
		t.size--
		t.modCount++
		return true
	}
	return false
}

// grow doubles the side length and rehashes every entry.
func (t *table[V]) grow() {
	old := t.buckets
	t.bits++
	t.buckets = make([]*entry[V], 1<<(2*t.bits))
	for _, head := range old {
		for e := head; e != nil; {
			next := e.next
			idx := t.index(e.key)
			e.next = t.buckets[idx]
			t.buckets[idx] = e
			e = next
		}
	}
	t.modCount++
}

func (t *table[V]) clear() {
	if t.size == 0 {
		return
	}
	clear(t.buckets)
	t.size = 0
	t.modCount++
}

// tableIterator walks a table bucket by bucket. The entry to yield next is
// resolved before the current one is handed out, so removing the current
// entry through the iterator is safe.
type tableIterator[V any] struct {
	t       *table[V]
	bucket  int
	current *entry[V]
	next    *entry[V]
	mods    int
	err     error
}

func (it *tableIterator[V]) start(t *table[V]) {
	it.t = t
	it.bucket = -1
	it.mods = t.modCount
	it.seek()
}

func (it *tableIterator[V]) seek() {
	for it.next == nil && it.bucket+1 < len(it.t.buckets) {
		it.bucket++
		it.next = it.t.buckets[it.bucket]
	}
}

func (it *tableIterator[V]) advance() bool {
	if it.err != nil {
		return false
	}
	if it.t.modCount != it.mods {
		it.err = ErrConcurrentModification
		it.current = nil
		return false
	}
	if it.next == nil {
		it.current = nil
		return false
	}
	it.current = it.next
	it.next = it.current.next
	it.seek()
	return true
}

func (it *tableIterator[V]) remove() error {
	if it.err != nil {
		return it.err
	}
	if it.t.modCount != it.mods {
		it.err = ErrConcurrentModification
		return it.err
	}
	if it.current == nil {
		return nil
	}
	it.t.unlink(it.current)
	it.current = nil
	it.mods = it.t.modCount
	return nil
}
