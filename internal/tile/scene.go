package tile

import (
	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/spatial"
)

// Scene is the mutable tile store edited by the painter.
type Scene interface {
	// TileEntry returns the entry covering (x, y).
	TileEntry(x, y int) (*Entry, bool)
	// TileEntries returns the distinct entries covering any cell of r.
	TileEntries(r coord.Rect) []*Entry
	// AddEntry places e, removing whatever its footprint overlaps.
	AddEntry(e *Entry)
	// RemoveEntry removes the entry whose origin key is key.
	RemoveEntry(key int32) bool
}

// MemScene is an in-memory Scene backed by spatial maps: one keyed by entry
// origin and one mapping every covered cell back to its entry.
type MemScene struct {
	entries  *spatial.Map[*Entry]
	coverage *spatial.Map[*Entry]
}

func NewMemScene() *MemScene {
	return &MemScene{
		entries:  spatial.NewMap[*Entry](),
		coverage: spatial.NewMap[*Entry](),
	}
}

// Len returns the number of placed entries.
func (s *MemScene) Len() int { return s.entries.Size() }

func (s *MemScene) TileEntry(x, y int) (*Entry, bool) {
	return s.coverage.Lookup(x, y)
}

func (s *MemScene) TileEntries(r coord.Rect) []*Entry {
	var out []*Entry
	seen := make(map[*Entry]struct{})
	r.Each(func(x, y int) {
		e, ok := s.coverage.Lookup(x, y)
		if !ok {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	})
	return out
}

func (s *MemScene) AddEntry(e *Entry) {
	fp := e.Footprint()
	for _, old := range s.TileEntries(fp) {
		s.RemoveEntry(old.Key())
	}
	if old, ok := s.entries.Lookup(e.X, e.Y); ok {
		s.RemoveEntry(old.Key())
	}
	s.entries.Put(e.X, e.Y, e)
	fp.Each(func(x, y int) { s.coverage.Put(x, y, e) })
}

func (s *MemScene) RemoveEntry(key int32) bool {
	x, y := coord.Decode(key)
	e, ok := s.entries.Lookup(x, y)
	if !ok {
		return false
	}
	s.entries.Remove(x, y)
	e.Footprint().Each(func(cx, cy int) {
		if s.coverage.Get(cx, cy) == e {
			s.coverage.Remove(cx, cy)
		}
	})
	return true
}

// Each visits every entry once, in no particular order.
func (s *MemScene) Each(fn func(e *Entry)) error {
	return s.entries.Each(func(_, _ int, e *Entry) { fn(e) })
}
