package spatial

import (
	"math/rand"

	"github.com/l1jgo/tilecore/internal/coord"
)

// CoordSet is a set of encoded coordinates with bulk region operations and
// indexed access. Members are kept in a dense slice (removal swaps the last
// member into the hole), so iteration order is deterministic for a given
// sequence of operations.
type CoordSet struct {
	keys  []int32
	index map[int32]int
}

func NewCoordSet() *CoordSet {
	return &CoordSet{index: make(map[int32]int)}
}

// NewCoordSetRegion returns a set holding every cell of r.
func NewCoordSetRegion(r coord.Rect) *CoordSet {
	s := &CoordSet{index: make(map[int32]int, r.Area())}
	s.AddRegion(r)
	return s
}

func (s *CoordSet) Len() int { return len(s.keys) }

func (s *CoordSet) AddKey(key int32) bool {
	if _, ok := s.index[key]; ok {
		return false
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
	return true
}

func (s *CoordSet) RemoveKey(key int32) bool {
	i, ok := s.index[key]
	if !ok {
		return false
	}
	last := len(s.keys) - 1
	if i != last {
		moved := s.keys[last]
		s.keys[i] = moved
		s.index[moved] = i
	}
	s.keys = s.keys[:last]
	delete(s.index, key)
	return true
}

func (s *CoordSet) ContainsKey(key int32) bool {
	_, ok := s.index[key]
	return ok
}

func (s *CoordSet) Add(x, y int) bool      { return s.AddKey(coord.Encode(x, y)) }
func (s *CoordSet) Remove(x, y int) bool   { return s.RemoveKey(coord.Encode(x, y)) }
func (s *CoordSet) Contains(x, y int) bool { return s.ContainsKey(coord.Encode(x, y)) }

// Key returns the i-th member's encoded key.
func (s *CoordSet) Key(i int) int32 { return s.keys[i] }

// Get returns the i-th member.
func (s *CoordSet) Get(i int) (int, int) { return coord.Decode(s.keys[i]) }

// Keys returns a copy of the members' keys.
func (s *CoordSet) Keys() []int32 {
	out := make([]int32, len(s.keys))
	copy(out, s.keys)
	return out
}

// AddRegion adds every cell of r, reporting whether the set changed.
func (s *CoordSet) AddRegion(r coord.Rect) bool {
	changed := false
	r.Each(func(x, y int) {
		if s.Add(x, y) {
			changed = true
		}
	})
	return changed
}

// RemoveRegion removes every cell of r, reporting whether the set changed.
func (s *CoordSet) RemoveRegion(r coord.Rect) bool {
	changed := false
	r.Each(func(x, y int) {
		if s.Remove(x, y) {
			changed = true
		}
	})
	return changed
}

// ContainsRegion reports whether every cell of r is a member.
func (s *CoordSet) ContainsRegion(r coord.Rect) bool {
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			if !s.Contains(x, y) {
				return false
			}
		}
	}
	return true
}

func (s *CoordSet) AddAll(o *CoordSet) bool {
	changed := false
	for _, k := range o.keys {
		if s.AddKey(k) {
			changed = true
		}
	}
	return changed
}

func (s *CoordSet) RemoveAll(o *CoordSet) bool {
	changed := false
	for _, k := range o.keys {
		if s.RemoveKey(k) {
			changed = true
		}
	}
	return changed
}

// RemoveFunc removes every member for which fn returns true.
func (s *CoordSet) RemoveFunc(fn func(x, y int) bool) {
	for i := 0; i < len(s.keys); {
		x, y := coord.Decode(s.keys[i])
		if fn(x, y) {
			s.RemoveKey(s.keys[i])
			continue
		}
		i++
	}
}

// PickRandom returns a uniformly random member.
func (s *CoordSet) PickRandom(rng *rand.Rand) (x, y int, ok bool) {
	if len(s.keys) == 0 {
		return 0, 0, false
	}
	x, y = coord.Decode(s.keys[rng.Intn(len(s.keys))])
	return x, y, true
}

// Each visits members in index order. fn must not modify the set.
func (s *CoordSet) Each(fn func(x, y int)) {
	for _, k := range s.keys {
		fn(coord.Decode(k))
	}
}

func (s *CoordSet) Clear() {
	s.keys = s.keys[:0]
	clear(s.index)
}

func (s *CoordSet) Clone() *CoordSet {
	c := &CoordSet{keys: make([]int32, len(s.keys)), index: make(map[int32]int, len(s.keys))}
	copy(c.keys, s.keys)
	for k, i := range s.index {
		c.index[k] = i
	}
	return c
}

// Bounds returns the smallest rect containing every member.
func (s *CoordSet) Bounds() coord.Rect {
	var r coord.Rect
	for _, k := range s.keys {
		x, y := coord.Decode(k)
		r = r.Add(x, y)
	}
	return r
}

// Border returns the cells adjacent to the set in any of the eight directions
// that are not themselves members.
func (s *CoordSet) Border() *CoordSet {
	return s.border(coord.Directions[:])
}

// CardinalBorder is Border restricted to the four cardinal neighbors.
func (s *CoordSet) CardinalBorder() *CoordSet {
	return s.border(coord.Cardinals[:])
}

func (s *CoordSet) border(dirs []coord.Direction) *CoordSet {
	out := NewCoordSet()
	for _, k := range s.keys {
		x, y := coord.Decode(k)
		for _, d := range dirs {
			nx, ny := d.Neighbor(x, y)
			if !s.Contains(nx, ny) {
				out.Add(nx, ny)
			}
		}
	}
	return out
}

// LargestRect returns the largest axis-aligned rectangle made only of members.
// It scans the bounding box row by row, keeping a histogram of member run
// lengths per column, and solves the largest-rectangle-in-histogram problem for
// each row with a stack. Ties keep the first rectangle found by that scan.
// The zero Rect is returned for an empty set.
func (s *CoordSet) LargestRect() coord.Rect {
	if len(s.keys) == 0 {
		return coord.Rect{}
	}
	b := s.Bounds()
	heights := make([]int, b.Width+1) // trailing zero flushes the stack
	stack := make([]int, 0, b.Width+1)
	var best coord.Rect
	for y := b.Y; y < b.MaxY(); y++ {
		for i := 0; i < b.Width; i++ {
			if s.Contains(b.X+i, y) {
				heights[i]++
			} else {
				heights[i] = 0
			}
		}
		stack = stack[:0]
		for i := 0; i <= b.Width; i++ {
			for len(stack) > 0 && heights[stack[len(stack)-1]] >= heights[i] {
				h := heights[stack[len(stack)-1]]
				stack = stack[:len(stack)-1]
				left := 0
				if len(stack) > 0 {
					left = stack[len(stack)-1] + 1
				}
				if area := h * (i - left); area > best.Area() {
					best = coord.Rect{X: b.X + left, Y: y - h + 1, Width: i - left, Height: h}
				}
			}
			stack = append(stack, i)
		}
	}
	return best
}
