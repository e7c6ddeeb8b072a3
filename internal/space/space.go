package space

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/geom"
	"github.com/l1jgo/tilecore/internal/spatial"
)

// Static is the owner of shapes that belong to no actor (tile collision).
const Static int32 = math.MinInt32

// Element is one indexed shape.
type Element struct {
	Shape geom.Shape
	Owner int32

	cells []int32 // encoded cells the element is bucketed under
	stamp uint64
}

// Space buckets collision shapes by square cells so that intersection queries
// only look at nearby shapes. A shape is bucketed under every cell its bounds
// touch. Accessed only from the simulation goroutine, no locks.
type Space struct {
	cellSize float64
	cells    *spatial.MultiMap[*Element]
	count    int
	stamp    uint64
	scratch  []*Element
}

// New creates an empty space. cellSize <= 0 falls back to 4 scene units.
func New(cellSize float64) *Space {
	if cellSize <= 0 {
		cellSize = 4
	}
	return &Space{cellSize: cellSize, cells: spatial.NewMultiMap[*Element]()}
}

func (s *Space) Len() int { return s.count }

func (s *Space) cellRange(b geom.Box) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(b.Min[0] / s.cellSize))
	y0 = int(math.Floor(b.Min[1] / s.cellSize))
	x1 = int(math.Floor(b.Max[0] / s.cellSize))
	y1 = int(math.Floor(b.Max[1] / s.cellSize))
	return
}

// Add indexes shape and returns its element handle.
func (s *Space) Add(shape geom.Shape, owner int32) *Element {
	e := &Element{Shape: shape, Owner: owner}
	s.insert(e)
	s.count++
	return e
}

func (s *Space) insert(e *Element) {
	x0, y0, x1, y1 := s.cellRange(e.Shape.Bounds())
	e.cells = e.cells[:0]
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.cells.Put(x, y, e)
			e.cells = append(e.cells, coord.Encode(x, y))
		}
	}
}

func (s *Space) unlink(e *Element) {
	for _, key := range e.cells {
		x, y := coord.Decode(key)
		s.cells.Remove(x, y, func(o *Element) bool { return o == e })
	}
	e.cells = e.cells[:0]
}

// Remove drops e from the index. Removing an element twice is a no-op.
func (s *Space) Remove(e *Element) {
	if len(e.cells) == 0 {
		return
	}
	s.unlink(e)
	s.count--
}

// Update moves e to a new shape, rebucketing only when its cells change.
func (s *Space) Update(e *Element, shape geom.Shape) {
	x0, y0, x1, y1 := s.cellRange(e.Shape.Bounds())
	n0, m0, n1, m1 := s.cellRange(shape.Bounds())
	if x0 == n0 && y0 == m0 && x1 == n1 && y1 == m1 {
		e.Shape = shape
		return
	}
	s.unlink(e)
	e.Shape = shape
	s.insert(e)
}

// Clear removes every element. Handles held by callers become detached, so
// removing them afterwards is a no-op.
func (s *Space) Clear() {
	_ = s.cells.Each(func(_, _ int, e *Element) { e.cells = e.cells[:0] })
	s.cells.Clear()
	s.count = 0
}

// candidates collects the distinct elements whose cells overlap shape's bounds.
func (s *Space) candidates(shape geom.Shape) []*Element {
	s.stamp++
	s.scratch = s.scratch[:0]
	var bucket []*Element
	x0, y0, x1, y1 := s.cellRange(shape.Bounds())
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			bucket = s.cells.GetAll(x, y, bucket[:0])
			for _, e := range bucket {
				if e.stamp == s.stamp {
					continue
				}
				e.stamp = s.stamp
				s.scratch = append(s.scratch, e)
			}
		}
	}
	return s.scratch
}

// Intersecting appends to out every indexed shape that overlaps shape.
func (s *Space) Intersecting(shape geom.Shape, out []geom.Shape) []geom.Shape {
	for _, e := range s.candidates(shape) {
		if geom.Intersects(shape, e.Shape) {
			out = append(out, e.Shape)
		}
	}
	return out
}

// Penetration returns the deepest penetration of shape into any element not
// owned by a. The vector moves shape out of that element.
func (s *Space) Penetration(a *actor.Actor, shape geom.Shape) (mgl64.Vec2, bool) {
	var best mgl64.Vec2
	found := false
	for _, e := range s.candidates(shape) {
		if a != nil && e.Owner == a.ID {
			continue
		}
		v, ok := geom.Penetration(shape, e.Shape)
		if !ok {
			continue
		}
		if !found || v.LenSqr() > best.LenSqr() {
			best, found = v, true
		}
	}
	return best, found
}
