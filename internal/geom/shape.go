package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is a 2D collision primitive in scene units.
type Shape interface {
	// Bounds returns the axis-aligned bounding box.
	Bounds() Box
	// Translate returns a copy moved by d.
	Translate(d mgl64.Vec2) Shape
}

// Circle is a disc centered on Center.
type Circle struct {
	Center mgl64.Vec2
	Radius float64
}

func NewCircle(x, y, radius float64) Circle {
	return Circle{Center: mgl64.Vec2{x, y}, Radius: radius}
}

func (c Circle) Bounds() Box {
	r := mgl64.Vec2{c.Radius, c.Radius}
	return Box{Min: c.Center.Sub(r), Max: c.Center.Add(r)}
}

func (c Circle) Translate(d mgl64.Vec2) Shape {
	return Circle{Center: c.Center.Add(d), Radius: c.Radius}
}

// Box is an axis-aligned rectangle.
type Box struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

// NewBox builds a box from its minimum corner and size.
func NewBox(x, y, width, height float64) Box {
	return Box{Min: mgl64.Vec2{x, y}, Max: mgl64.Vec2{x + width, y + height}}
}

func (b Box) Bounds() Box { return b }

func (b Box) Translate(d mgl64.Vec2) Shape {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

func (b Box) Center() mgl64.Vec2 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Overlaps reports whether two boxes share interior area.
func (b Box) Overlaps(o Box) bool {
	return b.Min[0] < o.Max[0] && o.Min[0] < b.Max[0] &&
		b.Min[1] < o.Max[1] && o.Min[1] < b.Max[1]
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	return Box{
		Min: mgl64.Vec2{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1])},
		Max: mgl64.Vec2{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1])},
	}
}

// closest returns the point of b nearest to p.
func (b Box) closest(p mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{
		mgl64.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl64.Clamp(p[1], b.Min[1], b.Max[1]),
	}
}

// Intersects reports whether a and b overlap. Shapes that merely touch do not
// intersect.
func Intersects(a, b Shape) bool {
	_, ok := Penetration(a, b)
	return ok
}

// Penetration returns the smallest displacement that moves a out of b, and
// false when the shapes do not overlap.
func Penetration(a, b Shape) (mgl64.Vec2, bool) {
	switch sa := a.(type) {
	case Circle:
		switch sb := b.(type) {
		case Circle:
			return circleCircle(sa, sb)
		case Box:
			return circleBox(sa, sb)
		}
	case Box:
		switch sb := b.(type) {
		case Circle:
			v, ok := circleBox(sb, sa)
			return v.Mul(-1), ok
		case Box:
			return boxBox(sa, sb)
		}
	}
	return mgl64.Vec2{}, false
}

func circleCircle(a, b Circle) (mgl64.Vec2, bool) {
	d := a.Center.Sub(b.Center)
	dist := d.Len()
	depth := a.Radius + b.Radius - dist
	if depth <= 0 {
		return mgl64.Vec2{}, false
	}
	if dist == 0 {
		return mgl64.Vec2{0, depth}, true
	}
	return d.Mul(depth / dist), true
}

func circleBox(c Circle, b Box) (mgl64.Vec2, bool) {
	p := b.closest(c.Center)
	d := c.Center.Sub(p)
	dist := d.Len()
	if dist > 0 {
		depth := c.Radius - dist
		if depth <= 0 {
			return mgl64.Vec2{}, false
		}
		return d.Mul(depth / dist), true
	}
	// Center inside the box: leave through the nearest side.
	left := c.Center[0] - b.Min[0]
	right := b.Max[0] - c.Center[0]
	down := c.Center[1] - b.Min[1]
	up := b.Max[1] - c.Center[1]
	best := mgl64.Vec2{-(left + c.Radius), 0}
	shortest := left
	if right < shortest {
		shortest, best = right, mgl64.Vec2{right + c.Radius, 0}
	}
	if down < shortest {
		shortest, best = down, mgl64.Vec2{0, -(down + c.Radius)}
	}
	if up < shortest {
		best = mgl64.Vec2{0, up + c.Radius}
	}
	return best, true
}

func boxBox(a, b Box) (mgl64.Vec2, bool) {
	ox := math.Min(a.Max[0], b.Max[0]) - math.Max(a.Min[0], b.Min[0])
	oy := math.Min(a.Max[1], b.Max[1]) - math.Max(a.Min[1], b.Min[1])
	if ox <= 0 || oy <= 0 {
		return mgl64.Vec2{}, false
	}
	ca, cb := a.Center(), b.Center()
	if ox < oy {
		if ca[0] < cb[0] {
			ox = -ox
		}
		return mgl64.Vec2{ox, 0}, true
	}
	if ca[1] < cb[1] {
		oy = -oy
	}
	return mgl64.Vec2{0, oy}, true
}
