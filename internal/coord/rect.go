package coord

import "math/rand"

// Rect is an axis-aligned region of tile coordinates. Width and Height are
// cell counts; a rect with either dimension <= 0 is empty.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// MaxX returns the exclusive upper x bound.
func (r Rect) MaxX() int { return r.X + r.Width }

// MaxY returns the exclusive upper y bound.
func (r Rect) MaxY() int { return r.Y + r.Height }

func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.MaxX() && y >= r.Y && y < r.MaxY()
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.MaxX() <= r.MaxX() && o.MaxY() <= r.MaxY()
}

func (r Rect) Intersects(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.MaxX() && o.X < r.MaxX() && r.Y < o.MaxY() && o.Y < r.MaxY()
}

// Union returns the smallest rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.MaxX(), o.MaxX()), max(r.MaxY(), o.MaxY())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Add grows r to include (x, y).
func (r Rect) Add(x, y int) Rect {
	return r.Union(Rect{X: x, Y: y, Width: 1, Height: 1})
}

// Each visits every cell of r in row-major order.
func (r Rect) Each(fn func(x, y int)) {
	for y := r.Y; y < r.MaxY(); y++ {
		for x := r.X; x < r.MaxX(); x++ {
			fn(x, y)
		}
	}
}

// PickRandom chooses a uniformly random origin for a width × height footprint
// that fits inside r. ok is false when the footprint does not fit.
func (r Rect) PickRandom(rng *rand.Rand, width, height int) (x, y int, ok bool) {
	if width <= 0 || height <= 0 || width > r.Width || height > r.Height {
		return 0, 0, false
	}
	return r.X + rng.Intn(r.Width-width+1), r.Y + rng.Intn(r.Height-height+1), true
}
