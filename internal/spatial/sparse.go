package spatial

// SparseGrid stores one scalar per coordinate for data that is mostly empty
// but locally dense, such as elevation masks. A coarse Map routes each
// coordinate to a dense cell of side 2^granularity; cells are allocated on the
// first non-empty write and dropped once every slot is empty again.
type SparseGrid[V comparable] struct {
	cells       *Map[*sparseCell[V]]
	granularity uint
	mask        int
	empty       V
	size        int
}

type sparseCell[V comparable] struct {
	values []V
	count  int
}

// NewSparseGrid creates a grid with cells of side 2^granularity and the given
// empty sentinel.
func NewSparseGrid[V comparable](granularity uint, empty V) *SparseGrid[V] {
	return &SparseGrid[V]{
		cells:       NewMap[*sparseCell[V]](),
		granularity: granularity,
		mask:        1<<granularity - 1,
		empty:       empty,
	}
}

// Size returns the number of non-empty slots.
func (g *SparseGrid[V]) Size() int { return g.size }

// CellCount returns the number of allocated cells.
func (g *SparseGrid[V]) CellCount() int { return g.cells.Size() }

func (g *SparseGrid[V]) Empty() V { return g.empty }

func (g *SparseGrid[V]) slot(x, y int) int {
	return (y&g.mask)<<g.granularity | x&g.mask
}

// Get never allocates; coordinates outside any cell read as empty.
func (g *SparseGrid[V]) Get(x, y int) V {
	c := g.cells.Get(x>>g.granularity, y>>g.granularity)
	if c == nil {
		return g.empty
	}
	return c.values[g.slot(x, y)]
}

// Put stores value and returns the previous one. Writing the empty value
// behaves like Remove.
func (g *SparseGrid[V]) Put(x, y int, value V) V {
	cx, cy := x>>g.granularity, y>>g.granularity
	c := g.cells.Get(cx, cy)
	if c == nil {
		if value == g.empty {
			return g.empty
		}
		c = &sparseCell[V]{values: make([]V, 1<<(2*g.granularity))}
		for i := range c.values {
			c.values[i] = g.empty
		}
		g.cells.Put(cx, cy, c)
	}
	idx := g.slot(x, y)
	old := c.values[idx]
	c.values[idx] = value
	switch {
	case old == g.empty && value != g.empty:
		c.count++
		g.size++
	case old != g.empty && value == g.empty:
		c.count--
		g.size--
		if c.count == 0 {
			g.cells.Remove(cx, cy)
		}
	}
	return old
}

func (g *SparseGrid[V]) Remove(x, y int) V {
	return g.Put(x, y, g.empty)
}

func (g *SparseGrid[V]) Clear() {
	g.cells.Clear()
	g.size = 0
}

// Each visits every non-empty slot. Modifying the grid from fn is reported as
// ErrConcurrentModification once a cell is allocated or freed.
func (g *SparseGrid[V]) Each(fn func(x, y int, value V)) error {
	side := 1 << g.granularity
	it := g.cells.Iterator()
	for it.Next() {
		c := it.Value()
		ox, oy := it.X()<<g.granularity, it.Y()<<g.granularity
		for i, v := range c.values {
			if v == g.empty {
				continue
			}
			fn(ox+i%side, oy+i/side, v)
		}
	}
	return it.Err()
}
