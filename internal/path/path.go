package path

import (
	"container/heap"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/geom"
)

// Space answers the intersection queries used to test traversability.
type Space interface {
	Intersecting(shape geom.Shape, out []geom.Shape) []geom.Shape
}

// Grid cells are half a scene unit wide.
const resolution = 2

type gridPoint struct {
	x, y int
}

// toGrid snaps to the nearest half unit; ties round toward +inf on both axes.
func toGrid(v mgl64.Vec2) gridPoint {
	return gridPoint{int(math.Floor(v[0]*resolution + 0.5)), int(math.Floor(v[1]*resolution + 0.5))}
}

func (p gridPoint) scene() mgl64.Vec2 {
	return mgl64.Vec2{float64(p.x) / resolution, float64(p.y) / resolution}
}

func manhattan(a, b gridPoint) int {
	return abs(a.x-b.x) + abs(a.y-b.y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var steps = [...]gridPoint{{0, 1}, {-1, 0}, {0, -1}, {1, 0}}

type pathNode struct {
	point  gridPoint
	g      int
	f      int
	index  int
	parent *pathNode
}

type pathQueue []*pathNode

func (pq pathQueue) Len() int { return len(pq) }

// Less orders by f, preferring deeper nodes on ties.
func (pq pathQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].g > pq[j].g
}

func (pq pathQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pathQueue) Push(x any) {
	n := len(*pq)
	item := x.(*pathNode)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *pathQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// finder holds the per-search state.
type finder struct {
	space  Space
	radius float64
	probe  []geom.Shape
	passes map[gridPoint]bool
}

// traversable reports whether a circle of the probe radius fits at p.
func (f *finder) traversable(p gridPoint) bool {
	if ok, seen := f.passes[p]; seen {
		return ok
	}
	c := p.scene()
	f.probe = f.space.Intersecting(geom.NewCircle(c[0], c[1], f.radius), f.probe[:0])
	ok := len(f.probe) == 0
	f.passes[p] = ok
	return ok
}

// FindPath searches for a path of cardinal half-unit steps from start to end
// for an actor of the given radius. Positions are snapped to the nearest half
// unit. The search does not expand nodes at longest scene units (2×longest
// steps) or more from the start. When no path exists, partial selects between
// no path (nil) and the path to the explored point nearest the goal. The
// returned path includes the start point.
func FindPath(space Space, radius float64, start, end mgl64.Vec2, longest int, partial bool) []mgl64.Vec2 {
	from, to := toGrid(start), toGrid(end)
	if from == to {
		return []mgl64.Vec2{from.scene()}
	}
	limit := longest * resolution
	f := &finder{space: space, radius: radius, passes: make(map[gridPoint]bool)}

	open := &pathQueue{}
	heap.Init(open)
	first := &pathNode{point: from, f: manhattan(from, to)}
	heap.Push(open, first)
	gScore := map[gridPoint]int{from: 0}
	closed := make(map[gridPoint]struct{})
	best, bestH := first, manhattan(from, to)

	for open.Len() > 0 {
		current := heap.Pop(open).(*pathNode)
		if _, seen := closed[current.point]; seen {
			continue
		}
		closed[current.point] = struct{}{}
		if current.point == to {
			return reconstruct(current)
		}
		if h := manhattan(current.point, to); h < bestH || h == bestH && current.g < best.g {
			best, bestH = current, h
		}
		if current.g >= limit {
			continue
		}
		for _, d := range steps {
			next := gridPoint{current.point.x + d.x, current.point.y + d.y}
			if _, seen := closed[next]; seen {
				continue
			}
			g := current.g + 1
			if prev, ok := gScore[next]; ok && g >= prev {
				continue
			}
			if !f.traversable(next) {
				continue
			}
			gScore[next] = g
			heap.Push(open, &pathNode{point: next, g: g, f: g + manhattan(next, to), parent: current})
		}
	}
	if partial && best != first {
		return reconstruct(best)
	}
	return nil
}

func reconstruct(end *pathNode) []mgl64.Vec2 {
	n := 0
	for node := end; node != nil; node = node.parent {
		n++
	}
	out := make([]mgl64.Vec2, n)
	for node := end; node != nil; node = node.parent {
		n--
		out[n] = node.point.scene()
	}
	return out
}
