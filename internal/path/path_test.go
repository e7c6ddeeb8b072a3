package path

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/geom"
	"github.com/l1jgo/tilecore/internal/space"
)

func checkCardinal(t *testing.T, p []mgl64.Vec2) {
	t.Helper()
	for i := 1; i < len(p); i++ {
		d := p[i].Sub(p[i-1])
		if !(d[0] == 0 && (d[1] == 0.5 || d[1] == -0.5) || d[1] == 0 && (d[0] == 0.5 || d[0] == -0.5)) {
			t.Fatalf("step %d: %v -> %v is not a cardinal half-unit step", i, p[i-1], p[i])
		}
	}
}

func TestFindPathStraight(t *testing.T) {
	p := FindPath(space.New(4), 0.25, mgl64.Vec2{0, 0}, mgl64.Vec2{5, 0}, 20, false)
	if len(p) != 11 {
		t.Fatalf("path has %d points, want 11 (10 grid steps)", len(p))
	}
	if p[0] != (mgl64.Vec2{0, 0}) || p[10] != (mgl64.Vec2{5, 0}) {
		t.Fatalf("endpoints %v %v", p[0], p[10])
	}
	checkCardinal(t, p)
}

func TestFindPathManhattanLength(t *testing.T) {
	cases := []struct{ start, end mgl64.Vec2 }{
		{mgl64.Vec2{0, 0}, mgl64.Vec2{3, -2}},
		{mgl64.Vec2{-1.5, 2}, mgl64.Vec2{1, 0.5}},
		{mgl64.Vec2{0.2, 0.1}, mgl64.Vec2{0.2, 4.1}}, // snapped to the half grid
	}
	for _, c := range cases {
		p := FindPath(space.New(4), 0.2, c.start, c.end, 50, false)
		from, to := toGrid(c.start), toGrid(c.end)
		if want := manhattan(from, to) + 1; len(p) != want {
			t.Errorf("%v -> %v: %d points, want %d", c.start, c.end, len(p), want)
		}
		checkCardinal(t, p)
	}
}

func TestFindPathAroundWall(t *testing.T) {
	s := space.New(2)
	s.Add(geom.NewBox(2, -3, 1, 6), space.Static)
	p := FindPath(s, 0.25, mgl64.Vec2{0, 0}, mgl64.Vec2{5, 0}, 40, false)
	if p == nil {
		t.Fatal("no path around the wall")
	}
	checkCardinal(t, p)
	for _, pt := range p {
		if got := s.Intersecting(geom.NewCircle(pt[0], pt[1], 0.25), nil); len(got) != 0 {
			t.Fatalf("path point %v overlaps the wall", pt)
		}
	}
	if len(p)-1 <= 10 {
		t.Fatalf("detour of %d steps is too short", len(p)-1)
	}
}

func TestFindPathBlocked(t *testing.T) {
	s := space.New(2)
	s.Add(geom.NewBox(4, -100, 1, 200), space.Static)
	if p := FindPath(s, 0.25, mgl64.Vec2{0, 0}, mgl64.Vec2{8, 0}, 10, false); p != nil {
		t.Fatalf("blocked search returned %v", p)
	}
	p := FindPath(s, 0.25, mgl64.Vec2{0, 0}, mgl64.Vec2{8, 0}, 10, true)
	if len(p) == 0 {
		t.Fatal("partial search returned nothing")
	}
	last := p[len(p)-1]
	if last[0] != 3.5 || last[1] != 0 {
		t.Fatalf("partial path ends at %v, want (3.5, 0) against the wall", last)
	}
}

func TestFindPathLimit(t *testing.T) {
	if p := FindPath(space.New(4), 0.25, mgl64.Vec2{0, 0}, mgl64.Vec2{5, 0}, 4, false); p != nil {
		t.Fatalf("path beyond the limit returned %v", p)
	}
	if p := FindPath(space.New(4), 0.25, mgl64.Vec2{0, 0}, mgl64.Vec2{5, 0}, 5, false); len(p) != 11 {
		t.Fatalf("path at the limit has %d points", len(p))
	}
}

func TestFindPathSameCell(t *testing.T) {
	p := FindPath(space.New(4), 0.25, mgl64.Vec2{1.1, 1.1}, mgl64.Vec2{0.9, 1.2}, 5, false)
	if len(p) != 1 || p[0] != (mgl64.Vec2{1, 1}) {
		t.Fatalf("same-cell path = %v", p)
	}
}

func TestToGridRoundsHalvesUp(t *testing.T) {
	cases := []struct {
		v    float64
		want int
	}{
		{-0.25, 0}, {0.25, 1}, {-0.75, -1}, {0.75, 2}, {-0.2, 0}, {0.2, 0}, {1.3, 3},
	}
	for _, c := range cases {
		if got := toGrid(mgl64.Vec2{c.v, c.v}); got != (gridPoint{c.want, c.want}) {
			t.Errorf("toGrid(%v) = %v, want %d on both axes", c.v, got, c.want)
		}
	}
}

func TestFindPathFarFromOrigin(t *testing.T) {
	start, end := mgl64.Vec2{20000, -20000}, mgl64.Vec2{20003, -20000}
	p := FindPath(space.New(4), 0.25, start, end, 10, false)
	if len(p) != 7 {
		t.Fatalf("path has %d points, want 7", len(p))
	}
	if p[0] != start || p[6] != end {
		t.Fatalf("endpoints %v %v", p[0], p[6])
	}
	checkCardinal(t, p)
}
