package spatial

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/l1jgo/tilecore/internal/coord"
)

func TestCoordSetRegions(t *testing.T) {
	s := NewCoordSet()
	if !s.AddRegion(coord.NewRect(0, 0, 4, 4)) {
		t.Fatal("AddRegion reported no change")
	}
	if s.Len() != 16 {
		t.Fatalf("Len = %d, want 16", s.Len())
	}
	if !s.RemoveRegion(coord.NewRect(0, 0, 2, 2)) {
		t.Fatal("RemoveRegion reported no change")
	}
	if s.Len() != 12 {
		t.Fatalf("Len = %d, want 12", s.Len())
	}
	if s.ContainsRegion(coord.NewRect(0, 0, 4, 4)) {
		t.Fatal("ContainsRegion true after removal")
	}
	if !s.ContainsRegion(coord.NewRect(2, 0, 2, 4)) {
		t.Fatal("right half should remain")
	}
	if s.AddRegion(coord.NewRect(2, 2, 2, 2)) {
		t.Fatal("re-adding members reported a change")
	}
}

func TestCoordSetIndexedAccess(t *testing.T) {
	s := NewCoordSet()
	s.Add(1, 2)
	s.Add(-3, 4)
	s.Add(5, -6)
	s.Remove(1, 2)
	seen := map[[2]int]bool{}
	for i := 0; i < s.Len(); i++ {
		x, y := s.Get(i)
		seen[[2]int{x, y}] = true
	}
	if len(seen) != 2 || !seen[[2]int{-3, 4}] || !seen[[2]int{5, -6}] {
		t.Fatalf("members = %v", seen)
	}

	rng := rand.New(rand.NewSource(3))
	counts := map[[2]int]int{}
	for i := 0; i < 1000; i++ {
		x, y, ok := s.PickRandom(rng)
		if !ok {
			t.Fatal("PickRandom on non-empty set failed")
		}
		counts[[2]int{x, y}]++
	}
	for k, n := range counts {
		if n < 400 {
			t.Errorf("member %v picked %d/1000 times", k, n)
		}
	}
	if _, _, ok := NewCoordSet().PickRandom(rng); ok {
		t.Fatal("PickRandom on empty set succeeded")
	}
}

func TestCoordSetBorder(t *testing.T) {
	s := NewCoordSet()
	s.Add(0, 0)
	if b := s.Border(); b.Len() != 8 || b.Contains(0, 0) {
		t.Fatalf("single-cell border has %d cells", b.Len())
	}
	cb := s.CardinalBorder()
	if cb.Len() != 4 || !cb.Contains(0, 1) || !cb.Contains(-1, 0) || cb.Contains(1, 1) {
		t.Fatal("cardinal border wrong")
	}
	r := NewCoordSetRegion(coord.NewRect(0, 0, 3, 3))
	if b := r.Border(); b.Len() != 16 {
		t.Fatalf("3x3 border has %d cells, want 16", b.Len())
	}
}

func TestCoordSetLargestRect(t *testing.T) {
	tests := []struct {
		name  string
		cells []coord.Rect
		want  coord.Rect
	}{
		{"empty", nil, coord.Rect{}},
		{"single", []coord.Rect{coord.NewRect(5, -2, 1, 1)}, coord.NewRect(5, -2, 1, 1)},
		{"full block", []coord.Rect{coord.NewRect(0, 0, 4, 3)}, coord.NewRect(0, 0, 4, 3)},
		{
			"L shape prefers the long leg",
			[]coord.Rect{coord.NewRect(0, 0, 6, 2), coord.NewRect(0, 2, 2, 2)},
			coord.NewRect(0, 0, 6, 2),
		},
		{
			"tall column beats short row",
			[]coord.Rect{coord.NewRect(0, 0, 3, 1), coord.NewRect(4, -3, 1, 5)},
			coord.NewRect(4, -3, 1, 5),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewCoordSet()
			for _, r := range tt.cells {
				s.AddRegion(r)
			}
			got := s.LargestRect()
			if got != tt.want {
				t.Fatalf("LargestRect = %+v, want %+v", got, tt.want)
			}
			if !s.ContainsRegion(got) {
				t.Fatal("result contains non-members")
			}
		})
	}
}

func TestCoordSetLargestRectWithHole(t *testing.T) {
	s := NewCoordSetRegion(coord.NewRect(0, 0, 5, 5))
	s.Remove(2, 2)
	got := s.LargestRect()
	if got.Area() != 10 {
		t.Fatalf("LargestRect = %+v (area %d), want area 10", got, got.Area())
	}
	if !s.ContainsRegion(got) {
		t.Fatal("result covers the hole")
	}
}

func TestCoordSetRemoveFunc(t *testing.T) {
	s := NewCoordSetRegion(coord.NewRect(0, 0, 4, 4))
	s.RemoveFunc(func(x, y int) bool { return x == y })
	if s.Len() != 12 || s.Contains(2, 2) || !s.Contains(1, 2) {
		t.Fatalf("RemoveFunc left %d members", s.Len())
	}
	c := s.Clone()
	c.Clear()
	if s.Len() != 12 {
		t.Fatal("Clone shares storage")
	}
}

func TestSparseGrid(t *testing.T) {
	g := NewSparseGrid[int8](3, -1)
	if g.Get(100, -100) != -1 || g.CellCount() != 0 {
		t.Fatal("Get on empty grid allocated or returned non-empty")
	}
	g.Put(0, 0, 5)
	g.Put(7, 7, 6)
	g.Put(8, 0, 7)
	g.Put(-1, -1, 8)
	if g.CellCount() != 3 {
		t.Fatalf("CellCount = %d, want 3", g.CellCount())
	}
	if g.Get(7, 7) != 6 || g.Get(-1, -1) != 8 || g.Size() != 4 {
		t.Fatal("values not stored")
	}
	if prev := g.Put(7, 7, 9); prev != 6 {
		t.Fatalf("Put returned %d", prev)
	}
	g.Remove(8, 0)
	if g.CellCount() != 2 {
		t.Fatalf("emptied cell not freed, CellCount = %d", g.CellCount())
	}
	g.Put(5, 5, -1)
	if g.Size() != 3 {
		t.Fatalf("writing empty changed size to %d", g.Size())
	}
	sum := 0
	if err := g.Each(func(x, y int, v int8) { sum += int(v) }); err != nil {
		t.Fatal(err)
	}
	if sum != 5+9+8 {
		t.Fatalf("Each sum = %d", sum)
	}
	g.Remove(0, 0)
	g.Remove(7, 7)
	g.Remove(-1, -1)
	if g.CellCount() != 0 || g.Size() != 0 {
		t.Fatal("orphaned cells remain")
	}
}

func TestSparseGridEachDetectsAllocation(t *testing.T) {
	g := NewSparseGrid[int](2, 0)
	g.Put(0, 0, 1)
	g.Put(10, 10, 1)
	err := g.Each(func(x, y, v int) { g.Put(x+100, y, 1) })
	if !errors.Is(err, ErrConcurrentModification) {
		t.Fatalf("Each = %v, want ErrConcurrentModification", err)
	}
}
