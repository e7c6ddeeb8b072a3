package paint_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/data"
	"github.com/l1jgo/tilecore/internal/paint"
	"github.com/l1jgo/tilecore/internal/spatial"
	"github.com/l1jgo/tilecore/internal/tile"
	"go.uber.org/zap/zaptest"
)

const tilesYAML = `
grounds:
  - name: grass
    floors:
      - {tile: grass, width: 1, height: 1, weight: 3}
      - {tile: grass_big, width: 2, height: 2}
    edges:
      - {case: 1, tile: grass_side}
      - {case: 5, tile: grass_corner}
      - {case: 17, tile: grass_strip}
      - {case: 21, tile: grass_end}
      - {case: 85, tile: grass_island}
  - name: dirt
    floors:
      - {tile: dirt}
walls:
  - name: stone
    ground: dirt
    default: {tile: stone_block}
    cases:
      - {case: 255, tile: stone_solid}
`

func newPainter(t *testing.T) (*paint.Painter, *tile.MemScene) {
	t.Helper()
	table, err := data.ParseTileTable([]byte(tilesYAML), tile.StaticRules{})
	if err != nil {
		t.Fatalf("parse tiles: %v", err)
	}
	scene := tile.NewMemScene()
	return paint.NewPainter(scene, table, rand.New(rand.NewSource(7)), zaptest.NewLogger(t)), scene
}

func snapshot(s *tile.MemScene) map[tile.Entry]bool {
	out := make(map[tile.Entry]bool)
	s.Each(func(e *tile.Entry) { out[*e] = true })
	return out
}

func TestPaintGroundCoversRegionAndEdges(t *testing.T) {
	p, scene := newPainter(t)
	region := spatial.NewCoordSetRegion(coord.NewRect(0, 0, 4, 4))
	p.PaintGround(region, "grass", 0, false, false)

	region.Each(func(x, y int) {
		e, ok := scene.TileEntry(x, y)
		if !ok || (e.Tile != "grass" && e.Tile != "grass_big") {
			t.Fatalf("cell (%d,%d) = %+v, want floor", x, y, e)
		}
	})
	edges := 0
	region.Border().Each(func(x, y int) {
		e, ok := scene.TileEntry(x, y)
		corner := (x == -1 || x == 4) && (y == -1 || y == 4)
		if corner {
			if ok {
				t.Errorf("diagonal corner (%d,%d) got %s", x, y, e.Tile)
			}
			return
		}
		if !ok || e.Tile != "grass_side" {
			t.Fatalf("border (%d,%d) = %+v, want side edge", x, y, e)
		}
		edges++
	})
	if edges != 16 {
		t.Fatalf("edges = %d, want 16", edges)
	}

	west, _ := scene.TileEntry(-1, 2)
	east, _ := scene.TileEntry(4, 2)
	if west.Rotation == east.Rotation {
		t.Errorf("opposite edges share rotation %d", west.Rotation)
	}
}

func TestPaintGroundIsIdempotent(t *testing.T) {
	p, scene := newPainter(t)
	region := spatial.NewCoordSetRegion(coord.NewRect(0, 0, 5, 3))
	p.PaintGround(region, "grass", 1, false, false)
	before := snapshot(scene)
	p.PaintGround(region, "grass", 1, false, false)
	after := snapshot(scene)
	if len(before) != len(after) {
		t.Fatalf("repaint changed entry count %d -> %d", len(before), len(after))
	}
	for e := range before {
		if !after[e] {
			t.Fatalf("repaint replaced %+v", e)
		}
	}
}

func TestEraseGroundLeavesRegionEmpty(t *testing.T) {
	for _, ref := range []string{"", "grass"} {
		p, scene := newPainter(t)
		region := spatial.NewCoordSetRegion(coord.NewRect(-2, -2, 4, 3))
		p.PaintGround(region, "grass", 0, false, false)
		p.PaintGround(region, ref, 0, true, false)
		region.Each(func(x, y int) {
			if e, ok := scene.TileEntry(x, y); ok {
				t.Fatalf("ref %q: (%d,%d) still holds %s", ref, x, y, e.Tile)
			}
		})
		if ref == "grass" && scene.Len() != 0 {
			t.Fatalf("edges left behind after erase: %d entries", scene.Len())
		}
	}
}

func TestErasePartOfGroundReclassifiesEdges(t *testing.T) {
	p, scene := newPainter(t)
	p.PaintGround(spatial.NewCoordSetRegion(coord.NewRect(0, 0, 5, 5)), "grass", 0, false, false)
	hole := spatial.NewCoordSet()
	hole.Add(2, 2)
	p.PaintGround(hole, "grass", 0, true, false)

	if e, ok := scene.TileEntry(2, 2); ok {
		t.Fatalf("erased cell holds %s", e.Tile)
	}
	edges := map[string]bool{"grass_side": true, "grass_corner": true, "grass_strip": true, "grass_end": true, "grass_island": true}
	ring := coord.NewRect(1, 1, 3, 3)
	spatial.NewCoordSetRegion(coord.NewRect(0, 0, 5, 5)).Each(func(x, y int) {
		if x == 2 && y == 2 {
			return
		}
		e, ok := scene.TileEntry(x, y)
		if !ok {
			t.Fatalf("(%d,%d) left empty", x, y)
		}
		if ring.Contains(x, y) {
			if !edges[e.Tile] {
				t.Fatalf("(%d,%d) around the hole = %s, want an edge", x, y, e.Tile)
			}
			return
		}
		if e.Tile != "grass" && e.Tile != "grass_big" {
			t.Fatalf("floor at (%d,%d) = %s", x, y, e.Tile)
		}
	})
}

func TestPaintLargeRegion(t *testing.T) {
	p, scene := newPainter(t)
	region := coord.NewRect(0, 0, 128, 128)
	start := time.Now()
	p.PaintGround(spatial.NewCoordSetRegion(region), "dirt", 0, false, false)
	if d := time.Since(start); d > 3*time.Second {
		t.Fatalf("painting %dx%d took %v", region.Width, region.Height, d)
	}
	spatial.NewCoordSetRegion(region).Each(func(x, y int) {
		if e, ok := scene.TileEntry(x, y); !ok || e.Tile != "dirt" {
			t.Fatalf("(%d,%d) = %+v, want dirt", x, y, e)
		}
	})
	if scene.Len() != region.Width*region.Height {
		t.Fatalf("scene has %d entries, want %d", scene.Len(), region.Width*region.Height)
	}
}

func TestPaintWallEnclosedCase(t *testing.T) {
	p, scene := newPainter(t)
	p.PaintWall(spatial.NewCoordSetRegion(coord.NewRect(0, 0, 3, 3)), "stone", 0, false, false)

	center, ok := scene.TileEntry(1, 1)
	if !ok || center.Tile != "stone_solid" || center.Rotation != 0 {
		t.Fatalf("enclosed wall = %+v, want stone_solid rotation 0", center)
	}
	for _, c := range [][2]int{{0, 0}, {1, 0}, {2, 2}} {
		if e, ok := scene.TileEntry(c[0], c[1]); !ok || e.Tile != "stone_block" {
			t.Fatalf("outer wall (%d,%d) = %+v", c[0], c[1], e)
		}
	}
}

func TestEraseWallRepaintsGround(t *testing.T) {
	p, scene := newPainter(t)
	p.PaintWall(spatial.NewCoordSetRegion(coord.NewRect(0, 0, 3, 3)), "stone", 0, false, false)
	hole := spatial.NewCoordSet()
	hole.Add(1, 1)
	p.PaintWall(hole, "stone", 0, true, false)

	if e, ok := scene.TileEntry(1, 1); !ok || e.Tile != "dirt" {
		t.Fatalf("erased wall = %+v, want dirt floor", e)
	}
	if e, ok := scene.TileEntry(0, 0); !ok || e.Tile != "stone_block" {
		t.Fatalf("surrounding wall = %+v", e)
	}
	if scene.Len() != 9 {
		t.Fatalf("scene has %d entries, want 9", scene.Len())
	}
}

func TestUnknownWallClears(t *testing.T) {
	p, scene := newPainter(t)
	region := spatial.NewCoordSetRegion(coord.NewRect(0, 0, 2, 2))
	p.PaintWall(region, "stone", 0, false, false)
	p.PaintWall(region, "missing", 0, false, false)
	if scene.Len() != 0 {
		t.Fatalf("unresolved wall left %d entries", scene.Len())
	}
}
