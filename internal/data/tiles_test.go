package data

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/l1jgo/tilecore/internal/tile"
)

const sampleTiles = `
grounds:
  - name: sand
    extend_edge: true
    floors:
      - {tile: sand_a, weight: 1}
      - {tile: sand_b, weight: 1}
      - {tile: dune, width: 3, height: 1, weight: 5}
    edges:
      - {case: 1, tile: sand_side}
walls:
  - name: brick
    ground: sand
    default: {tile: brick}
    cases:
      - {case: 85, tile: brick_cross, width: 1, height: 1}
`

func TestLoadTileTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.yaml")
	if err := os.WriteFile(path, []byte(sampleTiles), 0o644); err != nil {
		t.Fatal(err)
	}
	table, err := LoadTileTable(path, tile.StaticRules{})
	if err != nil {
		t.Fatalf("LoadTileTable: %v", err)
	}
	if table.GroundCount() != 1 || table.WallCount() != 1 {
		t.Fatalf("counts %d/%d", table.GroundCount(), table.WallCount())
	}
	if table.Ground("nope") != nil || table.Wall("nope") != nil {
		t.Fatal("unknown reference resolved")
	}
	sand := table.Ground("sand")
	if !sand.ExtendEdge() {
		t.Error("extend_edge not loaded")
	}
	if !sand.IsFloor(&tile.Entry{Tile: "dune", Elevation: 2}, 2) || sand.IsFloor(&tile.Entry{Tile: "dune"}, 2) {
		t.Error("IsFloor ignores elevation")
	}
	if table.Wall("brick").Ground() != "sand" {
		t.Error("wall ground not loaded")
	}
}

func TestLoadTileTableErrors(t *testing.T) {
	if _, err := LoadTileTable(filepath.Join(t.TempDir(), "missing.yaml"), tile.StaticRules{}); err == nil {
		t.Fatal("missing file accepted")
	}
	bad := `
grounds: []
walls:
  - {name: w, ground: lava, default: {tile: x}}
`
	_, err := ParseTileTable([]byte(bad), tile.StaticRules{})
	if err == nil || !strings.Contains(err.Error(), "lava") {
		t.Fatalf("unknown ground error = %v", err)
	}
	if _, err := ParseTileTable([]byte("grounds: [{name: g}]"), tile.StaticRules{}); err == nil {
		t.Fatal("ground without floors accepted")
	}
}

func TestCreateFloorPrefersLargest(t *testing.T) {
	table, err := ParseTileTable([]byte(sampleTiles), tile.StaticRules{})
	if err != nil {
		t.Fatal(err)
	}
	sand := table.Ground("sand")
	rng := rand.New(rand.NewSource(1))

	if pl, ok := sand.CreateFloor(rng, 4, 4); !ok || pl.Tile != "dune" {
		t.Fatalf("4x4 region got %+v", pl)
	}
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		pl, ok := sand.CreateFloor(rng, 2, 2)
		if !ok || pl.Width != 1 {
			t.Fatalf("2x2 region got %+v", pl)
		}
		seen[pl.Tile] = true
	}
	if !seen["sand_a"] || !seen["sand_b"] {
		t.Fatalf("weighted pick never chose some variants: %v", seen)
	}
	if _, ok := sand.CreateFloor(rng, 0, 3); ok {
		t.Fatal("placeable returned for an empty region")
	}
}

func TestEdgeAndWallMatching(t *testing.T) {
	table, err := ParseTileTable([]byte(sampleTiles), tile.StaticRules{})
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	sand := table.Ground("sand")
	sel := tile.Selection{Case: 1, Rotation: 2}
	pl, ok := sand.CreateEdge(rng, sel, 1, 1)
	if !ok || pl.Tile != "sand_side" || pl.Rotation != 2 {
		t.Fatalf("CreateEdge = %+v", pl)
	}
	e := pl.Entry(0, 0, 0)
	if !sand.MatchesEdge(e, sel, 0) || sand.MatchesEdge(e, tile.Selection{Case: 1}, 0) {
		t.Fatal("MatchesEdge ignores rotation")
	}
	if _, ok := sand.CreateEdge(rng, tile.Selection{Case: 5}, 1, 1); ok {
		t.Fatal("edge created for a case without tiles")
	}

	brick := table.Wall("brick")
	cross := tile.Selection{Case: 85}
	pl, _ = brick.CreateWall(rng, cross, 1, 1)
	if pl.Tile != "brick_cross" || !brick.MatchesWall(pl.Entry(0, 0, 0), cross, 0) {
		t.Fatalf("cased wall = %+v", pl)
	}
	plain := tile.Selection{Case: 1, Rotation: 3}
	pl, _ = brick.CreateWall(rng, plain, 1, 1)
	if pl.Tile != "brick" || pl.Rotation != 0 || !brick.MatchesWall(pl.Entry(0, 0, 0), plain, 0) {
		t.Fatalf("default wall = %+v", pl)
	}
	if brick.MatchesWall(pl.Entry(0, 0, 0), cross, 0) {
		t.Fatal("default tile matches a cased selection")
	}
}
