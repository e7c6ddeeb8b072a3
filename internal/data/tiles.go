package data

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/l1jgo/tilecore/internal/paint"
	"github.com/l1jgo/tilecore/internal/tile"
	"gopkg.in/yaml.v3"
)

// TileVariant is one piece of artwork usable for a floor, edge or wall.
type TileVariant struct {
	Tile   string `yaml:"tile"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Weight int    `yaml:"weight"`
}

// CaseVariant binds a variant to a canonical neighbor case.
type CaseVariant struct {
	Case        uint8 `yaml:"case"`
	TileVariant `yaml:",inline"`
}

// GroundEntry is a ground definition as written in tiles.yaml.
type GroundEntry struct {
	Name       string        `yaml:"name"`
	ExtendEdge bool          `yaml:"extend_edge"`
	Floors     []TileVariant `yaml:"floors"`
	Edges      []CaseVariant `yaml:"edges"`
}

// WallEntry is a wall definition as written in tiles.yaml.
type WallEntry struct {
	Name    string        `yaml:"name"`
	Ground  string        `yaml:"ground"`
	Cases   []CaseVariant `yaml:"cases"`
	Default TileVariant   `yaml:"default"`
}

type tileFile struct {
	Grounds []GroundEntry `yaml:"grounds"`
	Walls   []WallEntry   `yaml:"walls"`
}

// TileTable resolves ground and wall references for the painter.
type TileTable struct {
	grounds map[string]*GroundDef
	walls   map[string]*WallDef
}

// LoadTileTable loads tiles.yaml. rules classifies neighbor patterns for
// every definition in the table.
func LoadTileTable(path string, rules tile.CaseRules) (*TileTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tile table: %w", err)
	}
	return ParseTileTable(raw, rules)
}

// ParseTileTable builds a table from tiles.yaml content.
func ParseTileTable(raw []byte, rules tile.CaseRules) (*TileTable, error) {
	var f tileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse tile table: %w", err)
	}
	t := &TileTable{
		grounds: make(map[string]*GroundDef, len(f.Grounds)),
		walls:   make(map[string]*WallDef, len(f.Walls)),
	}
	for i := range f.Grounds {
		g, err := newGroundDef(&f.Grounds[i], rules)
		if err != nil {
			return nil, err
		}
		t.grounds[g.entry.Name] = g
	}
	for i := range f.Walls {
		w, err := newWallDef(&f.Walls[i], rules)
		if err != nil {
			return nil, err
		}
		if _, ok := t.grounds[w.entry.Ground]; !ok && w.entry.Ground != "" {
			return nil, fmt.Errorf("wall %q: unknown ground %q", w.entry.Name, w.entry.Ground)
		}
		t.walls[w.entry.Name] = w
	}
	return t, nil
}

// Ground returns the ground named ref, or nil.
func (t *TileTable) Ground(ref string) paint.GroundConfig {
	if g, ok := t.grounds[ref]; ok {
		return g
	}
	return nil
}

// Wall returns the wall named ref, or nil.
func (t *TileTable) Wall(ref string) paint.WallConfig {
	if w, ok := t.walls[ref]; ok {
		return w
	}
	return nil
}

func (t *TileTable) GroundCount() int { return len(t.grounds) }
func (t *TileTable) WallCount() int   { return len(t.walls) }

// GroundDef is a loaded ground definition.
type GroundDef struct {
	entry  *GroundEntry
	rules  tile.CaseRules
	floors map[string]struct{}
	edges  map[uint8][]TileVariant
	// edge tile → canonical case
	edgeTiles map[string]uint8
}

func newGroundDef(e *GroundEntry, rules tile.CaseRules) (*GroundDef, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("ground without name")
	}
	if len(e.Floors) == 0 {
		return nil, fmt.Errorf("ground %q: no floors", e.Name)
	}
	g := &GroundDef{
		entry:     e,
		rules:     rules,
		floors:    make(map[string]struct{}, len(e.Floors)),
		edges:     make(map[uint8][]TileVariant),
		edgeTiles: make(map[string]uint8),
	}
	for i := range e.Floors {
		v := normalize(e.Floors[i])
		e.Floors[i] = v
		g.floors[v.Tile] = struct{}{}
	}
	for _, c := range e.Edges {
		v := normalize(c.TileVariant)
		g.edges[c.Case] = append(g.edges[c.Case], v)
		g.edgeTiles[v.Tile] = c.Case
	}
	return g, nil
}

func (g *GroundDef) Name() string     { return g.entry.Name }
func (g *GroundDef) ExtendEdge() bool { return g.entry.ExtendEdge }

func (g *GroundDef) IsFloor(e *tile.Entry, elevation int) bool {
	_, ok := g.floors[e.Tile]
	return ok && e.Elevation == elevation
}

func (g *GroundDef) IsEdge(e *tile.Entry, elevation int) bool {
	_, ok := g.edgeTiles[e.Tile]
	return ok && e.Elevation == elevation
}

func (g *GroundDef) MatchesEdge(e *tile.Entry, sel tile.Selection, elevation int) bool {
	c, ok := g.edgeTiles[e.Tile]
	return ok && c == sel.Case && e.Rotation == sel.Rotation&3 && e.Elevation == elevation
}

func (g *GroundDef) EdgeCase(pattern uint8) (tile.Selection, bool) {
	return g.rules.EdgeCase(pattern)
}

func (g *GroundDef) CreateFloor(rng *rand.Rand, maxWidth, maxHeight int) (tile.Placeable, bool) {
	return pick(rng, g.entry.Floors, 0, maxWidth, maxHeight)
}

func (g *GroundDef) CreateEdge(rng *rand.Rand, sel tile.Selection, maxWidth, maxHeight int) (tile.Placeable, bool) {
	return pick(rng, g.edges[sel.Case], sel.Rotation, maxWidth, maxHeight)
}

// WallDef is a loaded wall definition.
type WallDef struct {
	entry *WallEntry
	rules tile.CaseRules
	cases map[uint8][]TileVariant
	// wall tile → canonical case, -1 for the default tile
	wallTiles map[string]int
}

func newWallDef(e *WallEntry, rules tile.CaseRules) (*WallDef, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("wall without name")
	}
	if e.Default.Tile == "" {
		return nil, fmt.Errorf("wall %q: no default tile", e.Name)
	}
	e.Default = normalize(e.Default)
	w := &WallDef{
		entry:     e,
		rules:     rules,
		cases:     make(map[uint8][]TileVariant),
		wallTiles: map[string]int{e.Default.Tile: -1},
	}
	for _, c := range e.Cases {
		v := normalize(c.TileVariant)
		w.cases[c.Case] = append(w.cases[c.Case], v)
		w.wallTiles[v.Tile] = int(c.Case)
	}
	return w, nil
}

func (w *WallDef) Name() string   { return w.entry.Name }
func (w *WallDef) Ground() string { return w.entry.Ground }

func (w *WallDef) IsWall(e *tile.Entry, elevation int) bool {
	_, ok := w.wallTiles[e.Tile]
	return ok && e.Elevation == elevation
}

func (w *WallDef) MatchesWall(e *tile.Entry, sel tile.Selection, elevation int) bool {
	c, ok := w.wallTiles[e.Tile]
	if !ok || e.Elevation != elevation {
		return false
	}
	if _, cased := w.cases[sel.Case]; !cased {
		return c == -1
	}
	return c == int(sel.Case) && e.Rotation == sel.Rotation&3
}

func (w *WallDef) WallCase(pattern uint8) (tile.Selection, bool) {
	return w.rules.WallCase(pattern)
}

func (w *WallDef) CreateWall(rng *rand.Rand, sel tile.Selection, maxWidth, maxHeight int) (tile.Placeable, bool) {
	if variants, ok := w.cases[sel.Case]; ok {
		return pick(rng, variants, sel.Rotation, maxWidth, maxHeight)
	}
	return pick(rng, []TileVariant{w.entry.Default}, 0, maxWidth, maxHeight)
}

func normalize(v TileVariant) TileVariant {
	if v.Width <= 0 {
		v.Width = 1
	}
	if v.Height <= 0 {
		v.Height = 1
	}
	if v.Weight <= 0 {
		v.Weight = 1
	}
	return v
}

// pick chooses among the variants with the largest rotated footprint that
// fits maxWidth × maxHeight, weighted by Weight.
func pick(rng *rand.Rand, variants []TileVariant, rotation, maxWidth, maxHeight int) (tile.Placeable, bool) {
	bestArea, total := 0, 0
	for _, v := range variants {
		w, h := tile.Placeable{Width: v.Width, Height: v.Height, Rotation: rotation}.Footprint()
		if w > maxWidth || h > maxHeight {
			continue
		}
		switch area := w * h; {
		case area > bestArea:
			bestArea, total = area, v.Weight
		case area == bestArea:
			total += v.Weight
		}
	}
	if bestArea == 0 {
		return tile.Placeable{}, false
	}
	n := rng.Intn(total)
	for _, v := range variants {
		w, h := tile.Placeable{Width: v.Width, Height: v.Height, Rotation: rotation}.Footprint()
		if w > maxWidth || h > maxHeight || w*h != bestArea {
			continue
		}
		if n < v.Weight {
			return tile.Placeable{Tile: v.Tile, Width: v.Width, Height: v.Height, Rotation: rotation & 3}, true
		}
		n -= v.Weight
	}
	return tile.Placeable{}, false
}
