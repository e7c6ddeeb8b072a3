package paint

import (
	"math/rand"

	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/spatial"
	"github.com/l1jgo/tilecore/internal/tile"
	"go.uber.org/zap"
)

// Painter autotiles regions of a scene. Painting is best effort: cells for
// which no case or tile exists are left alone, and repainting converges.
type Painter struct {
	scene   tile.Scene
	configs Resolver
	rng     *rand.Rand
	log     *zap.Logger
}

func NewPainter(scene tile.Scene, configs Resolver, rng *rand.Rand, log *zap.Logger) *Painter {
	return &Painter{scene: scene, configs: configs, rng: rng, log: log}
}

// PaintGround lays ground ref over coords and reclassifies the edges around
// it. With erase set the ground is removed instead. With revise set cells
// that already hold the right tile are repainted anyway.
func (p *Painter) PaintGround(coords *spatial.CoordSet, ref string, elevation int, erase, revise bool) {
	g := p.configs.Ground(ref)
	if g == nil {
		p.clear(coords)
		return
	}
	if erase {
		p.eraseGround(g, coords, elevation)
		p.log.Debug("ground erased", zap.String("ground", ref), zap.Int("cells", coords.Len()))
		return
	}

	area := coords
	if g.ExtendEdge() {
		area = coords.Clone()
		area.AddAll(coords.CardinalBorder())
	}
	border := area.Border()
	fill := area.Clone()
	if !revise {
		fill.RemoveFunc(func(x, y int) bool {
			e, ok := p.scene.TileEntry(x, y)
			return ok && g.IsFloor(e, elevation)
		})
	}
	placed := p.fill(fill, func(w, h int) (tile.Placeable, bool) {
		return g.CreateFloor(p.rng, w, h)
	}, elevation)
	edges := p.paintEdges(g, border, area, elevation, revise)
	p.log.Debug("ground painted",
		zap.String("ground", ref),
		zap.Int("cells", area.Len()),
		zap.Int("floors", placed),
		zap.Int("edges", edges))
}

// eraseGround clears coords and the ground's own tiles in its border, then
// reclassifies the border against the floor that is left. Cells outside that
// zone that lost their floor because a multi-cell tile was removed are
// floored again.
func (p *Painter) eraseGround(g GroundConfig, coords *spatial.CoordSet, elevation int) {
	border := coords.Border()
	zone := coords.Clone()
	zone.AddAll(border)
	orphans := spatial.NewCoordSet()
	zone.Each(func(x, y int) {
		e, ok := p.scene.TileEntry(x, y)
		if !ok {
			return
		}
		floor := g.IsFloor(e, elevation)
		if !coords.Contains(x, y) && !floor && !g.IsEdge(e, elevation) {
			return
		}
		p.scene.RemoveEntry(e.Key())
		if floor {
			e.Footprint().Each(func(fx, fy int) {
				if !zone.Contains(fx, fy) {
					orphans.Add(fx, fy)
				}
			})
		}
	})
	p.fill(orphans, func(w, h int) (tile.Placeable, bool) {
		return g.CreateFloor(p.rng, w, h)
	}, elevation)
	p.paintEdges(g, border, spatial.NewCoordSet(), elevation, true)
}

// paintEdges classifies border cells against the floor they touch and places
// matching edge tiles. Cells holding foreign tiles are never touched.
func (p *Painter) paintEdges(g GroundConfig, border, floor *spatial.CoordSet, elevation int, revise bool) int {
	isFloor := func(x, y int) bool {
		if floor.Contains(x, y) {
			return true
		}
		e, ok := p.scene.TileEntry(x, y)
		return ok && g.IsFloor(e, elevation)
	}
	groups := newGrouping()
	border.Each(func(x, y int) {
		e, ok := p.scene.TileEntry(x, y)
		if ok && !g.IsEdge(e, elevation) {
			return
		}
		sel, matched := g.EdgeCase(pattern(x, y, coord.Cardinals[:], isFloor))
		if !matched {
			if ok {
				p.scene.RemoveEntry(e.Key())
			}
			return
		}
		if ok && !revise && g.MatchesEdge(e, sel, elevation) {
			return
		}
		groups.add(sel, x, y)
	})
	placed := 0
	groups.each(func(sel tile.Selection, cells *spatial.CoordSet) {
		placed += p.fill(cells, func(w, h int) (tile.Placeable, bool) {
			return g.CreateEdge(p.rng, sel, w, h)
		}, elevation)
	})
	return placed
}

// PaintWall lays wall ref over coords and reclassifies the walls around it.
// Erased walls are repainted with the wall's ground.
func (p *Painter) PaintWall(coords *spatial.CoordSet, ref string, elevation int, erase, revise bool) {
	w := p.configs.Wall(ref)
	if w == nil {
		p.clear(coords)
		return
	}
	border := coords.Border()
	if erase {
		p.clear(coords)
		p.PaintGround(coords, w.Ground(), elevation, false, true)
		p.paintWalls(w, p.liveWalls(w, border, elevation), spatial.NewCoordSet(), elevation, true)
		p.log.Debug("walls erased", zap.String("wall", ref), zap.Int("cells", coords.Len()))
		return
	}
	targets := coords.Clone()
	targets.AddAll(p.liveWalls(w, border, elevation))
	placed := p.paintWalls(w, targets, coords, elevation, revise)
	p.log.Debug("walls painted",
		zap.String("wall", ref),
		zap.Int("cells", coords.Len()),
		zap.Int("placed", placed))
}

func (p *Painter) liveWalls(w WallConfig, cells *spatial.CoordSet, elevation int) *spatial.CoordSet {
	out := spatial.NewCoordSet()
	cells.Each(func(x, y int) {
		if e, ok := p.scene.TileEntry(x, y); ok && w.IsWall(e, elevation) {
			out.Add(x, y)
		}
	})
	return out
}

func (p *Painter) paintWalls(w WallConfig, targets, walls *spatial.CoordSet, elevation int, revise bool) int {
	isWall := func(x, y int) bool {
		if walls.Contains(x, y) {
			return true
		}
		e, ok := p.scene.TileEntry(x, y)
		return ok && w.IsWall(e, elevation)
	}
	groups := newGrouping()
	targets.Each(func(x, y int) {
		sel, matched := w.WallCase(pattern(x, y, coord.Directions[:], isWall))
		if !matched {
			return
		}
		if e, ok := p.scene.TileEntry(x, y); ok && !revise && w.MatchesWall(e, sel, elevation) {
			return
		}
		groups.add(sel, x, y)
	})
	placed := 0
	groups.each(func(sel tile.Selection, cells *spatial.CoordSet) {
		placed += p.fill(cells, func(width, height int) (tile.Placeable, bool) {
			return w.CreateWall(p.rng, sel, width, height)
		}, elevation)
	})
	return placed
}

// fill covers cells with tiles, largest rectangle first. Each extracted
// rectangle is covered completely before the next extraction: a placed tile
// splits what is left of its rectangle into up to four smaller rectangles,
// which are filled the same way. Only cells no tile fits into go back to the
// next extraction. It stops when create has nothing for an extracted
// rectangle; nothing smaller fits either.
func (p *Painter) fill(cells *spatial.CoordSet, create func(w, h int) (tile.Placeable, bool), elevation int) int {
	placed := 0
	var pending []coord.Rect
	for cells.Len() > 0 {
		r := cells.LargestRect()
		before := placed
		pending = append(pending[:0], r)
		for len(pending) > 0 {
			sub := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			fp, ok := p.place(cells, sub, create, elevation)
			if !ok {
				if sub == r {
					return placed
				}
				continue
			}
			placed++
			pending = appendRemainder(pending, sub, fp)
		}
		if placed == before {
			break
		}
	}
	return placed
}

// place puts one tile from create inside r at a random anchor and returns
// its footprint.
func (p *Painter) place(cells *spatial.CoordSet, r coord.Rect, create func(w, h int) (tile.Placeable, bool), elevation int) (coord.Rect, bool) {
	pl, ok := create(r.Width, r.Height)
	if !ok {
		return coord.Rect{}, false
	}
	fw, fh := pl.Footprint()
	if fw <= 0 || fh <= 0 || fw > r.Width || fh > r.Height {
		p.log.Warn("tile does not fit its region",
			zap.String("tile", pl.Tile),
			zap.Int("width", fw), zap.Int("height", fh),
			zap.Int("region_width", r.Width), zap.Int("region_height", r.Height))
		return coord.Rect{}, false
	}
	x, y, _ := r.PickRandom(p.rng, fw, fh)
	fp := coord.NewRect(x, y, fw, fh)
	p.scene.AddEntry(pl.Entry(x, y, elevation))
	cells.RemoveRegion(fp)
	return fp, true
}

// appendRemainder appends the parts of r not covered by fp: full-width bands
// below and above it, and the pieces left and right of it.
func appendRemainder(out []coord.Rect, r, fp coord.Rect) []coord.Rect {
	for _, part := range [4]coord.Rect{
		coord.NewRect(r.X, r.Y, r.Width, fp.Y-r.Y),
		coord.NewRect(r.X, fp.MaxY(), r.Width, r.MaxY()-fp.MaxY()),
		coord.NewRect(r.X, fp.Y, fp.X-r.X, fp.Height),
		coord.NewRect(fp.MaxX(), fp.Y, r.MaxX()-fp.MaxX(), fp.Height),
	} {
		if !part.Empty() {
			out = append(out, part)
		}
	}
	return out
}

func (p *Painter) clear(coords *spatial.CoordSet) {
	coords.Each(func(x, y int) {
		if e, ok := p.scene.TileEntry(x, y); ok {
			p.scene.RemoveEntry(e.Key())
		}
	})
}

// pattern sets the bit of every direction whose neighbor satisfies member.
func pattern(x, y int, dirs []coord.Direction, member func(x, y int) bool) uint8 {
	var mask uint8
	for _, d := range dirs {
		if member(d.Neighbor(x, y)) {
			mask |= uint8(d.Bit())
		}
	}
	return mask
}

// grouping buckets cells by selection, keeping first-seen order so painting
// is reproducible for a given random source.
type grouping struct {
	order  []tile.Selection
	groups map[tile.Selection]*spatial.CoordSet
}

func newGrouping() *grouping {
	return &grouping{groups: make(map[tile.Selection]*spatial.CoordSet)}
}

func (g *grouping) add(sel tile.Selection, x, y int) {
	set, ok := g.groups[sel]
	if !ok {
		set = spatial.NewCoordSet()
		g.groups[sel] = set
		g.order = append(g.order, sel)
	}
	set.Add(x, y)
}

func (g *grouping) each(fn func(sel tile.Selection, cells *spatial.CoordSet)) {
	for _, sel := range g.order {
		fn(sel, g.groups[sel])
	}
}
