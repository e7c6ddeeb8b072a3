package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/codec"
	"github.com/l1jgo/tilecore/internal/config"
	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/core/event"
	coresys "github.com/l1jgo/tilecore/internal/core/system"
	"github.com/l1jgo/tilecore/internal/paint"
	"github.com/l1jgo/tilecore/internal/path"
	"github.com/l1jgo/tilecore/internal/sim"
	"github.com/l1jgo/tilecore/internal/space"
	"github.com/l1jgo/tilecore/internal/spatial"
	"github.com/l1jgo/tilecore/internal/tile"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// RectSpec is a region in job files.
type RectSpec struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"w"`
	Height int `yaml:"h"`
}

func (r RectSpec) Rect() coord.Rect { return coord.NewRect(r.X, r.Y, r.Width, r.Height) }

// PaintOp paints or erases one region.
type PaintOp struct {
	Kind      string   `yaml:"kind"` // "ground" or "wall"
	Ref       string   `yaml:"ref"`
	Rect      RectSpec `yaml:"rect"`
	Elevation int      `yaml:"elevation"`
	Erase     bool     `yaml:"erase"`
	Revise    bool     `yaml:"revise"`
}

// PathQuery asks for a path through the painted scene. Zero radius and
// longest fall back to the [path] config section.
type PathQuery struct {
	From    [2]float64 `yaml:"from"`
	To      [2]float64 `yaml:"to"`
	Radius  float64    `yaml:"radius"`
	Longest int        `yaml:"longest"`
	Partial *bool      `yaml:"partial"`
}

// SnapshotSpec is one server snapshot of a remote mobile.
type SnapshotSpec struct {
	At        int64      `yaml:"at"`
	Actor     int32      `yaml:"actor"`
	Pos       [2]float64 `yaml:"pos"`
	Direction float64    `yaml:"direction"`
	Speed     float64    `yaml:"speed"`
	Moving    bool       `yaml:"moving"`
	Destroyed int64      `yaml:"destroyed"`
}

// Replay feeds snapshots through the simulation and samples it.
type Replay struct {
	Snapshots []SnapshotSpec `yaml:"snapshots"`
	Ticks     []int64        `yaml:"ticks"`
}

// Job is the content of a job file.
type Job struct {
	Seed   int64       `yaml:"seed"`
	View   RectSpec    `yaml:"view"`
	Paint  []PaintOp   `yaml:"paint"`
	Paths  []PathQuery `yaml:"paths"`
	Replay Replay      `yaml:"replay"`
}

func loadJob(p string) (*Job, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read job: %w", err)
	}
	var j Job
	if err := yaml.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}
	return &j, nil
}

// Result summarizes a job run.
type Result struct {
	Scene   *tile.MemScene
	Shapes  int
	Paths   [][]mgl64.Vec2
	Samples []Sample
	Spawned int
}

// Sample is the rendered position of one remote actor at one tick.
type Sample struct {
	At    int64
	Actor int32
	Pos   mgl64.Vec2
}

func runJob(j *Job, cfg *config.Config, configs paint.Resolver, log *zap.Logger) (*Result, error) {
	seed := j.Seed
	if seed == 0 {
		seed = cfg.Paint.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	scene := tile.NewMemScene()
	painter := paint.NewPainter(scene, configs, rand.New(rand.NewSource(seed)), log)
	for i, op := range j.Paint {
		coords := spatial.NewCoordSetRegion(op.Rect.Rect())
		switch op.Kind {
		case "ground":
			painter.PaintGround(coords, op.Ref, op.Elevation, op.Erase, op.Revise)
		case "wall":
			painter.PaintWall(coords, op.Ref, op.Elevation, op.Erase, op.Revise)
		default:
			return nil, fmt.Errorf("paint op %d: unknown kind %q", i, op.Kind)
		}
	}

	res := &Result{Scene: scene}
	sp := space.New(cfg.Grid.SpaceCellSize)
	metrics := tile.Metrics{ElevationScale: cfg.Grid.ElevationScale}
	view := j.View.Rect()
	if view.Empty() {
		view = sceneBounds(scene)
	}
	for _, s := range metrics.CollisionShapes(scene, view, cfg.Grid.CollisionHeight) {
		sp.Add(s, space.Static)
		res.Shapes++
	}

	for _, q := range j.Paths {
		radius, longest, partial := q.Radius, q.Longest, cfg.Path.Partial
		if radius <= 0 {
			radius = cfg.Path.ProbeRadius
		}
		if longest <= 0 {
			longest = cfg.Path.Longest
		}
		if q.Partial != nil {
			partial = *q.Partial
		}
		p := path.FindPath(sp, radius, mgl64.Vec2(q.From), mgl64.Vec2(q.To), longest, partial)
		log.Debug("path query",
			zap.Float64s("from", q.From[:]),
			zap.Float64s("to", q.To[:]),
			zap.Int("points", len(p)))
		res.Paths = append(res.Paths, p)
	}

	if len(j.Replay.Ticks) > 0 {
		if err := replay(j.Replay, cfg, sp, res, log); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func replay(r Replay, cfg *config.Config, sp *space.Space, res *Result, log *zap.Logger) error {
	c, err := codec.New(cfg.Codec.Charset)
	if err != nil {
		return err
	}
	var now int64
	inbox := sim.NewInbox(cfg.Sim.InboxSize)
	world := sim.NewWorld(sim.Options{
		HistoryDuration:    cfg.History.Duration.Milliseconds(),
		InterpolationDelay: cfg.Sim.InterpolationDelay.Milliseconds(),
		MaxMessagesPerTick: cfg.Sim.MaxMessagesPerTick,
		Advance:            cfg.Advance.Options(),
	}, func() int64 { return now }, c, inbox, sp, log)
	runner := coresys.NewRunner()
	world.Register(runner, nil)
	event.Subscribe(world.Events(), func(e event.ActorSpawned) {
		res.Spawned++
		log.Debug("actor spawned", zap.Int32("actor", e.ActorID), zap.Int64("at", e.At))
	})

	pending := r.Snapshots
	for _, at := range r.Ticks {
		for len(pending) > 0 && pending[0].At <= at {
			s := pending[0]
			pending = pending[1:]
			m := actor.NewMobile(s.Actor, "", 0, mgl64.Vec2(s.Pos), cfg.Path.ProbeRadius, s.Speed)
			m.Direction = s.Direction
			if s.Moving {
				m.Set(actor.StatusMoving)
			}
			if s.Destroyed > 0 {
				m.Destroyed = s.Destroyed
			}
			if !inbox.Push(sim.Message{ActorID: s.Actor, Timestamp: s.At, Data: c.EncodeMobile(m)}) {
				log.Warn("inbox full, snapshot dropped", zap.Int32("actor", s.Actor), zap.Int64("at", s.At))
			}
		}
		now = at
		runner.Tick(cfg.Sim.TickRate)
		for _, s := range r.Snapshots {
			rem := world.Remote(s.Actor)
			if rem == nil || rem.View == nil || sampled(res.Samples, at, s.Actor) {
				continue
			}
			res.Samples = append(res.Samples, Sample{At: at, Actor: s.Actor, Pos: rem.View.Translation})
		}
	}
	return nil
}

func sampled(out []Sample, at int64, id int32) bool {
	for i := len(out) - 1; i >= 0 && out[i].At == at; i-- {
		if out[i].Actor == id {
			return true
		}
	}
	return false
}

func sceneBounds(s *tile.MemScene) coord.Rect {
	var r coord.Rect
	s.Each(func(e *tile.Entry) { r = r.Union(e.Footprint()) })
	return r
}

// render draws the scene as text, north up. Floors are '.', edges ',',
// walls '#', path points '*'.
func render(s *tile.MemScene, view coord.Rect, configs paint.Resolver, job *Job, paths [][]mgl64.Vec2) string {
	onPath := make(map[int32]bool)
	for _, p := range paths {
		for _, pt := range p {
			onPath[coord.Encode(int(pt[0]), int(pt[1]))] = true
		}
	}
	var b strings.Builder
	for y := view.MaxY() - 1; y >= view.Y; y-- {
		for x := view.X; x < view.MaxX(); x++ {
			b.WriteByte(cell(s, x, y, configs, job, onPath[coord.Encode(x, y)]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func cell(s *tile.MemScene, x, y int, configs paint.Resolver, job *Job, marked bool) byte {
	if marked {
		return '*'
	}
	e, ok := s.TileEntry(x, y)
	if !ok {
		return ' '
	}
	for _, op := range job.Paint {
		switch op.Kind {
		case "wall":
			if w := configs.Wall(op.Ref); w != nil && w.IsWall(e, e.Elevation) {
				return '#'
			}
		case "ground":
			if g := configs.Ground(op.Ref); g != nil {
				if g.IsFloor(e, e.Elevation) {
					return '.'
				}
				if g.IsEdge(e, e.Elevation) {
					return ','
				}
			}
		}
	}
	return '?'
}
