package advance

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/geom"
	"github.com/l1jgo/tilecore/internal/space"
)

type countingEnv struct {
	calls int
}

func (e *countingEnv) Penetration(*actor.Actor, geom.Shape) (mgl64.Vec2, bool) {
	e.calls++
	return mgl64.Vec2{}, false
}

// stuckEnv always reports a tiny penetration that never resolves.
type stuckEnv struct{}

func (stuckEnv) Penetration(*actor.Actor, geom.Shape) (mgl64.Vec2, bool) {
	return mgl64.Vec2{0, 1e-6}, true
}

func TestBaseIgnoresPastTimestamps(t *testing.T) {
	var got []float64
	b := NewBase(1000)
	b.step = func(e float64) { got = append(got, e) }
	b.Advance(1000)
	b.Advance(900)
	b.Advance(1250)
	if len(got) != 1 || got[0] != 0.25 || b.Timestamp() != 1250 {
		t.Fatalf("steps %v timestamp %d", got, b.Timestamp())
	}
}

func TestMobileMovesInSubsteps(t *testing.T) {
	m := actor.NewMobile(1, "", 0, mgl64.Vec2{}, 0.5, 3)
	m.Set(actor.StatusMoving)
	env := &countingEnv{}
	a := NewMobile(m, env, 0, DefaultOptions())
	a.Advance(1000)
	if !near(m.Translation, mgl64.Vec2{3, 0}) {
		t.Fatalf("translation = %v, want (3,0)", m.Translation)
	}
	if env.calls != 60 {
		t.Fatalf("environment queried %d times, want one per 1/60 s substep", env.calls)
	}
}

func TestMobileStopsAtWall(t *testing.T) {
	s := space.New(1)
	s.Add(geom.NewBox(2, -5, 1, 10), space.Static)
	m := actor.NewMobile(1, "", 0, mgl64.Vec2{}, 0.5, 4)
	m.Set(actor.StatusMoving)
	a := NewMobile(m, s, 0, DefaultOptions())
	for ts := int64(100); ts <= 2000; ts += 100 {
		a.Advance(ts)
		if _, ok := s.Penetration(&m.Actor, m.Shape()); ok {
			t.Fatalf("actor left penetrating at %d: %v", ts, m.Translation)
		}
	}
	if m.Translation[0] > 1.5 || m.Translation[0] < 1.4 {
		t.Fatalf("actor should rest against the wall, got x=%v", m.Translation[0])
	}
}

func TestMobileRevertsWhenStuck(t *testing.T) {
	m := actor.NewMobile(1, "", 0, mgl64.Vec2{1, 1}, 0.5, 1)
	m.Set(actor.StatusMoving)
	a := NewMobile(m, stuckEnv{}, 0, DefaultOptions())
	a.Advance(500)
	if m.Translation != (mgl64.Vec2{1, 1}) {
		t.Fatalf("translation = %v, want reverted to start", m.Translation)
	}
}

func TestPawnInput(t *testing.T) {
	p := actor.NewPawn(1, 2, "", 0, mgl64.Vec2{}, 0.5, 2)
	a := NewPawn(p, nil, 0, DefaultOptions())

	a.AdvanceInput(actor.InputFrame{Timestamp: 100, Direction: math.Pi / 2, Flags: actor.FlagMove})
	if !p.IsSet(actor.StatusMoving) || p.Rotation != math.Pi/2 || p.Translation != (mgl64.Vec2{}) {
		t.Fatalf("after first frame: %+v", p)
	}

	a.AdvanceInput(actor.InputFrame{Timestamp: 600, Direction: 0, Flags: actor.FlagMove | actor.FlagStrafe})
	if !near(p.Translation, mgl64.Vec2{0, 1}) {
		t.Fatalf("moved to %v, want (0,1)", p.Translation)
	}
	if p.Rotation != math.Pi/2 || p.Direction != 0 {
		t.Fatalf("strafe changed facing: rotation %v direction %v", p.Rotation, p.Direction)
	}

	a.AdvanceInput(actor.InputFrame{Timestamp: 1100})
	if p.IsSet(actor.StatusMoving) {
		t.Fatal("moving flag not cleared")
	}
	if !near(p.Translation, mgl64.Vec2{1, 1}) {
		t.Fatalf("moved to %v, want (1,1)", p.Translation)
	}
}

// near compares absolute distance; mgl64's ApproxEqual is relative and fails
// for components that should be exactly zero.
func near(a, b mgl64.Vec2) bool { return a.Sub(b).Len() < 1e-9 }
