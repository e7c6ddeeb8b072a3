package advance

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/geom"
)

// Environment answers collision queries for an advancing actor.
type Environment interface {
	// Penetration returns the vector that moves shape out of the environment,
	// ignoring anything owned by a.
	Penetration(a *actor.Actor, shape geom.Shape) (mgl64.Vec2, bool)
}

// Options tunes the fixed-step integration.
type Options struct {
	MaxSubstep       float64 // seconds
	CorrectionPasses int
	PushMargin       float64 // > 1
}

// DefaultOptions matches a 60 Hz physics step.
func DefaultOptions() Options {
	return Options{MaxSubstep: 1.0 / 60, CorrectionPasses: 3, PushMargin: 1.05}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MaxSubstep <= 0 {
		o.MaxSubstep = d.MaxSubstep
	}
	if o.CorrectionPasses <= 0 {
		o.CorrectionPasses = d.CorrectionPasses
	}
	if o.PushMargin <= 1 {
		o.PushMargin = d.PushMargin
	}
	return o
}

// Base advances a clock and hands the elapsed seconds to a step hook.
type Base struct {
	timestamp int64 // ms
	step      func(elapsed float64)
}

func NewBase(timestamp int64) *Base {
	return &Base{timestamp: timestamp}
}

func (b *Base) Timestamp() int64 { return b.timestamp }

// Reset moves the clock without stepping.
func (b *Base) Reset(timestamp int64) { b.timestamp = timestamp }

// Advance steps to timestamp. Timestamps at or before the current one are
// ignored.
func (b *Base) Advance(timestamp int64) {
	if timestamp <= b.timestamp {
		return
	}
	elapsed := float64(timestamp-b.timestamp) / 1000
	b.timestamp = timestamp
	if b.step != nil {
		b.step(elapsed)
	}
}

// Mobile advances a mobile actor in bounded substeps, pushing it out of the
// environment after each one.
type Mobile struct {
	Base
	actor *actor.Mobile
	env   Environment
	opts  Options
}

func NewMobile(m *actor.Mobile, env Environment, timestamp int64, opts Options) *Mobile {
	a := &Mobile{Base: Base{timestamp: timestamp}, actor: m, env: env, opts: opts.normalized()}
	a.step = a.stepMobile
	return a
}

// Actor returns the live state being advanced.
func (a *Mobile) Actor() *actor.Mobile { return a.actor }

// SetActor replaces the live state, e.g. after a server correction.
func (a *Mobile) SetActor(m *actor.Mobile) { a.actor = m }

func (a *Mobile) stepMobile(elapsed float64) {
	n := int(math.Ceil(elapsed/a.opts.MaxSubstep - 1e-9))
	if n < 1 {
		n = 1
	}
	dt := elapsed / float64(n)
	for i := 0; i < n; i++ {
		a.substep(dt)
	}
}

func (a *Mobile) substep(dt float64) {
	m := a.actor
	before := m.Translation
	m.Move(dt)
	if m.Translation == before || a.env == nil {
		return
	}
	for pass := 0; pass < a.opts.CorrectionPasses; pass++ {
		v, ok := a.env.Penetration(&m.Actor, m.Shape())
		if !ok {
			return
		}
		m.Translation = m.Translation.Add(v.Mul(a.opts.PushMargin))
	}
	if _, ok := a.env.Penetration(&m.Actor, m.Shape()); ok {
		m.Translation = before
	}
}

// Pawn advances a player pawn and applies its input frames.
type Pawn struct {
	*Mobile
	pawn *actor.Pawn
}

func NewPawn(p *actor.Pawn, env Environment, timestamp int64, opts Options) *Pawn {
	return &Pawn{Mobile: NewMobile(&p.Mobile, env, timestamp, opts), pawn: p}
}

func (a *Pawn) Pawn() *actor.Pawn { return a.pawn }

// AdvanceInput steps to the frame's timestamp and then applies the frame.
func (a *Pawn) AdvanceInput(frame actor.InputFrame) {
	a.Advance(frame.Timestamp)
	p := a.pawn
	p.Direction = frame.Direction
	if !frame.IsSet(actor.FlagStrafe) {
		p.Rotation = frame.Direction
	}
	if frame.IsSet(actor.FlagMove) {
		p.Set(actor.StatusMoving)
	} else {
		p.Clear(actor.StatusMoving)
	}
}
