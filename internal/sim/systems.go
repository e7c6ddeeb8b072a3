package sim

import (
	"time"

	"github.com/l1jgo/tilecore/internal/core/event"
	coresys "github.com/l1jgo/tilecore/internal/core/system"
	"go.uber.org/zap"
)

// EventSystem delivers the previous tick's events.
type EventSystem struct{ w *World }

func (s EventSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s EventSystem) Update(time.Duration) {
	s.w.events.SwapBuffers()
	s.w.events.DispatchAll()
}

// RecordSystem drains the inbox into actor histories and input queues.
type RecordSystem struct{ w *World }

func (s RecordSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s RecordSystem) Update(time.Duration) {
	s.w.inbox.drain(s.w.opts.MaxMessagesPerTick, s.w.record)
}

// InputSystem applies queued input frames to locally predicted pawns.
type InputSystem struct{ w *World }

func (s InputSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s InputSystem) Update(time.Duration) {
	for _, l := range s.w.locals {
		for _, f := range l.inputs {
			l.Advancer.AdvanceInput(f)
		}
		l.inputs = l.inputs[:0]
	}
}

// AdvanceSystem steps local pawns to the clock and samples remote actors at
// the render time.
type AdvanceSystem struct{ w *World }

func (s AdvanceSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s AdvanceSystem) Update(time.Duration) {
	now := s.w.clock()
	for _, l := range s.w.locals {
		l.Advancer.Advance(now)
	}
	at := s.w.renderTime()
	for _, r := range s.w.remotes {
		if !r.History.IsCreated(at) {
			r.View = nil
			continue
		}
		r.View = r.History.Get(at)
	}
}

// SpaceSystem mirrors actor shapes into the collision space.
type SpaceSystem struct{ w *World }

func (s SpaceSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s SpaceSystem) Update(time.Duration) {
	sp := s.w.space
	for _, l := range s.w.locals {
		sp.Update(l.element, l.Advancer.Pawn().Shape())
	}
	for _, r := range s.w.remotes {
		switch {
		case r.View == nil && r.element != nil:
			sp.Remove(r.element)
			r.element = nil
		case r.View != nil && r.element == nil:
			r.element = sp.Add(r.View.Shape(), r.ID)
		case r.View != nil:
			sp.Update(r.element, r.View.Shape())
		}
	}
}

// OutputSystem encodes the predicted state of local pawns.
type OutputSystem struct {
	w    *World
	send func(actorID int32, data []byte)
}

func (s OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s OutputSystem) Update(time.Duration) {
	for id, l := range s.w.locals {
		s.send(id, s.w.codec.EncodePawn(l.Advancer.Pawn()))
	}
}

// CleanupSystem forgets remote actors destroyed before the render time.
type CleanupSystem struct{ w *World }

func (s CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s CleanupSystem) Update(time.Duration) {
	at := s.w.renderTime()
	for id, r := range s.w.remotes {
		if !r.History.IsDestroyed(at) {
			continue
		}
		if r.element != nil {
			s.w.space.Remove(r.element)
		}
		delete(s.w.remotes, id)
		event.Emit(s.w.events, event.ActorDestroyed{ActorID: id, At: at})
		s.w.log.Debug("actor destroyed", zap.Int32("actor", id), zap.Int64("at", at))
	}
}

// Register adds the world's systems to a runner. send receives encoded local
// pawn state each tick; nil skips output.
func (w *World) Register(r *coresys.Runner, send func(actorID int32, data []byte)) {
	r.Register(EventSystem{w})
	r.Register(RecordSystem{w})
	r.Register(InputSystem{w})
	r.Register(AdvanceSystem{w})
	r.Register(SpaceSystem{w})
	if send != nil {
		r.Register(OutputSystem{w: w, send: send})
	}
	r.Register(CleanupSystem{w})
}
