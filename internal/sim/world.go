package sim

import (
	"github.com/l1jgo/tilecore/internal/actor"
	"github.com/l1jgo/tilecore/internal/advance"
	"github.com/l1jgo/tilecore/internal/codec"
	"github.com/l1jgo/tilecore/internal/core/event"
	"github.com/l1jgo/tilecore/internal/history"
	"github.com/l1jgo/tilecore/internal/space"
	"go.uber.org/zap"
)

// Options configures a World.
type Options struct {
	HistoryDuration    int64 // ms
	InterpolationDelay int64 // ms remote actors are shown behind the clock
	MaxMessagesPerTick int
	Advance            advance.Options
}

// Remote is an actor driven by server snapshots.
type Remote struct {
	ID      int32
	History *history.History[*actor.Mobile]
	View    *actor.Mobile // state at the last rendered time
	element *space.Element
}

// Local is a pawn predicted from local input.
type Local struct {
	Advancer *advance.Pawn
	inputs   []actor.InputFrame
	element  *space.Element
}

// World is the client-side simulation state. Accessed only from the tick
// goroutine; the Inbox is the only cross-goroutine entry point.
type World struct {
	opts    Options
	clock   func() int64
	codec   *codec.Codec
	inbox   *Inbox
	space   *space.Space
	remotes map[int32]*Remote
	locals  map[int32]*Local
	events  *event.Bus
	log     *zap.Logger
}

// NewWorld creates a world. clock returns the current time in ms.
func NewWorld(opts Options, clock func() int64, c *codec.Codec, inbox *Inbox, s *space.Space, log *zap.Logger) *World {
	return &World{
		opts:    opts,
		clock:   clock,
		codec:   c,
		inbox:   inbox,
		space:   s,
		remotes: make(map[int32]*Remote),
		locals:  make(map[int32]*Local),
		events:  event.NewBus(),
		log:     log,
	}
}

func (w *World) Inbox() *Inbox           { return w.inbox }
func (w *World) Space() *space.Space     { return w.space }
func (w *World) RemoteCount() int        { return len(w.remotes) }
func (w *World) Remote(id int32) *Remote { return w.remotes[id] }
func (w *World) Local(id int32) *Local   { return w.locals[id] }

// Events returns the bus actor lifecycle events are published on. Handlers
// run at the start of the tick after the event.
func (w *World) Events() *event.Bus { return w.events }

// renderTime is the timestamp remote actors are sampled at.
func (w *World) renderTime() int64 {
	return w.clock() - w.opts.InterpolationDelay
}

// Control starts predicting p locally from the current clock.
func (w *World) Control(p *actor.Pawn) *Local {
	l := &Local{
		Advancer: advance.NewPawn(p, w.space, w.clock(), w.opts.Advance),
		element:  w.space.Add(p.Shape(), p.ID),
	}
	w.locals[p.ID] = l
	return l
}

// record applies one decoded message.
func (w *World) record(m Message) {
	kind, err := codec.Peek(m.Data)
	if err != nil {
		w.log.Warn("drop message", zap.Int32("actor", m.ActorID), zap.Error(err))
		return
	}
	var snap *actor.Mobile
	switch kind {
	case codec.KindInput:
		f, err := w.codec.DecodeInput(m.Data)
		if err != nil {
			w.log.Warn("drop input", zap.Int32("actor", m.ActorID), zap.Error(err))
			return
		}
		if l, ok := w.locals[m.ActorID]; ok {
			l.inputs = append(l.inputs, f)
		}
		return
	case codec.KindActor:
		a, err := w.codec.DecodeActor(m.Data)
		if err != nil {
			w.log.Warn("drop snapshot", zap.Int32("actor", m.ActorID), zap.Error(err))
			return
		}
		snap = &actor.Mobile{Actor: *a}
	case codec.KindMobile:
		if snap, err = w.codec.DecodeMobile(m.Data); err != nil {
			w.log.Warn("drop snapshot", zap.Int32("actor", m.ActorID), zap.Error(err))
			return
		}
	case codec.KindPawn:
		p, err := w.codec.DecodePawn(m.Data)
		if err != nil {
			w.log.Warn("drop snapshot", zap.Int32("actor", m.ActorID), zap.Error(err))
			return
		}
		snap = &p.Mobile
	default:
		w.log.Warn("drop message", zap.Int32("actor", m.ActorID), zap.Stringer("kind", kind))
		return
	}
	if _, local := w.locals[snap.ID]; local {
		return
	}
	r, ok := w.remotes[snap.ID]
	if !ok {
		w.remotes[snap.ID] = &Remote{
			ID:      snap.ID,
			History: history.New(m.Timestamp, snap, w.opts.HistoryDuration),
		}
		event.Emit(w.events, event.ActorSpawned{ActorID: snap.ID, At: m.Timestamp})
		return
	}
	if !r.History.Record(m.Timestamp, snap) {
		w.log.Debug("out of order snapshot", zap.Int32("actor", snap.ID), zap.Int64("ts", m.Timestamp))
		event.Emit(w.events, event.SnapshotRejected{ActorID: snap.ID, Timestamp: m.Timestamp})
	}
}
