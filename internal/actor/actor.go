package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/geom"
)

// Status flags carried on every actor snapshot.
const (
	StatusMoving uint32 = 1 << iota
	StatusWarp          // snapped to a new position; do not interpolate into it
)

// Alive is the Destroyed value of an actor that has not been destroyed.
const Alive = math.MaxInt64

// Actor is the state of a scene actor at one timestamp. Snapshots recorded
// into a history are treated as immutable; Interpolate and Extrapolate always
// return new values.
type Actor struct {
	ID          int32
	Config      string // actor config reference
	Created     int64  // ms
	Destroyed   int64  // ms, Alive until destroyed
	Translation mgl64.Vec2
	Rotation    float64 // radians
	Radius      float64 // collision radius
	Status      uint32
}

// New creates a live actor.
func New(id int32, config string, created int64, translation mgl64.Vec2, radius float64) *Actor {
	return &Actor{
		ID:          id,
		Config:      config,
		Created:     created,
		Destroyed:   Alive,
		Translation: translation,
		Radius:      radius,
	}
}

func (a *Actor) IsSet(flag uint32) bool { return a.Status&flag != 0 }
func (a *Actor) Set(flag uint32)        { a.Status |= flag }
func (a *Actor) Clear(flag uint32)      { a.Status &^= flag }

func (a *Actor) CreatedAt() int64   { return a.Created }
func (a *Actor) DestroyedAt() int64 { return a.Destroyed }

// Shape returns the collision circle at the actor's current placement.
func (a *Actor) Shape() geom.Shape {
	return geom.Circle{Center: a.Translation, Radius: a.Radius}
}

func (a *Actor) Copy() *Actor {
	c := *a
	return &c
}

// Interpolate blends toward other by portion in [0, 1]. Discrete fields keep
// the receiver's values until portion reaches 1, when the result is other.
// A warping other is taken as is for any positive portion.
func (a *Actor) Interpolate(other *Actor, portion float64) *Actor {
	r := a.Copy()
	a.interpolateInto(r, other, portion)
	return r
}

func (a *Actor) interpolateInto(r, other *Actor, portion float64) {
	if portion >= 1 || other.IsSet(StatusWarp) && portion > 0 {
		*r = *other
		return
	}
	r.Translation = geom.Lerp(a.Translation, other.Translation, portion)
	r.Rotation = geom.LerpAngle(a.Rotation, other.Rotation, portion)
	r.Radius = a.Radius + (other.Radius-a.Radius)*portion
}

// Extrapolate returns the state elapsed seconds away. A plain actor does not
// move on its own.
func (a *Actor) Extrapolate(elapsed float64) *Actor {
	return a.Copy()
}
