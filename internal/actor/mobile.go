package actor

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/l1jgo/tilecore/internal/geom"
)

// Mobile is an actor that travels along Direction at Speed while
// StatusMoving is set.
type Mobile struct {
	Actor
	Direction float64 // radians
	Speed     float64 // scene units per second
}

func NewMobile(id int32, config string, created int64, translation mgl64.Vec2, radius, speed float64) *Mobile {
	return &Mobile{Actor: *New(id, config, created, translation, radius), Speed: speed}
}

func (m *Mobile) Copy() *Mobile {
	c := *m
	return &c
}

// Move applies the kinematic update for elapsed seconds.
func (m *Mobile) Move(elapsed float64) {
	if !m.IsSet(StatusMoving) || elapsed == 0 {
		return
	}
	m.Translation = m.Translation.Add(geom.Heading(m.Direction).Mul(m.Speed * elapsed))
}

func (m *Mobile) Interpolate(other *Mobile, portion float64) *Mobile {
	r := m.Copy()
	if portion >= 1 || other.IsSet(StatusWarp) && portion > 0 {
		*r = *other
		return r
	}
	m.Actor.interpolateInto(&r.Actor, &other.Actor, portion)
	r.Direction = geom.LerpAngle(m.Direction, other.Direction, portion)
	r.Speed = m.Speed + (other.Speed-m.Speed)*portion
	return r
}

// Extrapolate dead-reckons the actor elapsed seconds forward (or backward when
// elapsed is negative) along its current heading.
func (m *Mobile) Extrapolate(elapsed float64) *Mobile {
	r := m.Copy()
	r.Move(elapsed)
	return r
}
