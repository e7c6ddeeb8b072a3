package actor

import "github.com/go-gl/mathgl/mgl64"

// Input frame flags.
const (
	FlagMove uint8 = 1 << iota
	FlagStrafe
)

// InputFrame is one sample of player input.
type InputFrame struct {
	Timestamp int64   // ms
	Direction float64 // radians
	Flags     uint8
}

func (f InputFrame) IsSet(flag uint8) bool { return f.Flags&flag != 0 }

// Pawn is a player-controlled mobile.
type Pawn struct {
	Mobile
	Owner int32 // controlling client
}

func NewPawn(id, owner int32, config string, created int64, translation mgl64.Vec2, radius, speed float64) *Pawn {
	return &Pawn{Mobile: *NewMobile(id, config, created, translation, radius, speed), Owner: owner}
}

func (p *Pawn) Copy() *Pawn {
	c := *p
	return &c
}

func (p *Pawn) Interpolate(other *Pawn, portion float64) *Pawn {
	r := &Pawn{Mobile: *p.Mobile.Interpolate(&other.Mobile, portion), Owner: p.Owner}
	if portion >= 1 {
		r.Owner = other.Owner
	}
	return r
}

func (p *Pawn) Extrapolate(elapsed float64) *Pawn {
	return &Pawn{Mobile: *p.Mobile.Extrapolate(elapsed), Owner: p.Owner}
}
