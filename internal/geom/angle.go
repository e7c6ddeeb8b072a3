package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// NormalizeAngle maps a to (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// LerpAngle interpolates between two angles along the shorter arc.
func LerpAngle(a, b, t float64) float64 {
	if t == 0 {
		return a
	}
	return NormalizeAngle(a + NormalizeAngle(b-a)*t)
}

// Lerp interpolates between two points.
func Lerp(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return a.Add(b.Sub(a).Mul(t))
}

// Heading returns the unit vector for an angle in radians.
func Heading(angle float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
}
