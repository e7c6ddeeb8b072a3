package tile

import (
	"math/bits"

	"github.com/l1jgo/tilecore/internal/coord"
)

// FullMask is the pattern of a cell surrounded on all eight sides. Patterns
// are 8-bit masks indexed by coord.Direction ordinal.
const FullMask uint8 = 0xFF

// CaseRules maps neighbor patterns to selections.
type CaseRules interface {
	// EdgeCase classifies a ground edge from the cardinal floor neighbors.
	EdgeCase(pattern uint8) (Selection, bool)
	// WallCase classifies a wall from all eight wall neighbors.
	WallCase(pattern uint8) (Selection, bool)
}

// RotatePattern turns a pattern by quarter turns counterclockwise: the
// neighbor to the north becomes the neighbor to the west.
func RotatePattern(pattern uint8, quarterTurns int) uint8 {
	return bits.RotateLeft8(pattern, 2*(quarterTurns&3))
}

// Canonical reduces a pattern to the smallest of its four rotations. The
// returned rotation turns the canonical case back into pattern; among equal
// candidates the smallest rotation wins.
func Canonical(pattern uint8) Selection {
	best := Selection{Case: pattern}
	for r := 1; r < 4; r++ {
		c := RotatePattern(pattern, -r)
		if c < best.Case {
			best = Selection{Case: c, Rotation: r}
		}
	}
	return best
}

// WallPattern drops the diagonal bits whose two adjacent cardinals are not
// both set, so corners only matter inside a solid run of wall.
func WallPattern(pattern uint8) uint8 {
	out := pattern & coord.CardinalMask
	for d := coord.Northwest; d <= coord.Northeast; d += 2 {
		a, b := d.Rotate(-1), d.Rotate(1)
		if pattern&uint8(d.Bit()) != 0 && pattern&uint8(a.Bit()) != 0 && pattern&uint8(b.Bit()) != 0 {
			out |= uint8(d.Bit())
		}
	}
	return out
}

// StaticRules classifies patterns by rotation-canonical form alone.
type StaticRules struct{}

func (StaticRules) EdgeCase(pattern uint8) (Selection, bool) {
	pattern &= coord.CardinalMask
	if pattern == 0 {
		return Selection{}, false
	}
	return Canonical(pattern), true
}

func (StaticRules) WallCase(pattern uint8) (Selection, bool) {
	return Canonical(WallPattern(pattern)), true
}
