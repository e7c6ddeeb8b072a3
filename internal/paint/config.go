package paint

import (
	"math/rand"

	"github.com/l1jgo/tilecore/internal/tile"
)

// GroundConfig is the painter's view of a ground definition.
type GroundConfig interface {
	IsFloor(e *tile.Entry, elevation int) bool
	IsEdge(e *tile.Entry, elevation int) bool
	MatchesEdge(e *tile.Entry, sel tile.Selection, elevation int) bool
	// ExtendEdge reports whether floor is laid under the cardinal border too.
	ExtendEdge() bool
	EdgeCase(pattern uint8) (tile.Selection, bool)
	// CreateFloor returns the largest floor tile whose footprint fits
	// maxWidth × maxHeight.
	CreateFloor(rng *rand.Rand, maxWidth, maxHeight int) (tile.Placeable, bool)
	CreateEdge(rng *rand.Rand, sel tile.Selection, maxWidth, maxHeight int) (tile.Placeable, bool)
}

// WallConfig is the painter's view of a wall definition.
type WallConfig interface {
	// Ground names the ground painted where walls are erased.
	Ground() string
	IsWall(e *tile.Entry, elevation int) bool
	MatchesWall(e *tile.Entry, sel tile.Selection, elevation int) bool
	WallCase(pattern uint8) (tile.Selection, bool)
	CreateWall(rng *rand.Rand, sel tile.Selection, maxWidth, maxHeight int) (tile.Placeable, bool)
}

// Resolver looks definitions up by config reference. Unknown references
// resolve to nil.
type Resolver interface {
	Ground(ref string) GroundConfig
	Wall(ref string) WallConfig
}
