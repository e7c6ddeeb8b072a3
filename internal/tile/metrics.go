package tile

import (
	"github.com/l1jgo/tilecore/internal/coord"
	"github.com/l1jgo/tilecore/internal/geom"
)

// Metrics converts tile grid units to scene units.
type Metrics struct {
	ElevationScale float64 // scene height per elevation step
}

// Height returns the scene height of an elevation.
func (m Metrics) Height(elevation int) float64 {
	return float64(elevation) * m.ElevationScale
}

// Bounds returns the scene box of an entry's footprint. One cell is one scene
// unit.
func (m Metrics) Bounds(e *Entry) geom.Box {
	fp := e.Footprint()
	return geom.NewBox(float64(fp.X), float64(fp.Y), float64(fp.Width), float64(fp.Height))
}

// CollisionShapes returns the boxes of every entry in r whose height reaches
// minHeight.
func (m Metrics) CollisionShapes(s Scene, r coord.Rect, minHeight float64) []geom.Shape {
	var out []geom.Shape
	for _, e := range s.TileEntries(r) {
		if m.Height(e.Elevation) >= minHeight {
			out = append(out, m.Bounds(e))
		}
	}
	return out
}
