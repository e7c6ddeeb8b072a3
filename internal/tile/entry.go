package tile

import "github.com/l1jgo/tilecore/internal/coord"

// Entry is a tile placed in a scene. The origin (X, Y) is the minimum corner
// of its footprint.
type Entry struct {
	Tile      string // tile config reference
	X, Y      int
	Width     int // unrotated size in cells
	Height    int
	Rotation  int // quarter turns counterclockwise, 0..3
	Elevation int
}

// Key is the encoded origin, unique per scene layer.
func (e *Entry) Key() int32 { return coord.Encode(e.X, e.Y) }

// Footprint returns the covered cells. Odd rotations swap width and height.
func (e *Entry) Footprint() coord.Rect {
	w, h := footprint(e.Width, e.Height, e.Rotation)
	return coord.NewRect(e.X, e.Y, w, h)
}

func footprint(w, h, rotation int) (int, int) {
	if rotation&1 == 1 {
		return h, w
	}
	return w, h
}

// Placeable is a tile chosen by a config, ready to be anchored.
type Placeable struct {
	Tile     string
	Width    int
	Height   int
	Rotation int
}

// Footprint returns the placed size after rotation.
func (p Placeable) Footprint() (int, int) { return footprint(p.Width, p.Height, p.Rotation) }

// Entry anchors the placeable at (x, y).
func (p Placeable) Entry(x, y, elevation int) *Entry {
	return &Entry{
		Tile:      p.Tile,
		X:         x,
		Y:         y,
		Width:     p.Width,
		Height:    p.Height,
		Rotation:  p.Rotation & 3,
		Elevation: elevation,
	}
}

// Selection identifies the artwork case and orientation chosen for a
// neighbor pattern.
type Selection struct {
	Case     uint8
	Rotation int
}
