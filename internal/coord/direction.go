package coord

// Direction is one of the eight compass directions. The ordinal order is
// load-bearing: neighbor patterns use the ordinal as bit index, and the
// cardinals sit at the even ordinals 0, 2, 4, 6.
type Direction int

const (
	North Direction = iota
	Northwest
	West
	Southwest
	South
	Southeast
	East
	Northeast
)

// Directions lists all eight directions in ordinal order.
var Directions = [8]Direction{North, Northwest, West, Southwest, South, Southeast, East, Northeast}

// Cardinals lists the four cardinal directions in ordinal order.
var Cardinals = [4]Direction{North, West, South, East}

// +y is north.
var (
	directionDX = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
	directionDY = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
)

var directionNames = [8]string{"north", "northwest", "west", "southwest", "south", "southeast", "east", "northeast"}

func (d Direction) DX() int { return directionDX[d&7] }
func (d Direction) DY() int { return directionDY[d&7] }

// Bit returns the pattern bit for this direction.
func (d Direction) Bit() int { return 1 << uint(d&7) }

// IsCardinal reports whether d is north, west, south or east.
func (d Direction) IsCardinal() bool { return d&1 == 0 }

// Rotate turns counterclockwise by steps × 45°. Negative steps turn clockwise.
func (d Direction) Rotate(steps int) Direction {
	return Direction(((int(d)+steps)%8 + 8) % 8)
}

// Neighbor returns the coordinate one step from (x, y) in direction d.
func (d Direction) Neighbor(x, y int) (int, int) {
	return x + d.DX(), y + d.DY()
}

func (d Direction) String() string {
	if d < 0 || d > Northeast {
		return "invalid"
	}
	return directionNames[d]
}

// CardinalMask has the bits of the four cardinal directions set.
const CardinalMask = 1<<North | 1<<West | 1<<South | 1<<East
