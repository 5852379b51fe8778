package maze

// Direction is a bit flag for one side of a cell. A cell's paths are the OR
// of the directions it is open to.
type Direction uint8

const (
	North Direction = 1 << iota
	East
	South
	West
)

// directions lists every direction in the order neighbors are examined.
var directions = [...]Direction{North, East, South, West}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		panic("maze: invalid direction")
	}
}

// Offset returns the grid step for the direction.
func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		panic("maze: invalid direction")
	}
}

// Cell is one maze cell.
type Cell struct {
	Visited bool
	Paths   Direction
}
