package world

// Direction represents a cardinal direction
type Direction int

// Direction constants, clockwise from North
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Clockwise returns the next direction turning right
func (d Direction) Clockwise() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 1) % 4
}

// Delta returns the x and y offsets for this direction
func (d Direction) Delta() (dx, dy int) {
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
		return 0, 0
	}
}

// Orientation is the axis a split line, wall run or door follows.
type Orientation int

const (
	// Horizontal lines run west to east (constant Y).
	Horizontal Orientation = iota
	// Vertical lines run north to south (constant X).
	Vertical
)

// String returns the string representation of an orientation
func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}
