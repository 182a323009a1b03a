// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based generator.
package world

import "fmt"

// CellKind is the content of a single grid cell.
type CellKind int

// Cell kinds. Filled and Layer(n) are transient generation markers and never
// appear in a finished layout.
const (
	Floor CellKind = iota
	Wall
	Door
	PlayerSpawn
	EnemySpawn
	Filled

	// layerBase is the first Layer marker; Layer(n) = layerBase + n - 1.
	layerBase
)

// Layer returns the transient marker for room or corridor n (n >= 1).
func Layer(n int) CellKind {
	if n < 1 {
		panic("layer ids start at 1")
	}
	return layerBase + CellKind(n-1)
}

// IsLayer returns true if the kind is a Layer(n) marker
func (k CellKind) IsLayer() bool {
	return k >= layerBase
}

// LayerID returns n for Layer(n), or 0 for any other kind
func (k CellKind) LayerID() int {
	if !k.IsLayer() {
		return 0
	}
	return int(k-layerBase) + 1
}

// IsTransient reports whether the kind only exists while generating.
func (k CellKind) IsTransient() bool {
	return k == Filled || k.IsLayer()
}

// Passable returns true for every kind a walker can stand on.
func (k CellKind) Passable() bool {
	return k != Wall
}

// String returns the string representation of a cell kind
func (k CellKind) String() string {
	switch k {
	case Floor:
		return "Floor"
	case Wall:
		return "Wall"
	case Door:
		return "Door"
	case PlayerSpawn:
		return "PlayerSpawn"
	case EnemySpawn:
		return "EnemySpawn"
	case Filled:
		return "Filled"
	}
	if k.IsLayer() {
		return fmt.Sprintf("Layer(%d)", k.LayerID())
	}
	return "Unknown"
}

// Coord is a grid position. X grows to the east, Y grows to the south.
type Coord struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Step returns the coordinate one cell away in the given direction
func (c Coord) Step(dir Direction) Coord {
	dx, dy := dir.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the taxicab distance between two coordinates
func (c Coord) Manhattan(o Coord) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// Less orders coordinates row-major (by Y, then X).
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
