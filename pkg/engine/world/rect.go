package world

import "fmt"

// Rect is an axis-aligned rectangle with inclusive bounds. For rooms the
// bounds are the wall perimeter; the interior is the strict inside.
type Rect struct {
	Left  int `yaml:"left"`
	Right int `yaml:"right"`
	Up    int `yaml:"up"`
	Down  int `yaml:"down"`
}

// Width returns the number of columns covered, walls included
func (r Rect) Width() int {
	return r.Right - r.Left + 1
}

// Height returns the number of rows covered, walls included
func (r Rect) Height() int {
	return r.Down - r.Up + 1
}

// Area returns Width * Height
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Contains reports whether c lies inside the bounds, perimeter included.
func (r Rect) Contains(c Coord) bool {
	return c.X >= r.Left && c.X <= r.Right && c.Y >= r.Up && c.Y <= r.Down
}

// ContainsInterior reports whether c lies strictly inside the perimeter.
func (r Rect) ContainsInterior(c Coord) bool {
	return c.X > r.Left && c.X < r.Right && c.Y > r.Up && c.Y < r.Down
}

// OnBoundary reports whether c lies on the perimeter.
func (r Rect) OnBoundary(c Coord) bool {
	return r.Contains(c) && !r.ContainsInterior(c)
}

// IsCorner reports whether c is one of the four perimeter corners
func (r Rect) IsCorner(c Coord) bool {
	return (c.X == r.Left || c.X == r.Right) && (c.Y == r.Up || c.Y == r.Down)
}

// Center returns the middle cell, rounded towards the top-left
func (r Rect) Center() Coord {
	return Coord{X: (r.Left + r.Right) / 2, Y: (r.Up + r.Down) / 2}
}

// Valid reports whether the rectangle is non-degenerate on both axes
func (r Rect) Valid() bool {
	return r.Right > r.Left && r.Down > r.Up
}

func (r Rect) String() string {
	return fmt.Sprintf("[x %d..%d, y %d..%d]", r.Left, r.Right, r.Up, r.Down)
}
