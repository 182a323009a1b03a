// Package tiles is the boundary between a finished layout and whatever draws
// it. Renderers only see the Reader interface and the classifications here.
package tiles

import (
	"dungeonforge/pkg/engine/world"
)

// Reader is the narrow read view of a finished layout.
type Reader interface {
	Size() int
	Get(x, y int) world.CellKind
	PlayerSpawn() (world.Coord, bool)
	EnemySpawns() []world.Coord
}

var _ Reader = (*world.Grid)(nil)

// Shape is the wall piece needed for a wall cell.
type Shape int

// Wall shapes by number and arrangement of wall neighbours
const (
	Isolated Shape = iota // no wall neighbours
	DeadEnd               // one
	Straight              // two, opposite
	Corner                // two, adjacent
	Tee                   // three
	Cross                 // four
)

func (s Shape) String() string {
	switch s {
	case Isolated:
		return "isolated"
	case DeadEnd:
		return "dead-end"
	case Straight:
		return "straight"
	case Corner:
		return "corner"
	case Tee:
		return "tee"
	case Cross:
		return "cross"
	default:
		return "unknown"
	}
}

// WallTile is a wall shape plus the clockwise quarter turns applied to its
// canonical piece. Canonical pieces: DeadEnd joins north, Straight runs
// north-south, Corner joins north and east, Tee is open to the west.
type WallTile struct {
	Shape    Shape
	Rotation int // 0..3
}

// Tile is the classification of one non-floor cell.
type Tile struct {
	Pos  world.Coord
	Kind world.CellKind
	Wall WallTile          // set for Wall cells
	Door world.Orientation // set for Door cells
}

// wallMask reports which of N, E, S, W hold a wall, indexed by Direction.
func wallMask(r Reader, x, y int) [4]bool {
	var mask [4]bool
	for _, dir := range world.AllDirections() {
		dx, dy := dir.Delta()
		mask[dir] = cellAt(r, x+dx, y+dy) == world.Wall
	}
	return mask
}

// cellAt reads r, treating anything outside the grid as floor so the border
// ring closes on itself.
func cellAt(r Reader, x, y int) world.CellKind {
	if x < 0 || y < 0 || x >= r.Size() || y >= r.Size() {
		return world.Floor
	}
	return r.Get(x, y)
}

// ClassifyWall returns the wall piece for the cell at (x, y). Returns false
// if the cell is not a wall.
func ClassifyWall(r Reader, x, y int) (WallTile, bool) {
	if cellAt(r, x, y) != world.Wall {
		return WallTile{}, false
	}
	mask := wallMask(r, x, y)

	count := 0
	for _, m := range mask {
		if m {
			count++
		}
	}

	switch count {
	case 0:
		return WallTile{Shape: Isolated}, true
	case 1:
		for d, m := range mask {
			if m {
				return WallTile{Shape: DeadEnd, Rotation: d}, true
			}
		}
	case 2:
		if mask[world.North] && mask[world.South] {
			return WallTile{Shape: Straight}, true
		}
		if mask[world.East] && mask[world.West] {
			return WallTile{Shape: Straight, Rotation: 1}, true
		}
		for d := 0; d < 4; d++ {
			if mask[d] && mask[(d+1)%4] {
				return WallTile{Shape: Corner, Rotation: d}, true
			}
		}
	case 3:
		for d, m := range mask {
			if !m {
				// the canonical tee is open to the west
				return WallTile{Shape: Tee, Rotation: (d + 1) % 4}, true
			}
		}
	}
	return WallTile{Shape: Cross}, true
}

// ClassifyDoor returns the run of wall the door at (x, y) sits in: walls to
// the west and east make a horizontal door, walls to the north and south a
// vertical one. Returns false if the cell is not a door or has no such run.
func ClassifyDoor(r Reader, x, y int) (world.Orientation, bool) {
	if cellAt(r, x, y) != world.Door {
		return world.Horizontal, false
	}
	solid := func(x, y int) bool {
		k := cellAt(r, x, y)
		return k == world.Wall || k == world.Door
	}
	if solid(x-1, y) && solid(x+1, y) {
		return world.Horizontal, true
	}
	if solid(x, y-1) && solid(x, y+1) {
		return world.Vertical, true
	}
	return world.Horizontal, false
}

// Materialize classifies every wall, door and spawn cell in row-major order.
func Materialize(r Reader) []Tile {
	var tiles []Tile
	size := r.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			kind := r.Get(x, y)
			t := Tile{Pos: world.C(x, y), Kind: kind}
			switch kind {
			case world.Wall:
				t.Wall, _ = ClassifyWall(r, x, y)
			case world.Door:
				t.Door, _ = ClassifyDoor(r, x, y)
			case world.PlayerSpawn, world.EnemySpawn:
			default:
				continue
			}
			tiles = append(tiles, t)
		}
	}
	return tiles
}
