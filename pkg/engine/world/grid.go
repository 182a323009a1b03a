package world

import "fmt"

// Grid size limits. MaxGridSize leaves headroom for the 1-cell wall border
// around a 256-cell logical map.
const (
	MinGridSize = 7
	MaxGridSize = 258
)

// Grid is a square matrix of cell kinds with encapsulated storage.
// The outermost ring is the wall border; everything inside is playable.
type Grid struct {
	size  int
	cells []CellKind

	playerSpawn    Coord
	hasPlayerSpawn bool
}

// NewGrid creates a size x size grid where every cell is Floor
func NewGrid(size int) *Grid {
	if size <= 0 || size > MaxGridSize {
		panic(fmt.Sprintf("grid size %d out of range (1..%d)", size, MaxGridSize))
	}
	return &Grid{
		size:  size,
		cells: make([]CellKind, size*size),
	}
}

// Size returns the side length of the grid, border included
func (g *Grid) Size() int {
	return g.size
}

// IsValidPosition checks if a position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// IsPlayablePosition checks if a position is within the playable area (not on the perimeter)
// This ensures a 1-cell wall border around the entire map
func (g *Grid) IsPlayablePosition(x, y int) bool {
	return x >= 1 && x < g.size-1 && y >= 1 && y < g.size-1
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid) IsOnPerimeter(x, y int) bool {
	return g.IsValidPosition(x, y) && !g.IsPlayablePosition(x, y)
}

// Get returns the kind at the given position. Anything outside the grid
// reads as Wall.
func (g *Grid) Get(x, y int) CellKind {
	if !g.IsValidPosition(x, y) {
		return Wall
	}
	return g.cells[y*g.size+x]
}

// At is Get for a Coord
func (g *Grid) At(c Coord) CellKind {
	return g.Get(c.X, c.Y)
}

// Set stores a kind at the given position. Returns false if out of bounds.
// Setting PlayerSpawn moves the recorded player spawn.
func (g *Grid) Set(x, y int, kind CellKind) bool {
	if !g.IsValidPosition(x, y) {
		return false
	}
	idx := y*g.size + x
	if g.cells[idx] == PlayerSpawn && kind != PlayerSpawn {
		g.hasPlayerSpawn = false
	}
	if kind == PlayerSpawn {
		if g.hasPlayerSpawn && g.playerSpawn != (Coord{X: x, Y: y}) {
			g.cells[g.playerSpawn.Y*g.size+g.playerSpawn.X] = Floor
		}
		g.playerSpawn = Coord{X: x, Y: y}
		g.hasPlayerSpawn = true
	}
	g.cells[idx] = kind
	return true
}

// SetAt is Set for a Coord
func (g *Grid) SetAt(c Coord, kind CellKind) bool {
	return g.Set(c.X, c.Y, kind)
}

// SetPlayerSpawn marks the cell as the single player spawn. Returns false if
// the position is not playable.
func (g *Grid) SetPlayerSpawn(c Coord) bool {
	if !g.IsPlayablePosition(c.X, c.Y) {
		return false
	}
	return g.SetAt(c, PlayerSpawn)
}

// PlayerSpawn returns the player spawn cell, if one has been set
func (g *Grid) PlayerSpawn() (Coord, bool) {
	return g.playerSpawn, g.hasPlayerSpawn
}

// EnemySpawns returns every EnemySpawn cell in row-major order
func (g *Grid) EnemySpawns() []Coord {
	var spawns []Coord
	g.ForEachCell(func(x, y int, kind CellKind) {
		if kind == EnemySpawn {
			spawns = append(spawns, Coord{X: x, Y: y})
		}
	})
	return spawns
}

// StampBorder writes Wall on the four outer rows/columns
func (g *Grid) StampBorder() {
	last := g.size - 1
	for i := 0; i < g.size; i++ {
		g.Set(i, 0, Wall)
		g.Set(i, last, Wall)
		g.Set(0, i, Wall)
		g.Set(last, i, Wall)
	}
}

// FillRect writes kind on every cell of r, perimeter included
func (g *Grid) FillRect(r Rect, kind CellKind) {
	for y := r.Up; y <= r.Down; y++ {
		for x := r.Left; x <= r.Right; x++ {
			g.Set(x, y, kind)
		}
	}
}

// StrokeRect writes kind on the perimeter of r only
func (g *Grid) StrokeRect(r Rect, kind CellKind) {
	for x := r.Left; x <= r.Right; x++ {
		g.Set(x, r.Up, kind)
		g.Set(x, r.Down, kind)
	}
	for y := r.Up; y <= r.Down; y++ {
		g.Set(r.Left, y, kind)
		g.Set(r.Right, y, kind)
	}
}

// ClearLayers turns every Layer(n) marker back into Floor
func (g *Grid) ClearLayers() {
	for i, k := range g.cells {
		if k.IsLayer() {
			g.cells[i] = Floor
		}
	}
}

// ClearTransient turns every Layer(n) and Filled marker back into Floor
func (g *Grid) ClearTransient() {
	for i, k := range g.cells {
		if k.IsTransient() {
			g.cells[i] = Floor
		}
	}
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(x, y int, kind CellKind)) {
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			fn(x, y, g.cells[y*g.size+x])
		}
	}
}

// Count returns how many cells hold the given kind
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, k := range g.cells {
		if k == kind {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := &Grid{
		size:           g.size,
		cells:          make([]CellKind, len(g.cells)),
		playerSpawn:    g.playerSpawn,
		hasPlayerSpawn: g.hasPlayerSpawn,
	}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same size and contents
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Validate checks the grid for common issues and returns an error description or empty string if valid
func (g *Grid) Validate() string {
	if g.size < MinGridSize {
		return fmt.Sprintf("grid size %d is below the minimum of %d", g.size, MinGridSize)
	}

	if !g.hasPlayerSpawn {
		return "grid has no player spawn"
	}

	if !g.IsPlayablePosition(g.playerSpawn.X, g.playerSpawn.Y) {
		return "player spawn is on the border"
	}

	if n := g.Count(PlayerSpawn); n != 1 {
		return fmt.Sprintf("grid has %d player spawn cells, want 1", n)
	}

	for i := 0; i < g.size; i++ {
		if !g.borderIsWall(i) {
			return "border ring is not entirely wall"
		}
	}

	for _, k := range g.cells {
		if k.IsTransient() {
			return fmt.Sprintf("grid still holds transient marker %s", k)
		}
	}

	return ""
}

func (g *Grid) borderIsWall(i int) bool {
	last := g.size - 1
	return g.Get(i, 0) == Wall && g.Get(i, last) == Wall &&
		g.Get(0, i) == Wall && g.Get(last, i) == Wall
}
