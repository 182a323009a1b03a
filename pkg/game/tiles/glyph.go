package tiles

import "dungeonforge/pkg/engine/world"

var wallGlyphs = map[Shape][4]string{
	Isolated: {"▪", "▪", "▪", "▪"},
	DeadEnd:  {"╵", "╶", "╷", "╴"},
	Straight: {"│", "─", "│", "─"},
	Corner:   {"└", "┌", "┐", "┘"},
	Tee:      {"├", "┬", "┤", "┴"},
	Cross:    {"┼", "┼", "┼", "┼"},
}

// Glyph returns a box-drawing rune for the cell at (x, y)
func Glyph(r Reader, x, y int) string {
	switch kind := cellAt(r, x, y); kind {
	case world.Wall:
		t, _ := ClassifyWall(r, x, y)
		return WallGlyph(t)
	case world.Door:
		if o, ok := ClassifyDoor(r, x, y); ok && o == world.Vertical {
			return "╎"
		}
		return "╌"
	case world.PlayerSpawn:
		return "@"
	case world.EnemySpawn:
		return "e"
	default:
		return "·"
	}
}

// WallGlyph returns the box-drawing rune for a classified wall
func WallGlyph(t WallTile) string {
	return wallGlyphs[t.Shape][t.Rotation%4]
}
