package devtools

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/text"
	"dungeonforge/pkg/game/tiles"
)

// Preview colours
var (
	ColorFloor  = color.Style{color.FgDarkGray}
	ColorWall   = color.Style{color.FgGray}
	ColorDoor   = color.Style{color.FgYellow, color.OpBold}
	ColorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	ColorEnemy  = color.Style{color.FgRed, color.OpBold}
)

func styleFor(kind world.CellKind) color.Style {
	switch kind {
	case world.Wall:
		return ColorWall
	case world.Door:
		return ColorDoor
	case world.PlayerSpawn:
		return ColorPlayer
	case world.EnemySpawn:
		return ColorEnemy
	default:
		return ColorFloor
	}
}

// Window returns the cols x rows part of the grid to draw, centred on the
// player spawn and clamped to the grid.
func Window(r tiles.Reader, cols, rows int) world.Rect {
	size := r.Size()
	cols = min(max(cols, 1), size)
	rows = min(max(rows, 1), size)

	centre := world.C(size/2, size/2)
	if spawn, ok := r.PlayerSpawn(); ok {
		centre = spawn
	}
	left := clamp(centre.X-cols/2, 0, size-cols)
	up := clamp(centre.Y-rows/2, 0, size-rows)
	return world.Rect{Left: left, Right: left + cols - 1, Up: up, Down: up + rows - 1}
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// WritePreview draws the window of the grid with box-drawing glyphs, one
// line per row. Colour adds ANSI styling per cell kind.
func WritePreview(w io.Writer, r tiles.Reader, window world.Rect, colour bool) error {
	var sb strings.Builder
	for y := window.Up; y <= window.Down; y++ {
		sb.Reset()
		for x := window.Left; x <= window.Right; x++ {
			glyph := tiles.Glyph(r, x, y)
			if colour {
				glyph = styleFor(r.Get(x, y)).Sprint(glyph)
			}
			sb.WriteString(glyph)
		}
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	if window.Width() < r.Size() || window.Height() < r.Size() {
		_, err := fmt.Fprintln(w, text.Get("PREVIEW_CROPPED", window.Width(), window.Height(), r.Size(), r.Size()))
		return err
	}
	return nil
}

// Legend returns the one-line key to the preview glyphs
func Legend(colour bool) string {
	entries := []struct {
		glyph string
		kind  world.CellKind
		key   string
	}{
		{"·", world.Floor, "LEGEND_FLOOR"},
		{"─", world.Wall, "LEGEND_WALL"},
		{"╌", world.Door, "LEGEND_DOOR"},
		{"@", world.PlayerSpawn, "LEGEND_PLAYER"},
		{"e", world.EnemySpawn, "LEGEND_ENEMY"},
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		glyph := e.glyph
		if colour {
			glyph = styleFor(e.kind).Sprint(glyph)
		}
		parts = append(parts, fmt.Sprintf("%s %s", glyph, text.Get(e.key)))
	}
	return text.Get("LEGEND_TITLE") + ": " + strings.Join(parts, "  ")
}
