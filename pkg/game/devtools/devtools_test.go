package devtools

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
	"dungeonforge/pkg/game/generator"
)

func testLayout(t *testing.T) *generator.Layout {
	t.Helper()
	cfg := config.Default()
	cfg.Size = 24
	gen, err := generator.NewSplitGenerator(cfg, nil)
	if err != nil {
		t.Fatalf("NewSplitGenerator: %v", err)
	}
	layout, err := gen.Generate(6)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return layout
}

func TestWriteLayoutDump_Sections(t *testing.T) {
	layout := testLayout(t)
	var buf bytes.Buffer
	if err := WriteLayoutDump(&buf, layout); err != nil {
		t.Fatalf("WriteLayoutDump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"--- Metadata ---", "seed: 6", "grid_size: 24", "--- Map ---", "Rooms:", "Doors:", "=== END MAP DUMP ==="} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q", want)
		}
	}
	spawnLine := fmt.Sprintf("player_spawn: %d,%d", layout.PlayerSpawn.X, layout.PlayerSpawn.Y)
	if !strings.Contains(out, spawnLine) {
		t.Errorf("dump is missing %q", spawnLine)
	}
	if n := strings.Count(out, "source: split"); n != len(layout.Doors) {
		t.Errorf("dump lists %d split doors, want %d", n, len(layout.Doors))
	}
}

func TestWriteLayoutDump_NilLayout(t *testing.T) {
	if err := WriteLayoutDump(&bytes.Buffer{}, nil); err == nil {
		t.Error("WriteLayoutDump(nil) returned no error")
	}
}

func TestDumpLayoutToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	got, err := DumpLayoutToFile(testLayout(t), path)
	if err != nil {
		t.Fatalf("DumpLayoutToFile: %v", err)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.HasPrefix(string(data), "=== MAP DUMP DEBUG") {
		t.Error("dump file has no header")
	}
}

func TestWindow_CentredAndClamped(t *testing.T) {
	g := world.NewGrid(40)
	g.StampBorder()
	g.SetPlayerSpawn(world.C(20, 20))
	if got := Window(g, 10, 6); got != (world.Rect{Left: 15, Right: 24, Up: 17, Down: 22}) {
		t.Errorf("Window centred = %v", got)
	}

	g.SetPlayerSpawn(world.C(1, 38))
	if got := Window(g, 10, 6); got != (world.Rect{Left: 0, Right: 9, Up: 34, Down: 39}) {
		t.Errorf("Window clamped = %v", got)
	}

	if got := Window(g, 100, 100); got != (world.Rect{Left: 0, Right: 39, Up: 0, Down: 39}) {
		t.Errorf("Window larger than grid = %v", got)
	}
}

func TestWritePreview(t *testing.T) {
	layout := testLayout(t)
	grid := layout.Grid

	var buf bytes.Buffer
	full := Window(grid, grid.Size(), grid.Size())
	if err := WritePreview(&buf, grid, full, false); err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != grid.Size() {
		t.Fatalf("preview has %d lines, want %d", len(lines), grid.Size())
	}
	if !strings.HasPrefix(lines[0], "┌") {
		t.Errorf("top-left glyph = %q, want a corner", []rune(lines[0])[0])
	}
	if strings.Count(buf.String(), "@") != 1 {
		t.Error("preview does not show exactly one player")
	}

	buf.Reset()
	if err := WritePreview(&buf, grid, Window(grid, 8, 8), true); err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	plain := color.ClearCode(buf.String())
	if !strings.Contains(plain, "8×8 of 24×24") {
		t.Errorf("cropped preview lacks the crop note: %q", plain)
	}
}

func TestLegend(t *testing.T) {
	got := color.ClearCode(Legend(true))
	for _, want := range []string{"Legend", "door", "player spawn", "enemy spawn"} {
		if !strings.Contains(got, want) {
			t.Errorf("legend %q is missing %q", got, want)
		}
	}
}
