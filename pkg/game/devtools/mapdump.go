// Package devtools provides developer tools for inspecting generated layouts.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dungeonforge/pkg/game/generator"
	"dungeonforge/pkg/game/layoutio"
)

const mapDumpFilename = "map.txt"

// WriteLayoutDump writes a full debug dump of a layout: metadata, legend,
// map, and per-room/corridor/door lists.
// Format is human-readable (sections, key: value, consistent structure).
func WriteLayoutDump(w io.Writer, l *generator.Layout) error {
	if l == nil || l.Grid == nil {
		return fmt.Errorf("no layout")
	}
	rows, err := layoutio.EncodeRows(l.Grid)
	if err != nil {
		return err
	}
	grid := l.Grid

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAP DUMP DEBUG (layout, rooms, doors) ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "seed: %d\n", l.Seed)
	fmt.Fprintf(w, "grid_size: %d\n", grid.Size())
	fmt.Fprintf(w, "coordinate_system: x,y (0-based, x=horizontal, y=vertical)\n")
	fmt.Fprintf(w, "player_spawn: %d,%d\n", l.PlayerSpawn.X, l.PlayerSpawn.Y)
	fmt.Fprintf(w, "attempts: %d\n", l.Stats.Attempts)
	fmt.Fprintf(w, "splits: %d\n", l.Stats.Splits)
	fmt.Fprintf(w, "exhausted_splits: %d\n", l.Stats.ExhaustedSplits)
	fmt.Fprintf(w, "repair_rounds: %d\n", l.Stats.RepairRounds)
	fmt.Fprintf(w, "reachable_cells: %d\n", l.Stats.Reachable)
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend (cell symbols) ---")
	fmt.Fprintln(w, ". = floor  # = wall  + = door  @ = player spawn  e = enemy spawn")
	fmt.Fprintln(w, "")

	// --- Map ---
	fmt.Fprintln(w, "--- Map ---")
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			g, _ := layoutio.GlyphOf(grid.Get(x, y))
			fmt.Fprintf(w, "%c", g)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "")

	// --- Map (run-length rows) ---
	fmt.Fprintln(w, "--- Map (run-length rows) ---")
	for y, row := range rows {
		fmt.Fprintf(w, "  row: %d runs: %s\n", y, row)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Rooms:")
	for i, r := range l.Rooms {
		fmt.Fprintf(w, "  index: %d left: %d right: %d up: %d down: %d interior: %dx%d\n",
			i, r.Left, r.Right, r.Up, r.Down, r.Width()-2, r.Height()-2)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Corridors:")
	if len(l.Corridors) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for i, c := range l.Corridors {
		fmt.Fprintf(w, "  index: %d left: %d right: %d up: %d down: %d\n", i, c.Left, c.Right, c.Up, c.Down)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Doors:")
	for _, d := range l.Doors {
		fmt.Fprintf(w, "  x: %d y: %d source: split\n", d.X, d.Y)
	}
	for _, d := range l.RepairDoors {
		fmt.Fprintf(w, "  x: %d y: %d source: repair\n", d.X, d.Y)
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "Enemy spawns:")
	if len(l.Enemies) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, e := range l.Enemies {
		fmt.Fprintf(w, "  x: %d y: %d distance_to_player: %d\n", e.X, e.Y, e.Manhattan(l.PlayerSpawn))
	}
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "=== END MAP DUMP ===")
	return nil
}

// DumpLayoutToFile writes the debug dump to path (map.txt when empty) and
// returns the absolute path written.
func DumpLayoutToFile(l *generator.Layout, path string) (string, error) {
	if path == "" {
		path = mapDumpFilename
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteLayoutDump(f, l); err != nil {
		return absPath, err
	}
	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
