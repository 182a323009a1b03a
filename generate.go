package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"dungeonforge/pkg/engine/terminal"
	"dungeonforge/pkg/game/devtools"
	"dungeonforge/pkg/game/generator"
	"dungeonforge/pkg/game/layoutio"
	"dungeonforge/pkg/game/text"
	"dungeonforge/pkg/game/tiles"
)

var (
	flagFormat  string
	flagOut     string
	flagNoColor bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a layout and write it out",
	Long: `Generate a layout and write it to stdout or a file.

Formats:
  rle   - run-length encoded rows (default)
  yaml  - layout document with rooms, doors and stats
  dump  - human readable debug dump

Examples:
  dungeonforge generate --seed 7
  dungeonforge generate --format dump --out map.txt`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Draw a layout in the terminal",
	Long: `Generate a layout and draw it with box-drawing glyphs, followed by a
legend and a stats panel. Layouts larger than the terminal are cropped
around the player spawn.`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	generateCmd.Flags().StringVarP(&flagFormat, "format", "f", "rle", "Output format: rle, yaml or dump")
	generateCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: stdout)")
	previewCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colours")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	layout, err := generateLayout(cmd.Context())
	if err != nil {
		return err
	}

	var data []byte
	switch flagFormat {
	case "rle":
		data, err = layoutio.EncodeRLE(layout.Grid)
	case "yaml":
		data, err = layoutio.MarshalDocument(layout)
	case "dump":
		if flagOut != "" {
			path, err := devtools.DumpLayoutToFile(layout, flagOut)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), text.Get("WROTE_FILE", path))
			return nil
		}
		var buf bytes.Buffer
		err = devtools.WriteLayoutDump(&buf, layout)
		data = buf.Bytes()
	default:
		return fmt.Errorf("unknown format %q (want rle, yaml or dump)", flagFormat)
	}
	if err != nil {
		return err
	}

	if flagOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flagOut, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), text.Get("WROTE_FILE", flagOut))
	return nil
}

func runPreview(cmd *cobra.Command, args []string) error {
	layout, err := generateLayout(cmd.Context())
	if err != nil {
		return err
	}
	panel := statsPanel(layout)
	return drawGrid(cmd, layout.Grid, panel)
}

// drawGrid writes the cropped map, the legend and an optional panel below it.
func drawGrid(cmd *cobra.Command, grid tiles.Reader, panel string) error {
	colour := !flagNoColor && terminal.IsTerminal()
	// map + crop note + legend + panel
	reserved := 2 + lipgloss.Height(panel)
	cols, rows := terminal.Fit(grid.Size(), reserved)

	out := cmd.OutOrStdout()
	if err := devtools.WritePreview(out, grid, devtools.Window(grid, cols, rows), colour); err != nil {
		return err
	}
	fmt.Fprintln(out, devtools.Legend(colour))
	if panel != "" {
		fmt.Fprintln(out, panel)
	}
	return nil
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

var panelTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))

func statsPanel(l *generator.Layout) string {
	s := l.Stats
	size := l.Grid.Size()
	lines := []string{
		panelTitle.Render(text.Get("STATS_TITLE", l.Seed)),
		statLine("STATS_SIZE", fmt.Sprintf("%d×%d", size, size)),
		statLine("STATS_ROOMS", fmt.Sprint(s.Rooms)),
		statLine("STATS_CORRIDORS", fmt.Sprint(s.Corridors)),
		statLine("STATS_DOORS", fmt.Sprint(s.Doors)),
		statLine("STATS_REPAIR_DOORS", fmt.Sprint(s.RepairDoors)),
		statLine("STATS_ENEMIES", fmt.Sprint(s.Enemies)),
		statLine("STATS_ATTEMPTS", fmt.Sprint(s.Attempts)),
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func statLine(key, value string) string {
	return fmt.Sprintf("%-14s %s", text.Get(key), value)
}
