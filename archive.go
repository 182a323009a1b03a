package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dungeonforge/pkg/game/storage"
	"dungeonforge/pkg/game/text"
)

var (
	flagDBPath     string
	flagListLimit  int
	flagListBySeed int64
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Save and browse generated layouts",
	Long: `Keep generated layouts in a local SQLite archive.

Examples:
  dungeonforge archive save --seed 42
  dungeonforge archive list --limit 5
  dungeonforge archive show 3`,
}

var archiveSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Generate a layout and archive it",
	Args:  cobra.NoArgs,
	RunE:  runArchiveSave,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived layouts, newest first",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Draw an archived layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

func init() {
	archiveCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dungeonforge/layouts.db", "Path to the layout archive")
	archiveListCmd.Flags().IntVar(&flagListLimit, "limit", 20, "Maximum number of layouts to list")
	archiveListCmd.Flags().Int64Var(&flagListBySeed, "by-seed", 0, "Only list layouts generated from this seed")
	archiveShowCmd.Flags().BoolVar(&flagNoColor, "no-color", false, "Disable ANSI colours")

	archiveCmd.AddCommand(archiveSaveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
}

func runArchiveSave(cmd *cobra.Command, args []string) error {
	layout, err := generateLayout(cmd.Context())
	if err != nil {
		return err
	}
	rec, err := storage.NewRecord(layout)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening layout archive: %w", err)
	}
	defer store.Close()

	id, err := store.SaveLayout(rec)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text.Get("ARCHIVE_SAVED", id, layout.Seed))
	return nil
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening layout archive: %w", err)
	}
	defer store.Close()

	var records []storage.LayoutRecord
	if flagListBySeed != 0 {
		records, err = store.LayoutsBySeed(flagListBySeed)
	} else {
		records, err = store.Recent(flagListLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintln(out, text.Get("ARCHIVE_EMPTY"))
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-5s  %-20s  %-5s  %-5s  %-6s  %-7s  %s\n", "ID", "Seed", "Size", "Rooms", "Doors", "Enemies", "Date")
	fmt.Fprintf(out, "  %-5s  %-20s  %-5s  %-5s  %-6s  %-7s  %s\n", "--", "----", "----", "-----", "-----", "-------", "----")

	for _, rec := range records {
		dateStr := rec.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(out, "  %-5d  %-20d  %-5d  %-5d  %-6d  %-7d  %s\n",
			rec.ID, rec.Seed, rec.Size, rec.Rooms, rec.Doors+rec.RepairDoors, rec.Enemies, dateStr)
	}

	if total, err := store.Count(); err == nil {
		fmt.Fprintf(out, "\n%d/%d\n", len(records), total)
	}
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid layout id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening layout archive: %w", err)
	}
	defer store.Close()

	rec, err := store.Layout(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%s", text.Get("ARCHIVE_NOT_FOUND", id))
	}
	grid, err := rec.Grid()
	if err != nil {
		return err
	}
	return drawGrid(cmd, grid, text.Get("STATS_TITLE", rec.Seed))
}
