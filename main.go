// dungeonforge generates seeded, fully connected dungeon layouts.
//
// Usage:
//
//	dungeonforge generate            - Generate a layout and print it
//	dungeonforge preview             - Draw a layout in the terminal
//	dungeonforge config              - Print the effective configuration
//	dungeonforge archive save        - Generate a layout and archive it
//	dungeonforge archive list        - List archived layouts
//	dungeonforge archive show <id>   - Draw an archived layout
//
// Global flags:
//
//	--config <path>  - Configuration file (default search: ~/.dungeonforge, ./configs)
//	--seed <value>   - RNG seed (0 = configured seed, else time based)
//	--size <n>       - Override the grid size
//	--verbose        - Log every split and repair round
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"dungeonforge/pkg/game/config"
	"dungeonforge/pkg/game/generator"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagSize    int
	flagVerbose bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dungeonforge",
	Short: "Seeded recursive-split dungeon generator",
	Long: `dungeonforge carves a square grid into rooms and corridors, places doors
on every new boundary, repairs connectivity until every floor cell is
reachable from the player spawn, then scatters enemy spawns.

The same seed and configuration always produce the same layout.

Examples:
  dungeonforge preview --seed 42
  dungeonforge generate --seed 42 --format yaml --out level.yaml
  dungeonforge archive save --size 96
  dungeonforge archive show 3`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a dungeon.yaml configuration file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = configured seed, else random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagSize, "size", 0, "Grid size including the outer wall (0 = configured size)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every split and repair round")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(archiveCmd)
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "dungeonforge",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the configuration and applies the command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagSize != 0 {
		cfg.Size = flagSize
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// generateLayout runs a generation session with retries for the current flags.
func generateLayout(ctx context.Context) (*generator.Layout, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	gen, err := generator.NewSplitGenerator(cfg, newLogger())
	if err != nil {
		return nil, err
	}
	return gen.GenerateContext(ctx, cfg.Seed)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
