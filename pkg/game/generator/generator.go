package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
)

// ErrInvalidLayout is returned when a finished grid fails validation.
var ErrInvalidLayout = errors.New("generated layout is invalid")

// GridGenerator is an interface for map generation algorithms
type GridGenerator interface {
	Generate(seed int64) (*Layout, error)
	Name() string
}

// Stats summarises one generation session.
type Stats struct {
	Attempts        int `yaml:"attempts"`
	Splits          int `yaml:"splits"`
	Rooms           int `yaml:"rooms"`
	Corridors       int `yaml:"corridors"`
	Doors           int `yaml:"doors"`
	ExhaustedSplits int `yaml:"exhausted_splits"`
	RepairRounds    int `yaml:"repair_rounds"`
	RepairDoors     int `yaml:"repair_doors"`
	Reachable       int `yaml:"reachable"`
	Enemies         int `yaml:"enemies"`
}

// Layout is a finished, validated dungeon.
type Layout struct {
	Seed        int64
	Grid        *world.Grid
	Rooms       []world.Rect
	Corridors   []world.Rect
	Doors       []world.Coord // doors placed while splitting
	RepairDoors []world.Coord // doors inserted by connectivity repair
	PlayerSpawn world.Coord
	Enemies     []world.Coord
	Stats       Stats
}

// SplitGenerator builds layouts by recursive splitting followed by
// connectivity repair and enemy placement.
type SplitGenerator struct {
	cfg    config.Config
	logger *log.Logger
}

// NewSplitGenerator validates cfg and creates a generator. A nil logger
// discards output.
func NewSplitGenerator(cfg config.Config, logger *log.Logger) (*SplitGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SplitGenerator{cfg: cfg.Clone(), logger: orDiscard(logger)}, nil
}

// Name returns the generator name
func (g *SplitGenerator) Name() string {
	return "Recursive Split"
}

// Config returns a copy of the generator configuration
func (g *SplitGenerator) Config() config.Config {
	return g.cfg.Clone()
}

// Generate runs a single session for seed. The same seed and configuration
// always produce the same layout.
func (g *SplitGenerator) Generate(seed int64) (*Layout, error) {
	return g.generate(context.Background(), seed)
}

// GenerateContext runs up to Retry.Attempts sessions, deriving a new seed
// from the previous one after each failure. Cancellation is checked between
// sessions and between phases.
func (g *SplitGenerator) GenerateContext(ctx context.Context, seed int64) (*Layout, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.Retry.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		layout, err := g.generate(ctx, seed)
		if err == nil {
			layout.Stats.Attempts = attempt
			return layout, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		next := NextSeed(seed)
		g.logger.Warn("generation failed, retrying", "attempt", attempt, "seed", seed, "next", next, "err", err)
		seed = next
	}
	return nil, fmt.Errorf("generation failed after %d attempts: %w", g.cfg.Retry.Attempts, lastErr)
}

// NextSeed derives the seed of the next retry attempt.
func NextSeed(seed int64) int64 {
	return int64(uint64(seed)*6364136223846793005 + 1442695040888963407)
}

func (g *SplitGenerator) generate(ctx context.Context, seed int64) (*Layout, error) {
	cfg := &g.cfg
	rng := rand.New(rand.NewSource(seed))

	part := NewPartitioner(cfg, rng, g.logger)
	part.Run()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid := world.NewGrid(cfg.Size)
	spawn := part.Stamp(grid)

	repair, err := NewRepairer(cfg, rng, g.logger).Run(grid)
	if err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enemies := PlaceEnemies(grid, rng, cfg)

	if msg := grid.Validate(); msg != "" {
		return nil, fmt.Errorf("%w: seed %d: %s", ErrInvalidLayout, seed, msg)
	}

	layout := &Layout{
		Seed:        seed,
		Grid:        grid,
		Corridors:   append([]world.Rect(nil), part.Corridors()...),
		Doors:       part.DoorCells(),
		RepairDoors: repair.Doors,
		PlayerSpawn: spawn,
		Enemies:     enemies,
	}
	for _, room := range part.Rooms() {
		layout.Rooms = append(layout.Rooms, room.Rect)
	}
	layout.Stats = Stats{
		Attempts:        1,
		Splits:          part.Splits(),
		Rooms:           len(layout.Rooms),
		Corridors:       len(layout.Corridors),
		Doors:           len(layout.Doors),
		ExhaustedSplits: part.exhausted,
		RepairRounds:    repair.Rounds,
		RepairDoors:     len(repair.Doors),
		Reachable:       repair.Visited,
		Enemies:         len(enemies),
	}

	g.logger.Info("layout generated", "seed", seed, "size", cfg.Size, "rooms", layout.Stats.Rooms,
		"doors", layout.Stats.Doors, "repair_doors", layout.Stats.RepairDoors, "enemies", layout.Stats.Enemies)
	return layout, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
