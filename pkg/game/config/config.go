// Package config provides YAML-based generation configuration loading and
// validation for the dungeon generator.
package config

import (
	"errors"
	"fmt"

	"dungeonforge/pkg/engine/world"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains every tunable of one generation session.
// A Config is treated as immutable once a session starts.
type Config struct {
	// Size is the grid side length, wall border included.
	Size int `yaml:"size"`

	// MinRoomUsableLength is the smallest interior (wall-free) span of a room.
	// 3 means the smallest room is 3x3 inside, 5x5 with walls.
	MinRoomUsableLength int `yaml:"min_room_usable_length"`

	// WallsPerDoor is how many wall tiles along a new boundary earn one door.
	WallsPerDoor int `yaml:"walls_per_door"`

	// DoorMinDistance is the minimum spacing of two doors on the same wall.
	DoorMinDistance int `yaml:"door_min_distance"`

	// DoorSymmetryChance is the probability of placing a door pair straight
	// across a corridor instead of one door per side.
	DoorSymmetryChance float64 `yaml:"door_symmetry_chance"`

	// CorridorThresholds are ascending span lengths. A split whose corridor
	// spans at most CorridorThresholds[i] gets corridor width i; longer spans
	// get len(CorridorThresholds). Width 0 is a single shared wall.
	CorridorThresholds []int `yaml:"corridor_thresholds"`

	// PartitionRounds is how many division rounds the partitioner runs.
	PartitionRounds int `yaml:"partition_rounds"`

	// Seed drives every random decision; 0 means "pick one at startup".
	Seed int64 `yaml:"seed"`

	Repair  RepairConfig `yaml:"repair"`
	Enemies EnemyConfig  `yaml:"enemies"`
	Retry   RetryConfig  `yaml:"retry"`
}

// RepairConfig tunes the connectivity repair pass.
type RepairConfig struct {
	// DoorRarity is the fraction of connect opportunities turned into doors
	// per round (at least one door is always placed).
	DoorRarity float64 `yaml:"door_rarity"`

	// MaxDoorsPerRound caps the doors inserted in a single round.
	MaxDoorsPerRound int `yaml:"max_doors_per_round"`

	// DoorSpacing is the minimum Euclidean distance between doors inserted
	// in the same round.
	DoorSpacing float64 `yaml:"door_spacing"`
}

// EnemyConfig tunes the enemy spawn density pass.
type EnemyConfig struct {
	Density    float64 `yaml:"density"`     // chance per floor cell
	SafeRadius int     `yaml:"safe_radius"` // Manhattan radius kept clear around the player
}

// RetryConfig tunes the session restart wrapper.
type RetryConfig struct {
	Attempts int `yaml:"attempts"`
}

// Validate rejects configurations that cannot drive a generation session.
func (c *Config) Validate() error {
	if c.Size < world.MinGridSize || c.Size > world.MaxGridSize {
		return fmt.Errorf("%w: size %d must be within %d..%d", ErrInvalidConfig, c.Size, world.MinGridSize, world.MaxGridSize)
	}
	if c.MinRoomUsableLength <= 0 {
		return fmt.Errorf("%w: min_room_usable_length must be positive, got %d", ErrInvalidConfig, c.MinRoomUsableLength)
	}
	if c.WallsPerDoor <= 0 {
		return fmt.Errorf("%w: walls_per_door must be positive, got %d", ErrInvalidConfig, c.WallsPerDoor)
	}
	if c.DoorMinDistance <= 0 {
		return fmt.Errorf("%w: door_min_distance must be positive, got %d", ErrInvalidConfig, c.DoorMinDistance)
	}
	if err := checkProbability("door_symmetry_chance", c.DoorSymmetryChance); err != nil {
		return err
	}
	if len(c.CorridorThresholds) == 0 {
		return fmt.Errorf("%w: corridor_thresholds must not be empty", ErrInvalidConfig)
	}
	for i, t := range c.CorridorThresholds {
		if t <= 0 {
			return fmt.Errorf("%w: corridor_thresholds[%d] must be positive, got %d", ErrInvalidConfig, i, t)
		}
		if i > 0 && t <= c.CorridorThresholds[i-1] {
			return fmt.Errorf("%w: corridor_thresholds must be strictly ascending (%d after %d)", ErrInvalidConfig, t, c.CorridorThresholds[i-1])
		}
	}
	if c.PartitionRounds < 0 {
		return fmt.Errorf("%w: partition_rounds must not be negative, got %d", ErrInvalidConfig, c.PartitionRounds)
	}
	if err := checkProbability("repair.door_rarity", c.Repair.DoorRarity); err != nil {
		return err
	}
	if c.Repair.MaxDoorsPerRound <= 0 {
		return fmt.Errorf("%w: repair.max_doors_per_round must be positive, got %d", ErrInvalidConfig, c.Repair.MaxDoorsPerRound)
	}
	if c.Repair.DoorSpacing < 0 {
		return fmt.Errorf("%w: repair.door_spacing must not be negative, got %g", ErrInvalidConfig, c.Repair.DoorSpacing)
	}
	if err := checkProbability("enemies.density", c.Enemies.Density); err != nil {
		return err
	}
	if c.Enemies.SafeRadius < 0 {
		return fmt.Errorf("%w: enemies.safe_radius must not be negative, got %d", ErrInvalidConfig, c.Enemies.SafeRadius)
	}
	if c.Retry.Attempts <= 0 {
		return fmt.Errorf("%w: retry.attempts must be positive, got %d", ErrInvalidConfig, c.Retry.Attempts)
	}
	return nil
}

// Clone returns a deep copy, so callers can tweak a copy without touching a
// config shared by a running session.
func (c Config) Clone() Config {
	c.CorridorThresholds = append([]int(nil), c.CorridorThresholds...)
	return c
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %s must be within [0,1], got %g", ErrInvalidConfig, name, p)
	}
	return nil
}
