package config

import (
	_ "embed"
)

//go:embed defaults/dungeon.yaml
var defaultDungeonYAML []byte

// Default returns the built-in generation configuration.
func Default() Config {
	return Config{
		Size:                64,
		MinRoomUsableLength: 3,
		WallsPerDoor:        7,
		DoorMinDistance:     3,
		DoorSymmetryChance:  0.4,
		CorridorThresholds:  []int{20, 35, 50},
		PartitionRounds:     40,
		Seed:                0,
		Repair: RepairConfig{
			DoorRarity:       0.04,
			MaxDoorsPerRound: 8,
			DoorSpacing:      5,
		},
		Enemies: EnemyConfig{
			Density:    0.002,
			SafeRadius: 6,
		},
		Retry: RetryConfig{
			Attempts: 3,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultDungeonYAML
}
