package generator

import (
	"math/rand"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
)

// PlaceEnemies turns Floor cells into EnemySpawn with probability
// cfg.Enemies.Density, keeping a Manhattan radius around the player spawn
// clear. It must run after repair so every spawn is reachable.
func PlaceEnemies(grid *world.Grid, rng *rand.Rand, cfg *config.Config) []world.Coord {
	player, hasPlayer := grid.PlayerSpawn()

	var placed []world.Coord
	grid.ForEachCell(func(x, y int, kind world.CellKind) {
		if kind != world.Floor || !grid.IsPlayablePosition(x, y) {
			return
		}
		// roll for every floor cell so the draw sequence only depends on the layout
		roll := rng.Float64()
		c := world.C(x, y)
		if hasPlayer && c.Manhattan(player) <= cfg.Enemies.SafeRadius {
			return
		}
		if roll < cfg.Enemies.Density {
			placed = append(placed, c)
		}
	})

	for _, c := range placed {
		grid.SetAt(c, world.EnemySpawn)
	}
	return placed
}
