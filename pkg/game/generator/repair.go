package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
)

// maxDoorPickTries bounds the rejection sampling of repair doors per round.
const maxDoorPickTries = 1000

var (
	// ErrNoPlayerSpawn is returned when the grid has nowhere to start the fill.
	ErrNoPlayerSpawn = errors.New("grid has no player spawn")
	// ErrRepairStalled means inserted doors did not extend the fill.
	ErrRepairStalled = errors.New("connectivity repair stalled")
	// ErrRepairBound means repair ran past its round safety bound.
	ErrRepairBound = errors.New("connectivity repair exceeded its round bound")
	// ErrUnreachable means unreached cells remain but no wall separates them
	// from the filled region.
	ErrUnreachable = errors.New("unreachable cells with no connect opportunity")
)

// RepairError carries the diagnostic state of a failed repair pass.
type RepairError struct {
	Err       error
	Round     int
	Visited   int // passable cells reached by the fill
	Remaining int // passable cells not reached
	Snapshot  *world.Grid
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("%v (round %d, visited %d, remaining %d)", e.Err, e.Round, e.Visited, e.Remaining)
}

func (e *RepairError) Unwrap() error {
	return e.Err
}

// RepairReport describes a successful repair pass.
type RepairReport struct {
	Rounds  int           // door insertion rounds
	Visited int           // passable cells reachable from the player spawn
	Doors   []world.Coord // doors inserted, in insertion order
}

// Repairer guarantees every passable cell is reachable from the player spawn
// by flood filling and knocking doors through walls that separate filled and
// unfilled floor.
type Repairer struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger *log.Logger
}

// NewRepairer creates a repairer drawing from rng
func NewRepairer(cfg *config.Config, rng *rand.Rand, logger *log.Logger) *Repairer {
	return &Repairer{cfg: cfg, rng: rng, logger: orDiscard(logger)}
}

// Run repairs the grid in place. Layer markers are cleared first; on success
// no transient marker is left behind.
func (r *Repairer) Run(grid *world.Grid) (RepairReport, error) {
	var report RepairReport

	grid.ClearLayers()
	spawn, ok := grid.PlayerSpawn()
	if !ok {
		return report, ErrNoPlayerSpawn
	}

	visited := mapset.New[world.Coord]()
	r.fill(grid, []world.Coord{spawn}, visited)

	bound := grid.Size() * grid.Size()
	for round := 1; ; round++ {
		remaining := unreached(grid, visited)
		if remaining == 0 {
			break
		}
		if round > bound {
			return report, r.fail(ErrRepairBound, grid, round, visited, remaining)
		}

		opportunities := ConnectOpportunities(grid)
		if len(opportunities) == 0 {
			return report, r.fail(ErrUnreachable, grid, round, visited, remaining)
		}

		doors := r.pickDoors(opportunities)
		for _, d := range doors {
			grid.SetAt(d, world.Door)
		}
		gained := r.fill(grid, doors, visited)
		r.logger.Debug("repair round", "round", round, "opportunities", len(opportunities),
			"doors", len(doors), "gained", gained, "remaining", remaining)
		if gained == 0 {
			return report, r.fail(ErrRepairStalled, grid, round, visited, remaining)
		}

		report.Rounds = round
		report.Doors = append(report.Doors, doors...)
	}

	report.Visited = visited.Size()
	grid.ClearTransient()
	return report, nil
}

func (r *Repairer) fail(err error, grid *world.Grid, round int, visited mapset.Set[world.Coord], remaining int) error {
	rerr := &RepairError{
		Err:       err,
		Round:     round,
		Visited:   visited.Size(),
		Remaining: remaining,
		Snapshot:  grid.Clone(),
	}
	r.logger.Error("connectivity repair failed", "err", err, "round", round,
		"visited", rerr.Visited, "remaining", remaining)
	return rerr
}

// fill floods from the seeds through every passable cell, turning Floor into
// Filled. Other passable kinds are visited but kept. Returns how many cells
// were newly visited.
func (r *Repairer) fill(grid *world.Grid, seeds []world.Coord, visited mapset.Set[world.Coord]) int {
	work := stack.New[world.Coord]()
	for _, s := range seeds {
		work.Push(s)
	}

	gained := 0
	for work.Size() > 0 {
		c := work.Pop()
		// out-of-bounds cells read as Wall
		if visited.Has(c) || !grid.At(c).Passable() {
			continue
		}
		visited.Put(c)
		gained++
		if grid.At(c) == world.Floor {
			grid.SetAt(c, world.Filled)
		}
		for _, dir := range world.AllDirections() {
			next := c.Step(dir)
			if !visited.Has(next) && grid.At(next).Passable() {
				work.Push(next)
			}
		}
	}
	return gained
}

// unreached counts passable cells the fill has not visited.
func unreached(grid *world.Grid, visited mapset.Set[world.Coord]) int {
	n := 0
	grid.ForEachCell(func(x, y int, kind world.CellKind) {
		if kind.Passable() && !visited.Has(world.C(x, y)) {
			n++
		}
	})
	return n
}

// pickDoors chooses clamp(count*rarity, 1, MaxDoorsPerRound) opportunities at
// random, keeping them at least DoorSpacing apart.
func (r *Repairer) pickDoors(opportunities []world.Coord) []world.Coord {
	want := int(float64(len(opportunities)) * r.cfg.Repair.DoorRarity)
	if want < 1 {
		want = 1
	}
	if want > r.cfg.Repair.MaxDoorsPerRound {
		want = r.cfg.Repair.MaxDoorsPerRound
	}

	chosen := make([]world.Coord, 0, want)
	taken := mapset.New[world.Coord]()
	for try := 0; try < maxDoorPickTries && len(chosen) < want; try++ {
		c := opportunities[r.rng.Intn(len(opportunities))]
		if taken.Has(c) || !farEnough(c, chosen, r.cfg.Repair.DoorSpacing) {
			continue
		}
		taken.Put(c)
		chosen = append(chosen, c)
	}
	return chosen
}

func farEnough(c world.Coord, chosen []world.Coord, spacing float64) bool {
	for _, o := range chosen {
		dx, dy := float64(c.X-o.X), float64(c.Y-o.Y)
		if math.Hypot(dx, dy) < spacing {
			return false
		}
	}
	return true
}

// ConnectOpportunities returns, in row-major order, every interior Wall cell
// flanked by Wall on one axis and by a filled cell and an unfilled Floor cell
// on the other.
func ConnectOpportunities(grid *world.Grid) []world.Coord {
	var found []world.Coord
	grid.ForEachCell(func(x, y int, kind world.CellKind) {
		if kind == world.Wall && IsConnectOpportunity(grid, world.C(x, y)) {
			found = append(found, world.C(x, y))
		}
	})
	return found
}

// IsConnectOpportunity reports whether turning the wall at c into a door
// would join the filled region to unfilled floor.
func IsConnectOpportunity(grid *world.Grid, c world.Coord) bool {
	if grid.At(c) != world.Wall || !grid.IsPlayablePosition(c.X, c.Y) {
		return false
	}
	n, s := grid.At(c.Step(world.North)), grid.At(c.Step(world.South))
	e, w := grid.At(c.Step(world.East)), grid.At(c.Step(world.West))

	if n == world.Wall && s == world.Wall && bridges(e, w) {
		return true
	}
	return e == world.Wall && w == world.Wall && bridges(n, s)
}

func bridges(a, b world.CellKind) bool {
	return (isFilled(a) && b == world.Floor) || (isFilled(b) && a == world.Floor)
}

func isFilled(k world.CellKind) bool {
	return k == world.Filled || k == world.PlayerSpawn
}
