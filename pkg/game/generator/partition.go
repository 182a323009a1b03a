package generator

import (
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
)

// Partitioner drives repeated splitting of the room collection.
type Partitioner struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger *log.Logger

	rooms     []*RoomNode
	corridors []world.Rect
	caps      []world.Rect
	splits    int
	exhausted int // splits whose door quota could not be met
}

// NewPartitioner creates a partitioner whose single root room covers the
// grid inside the border ring.
func NewPartitioner(cfg *config.Config, rng *rand.Rand, logger *log.Logger) *Partitioner {
	last := cfg.Size - 2
	return &Partitioner{
		cfg:    cfg,
		rng:    rng,
		logger: orDiscard(logger),
		rooms:  []*RoomNode{NewRoomNode(cfg, 1, last, 1, last)},
	}
}

// Rooms returns the current room collection
func (p *Partitioner) Rooms() []*RoomNode {
	return p.rooms
}

// Corridors returns every corridor strip carved so far
func (p *Partitioner) Corridors() []world.Rect {
	return p.corridors
}

// Splits returns how many successful splits have been applied
func (p *Partitioner) Splits() int {
	return p.splits
}

// Round performs one division round: the largest room that can be split is
// replaced by its two children. Returns false if no room could be split.
func (p *Partitioner) Round() bool {
	order := make([]int, len(p.rooms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.rooms[order[a]].Area() > p.rooms[order[b]].Area()
	})

	for _, idx := range order {
		res, ok := p.rooms[idx].Split(p.rng)
		if !ok {
			continue
		}
		p.apply(idx, res)
		return true
	}
	return false
}

// apply swaps the parent at idx for its children in a fresh collection.
func (p *Partitioner) apply(idx int, res *SplitResult) {
	next := make([]*RoomNode, 0, len(p.rooms)+1)
	next = append(next, p.rooms[:idx]...)
	next = append(next, res.First, res.Second)
	next = append(next, p.rooms[idx+1:]...)
	p.rooms = next

	if res.Corridor != nil {
		p.corridors = append(p.corridors, *res.Corridor)
		p.caps = append(p.caps, res.Caps...)
	}
	p.splits++
	if res.Doors.Exhausted {
		p.exhausted++
		p.logger.Debug("door quota not met", "quota", res.Doors.Quota, "placed", res.Doors.Placed,
			"first", res.First.Rect, "second", res.Second.Rect)
	}
	p.logger.Debug("split applied", "orientation", res.Plan.Orientation, "width", res.Plan.CorridorWidth,
		"start", res.Plan.CorridorStart, "doors", res.Doors.Doors)
}

// Run performs the configured number of division rounds, stopping early once
// no room can be split any more.
func (p *Partitioner) Run() {
	for round := 0; round < p.cfg.PartitionRounds; round++ {
		if !p.Round() {
			p.logger.Debug("partition settled", "round", round, "rooms", len(p.rooms))
			return
		}
	}
}

// Stamp writes the partition into the grid: room perimeters as Wall, room
// and corridor floors as Layer markers, corridor end caps as Wall, doors as
// Door, the border ring as Wall, and one PlayerSpawn at the centre of a
// random room.
func (p *Partitioner) Stamp(grid *world.Grid) world.Coord {
	for i, room := range p.rooms {
		grid.FillRect(room.Rect, world.Layer(i+1))
	}
	for k, c := range p.corridors {
		grid.FillRect(c, world.Layer(len(p.rooms)+k+1))
	}
	for _, room := range p.rooms {
		grid.StrokeRect(room.Rect, world.Wall)
	}
	// cap cells lie on a split parent's perimeter, which no leaf strokes
	for _, c := range p.caps {
		grid.FillRect(c, world.Wall)
	}
	for _, room := range p.rooms {
		for _, d := range room.Doors() {
			grid.SetAt(d, world.Door)
		}
	}
	grid.StampBorder()

	spawn := p.rooms[p.rng.Intn(len(p.rooms))].Center()
	grid.SetPlayerSpawn(spawn)
	return spawn
}

// DoorCells returns every distinct door cell owned by any room
func (p *Partitioner) DoorCells() []world.Coord {
	seen := make(map[world.Coord]bool)
	var doors []world.Coord
	for _, room := range p.rooms {
		for _, d := range room.Doors() {
			if !seen[d] {
				seen[d] = true
				doors = append(doors, d)
			}
		}
	}
	sort.Slice(doors, func(i, j int) bool { return doors[i].Less(doors[j]) })
	return doors
}
