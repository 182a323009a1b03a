package generator

import (
	"math"
	"math/rand"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
)

// orientationExponent sharpens the bias towards splitting across the long axis.
const orientationExponent = 3

// RoomNode is a rectangular region of the grid being partitioned. Its bounds
// are the wall perimeter; doors always lie on that perimeter.
type RoomNode struct {
	world.Rect

	cfg   *config.Config
	doors mapset.Set[world.Coord]
}

// SplitPlan is the set of decisions made for a single Split call.
type SplitPlan struct {
	Orientation   world.Orientation
	CorridorWidth int
	CorridorStart int
}

// SplitResult is what a successful Split produces.
type SplitResult struct {
	Plan   SplitPlan
	First  *RoomNode // left or upper child
	Second *RoomNode // right or lower child

	// Corridor is the floor strip between the children, nil for a single wall.
	Corridor *world.Rect
	// Caps are the wall strips closing the corridor's two short ends where
	// it meets the parent's old perimeter. Empty without a corridor.
	Caps []world.Rect

	Doors DoorReport
}

// NewRoomNode creates a room with no doors
func NewRoomNode(cfg *config.Config, left, right, up, down int) *RoomNode {
	rect := world.Rect{Left: left, Right: right, Up: up, Down: down}
	if !rect.Valid() {
		panic("room bounds must satisfy right > left and down > up")
	}
	return &RoomNode{
		Rect:  rect,
		cfg:   cfg,
		doors: mapset.New[world.Coord](),
	}
}

// Doors returns the doors owned by this room in row-major order
func (r *RoomNode) Doors() []world.Coord {
	doors := make([]world.Coord, 0, r.doors.Size())
	r.doors.Each(func(d world.Coord) {
		doors = append(doors, d)
	})
	sort.Slice(doors, func(i, j int) bool { return doors[i].Less(doors[j]) })
	return doors
}

// DoorCount returns the number of doors owned by this room
func (r *RoomNode) DoorCount() int {
	return r.doors.Size()
}

// HasDoor reports whether d is one of this room's doors
func (r *RoomNode) HasDoor(d world.Coord) bool {
	return r.doors.Has(d)
}

// AddDoor records a door. Returns false if d is not on the room perimeter.
func (r *RoomNode) AddDoor(d world.Coord) bool {
	if !r.OnBoundary(d) {
		return false
	}
	r.doors.Put(d)
	return true
}

// CorridorWidth maps the span a corridor would cover to its width tier.
func (r *RoomNode) CorridorWidth(length int) int {
	return corridorWidth(r.cfg.CorridorThresholds, length)
}

func corridorWidth(thresholds []int, length int) int {
	for i, t := range thresholds {
		if length <= t {
			return i
		}
	}
	return len(thresholds)
}

// CanSplitVertical checks whether a vertical corridor line fits across the room's width.
func (r *RoomNode) CanSplitVertical() bool {
	return r.canSplit(r.Width(), r.Height())
}

// CanSplitHorizontal checks whether a horizontal corridor line fits across the room's height.
func (r *RoomNode) CanSplitHorizontal() bool {
	return r.canSplit(r.Height(), r.Width())
}

// canSplit: two usable interiors, the exterior walls, the corridor walls and
// the corridor itself must fit in axisLength. The corridor runs along span.
//
//	W W W W W W W W W        W W W W W C W W W W W    W = wall
//	W . . . W . . . W        W . . . W C W . . . W    C = corridor
//	W . . . W . . . W   OR   W . . . W C W . . . W    . = usable space
//	W W W W W W W W W        W W W W W C W W W W W
func (r *RoomNode) canSplit(axisLength, span int) bool {
	width := r.CorridorWidth(span)
	wallTiles := 4
	if width == 0 {
		wallTiles = 3
	}
	return axisLength >= 2*r.cfg.MinRoomUsableLength+wallTiles+width
}

// CanSplit reports whether the room can be split along either axis
func (r *RoomNode) CanSplit() bool {
	return r.CanSplitVertical() || r.CanSplitHorizontal()
}

// ChooseOrientation picks the split axis. When both axes qualify the long
// axis is favoured by (side/perimeter)^3 weights, each scaled by a fresh
// uniform draw. Returns false when the room is a terminal leaf.
func (r *RoomNode) ChooseOrientation(rng *rand.Rand) (world.Orientation, bool) {
	canV, canH := r.CanSplitVertical(), r.CanSplitHorizontal()
	switch {
	case canV && canH:
		w, h := float64(r.Width()), float64(r.Height())
		vertical := math.Pow(w/(w+h), orientationExponent) * rng.Float64()
		horizontal := math.Pow(h/(w+h), orientationExponent) * rng.Float64()
		if vertical > horizontal {
			return world.Vertical, true
		}
		return world.Horizontal, true
	case canV:
		return world.Vertical, true
	case canH:
		return world.Horizontal, true
	}
	return world.Horizontal, false
}

// CheckDoorConflicts returns true if d keeps at least DoorMinDistance from
// every existing door on the same wall line. Doors on vertical walls are
// compared along Y, doors on horizontal walls along X.
func (r *RoomNode) CheckDoorConflicts(d world.Coord, o world.Orientation) bool {
	ok := true
	r.doors.Each(func(existing world.Coord) {
		if !ok {
			return
		}
		if o == world.Vertical && existing.X == d.X && absInt(d.Y-existing.Y) < r.cfg.DoorMinDistance {
			ok = false
		}
		if o == world.Horizontal && existing.Y == d.Y && absInt(d.X-existing.X) < r.cfg.DoorMinDistance {
			ok = false
		}
	})
	return ok
}

// CorridorConflicts returns the corridor start coordinates in [lo, hi] whose
// corridor (or single wall) would not overwrite or touch an inherited door on
// either of the two walls the new line meets.
func (r *RoomNode) CorridorConflicts(lo, hi, width int, o world.Orientation) []int {
	var valid []int
	for coord := lo; coord <= hi; coord++ {
		if r.corridorFits(coord, width, o) {
			valid = append(valid, coord)
		}
	}
	return valid
}

func (r *RoomNode) corridorFits(coord, width int, o world.Orientation) bool {
	fits := true
	r.doors.Each(func(d world.Coord) {
		if !fits {
			return
		}
		// along: door position along the touched wall; onTouched: door sits on
		// one of the two walls the split line meets.
		var along int
		var onTouched bool
		if o == world.Vertical {
			along = d.X
			onTouched = d.Y == r.Up || d.Y == r.Down
		} else {
			along = d.Y
			onTouched = d.X == r.Left || d.X == r.Right
		}
		if !onTouched {
			return
		}
		if width == 0 {
			fits = along != coord
			return
		}
		// corridor cells [coord, coord+width-1] plus walls at coord-1 and coord+width
		if along-coord <= width && coord-along <= 1 {
			fits = false
		}
	})
	return fits
}

// Split divides the room into two children separated by a corridor or a
// single shared wall and places doors on the new boundary. Returns false when
// the room cannot be split; the room is then a terminal leaf.
// The parent must not be used after a successful split: its doors now
// belong to the children.
func (r *RoomNode) Split(rng *rand.Rand) (*SplitResult, bool) {
	if !r.CanSplit() {
		return nil, false
	}

	o, _ := r.ChooseOrientation(rng)

	// the span the corridor runs along decides its width
	var lo, hi, span int
	if o == world.Vertical {
		lo, hi = r.Left, r.Right
		span = r.Height()
	} else {
		lo, hi = r.Up, r.Down
		span = r.Width()
	}
	width := r.CorridorWidth(span)

	wallTiles := 2 // a wall on each side of the corridor
	if width == 0 {
		wallTiles = 1
	}
	minStart := lo + r.cfg.MinRoomUsableLength + wallTiles
	maxStart := hi - r.cfg.MinRoomUsableLength - wallTiles - (width - 1)
	if width == 0 {
		maxStart--
	}

	starts := r.CorridorConflicts(minStart, maxStart, width, o)
	if len(starts) == 0 {
		return nil, false
	}
	start := starts[rng.Intn(len(starts))]
	plan := SplitPlan{Orientation: o, CorridorWidth: width, CorridorStart: start}

	first, second, corridor := r.children(plan, wallTiles)
	r.handOverDoors(first, second)

	mode := SymmetryProbabilistic
	if width == 0 {
		mode = SymmetryRequired
	}
	report := PlanDoors(rng, first, second, o, mode)

	res := &SplitResult{
		Plan:     plan,
		First:    first,
		Second:   second,
		Corridor: corridor,
		Doors:    report,
	}
	if corridor != nil {
		res.Caps = endCaps(*corridor, o)
	}
	return res, true
}

// endCaps returns the one-cell strips just outside the short ends of a
// corridor: above and below a vertical one, left and right of a horizontal one.
func endCaps(c world.Rect, o world.Orientation) []world.Rect {
	if o == world.Vertical {
		return []world.Rect{
			{Left: c.Left, Right: c.Right, Up: c.Up - 1, Down: c.Up - 1},
			{Left: c.Left, Right: c.Right, Up: c.Down + 1, Down: c.Down + 1},
		}
	}
	return []world.Rect{
		{Left: c.Left - 1, Right: c.Left - 1, Up: c.Up, Down: c.Down},
		{Left: c.Right + 1, Right: c.Right + 1, Up: c.Up, Down: c.Down},
	}
}

func (r *RoomNode) children(plan SplitPlan, wallTiles int) (*RoomNode, *RoomNode, *world.Rect) {
	c, w := plan.CorridorStart, plan.CorridorWidth
	var first, second *RoomNode
	var corridor *world.Rect
	if plan.Orientation == world.Vertical {
		first = NewRoomNode(r.cfg, r.Left, c-(wallTiles-1), r.Up, r.Down)
		second = NewRoomNode(r.cfg, c+w, r.Right, r.Up, r.Down)
		if w > 0 {
			corridor = &world.Rect{Left: c, Right: c + w - 1, Up: r.Up + 1, Down: r.Down - 1}
		}
	} else {
		first = NewRoomNode(r.cfg, r.Left, r.Right, r.Up, c-(wallTiles-1))
		second = NewRoomNode(r.cfg, r.Left, r.Right, c+w, r.Down)
		if w > 0 {
			corridor = &world.Rect{Left: r.Left + 1, Right: r.Right - 1, Up: c, Down: c + w - 1}
		}
	}
	return first, second, corridor
}

// handOverDoors moves every door to the child whose bounds contain it.
// Corridor placement never leaves a door on the new line, so each door has
// exactly one owner.
func (r *RoomNode) handOverDoors(first, second *RoomNode) {
	r.doors.Each(func(d world.Coord) {
		switch {
		case first.Contains(d):
			first.doors.Put(d)
		case second.Contains(d):
			second.doors.Put(d)
		}
	})
	r.doors = mapset.New[world.Coord]()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
