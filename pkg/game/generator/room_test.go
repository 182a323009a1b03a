package generator

import (
	"math/rand"
	"testing"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestCorridorWidth_ThresholdBoundaries(t *testing.T) {
	room := NewRoomNode(testConfig(), 0, 10, 0, 10)
	tests := []struct {
		length int
		want   int
	}{
		{1, 0},
		{20, 0},
		{21, 1},
		{35, 1},
		{36, 2},
		{50, 2},
		{51, 3},
		{256, 3},
	}
	for _, tt := range tests {
		if got := room.CorridorWidth(tt.length); got != tt.want {
			t.Errorf("CorridorWidth(%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func TestCorridorWidth_NonDecreasing(t *testing.T) {
	room := NewRoomNode(testConfig(), 0, 10, 0, 10)
	prev := room.CorridorWidth(1)
	for length := 2; length <= 300; length++ {
		w := room.CorridorWidth(length)
		if w < prev {
			t.Fatalf("CorridorWidth(%d) = %d after %d", length, w, prev)
		}
		prev = w
	}
}

func TestCanSplit_Idempotent(t *testing.T) {
	cfg := testConfig()
	for _, r := range []world.Rect{
		{Left: 0, Right: 4, Up: 0, Down: 4},
		{Left: 0, Right: 8, Up: 0, Down: 4},
		{Left: 0, Right: 9, Up: 0, Down: 20},
		{Left: 3, Right: 60, Up: 3, Down: 60},
	} {
		room := NewRoomNode(cfg, r.Left, r.Right, r.Up, r.Down)
		first := room.CanSplit()
		for i := 0; i < 3; i++ {
			if got := room.CanSplit(); got != first {
				t.Errorf("%v: CanSplit() changed from %v to %v", r, first, got)
			}
		}
	}
}

func TestCanSplit_MinimumSizes(t *testing.T) {
	cfg := testConfig()
	// width 0 split needs 2*3 + 3 = 9 cells on the axis
	if NewRoomNode(cfg, 0, 7, 0, 4).CanSplitVertical() {
		t.Error("8 wide room should not split vertically")
	}
	if !NewRoomNode(cfg, 0, 8, 0, 4).CanSplitVertical() {
		t.Error("9 wide room should split vertically with a shared wall")
	}
	// a 21 tall span needs a width 1 corridor: 2*3 + 4 + 1 = 11
	if NewRoomNode(cfg, 0, 9, 0, 20).CanSplitVertical() {
		t.Error("10 wide room with a 21 span should not split vertically")
	}
	if !NewRoomNode(cfg, 0, 10, 0, 20).CanSplitVertical() {
		t.Error("11 wide room with a 21 span should split vertically")
	}
}

func TestSplit_SmallRoomNeverSplits(t *testing.T) {
	cfg := testConfig()
	for seed := int64(0); seed < 100; seed++ {
		room := NewRoomNode(cfg, 0, 4, 0, 4)
		rng := rand.New(rand.NewSource(seed))
		if res, ok := room.Split(rng); ok || res != nil {
			t.Fatalf("seed %d: 5x5 room split into %+v", seed, res)
		}
	}
}

func TestNewRoomNode_RejectsDegenerateBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRoomNode accepted a zero-width room")
		}
	}()
	NewRoomNode(testConfig(), 4, 4, 0, 10)
}

func TestSplit_ChildrenCoverParent(t *testing.T) {
	cfg := testConfig()
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		room := NewRoomNode(cfg, 0, 40, 0, 30)
		res, ok := room.Split(rng)
		if !ok {
			t.Fatalf("seed %d: 41x31 room did not split", seed)
		}
		first, second := res.First, res.Second
		w := res.Plan.CorridorWidth
		wantGap := w
		if w == 0 {
			wantGap = -1 // shared wall
		}
		if res.Plan.Orientation == world.Vertical {
			if first.Left != 0 || second.Right != 40 || first.Up != 0 || second.Down != 30 {
				t.Errorf("seed %d: children %v %v do not span the parent", seed, first.Rect, second.Rect)
			}
			if gap := second.Left - first.Right - 1; gap != wantGap {
				t.Errorf("seed %d: gap between children = %d, want %d", seed, gap, wantGap)
			}
		} else {
			if first.Up != 0 || second.Down != 30 || first.Left != 0 || second.Right != 40 {
				t.Errorf("seed %d: children %v %v do not span the parent", seed, first.Rect, second.Rect)
			}
			if gap := second.Up - first.Down - 1; gap != wantGap {
				t.Errorf("seed %d: gap between children = %d, want %d", seed, gap, wantGap)
			}
		}
		for _, child := range []*RoomNode{first, second} {
			if child.Width()-2 < cfg.MinRoomUsableLength || child.Height()-2 < cfg.MinRoomUsableLength {
				t.Errorf("seed %d: child %v is below the minimum usable length", seed, child.Rect)
			}
		}
		if (w == 0) != (res.Corridor == nil) {
			t.Errorf("seed %d: width %d with corridor %v", seed, w, res.Corridor)
		}
		if res.Corridor == nil {
			if len(res.Caps) != 0 {
				t.Errorf("seed %d: shared wall split has caps %v", seed, res.Caps)
			}
			continue
		}
		if len(res.Caps) != 2 {
			t.Fatalf("seed %d: corridor %v has %d caps, want 2", seed, *res.Corridor, len(res.Caps))
		}
		for _, end := range res.Caps {
			for y := end.Up; y <= end.Down; y++ {
				for x := end.Left; x <= end.Right; x++ {
					c := world.C(x, y)
					if !room.OnBoundary(c) || room.IsCorner(c) {
						t.Errorf("seed %d: cap cell %v is not on the parent wall %v", seed, c, room.Rect)
					}
					if first.Contains(c) || second.Contains(c) {
						t.Errorf("seed %d: cap cell %v belongs to a child", seed, c)
					}
				}
			}
		}
	}
}

func TestSplit_InheritedDoorHasOneOwner(t *testing.T) {
	cfg := testConfig()
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		room := NewRoomNode(cfg, 0, 30, 0, 10)
		door := world.C(0, 2)
		if !room.AddDoor(door) {
			t.Fatal("AddDoor on the left wall failed")
		}
		top := world.C(15, 0)
		room.AddDoor(top)

		res, ok := room.Split(rng)
		if !ok {
			t.Fatalf("seed %d: room did not split", seed)
		}
		for _, d := range []world.Coord{door, top} {
			owners := 0
			for _, child := range []*RoomNode{res.First, res.Second} {
				if child.HasDoor(d) {
					owners++
					if !child.OnBoundary(d) {
						t.Errorf("seed %d: door %v not on boundary of owner %v", seed, d, child.Rect)
					}
				}
			}
			if owners != 1 {
				t.Errorf("seed %d: inherited door %v has %d owners, want 1", seed, d, owners)
			}
		}
		if room.DoorCount() != 0 {
			t.Errorf("seed %d: parent still owns %d doors", seed, room.DoorCount())
		}
	}
}

func TestAddDoor_RejectsInterior(t *testing.T) {
	room := NewRoomNode(testConfig(), 0, 10, 0, 10)
	if room.AddDoor(world.C(5, 5)) {
		t.Error("AddDoor accepted an interior cell")
	}
	if room.AddDoor(world.C(20, 0)) {
		t.Error("AddDoor accepted a cell outside the room")
	}
	if !room.AddDoor(world.C(10, 4)) {
		t.Error("AddDoor rejected a boundary cell")
	}
}

func TestCheckDoorConflicts(t *testing.T) {
	room := NewRoomNode(testConfig(), 0, 10, 0, 10)
	room.AddDoor(world.C(10, 5))

	tests := []struct {
		d    world.Coord
		o    world.Orientation
		want bool
	}{
		{world.C(10, 7), world.Vertical, false},
		{world.C(10, 3), world.Vertical, false},
		{world.C(10, 8), world.Vertical, true},
		{world.C(10, 2), world.Vertical, true},
		{world.C(0, 5), world.Vertical, true},
		{world.C(5, 10), world.Horizontal, true},
	}
	for _, tt := range tests {
		if got := room.CheckDoorConflicts(tt.d, tt.o); got != tt.want {
			t.Errorf("CheckDoorConflicts(%v, %v) = %v, want %v", tt.d, tt.o, got, tt.want)
		}
	}
}

func TestCorridorConflicts(t *testing.T) {
	room := NewRoomNode(testConfig(), 0, 20, 0, 20)
	room.AddDoor(world.C(8, 0))

	got := room.CorridorConflicts(5, 15, 2, world.Vertical)
	want := []int{5, 10, 11, 12, 13, 14, 15}
	if !equalInts(got, want) {
		t.Errorf("width 2: CorridorConflicts = %v, want %v", got, want)
	}

	got = room.CorridorConflicts(5, 11, 0, world.Vertical)
	want = []int{5, 6, 7, 9, 10, 11}
	if !equalInts(got, want) {
		t.Errorf("width 0: CorridorConflicts = %v, want %v", got, want)
	}

	// doors on walls the line does not touch never conflict
	got = room.CorridorConflicts(5, 8, 1, world.Horizontal)
	want = []int{5, 6, 7, 8}
	if !equalInts(got, want) {
		t.Errorf("horizontal: CorridorConflicts = %v, want %v", got, want)
	}
}

func TestChooseOrientation_ForcedAxis(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(1))
	// wide and flat: only a vertical line fits
	if o, ok := NewRoomNode(cfg, 0, 30, 0, 6).ChooseOrientation(rng); !ok || o != world.Vertical {
		t.Errorf("ChooseOrientation = %v, %v; want vertical, true", o, ok)
	}
	if o, ok := NewRoomNode(cfg, 0, 6, 0, 30).ChooseOrientation(rng); !ok || o != world.Horizontal {
		t.Errorf("ChooseOrientation = %v, %v; want horizontal, true", o, ok)
	}
	if _, ok := NewRoomNode(cfg, 0, 6, 0, 6).ChooseOrientation(rng); ok {
		t.Error("ChooseOrientation succeeded on a leaf room")
	}
}

func TestChooseOrientation_FavoursLongAxis(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(3))
	room := NewRoomNode(cfg, 0, 59, 0, 19)
	vertical := 0
	for i := 0; i < 1000; i++ {
		if o, _ := room.ChooseOrientation(rng); o == world.Vertical {
			vertical++
		}
	}
	if vertical < 800 {
		t.Errorf("60x20 room chose vertical %d/1000 times, want a strong majority", vertical)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
