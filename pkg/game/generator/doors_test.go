package generator

import (
	"math/rand"
	"testing"

	"dungeonforge/pkg/engine/world"
)

func TestPlanDoors_SharedWallPairsAreOneCell(t *testing.T) {
	cfg := testConfig()
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		first := NewRoomNode(cfg, 0, 10, 0, 20)
		second := NewRoomNode(cfg, 10, 20, 0, 20)

		report := PlanDoors(rng, first, second, world.Vertical, SymmetryRequired)
		// boundary 1..19 is 19 cells: round(19/7) = 3
		if report.Quota != 3 {
			t.Fatalf("Quota = %d, want 3", report.Quota)
		}
		if report.Exhausted || report.Placed != 3 {
			t.Errorf("seed %d: placed %d (exhausted %v), want 3", seed, report.Placed, report.Exhausted)
		}
		if report.Doors != 3 {
			t.Errorf("seed %d: %d door cells, want 3", seed, report.Doors)
		}
		for _, d := range first.Doors() {
			if d.X != 10 || d.Y < 1 || d.Y > 19 {
				t.Errorf("seed %d: door %v off the shared wall span", seed, d)
			}
			if !second.HasDoor(d) {
				t.Errorf("seed %d: door %v is not owned by both rooms", seed, d)
			}
		}
		if first.DoorCount() != second.DoorCount() {
			t.Errorf("seed %d: door counts %d and %d differ", seed, first.DoorCount(), second.DoorCount())
		}
	}
}

func TestPlanDoors_RespectsMinDistance(t *testing.T) {
	cfg := testConfig()
	cfg.WallsPerDoor = 1
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		first := NewRoomNode(cfg, 0, 30, 0, 10)
		second := NewRoomNode(cfg, 0, 30, 10, 20)

		PlanDoors(rng, first, second, world.Horizontal, SymmetryRequired)
		doors := first.Doors()
		for i := range doors {
			for j := i + 1; j < len(doors); j++ {
				if absInt(doors[i].X-doors[j].X) < cfg.DoorMinDistance {
					t.Errorf("seed %d: doors %v and %v closer than %d", seed, doors[i], doors[j], cfg.DoorMinDistance)
				}
			}
		}
	}
}

func TestPlanDoors_ExhaustionIsReported(t *testing.T) {
	cfg := testConfig()
	cfg.WallsPerDoor = 1
	cfg.DoorMinDistance = 100
	rng := rand.New(rand.NewSource(1))
	first := NewRoomNode(cfg, 0, 6, 0, 6)
	second := NewRoomNode(cfg, 6, 12, 0, 6)

	report := PlanDoors(rng, first, second, world.Vertical, SymmetryRequired)
	if report.Quota != 5 {
		t.Errorf("Quota = %d, want 5", report.Quota)
	}
	if !report.Exhausted {
		t.Error("expected candidate exhaustion")
	}
	if report.Placed != 1 || first.DoorCount() != 1 {
		t.Errorf("placed %d, first owns %d doors; want 1 and 1", report.Placed, first.DoorCount())
	}
}

func TestPlanDoors_AlwaysSymmetric(t *testing.T) {
	cfg := testConfig()
	cfg.DoorSymmetryChance = 1
	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		// corridor in columns 7..8
		first := NewRoomNode(cfg, 0, 6, 0, 30)
		second := NewRoomNode(cfg, 9, 15, 0, 30)

		PlanDoors(rng, first, second, world.Vertical, SymmetryProbabilistic)
		if first.DoorCount() == 0 {
			t.Fatalf("seed %d: no doors placed", seed)
		}
		for _, d := range first.Doors() {
			if !second.HasDoor(world.C(second.Left, d.Y)) {
				t.Errorf("seed %d: door %v has no partner across the corridor", seed, d)
			}
		}
		if first.DoorCount() != second.DoorCount() {
			t.Errorf("seed %d: door counts %d and %d differ", seed, first.DoorCount(), second.DoorCount())
		}
	}
}

func TestPlanDoors_NeverSymmetricOnePerSide(t *testing.T) {
	cfg := testConfig()
	cfg.DoorSymmetryChance = 0
	rng := rand.New(rand.NewSource(5))
	first := NewRoomNode(cfg, 0, 6, 0, 30)
	second := NewRoomNode(cfg, 9, 15, 0, 30)

	report := PlanDoors(rng, first, second, world.Vertical, SymmetryProbabilistic)
	// boundary 1..29 is 29 cells: round(29/7) = 4
	if report.Quota != 4 || report.Placed != 4 {
		t.Errorf("quota %d placed %d, want 4 and 4", report.Quota, report.Placed)
	}
	if first.DoorCount() != 4 || second.DoorCount() != 4 {
		t.Errorf("door counts %d and %d, want one per side per event", first.DoorCount(), second.DoorCount())
	}
	if report.Doors != 8 {
		t.Errorf("Doors = %d, want 8", report.Doors)
	}
	for _, d := range first.Doors() {
		if d.X != first.Right {
			t.Errorf("first door %v not on the wall facing the corridor", d)
		}
	}
	for _, d := range second.Doors() {
		if d.X != second.Left {
			t.Errorf("second door %v not on the wall facing the corridor", d)
		}
	}
}

func TestPlanDoors_QuotaAtLeastOne(t *testing.T) {
	cfg := testConfig()
	cfg.WallsPerDoor = 50
	rng := rand.New(rand.NewSource(2))
	first := NewRoomNode(cfg, 0, 4, 0, 6)
	second := NewRoomNode(cfg, 0, 4, 6, 12)

	report := PlanDoors(rng, first, second, world.Horizontal, SymmetryRequired)
	if report.Quota != 1 || report.Placed != 1 {
		t.Errorf("quota %d placed %d, want 1 and 1", report.Quota, report.Placed)
	}
	for _, d := range first.Doors() {
		if first.IsCorner(d) {
			t.Errorf("door %v placed on a corner", d)
		}
	}
}
