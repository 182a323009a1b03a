package generator

import (
	"math"
	"math/rand"

	"dungeonforge/pkg/engine/world"
)

// SymmetryMode selects how door pairs across a new boundary are chosen.
type SymmetryMode int

const (
	// SymmetryProbabilistic places a straight-across pair with probability
	// DoorSymmetryChance and otherwise one door per side (corridor splits).
	SymmetryProbabilistic SymmetryMode = iota
	// SymmetryRequired only places pairs; used for a single shared wall,
	// where both halves of the pair are the same cell.
	SymmetryRequired
)

// DoorReport summarises one door planning pass.
type DoorReport struct {
	Quota     int // doors (linking events) wanted along the boundary
	Placed    int // linking events achieved
	Doors     int // door cells added across both rooms
	Exhausted bool
}

// doorCandidate is one door cell per side of the new boundary at the same
// position along it.
type doorCandidate struct {
	first, second world.Coord
}

// PlanDoors places doors on the boundary between two freshly split rooms.
// o is the split orientation: a vertical split gets doors on the vertical
// walls facing each other. Running out of candidates before the quota is met
// is a structural limit, reported in DoorReport.Exhausted.
func PlanDoors(rng *rand.Rand, first, second *RoomNode, o world.Orientation, mode SymmetryMode) DoorReport {
	lo, hi := boundarySpan(first, o)
	cfg := first.cfg

	length := hi - lo + 1
	quota := int(math.Round(float64(length) / float64(cfg.WallsPerDoor)))
	if quota < 1 {
		quota = 1
	}
	report := DoorReport{Quota: quota}

	for remaining := quota; remaining > 0; {
		var firstOnly, secondOnly, both []doorCandidate
		for i := lo; i <= hi; i++ {
			c := candidateAt(first, second, o, i)
			okFirst := first.CheckDoorConflicts(c.first, o)
			okSecond := second.CheckDoorConflicts(c.second, o)
			if okFirst {
				firstOnly = append(firstOnly, c)
			}
			if okSecond {
				secondOnly = append(secondOnly, c)
			}
			if okFirst && okSecond {
				both = append(both, c)
			}
		}

		placed := false
		switch {
		case mode == SymmetryRequired:
			if len(both) > 0 {
				c := both[rng.Intn(len(both))]
				report.Doors += placePair(first, second, c)
				remaining--
				placed = true
			}
		case len(both) > 0 && rng.Float64() < cfg.DoorSymmetryChance:
			c := both[rng.Intn(len(both))]
			report.Doors += placePair(first, second, c)
			remaining--
			placed = true
		default:
			// one linking event even when both sides get a door
			if len(firstOnly) > 0 {
				first.AddDoor(firstOnly[rng.Intn(len(firstOnly))].first)
				report.Doors++
				placed = true
			}
			if len(secondOnly) > 0 {
				second.AddDoor(secondOnly[rng.Intn(len(secondOnly))].second)
				report.Doors++
				placed = true
			}
			if placed {
				remaining--
			}
		}

		if !placed {
			report.Exhausted = true
			break
		}
		report.Placed++
	}

	return report
}

// boundarySpan returns the inclusive range along the new boundary where
// doors may go: the shared span minus the two corner cells.
func boundarySpan(first *RoomNode, o world.Orientation) (int, int) {
	if o == world.Vertical {
		return first.Up + 1, first.Down - 1
	}
	return first.Left + 1, first.Right - 1
}

func candidateAt(first, second *RoomNode, o world.Orientation, i int) doorCandidate {
	if o == world.Vertical {
		return doorCandidate{first: world.C(first.Right, i), second: world.C(second.Left, i)}
	}
	return doorCandidate{first: world.C(i, first.Down), second: world.C(i, second.Up)}
}

// placePair adds both halves of a pair and returns the number of distinct
// door cells created.
func placePair(first, second *RoomNode, c doorCandidate) int {
	first.AddDoor(c.first)
	second.AddDoor(c.second)
	if c.first == c.second {
		return 1
	}
	return 2
}
