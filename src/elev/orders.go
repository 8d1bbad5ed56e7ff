package elev

import (
	"slices"

	"singlevator/src/types"
)

// insertFloor returns a new schedule with floor queued according to the travel direction.
//   - No direction: floor goes to the back
//   - Up: floors above the car go to the front, the rest to the back
//   - Down: floors below the car go to the front, the rest to the back
//
// The queue is biased toward the direction of travel, not sorted.
func insertFloor(schedule []int, dir types.Direction, height float64, floor int) []int {
	f := float64(floor)
	ahead := (dir == types.DirUp && f > height) || (dir == types.DirDown && f < height)
	next := make([]int, 0, len(schedule)+1)
	if ahead {
		next = append(next, floor)
		return append(next, schedule...)
	}
	next = append(next, schedule...)
	return append(next, floor)
}

// removeFloor returns a new schedule without floor.
func removeFloor(schedule []int, floor int) []int {
	next := make([]int, 0, len(schedule))
	for _, f := range schedule {
		if f != floor {
			next = append(next, f)
		}
	}
	return next
}

func containsFloor(schedule []int, floor int) bool {
	return slices.Contains(schedule, floor)
}

// scheduledFloorAt returns the scheduled floor the car is level with.
func scheduledFloorAt(schedule []int, height float64) (int, bool) {
	for _, f := range schedule {
		if float64(f) == height {
			return f, true
		}
	}
	return 0, false
}

func directionTo(from float64, to int) types.Direction {
	if float64(to) > from {
		return types.DirUp
	}
	return types.DirDown
}
