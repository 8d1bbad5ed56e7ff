// State types are defined in elev package so the transition function and the controller share them.
package elev

import (
	"errors"

	"singlevator/src/types"
)

var (
	ErrInvalidFloorCount  = errors.New("floor count must be positive")
	ErrInvalidWeightLimit = errors.New("weight limit must be positive")
)

// ElevState is the single mutable aggregate owned by the Controller.
type ElevState struct {
	Phase       types.Phase
	Dir         types.Direction
	FloorCount  int
	Height      float64
	Schedule    []int
	Weight      int
	WeightLimit int
}

func NewElevState(floorCount, weightLimit int) (ElevState, error) {
	if floorCount <= 0 {
		return ElevState{}, ErrInvalidFloorCount
	}
	if weightLimit <= 0 {
		return ElevState{}, ErrInvalidWeightLimit
	}
	return ElevState{
		Phase:       types.DoorsClosed,
		Dir:         types.DirNone,
		FloorCount:  floorCount,
		WeightLimit: weightLimit,
	}, nil
}

func (s ElevState) topFloor() float64 {
	return float64(s.FloorCount - 1)
}
