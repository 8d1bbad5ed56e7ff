// Contains the transition function of the single car state machine.
package elev

import (
	"math"

	"singlevator/src/types"
)

// Heights closer than this to a whole floor are treated as level with it.
const floorEpsilon = 1e-9

// Transition applies cmd to state and returns the next state together with the effects to carry out.
// Commands that are illegal in the current phase or fail a guard return state unchanged and no effects.
// Raised commands are returned as EffRaise effects; feeding them back in order is up to the caller.
func Transition(state ElevState, cmd types.Command) (ElevState, []types.Effect) {
	next, effects, ok := transition(state, cmd)
	if !ok {
		return state, nil
	}
	next.Dir = syncDirection(next)
	return next, effects
}

func transition(s ElevState, cmd types.Command) (ElevState, []types.Effect, bool) {
	// Floor requests are accepted in every phase.
	if cmd.Kind == types.CmdPressButton {
		return pressButton(s, cmd.Floor)
	}

	switch s.Phase {
	case types.DoorsClosed:
		switch cmd.Kind {
		case types.CmdCheckSchedule:
			return checkSchedule(s)
		case types.CmdStartMoving:
			s.Phase = types.Moving
			return s, []types.Effect{{Kind: types.EffStartTicker}}, true
		case types.CmdDoorsOpen:
			s.Phase = types.DoorsOpening
			return s, []types.Effect{delay(types.DoorsOpenedCmd())}, true
		}

	case types.DoorsOpening:
		if cmd.Kind == types.CmdDoorsOpened {
			s.Phase = types.DoorsOpen
			return s, []types.Effect{{Kind: types.EffStartDoorTimer}}, true
		}

	case types.Moving:
		switch cmd.Kind {
		case types.CmdTick:
			return tick(s, cmd.Delta)
		case types.CmdStopMoving:
			if floor, ok := scheduledFloorAt(s.Schedule, s.Height); ok {
				s.Schedule = removeFloor(s.Schedule, floor)
			}
			s.Phase = types.DoorsClosed
			return s, []types.Effect{{Kind: types.EffStopTicker}}, true
		}

	case types.DoorsOpen:
		switch cmd.Kind {
		case types.CmdEnter:
			if cmd.Weight <= 0 || s.Weight+cmd.Weight > s.WeightLimit {
				return s, nil, false
			}
			s.Weight += cmd.Weight
			return s, []types.Effect{{Kind: types.EffRestartDoorTimer}}, true
		case types.CmdExit:
			if cmd.Weight <= 0 || s.Weight-cmd.Weight < 0 {
				return s, nil, false
			}
			s.Weight -= cmd.Weight
			return s, []types.Effect{{Kind: types.EffRestartDoorTimer}}, true
		case types.CmdDoorsClose:
			s.Phase = types.DoorsClosing
			return s, []types.Effect{{Kind: types.EffCancelDoorTimer}, delay(types.DoorsClosedCmd())}, true
		}

	case types.DoorsClosing:
		if cmd.Kind == types.CmdDoorsClosed {
			s.Phase = types.DoorsClosed
			return s, []types.Effect{raise(types.CheckSchedule())}, true
		}
	}
	return s, nil, false
}

func pressButton(s ElevState, floor int) (ElevState, []types.Effect, bool) {
	if floor < 0 || floor >= s.FloorCount {
		return s, nil, false
	}
	if containsFloor(s.Schedule, floor) || float64(floor) == s.Height {
		return s, nil, false
	}
	s.Schedule = insertFloor(s.Schedule, s.Dir, s.Height, floor)
	return s, []types.Effect{raise(types.CheckSchedule())}, true
}

func checkSchedule(s ElevState) (ElevState, []types.Effect, bool) {
	if len(s.Schedule) == 0 {
		s.Dir = types.DirNone
		return s, nil, true
	}
	head := s.Schedule[0]
	s.Dir = directionTo(s.Height, head)
	return s, []types.Effect{raise(types.StartMoving(head))}, true
}

// tick moves the car one step in the direction of travel and stops it on a scheduled floor.
func tick(s ElevState, delta float64) (ElevState, []types.Effect, bool) {
	if delta <= 0 || s.Dir == types.DirNone {
		return s, nil, false
	}
	h := s.Height + delta*s.Dir.Sign()
	if r := math.Round(h); math.Abs(h-r) < floorEpsilon {
		h = r
	}
	s.Height = min(max(h, 0), s.topFloor())

	if _, ok := scheduledFloorAt(s.Schedule, s.Height); ok {
		return s, []types.Effect{raise(types.StopMoving()), raise(types.DoorsOpenCmd())}, true
	}
	return s, nil, true
}

// syncDirection keeps direction None exactly when the car is at rest with nothing scheduled.
func syncDirection(s ElevState) types.Direction {
	if s.Phase == types.Moving {
		return s.Dir
	}
	if len(s.Schedule) == 0 {
		return types.DirNone
	}
	if s.Dir == types.DirNone {
		return directionTo(s.Height, s.Schedule[0])
	}
	return s.Dir
}

func raise(cmd types.Command) types.Effect {
	return types.Effect{Kind: types.EffRaise, Cmd: cmd}
}

func delay(cmd types.Command) types.Effect {
	return types.Effect{Kind: types.EffStartDoorDelay, Cmd: cmd}
}
