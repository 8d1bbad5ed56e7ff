package elev

import (
	"reflect"
	"slices"
	"testing"

	"singlevator/src/types"
)

func eff(kind types.EffectKind) types.Effect { return types.Effect{Kind: kind} }

func TestTransitionTable(t *testing.T) {
	closed := ElevState{Phase: types.DoorsClosed, FloorCount: 6, WeightLimit: 8, Height: 2}
	moving := ElevState{Phase: types.Moving, Dir: types.DirUp, FloorCount: 6, WeightLimit: 8, Height: 2, Schedule: []int{3}}
	open := ElevState{Phase: types.DoorsOpen, FloorCount: 6, WeightLimit: 8, Height: 3, Weight: 2}

	tests := []struct {
		name        string
		state       ElevState
		cmd         types.Command
		wantPhase   types.Phase
		wantDir     types.Direction
		wantEffects []types.Effect
	}{
		{"check empty schedule", closed, types.CheckSchedule(), types.DoorsClosed, types.DirNone, nil},
		{"start moving", ElevState{Phase: types.DoorsClosed, Dir: types.DirUp, FloorCount: 6, WeightLimit: 8, Schedule: []int{4}},
			types.StartMoving(4), types.Moving, types.DirUp, []types.Effect{eff(types.EffStartTicker)}},
		{"doors open at rest", closed, types.DoorsOpenCmd(), types.DoorsOpening, types.DirNone,
			[]types.Effect{{Kind: types.EffStartDoorDelay, Cmd: types.DoorsOpenedCmd()}}},
		{"doors opened", ElevState{Phase: types.DoorsOpening, FloorCount: 6, WeightLimit: 8},
			types.DoorsOpenedCmd(), types.DoorsOpen, types.DirNone, []types.Effect{eff(types.EffStartDoorTimer)}},
		{"tick between floors", moving, types.Tick(0.25), types.Moving, types.DirUp, nil},
		{"enter", open, types.Enter(1), types.DoorsOpen, types.DirNone, []types.Effect{eff(types.EffRestartDoorTimer)}},
		{"exit", open, types.Exit(1), types.DoorsOpen, types.DirNone, []types.Effect{eff(types.EffRestartDoorTimer)}},
		{"doors close", open, types.DoorsCloseCmd(), types.DoorsClosing, types.DirNone,
			[]types.Effect{eff(types.EffCancelDoorTimer), {Kind: types.EffStartDoorDelay, Cmd: types.DoorsClosedCmd()}}},
		{"doors closed", ElevState{Phase: types.DoorsClosing, FloorCount: 6, WeightLimit: 8},
			types.DoorsClosedCmd(), types.DoorsClosed, types.DirNone, []types.Effect{raise(types.CheckSchedule())}},

		// Illegal for the phase
		{"doors open while moving", moving, types.DoorsOpenCmd(), types.Moving, types.DirUp, nil},
		{"enter with doors closed", closed, types.Enter(1), types.DoorsClosed, types.DirNone, nil},
		{"tick at rest", closed, types.Tick(0.25), types.DoorsClosed, types.DirNone, nil},
		{"doors close while opening", ElevState{Phase: types.DoorsOpening, FloorCount: 6, WeightLimit: 8},
			types.DoorsCloseCmd(), types.DoorsOpening, types.DirNone, nil},
		{"start moving with doors open", open, types.StartMoving(5), types.DoorsOpen, types.DirNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, effects := Transition(tt.state, tt.cmd)
			if got.Phase != tt.wantPhase {
				t.Errorf("phase = %v, expected %v", got.Phase, tt.wantPhase)
			}
			if got.Dir != tt.wantDir {
				t.Errorf("direction = %v, expected %v", got.Dir, tt.wantDir)
			}
			if !reflect.DeepEqual(effects, tt.wantEffects) {
				t.Errorf("effects = %v, expected %v", effects, tt.wantEffects)
			}
		})
	}
}

func TestCheckScheduleChoosesDirection(t *testing.T) {
	s := ElevState{Phase: types.DoorsClosed, FloorCount: 6, WeightLimit: 8, Height: 3, Schedule: []int{1, 5}}
	got, effects := Transition(s, types.CheckSchedule())
	if got.Dir != types.DirDown {
		t.Errorf("direction = %v, expected Down", got.Dir)
	}
	want := []types.Effect{raise(types.StartMoving(1))}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}
}

func TestTickStopsOnScheduledFloor(t *testing.T) {
	s := ElevState{Phase: types.Moving, Dir: types.DirDown, FloorCount: 6, WeightLimit: 8, Height: 1.25, Schedule: []int{1, 4}}
	got, effects := Transition(s, types.Tick(0.25))
	if got.Height != 1 {
		t.Fatalf("height = %v, expected 1", got.Height)
	}
	want := []types.Effect{raise(types.StopMoving()), raise(types.DoorsOpenCmd())}
	if !reflect.DeepEqual(effects, want) {
		t.Errorf("effects = %v, expected %v", effects, want)
	}

	got, effects = Transition(got, types.StopMoving())
	if got.Phase != types.DoorsClosed || !slices.Equal(got.Schedule, []int{4}) {
		t.Errorf("after stop-moving phase=%v schedule=%v", got.Phase, got.Schedule)
	}
	if got.Dir != types.DirDown {
		t.Errorf("direction = %v, expected Down to be kept while floors remain", got.Dir)
	}
	if !reflect.DeepEqual(effects, []types.Effect{eff(types.EffStopTicker)}) {
		t.Errorf("effects = %v", effects)
	}
}

func TestTickPassesUnscheduledFloor(t *testing.T) {
	s := ElevState{Phase: types.Moving, Dir: types.DirUp, FloorCount: 6, WeightLimit: 8, Height: 1.5, Schedule: []int{4}}
	got, effects := Transition(s, types.Tick(0.5))
	if got.Height != 2 || got.Phase != types.Moving || effects != nil {
		t.Errorf("height=%v phase=%v effects=%v", got.Height, got.Phase, effects)
	}
}

func TestTickSnapsToFloor(t *testing.T) {
	s := ElevState{Phase: types.Moving, Dir: types.DirUp, FloorCount: 6, WeightLimit: 8, Schedule: []int{1}}
	for i := 0; i < 10; i++ {
		s, _ = Transition(s, types.Tick(0.1))
	}
	if s.Height != 1 {
		t.Errorf("height after ten 0.1 ticks = %v, expected exactly 1", s.Height)
	}
	if s.Schedule[0] != 1 {
		t.Fatalf("schedule changed unexpectedly: %v", s.Schedule)
	}
}

func TestTickClampsToShaft(t *testing.T) {
	s := ElevState{Phase: types.Moving, Dir: types.DirDown, FloorCount: 6, WeightLimit: 8, Height: 0.1, Schedule: []int{5}}
	got, _ := Transition(s, types.Tick(0.5))
	if got.Height != 0 {
		t.Errorf("height = %v, expected clamp to 0", got.Height)
	}
}

func TestWeightGuards(t *testing.T) {
	tests := []struct {
		name   string
		weight int
		cmd    types.Command
		want   int
	}{
		{"enter below limit", 7, types.Enter(1), 8},
		{"enter at limit", 8, types.Enter(1), 8},
		{"enter past limit", 6, types.Enter(3), 6},
		{"exit from zero", 0, types.Exit(1), 0},
		{"exit too many", 1, types.Exit(2), 1},
		{"exit", 3, types.Exit(2), 1},
		{"zero enter", 3, types.Enter(0), 3},
		{"negative exit", 3, types.Exit(-1), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ElevState{Phase: types.DoorsOpen, FloorCount: 6, WeightLimit: 8, Weight: tt.weight}
			got, _ := Transition(s, tt.cmd)
			if got.Weight != tt.want {
				t.Errorf("weight = %d, expected %d", got.Weight, tt.want)
			}
		})
	}
}

func TestPressButtonGuards(t *testing.T) {
	base := ElevState{Phase: types.DoorsOpen, FloorCount: 6, WeightLimit: 8, Height: 2, Dir: types.DirUp, Schedule: []int{4}}
	for _, floor := range []int{2, 4, -1, 6} {
		got, effects := Transition(base, types.PressButton(floor))
		if !slices.Equal(got.Schedule, base.Schedule) || effects != nil {
			t.Errorf("press_button(%d) changed schedule to %v with effects %v", floor, got.Schedule, effects)
		}
	}
}

// Scenario D
func TestPressButtonForCurrentFloorIsNoop(t *testing.T) {
	s := ElevState{Phase: types.DoorsClosed, FloorCount: 6, WeightLimit: 8, Height: 2}
	got, effects := Transition(s, types.PressButton(2))
	if len(got.Schedule) != 0 || effects != nil || got.Phase != types.DoorsClosed {
		t.Errorf("press_button(2) at floor 2: schedule=%v phase=%v effects=%v", got.Schedule, got.Phase, effects)
	}
}

// Scenario E
func TestPressButtonPrependsAheadOfTravel(t *testing.T) {
	s := ElevState{Phase: types.Moving, Dir: types.DirUp, FloorCount: 6, WeightLimit: 8, Height: 2, Schedule: []int{5}}
	got, effects := Transition(s, types.PressButton(4))
	if !slices.Equal(got.Schedule, []int{4, 5}) {
		t.Errorf("schedule = %v, expected [4 5]", got.Schedule)
	}
	if !reflect.DeepEqual(effects, []types.Effect{raise(types.CheckSchedule())}) {
		t.Errorf("effects = %v", effects)
	}
	if !slices.Equal(s.Schedule, []int{5}) {
		t.Errorf("input schedule modified: %v", s.Schedule)
	}
}

func TestPressButtonWhileDoorsOpenSetsDirection(t *testing.T) {
	s := ElevState{Phase: types.DoorsOpen, FloorCount: 6, WeightLimit: 8, Height: 3}
	got, _ := Transition(s, types.PressButton(1))
	if got.Dir != types.DirDown {
		t.Errorf("direction = %v, expected Down toward the new head", got.Dir)
	}
	if got.Phase != types.DoorsOpen {
		t.Errorf("phase = %v, expected DoorsOpen", got.Phase)
	}
}
