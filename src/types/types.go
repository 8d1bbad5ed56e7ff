package types

import "fmt"

type Phase int

const (
	DoorsClosed Phase = iota
	DoorsOpening
	Moving
	DoorsOpen
	DoorsClosing
)

func (p Phase) String() string {
	switch p {
	case DoorsClosed:
		return "DoorsClosed"
	case DoorsOpening:
		return "DoorsOpening"
	case Moving:
		return "Moving"
	case DoorsOpen:
		return "DoorsOpen"
	case DoorsClosing:
		return "DoorsClosing"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Sign returns +1 for Up, -1 for Down and 0 otherwise.
func (d Direction) Sign() float64 {
	switch d {
	case DirUp:
		return 1
	case DirDown:
		return -1
	}
	return 0
}

type CommandKind int

const (
	// External commands
	CmdPressButton CommandKind = iota
	CmdDoorsOpen
	CmdDoorsClose
	CmdEnter
	CmdExit

	// Internal commands, raised by the controller or its collaborators
	CmdCheckSchedule
	CmdStartMoving
	CmdStopMoving
	CmdTick
	CmdDoorsOpened
	CmdDoorsClosed
)

func (k CommandKind) String() string {
	switch k {
	case CmdPressButton:
		return "press-button"
	case CmdDoorsOpen:
		return "doors-open"
	case CmdDoorsClose:
		return "doors-close"
	case CmdEnter:
		return "enter"
	case CmdExit:
		return "exit"
	case CmdCheckSchedule:
		return "check-schedule"
	case CmdStartMoving:
		return "start-moving"
	case CmdStopMoving:
		return "stop-moving"
	case CmdTick:
		return "tick"
	case CmdDoorsOpened:
		return "doors-opened"
	case CmdDoorsClosed:
		return "doors-closed"
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Internal reports whether the command may only be raised from inside the controller loop.
func (k CommandKind) Internal() bool {
	return k >= CmdCheckSchedule
}

// Command is a single stimulus delivered to the controller.
// Floor is used by press-button and start-moving, Delta by tick, Weight by enter and exit.
type Command struct {
	Kind   CommandKind
	Floor  int
	Delta  float64
	Weight int
}

func PressButton(floor int) Command { return Command{Kind: CmdPressButton, Floor: floor} }
func DoorsOpenCmd() Command { return Command{Kind: CmdDoorsOpen} }
func DoorsCloseCmd() Command { return Command{Kind: CmdDoorsClose} }
func Enter(weight int) Command { return Command{Kind: CmdEnter, Weight: weight} }
func Exit(weight int) Command { return Command{Kind: CmdExit, Weight: weight} }
func CheckSchedule() Command { return Command{Kind: CmdCheckSchedule} }
func StartMoving(floor int) Command { return Command{Kind: CmdStartMoving, Floor: floor} }
func StopMoving() Command { return Command{Kind: CmdStopMoving} }
func Tick(delta float64) Command { return Command{Kind: CmdTick, Delta: delta} }
func DoorsOpenedCmd() Command { return Command{Kind: CmdDoorsOpened} }
func DoorsClosedCmd() Command { return Command{Kind: CmdDoorsClosed} }

type EffectKind int

const (
	// EffRaise feeds Cmd back into the controller before the next external stimulus.
	EffRaise EffectKind = iota
	EffStartTicker
	EffStopTicker
	EffStartDoorTimer
	EffRestartDoorTimer
	EffCancelDoorTimer
	// EffStartDoorDelay delivers Cmd after the door delay.
	EffStartDoorDelay
)

func (k EffectKind) String() string {
	switch k {
	case EffRaise:
		return "raise"
	case EffStartTicker:
		return "start-ticker"
	case EffStopTicker:
		return "stop-ticker"
	case EffStartDoorTimer:
		return "start-door-timer"
	case EffRestartDoorTimer:
		return "restart-door-timer"
	case EffCancelDoorTimer:
		return "cancel-door-timer"
	case EffStartDoorDelay:
		return "start-door-delay"
	}
	return fmt.Sprintf("EffectKind(%d)", int(k))
}

type Effect struct {
	Kind EffectKind
	Cmd  Command
}

// Snapshot is a read-only copy of the elevator state, used for rendering.
type Snapshot struct {
	Phase       Phase     `json:"phase"`
	Dir         Direction `json:"direction"`
	Height      float64   `json:"height"`
	Schedule    []int     `json:"schedule"`
	Weight      int       `json:"currentWeight"`
	WeightLimit int       `json:"weightLimit"`
	FloorCount  int       `json:"floorCount"`
}

// AtFloor returns the floor the car is level with, or -1 while between floors.
func (s Snapshot) AtFloor() int {
	f := int(s.Height)
	if float64(f) == s.Height {
		return f
	}
	return -1
}
