// Package panel connects the car to an elevator server: button presses become floor requests
// and the lamps follow the controller snapshots.
package panel

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"singlevator/lib/driver-go/elevio"
	"singlevator/src/types"
)

// Car is the part of the executor the panel drives.
type Car interface {
	PressButton(ctx context.Context, floor int) error
	Subscribe() <-chan types.Snapshot
}

type lampWriter interface {
	SetButtonLamp(button elevio.ButtonType, floor int, value bool) error
	SetFloorIndicator(floor int) error
	SetDoorOpenLamp(value bool) error
}

type hardware struct{}

func (hardware) SetButtonLamp(b elevio.ButtonType, f int, v bool) error {
	return elevio.SetButtonLamp(b, f, v)
}
func (hardware) SetFloorIndicator(f int) error { return elevio.SetFloorIndicator(f) }
func (hardware) SetDoorOpenLamp(v bool) error { return elevio.SetDoorOpenLamp(v) }

// Run serves the panel at addr until ctx is done, the car stops, or the connection fails.
func Run(ctx context.Context, addr string, numFloors int, pollRate time.Duration, car Car) error {
	if err := elevio.Init(addr); err != nil {
		return err
	}
	defer elevio.Close()
	slog.Info("Panel connected", "addr", addr)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	buttons := make(chan elevio.ButtonEvent)
	pollErr := make(chan error, 1)
	go func() { pollErr <- elevio.PollButtons(ctx, numFloors, pollRate, buttons) }()

	snaps := car.Subscribe()
	lamps := newLamps(hardware{}, numFloors)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-pollErr:
			return fmt.Errorf("panel: %w", err)
		case btn := <-buttons:
			slog.Debug("Panel button pressed", "button", FormatBtnEvent(btn))
			if err := car.PressButton(ctx, btn.Floor); err != nil {
				return err
			}
		case snap, ok := <-snaps:
			if !ok {
				return nil
			}
			if err := lamps.sync(snap); err != nil {
				return fmt.Errorf("panel: %w", err)
			}
		}
	}
}

// lamps remembers what is lit so only changes are written.
type lamps struct {
	w         lampWriter
	numFloors int
	floor     int
	door      bool
	requested []bool
	synced    bool
}

func newLamps(w lampWriter, numFloors int) *lamps {
	return &lamps{w: w, numFloors: numFloors, floor: -1, requested: make([]bool, numFloors)}
}

func (l *lamps) sync(snap types.Snapshot) error {
	if f := snap.AtFloor(); f >= 0 && f != l.floor {
		if err := l.w.SetFloorIndicator(f); err != nil {
			return err
		}
		l.floor = f
	}

	door := snap.Phase == types.DoorsOpening || snap.Phase == types.DoorsOpen
	if door != l.door || !l.synced {
		if err := l.w.SetDoorOpenLamp(door); err != nil {
			return err
		}
		l.door = door
	}

	for f := 0; f < l.numFloors; f++ {
		want := slices.Contains(snap.Schedule, f)
		if want == l.requested[f] && l.synced {
			continue
		}
		for _, b := range l.buttonsAt(f) {
			if err := l.w.SetButtonLamp(b, f, want); err != nil {
				return err
			}
		}
		l.requested[f] = want
	}
	l.synced = true
	return nil
}

// buttonsAt lists the buttons that exist on floor f.
func (l *lamps) buttonsAt(f int) []elevio.ButtonType {
	buttons := []elevio.ButtonType{elevio.BT_Cab}
	if f < l.numFloors-1 {
		buttons = append(buttons, elevio.BT_HallUp)
	}
	if f > 0 {
		buttons = append(buttons, elevio.BT_HallDown)
	}
	return buttons
}

func FormatBtnEvent(btnEvent elevio.ButtonEvent) string {
	switch btnEvent.Button {
	case elevio.BT_HallUp:
		return fmt.Sprintf("HallUp(%d)", btnEvent.Floor)
	case elevio.BT_HallDown:
		return fmt.Sprintf("HallDown(%d)", btnEvent.Floor)
	case elevio.BT_Cab:
		return fmt.Sprintf("Cab(%d)", btnEvent.Floor)
	}
	return "Unknown"
}
