package panel

import (
	"testing"

	"singlevator/lib/driver-go/elevio"
	"singlevator/src/types"
)

type lampCall struct {
	kind   string
	button elevio.ButtonType
	floor  int
	value  bool
}

type fakeWriter struct {
	calls []lampCall
}

func (w *fakeWriter) SetButtonLamp(b elevio.ButtonType, f int, v bool) error {
	w.calls = append(w.calls, lampCall{"button", b, f, v})
	return nil
}

func (w *fakeWriter) SetFloorIndicator(f int) error {
	w.calls = append(w.calls, lampCall{kind: "floor", floor: f})
	return nil
}

func (w *fakeWriter) SetDoorOpenLamp(v bool) error {
	w.calls = append(w.calls, lampCall{kind: "door", value: v})
	return nil
}

func (w *fakeWriter) count(kind string) int {
	n := 0
	for _, c := range w.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

func TestLampsFirstSyncWritesEverything(t *testing.T) {
	w := &fakeWriter{}
	l := newLamps(w, 4)
	if err := l.sync(types.Snapshot{Phase: types.DoorsClosed, FloorCount: 4}); err != nil {
		t.Fatal(err)
	}
	if w.count("floor") != 1 || w.count("door") != 1 {
		t.Errorf("calls = %+v, expected one floor and one door write", w.calls)
	}
	// Cab on every floor, hall up on 0-2, hall down on 1-3.
	if got := w.count("button"); got != 4+3+3 {
		t.Errorf("button writes = %d, expected 10", got)
	}
}

func TestLampsOnlyWriteChanges(t *testing.T) {
	w := &fakeWriter{}
	l := newLamps(w, 4)
	l.sync(types.Snapshot{Phase: types.DoorsClosed, FloorCount: 4})
	w.calls = nil

	l.sync(types.Snapshot{Phase: types.Moving, Height: 0.5, Schedule: []int{3}, FloorCount: 4})
	want := []lampCall{
		{"button", elevio.BT_Cab, 3, true},
		{"button", elevio.BT_HallDown, 3, true},
	}
	if len(w.calls) != len(want) {
		t.Fatalf("calls = %+v, expected %+v", w.calls, want)
	}
	for i := range want {
		if w.calls[i] != want[i] {
			t.Errorf("call %d = %+v, expected %+v", i, w.calls[i], want[i])
		}
	}

	w.calls = nil
	l.sync(types.Snapshot{Phase: types.DoorsOpening, Height: 3, FloorCount: 4})
	if w.count("floor") != 1 || w.count("door") != 1 || w.count("button") != 2 {
		t.Errorf("arrival calls = %+v", w.calls)
	}
}

func TestFormatBtnEvent(t *testing.T) {
	if got := FormatBtnEvent(elevio.ButtonEvent{Floor: 2, Button: elevio.BT_HallUp}); got != "HallUp(2)" {
		t.Errorf("FormatBtnEvent = %q", got)
	}
}
