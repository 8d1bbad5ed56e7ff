// This file defines types and functions for interfacing with the elevator hardware.
// It establishes a TCP connection with the elevator server and mirrors the car panel.
package elevio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

var ErrNotInitialized = errors.New("elevio: driver not initialized")

type ButtonType int

const (
	BT_HallUp ButtonType = iota
	BT_HallDown
	BT_Cab
)

const NumButtons = 3

type ButtonEvent struct {
	Floor  int
	Button ButtonType
}

var (
	_mtx  sync.Mutex
	_conn net.Conn
)

// Init opens the TCP connection to the elevator server.
func Init(addr string) error {
	_mtx.Lock()
	defer _mtx.Unlock()
	if _conn != nil {
		return fmt.Errorf("elevio: already connected to %s", _conn.RemoteAddr())
	}
	conn, err := net.DialTimeout("tcp", addr, 2*time.Second)
	if err != nil {
		return fmt.Errorf("elevio: dial %s: %w", addr, err)
	}
	_conn = conn
	return nil
}

// Close drops the connection so Init can be called again.
func Close() error {
	_mtx.Lock()
	defer _mtx.Unlock()
	if _conn == nil {
		return nil
	}
	err := _conn.Close()
	_conn = nil
	return err
}

func SetButtonLamp(button ButtonType, floor int, value bool) error {
	return write([4]byte{2, byte(button), byte(floor), toByte(value)})
}

func SetFloorIndicator(floor int) error {
	return write([4]byte{3, byte(floor), 0, 0})
}

func SetDoorOpenLamp(value bool) error {
	return write([4]byte{4, toByte(value), 0, 0})
}

// PollButtons sends an event for every button press until ctx is done or the connection fails.
func PollButtons(ctx context.Context, numFloors int, pollRate time.Duration, receiver chan<- ButtonEvent) error {
	prev := make([][NumButtons]bool, numFloors)
	ticker := time.NewTicker(pollRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		for f := 0; f < numFloors; f++ {
			for b := ButtonType(0); b < NumButtons; b++ {
				v, err := GetButton(b, f)
				if err != nil {
					return err
				}
				if v != prev[f][b] && v {
					select {
					case receiver <- ButtonEvent{Floor: f, Button: b}:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				prev[f][b] = v
			}
		}
	}
}

func GetButton(button ButtonType, floor int) (bool, error) {
	a, err := read([4]byte{6, byte(button), byte(floor), 0})
	if err != nil {
		return false, err
	}
	return toBool(a[1]), nil
}

func read(in [4]byte) ([4]byte, error) {
	_mtx.Lock()
	defer _mtx.Unlock()

	var out [4]byte
	if _conn == nil {
		return out, ErrNotInitialized
	}
	if _, err := _conn.Write(in[:]); err != nil {
		return out, fmt.Errorf("elevio: lost connection to elevator server: %w", err)
	}
	if _, err := io.ReadFull(_conn, out[:]); err != nil {
		return out, fmt.Errorf("elevio: lost connection to elevator server: %w", err)
	}
	return out, nil
}

func write(in [4]byte) error {
	_mtx.Lock()
	defer _mtx.Unlock()

	if _conn == nil {
		return ErrNotInitialized
	}
	if _, err := _conn.Write(in[:]); err != nil {
		return fmt.Errorf("elevio: lost connection to elevator server: %w", err)
	}
	return nil
}

func toByte(a bool) byte {
	var b byte = 0
	if a {
		b = 1
	}
	return b
}

func toBool(a byte) bool {
	return a != 0
}
