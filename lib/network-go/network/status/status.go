// Package status broadcasts controller snapshots over UDP so remote displays can render the car.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"singlevator/lib/network-go/network/conn"
	"singlevator/src/types"
)

const bufSize = 1024

var ErrMessageTooLarge = errors.New("status: message larger than buffer")

// BroadcastAddr returns the broadcast destination for port.
func BroadcastAddr(port int) string {
	return fmt.Sprintf("255.255.255.255:%d", port)
}

func Encode(snap types.Snapshot) ([]byte, error) {
	b, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	if len(b) > bufSize {
		return nil, fmt.Errorf("%w (length: %d, buffer size: %d)", ErrMessageTooLarge, len(b), bufSize)
	}
	return b, nil
}

func Decode(b []byte) (types.Snapshot, error) {
	var snap types.Snapshot
	err := json.Unmarshal(b, &snap)
	return snap, err
}

// Transmitter sends every new snapshot to dest and repeats the latest one every interval,
// so displays that start late still catch up. It returns when ctx is done or snapshots is closed.
func Transmitter(ctx context.Context, dest string, interval time.Duration, snapshots <-chan types.Snapshot) error {
	pc, err := conn.DialBroadcastUDP(0)
	if err != nil {
		return err
	}
	defer pc.Close()
	addr, err := net.ResolveUDPAddr("udp4", dest)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dest, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var payload []byte
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			b, err := Encode(snap)
			if err != nil {
				slog.Warn("Snapshot not broadcast", "error", err)
				continue
			}
			payload = b
		case <-ticker.C:
		}
		if payload == nil {
			continue
		}
		if _, err := pc.WriteTo(payload, addr); err != nil {
			slog.Warn("Status broadcast failed", "dest", dest, "error", err)
		}
	}
}

// Receiver decodes snapshots arriving on port and forwards them to out until ctx is done.
func Receiver(ctx context.Context, port int, out chan<- types.Snapshot) error {
	pc, err := conn.DialBroadcastUDP(port)
	if err != nil {
		return err
	}
	defer pc.Close()

	var buf [bufSize]byte
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := pc.SetReadDeadline(time.Now().Add(100 * time.Millisecond)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}
		n, _, err := pc.ReadFrom(buf[:])
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("read status: %w", err)
		}
		snap, err := Decode(buf[:n])
		if err != nil {
			slog.Debug("Ignoring malformed status message", "error", err)
			continue
		}
		select {
		case out <- snap:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
