package timer

import (
	"time"
)

// Timer is a restartable one-shot timer carrying a payload.
// It is owned by a single goroutine, which selects on C and calls Expire on receive.
type Timer[T any] struct {
	t        *time.Timer
	duration time.Duration
	payload  T
	active   bool
}

func NewTimer[T any](duration time.Duration) *Timer[T] {
	t := time.NewTimer(duration)
	t.Stop()
	return &Timer[T]{t: t, duration: duration}
}

// Start arms the timer with payload. A pending delivery is discarded and the full duration starts over.
func (tm *Timer[T]) Start(payload T) {
	resetTimer(tm.t, tm.duration)
	tm.payload = payload
	tm.active = true
}

// Cancel discards a pending delivery. Cancelling an idle or expired timer does nothing.
func (tm *Timer[T]) Cancel() {
	stopTimer(tm.t)
	var zero T
	tm.payload = zero
	tm.active = false
}

// C returns the expiry channel, or nil while the timer is idle so a select never fires on it.
func (tm *Timer[T]) C() <-chan time.Time {
	if !tm.active {
		return nil
	}
	return tm.t.C
}

// Expire marks the timer idle and returns its payload. Call it after receiving from C.
func (tm *Timer[T]) Expire() T {
	p := tm.payload
	var zero T
	tm.payload = zero
	tm.active = false
	return p
}

func (tm *Timer[T]) Active() bool {
	return tm.active
}

// Stops the timer and drains a value that already fired.
func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, d time.Duration) {
	stopTimer(t)
	t.Reset(d)
}
