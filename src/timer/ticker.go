package timer

import "time"

// Ticker delivers movement ticks at a fixed rate while started.
type Ticker struct {
	t        *time.Ticker
	interval time.Duration
}

func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{interval: interval}
}

// Start begins ticking. Starting a running ticker restarts its period.
func (tk *Ticker) Start() {
	if tk.t != nil {
		tk.t.Reset(tk.interval)
		return
	}
	tk.t = time.NewTicker(tk.interval)
}

// Stop halts the ticker; no tick is received after Stop returns. Stopping a stopped ticker does nothing.
func (tk *Ticker) Stop() {
	if tk.t == nil {
		return
	}
	tk.t.Stop()
	select {
	case <-tk.t.C:
	default:
	}
	tk.t = nil
}

// C returns the tick channel, or nil while stopped.
func (tk *Ticker) C() <-chan time.Time {
	if tk.t == nil {
		return nil
	}
	return tk.t.C
}

func (tk *Ticker) Active() bool {
	return tk.t != nil
}
