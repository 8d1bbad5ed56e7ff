package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"singlevator/src/config"
	"singlevator/src/elev"
	"singlevator/src/timer"
	"singlevator/src/types"
)

var (
	ErrInternalCommand = errors.New("command is internal to the controller")
	ErrStopped         = errors.New("executor stopped")
)

const inboundQueueSize = 32

// request is either a command or, when query is set, a snapshot query.
type request struct {
	cmd   types.Command
	query chan types.Snapshot
}

// Driver owns the controller and its collaborators and feeds every stimulus through one loop.
type Driver struct {
	ctrl      *elev.Controller
	requests  chan request
	done      chan struct{}
	ticker    *timer.Ticker
	doorTimer *timer.Timer[types.Command]
	doorDelay *timer.Timer[types.Command]
	tickStep  float64
	log       *slog.Logger

	mu     sync.Mutex
	subs   []chan types.Snapshot
	latest *types.Snapshot
}

func New(ctrl *elev.Controller, cfg config.Config, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Driver{
		ctrl:      ctrl,
		requests:  make(chan request, inboundQueueSize),
		done:      make(chan struct{}),
		ticker:    timer.NewTicker(cfg.TickInterval),
		doorTimer: timer.NewTimer[types.Command](cfg.IdleDelay),
		doorDelay: timer.NewTimer[types.Command](cfg.DoorDelay),
		tickStep:  cfg.TickStep,
		log:       logger,
	}
}

// Run processes stimuli until ctx is cancelled. It must be called once.
//   - external commands and snapshot queries, in arrival order
//   - movement ticks while the car is moving
//   - door auto-close and door delay expiries
func (d *Driver) Run(ctx context.Context) error {
	defer d.shutdown()
	d.log.Info("Elevator executor started")
	d.publish()

	for {
		select {
		case <-ctx.Done():
			d.log.Info("Elevator executor stopping", "reason", context.Cause(ctx))
			return ctx.Err()

		case req := <-d.requests:
			if req.query != nil {
				req.query <- d.ctrl.Snapshot()
				continue
			}
			d.dispatch(req.cmd)

		case <-d.ticker.C():
			d.dispatch(types.Tick(d.tickStep))
		case <-d.doorTimer.C():
			d.dispatch(d.doorTimer.Expire())
		case <-d.doorDelay.C():
			d.dispatch(d.doorDelay.Expire())
		}
	}
}

// Submit queues an external command. Internal commands are refused.
func (d *Driver) Submit(ctx context.Context, cmd types.Command) error {
	if cmd.Kind.Internal() {
		return fmt.Errorf("%w: %s", ErrInternalCommand, cmd.Kind)
	}
	return d.send(ctx, request{cmd: cmd})
}

func (d *Driver) PressButton(ctx context.Context, floor int) error {
	return d.Submit(ctx, types.PressButton(floor))
}

func (d *Driver) DoorsOpen(ctx context.Context) error {
	return d.Submit(ctx, types.DoorsOpenCmd())
}

func (d *Driver) DoorsClose(ctx context.Context) error {
	return d.Submit(ctx, types.DoorsCloseCmd())
}

func (d *Driver) Enter(ctx context.Context, weight int) error {
	return d.Submit(ctx, types.Enter(weight))
}

func (d *Driver) Exit(ctx context.Context, weight int) error {
	return d.Submit(ctx, types.Exit(weight))
}

// Snapshot returns the controller state as seen between two processed commands.
func (d *Driver) Snapshot(ctx context.Context) (types.Snapshot, error) {
	reply := make(chan types.Snapshot, 1)
	if err := d.send(ctx, request{query: reply}); err != nil {
		return types.Snapshot{}, err
	}
	select {
	case snap := <-reply:
		return snap, nil
	case <-d.done:
		return types.Snapshot{}, ErrStopped
	case <-ctx.Done():
		return types.Snapshot{}, ctx.Err()
	}
}

// Subscribe returns a channel that receives the latest snapshot after every processed stimulus.
// Slow readers only miss intermediate snapshots. Late subscribers start with the most recent
// snapshot. The channel is closed when Run returns.
func (d *Driver) Subscribe() <-chan types.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan types.Snapshot, 1)
	select {
	case <-d.done:
		close(ch)
	default:
		if d.latest != nil {
			ch <- *d.latest
		}
		d.subs = append(d.subs, ch)
	}
	return ch
}

func (d *Driver) send(ctx context.Context, req request) error {
	select {
	case <-d.done:
		return ErrStopped
	default:
	}
	select {
	case d.requests <- req:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Driver) dispatch(cmd types.Command) {
	for _, e := range d.ctrl.Dispatch(cmd) {
		d.apply(e)
	}
	d.publish()
}

func (d *Driver) publish() {
	snap := d.ctrl.Snapshot()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.latest = &snap
	for _, ch := range d.subs {
		select {
		case ch <- snap:
		default:
			// Replace the unread snapshot with the newer one.
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}

func (d *Driver) shutdown() {
	d.ticker.Stop()
	d.doorTimer.Cancel()
	d.doorDelay.Cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	close(d.done)
	for _, ch := range d.subs {
		close(ch)
	}
	d.subs = nil
}
