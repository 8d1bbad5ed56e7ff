package elev

import (
	"log/slog"

	"singlevator/src/types"

	"github.com/tiendc/go-deepcopy"
)

// Controller owns the elevator state and is its only writer.
// It is not safe for concurrent use; the executor serializes access to it.
type Controller struct {
	state ElevState
	log   *slog.Logger
}

func New(floorCount, weightLimit int, logger *slog.Logger) (*Controller, error) {
	state, err := NewElevState(floorCount, weightLimit)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Elevator initialized", "floors", floorCount, "weightLimit", weightLimit)
	return &Controller{state: state, log: logger}, nil
}

// Dispatch applies cmd, then every command raised while handling it, before returning.
// The returned effects are the collaborator instructions in the order they were produced.
func (c *Controller) Dispatch(cmd types.Command) []types.Effect {
	var out []types.Effect
	queue := []types.Command{cmd}
	limit := maxRaisedCommands(c.state)

	for steps := 0; len(queue) > 0; steps++ {
		if steps > limit {
			c.log.Warn("Raised command limit reached, dropping remaining commands",
				"limit", limit,
				"dropped", len(queue))
			break
		}
		next := queue[0]
		queue = queue[1:]

		state, effects, ok := transition(c.state, next)
		if !ok {
			c.log.Debug("Command ignored",
				"cmd", FormatCommand(next),
				"phase", c.state.Phase)
			continue
		}
		state.Dir = syncDirection(state)
		if state.Phase != c.state.Phase {
			c.log.Debug("Phase changed",
				"cmd", FormatCommand(next),
				"from", c.state.Phase,
				"to", state.Phase,
				"height", state.Height,
				"schedule", state.Schedule)
		}
		c.state = state

		for _, eff := range effects {
			if eff.Kind == types.EffRaise {
				queue = append(queue, eff.Cmd)
				continue
			}
			out = append(out, eff)
		}
	}
	return out
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() types.Snapshot {
	snap := new(types.Snapshot)
	if err := deepcopy.Copy(snap, &c.state); err != nil {
		panic(err)
	}
	return *snap
}

// maxRaisedCommands bounds the commands handled in one Dispatch. No chain of raised commands
// is longer than a few steps, so hitting the bound means a transition keeps re-raising.
func maxRaisedCommands(s ElevState) int {
	return len(s.Schedule) + s.FloorCount + 4
}
