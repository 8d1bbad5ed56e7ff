package executor

import (
	"singlevator/src/types"
)

// apply carries out one controller effect on the owned collaborators.
func (d *Driver) apply(e types.Effect) {
	switch e.Kind {
	case types.EffStartTicker:
		d.ticker.Start()
	case types.EffStopTicker:
		d.ticker.Stop()
	case types.EffStartDoorTimer, types.EffRestartDoorTimer:
		// The idle timer always closes the doors; a restart re-arms the full delay.
		d.doorTimer.Start(types.DoorsCloseCmd())
	case types.EffCancelDoorTimer:
		d.doorTimer.Cancel()
	case types.EffStartDoorDelay:
		d.doorDelay.Start(e.Cmd)
	default:
		d.log.Warn("Unhandled effect", "effect", e.Kind)
	}
	d.log.Debug("Effect applied", "effect", e.Kind)
}
