package utils

import (
	"fmt"
	"strings"

	"singlevator/src/types"
)

// FormatStatus renders a snapshot as a single status line, padded so it can overwrite
// the previous line after a carriage return.
func FormatStatus(snap types.Snapshot) string {
	floors := make([]string, len(snap.Schedule))
	for i, f := range snap.Schedule {
		floors[i] = fmt.Sprint(f)
	}
	line := fmt.Sprintf("Height: %.2f | %s | Dir: %s | Schedule: [%s] | Weight: %d/%d",
		snap.Height, snap.Phase, snap.Dir, strings.Join(floors, " "), snap.Weight, snap.WeightLimit)
	return fmt.Sprintf("%-90s", line)
}

// FormatShaft draws the shaft with the car marked, top floor first.
func FormatShaft(snap types.Snapshot) string {
	var b strings.Builder
	for f := snap.FloorCount - 1; f >= 0; f-- {
		car := " "
		if snap.Height > float64(f)-0.5 && snap.Height <= float64(f)+0.5 {
			car = "#"
		}
		mark := " "
		for _, s := range snap.Schedule {
			if s == f {
				mark = "*"
			}
		}
		fmt.Fprintf(&b, "%2d |%s| %s\n", f, car, mark)
	}
	return b.String()
}
