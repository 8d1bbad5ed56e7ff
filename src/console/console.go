// Package console drives the car from the keyboard and prints its status line.
package console

import (
	"context"
	"fmt"
	"io"

	"github.com/eiannone/keyboard"

	"singlevator/src/types"
	"singlevator/src/utils"
)

// Car is the part of the driver the console talks to.
type Car interface {
	Submit(ctx context.Context, cmd types.Command) error
	Subscribe() <-chan types.Snapshot
}

const Help = "0-9: call floor  o: open  c: close  e/+: enter  x/-: exit  q: quit"

// KeyCommand maps a key press to a car command. ok is false for unmapped keys.
func KeyCommand(char rune, key keyboard.Key) (cmd types.Command, ok bool) {
	if key == keyboard.KeySpace {
		return types.DoorsOpenCmd(), true
	}
	switch {
	case char >= '0' && char <= '9':
		return types.PressButton(int(char - '0')), true
	case char == 'o':
		return types.DoorsOpenCmd(), true
	case char == 'c':
		return types.DoorsCloseCmd(), true
	case char == 'e' || char == '+':
		return types.Enter(1), true
	case char == 'x' || char == '-':
		return types.Exit(1), true
	}
	return types.Command{}, false
}

func isQuit(char rune, key keyboard.Key) bool {
	return char == 'q' || key == keyboard.KeyCtrlC || key == keyboard.KeyEsc
}

// Run reads keys until quit or ctx is done, redrawing the status line on every snapshot.
// A quit key returns nil.
func Run(ctx context.Context, car Car, out io.Writer) error {
	keys, err := keyboard.GetKeys(10)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	fmt.Fprintln(out, Help)
	snapshots := car.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-keys:
			if ev.Err != nil {
				return fmt.Errorf("read key: %w", ev.Err)
			}
			if isQuit(ev.Rune, ev.Key) {
				fmt.Fprintln(out)
				return nil
			}
			cmd, ok := KeyCommand(ev.Rune, ev.Key)
			if !ok {
				continue
			}
			if err := car.Submit(ctx, cmd); err != nil {
				return err
			}
		case snap, ok := <-snapshots:
			if !ok {
				return nil
			}
			fmt.Fprint(out, "\r"+utils.FormatStatus(snap))
		}
	}
}
