package app

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device/termdev"
)

// TerminalTick is the terminal frontend frame interval.
const TerminalTick = time.Second / 30

// RunTerminal draws the session on the device's screen until Ctrl+C,
// Escape or ctx cancellation. The device is closed on return.
func RunTerminal(ctx context.Context, a *Application, dev *termdev.Device) error {
	defer dev.Close()

	screen := dev.Screen()
	ticker := time.NewTicker(TerminalTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for _, ev := range dev.Update() {
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		}
		if quitRequested(dev) {
			return nil
		}
		if dev.Pressed(control.KeyF5) {
			a.NextProfile()
		}
		if err := a.Frame(ctx); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		drawLines(screen, a.Lines())
	}
}

func quitRequested(dev *termdev.Device) bool {
	if dev.Pressed(control.KeyEscape) {
		return true
	}
	return dev.Pressed(control.KeyC) && dev.Held(control.KeyLeftControl)
}

func drawLines(screen tcell.Screen, lines []string) {
	screen.Clear()
	style := tcell.StyleDefault
	for y, line := range lines {
		x := 0
		for _, r := range line {
			screen.SetContent(x, y, r, nil, style)
			x++
		}
	}
	screen.Show()
}
