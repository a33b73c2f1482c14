package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
)

// eventLog keeps the most recent rebind messages.
type eventLog struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func newEventLog(max int) *eventLog {
	return &eventLog{max: max}
}

func (l *eventLog) Add(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
	if len(l.lines) > l.max {
		l.lines = l.lines[len(l.lines)-l.max:]
	}
}

func (l *eventLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Lines renders the session status as plain text, one row per action.
func (a *Application) Lines() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	pp := a.active
	out := []string{
		fmt.Sprintf("profile %s (%s)  F5 next profile", pp.Name, pp.Platform()),
		fmt.Sprintf("bindings %s  reloads %d", a.opts.BindingsPath, a.reloads),
	}
	if a.script != nil {
		out = append(out, fmt.Sprintf("script %s  %s", a.script.Name(), a.script.State()))
	}
	if a.lastErr != nil {
		out = append(out, "error: "+firstLine(a.lastErr.Error()))
	}
	out = append(out, "")

	for _, act := range pp.Actions() {
		out = append(out, actionLine(act))
	}

	if recent := a.events.Lines(); len(recent) > 0 {
		out = append(out, "", "recent:")
		for _, line := range recent {
			out = append(out, "  "+line)
		}
	}
	return out
}

func actionLine(act action.Action) string {
	switch act := act.(type) {
	case *action.Button:
		state := "-"
		switch {
		case act.Pressed():
			state = "DOWN"
		case act.Released():
			state = "UP"
		case act.Held():
			state = "held"
		}
		return fmt.Sprintf("%-12s button %-14s %s | %s", act.Label(), state, name(act.Primary()), name(act.Alt()))
	case *action.Axis:
		v := act.Value()
		value := fmt.Sprintf("(%5.2f,%5.2f)", v.X, v.Y)
		line := fmt.Sprintf("%-12s axis   %-14s %s", act.Label(), value, act.AxisKind())
		if act.AxisKind() == action.AxisButtons {
			line += fmt.Sprintf("  %s | %s", sources(act.Primary()), sources(act.Alt()))
		}
		return line
	}
	return act.Label()
}

func sources(s action.Sources) string {
	return strings.Join([]string{name(s.PositiveX), name(s.NegativeX), name(s.PositiveY), name(s.NegativeY)}, " ")
}

func name(c control.Control) string {
	if c == control.ControlNone {
		return "-"
	}
	return c.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
