package device

import (
	"github.com/dshills/rebind/internal/input/control"
)

// State is an in-memory Provider stepped one frame at a time.
//
// Callers record what happened during a frame with Press, Release and the
// vector setters, query it, then call Advance before the next frame.
// Pressed and Released are computed against the previous frame, so a
// control pressed and released within one frame is not observed.
//
// State is not safe for concurrent use.
type State struct {
	layout control.Layout

	down map[control.Control]bool
	prev map[control.Control]bool

	leftStick  Vector2
	rightStick Vector2
	mouseDelta Vector2

	frame uint64
}

// StateOption configures a State.
type StateOption func(*State)

// WithLayout sets the gamepad layout used by ResolveGamepad.
func WithLayout(layout control.Layout) StateOption {
	return func(s *State) {
		s.layout = layout
	}
}

// NewState creates an empty State.
func NewState(opts ...StateOption) *State {
	s := &State{
		down: make(map[control.Control]bool),
		prev: make(map[control.Control]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout returns the gamepad layout.
func (s *State) Layout() control.Layout {
	return s.layout
}

// Frame returns the number of completed frames.
func (s *State) Frame() uint64 {
	return s.frame
}

// Press marks a control as down. The sentinel is ignored.
func (s *State) Press(c control.Control) {
	if c == control.ControlNone {
		return
	}
	s.down[c] = true
}

// Release marks a control as up.
func (s *State) Release(c control.Control) {
	delete(s.down, c)
}

// ReleaseAll marks every control as up.
func (s *State) ReleaseAll() {
	clear(s.down)
}

// SetLeftStick sets the left stick vector. It persists across frames.
func (s *State) SetLeftStick(v Vector2) {
	s.leftStick = v
}

// SetRightStick sets the right stick vector. It persists across frames.
func (s *State) SetRightStick(v Vector2) {
	s.rightStick = v
}

// AddMouseDelta accumulates mouse movement for the current frame.
func (s *State) AddMouseDelta(v Vector2) {
	s.mouseDelta = s.mouseDelta.Add(v)
}

// SetMouseDelta sets the mouse movement for the current frame.
func (s *State) SetMouseDelta(v Vector2) {
	s.mouseDelta = v
}

// Advance ends the current frame. Edge state is rebased on the current
// down set and the mouse delta is cleared.
func (s *State) Advance() {
	clear(s.prev)
	for c := range s.down {
		s.prev[c] = true
	}
	s.mouseDelta = Zero
	s.frame++
}

// Down returns the controls currently down, in no particular order.
func (s *State) Down() []control.Control {
	out := make([]control.Control, 0, len(s.down))
	for c := range s.down {
		out = append(out, c)
	}
	return out
}

// Held implements Provider.
func (s *State) Held(c control.Control) bool {
	if c == control.ControlNone {
		return false
	}
	return s.down[c]
}

// Pressed implements Provider.
func (s *State) Pressed(c control.Control) bool {
	if c == control.ControlNone {
		return false
	}
	return s.down[c] && !s.prev[c]
}

// Released implements Provider.
func (s *State) Released(c control.Control) bool {
	if c == control.ControlNone {
		return false
	}
	return !s.down[c] && s.prev[c]
}

// LeftStick implements Provider.
func (s *State) LeftStick() Vector2 {
	return s.leftStick
}

// RightStick implements Provider.
func (s *State) RightStick() Vector2 {
	return s.rightStick
}

// MouseDelta implements Provider.
func (s *State) MouseDelta() Vector2 {
	return s.mouseDelta
}

// ResolveGamepad implements Provider using the configured layout.
func (s *State) ResolveGamepad(b control.GamepadButton) control.Control {
	return control.Resolve(s.layout, b)
}

var _ Provider = (*State)(nil)
