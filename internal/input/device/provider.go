package device

import "github.com/dshills/rebind/internal/input/control"

// Provider is the polling surface of an input device backend.
//
// All queries describe the current frame. Held reports level state;
// Pressed and Released report the transition frame only. Every query
// must report false for control.ControlNone.
type Provider interface {
	// Held returns true while the control is down.
	Held(c control.Control) bool

	// Pressed returns true on the frame the control went down.
	Pressed(c control.Control) bool

	// Released returns true on the frame the control went up.
	Released(c control.Control) bool

	// LeftStick returns the left analog stick vector.
	LeftStick() Vector2

	// RightStick returns the right analog stick vector.
	RightStick() Vector2

	// MouseDelta returns the mouse movement since the previous frame.
	MouseDelta() Vector2

	// ResolveGamepad maps a device-independent gamepad button to the
	// control this provider polls for it.
	ResolveGamepad(b control.GamepadButton) control.Control
}
