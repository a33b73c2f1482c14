// Package control defines identifiers for physical input controls.
//
// The package defines two kinds of identifier:
//
//   - Control: A concrete control a device provider can poll (a keyboard
//     key, a mouse button, or a numbered joystick button). ControlNone is
//     the sentinel for "no control" and never reports active.
//   - GamepadButton: A device-independent gamepad button. It is resolved
//     to a Control once, when an action is built, using a Layout.
//
// # Names
//
// Controls and gamepad buttons parse from case-insensitive names:
//
//	"space", "Esc", "A", "7", "F5", "LeftShift", "MouseLeft", "Joystick3"
//	"south", "A", "LB", "Cross", "DPadUp"
package control
