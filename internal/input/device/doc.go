// Package device defines the contract between input actions and the
// backend that polls physical hardware.
//
// A Provider answers per-frame questions about controls (held, pressed this
// frame, released this frame) and reports the analog vectors of the two
// sticks and the mouse. Backends live in subpackages:
//
//   - ebitendev: keyboard, mouse and standard gamepads through ebiten
//   - termdev: keyboard and mouse in a terminal through tcell
//
// State is a Provider driven by explicit calls. Tests use it, and the
// terminal backend builds on it.
package device
