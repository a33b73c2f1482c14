// Package ebitendev provides a device.Provider backed by ebiten's polling
// input API.
//
// Keyboard and mouse state come straight from ebiten and inpututil.
// Joystick controls address the first gamepad with a standard layout,
// JoystickN being standard button N. Call Update once at the start of
// every Game.Update so the mouse delta and gamepad selection track ticks.
package ebitendev

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

// DefaultDeadzone is the stick magnitude below which a stick reads zero.
const DefaultDeadzone = 0.15

// Device implements device.Provider for ebiten games.
type Device struct {
	layout   control.Layout
	deadzone float64

	gamepad ebiten.GamepadID
	hasPad  bool
	ids     []ebiten.GamepadID

	cursorX, cursorY int
	haveCursor       bool
	mouseDelta       device.Vector2
}

// Option configures a Device.
type Option func(*Device)

// WithLayout sets the face-button layout used by ResolveGamepad.
func WithLayout(layout control.Layout) Option {
	return func(d *Device) {
		d.layout = layout
	}
}

// WithDeadzone sets the radial stick deadzone, in [0, 1).
func WithDeadzone(dz float64) Option {
	return func(d *Device) {
		if dz >= 0 && dz < 1 {
			d.deadzone = dz
		}
	}
}

// New creates a device.
func New(opts ...Option) *Device {
	d := &Device{deadzone: DefaultDeadzone}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Update samples per-tick state: the cursor movement since the last tick
// and the active gamepad.
func (d *Device) Update() {
	x, y := ebiten.CursorPosition()
	if d.haveCursor {
		d.mouseDelta = device.Vec(float64(x-d.cursorX), float64(y-d.cursorY))
	}
	d.cursorX, d.cursorY, d.haveCursor = x, y, true

	if d.hasPad && inpututil.IsGamepadJustDisconnected(d.gamepad) {
		d.hasPad = false
	}
	if !d.hasPad {
		d.ids = ebiten.AppendGamepadIDs(d.ids[:0])
		for _, id := range d.ids {
			if ebiten.IsStandardGamepadLayoutAvailable(id) {
				d.gamepad, d.hasPad = id, true
				break
			}
		}
	}
}

// Gamepad returns the gamepad joystick controls read from.
func (d *Device) Gamepad() (ebiten.GamepadID, bool) {
	return d.gamepad, d.hasPad
}

// Held reports whether c is down.
func (d *Device) Held(c control.Control) bool {
	switch {
	case c.IsKey():
		k, ok := keyOf(c)
		return ok && ebiten.IsKeyPressed(k)
	case c.IsMouseButton():
		b, ok := mouseButtonOf(c)
		return ok && ebiten.IsMouseButtonPressed(b)
	case c.IsJoystickButton():
		b, ok := gamepadButtonOf(c)
		return ok && d.hasPad && ebiten.IsStandardGamepadButtonPressed(d.gamepad, b)
	}
	return false
}

// Pressed reports whether c went down this tick.
func (d *Device) Pressed(c control.Control) bool {
	switch {
	case c.IsKey():
		k, ok := keyOf(c)
		return ok && inpututil.IsKeyJustPressed(k)
	case c.IsMouseButton():
		b, ok := mouseButtonOf(c)
		return ok && inpututil.IsMouseButtonJustPressed(b)
	case c.IsJoystickButton():
		b, ok := gamepadButtonOf(c)
		return ok && d.hasPad && inpututil.IsStandardGamepadButtonJustPressed(d.gamepad, b)
	}
	return false
}

// Released reports whether c went up this tick.
func (d *Device) Released(c control.Control) bool {
	switch {
	case c.IsKey():
		k, ok := keyOf(c)
		return ok && inpututil.IsKeyJustReleased(k)
	case c.IsMouseButton():
		b, ok := mouseButtonOf(c)
		return ok && inpututil.IsMouseButtonJustReleased(b)
	case c.IsJoystickButton():
		b, ok := gamepadButtonOf(c)
		return ok && d.hasPad && inpututil.IsStandardGamepadButtonJustReleased(d.gamepad, b)
	}
	return false
}

// LeftStick returns the left stick with up as positive Y.
func (d *Device) LeftStick() device.Vector2 {
	return d.stick(ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical)
}

// RightStick returns the right stick with up as positive Y.
func (d *Device) RightStick() device.Vector2 {
	return d.stick(ebiten.StandardGamepadAxisRightStickHorizontal, ebiten.StandardGamepadAxisRightStickVertical)
}

func (d *Device) stick(h, v ebiten.StandardGamepadAxis) device.Vector2 {
	if !d.hasPad {
		return device.Zero
	}
	x := ebiten.StandardGamepadAxisValue(d.gamepad, h)
	y := ebiten.StandardGamepadAxisValue(d.gamepad, v)
	return applyDeadzone(device.Vec(x, -y), d.deadzone)
}

// applyDeadzone zeroes v inside the deadzone and rescales the rest so the
// output still spans [0, 1] in magnitude.
func applyDeadzone(v device.Vector2, dz float64) device.Vector2 {
	l := v.Len()
	if l <= dz {
		return device.Zero
	}
	scaled := math.Min((l-dz)/(1-dz), 1)
	return v.Scale(scaled / l)
}

// MouseDelta returns the cursor movement in pixels since the previous tick.
func (d *Device) MouseDelta() device.Vector2 {
	return d.mouseDelta
}

// ResolveGamepad maps b to a joystick control with the device's layout.
func (d *Device) ResolveGamepad(b control.GamepadButton) control.Control {
	return control.Resolve(d.layout, b)
}

var _ device.Provider = (*Device)(nil)
