package action

import (
	"log/slog"

	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

// ButtonConfig describes a Button. Zero fields take their defaults:
// no alternate source and no rebind callback.
type ButtonConfig struct {
	// Label is the name the button is looked up by.
	Label string

	// Primary is the main control.
	Primary control.Control

	// Alt is the alternate control.
	Alt control.Control

	// GamepadPrimary, when set, replaces Primary with the control the
	// provider resolves it to.
	GamepadPrimary control.GamepadButton

	// GamepadAlt, when set, replaces Alt with the control the provider
	// resolves it to.
	GamepadAlt control.GamepadButton

	// OnRebind is called after SetPrimary or SetAlt.
	OnRebind RebindFunc

	// Logger receives construction diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Button is a digital action backed by a primary and an alternate control.
// It is active when either control is.
type Button struct {
	label    string
	primary  control.Control
	alt      control.Control
	onRebind RebindFunc

	dev device.Provider
}

// NewButton creates a button polled through dev.
// Gamepad sources are resolved once, here.
func NewButton(dev device.Provider, cfg ButtonConfig) *Button {
	b := &Button{
		label:    cfg.Label,
		primary:  cfg.Primary,
		alt:      cfg.Alt,
		onRebind: cfg.OnRebind,
		dev:      dev,
	}
	if cfg.GamepadPrimary != control.GamepadNone {
		b.primary = dev.ResolveGamepad(cfg.GamepadPrimary)
	}
	if cfg.GamepadAlt != control.GamepadNone {
		b.alt = dev.ResolveGamepad(cfg.GamepadAlt)
	}
	if b.primary == control.ControlNone && b.alt == control.ControlNone {
		loggerOrDefault(cfg.Logger).Warn("button has no sources", "label", b.label)
	}
	return b
}

func (b *Button) sealed() {}

// Label implements Action.
func (b *Button) Label() string {
	return b.label
}

// Kind implements Action.
func (b *Button) Kind() Kind {
	return KindButton
}

// Primary returns the primary control.
func (b *Button) Primary() control.Control {
	return b.primary
}

// Alt returns the alternate control.
func (b *Button) Alt() control.Control {
	return b.alt
}

// Held returns true while either source is down.
func (b *Button) Held() bool {
	return b.dev.Held(b.primary) || b.dev.Held(b.alt)
}

// Pressed returns true on the frame either source went down.
func (b *Button) Pressed() bool {
	return b.dev.Pressed(b.primary) || b.dev.Pressed(b.alt)
}

// Released returns true on the frame either source went up.
func (b *Button) Released() bool {
	return b.dev.Released(b.primary) || b.dev.Released(b.alt)
}

// SetPrimary rebinds the primary source and notifies the callback.
func (b *Button) SetPrimary(c control.Control) {
	b.primary = c
	b.notify()
}

// SetAlt rebinds the alternate source and notifies the callback.
func (b *Button) SetAlt(c control.Control) {
	b.alt = c
	b.notify()
}

func (b *Button) notify() {
	if b.onRebind != nil {
		b.onRebind(b)
	}
}

// Clone implements Action. A button clone never fails.
func (b *Button) Clone() (Action, error) {
	return b.clone(), nil
}

func (b *Button) clone() *Button {
	return &Button{
		label:    b.label,
		primary:  b.primary,
		alt:      b.alt,
		onRebind: b.onRebind,
		dev:      b.dev,
	}
}
