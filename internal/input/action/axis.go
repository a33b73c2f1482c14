package action

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

// AxisKind selects what drives an axis.
type AxisKind uint8

const (
	// AxisLeftStick passes the left analog stick through.
	AxisLeftStick AxisKind = iota

	// AxisRightStick passes the right analog stick through.
	AxisRightStick

	// AxisMouse passes the mouse delta through.
	AxisMouse

	// AxisButtons composes the axis from four directions of controls.
	AxisButtons
)

// String returns the axis kind name.
func (k AxisKind) String() string {
	switch k {
	case AxisLeftStick:
		return "left_stick"
	case AxisRightStick:
		return "right_stick"
	case AxisMouse:
		return "mouse"
	case AxisButtons:
		return "buttons"
	default:
		return fmt.Sprintf("AxisKind(%d)", k)
	}
}

// ParseAxisKind returns the axis kind for a name (case-insensitive).
func ParseAxisKind(name string) (AxisKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left_stick", "leftstick", "left":
		return AxisLeftStick, true
	case "right_stick", "rightstick", "right":
		return AxisRightStick, true
	case "mouse", "mouse_axis":
		return AxisMouse, true
	case "buttons", "button", "button_axis":
		return AxisButtons, true
	default:
		return AxisLeftStick, false
	}
}

// Direction is one of the four composite axis directions.
type Direction uint8

const (
	PositiveX Direction = iota
	NegativeX
	PositiveY
	NegativeY

	directionCount
)

// Directions lists every direction in declaration order.
var Directions = [...]Direction{PositiveX, NegativeX, PositiveY, NegativeY}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case PositiveX:
		return "positive_x"
	case NegativeX:
		return "negative_x"
	case PositiveY:
		return "positive_y"
	case NegativeY:
		return "negative_y"
	default:
		return fmt.Sprintf("Direction(%d)", d)
	}
}

// Slot selects the primary or alternate source of a direction.
type Slot uint8

const (
	Primary Slot = iota
	Alternate

	slotCount
)

// String returns the slot name.
func (s Slot) String() string {
	switch s {
	case Primary:
		return "primary"
	case Alternate:
		return "alt"
	default:
		return fmt.Sprintf("Slot(%d)", s)
	}
}

// Sources holds one control per direction.
type Sources struct {
	PositiveX control.Control
	NegativeX control.Control
	PositiveY control.Control
	NegativeY control.Control
}

// IsZero returns true if every direction is ControlNone.
func (s Sources) IsZero() bool {
	return s == Sources{}
}

func (s Sources) array() [directionCount]control.Control {
	return [directionCount]control.Control{s.PositiveX, s.NegativeX, s.PositiveY, s.NegativeY}
}

func sourcesFrom(a [directionCount]control.Control) Sources {
	return Sources{PositiveX: a[PositiveX], NegativeX: a[NegativeX], PositiveY: a[PositiveY], NegativeY: a[NegativeY]}
}

// GamepadSources holds one gamepad button per direction.
type GamepadSources struct {
	PositiveX control.GamepadButton
	NegativeX control.GamepadButton
	PositiveY control.GamepadButton
	NegativeY control.GamepadButton
}

// IsZero returns true if every direction is GamepadNone.
func (s GamepadSources) IsZero() bool {
	return s == GamepadSources{}
}

func (s GamepadSources) array() [directionCount]control.GamepadButton {
	return [directionCount]control.GamepadButton{s.PositiveX, s.NegativeX, s.PositiveY, s.NegativeY}
}

// AxisConfig describes an Axis. Sources only apply to AxisButtons.
type AxisConfig struct {
	// Label is the name the axis is looked up by.
	Label string

	// Kind selects what drives the axis. It cannot change later.
	Kind AxisKind

	// Primary and Alt are the per-direction controls.
	Primary Sources
	Alt     Sources

	// GamepadPrimary and GamepadAlt, per direction, replace the matching
	// control with the one the provider resolves them to.
	GamepadPrimary GamepadSources
	GamepadAlt     GamepadSources

	// OnRebind is called after SetSource.
	OnRebind RebindFunc

	// Logger receives construction diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Axis is a 2D action.
type Axis struct {
	label    string
	kind     AxisKind
	sources  [directionCount][slotCount]control.Control
	onRebind RebindFunc

	dev device.Provider
}

// NewAxis creates an axis polled through dev.
//
// Supplying sources for a stick or mouse axis is allowed but has no
// effect; it is reported as a warning.
func NewAxis(dev device.Provider, cfg AxisConfig) *Axis {
	a := &Axis{
		label:    cfg.Label,
		kind:     cfg.Kind,
		onRebind: cfg.OnRebind,
		dev:      dev,
	}

	prim, alt := cfg.Primary.array(), cfg.Alt.array()
	padPrim, padAlt := cfg.GamepadPrimary.array(), cfg.GamepadAlt.array()
	for _, d := range Directions {
		a.sources[d][Primary] = prim[d]
		a.sources[d][Alternate] = alt[d]
		if padPrim[d] != control.GamepadNone {
			a.sources[d][Primary] = dev.ResolveGamepad(padPrim[d])
		}
		if padAlt[d] != control.GamepadNone {
			a.sources[d][Alternate] = dev.ResolveGamepad(padAlt[d])
		}
	}

	hasSources := !cfg.Primary.IsZero() || !cfg.Alt.IsZero() ||
		!cfg.GamepadPrimary.IsZero() || !cfg.GamepadAlt.IsZero()
	if hasSources && cfg.Kind != AxisButtons {
		loggerOrDefault(cfg.Logger).Warn("button sources have no effect on this axis kind",
			"label", cfg.Label, "kind", cfg.Kind.String())
	}

	return a
}

func (a *Axis) sealed() {}

// Label implements Action.
func (a *Axis) Label() string {
	return a.label
}

// Kind implements Action.
func (a *Axis) Kind() Kind {
	return KindAxis
}

// AxisKind returns what drives the axis.
func (a *Axis) AxisKind() AxisKind {
	return a.kind
}

// Source returns the control bound to a direction and slot.
// Out of range arguments return ControlNone.
func (a *Axis) Source(d Direction, s Slot) control.Control {
	if d >= directionCount || s >= slotCount {
		return control.ControlNone
	}
	return a.sources[d][s]
}

// Primary returns the primary control of every direction.
func (a *Axis) Primary() Sources {
	return a.slot(Primary)
}

// Alt returns the alternate control of every direction.
func (a *Axis) Alt() Sources {
	return a.slot(Alternate)
}

func (a *Axis) slot(s Slot) Sources {
	var out [directionCount]control.Control
	for _, d := range Directions {
		out[d] = a.sources[d][s]
	}
	return sourcesFrom(out)
}

// SetSource rebinds one direction and notifies the callback.
// Out of range arguments are ignored and do not notify.
func (a *Axis) SetSource(d Direction, s Slot, c control.Control) {
	if d >= directionCount || s >= slotCount {
		return
	}
	a.sources[d][s] = c
	if a.onRebind != nil {
		a.onRebind(a)
	}
}

// Value returns the axis vector for the current frame.
//
// Stick and mouse kinds pass the provider's vector through unchanged.
// Unrecognized kinds read the left stick. AxisButtons adds one unit per
// active direction and normalizes the sum, so diagonals have unit length
// and no input yields exactly (0, 0).
func (a *Axis) Value() device.Vector2 {
	switch a.kind {
	case AxisRightStick:
		return a.dev.RightStick()
	case AxisMouse:
		return a.dev.MouseDelta()
	case AxisButtons:
		return a.composite()
	default:
		return a.dev.LeftStick()
	}
}

func (a *Axis) composite() device.Vector2 {
	var v device.Vector2
	if a.active(PositiveX) {
		v.X++
	}
	if a.active(NegativeX) {
		v.X--
	}
	if a.active(PositiveY) {
		v.Y++
	}
	if a.active(NegativeY) {
		v.Y--
	}
	return v.Normalized()
}

// active reports whether either source of d is held or was pressed
// this frame.
func (a *Axis) active(d Direction) bool {
	for _, c := range a.sources[d] {
		if a.dev.Held(c) || a.dev.Pressed(c) {
			return true
		}
	}
	return false
}

// Clone implements Action. Stick and mouse clones drop any sources;
// an unrecognized kind fails with ErrUnsupportedAxisKind.
func (a *Axis) Clone() (Action, error) {
	c := &Axis{
		label:    a.label,
		kind:     a.kind,
		onRebind: a.onRebind,
		dev:      a.dev,
	}
	switch a.kind {
	case AxisLeftStick, AxisRightStick, AxisMouse:
		return c, nil
	case AxisButtons:
		c.sources = a.sources
		return c, nil
	default:
		return nil, &KindError{Label: a.label, Kind: a.kind}
	}
}
