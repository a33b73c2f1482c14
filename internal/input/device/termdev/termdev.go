// Package termdev provides a device.Provider fed by terminal events.
//
// Terminals report key presses but not key releases, so a key counts as
// held until no event for it has arrived within the hold time. Auto-repeat
// keeps a held key alive once the terminal's repeat delay has passed.
// Mouse events carry the full button state and need no timeout.
package termdev

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

// DefaultHold covers the usual terminal auto-repeat delay.
const DefaultHold = 500 * time.Millisecond

// Device implements device.Provider on a tcell screen.
type Device struct {
	mu     sync.Mutex
	screen tcell.Screen
	state  *device.State

	hold     time.Duration
	now      func() time.Time
	lastSeen map[control.Control]time.Time

	mouseX, mouseY int
	haveMouse      bool

	events chan tcell.Event
	quit   chan struct{}
	closed bool
}

// Option configures a Device.
type Option func(*Device)

// WithHold sets how long a key stays held after its last event.
func WithHold(d time.Duration) Option {
	return func(dev *Device) {
		if d > 0 {
			dev.hold = d
		}
	}
}

// WithLayout sets the gamepad layout used by ResolveGamepad.
func WithLayout(layout control.Layout) Option {
	return func(dev *Device) {
		dev.state = device.NewState(device.WithLayout(layout))
	}
}

// New wraps an existing screen. The screen must already be initialized;
// call Start to begin reading its events.
func New(screen tcell.Screen, opts ...Option) *Device {
	d := &Device{
		screen:   screen,
		state:    device.NewState(),
		hold:     DefaultHold,
		now:      time.Now,
		lastSeen: make(map[control.Control]time.Time),
		events:   make(chan tcell.Event, 64),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open creates and initializes a terminal screen with mouse reporting
// enabled and starts reading events from it.
func Open(opts ...Option) (*Device, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()

	d := New(screen, opts...)
	d.Start()
	return d, nil
}

// Screen returns the underlying screen for drawing.
func (d *Device) Screen() tcell.Screen {
	return d.screen
}

// Start forwards screen events to the device until Close.
func (d *Device) Start() {
	go d.screen.ChannelEvents(d.events, d.quit)
}

// Close stops reading events and restores the terminal.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true
	close(d.quit)
	d.screen.Fini()
}

// Update advances one frame: edges from the previous frame expire, queued
// events are applied and keys past their hold time are released. It
// returns the non-input events (resize, focus) seen this frame.
func (d *Device) Update() []tcell.Event {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.Advance()
	now := d.now()

	var other []tcell.Event
drain:
	for {
		select {
		case ev, ok := <-d.events:
			if !ok {
				break drain
			}
			if !d.handle(ev, now) {
				other = append(other, ev)
			}
		default:
			break drain
		}
	}

	for c, seen := range d.lastSeen {
		if now.Sub(seen) >= d.hold {
			d.state.Release(c)
			delete(d.lastSeen, c)
		}
	}
	return other
}

// Handle applies a single event immediately. It reports whether the event
// was an input event.
func (d *Device) Handle(ev tcell.Event) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.handle(ev, d.now())
}

func (d *Device) handle(ev tcell.Event, now time.Time) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		for _, c := range keyControls(e) {
			d.state.Press(c)
			d.lastSeen[c] = now
		}
		return true

	case *tcell.EventMouse:
		x, y := e.Position()
		if d.haveMouse {
			d.state.AddMouseDelta(device.Vec(float64(x-d.mouseX), float64(y-d.mouseY)))
		}
		d.mouseX, d.mouseY, d.haveMouse = x, y, true

		buttons := e.Buttons()
		for _, mb := range mouseButtons {
			if buttons&mb.mask != 0 {
				d.state.Press(mb.control)
			} else {
				d.state.Release(mb.control)
			}
		}
		return true
	}
	return false
}

var mouseButtons = []struct {
	mask    tcell.ButtonMask
	control control.Control
}{
	{tcell.Button1, control.MouseLeft},
	{tcell.Button2, control.MouseRight},
	{tcell.Button3, control.MouseMiddle},
}

// keyControls returns the controls a key event holds: the key itself plus
// the modifiers reported with it.
func keyControls(e *tcell.EventKey) []control.Control {
	var out []control.Control
	c, shifted := convertKey(e.Key(), e.Rune())
	if c != control.ControlNone {
		out = append(out, c)
	}

	mods := e.Modifiers()
	if shifted || mods&tcell.ModShift != 0 {
		out = append(out, control.KeyLeftShift)
	}
	if mods&tcell.ModCtrl != 0 || (e.Key() >= tcell.KeyCtrlA && e.Key() <= tcell.KeyCtrlZ) {
		out = append(out, control.KeyLeftControl)
	}
	if mods&tcell.ModAlt != 0 {
		out = append(out, control.KeyLeftAlt)
	}
	return out
}

// convertKey converts a tcell key to a control. shifted is true when the
// rune implies the shift key.
func convertKey(k tcell.Key, r rune) (c control.Control, shifted bool) {
	switch k {
	case tcell.KeyRune:
		return runeControl(r)
	case tcell.KeyEscape:
		return control.KeyEscape, false
	case tcell.KeyEnter:
		return control.KeyEnter, false
	case tcell.KeyTab:
		return control.KeyTab, false
	case tcell.KeyBacktab:
		return control.KeyTab, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return control.KeyBackspace, false
	case tcell.KeyDelete:
		return control.KeyDelete, false
	case tcell.KeyInsert:
		return control.KeyInsert, false
	case tcell.KeyHome:
		return control.KeyHome, false
	case tcell.KeyEnd:
		return control.KeyEnd, false
	case tcell.KeyPgUp:
		return control.KeyPageUp, false
	case tcell.KeyPgDn:
		return control.KeyPageDown, false
	case tcell.KeyUp:
		return control.KeyUp, false
	case tcell.KeyDown:
		return control.KeyDown, false
	case tcell.KeyLeft:
		return control.KeyLeft, false
	case tcell.KeyRight:
		return control.KeyRight, false
	case tcell.KeyCtrlSpace:
		return control.KeySpace, false
	}

	if k >= tcell.KeyF1 && k <= tcell.KeyF12 {
		return control.KeyF1 + control.Control(k-tcell.KeyF1), false
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return control.KeyA + control.Control(k-tcell.KeyCtrlA), false
	}
	return control.ControlNone, false
}

// shiftedDigits maps the US-layout shifted digit row back to its key.
var shiftedDigits = map[rune]control.Control{
	')': control.Key0, '!': control.Key1, '@': control.Key2, '#': control.Key3, '$': control.Key4,
	'%': control.Key5, '^': control.Key6, '&': control.Key7, '*': control.Key8, '(': control.Key9,
}

var punctuation = map[rune]struct {
	c       control.Control
	shifted bool
}{
	'-': {control.KeyMinus, false}, '_': {control.KeyMinus, true},
	'=': {control.KeyEqual, false}, '+': {control.KeyEqual, true},
	',': {control.KeyComma, false}, '<': {control.KeyComma, true},
	'.': {control.KeyPeriod, false}, '>': {control.KeyPeriod, true},
	'/': {control.KeySlash, false}, '?': {control.KeySlash, true},
	';': {control.KeySemicolon, false}, ':': {control.KeySemicolon, true},
	'\'': {control.KeyApostrophe, false}, '"': {control.KeyApostrophe, true},
	'[': {control.KeyLeftBracket, false}, '{': {control.KeyLeftBracket, true},
	']': {control.KeyRightBracket, false}, '}': {control.KeyRightBracket, true},
}

func runeControl(r rune) (control.Control, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return control.KeyA + control.Control(r-'a'), false
	case r >= 'A' && r <= 'Z':
		return control.KeyA + control.Control(r-'A'), true
	case r >= '0' && r <= '9':
		return control.Key0 + control.Control(r-'0'), false
	case r == ' ':
		return control.KeySpace, false
	}
	if c, ok := shiftedDigits[r]; ok {
		return c, true
	}
	if p, ok := punctuation[r]; ok {
		return p.c, p.shifted
	}
	return control.ControlNone, false
}

// Held reports whether c is down.
func (d *Device) Held(c control.Control) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Held(c)
}

// Pressed reports whether c went down this frame.
func (d *Device) Pressed(c control.Control) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Pressed(c)
}

// Released reports whether c went up this frame.
func (d *Device) Released(c control.Control) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.Released(c)
}

// LeftStick is always zero; terminals have no gamepad.
func (d *Device) LeftStick() device.Vector2 { return device.Zero }

// RightStick is always zero.
func (d *Device) RightStick() device.Vector2 { return device.Zero }

// MouseDelta returns the cell movement of the mouse this frame.
func (d *Device) MouseDelta() device.Vector2 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.MouseDelta()
}

// ResolveGamepad maps b with the configured layout. Terminal input never
// holds the resulting controls, but bindings that mention them still build.
func (d *Device) ResolveGamepad(b control.GamepadButton) control.Control {
	return d.state.ResolveGamepad(b)
}

var _ device.Provider = (*Device)(nil)
