package control

import (
	"fmt"
	"strconv"
	"strings"
)

// Control identifies a physical control: a keyboard key, a mouse button,
// or a joystick button. ControlNone is the "no control" sentinel; device
// providers must report it as never active.
type Control uint16

const (
	// ControlNone represents no control.
	ControlNone Control = iota

	// Letter keys
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digit keys
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Special keys
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Modifier keys
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt

	// Punctuation
	KeyMinus
	KeyEqual
	KeyComma
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyApostrophe
	KeyLeftBracket
	KeyRightBracket

	// Mouse buttons
	MouseLeft
	MouseRight
	MouseMiddle

	// JoystickButton0 is the first joystick button. Buttons are numbered in
	// the standard gamepad order; see GamepadButton.
	JoystickButton0
)

// JoystickButtonCount is the number of addressable joystick buttons.
const JoystickButtonCount = 20

// controlCount is one past the last valid control.
const controlCount = JoystickButton0 + JoystickButtonCount

// JoystickButton returns the control for joystick button n.
// Returns ControlNone if n is out of range.
func JoystickButton(n int) Control {
	if n < 0 || n >= JoystickButtonCount {
		return ControlNone
	}
	return JoystickButton0 + Control(n)
}

// Valid returns true if c is ControlNone or a known control.
func (c Control) Valid() bool {
	return c < controlCount
}

// IsNone returns true for the sentinel.
func (c Control) IsNone() bool {
	return c == ControlNone
}

// IsKey returns true if this is a keyboard key.
func (c Control) IsKey() bool {
	return c >= KeyA && c <= KeyRightBracket
}

// IsLetter returns true if this is a letter key (A-Z).
func (c Control) IsLetter() bool {
	return c >= KeyA && c <= KeyZ
}

// IsDigit returns true if this is a digit key (0-9).
func (c Control) IsDigit() bool {
	return c >= Key0 && c <= Key9
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (c Control) IsFunctionKey() bool {
	return c >= KeyF1 && c <= KeyF12
}

// IsMouseButton returns true if this is a mouse button.
func (c Control) IsMouseButton() bool {
	return c >= MouseLeft && c <= MouseMiddle
}

// IsJoystickButton returns true if this is a joystick button.
func (c Control) IsJoystickButton() bool {
	return c >= JoystickButton0 && c < controlCount
}

// JoystickIndex returns the joystick button number for a joystick control.
// Returns -1 for any other control.
func (c Control) JoystickIndex() int {
	if !c.IsJoystickButton() {
		return -1
	}
	return int(c - JoystickButton0)
}

// specialNames holds display names for controls outside the ranges
// String computes.
var specialNames = map[Control]string{
	ControlNone:     "None",
	KeySpace:        "Space",
	KeyEnter:        "Enter",
	KeyEscape:       "Escape",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeyDelete:       "Delete",
	KeyInsert:       "Insert",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyLeftShift:    "LeftShift",
	KeyRightShift:   "RightShift",
	KeyLeftControl:  "LeftControl",
	KeyRightControl: "RightControl",
	KeyLeftAlt:      "LeftAlt",
	KeyRightAlt:     "RightAlt",
	KeyMinus:        "Minus",
	KeyEqual:        "Equal",
	KeyComma:        "Comma",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
	KeySemicolon:    "Semicolon",
	KeyApostrophe:   "Apostrophe",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	MouseLeft:       "MouseLeft",
	MouseRight:      "MouseRight",
	MouseMiddle:     "MouseMiddle",
}

// String returns a human-readable name for the control.
// The result is accepted by Parse.
func (c Control) String() string {
	switch {
	case c.IsLetter():
		return string(rune('A' + c - KeyA))
	case c.IsDigit():
		return string(rune('0' + c - Key0))
	case c.IsFunctionKey():
		return "F" + strconv.Itoa(int(c-KeyF1)+1)
	case c.IsJoystickButton():
		return "Joystick" + strconv.Itoa(c.JoystickIndex())
	}
	if name, ok := specialNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Control(%d)", c)
}

// nameMap maps lowercase names and aliases to controls.
var nameMap = map[string]Control{
	"esc":        KeyEscape,
	"return":     KeyEnter,
	"cr":         KeyEnter,
	"bs":         KeyBackspace,
	"del":        KeyDelete,
	"ins":        KeyInsert,
	"pgup":       KeyPageUp,
	"pgdn":       KeyPageDown,
	"arrowup":    KeyUp,
	"arrowdown":  KeyDown,
	"arrowleft":  KeyLeft,
	"arrowright": KeyRight,
	"shift":      KeyLeftShift,
	"lshift":     KeyLeftShift,
	"rshift":     KeyRightShift,
	"ctrl":       KeyLeftControl,
	"control":    KeyLeftControl,
	"lctrl":      KeyLeftControl,
	"rctrl":      KeyRightControl,
	"alt":        KeyLeftAlt,
	"lalt":       KeyLeftAlt,
	"ralt":       KeyRightAlt,
	"-":          KeyMinus,
	"=":          KeyEqual,
	",":          KeyComma,
	".":          KeyPeriod,
	"/":          KeySlash,
	";":          KeySemicolon,
	"'":          KeyApostrophe,
	"[":          KeyLeftBracket,
	"]":          KeyRightBracket,
	"lmb":        MouseLeft,
	"rmb":        MouseRight,
	"mmb":        MouseMiddle,
}

func init() {
	for c, name := range specialNames {
		nameMap[strings.ToLower(name)] = c
	}
}

// Parse returns the control for a name (case-insensitive).
// Single letters and digits, "F1".."F12" and "Joystick0".."Joystick19"
// are recognized along with the names String produces and common aliases.
func Parse(name string) (Control, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ControlNone, false
	}

	if len(name) == 1 {
		ch := name[0]
		switch {
		case ch >= 'a' && ch <= 'z':
			return KeyA + Control(ch-'a'), true
		case ch >= '0' && ch <= '9':
			return Key0 + Control(ch-'0'), true
		}
	}

	if c, ok := nameMap[name]; ok {
		return c, true
	}

	if rest, ok := strings.CutPrefix(name, "joystick"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n < JoystickButtonCount {
			return JoystickButton(n), true
		}
		return ControlNone, false
	}

	if rest, ok := strings.CutPrefix(name, "f"); ok {
		if n, err := strconv.Atoi(rest); err == nil && n >= 1 && n <= 12 {
			return KeyF1 + Control(n-1), true
		}
	}

	return ControlNone, false
}

// MustParse is like Parse but panics on unknown names.
// It is intended for package-level defaults.
func MustParse(name string) Control {
	c, ok := Parse(name)
	if !ok {
		panic(fmt.Sprintf("control: unknown control %q", name))
	}
	return c
}
