package ebitendev

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/rebind/internal/input/control"
)

var letterKeys = [...]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
	ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
	ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
	ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var functionKeys = [...]ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4, ebiten.KeyF5, ebiten.KeyF6,
	ebiten.KeyF7, ebiten.KeyF8, ebiten.KeyF9, ebiten.KeyF10, ebiten.KeyF11, ebiten.KeyF12,
}

var namedKeys = map[control.Control]ebiten.Key{
	control.KeySpace:        ebiten.KeySpace,
	control.KeyEnter:        ebiten.KeyEnter,
	control.KeyEscape:       ebiten.KeyEscape,
	control.KeyTab:          ebiten.KeyTab,
	control.KeyBackspace:    ebiten.KeyBackspace,
	control.KeyDelete:       ebiten.KeyDelete,
	control.KeyInsert:       ebiten.KeyInsert,
	control.KeyHome:         ebiten.KeyHome,
	control.KeyEnd:          ebiten.KeyEnd,
	control.KeyPageUp:       ebiten.KeyPageUp,
	control.KeyPageDown:     ebiten.KeyPageDown,
	control.KeyUp:           ebiten.KeyArrowUp,
	control.KeyDown:         ebiten.KeyArrowDown,
	control.KeyLeft:         ebiten.KeyArrowLeft,
	control.KeyRight:        ebiten.KeyArrowRight,
	control.KeyLeftShift:    ebiten.KeyShiftLeft,
	control.KeyRightShift:   ebiten.KeyShiftRight,
	control.KeyLeftControl:  ebiten.KeyControlLeft,
	control.KeyRightControl: ebiten.KeyControlRight,
	control.KeyLeftAlt:      ebiten.KeyAltLeft,
	control.KeyRightAlt:     ebiten.KeyAltRight,
	control.KeyMinus:        ebiten.KeyMinus,
	control.KeyEqual:        ebiten.KeyEqual,
	control.KeyComma:        ebiten.KeyComma,
	control.KeyPeriod:       ebiten.KeyPeriod,
	control.KeySlash:        ebiten.KeySlash,
	control.KeySemicolon:    ebiten.KeySemicolon,
	control.KeyApostrophe:   ebiten.KeyQuote,
	control.KeyLeftBracket:  ebiten.KeyBracketLeft,
	control.KeyRightBracket: ebiten.KeyBracketRight,
}

// keyOf returns the ebiten key for a keyboard control.
func keyOf(c control.Control) (ebiten.Key, bool) {
	switch {
	case c.IsLetter():
		return letterKeys[c-control.KeyA], true
	case c.IsDigit():
		return digitKeys[c-control.Key0], true
	case c.IsFunctionKey():
		return functionKeys[c-control.KeyF1], true
	}
	k, ok := namedKeys[c]
	return k, ok
}

// mouseButtonOf returns the ebiten mouse button for a mouse control.
func mouseButtonOf(c control.Control) (ebiten.MouseButton, bool) {
	switch c {
	case control.MouseLeft:
		return ebiten.MouseButtonLeft, true
	case control.MouseRight:
		return ebiten.MouseButtonRight, true
	case control.MouseMiddle:
		return ebiten.MouseButtonMiddle, true
	}
	return 0, false
}

// gamepadButtonOf returns the standard gamepad button for a joystick
// control. Joystick indices follow the standard layout numbering, so
// JoystickN is StandardGamepadButton(N).
func gamepadButtonOf(c control.Control) (ebiten.StandardGamepadButton, bool) {
	n := c.JoystickIndex()
	if n < 0 || n > int(ebiten.StandardGamepadButtonMax) {
		return 0, false
	}
	return ebiten.StandardGamepadButton(n), true
}
