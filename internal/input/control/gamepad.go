package control

import (
	"fmt"
	"strings"
)

// GamepadButton names a gamepad control independently of any device.
// Face buttons are positional (South is the bottom face button).
// A device provider resolves a GamepadButton to a concrete Control.
type GamepadButton uint8

const (
	// GamepadNone represents no gamepad button.
	GamepadNone GamepadButton = iota

	GamepadSouth
	GamepadEast
	GamepadWest
	GamepadNorth
	GamepadLeftShoulder
	GamepadRightShoulder
	GamepadLeftTrigger
	GamepadRightTrigger
	GamepadSelect
	GamepadStart
	GamepadLeftStick
	GamepadRightStick
	GamepadDPadUp
	GamepadDPadDown
	GamepadDPadLeft
	GamepadDPadRight
	GamepadHome
)

var gamepadNames = [...]string{
	GamepadNone:          "None",
	GamepadSouth:         "South",
	GamepadEast:          "East",
	GamepadWest:          "West",
	GamepadNorth:         "North",
	GamepadLeftShoulder:  "LeftShoulder",
	GamepadRightShoulder: "RightShoulder",
	GamepadLeftTrigger:   "LeftTrigger",
	GamepadRightTrigger:  "RightTrigger",
	GamepadSelect:        "Select",
	GamepadStart:         "Start",
	GamepadLeftStick:     "LeftStick",
	GamepadRightStick:    "RightStick",
	GamepadDPadUp:        "DPadUp",
	GamepadDPadDown:      "DPadDown",
	GamepadDPadLeft:      "DPadLeft",
	GamepadDPadRight:     "DPadRight",
	GamepadHome:          "Home",
}

// String returns the gamepad button name.
func (b GamepadButton) String() string {
	if int(b) < len(gamepadNames) {
		return gamepadNames[b]
	}
	return fmt.Sprintf("GamepadButton(%d)", b)
}

// gamepadAliases maps Xbox-style labels to positional buttons.
var gamepadAliases = map[string]GamepadButton{
	"a":        GamepadSouth,
	"b":        GamepadEast,
	"x":        GamepadWest,
	"y":        GamepadNorth,
	"lb":       GamepadLeftShoulder,
	"rb":       GamepadRightShoulder,
	"lt":       GamepadLeftTrigger,
	"rt":       GamepadRightTrigger,
	"back":     GamepadSelect,
	"view":     GamepadSelect,
	"menu":     GamepadStart,
	"l3":       GamepadLeftStick,
	"r3":       GamepadRightStick,
	"up":       GamepadDPadUp,
	"down":     GamepadDPadDown,
	"left":     GamepadDPadLeft,
	"right":    GamepadDPadRight,
	"guide":    GamepadHome,
	"cross":    GamepadSouth,
	"circle":   GamepadEast,
	"square":   GamepadWest,
	"triangle": GamepadNorth,
}

func init() {
	for i, name := range gamepadNames {
		gamepadAliases[strings.ToLower(name)] = GamepadButton(i)
	}
}

// ParseGamepadButton returns the gamepad button for a name (case-insensitive).
// Positional names ("South"), Xbox labels ("A", "LB") and PlayStation
// labels ("Cross") are accepted.
func ParseGamepadButton(name string) (GamepadButton, bool) {
	b, ok := gamepadAliases[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// Layout selects how face buttons are matched when resolving.
type Layout uint8

const (
	// LayoutStandard matches face buttons by position.
	LayoutStandard Layout = iota

	// LayoutNintendo matches face buttons by printed label, so the
	// positional South/East and West/North pairs swap.
	LayoutNintendo
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutStandard:
		return "standard"
	case LayoutNintendo:
		return "nintendo"
	default:
		return fmt.Sprintf("Layout(%d)", l)
	}
}

// ParseLayout returns the layout for a name (case-insensitive).
func ParseLayout(name string) (Layout, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "standard", "xbox", "playstation":
		return LayoutStandard, true
	case "nintendo", "switch":
		return LayoutNintendo, true
	default:
		return LayoutStandard, false
	}
}

// standardIndex is the standard gamepad button numbering
// (W3C Gamepad "standard" mapping, also used by ebiten).
var standardIndex = map[GamepadButton]int{
	GamepadSouth:         0,
	GamepadEast:          1,
	GamepadWest:          2,
	GamepadNorth:         3,
	GamepadLeftShoulder:  4,
	GamepadRightShoulder: 5,
	GamepadLeftTrigger:   6,
	GamepadRightTrigger:  7,
	GamepadSelect:        8,
	GamepadStart:         9,
	GamepadLeftStick:     10,
	GamepadRightStick:    11,
	GamepadDPadUp:        12,
	GamepadDPadDown:      13,
	GamepadDPadLeft:      14,
	GamepadDPadRight:     15,
	GamepadHome:          16,
}

// Resolve maps a gamepad button to the joystick control for a layout.
// GamepadNone and unknown buttons resolve to ControlNone.
func Resolve(layout Layout, b GamepadButton) Control {
	if layout == LayoutNintendo {
		switch b {
		case GamepadSouth:
			b = GamepadEast
		case GamepadEast:
			b = GamepadSouth
		case GamepadWest:
			b = GamepadNorth
		case GamepadNorth:
			b = GamepadWest
		}
	}
	idx, ok := standardIndex[b]
	if !ok {
		return ControlNone
	}
	return JoystickButton(idx)
}
