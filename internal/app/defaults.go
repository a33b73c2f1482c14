package app

import "github.com/dshills/rebind/internal/config"

// DefaultBindings returns the bindings written by -init: a keyboard and
// mouse profile for desktop, a gamepad profile, and a terminal profile.
func DefaultBindings() *config.File {
	return &config.File{
		Layout: "standard",
		Profiles: []config.ProfileSpec{
			{
				Name:     "keyboard",
				Platform: "desktop",
				Actions: []config.ActionSpec{
					{Type: "button", Label: "Jump", Primary: "Space", Alt: "MouseRight"},
					{Type: "button", Label: "Fire", Primary: "MouseLeft", Alt: "F"},
					{Type: "button", Label: "Pause", Primary: "Escape", Alt: "P"},
					{
						Type: "axis", Label: "Move", Kind: "buttons",
						PositiveX: "D", NegativeX: "A", PositiveY: "W", NegativeY: "S",
						AltPositiveX: "Right", AltNegativeX: "Left", AltPositiveY: "Up", AltNegativeY: "Down",
					},
					{Type: "axis", Label: "Look", Kind: "mouse"},
				},
			},
			{
				Name:     "pad",
				Platform: "gamepad",
				Actions: []config.ActionSpec{
					{Type: "button", Label: "Jump", Primary: "pad:south"},
					{Type: "button", Label: "Fire", Primary: "pad:rt", Alt: "pad:west"},
					{Type: "button", Label: "Pause", Primary: "pad:start"},
					{Type: "axis", Label: "Move", Kind: "left_stick"},
					{Type: "axis", Label: "Look", Kind: "right_stick"},
				},
			},
			{
				Name:     "terminal",
				Platform: "terminal",
				Actions: []config.ActionSpec{
					{Type: "button", Label: "Jump", Primary: "Space"},
					{Type: "button", Label: "Fire", Primary: "Enter", Alt: "MouseLeft"},
					{Type: "button", Label: "Pause", Primary: "P"},
					{
						Type: "axis", Label: "Move", Kind: "buttons",
						PositiveX: "L", NegativeX: "H", PositiveY: "K", NegativeY: "J",
						AltPositiveX: "Right", AltNegativeX: "Left", AltPositiveY: "Up", AltNegativeY: "Down",
					},
					{Type: "axis", Label: "Look", Kind: "mouse"},
				},
			},
		},
	}
}
