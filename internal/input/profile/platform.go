package profile

import (
	"fmt"
	"strings"
)

// Platform identifies the display or input context a profile targets.
type Platform uint8

const (
	// PlatformAny matches every context. Set.Select falls back to it.
	PlatformAny Platform = iota
	PlatformDesktop
	PlatformGamepad
	PlatformMobile
	PlatformConsole
	PlatformTerminal
)

var platformNames = [...]string{
	PlatformAny:      "any",
	PlatformDesktop:  "desktop",
	PlatformGamepad:  "gamepad",
	PlatformMobile:   "mobile",
	PlatformConsole:  "console",
	PlatformTerminal: "terminal",
}

// String returns the platform name.
func (p Platform) String() string {
	if int(p) < len(platformNames) {
		return platformNames[p]
	}
	return fmt.Sprintf("Platform(%d)", p)
}

// ParsePlatform returns the platform for a name (case-insensitive).
// An empty name is PlatformAny.
func ParsePlatform(name string) (Platform, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PlatformAny, true
	}
	for i, n := range platformNames {
		if n == name {
			return Platform(i), true
		}
	}
	return PlatformAny, false
}

// PlatformProfile is a Profile scoped to a platform.
type PlatformProfile struct {
	*Profile

	platform Platform
}

// NewPlatform wraps p with a platform. The platform cannot change later.
func NewPlatform(platform Platform, p *Profile) *PlatformProfile {
	return &PlatformProfile{Profile: p, platform: platform}
}

// Platform returns the target platform.
func (pp *PlatformProfile) Platform() Platform {
	return pp.platform
}

// Clone returns a deep copy on the same platform.
func (pp *PlatformProfile) Clone() (*PlatformProfile, error) {
	p, err := pp.Profile.Clone()
	if err != nil {
		return nil, err
	}
	return &PlatformProfile{Profile: p, platform: pp.platform}, nil
}
