package profile

import (
	"testing"

	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

func TestPlatformProfileClone(t *testing.T) {
	s := device.NewState()
	jump := action.NewButton(s, action.ButtonConfig{Label: "Jump", GamepadPrimary: control.GamepadSouth})
	pp := NewPlatform(PlatformGamepad, New("pad", jump))

	c, err := pp.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if c.Platform() != PlatformGamepad {
		t.Errorf("clone Platform() = %v, want gamepad", c.Platform())
	}
	if c.Profile == pp.Profile {
		t.Error("clone shares the profile")
	}
	got := c.Find("Jump")
	if got == nil || got == action.Action(jump) {
		t.Fatalf("clone Find(Jump) = %v, want a distinct action", got)
	}
	b, _ := action.AsButton(got)
	if b.Primary() != jump.Primary() {
		t.Errorf("clone primary = %v, want %v", b.Primary(), jump.Primary())
	}

	s.Press(control.JoystickButton(0))
	if down, _ := c.GetButtonDown("Jump"); !down {
		t.Error("cloned platform profile should answer queries")
	}
}

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name   string
		want   Platform
		wantOK bool
	}{
		{"", PlatformAny, true},
		{"Desktop", PlatformDesktop, true},
		{"gamepad", PlatformGamepad, true},
		{"TERMINAL", PlatformTerminal, true},
		{"toaster", PlatformAny, false},
	}
	for _, tt := range tests {
		got, ok := ParsePlatform(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePlatform(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
	if got := Platform(99).String(); got != "Platform(99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestSetSelect(t *testing.T) {
	fallback := NewPlatform(PlatformAny, New("fallback"))
	desk := NewPlatform(PlatformDesktop, New("keyboard"))
	pad1 := NewPlatform(PlatformGamepad, New("pad"))
	pad2 := NewPlatform(PlatformGamepad, New("pad-alt"))

	set := NewSet(desk, fallback, pad1, pad2)

	tests := []struct {
		platform Platform
		want     *PlatformProfile
	}{
		{PlatformDesktop, desk},
		{PlatformGamepad, pad1},
		{PlatformMobile, fallback},
		{PlatformAny, fallback},
	}
	for _, tt := range tests {
		if got := set.Select(tt.platform); got != tt.want {
			t.Errorf("Select(%v) = %p, want %q (%p)", tt.platform, got, tt.want.Name, tt.want)
		}
	}

	if got := NewSet(desk).Select(PlatformMobile); got != nil {
		t.Errorf("Select without fallback = %v, want nil", got)
	}
	if got := set.Named("pad-alt"); got != pad2 {
		t.Errorf("Named(pad-alt) = %v", got)
	}
	if got := set.Named("missing"); got != nil {
		t.Errorf("Named(missing) = %v, want nil", got)
	}
}

func TestSetClone(t *testing.T) {
	s := device.NewState()
	set := NewSet(NewPlatform(PlatformDesktop, New("keyboard",
		action.NewButton(s, action.ButtonConfig{Label: "Jump", Primary: control.KeySpace}))))
	set.Add(NewPlatform(PlatformGamepad, New("pad")))

	c, err := set.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	for i, pp := range c.Profiles() {
		orig := set.Profiles()[i]
		if pp == orig || pp.Platform() != orig.Platform() || pp.Name != orig.Name {
			t.Errorf("profile %d not cloned correctly", i)
		}
	}
}
