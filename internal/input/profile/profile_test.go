package profile

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestProfile(s *device.State) *Profile {
	return New("keyboard",
		action.NewButton(s, action.ButtonConfig{Label: "Jump", Primary: control.KeySpace}),
		action.NewButton(s, action.ButtonConfig{Label: "Fire", Primary: control.MouseLeft, Alt: control.KeyF}),
		action.NewAxis(s, action.AxisConfig{
			Label: "Move",
			Kind:  action.AxisButtons,
			Primary: action.Sources{
				PositiveX: control.KeyD,
				NegativeX: control.KeyA,
				PositiveY: control.KeyW,
				NegativeY: control.KeyS,
			},
		}),
		action.NewAxis(s, action.AxisConfig{Label: "Look", Kind: action.AxisMouse}),
	)
}

func TestJumpScenario(t *testing.T) {
	s := device.NewState()
	p := newTestProfile(s)

	s.Press(control.KeySpace)

	down, err := p.GetButtonDown("Jump")
	if err != nil || !down {
		t.Errorf("GetButtonDown(Jump) = (%v, %v), want (true, nil)", down, err)
	}
	held, err := p.GetButton("Jump")
	if err != nil || !held {
		t.Errorf("GetButton(Jump) = (%v, %v), want (true, nil)", held, err)
	}
	up, err := p.GetButtonUp("Jump")
	if err != nil || up {
		t.Errorf("GetButtonUp(Jump) = (%v, %v), want (false, nil)", up, err)
	}

	s.Advance()
	s.Release(control.KeySpace)
	up, _ = p.GetButtonUp("Jump")
	if !up {
		t.Error("GetButtonUp(Jump) on release frame = false, want true")
	}
}

func TestMissingLabelReturnsZero(t *testing.T) {
	s := device.NewState()
	s.Press(control.KeySpace)
	s.SetLeftStick(device.Vec(1, 0))

	profiles := map[string]*Profile{
		"populated": newTestProfile(s),
		"empty":     New("empty"),
	}

	for name, p := range profiles {
		t.Run(name, func(t *testing.T) {
			for _, label := range []string{"Crouch", "", "jump"} {
				if got, err := p.GetButton(label); got || err != nil {
					t.Errorf("GetButton(%q) = (%v, %v), want (false, nil)", label, got, err)
				}
				if got, err := p.GetButtonDown(label); got || err != nil {
					t.Errorf("GetButtonDown(%q) = (%v, %v), want (false, nil)", label, got, err)
				}
				if got, err := p.GetButtonUp(label); got || err != nil {
					t.Errorf("GetButtonUp(%q) = (%v, %v), want (false, nil)", label, got, err)
				}
				if got, err := p.GetAxis(label); !got.IsZero() || err != nil {
					t.Errorf("GetAxis(%q) = (%v, %v), want (zero, nil)", label, got, err)
				}
			}
		})
	}
}

func TestVariantMismatch(t *testing.T) {
	s := device.NewState()
	p := newTestProfile(s)

	queries := map[string]func(string) error{
		"GetButton":     func(l string) error { _, err := p.GetButton(l); return err },
		"GetButtonDown": func(l string) error { _, err := p.GetButtonDown(l); return err },
		"GetButtonUp":   func(l string) error { _, err := p.GetButtonUp(l); return err },
	}
	for name, q := range queries {
		if err := q("Move"); !errors.Is(err, action.ErrTypeMismatch) {
			t.Errorf("%s(Move) error = %v, want ErrTypeMismatch", name, err)
		}
	}

	v, err := p.GetAxis("Jump")
	if !errors.Is(err, action.ErrTypeMismatch) {
		t.Errorf("GetAxis(Jump) error = %v, want ErrTypeMismatch", err)
	}
	if !v.IsZero() {
		t.Errorf("GetAxis(Jump) = %v, want zero", v)
	}
}

func TestGetAxis(t *testing.T) {
	s := device.NewState()
	p := newTestProfile(s)

	s.Press(control.KeyA)
	s.SetMouseDelta(device.Vec(5, -2))

	move, err := p.GetAxis("Move")
	if err != nil || move != device.Vec(-1, 0) {
		t.Errorf("GetAxis(Move) = (%v, %v), want ((-1, 0), nil)", move, err)
	}
	look, err := p.GetAxis("Look")
	if err != nil || look != device.Vec(5, -2) {
		t.Errorf("GetAxis(Look) = (%v, %v), want ((5, -2), nil)", look, err)
	}
}

func TestDuplicateLabelsFirstWins(t *testing.T) {
	s := device.NewState()
	p := New("dupes",
		action.NewButton(s, action.ButtonConfig{Label: "Use", Primary: control.KeyE}),
		action.NewButton(s, action.ButtonConfig{Label: "Use", Primary: control.KeyR}),
		action.NewAxis(s, action.AxisConfig{Label: "Use"}),
	)

	s.Press(control.KeyR)
	if got, _ := p.GetButton("Use"); got {
		t.Error("later duplicate should not answer")
	}

	s.Press(control.KeyE)
	if got, _ := p.GetButton("Use"); !got {
		t.Error("first duplicate should answer")
	}

	// The axis duplicate is never reached, so there is no mismatch.
	if _, err := p.GetButton("Use"); err != nil {
		t.Errorf("GetButton(Use) error = %v", err)
	}

	dups, err := p.Validate()
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(dups) != 1 || dups[0] != "Use" {
		t.Errorf("Validate() duplicates = %v, want [Use]", dups)
	}
}

func TestValidateEmptyLabel(t *testing.T) {
	s := device.NewState()
	p := New("bad", action.NewButton(s, action.ButtonConfig{Primary: control.KeyA}))
	if _, err := p.Validate(); err == nil {
		t.Error("Validate() should reject an empty label")
	}
}

func TestProfileClone(t *testing.T) {
	s := device.NewState()
	p := newTestProfile(s)

	c, err := p.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if c == p || c.Name != p.Name {
		t.Fatalf("Clone() = %p %q, original %p %q", c, c.Name, p, p.Name)
	}
	if got, want := c.Labels(), p.Labels(); len(got) != len(want) {
		t.Fatalf("clone labels = %v, want %v", got, want)
	}
	orig, cloned := p.Actions(), c.Actions()
	for i := range orig {
		if orig[i] == cloned[i] {
			t.Errorf("action %d shares an instance", i)
		}
		if orig[i].Label() != cloned[i].Label() || orig[i].Kind() != cloned[i].Kind() {
			t.Errorf("action %d = %q/%v, want %q/%v", i, cloned[i].Label(), cloned[i].Kind(), orig[i].Label(), orig[i].Kind())
		}
	}

	s.Press(control.KeyW)
	s.Press(control.KeySpace)
	for _, label := range []string{"Jump", "Fire"} {
		a, _ := p.GetButtonDown(label)
		b, _ := c.GetButtonDown(label)
		if a != b {
			t.Errorf("GetButtonDown(%q) original %v clone %v", label, a, b)
		}
	}
	va, _ := p.GetAxis("Move")
	vb, _ := c.GetAxis("Move")
	if va != vb {
		t.Errorf("GetAxis(Move) original %v clone %v", va, vb)
	}

	// Rebinding the clone leaves the original alone.
	jump, _ := action.AsButton(c.Find("Jump"))
	jump.SetPrimary(control.KeyJ)
	orig0, _ := action.AsButton(p.Find("Jump"))
	if orig0.Primary() != control.KeySpace {
		t.Errorf("original Jump primary = %v, want Space", orig0.Primary())
	}
}

func TestProfileCloneFailsOnUnknownAxisKind(t *testing.T) {
	s := device.NewState()
	p := New("broken",
		action.NewButton(s, action.ButtonConfig{Label: "Jump", Primary: control.KeySpace}),
		action.NewAxis(s, action.AxisConfig{Label: "Odd", Kind: action.AxisKind(77), Logger: quiet}),
	)
	c, err := p.Clone()
	if c != nil || !errors.Is(err, action.ErrUnsupportedAxisKind) {
		t.Errorf("Clone() = (%v, %v), want (nil, ErrUnsupportedAxisKind)", c, err)
	}
}

func TestSetActionsReplacesList(t *testing.T) {
	s := device.NewState()
	p := newTestProfile(s)
	input := []action.Action{action.NewButton(s, action.ButtonConfig{Label: "Only", Primary: control.KeyO})}
	p.SetActions(input)

	input[0] = nil
	if p.Len() != 1 || p.Find("Only") == nil {
		t.Errorf("SetActions should copy the list, Len() = %d", p.Len())
	}
	if p.Find("Jump") != nil {
		t.Error("old actions should be gone")
	}

	list := p.Actions()
	list[0] = nil
	if p.Find("Only") == nil {
		t.Error("Actions() should return a copy")
	}
}

func TestNilActionsDropped(t *testing.T) {
	s := device.NewState()
	jump := action.NewButton(s, action.ButtonConfig{Label: "Jump", Primary: control.KeySpace})

	p := New("keyboard", nil, jump, nil)
	if p.Len() != 1 {
		t.Errorf("New() Len() = %d, want 1", p.Len())
	}
	s.Press(control.KeySpace)
	if held, err := p.GetButton("Jump"); err != nil || !held {
		t.Errorf("GetButton(Jump) = (%v, %v), want (true, nil)", held, err)
	}
	if held, err := p.GetButton("Fire"); err != nil || held {
		t.Errorf("GetButton(Fire) = (%v, %v), want (false, nil)", held, err)
	}

	p.SetActions([]action.Action{nil, nil})
	if p.Len() != 0 || p.Find("Jump") != nil {
		t.Errorf("SetActions(nils) Len() = %d, want 0", p.Len())
	}
	if v, err := p.GetAxis("Move"); err != nil || v != device.Zero {
		t.Errorf("GetAxis(Move) = (%v, %v), want zero", v, err)
	}
	if _, err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
