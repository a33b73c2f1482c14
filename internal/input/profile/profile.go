package profile

import (
	"fmt"
	"slices"

	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/device"
)

// Profile is an ordered collection of actions forming one control scheme.
//
// Lookup is by label. When labels repeat, the first action in insertion
// order wins.
type Profile struct {
	// Name identifies the profile. It is informational.
	Name string

	actions []action.Action
}

// New creates a profile owning the given actions. Nil entries are dropped.
func New(name string, actions ...action.Action) *Profile {
	return &Profile{
		Name:    name,
		actions: withoutNil(actions),
	}
}

func withoutNil(actions []action.Action) []action.Action {
	return slices.DeleteFunc(slices.Clone(actions), func(a action.Action) bool {
		return a == nil
	})
}

// Len returns the number of actions.
func (p *Profile) Len() int {
	return len(p.actions)
}

// Actions returns a copy of the action list.
func (p *Profile) Actions() []action.Action {
	return slices.Clone(p.actions)
}

// SetActions replaces the whole action list. Nil entries are dropped.
func (p *Profile) SetActions(actions []action.Action) {
	p.actions = withoutNil(actions)
}

// Labels returns the action labels in order.
func (p *Profile) Labels() []string {
	labels := make([]string, len(p.actions))
	for i, a := range p.actions {
		labels[i] = a.Label()
	}
	return labels
}

// Find returns the first action with the given label, or nil.
func (p *Profile) Find(label string) action.Action {
	for _, a := range p.actions {
		if a.Label() == label {
			return a
		}
	}
	return nil
}

// button resolves label to a button. A miss returns nil without error.
func (p *Profile) button(label string) (*action.Button, error) {
	a := p.Find(label)
	if a == nil {
		return nil, nil
	}
	return action.AsButton(a)
}

// GetButton returns true while the labeled button is held.
// An unknown label returns false. An axis label returns
// action.ErrTypeMismatch.
func (p *Profile) GetButton(label string) (bool, error) {
	b, err := p.button(label)
	if b == nil {
		return false, err
	}
	return b.Held(), nil
}

// GetButtonDown returns true on the frame the labeled button was pressed.
func (p *Profile) GetButtonDown(label string) (bool, error) {
	b, err := p.button(label)
	if b == nil {
		return false, err
	}
	return b.Pressed(), nil
}

// GetButtonUp returns true on the frame the labeled button was released.
func (p *Profile) GetButtonUp(label string) (bool, error) {
	b, err := p.button(label)
	if b == nil {
		return false, err
	}
	return b.Released(), nil
}

// GetAxis returns the labeled axis value.
// An unknown label returns the zero vector. A button label returns
// action.ErrTypeMismatch.
func (p *Profile) GetAxis(label string) (device.Vector2, error) {
	a := p.Find(label)
	if a == nil {
		return device.Zero, nil
	}
	axis, err := action.AsAxis(a)
	if err != nil {
		return device.Zero, err
	}
	return axis.Value(), nil
}

// Clone returns a profile holding clones of every action, in order.
func (p *Profile) Clone() (*Profile, error) {
	actions, err := cloneActions(p.actions)
	if err != nil {
		return nil, fmt.Errorf("cloning profile %q: %w", p.Name, err)
	}
	return &Profile{Name: p.Name, actions: actions}, nil
}

func cloneActions(src []action.Action) ([]action.Action, error) {
	out := make([]action.Action, len(src))
	for i, a := range src {
		c, err := a.Clone()
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// Validate checks that every action has a label.
// Duplicate labels are legal and are returned for reporting.
func (p *Profile) Validate() (duplicates []string, err error) {
	seen := make(map[string]bool, len(p.actions))
	for i, a := range p.actions {
		label := a.Label()
		if label == "" {
			return nil, fmt.Errorf("action %d (%s): empty label", i, a.Kind())
		}
		if seen[label] && !slices.Contains(duplicates, label) {
			duplicates = append(duplicates, label)
		}
		seen[label] = true
	}
	return duplicates, nil
}
