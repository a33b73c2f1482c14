package action

import (
	"fmt"
	"log/slog"
)

// Kind discriminates the action variants.
type Kind uint8

const (
	// KindButton is a digital action backed by up to two controls.
	KindButton Kind = iota

	// KindAxis is a 2D action backed by a stick, the mouse, or four
	// pairs of controls.
	KindAxis
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindAxis:
		return "axis"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Action is a named, rebindable virtual control.
//
// The set of implementations is closed: every Action is either a *Button
// or an *Axis. Use AsButton and AsAxis to narrow.
type Action interface {
	// Label returns the name the action is looked up by.
	Label() string

	// Kind returns the action variant.
	Kind() Kind

	// Clone returns an independent copy sharing the rebind callback.
	Clone() (Action, error)

	sealed()
}

// RebindFunc is notified after an action's source changes.
// It is shared between an action and its clones.
type RebindFunc func(a Action)

// AsButton narrows a to a *Button.
func AsButton(a Action) (*Button, error) {
	switch v := a.(type) {
	case *Button:
		return v, nil
	case *Axis:
		return nil, &MismatchError{Label: v.Label(), Want: KindButton, Got: KindAxis}
	default:
		return nil, fmt.Errorf("unknown action type %T: %w", a, ErrTypeMismatch)
	}
}

// AsAxis narrows a to an *Axis.
func AsAxis(a Action) (*Axis, error) {
	switch v := a.(type) {
	case *Axis:
		return v, nil
	case *Button:
		return nil, &MismatchError{Label: v.Label(), Want: KindAxis, Got: KindButton}
	default:
		return nil, fmt.Errorf("unknown action type %T: %w", a, ErrTypeMismatch)
	}
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
