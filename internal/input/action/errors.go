package action

import (
	"errors"
	"fmt"
)

// Errors returned by action operations.
var (
	// ErrTypeMismatch indicates a button query against an axis or the reverse.
	ErrTypeMismatch = errors.New("action type mismatch")

	// ErrUnsupportedAxisKind indicates an axis kind outside the known set.
	ErrUnsupportedAxisKind = errors.New("unsupported axis kind")
)

// MismatchError is returned when an action is used as the wrong variant.
type MismatchError struct {
	// Label is the label of the action.
	Label string
	// Want is the variant the caller asked for.
	Want Kind
	// Got is the variant the action actually is.
	Got Kind
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	return fmt.Sprintf("action %q: want %s, got %s", e.Label, e.Want, e.Got)
}

// Is implements error matching for MismatchError.
func (e *MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// KindError is returned when an axis has an unrecognized kind.
type KindError struct {
	Label string
	Kind  AxisKind
}

// Error implements the error interface.
func (e *KindError) Error() string {
	return fmt.Sprintf("axis %q: unsupported axis kind %s", e.Label, e.Kind)
}

// Is implements error matching for KindError.
func (e *KindError) Is(target error) bool {
	return target == ErrUnsupportedAxisKind
}
