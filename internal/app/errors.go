package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the viewer should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoProfile indicates the bindings define no usable profile.
	ErrNoProfile = errors.New("no profile to show")

	// ErrUnknownBackend indicates an unsupported frontend name.
	ErrUnknownBackend = errors.New("unknown backend")
)

// InitError wraps a failure while bringing up one component.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
