package config

import (
	"errors"
	"fmt"
)

// Errors returned by bindings file operations.
var (
	// ErrUnknownControl indicates a control name that does not parse.
	ErrUnknownControl = errors.New("unknown control")

	// ErrUnknownFormat indicates a file extension or format name with no codec.
	ErrUnknownFormat = errors.New("unknown bindings format")

	// ErrUnknownPlatform indicates an unrecognized profile platform.
	ErrUnknownPlatform = errors.New("unknown platform")

	// ErrUnknownActionType indicates an action type other than button or axis.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrUnknownAxisKind indicates an unrecognized axis kind.
	ErrUnknownAxisKind = errors.New("unknown axis kind")

	// ErrSchema indicates bindings that do not match the bindings schema.
	ErrSchema = errors.New("bindings do not match schema")

	// ErrProfileNotFound indicates a profile name missing from the set or file.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrActionNotFound indicates an action label missing from a profile.
	ErrActionNotFound = errors.New("action not found")

	// ErrKindChanged indicates a reload that changes an action's type or axis
	// kind. Those can only change by rebuilding the set.
	ErrKindChanged = errors.New("action kind changed")

	// ErrEmptyLabel indicates an action without a label.
	ErrEmptyLabel = errors.New("empty action label")
)

// ParseError represents an error while parsing a bindings file.
type ParseError struct {
	// Path is the file path that failed to parse, or the format name for
	// in-memory data.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// BindingError locates a failure inside the bindings file.
type BindingError struct {
	Profile string
	Label   string
	Field   string
	Err     error
}

func (e *BindingError) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("profile %q action %q field %s: %v", e.Profile, e.Label, e.Field, e.Err)
	case e.Label != "":
		return fmt.Sprintf("profile %q action %q: %v", e.Profile, e.Label, e.Err)
	default:
		return fmt.Sprintf("profile %q: %v", e.Profile, e.Err)
	}
}

func (e *BindingError) Unwrap() error {
	return e.Err
}
