package action

import (
	"errors"
	"fmt"

	"github.com/dshills/rebind/internal/input/control"
)

// ErrUnknownField indicates a source field name the action does not have.
var ErrUnknownField = errors.New("unknown source field")

// Source field names.
const (
	FieldPrimary = "primary"
	FieldAlt     = "alt"
)

// ButtonFields lists the source fields of a button.
var ButtonFields = []string{FieldPrimary, FieldAlt}

// AxisFields lists the source fields of a button axis, primary
// directions first.
var AxisFields = func() []string {
	out := make([]string, 0, len(Directions)*int(slotCount))
	for _, d := range Directions {
		out = append(out, fieldName(d, Primary))
	}
	for _, d := range Directions {
		out = append(out, fieldName(d, Alternate))
	}
	return out
}()

func fieldName(d Direction, s Slot) string {
	if s == Alternate {
		return "alt_" + d.String()
	}
	return d.String()
}

// ParseAxisField splits an axis field name into direction and slot.
func ParseAxisField(field string) (Direction, Slot, bool) {
	for _, d := range Directions {
		for _, s := range []Slot{Primary, Alternate} {
			if fieldName(d, s) == field {
				return d, s, true
			}
		}
	}
	return 0, 0, false
}

// Fields returns the rebindable source fields of a. Stick and mouse
// axes have none.
func Fields(a Action) []string {
	switch v := a.(type) {
	case *Button:
		return ButtonFields
	case *Axis:
		if v.kind == AxisButtons {
			return AxisFields
		}
	}
	return nil
}

// SourceOf returns the control bound to a named field.
func SourceOf(a Action, field string) (control.Control, error) {
	switch v := a.(type) {
	case *Button:
		switch field {
		case FieldPrimary:
			return v.primary, nil
		case FieldAlt:
			return v.alt, nil
		}
	case *Axis:
		if d, s, ok := ParseAxisField(field); ok {
			return v.Source(d, s), nil
		}
	}
	return control.ControlNone, fieldError(a, field)
}

// Rebind sets a named source field, notifying the action's callback.
func Rebind(a Action, field string, c control.Control) error {
	switch v := a.(type) {
	case *Button:
		switch field {
		case FieldPrimary:
			v.SetPrimary(c)
			return nil
		case FieldAlt:
			v.SetAlt(c)
			return nil
		}
	case *Axis:
		if d, s, ok := ParseAxisField(field); ok {
			v.SetSource(d, s, c)
			return nil
		}
	}
	return fieldError(a, field)
}

func fieldError(a Action, field string) error {
	if a == nil {
		return fmt.Errorf("nil action: %w", ErrUnknownField)
	}
	return fmt.Errorf("%s %q has no field %q: %w", a.Kind(), a.Label(), field, ErrUnknownField)
}
