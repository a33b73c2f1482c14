package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/rebind/internal/config"
	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
)

var errBindSyntax = errors.New("want Label.field=Control")

// parseBindSpec splits "Label.field=Control". The label may itself contain
// dots; the field is everything after the last one.
func parseBindSpec(spec string) (label, field, value string, err error) {
	lhs, value, ok := strings.Cut(spec, "=")
	if !ok {
		return "", "", "", fmt.Errorf("%q: %w", spec, errBindSyntax)
	}
	i := strings.LastIndexByte(lhs, '.')
	if i <= 0 || i == len(lhs)-1 {
		return "", "", "", fmt.Errorf("%q: %w", spec, errBindSyntax)
	}
	return strings.TrimSpace(lhs[:i]), strings.TrimSpace(lhs[i+1:]), strings.TrimSpace(value), nil
}

// setBinding edits one source in the bindings file at path. JSON files are
// patched in place so unrelated formatting survives; TOML and YAML files
// are rewritten.
func setBinding(path, profileName, spec string) error {
	label, field, value, err := parseBindSpec(spec)
	if err != nil {
		return err
	}
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	if profileName == "" {
		if len(f.Profiles) != 1 {
			return fmt.Errorf("-profile is required when the file has %d profiles", len(f.Profiles))
		}
		profileName = f.Profiles[0].Name
	}
	if value != "" {
		if _, err := config.ParseControl(value, device.NewState()); err != nil {
			return err
		}
	}

	format, err := config.FormatOf(path)
	if err != nil {
		return err
	}
	if format == config.FormatJSON {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out, err := config.PatchJSON(data, profileName, label, field, value)
		if err != nil {
			return err
		}
		return os.WriteFile(path, out, 0o644)
	}

	ps := f.Profile(profileName)
	if ps == nil {
		return fmt.Errorf("%q: %w", profileName, config.ErrProfileNotFound)
	}
	as := ps.Action(label)
	if as == nil {
		return &config.BindingError{Profile: profileName, Label: label, Err: config.ErrActionNotFound}
	}
	if !as.SetSource(field, value) {
		return &config.BindingError{Profile: profileName, Label: label, Field: field, Err: action.ErrUnknownField}
	}
	return config.Save(path, f)
}

// describe renders an action for -check output.
func describe(act action.Action) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %s", act.Label(), act.Kind())
	if ax, ok := act.(*action.Axis); ok {
		fmt.Fprintf(&b, " (%s)", ax.AxisKind())
	}
	for _, field := range action.Fields(act) {
		c, _ := action.SourceOf(act, field)
		if c != control.ControlNone {
			fmt.Fprintf(&b, " %s=%s", field, c)
		}
	}
	return b.String()
}
