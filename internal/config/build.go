package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
	"github.com/dshills/rebind/internal/input/profile"
)

// padPrefix marks an abstract gamepad button in a control string.
const padPrefix = "pad:"

// BuildOptions configures the actions Build creates.
type BuildOptions struct {
	// OnRebind is installed on every action.
	OnRebind action.RebindFunc

	// Logger receives construction diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// source is a parsed control string: either a concrete control or an
// abstract gamepad button awaiting resolution.
type source struct {
	key control.Control
	pad control.GamepadButton
}

func parseSource(s string) (source, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return source{}, nil
	}
	if name, ok := strings.CutPrefix(strings.ToLower(s), padPrefix); ok {
		b, ok := control.ParseGamepadButton(name)
		if !ok {
			return source{}, fmt.Errorf("%q: %w", s, ErrUnknownControl)
		}
		return source{pad: b}, nil
	}
	c, ok := control.Parse(s)
	if !ok {
		return source{}, fmt.Errorf("%q: %w", s, ErrUnknownControl)
	}
	return source{key: c}, nil
}

// ParseControl parses a control string as it appears in a bindings file,
// resolving "pad:" names through dev. The empty string is ControlNone.
func ParseControl(s string, dev device.Provider) (control.Control, error) {
	src, err := parseSource(s)
	if err != nil {
		return control.ControlNone, err
	}
	return src.resolve(dev), nil
}

func (s source) resolve(dev device.Provider) control.Control {
	if s.pad != control.GamepadNone {
		return dev.ResolveGamepad(s.pad)
	}
	return s.key
}

func parseActionType(s string) (action.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "button":
		return action.KindButton, nil
	case "axis":
		return action.KindAxis, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownActionType)
}

func parseAxisKind(s string) (action.AxisKind, error) {
	k, ok := action.ParseAxisKind(s)
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownAxisKind)
	}
	return k, nil
}

// Fields returns the source fields a may carry: primary and alt for a
// button, the direction fields for any axis. Build warns when a stick or
// mouse axis has direction sources. An unknown type has none.
func (a *ActionSpec) Fields() []string {
	kind, err := parseActionType(a.Type)
	switch {
	case err != nil:
		return nil
	case kind == action.KindButton:
		return action.ButtonFields
	default:
		return action.AxisFields
	}
}

// HasField reports whether field is a source field of a's type.
func (a *ActionSpec) HasField(field string) bool {
	return slices.Contains(a.Fields(), field)
}

// checkFields rejects sources stored under fields of the other action type.
func checkFields(as *ActionSpec) (string, error) {
	for _, f := range specFields {
		if !isSourceField(f.key) || as.HasField(f.key) || *f.ref(as) == "" {
			continue
		}
		return f.key, fmt.Errorf("%s %q has no field %q: %w", strings.ToLower(strings.TrimSpace(as.Type)), as.Label, f.key, action.ErrUnknownField)
	}
	return "", nil
}

// Build creates a profile set from f. Every action polls dev.
func Build(f *File, dev device.Provider, opts BuildOptions) (*profile.Set, error) {
	set := profile.NewSet()
	for _, ps := range f.Profiles {
		pp, err := BuildProfile(ps, dev, opts)
		if err != nil {
			return nil, err
		}
		set.Add(pp)
	}
	return set, nil
}

// BuildProfile creates one platform profile. Duplicate labels are allowed
// (the first one wins lookups) and are logged.
func BuildProfile(ps ProfileSpec, dev device.Provider, opts BuildOptions) (*profile.PlatformProfile, error) {
	platform, ok := profile.ParsePlatform(ps.Platform)
	if !ok {
		return nil, &BindingError{Profile: ps.Name, Err: fmt.Errorf("%q: %w", ps.Platform, ErrUnknownPlatform)}
	}

	actions := make([]action.Action, 0, len(ps.Actions))
	for i := range ps.Actions {
		a, err := buildAction(ps.Name, &ps.Actions[i], dev, opts)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}

	p := profile.New(ps.Name, actions...)
	dups, err := p.Validate()
	if err != nil {
		return nil, &BindingError{Profile: ps.Name, Err: err}
	}
	for _, label := range dups {
		opts.logger().Warn("duplicate action label, first one wins", "profile", ps.Name, "label", label)
	}
	return profile.NewPlatform(platform, p), nil
}

func buildAction(profileName string, as *ActionSpec, dev device.Provider, opts BuildOptions) (action.Action, error) {
	fail := func(field string, err error) error {
		return &BindingError{Profile: profileName, Label: as.Label, Field: field, Err: err}
	}
	if as.Label == "" {
		return nil, fail("", ErrEmptyLabel)
	}
	kind, err := parseActionType(as.Type)
	if err != nil {
		return nil, fail("type", err)
	}
	if field, err := checkFields(as); err != nil {
		return nil, fail(field, err)
	}

	if kind == action.KindButton {
		cfg := action.ButtonConfig{Label: as.Label, OnRebind: opts.OnRebind, Logger: opts.Logger}
		targets := []sourceTarget{
			{action.FieldPrimary, &cfg.Primary, &cfg.GamepadPrimary},
			{action.FieldAlt, &cfg.Alt, &cfg.GamepadAlt},
		}
		if field, err := fillSources(as, targets); err != nil {
			return nil, fail(field, err)
		}
		return action.NewButton(dev, cfg), nil
	}

	axisKind, err := parseAxisKind(as.Kind)
	if err != nil {
		return nil, fail("kind", err)
	}
	cfg := action.AxisConfig{Label: as.Label, Kind: axisKind, OnRebind: opts.OnRebind, Logger: opts.Logger}
	targets := []sourceTarget{
		{"positive_x", &cfg.Primary.PositiveX, &cfg.GamepadPrimary.PositiveX},
		{"negative_x", &cfg.Primary.NegativeX, &cfg.GamepadPrimary.NegativeX},
		{"positive_y", &cfg.Primary.PositiveY, &cfg.GamepadPrimary.PositiveY},
		{"negative_y", &cfg.Primary.NegativeY, &cfg.GamepadPrimary.NegativeY},
		{"alt_positive_x", &cfg.Alt.PositiveX, &cfg.GamepadAlt.PositiveX},
		{"alt_negative_x", &cfg.Alt.NegativeX, &cfg.GamepadAlt.NegativeX},
		{"alt_positive_y", &cfg.Alt.PositiveY, &cfg.GamepadAlt.PositiveY},
		{"alt_negative_y", &cfg.Alt.NegativeY, &cfg.GamepadAlt.NegativeY},
	}
	if field, err := fillSources(as, targets); err != nil {
		return nil, fail(field, err)
	}
	return action.NewAxis(dev, cfg), nil
}

type sourceTarget struct {
	field string
	key   *control.Control
	pad   *control.GamepadButton
}

func fillSources(as *ActionSpec, targets []sourceTarget) (string, error) {
	for _, t := range targets {
		src, err := parseSource(as.Source(t.field))
		if err != nil {
			return t.field, err
		}
		*t.key, *t.pad = src.key, src.pad
	}
	return "", nil
}

// Export converts a profile set back into the file model. Gamepad buttons
// are written as the joystick controls they resolved to.
func Export(set *profile.Set) *File {
	f := &File{}
	for _, pp := range set.Profiles() {
		ps := ProfileSpec{Name: pp.Name}
		if pp.Platform() != profile.PlatformAny {
			ps.Platform = pp.Platform().String()
		}
		for _, a := range pp.Actions() {
			ps.Actions = append(ps.Actions, exportAction(a))
		}
		f.Profiles = append(f.Profiles, ps)
	}
	return f
}

func exportAction(a action.Action) ActionSpec {
	as := ActionSpec{Type: a.Kind().String(), Label: a.Label()}
	if ax, ok := a.(*action.Axis); ok {
		as.Kind = ax.AxisKind().String()
	}
	for _, field := range action.Fields(a) {
		c, _ := action.SourceOf(a, field)
		if c != control.ControlNone {
			as.SetSource(field, c.String())
		}
	}
	return as
}

// Apply pushes the bindings in f into the matching actions of set. Only
// sources that differ are rebound, so callbacks fire once per real change.
// It returns the number of rebinds.
//
// Profiles and actions are paired by position when the names line up, and
// by first match otherwise. A live action is updated from at most one spec,
// so a repeated label in f never overwrites the action that wins lookups.
//
// Apply never adds or removes actions. Profiles, labels or kinds that do
// not line up are reported in the joined error and skipped; callers that
// need structural changes rebuild with Build.
func Apply(set *profile.Set, f *File, dev device.Provider) (int, error) {
	var (
		n        int
		errs     []error
		profiles = set.Profiles()
		applied  = make(map[*profile.PlatformProfile]bool, len(profiles))
	)
	for pi := range f.Profiles {
		ps := &f.Profiles[pi]
		var pp *profile.PlatformProfile
		if pi < len(profiles) && profiles[pi].Name == ps.Name {
			pp = profiles[pi]
		} else {
			pp = set.Named(ps.Name)
		}
		if pp == nil {
			errs = append(errs, &BindingError{Profile: ps.Name, Err: ErrProfileNotFound})
			continue
		}
		if applied[pp] {
			continue
		}
		applied[pp] = true

		actions := pp.Actions()
		used := make(map[action.Action]bool, len(actions))
		for i := range ps.Actions {
			as := &ps.Actions[i]
			var a action.Action
			if i < len(actions) && actions[i].Label() == as.Label {
				a = actions[i]
			} else {
				a = pp.Find(as.Label)
			}
			if a == nil {
				errs = append(errs, &BindingError{Profile: ps.Name, Label: as.Label, Err: ErrActionNotFound})
				continue
			}
			if used[a] {
				continue
			}
			used[a] = true

			if err := sameKind(a, as); err != nil {
				errs = append(errs, &BindingError{Profile: ps.Name, Label: as.Label, Err: err})
				continue
			}
			rebinds, err := applyAction(ps.Name, a, as, dev)
			n += rebinds
			errs = append(errs, err...)
		}
	}
	return n, errors.Join(errs...)
}

func applyAction(profileName string, a action.Action, as *ActionSpec, dev device.Provider) (int, []error) {
	var (
		n    int
		errs []error
	)
	for _, field := range action.Fields(a) {
		src, err := parseSource(as.Source(field))
		if err != nil {
			errs = append(errs, &BindingError{Profile: profileName, Label: as.Label, Field: field, Err: err})
			continue
		}
		want := src.resolve(dev)
		if have, _ := action.SourceOf(a, field); have == want {
			continue
		}
		if err := action.Rebind(a, field, want); err != nil {
			errs = append(errs, err)
			continue
		}
		n++
	}
	return n, errs
}

func sameKind(a action.Action, as *ActionSpec) error {
	kind, err := parseActionType(as.Type)
	if err != nil {
		return err
	}
	if kind != a.Kind() {
		return fmt.Errorf("%s to %s: %w", a.Kind(), kind, ErrKindChanged)
	}
	ax, ok := a.(*action.Axis)
	if !ok {
		return nil
	}
	axisKind, err := parseAxisKind(as.Kind)
	if err != nil {
		return err
	}
	if axisKind != ax.AxisKind() {
		return fmt.Errorf("%s to %s: %w", ax.AxisKind(), axisKind, ErrKindChanged)
	}
	return nil
}
