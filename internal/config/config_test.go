package config

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/rebind/internal/input/action"
	"github.com/dshills/rebind/internal/input/control"
	"github.com/dshills/rebind/internal/input/device"
	"github.com/dshills/rebind/internal/input/profile"
)

const sampleTOML = `
layout = "standard"

[[profiles]]
name = "keyboard"
platform = "desktop"

[[profiles.actions]]
type = "button"
label = "Jump"
primary = "space"
alt = "pad:south"

[[profiles.actions]]
type = "axis"
label = "Move"
kind = "buttons"
positive_x = "d"
negative_x = "a"
positive_y = "w"
negative_y = "s"
alt_positive_x = "right"
alt_negative_x = "left"

[[profiles]]
name = "pad"
platform = "gamepad"

[[profiles.actions]]
type = "axis"
label = "Look"
kind = "right_stick"
`

const sampleYAML = `
layout: standard
profiles:
  - name: keyboard
    platform: desktop
    actions:
      - type: button
        label: Jump
        primary: space
        alt: "pad:south"
      - type: axis
        label: Move
        kind: buttons
        positive_x: d
        negative_x: a
        positive_y: w
        negative_y: s
        alt_positive_x: right
        alt_negative_x: left
  - name: pad
    platform: gamepad
    actions:
      - type: axis
        label: Look
        kind: right_stick
`

const sampleJSON = `{
  "layout": "standard",
  "profiles": [
    {
      "name": "keyboard",
      "platform": "desktop",
      "actions": [
        {"type": "button", "label": "Jump", "primary": "space", "alt": "pad:south"},
        {"type": "axis", "label": "Move", "kind": "buttons",
         "positive_x": "d", "negative_x": "a", "positive_y": "w", "negative_y": "s",
         "alt_positive_x": "right", "alt_negative_x": "left"}
      ]
    },
    {
      "name": "pad",
      "platform": "gamepad",
      "actions": [{"type": "axis", "label": "Look", "kind": "right_stick"}]
    }
  ]
}`

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustDecode(t *testing.T, format Format, data string) *File {
	t.Helper()
	f, err := Decode(format, []byte(data))
	if err != nil {
		t.Fatalf("Decode(%s) error = %v", format, err)
	}
	return f
}

func TestDecodeFormatsAgree(t *testing.T) {
	want := mustDecode(t, FormatTOML, sampleTOML)
	if len(want.Profiles) != 2 || len(want.Profiles[0].Actions) != 2 {
		t.Fatalf("toml decode = %+v", want)
	}
	if got := want.Profiles[0].Actions[1].AltNegativeX; got != "left" {
		t.Errorf("alt_negative_x = %q, want left", got)
	}

	for _, tc := range []struct {
		format Format
		data   string
	}{
		{FormatYAML, sampleYAML},
		{FormatJSON, sampleJSON},
	} {
		t.Run(tc.format.String(), func(t *testing.T) {
			got := mustDecode(t, tc.format, tc.data)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Decode(%s) = %+v\nwant %+v", tc.format, got, want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	want := mustDecode(t, FormatTOML, sampleTOML)
	for _, format := range []Format{FormatTOML, FormatYAML, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			data, err := Encode(format, want)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(format, data)
			if err != nil {
				t.Fatalf("Decode(Encode()) error = %v\n%s", err, data)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip = %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"toml syntax", FormatTOML, "[[profiles]]\nname = \n"},
		{"toml unknown field", FormatTOML, "[[profiles]]\nname = \"k\"\ncolour = \"red\"\n"},
		{"yaml unknown field", FormatYAML, "profiles:\n  - name: k\n    colour: red\n"},
		{"json invalid", FormatJSON, `{"profiles": [`},
		{"json unknown key", FormatJSON, `{"profiles": [{"name": "k", "colour": "red"}]}`},
		{"json wrong type", FormatJSON, `{"profiles": [{"name": "k", "actions": [{"label": 3}]}]}`},
		{"json not object", FormatJSON, `[]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.format, []byte(tt.data))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Decode() error = %v, want *ParseError", err)
			}
		})
	}

	_, err := Decode(FormatTOML, []byte("[[profiles]]\nname = \n"))
	var pe *ParseError
	if errors.As(err, &pe) && pe.Line < 1 {
		t.Errorf("ParseError.Line = %d, want a position", pe.Line)
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, format := range []Format{FormatTOML, FormatYAML} {
		f, err := Decode(format, nil)
		if err != nil {
			t.Errorf("Decode(%s, empty) error = %v", format, err)
			continue
		}
		if len(f.Profiles) != 0 {
			t.Errorf("Decode(%s, empty) profiles = %d", format, len(f.Profiles))
		}
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"bindings.toml", FormatTOML, false},
		{"dir/bindings.YML", FormatYAML, false},
		{"bindings.yaml", FormatYAML, false},
		{"bindings.json", FormatJSON, false},
		{"bindings.ini", 0, true},
		{"bindings", 0, true},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatOf(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFormat) {
			t.Errorf("FormatOf(%q) error = %v, want ErrUnknownFormat", tt.path, err)
		}
		if err == nil && got != tt.want {
			t.Errorf("FormatOf(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bindings.toml")
	if err := os.WriteFile(src, []byte(sampleTOML), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(src)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dst := filepath.Join(dir, "bindings.json")
	if err := Save(dst, f); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	back, err := Load(dst)
	if err != nil {
		t.Fatalf("Load(saved) error = %v", err)
	}
	if !reflect.DeepEqual(back, f) {
		t.Errorf("Load(Save(f)) = %+v, want %+v", back, f)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("x = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != bad {
		t.Errorf("Load(bad) error = %v, want *ParseError for %s", err, bad)
	}
}

func TestBuild(t *testing.T) {
	s := device.NewState()
	set, err := Build(mustDecode(t, FormatTOML, sampleTOML), s, BuildOptions{Logger: quiet()})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", set.Len())
	}

	kb := set.Select(profile.PlatformDesktop)
	if kb == nil || kb.Name != "keyboard" {
		t.Fatalf("Select(desktop) = %v", kb)
	}
	jump, err := action.AsButton(kb.Find("Jump"))
	if err != nil {
		t.Fatal(err)
	}
	if jump.Primary() != control.KeySpace || jump.Alt() != control.JoystickButton(0) {
		t.Errorf("Jump = (%v, %v), want (Space, Joystick0)", jump.Primary(), jump.Alt())
	}

	s.Press(control.KeyD)
	s.Press(control.KeyW)
	v, err := kb.GetAxis("Move")
	if err != nil {
		t.Fatal(err)
	}
	if v.X <= 0 || v.Y <= 0 || v.Len() < 0.999 || v.Len() > 1.001 {
		t.Errorf("GetAxis(Move) = %v, want unit diagonal", v)
	}

	pad := set.Select(profile.PlatformGamepad)
	look, err := action.AsAxis(pad.Find("Look"))
	if err != nil {
		t.Fatal(err)
	}
	if look.AxisKind() != action.AxisRightStick {
		t.Errorf("Look kind = %v", look.AxisKind())
	}
}

func TestBuildNintendoLayout(t *testing.T) {
	s := device.NewState(device.WithLayout(control.LayoutNintendo))
	f := &File{Profiles: []ProfileSpec{{Name: "pad", Actions: []ActionSpec{
		{Type: "button", Label: "Confirm", Primary: "pad:south"},
	}}}}
	set, err := Build(f, s, BuildOptions{Logger: quiet()})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := action.AsButton(set.Named("pad").Find("Confirm"))
	if b.Primary() != control.JoystickButton(1) {
		t.Errorf("Confirm primary = %v, want Joystick1", b.Primary())
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		spec  ProfileSpec
		want  error
		field string
	}{
		{"platform", ProfileSpec{Name: "p", Platform: "toaster"}, ErrUnknownPlatform, ""},
		{"type", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "trigger", Label: "Fire"}}}, ErrUnknownActionType, "type"},
		{"axis kind", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "axis", Label: "Move", Kind: "wheel"}}}, ErrUnknownAxisKind, "kind"},
		{"control", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "button", Label: "Jump", Primary: "hyper"}}}, ErrUnknownControl, "primary"},
		{"pad control", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "axis", Label: "Move", Kind: "buttons", AltNegativeY: "pad:zl"}}}, ErrUnknownControl, "alt_negative_y"},
		{"label", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "button"}}}, ErrEmptyLabel, ""},
		{"direction on button", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "button", Label: "Jump", PositiveX: "k"}}}, action.ErrUnknownField, "positive_x"},
		{"primary on axis", ProfileSpec{Name: "p", Actions: []ActionSpec{{Type: "axis", Label: "Move", Kind: "buttons", Primary: "k"}}}, action.ErrUnknownField, "primary"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&File{Profiles: []ProfileSpec{tt.spec}}, device.NewState(), BuildOptions{Logger: quiet()})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build() error = %v, want %v", err, tt.want)
			}
			var be *BindingError
			if !errors.As(err, &be) {
				t.Fatalf("Build() error = %T, want *BindingError", err)
			}
			if be.Profile != "p" || be.Field != tt.field {
				t.Errorf("BindingError = %+v, want profile p field %q", be, tt.field)
			}
		})
	}
}

func TestBuildDuplicateLabelsWarn(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	f := &File{Profiles: []ProfileSpec{{Name: "kb", Actions: []ActionSpec{
		{Type: "button", Label: "Jump", Primary: "space"},
		{Type: "button", Label: "Jump", Primary: "j"},
	}}}}
	set, err := Build(f, device.NewState(), BuildOptions{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "duplicate action label") || !strings.Contains(buf.String(), "label=Jump") {
		t.Errorf("log = %q, want duplicate warning", buf.String())
	}
	b, _ := action.AsButton(set.Named("kb").Find("Jump"))
	if b.Primary() != control.KeySpace {
		t.Errorf("first Jump primary = %v, want Space", b.Primary())
	}
}

func TestExport(t *testing.T) {
	s := device.NewState()
	set, err := Build(mustDecode(t, FormatTOML, sampleTOML), s, BuildOptions{Logger: quiet()})
	if err != nil {
		t.Fatal(err)
	}
	f := Export(set)

	jump := f.Profile("keyboard").Action("Jump")
	if jump == nil || jump.Type != "button" || jump.Primary != "Space" || jump.Alt != "Joystick0" {
		t.Errorf("exported Jump = %+v", jump)
	}
	move := f.Profile("keyboard").Action("Move")
	if move == nil || move.Kind != "buttons" || move.PositiveX != "D" || move.AltNegativeX != "Left" || move.AltPositiveY != "" {
		t.Errorf("exported Move = %+v", move)
	}
	look := f.Profile("pad").Action("Look")
	if look == nil || look.Kind != "right_stick" || look.Primary != "" {
		t.Errorf("exported Look = %+v", look)
	}
	if f.Profile("pad").Platform != "gamepad" {
		t.Errorf("exported platform = %q", f.Profile("pad").Platform)
	}

	rebuilt, err := Build(f, s, BuildOptions{Logger: quiet()})
	if err != nil {
		t.Fatalf("Build(Export()) error = %v", err)
	}
	if !reflect.DeepEqual(Export(rebuilt), f) {
		t.Error("Export(Build(Export(set))) differs from Export(set)")
	}
}

func TestApply(t *testing.T) {
	s := device.NewState()
	var rebound []string
	opts := BuildOptions{
		Logger:   quiet(),
		OnRebind: func(a action.Action) { rebound = append(rebound, a.Label()) },
	}
	set, err := Build(mustDecode(t, FormatTOML, sampleTOML), s, opts)
	if err != nil {
		t.Fatal(err)
	}

	// Unchanged file: nothing to do.
	n, err := Apply(set, mustDecode(t, FormatTOML, sampleTOML), s)
	if err != nil || n != 0 || len(rebound) != 0 {
		t.Fatalf("Apply(same) = (%d, %v), callbacks %v", n, err, rebound)
	}

	next := mustDecode(t, FormatTOML, sampleTOML)
	kb := next.Profile("keyboard")
	kb.Action("Jump").Primary = "k"
	kb.Action("Move").AltNegativeX = ""
	kb.Action("Move").AltPositiveY = "up"

	n, err = Apply(set, next, s)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Apply() = %d, want 3", n)
	}
	if want := []string{"Jump", "Move", "Move"}; !reflect.DeepEqual(rebound, want) {
		t.Errorf("callbacks = %v, want %v", rebound, want)
	}

	live := set.Named("keyboard")
	jump, _ := action.AsButton(live.Find("Jump"))
	if jump.Primary() != control.KeyK {
		t.Errorf("Jump primary = %v, want K", jump.Primary())
	}
	move, _ := action.AsAxis(live.Find("Move"))
	if move.Source(action.NegativeX, action.Alternate) != control.ControlNone ||
		move.Source(action.PositiveY, action.Alternate) != control.KeyUp {
		t.Errorf("Move alt = %+v", move.Alt())
	}
}

func TestApplyDuplicateLabels(t *testing.T) {
	s := device.NewState()
	var rebound []string
	opts := BuildOptions{
		Logger:   quiet(),
		OnRebind: func(a action.Action) { rebound = append(rebound, a.Label()) },
	}
	file := func() *File {
		return &File{Profiles: []ProfileSpec{
			{Name: "kb", Actions: []ActionSpec{
				{Type: "button", Label: "Jump", Primary: "space"},
				{Type: "button", Label: "Jump", Primary: "k"},
			}},
			{Name: "kb", Actions: []ActionSpec{
				{Type: "button", Label: "Jump", Primary: "j"},
			}},
		}}
	}
	set, err := Build(file(), s, opts)
	if err != nil {
		t.Fatal(err)
	}

	n, err := Apply(set, file(), s)
	if err != nil || n != 0 || len(rebound) != 0 {
		t.Fatalf("Apply(same) = (%d, %v), callbacks %v", n, err, rebound)
	}
	s.Press(control.KeySpace)
	if held, _ := set.Named("kb").GetButton("Jump"); !held {
		t.Error("first Jump should still answer to Space")
	}

	// A second spec with a label the live profile has only once must not
	// overwrite the first.
	set, err = Build(&File{Profiles: []ProfileSpec{{Name: "kb", Actions: []ActionSpec{
		{Type: "button", Label: "Jump", Primary: "space"},
	}}}}, s, opts)
	if err != nil {
		t.Fatal(err)
	}
	n, err = Apply(set, file(), s)
	if err != nil || n != 0 {
		t.Errorf("Apply(extra duplicates) = (%d, %v), want 0 rebinds", n, err)
	}
	b, _ := action.AsButton(set.Named("kb").Find("Jump"))
	if b.Primary() != control.KeySpace {
		t.Errorf("Jump primary = %v, want Space", b.Primary())
	}

	next := file()
	next.Profiles[0].Actions[1].Primary = "l"
	full, err := Build(file(), s, opts)
	if err != nil {
		t.Fatal(err)
	}
	rebound = nil
	if n, err := Apply(full, next, s); err != nil || n != 1 {
		t.Fatalf("Apply(second Jump) = (%d, %v), want 1", n, err)
	}
	second, _ := action.AsButton(full.Named("kb").Actions()[1])
	if second.Primary() != control.KeyL {
		t.Errorf("second Jump primary = %v, want L", second.Primary())
	}
}

func TestApplyStructuralErrors(t *testing.T) {
	s := device.NewState()
	set, err := Build(mustDecode(t, FormatTOML, sampleTOML), s, BuildOptions{Logger: quiet()})
	if err != nil {
		t.Fatal(err)
	}

	next := mustDecode(t, FormatTOML, sampleTOML)
	next.Profile("keyboard").Action("Jump").Primary = "j"
	next.Profile("keyboard").Actions = append(next.Profile("keyboard").Actions,
		ActionSpec{Type: "button", Label: "Crouch", Primary: "c"})
	next.Profile("pad").Action("Look").Kind = "mouse"
	next.Profiles = append(next.Profiles, ProfileSpec{Name: "touch"})

	n, err := Apply(set, next, s)
	if n != 1 {
		t.Errorf("Apply() = %d, want 1 (valid changes still apply)", n)
	}
	for _, want := range []error{ErrActionNotFound, ErrKindChanged, ErrProfileNotFound} {
		if !errors.Is(err, want) {
			t.Errorf("Apply() error = %v, want %v", err, want)
		}
	}
}

func TestPatchJSON(t *testing.T) {
	data := []byte(`{
  "note": "kept",
  "profiles": [
    {"name": "keyboard", "actions": [
      {"type": "button", "label": "Jump", "primary": "space", "alt": "j"}
    ]}
  ]
}`)

	out, err := PatchJSON(data, "keyboard", "Jump", "primary", "k")
	if err != nil {
		t.Fatalf("PatchJSON() error = %v", err)
	}
	if !bytes.Contains(out, []byte(`"note": "kept"`)) {
		t.Errorf("unrelated content lost: %s", out)
	}
	if !bytes.Contains(out, []byte(`"primary": "k"`)) {
		t.Errorf("primary not patched: %s", out)
	}

	out, err = PatchJSON(out, "keyboard", "Jump", "alt", "")
	if err != nil {
		t.Fatalf("PatchJSON(clear) error = %v", err)
	}
	if bytes.Contains(out, []byte(`"alt"`)) {
		t.Errorf("alt not removed: %s", out)
	}

	errTests := []struct {
		profile, label, field, value string
		want                         error
	}{
		{"gamepad", "Jump", "primary", "k", ErrProfileNotFound},
		{"keyboard", "Crouch", "primary", "k", ErrActionNotFound},
		{"keyboard", "Jump", "primary", "hyper", ErrUnknownControl},
	}
	for _, tt := range errTests {
		if _, err := PatchJSON(data, tt.profile, tt.label, tt.field, tt.value); !errors.Is(err, tt.want) {
			t.Errorf("PatchJSON(%s, %s, %s, %s) error = %v, want %v", tt.profile, tt.label, tt.field, tt.value, err, tt.want)
		}
	}
	for _, field := range []string{"label", "negative_y", "alt_positive_x"} {
		if _, err := PatchJSON(data, "keyboard", "Jump", field, "k"); !errors.Is(err, action.ErrUnknownField) {
			t.Errorf("PatchJSON(%s on button) error = %v, want %v", field, err, action.ErrUnknownField)
		}
	}

	axisData := []byte(`{"profiles": [{"name": "kb", "actions": [
  {"type": "axis", "label": "Move", "kind": "buttons", "positive_x": "d"}
]}]}`)
	if _, err := PatchJSON(axisData, "kb", "Move", "primary", "k"); !errors.Is(err, action.ErrUnknownField) {
		t.Errorf("PatchJSON(primary on axis) error = %v, want %v", err, action.ErrUnknownField)
	}
	out, err = PatchJSON(axisData, "kb", "Move", "alt_negative_y", "down")
	if err != nil || !bytes.Contains(out, []byte(`"alt_negative_y":"down"`)) {
		t.Errorf("PatchJSON(alt_negative_y) = %s, %v", out, err)
	}
}

func TestActionSpecSource(t *testing.T) {
	as := ActionSpec{Type: "axis", Kind: "buttons"}
	if !as.SetSource("alt_positive_y", "up") || as.AltPositiveY != "up" {
		t.Errorf("SetSource(alt_positive_y) = %+v", as)
	}
	if as.SetSource("label", "x") || as.Label != "" {
		t.Error("SetSource(label) should be rejected")
	}
	if as.SetSource("primary", "k") || as.Primary != "" {
		t.Error("SetSource(primary) on an axis should be rejected")
	}

	button := ActionSpec{Type: "button", Label: "Jump"}
	if button.SetSource("positive_x", "k") || button.PositiveX != "" {
		t.Error("SetSource(positive_x) on a button should be rejected")
	}
	if !button.SetSource("alt", "j") || button.Alt != "j" {
		t.Errorf("SetSource(alt) = %+v", button)
	}
	var untyped ActionSpec
	if untyped.SetSource("primary", "k") {
		t.Error("SetSource on an action without a type should be rejected")
	}
	if got := as.Source("alt_positive_y"); got != "up" {
		t.Errorf("Source(alt_positive_y) = %q", got)
	}
	for _, field := range action.AxisFields {
		if !isSourceField(field) {
			t.Errorf("axis field %q missing from the file model", field)
		}
	}
}
