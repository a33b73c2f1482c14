package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk bindings model.
type File struct {
	// Layout names the gamepad face-button layout ("standard", "nintendo").
	Layout   string        `toml:"layout,omitempty" yaml:"layout,omitempty"`
	Profiles []ProfileSpec `toml:"profiles" yaml:"profiles"`
}

// ProfileSpec describes one profile.
type ProfileSpec struct {
	Name     string       `toml:"name" yaml:"name"`
	Platform string       `toml:"platform,omitempty" yaml:"platform,omitempty"`
	Actions  []ActionSpec `toml:"actions" yaml:"actions"`
}

// ActionSpec describes one action. Type is "button" or "axis"; buttons use
// Primary and Alt, button axes use the direction fields. Empty strings mean
// no source.
type ActionSpec struct {
	Type  string `toml:"type" yaml:"type"`
	Label string `toml:"label" yaml:"label"`
	Kind  string `toml:"kind,omitempty" yaml:"kind,omitempty"`

	Primary string `toml:"primary,omitempty" yaml:"primary,omitempty"`
	Alt     string `toml:"alt,omitempty" yaml:"alt,omitempty"`

	PositiveX string `toml:"positive_x,omitempty" yaml:"positive_x,omitempty"`
	NegativeX string `toml:"negative_x,omitempty" yaml:"negative_x,omitempty"`
	PositiveY string `toml:"positive_y,omitempty" yaml:"positive_y,omitempty"`
	NegativeY string `toml:"negative_y,omitempty" yaml:"negative_y,omitempty"`

	AltPositiveX string `toml:"alt_positive_x,omitempty" yaml:"alt_positive_x,omitempty"`
	AltNegativeX string `toml:"alt_negative_x,omitempty" yaml:"alt_negative_x,omitempty"`
	AltPositiveY string `toml:"alt_positive_y,omitempty" yaml:"alt_positive_y,omitempty"`
	AltNegativeY string `toml:"alt_negative_y,omitempty" yaml:"alt_negative_y,omitempty"`
}

// specField maps a serialized key to its ActionSpec field. The JSON codec
// walks this table since gjson and sjson work on paths, not struct tags.
type specField struct {
	key string
	ref func(*ActionSpec) *string
}

var specFields = []specField{
	{"type", func(a *ActionSpec) *string { return &a.Type }},
	{"label", func(a *ActionSpec) *string { return &a.Label }},
	{"kind", func(a *ActionSpec) *string { return &a.Kind }},
	{"primary", func(a *ActionSpec) *string { return &a.Primary }},
	{"alt", func(a *ActionSpec) *string { return &a.Alt }},
	{"positive_x", func(a *ActionSpec) *string { return &a.PositiveX }},
	{"negative_x", func(a *ActionSpec) *string { return &a.NegativeX }},
	{"positive_y", func(a *ActionSpec) *string { return &a.PositiveY }},
	{"negative_y", func(a *ActionSpec) *string { return &a.NegativeY }},
	{"alt_positive_x", func(a *ActionSpec) *string { return &a.AltPositiveX }},
	{"alt_negative_x", func(a *ActionSpec) *string { return &a.AltNegativeX }},
	{"alt_positive_y", func(a *ActionSpec) *string { return &a.AltPositiveY }},
	{"alt_negative_y", func(a *ActionSpec) *string { return &a.AltNegativeY }},
}

func lookupField(key string) (specField, bool) {
	for _, f := range specFields {
		if f.key == key {
			return f, true
		}
	}
	return specField{}, false
}

// Source returns the control string stored under a source field name
// ("primary", "alt_negative_y"), or "" for unknown fields.
func (a *ActionSpec) Source(field string) string {
	if !isSourceField(field) {
		return ""
	}
	f, _ := lookupField(field)
	return *f.ref(a)
}

// SetSource stores a control string under a source field name. It
// returns false when field is not a source field of the action's type, so
// Type must be set first.
func (a *ActionSpec) SetSource(field, value string) bool {
	if !a.HasField(field) {
		return false
	}
	f, _ := lookupField(field)
	*f.ref(a) = value
	return true
}

// Profile returns the first profile spec with the given name.
func (f *File) Profile(name string) *ProfileSpec {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i]
		}
	}
	return nil
}

// Action returns the first action spec with the given label.
func (p *ProfileSpec) Action(label string) *ActionSpec {
	for i := range p.Actions {
		if p.Actions[i].Label == label {
			return &p.Actions[i]
		}
	}
	return nil
}

// Format identifies a bindings file encoding.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// ParseFormat converts a format name or extension ("toml", ".yml").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// FormatOf picks the format from a path's extension.
func FormatOf(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%s has no extension: %w", path, ErrUnknownFormat)
	}
	return ParseFormat(ext)
}

// Load reads and decodes a bindings file.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bindings file %s: %w", path, err)
	}
	return decode(path, format, data)
}

// Decode parses bindings data in the given format.
func Decode(format Format, data []byte) (*File, error) {
	return decode("<"+format.String()+">", format, data)
}

func decode(source string, format Format, data []byte) (*File, error) {
	switch format {
	case FormatTOML:
		return decodeTOML(source, data)
	case FormatYAML:
		return decodeYAML(source, data)
	case FormatJSON:
		return decodeJSON(source, data)
	}
	return nil, fmt.Errorf("%s: %w", format, ErrUnknownFormat)
}

func decodeTOML(source string, data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		return nil, pe
	}
	return &f, nil
}

func decodeYAML(source string, data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return &f, nil
}

// Save encodes f in the format implied by path and writes it.
func Save(path string, f *File) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	data, err := Encode(format, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing bindings file %s: %w", path, err)
	}
	return nil
}

// Encode serializes f.
func Encode(format Format, f *File) ([]byte, error) {
	switch format {
	case FormatTOML:
		data, err := toml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encoding toml: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		return data, nil
	case FormatJSON:
		return encodeJSON(f)
	}
	return nil, fmt.Errorf("%s: %w", format, ErrUnknownFormat)
}
