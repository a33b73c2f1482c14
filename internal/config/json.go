package config

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/rebind/internal/input/action"
)

func decodeJSON(source string, data []byte) (*File, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "top level must be an object"}
	}

	var (
		f   File
		err error
	)
	fail := func(path, msg string) bool {
		err = &ParseError{Path: source, Message: fmt.Sprintf("%s: %s", path, msg)}
		return false
	}

	root.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "layout":
			if !isString(value) {
				return fail("layout", "must be a string")
			}
			f.Layout = value.String()
		case "profiles":
			if !value.IsArray() {
				return fail("profiles", "must be an array")
			}
			for i, p := range value.Array() {
				ps, ok := decodeJSONProfile(fmt.Sprintf("profiles.%d", i), p, fail)
				if !ok {
					return false
				}
				f.Profiles = append(f.Profiles, ps)
			}
		default:
			return fail(key.String(), "unknown key")
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func decodeJSONProfile(path string, p gjson.Result, fail func(path, msg string) bool) (ProfileSpec, bool) {
	var ps ProfileSpec
	if !p.IsObject() {
		return ps, fail(path, "must be an object")
	}
	ok := true
	p.ForEach(func(key, value gjson.Result) bool {
		at := path + "." + key.String()
		switch key.String() {
		case "name", "platform":
			if !isString(value) {
				ok = fail(at, "must be a string")
				return false
			}
			if key.String() == "name" {
				ps.Name = value.String()
			} else {
				ps.Platform = value.String()
			}
		case "actions":
			if !value.IsArray() {
				ok = fail(at, "must be an array")
				return false
			}
			for i, a := range value.Array() {
				as, good := decodeJSONAction(fmt.Sprintf("%s.%d", at, i), a, fail)
				if !good {
					ok = false
					return false
				}
				ps.Actions = append(ps.Actions, as)
			}
		default:
			ok = fail(at, "unknown key")
			return false
		}
		return true
	})
	return ps, ok
}

func decodeJSONAction(path string, a gjson.Result, fail func(path, msg string) bool) (ActionSpec, bool) {
	var as ActionSpec
	if !a.IsObject() {
		return as, fail(path, "must be an object")
	}
	ok := true
	a.ForEach(func(key, value gjson.Result) bool {
		at := path + "." + key.String()
		f, known := lookupField(key.String())
		if !known {
			ok = fail(at, "unknown key")
			return false
		}
		if !isString(value) {
			ok = fail(at, "must be a string")
			return false
		}
		*f.ref(&as) = value.String()
		return true
	})
	return as, ok
}

func isString(v gjson.Result) bool {
	return v.Type == gjson.String || v.Type == gjson.Null
}

func encodeJSON(f *File) ([]byte, error) {
	doc := []byte(`{}`)
	var err error
	if f.Layout != "" {
		if doc, err = sjson.SetBytes(doc, "layout", f.Layout); err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
	}
	if doc, err = sjson.SetRawBytes(doc, "profiles", []byte(`[]`)); err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}

	for _, p := range f.Profiles {
		obj, err := encodeJSONProfile(p)
		if err != nil {
			return nil, fmt.Errorf("encoding json profile %q: %w", p.Name, err)
		}
		if doc, err = sjson.SetRawBytes(doc, "profiles.-1", obj); err != nil {
			return nil, fmt.Errorf("encoding json profile %q: %w", p.Name, err)
		}
	}
	return pretty.Pretty(doc), nil
}

func encodeJSONProfile(p ProfileSpec) ([]byte, error) {
	obj, err := sjson.SetBytes([]byte(`{}`), "name", p.Name)
	if err != nil {
		return nil, err
	}
	if p.Platform != "" {
		if obj, err = sjson.SetBytes(obj, "platform", p.Platform); err != nil {
			return nil, err
		}
	}
	if obj, err = sjson.SetRawBytes(obj, "actions", []byte(`[]`)); err != nil {
		return nil, err
	}
	for i := range p.Actions {
		a := []byte(`{}`)
		for _, f := range specFields {
			v := *f.ref(&p.Actions[i])
			if v == "" && f.key != "type" && f.key != "label" {
				continue
			}
			if a, err = sjson.SetBytes(a, f.key, v); err != nil {
				return nil, err
			}
		}
		if obj, err = sjson.SetRawBytes(obj, "actions.-1", a); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// PatchJSON rewrites one source binding inside JSON bindings data. The rest
// of the document, including unknown keys and formatting, is left alone. An
// empty value removes the binding.
func PatchJSON(data []byte, profileName, label, field, value string) ([]byte, error) {
	if !isSourceField(field) {
		return nil, &BindingError{Profile: profileName, Label: label, Field: field, Err: action.ErrUnknownField}
	}
	if value != "" {
		if _, err := parseSource(value); err != nil {
			return nil, &BindingError{Profile: profileName, Label: label, Field: field, Err: err}
		}
	}
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: "<json>", Message: "invalid JSON"}
	}

	pi := indexWhere(gjson.GetBytes(data, "profiles"), "name", profileName)
	if pi < 0 {
		return nil, fmt.Errorf("%q: %w", profileName, ErrProfileNotFound)
	}
	actions := gjson.GetBytes(data, fmt.Sprintf("profiles.%d.actions", pi))
	ai := indexWhere(actions, "label", label)
	if ai < 0 {
		return nil, &BindingError{Profile: profileName, Label: label, Err: ErrActionNotFound}
	}
	target := actions.Get(fmt.Sprintf("%d", ai))
	as := ActionSpec{Type: target.Get("type").String(), Label: label}
	if !as.HasField(field) {
		return nil, &BindingError{Profile: profileName, Label: label, Field: field,
			Err: fmt.Errorf("%s has no field %q: %w", as.Type, field, action.ErrUnknownField)}
	}

	path := fmt.Sprintf("profiles.%d.actions.%d.%s", pi, ai, field)
	var (
		out []byte
		err error
	)
	if value == "" {
		out, err = sjson.DeleteBytes(data, path)
	} else {
		out, err = sjson.SetBytes(data, path, value)
	}
	if err != nil {
		return nil, fmt.Errorf("patching %s: %w", path, err)
	}
	return out, nil
}

// indexWhere returns the index of the first array element whose key equals
// want, or -1.
func indexWhere(arr gjson.Result, key, want string) int {
	if !arr.IsArray() {
		return -1
	}
	for i, el := range arr.Array() {
		if el.Get(key).String() == want {
			return i
		}
	}
	return -1
}

func isSourceField(field string) bool {
	switch field {
	case "type", "label", "kind":
		return false
	}
	_, ok := lookupField(field)
	return ok
}
