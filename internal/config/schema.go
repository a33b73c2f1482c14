package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

//go:embed bindings.schema.json
var schemaJSON string

const schemaURL = "https://github.com/dshills/rebind/bindings.schema.json"

var bindingsSchema = jsonschema.MustCompileString(schemaURL, schemaJSON)

// Schema returns the JSON schema of the bindings file model.
func Schema() string {
	return schemaJSON
}

// Validate checks f against the bindings schema. It catches structural
// problems (empty names, a kind on a button, a missing kind on an axis)
// before Build reports the first of them. Failures are a *ParseError
// wrapping ErrSchema with one line per violation.
func Validate(f *File) error {
	data, err := encodeJSON(f)
	if err != nil {
		return err
	}
	err = bindingsSchema.Validate(gjson.ParseBytes(data).Value())
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("validating bindings: %w", err)
	}
	return &ParseError{Path: "<schema>", Message: strings.Join(violations(ve, nil), "; "), Err: ErrSchema}
}

// violations flattens the leaves of a validation error tree.
func violations(ve *jsonschema.ValidationError, out []string) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return append(out, fmt.Sprintf("%s: %s", loc, ve.Message))
	}
	for _, c := range ve.Causes {
		out = violations(c, out)
	}
	return out
}
