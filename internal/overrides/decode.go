package overrides

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed layout_schema.json
var layoutSchemaJSON []byte

var (
	compileOnce  sync.Once
	layoutSchema *jsonschema.Schema
	compileErr   error
)

func compiledLayoutSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("layout_overrides.json", bytes.NewReader(layoutSchemaJSON)); err != nil {
			compileErr = err
			return
		}
		layoutSchema, compileErr = compiler.Compile("layout_overrides.json")
	})
	return layoutSchema, compileErr
}

// DecodeLayoutOverrides validates an admin payload against the layout
// override schema and decodes it. Schema and tagging failures come back as a
// go-errors validation error listing each offending location.
func DecodeLayoutOverrides(raw []byte) (LayoutOverrides, error) {
	schema, err := compiledLayoutSchema()
	if err != nil {
		return LayoutOverrides{}, fmt.Errorf("overrides: compile schema: %w", err)
	}

	var doc any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return LayoutOverrides{}, goerrors.NewValidation("layout overrides must be valid JSON",
			goerrors.FieldError{Field: "body", Message: err.Error()})
	}
	if err := schema.Validate(doc); err != nil {
		return LayoutOverrides{}, schemaError(err)
	}

	var out LayoutOverrides
	if err := json.Unmarshal(raw, &out); err != nil {
		return LayoutOverrides{}, goerrors.NewValidation("layout overrides could not be decoded",
			goerrors.FieldError{Field: "body", Message: err.Error()})
	}
	if err := out.Validate(); err != nil {
		return LayoutOverrides{}, err
	}
	return out, nil
}

// Validate checks the tagged navigation variants.
func (o LayoutOverrides) Validate() error {
	var fields []goerrors.FieldError
	for i, nav := range o.Nav {
		if err := nav.Validate(); err != nil {
			fields = append(fields, goerrors.FieldError{Field: fmt.Sprintf("nav.%d.kind", i), Message: err.Error()})
		}
	}
	if len(fields) > 0 {
		return goerrors.NewValidation("layout overrides are invalid", fields...)
	}
	return nil
}

func schemaError(err error) error {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return goerrors.NewValidation("layout overrides are invalid",
			goerrors.FieldError{Field: "body", Message: err.Error()})
	}

	var fields []goerrors.FieldError
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			fields = append(fields, goerrors.FieldError{
				Field:   fieldPath(node.InstanceLocation),
				Message: strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(validationErr)
	return goerrors.NewValidation("layout overrides are invalid", fields...)
}

// fieldPath turns a JSON pointer such as /nav/0/href into nav.0.href.
func fieldPath(pointer string) string {
	trimmed := strings.Trim(pointer, "/")
	if trimmed == "" {
		return "body"
	}
	return strings.ReplaceAll(trimmed, "/", ".")
}
