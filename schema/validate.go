package schema

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pithecene-io/catalogi/types"
)

// FieldError is a single validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every way a configuration fails its schema.
type ValidationError struct {
	Schema string       `json:"schema"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("configuration does not match %s: %s", e.Schema, strings.Join(msgs, "; "))
}

// Validate checks configuration against the schema.
// Returns a *ValidationError when the configuration is well-formed but does
// not conform; any other error means the schema itself could not be loaded.
func (s Schema) Validate(configuration types.Data) error {
	if configuration == nil {
		configuration = types.Data{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(s.validationDocument()),
		gojsonschema.NewGoLoader(configuration),
	)
	if err != nil {
		return fmt.Errorf("validate against %s: %w", s.ID, err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Schema: s.ID}
	for _, e := range result.Errors() {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return verr
}

// validationDocument is the draft-07 form of the schema.
// Property-level "required" flags are gateway metadata and would be
// rejected by a JSON-Schema validator, so only the top-level list is kept.
func (s Schema) validationDocument() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		prop := map[string]any{}
		if p.Type != "" {
			prop["type"] = p.Type
		}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[name] = prop
	}

	required := make([]any, 0, len(s.Required))
	for _, name := range s.Required {
		required = append(required, name)
	}

	doc := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		doc["required"] = required
	}
	return doc
}
