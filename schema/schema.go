// Package schema describes the configuration accepted by an operation.
//
// A Schema is the JSON-Schema-shaped document the gateway uses to render and
// populate an action's configuration. Operations only declare it; checking a
// configuration against it is the dispatcher's job (see Validate).
package schema

import (
	"fmt"
	"sort"
)

// MetaSchema is the $schema every action handler schema declares.
const MetaSchema = "https://docs.commongateway.nl/schemas/ActionHandler.schema.json"

// Property describes one named configuration parameter.
type Property struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Example     any    `json:"example,omitempty" yaml:"example,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
	// Reference points at the schema, source or mapping resource the value
	// must resolve to. Resolution is done by the gateway.
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// Schema is the configuration schema of an operation.
type Schema struct {
	ID          string              `json:"$id" yaml:"$id"`
	Schema      string              `json:"$schema" yaml:"$schema"`
	Title       string              `json:"title" yaml:"title"`
	Description string              `json:"description" yaml:"description"`
	Required    []string            `json:"required" yaml:"required"`
	Properties  map[string]Property `json:"properties" yaml:"properties"`
}

// Check reports structural defects: a missing $id or title, or a required
// name with no matching property.
func (s Schema) Check() error {
	if s.ID == "" {
		return fmt.Errorf("schema %q: missing $id", s.Title)
	}
	if s.Title == "" {
		return fmt.Errorf("schema %s: missing title", s.ID)
	}
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			return fmt.Errorf("schema %s: required property %q is not declared", s.ID, name)
		}
	}
	return nil
}

// Clone returns a copy that shares no slices or maps with s.
func (s Schema) Clone() Schema {
	out := s
	out.Required = append([]string(nil), s.Required...)
	if s.Properties != nil {
		out.Properties = make(map[string]Property, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = v
		}
	}
	return out
}

// PropertyNames returns the declared property names, sorted.
func (s Schema) PropertyNames() []string {
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Document returns the schema as a generic JSON document, the shape the
// gateway consumes.
func (s Schema) Document() map[string]any {
	props := make(map[string]any, len(s.Properties))
	for name, p := range s.Properties {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
			"required":    p.Required,
		}
		if p.Example != nil {
			prop["example"] = p.Example
		}
		if p.Reference != "" {
			prop["reference"] = p.Reference
		}
		props[name] = prop
	}

	required := s.Required
	if required == nil {
		required = []string{}
	}

	return map[string]any{
		"$id":         s.ID,
		"$schema":     s.Schema,
		"title":       s.Title,
		"description": s.Description,
		"required":    append([]string(nil), required...),
		"properties":  props,
	}
}
