package seed

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schema is the subset of a document-store $jsonSchema validator we honour:
// bsonType, required, properties and minimum.
type Schema struct {
	BSONType    string             `yaml:"bsonType" json:"bsonType,omitempty"`
	Required    []string           `yaml:"required" json:"required,omitempty"`
	Properties  map[string]*Schema `yaml:"properties" json:"properties,omitempty"`
	Minimum     *float64           `yaml:"minimum" json:"minimum,omitempty"`
	Description string             `yaml:"description" json:"description,omitempty"`
}

// Validator wraps a $jsonSchema document the way collections declare it.
type Validator struct {
	JSONSchema *Schema `yaml:"$jsonSchema" json:"$jsonSchema"`
}

var bsonTypes = map[string]string{
	"object":  "object",
	"string":  "string",
	"number":  "number",
	"double":  "number",
	"decimal": "number",
	"int":     "integer",
	"long":    "integer",
	"bool":    "boolean",
	"array":   "array",
	"null":    "null",
}

// compile turns the validator into a resolved JSON Schema.
func (v *Validator) compile() (*jsonschema.Resolved, error) {
	if v == nil || v.JSONSchema == nil {
		return nil, nil
	}
	root, err := v.JSONSchema.toJSONSchema("$")
	if err != nil {
		return nil, err
	}
	resolved, err := root.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolve schema: %w", err)
	}
	return resolved, nil
}

func (s *Schema) toJSONSchema(path string) (*jsonschema.Schema, error) {
	out := &jsonschema.Schema{
		Required:    slices.Clone(s.Required),
		Minimum:     s.Minimum,
		Description: s.Description,
	}
	if s.BSONType != "" {
		t, ok := bsonTypes[s.BSONType]
		if !ok {
			return nil, fmt.Errorf("%s: unsupported bsonType %q", path, s.BSONType)
		}
		out.Type = t
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*jsonschema.Schema, len(s.Properties))
		for _, name := range slices.Sorted(maps.Keys(s.Properties)) {
			sub := s.Properties[name]
			if sub == nil {
				return nil, fmt.Errorf("%s.%s: empty schema", path, name)
			}
			prop, err := sub.toJSONSchema(path + "." + name)
			if err != nil {
				return nil, err
			}
			out.Properties[name] = prop
		}
	}
	return out, nil
}
