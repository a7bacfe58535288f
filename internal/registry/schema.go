package registry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// propertySchema is the JSON Schema fragment for one parameter.
type propertySchema struct {
	Type        any      `json:"type"`
	Description string   `json:"description,omitempty"`
	Default     any      `json:"default,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

type objectSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]propertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

func buildSchema(d *ToolDefinition) ([]byte, error) {
	obj := objectSchema{
		Type:       "object",
		Properties: make(map[string]propertySchema, len(d.Params)),
	}
	for _, p := range d.Params {
		prop := propertySchema{
			Description: p.Description,
			Default:     p.Default,
			Minimum:     p.Minimum,
			Maximum:     p.Maximum,
			Enum:        p.Enum,
		}
		if p.Type == TypeStringOrNumber {
			prop.Type = []string{"string", "number"}
		} else {
			prop.Type = string(p.Type)
		}
		if p.Required {
			obj.Required = append(obj.Required, p.Name)
			// An empty string would be dropped from the query.
			if p.Type == TypeString || p.Type == TypeStringOrNumber {
				one := 1
				prop.MinLength = &one
			}
		}
		obj.Properties[p.Name] = prop
	}
	return json.Marshal(obj)
}

// compileSchema compiles the tool's input schema with Draft 7 semantics,
// the draft MCP clients expect.
func compileSchema(name string, schemaJSON []byte) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	url := name + ".json"
	if err := compiler.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// Validate checks args against the tool's schema and returns them in their
// canonical JSON form (numbers as float64, nil args as an empty object).
// A null value is treated as an absent parameter.
// Unknown keys are accepted but are never forwarded upstream.
func (d *ToolDefinition) Validate(args map[string]any) (map[string]any, error) {
	normalized, err := normalize(args)
	if err != nil {
		return nil, &ValidationError{Field: "/", Message: err.Error()}
	}
	if d.schema == nil {
		return nil, fmt.Errorf("tool %q has no compiled schema", d.Name)
	}

	if err := d.schema.Validate(normalized); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			leaf := leafCause(ve)
			return nil, &ValidationError{
				Field:   leaf.InstanceLocation,
				Message: leaf.Message,
			}
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return normalized, nil
}

func normalize(args map[string]any) (map[string]any, error) {
	if args == nil {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("arguments are not JSON encodable: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("arguments are not a JSON object: %w", err)
	}
	for k, v := range out {
		if v == nil {
			delete(out, k)
		}
	}
	return out, nil
}

// leafCause walks to the most specific failure; the root error only says
// that the document does not match the schema.
func leafCause(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// ValidationError reports a parameter that does not match the tool schema.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	field := e.Field
	if field == "" {
		field = "/"
	}
	return fmt.Sprintf("validation failed for field '%s': %s", field, e.Message)
}
