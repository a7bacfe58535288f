package registry

import (
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ParamType is the JSON type accepted for a tool parameter.
type ParamType string

const (
	TypeString         ParamType = "string"
	TypeNumber         ParamType = "number"
	TypeBoolean        ParamType = "boolean"
	TypeStringOrNumber ParamType = "string|number"
)

// Param describes one accepted tool parameter. Parameters are forwarded to
// the upstream query string under Name.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any
	Minimum     *float64
	Maximum     *float64
	Enum        []string
}

// ParamOption configures a Param.
type ParamOption func(*Param)

// Required marks the parameter as mandatory.
func Required() ParamOption {
	return func(p *Param) { p.Required = true }
}

// DefaultValue sets the value sent upstream when the caller omits the
// parameter.
func DefaultValue(v any) ParamOption {
	return func(p *Param) { p.Default = v }
}

// Min sets an inclusive lower bound for a numeric parameter.
func Min(v float64) ParamOption {
	return func(p *Param) { p.Minimum = &v }
}

// Max sets an inclusive upper bound for a numeric parameter.
func Max(v float64) ParamOption {
	return func(p *Param) { p.Maximum = &v }
}

// Enum restricts a string parameter to a closed set of values.
func Enum(values ...string) ParamOption {
	return func(p *Param) { p.Enum = values }
}

// Describe attaches a human-readable description.
func Describe(s string) ParamOption {
	return func(p *Param) { p.Description = s }
}

func newParam(name string, typ ParamType, opts []ParamOption) Param {
	p := Param{Name: name, Type: typ}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// String declares a string parameter.
func String(name string, opts ...ParamOption) Param {
	return newParam(name, TypeString, opts)
}

// Number declares a numeric parameter.
func Number(name string, opts ...ParamOption) Param {
	return newParam(name, TypeNumber, opts)
}

// Boolean declares a boolean parameter.
func Boolean(name string, opts ...ParamOption) Param {
	return newParam(name, TypeBoolean, opts)
}

// StringOrNumber declares a parameter that accepts either a string or a
// number, such as a timestamp given as ISO 8601 or Unix seconds.
func StringOrNumber(name string, opts ...ParamOption) Param {
	return newParam(name, TypeStringOrNumber, opts)
}

// ToolDefinition maps a tool name onto one upstream endpoint. Definitions are
// immutable once a Registry has been built from them.
type ToolDefinition struct {
	Name        string
	Description string
	// Path is the upstream path template. Segments written as {name} are
	// substituted from the parameter of the same name.
	Path   string
	Tier   Tier
	Params []Param

	schemaJSON []byte
	schema     *jsonschema.Schema
}

// InputSchema returns the JSON Schema advertised for the tool's arguments.
func (d *ToolDefinition) InputSchema() []byte {
	out := make([]byte, len(d.schemaJSON))
	copy(out, d.schemaJSON)
	return out
}
