// Package fields derives UI form-field descriptors from a plugin's
// configuration schema. The projection is computed on demand and carries no
// lifecycle of its own; it exists so the dashboard can auto-render a
// settings form for any registered integration.
package fields

import "github.com/vk/connectgrid/internal/plugin"

// Type is the UI-facing classification of one schema field.
type Type string

const (
	TypeString  Type = "string"
	TypeEmail   Type = "email"
	TypeURL     Type = "url"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
	TypeEnum    Type = "enum"
	TypeDate    Type = "date"

	// TypeUnsupported marks a field whose base schema has no form control.
	// Callers render such fields as raw JSON or omit them; it is not an error.
	TypeUnsupported Type = ""
)

// Field is the projection of one schema property into form metadata.
type Field struct {
	Name        string   `json:"name"`
	Type        Type     `json:"type,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Default     any      `json:"default,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// Derive computes one Field per top-level property of the schema, in
// declared order. It is a pure function and never fails on a well-formed
// schema.
func Derive(obj *plugin.Object) []Field {
	if obj == nil {
		return nil
	}
	out := make([]Field, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		out = append(out, derive(f.Name, f.Schema))
	}
	return out
}

func derive(name string, n *plugin.Node) Field {
	fd := Field{Name: name, Required: true}

	// Walk the wrapper chain outside-in. Optional/Nullable clear the
	// required flag; a Default wrapper supplies the static default but a
	// defaulted-yet-unwrapped field stays required (the form still shows
	// it even though the schema always produces a value). The outermost
	// non-empty description wins as the placeholder.
	for {
		if fd.Placeholder == "" && n.Description != "" {
			fd.Placeholder = n.Description
		}
		if !n.IsWrapper() {
			break
		}
		switch n.Kind {
		case plugin.KindOptional, plugin.KindNullable:
			fd.Required = false
		case plugin.KindDefault:
			if fd.Default == nil {
				fd.Default = plugin.NativeValue(n.Default)
			}
		}
		n = n.Inner
	}

	fd.Type = classify(n)
	if n.Kind == plugin.KindEnum {
		fd.Options = n.Options
	}
	return fd
}

// classify maps a base schema node to its form-control type.
func classify(n *plugin.Node) Type {
	switch n.Kind {
	case plugin.KindString:
		switch n.Format {
		case "email":
			return TypeEmail
		case "url":
			return TypeURL
		}
		return TypeString
	case plugin.KindNumber:
		return TypeNumber
	case plugin.KindBool:
		return TypeBoolean
	case plugin.KindDate:
		return TypeDate
	case plugin.KindEnum:
		return TypeEnum
	case plugin.KindArray:
		return TypeArray
	case plugin.KindObject:
		return TypeObject
	}
	return TypeUnsupported
}
