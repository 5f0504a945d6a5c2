package hclmanifest

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/connectgrid/internal/plugin"
)

// translatePlugin converts the HCL-specific manifest schema into the
// agnostic plugin model.
func translatePlugin(b *PluginBlock) (*plugin.Plugin, error) {
	if b.Slug == "" {
		return nil, fmt.Errorf("plugin slug must not be empty")
	}
	if b.Name == "" {
		return nil, fmt.Errorf("plugin %q: name must not be empty", b.Slug)
	}

	p := &plugin.Plugin{
		Slug: b.Slug,
		Name: b.Name,
	}

	if b.Metadata != nil {
		p.Metadata = plugin.Metadata{
			Verified:    b.Metadata.Verified,
			Published:   b.Metadata.Published,
			Description: b.Metadata.Description,
			Category:    b.Metadata.Category,
			Developer:   b.Metadata.Developer,
			Website:     b.Metadata.Website,
			Logo:        b.Metadata.Logo,
			Screenshots: b.Metadata.Screenshots,
			Links:       b.Metadata.Links,
		}
	}

	var err error
	if p.ConfigSchema, err = translateObject(b.Config.fieldsOrNil()); err != nil {
		return nil, fmt.Errorf("plugin %q: config: %w", b.Slug, err)
	}

	for _, ab := range b.Actions {
		input, err := translateObject(ab.Inputs)
		if err != nil {
			return nil, fmt.Errorf("plugin %q: action %q: %w", b.Slug, ab.Name, err)
		}
		p.Actions = append(p.Actions, &plugin.Action{
			Name:        ab.Name,
			Description: ab.Description,
			Handler:     ab.Handler,
			InputSchema: input,
		})
	}

	return p, nil
}

func (c *ConfigBlock) fieldsOrNil() []*FieldBlock {
	if c == nil {
		return nil
	}
	return c.Fields
}

// translateObject converts an ordered list of field blocks into a schema
// object, preserving declaration order.
func translateObject(blocks []*FieldBlock) (*plugin.Object, error) {
	fields := make([]plugin.Field, 0, len(blocks))
	for _, fb := range blocks {
		n, err := translateField(fb)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fb.Name, err)
		}
		fields = append(fields, plugin.F(fb.Name, n))
	}
	return plugin.NewObject(fields...), nil
}

// translateField builds the schema node chain for one field: the base node
// from the type expression (or options), then Default, Nullable, and
// Optional wrappers, outermost last.
func translateField(fb *FieldBlock) (*plugin.Node, error) {
	n, err := baseNode(fb)
	if err != nil {
		return nil, err
	}
	if fb.Description != "" {
		n.Describe(fb.Description)
	}

	if fb.Default != nil {
		n = n.WithDefault(*fb.Default)
	}
	if fb.Nullable {
		n = n.Nullable()
	}
	if fb.Optional {
		n = n.Optional()
	}
	return n, nil
}

func baseNode(fb *FieldBlock) (*plugin.Node, error) {
	if len(fb.Options) > 0 {
		return plugin.Enum(fb.Options...), nil
	}

	ctyType, err := typeExprToCtyType(fb.Type)
	if err != nil {
		return nil, err
	}

	switch {
	case ctyType == cty.String:
		switch fb.Format {
		case "":
			return plugin.String(), nil
		case "email":
			return plugin.Email(), nil
		case "url":
			return plugin.URL(), nil
		case "date":
			return plugin.Date(), nil
		default:
			return nil, fmt.Errorf("unknown string format %q", fb.Format)
		}
	case ctyType == cty.Number:
		return plugin.Number(), nil
	case ctyType == cty.Bool:
		return plugin.Bool(), nil
	case ctyType.IsListType() || ctyType.IsSetType():
		elem, err := elemNode(ctyType.ElementType())
		if err != nil {
			return nil, err
		}
		return plugin.Array(elem), nil
	case ctyType.IsMapType() || ctyType.IsObjectType():
		return plugin.ObjectOf(nil), nil
	}

	// `any` and anything else we cannot classify: accepted, but opaque to
	// form generation.
	return plugin.Any(), nil
}

func elemNode(t cty.Type) (*plugin.Node, error) {
	switch {
	case t == cty.String:
		return plugin.String(), nil
	case t == cty.Number:
		return plugin.Number(), nil
	case t == cty.Bool:
		return plugin.Bool(), nil
	case t.IsMapType() || t.IsObjectType():
		return plugin.ObjectOf(nil), nil
	case t == cty.DynamicPseudoType:
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported element type %s", t.FriendlyName())
}
