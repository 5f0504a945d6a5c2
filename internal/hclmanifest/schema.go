package hclmanifest

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Manifest is the top-level structure of a plugin manifest file.
type Manifest struct {
	Plugin *PluginBlock `hcl:"plugin,block"`
	Body   hcl.Body     `hcl:",remain"`
}

// PluginBlock declares one integration plugin.
type PluginBlock struct {
	Slug     string         `hcl:"slug,label"`
	Name     string         `hcl:"name"`
	Metadata *MetadataBlock `hcl:"metadata,block"`
	Config   *ConfigBlock   `hcl:"config,block"`
	Actions  []*ActionBlock `hcl:"action,block"`
}

// MetadataBlock carries the marketplace-facing description of a plugin.
type MetadataBlock struct {
	Verified    bool              `hcl:"verified,optional"`
	Published   bool              `hcl:"published,optional"`
	Description string            `hcl:"description,optional"`
	Category    string            `hcl:"category,optional"`
	Developer   string            `hcl:"developer,optional"`
	Website     string            `hcl:"website,optional"`
	Logo        string            `hcl:"logo,optional"`
	Screenshots []string          `hcl:"screenshots,optional"`
	Links       map[string]string `hcl:"links,optional"`
}

// ConfigBlock groups the per-tenant configuration fields.
type ConfigBlock struct {
	Fields []*FieldBlock `hcl:"field,block"`
}

// FieldBlock defines a single configuration or action-input field.
//
// `type` is kept as a raw expression and parsed by typeExprToCtyType;
// `options` turns the field into an enum regardless of `type`; `default`,
// `optional`, and `nullable` become wrapper layers around the base schema.
type FieldBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type,optional"`
	Format      string         `hcl:"format,optional"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
	Nullable    bool           `hcl:"nullable,optional"`
	Options     []string       `hcl:"options,optional"`
}

// ActionBlock declares a named action and the Go handler implementing it.
type ActionBlock struct {
	Name        string        `hcl:"name,label"`
	Description string        `hcl:"description,optional"`
	Handler     string        `hcl:"handler"`
	Inputs      []*FieldBlock `hcl:"input,block"`
}
