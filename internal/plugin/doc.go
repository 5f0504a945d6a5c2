// Package plugin defines the format-agnostic descriptor model for an
// integration plugin: its identity, marketplace metadata, configuration
// schema, and named actions.
//
// The model is the single source of truth for the `registry`, `fields`, and
// `httpapi` packages. It carries no behavior beyond schema coercion; how a
// descriptor is declared (HCL manifest, Go literal) is the concern of a
// separate loader such as `hclmanifest`.
package plugin
