// Package hclmanifest loads plugin descriptors from HCL manifests.
//
// A manifest declares a plugin's identity, marketplace metadata,
// configuration fields, and actions. The package parses the HCL into
// tagged structs and translates them into the format-agnostic
// `plugin` model; it is the only place that knows the manifest grammar.
package hclmanifest
