package hclmanifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/plugin"
)

// Parse reads a plugin manifest from src and returns the translated
// descriptor. filename is used for diagnostics only; built-in plugins pass
// the path of their embedded manifest.
func Parse(ctx context.Context, filename string, src []byte) (*plugin.Plugin, error) {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var manifest Manifest
	if diags := gohcl.DecodeBody(file.Body, nil, &manifest); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	if manifest.Plugin == nil {
		return nil, fmt.Errorf("manifest %s declares no plugin block", filename)
	}

	p, err := translatePlugin(manifest.Plugin)
	if err != nil {
		return nil, fmt.Errorf("invalid plugin manifest %s: %w", filename, err)
	}

	logger.Debug("Loaded plugin manifest.", "file", filename, "slug", p.Slug, "actions", len(p.Actions))
	return p, nil
}
