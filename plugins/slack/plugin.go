// Package slack delivers messages to Slack through a tenant-configured
// incoming webhook.
package slack

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	resty "resty.dev/v3"

	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/hclmanifest"
	"github.com/vk/connectgrid/internal/registry"
)

//go:embed manifest.hcl
var manifestSrc []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register parses the embedded manifest and registers the descriptor along
// with its Go handlers.
func (m *Module) Register(r *registry.Registry) {
	p, err := hclmanifest.Parse(context.Background(), "plugins/slack/manifest.hcl", manifestSrc)
	if err != nil {
		panic(fmt.Sprintf("slack: invalid embedded manifest: %v", err))
	}
	r.RegisterPlugin(p)
	r.RegisterHandler("SendSlackMessage", sendMessage)
}

// sendMessage posts the input text to the configured incoming webhook.
func sendMessage(ctx context.Context, call registry.Call) (any, error) {
	logger := ctxlog.FromContext(ctx).With("plugin", "slack", "action", "send_message")

	payload := map[string]any{
		"text": call.InputString("text"),
	}
	if u := call.ConfigString("username"); u != "" {
		payload["username"] = u
	}
	if ch := call.ConfigString("channel"); ch != "" {
		payload["channel"] = ch
	}
	if blocks, ok := call.Input["blocks"].([]any); ok && len(blocks) > 0 {
		payload["blocks"] = blocks
	}

	client := resty.New()
	defer client.Close()

	res, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(call.ConfigString("webhook_url"))
	if err != nil {
		return nil, fmt.Errorf("slack webhook request failed: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("slack webhook returned %s: %s", res.Status(), strings.TrimSpace(res.String()))
	}

	logger.Debug("Message delivered.")
	return map[string]any{"delivered": true}, nil
}
