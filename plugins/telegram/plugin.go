// Package telegram delivers messages to a Telegram chat via the Bot API.
package telegram

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

func (m *Module) Register(r *registry.Registry) {
	p, err := hclmanifest.Parse(context.Background(), "plugins/telegram/manifest.hcl", manifestSrc)
	if err != nil {
		panic(fmt.Sprintf("telegram: invalid embedded manifest: %v", err))
	}
	r.RegisterPlugin(p)
	r.RegisterHandler("SendTelegramMessage", sendMessage)
}

// apiResponse is the subset of the Bot API envelope we care about.
type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func sendMessage(ctx context.Context, call registry.Call) (any, error) {
	logger := ctxlog.FromContext(ctx).With("plugin", "telegram", "action", "send_message")

	base := strings.TrimRight(call.ConfigString("base_url"), "/")
	if base == "" {
		base = "https://api.telegram.org"
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", base, call.ConfigString("bot_token"))

	payload := map[string]any{
		"chat_id":    call.ConfigString("chat_id"),
		"text":       call.InputString("text"),
		"parse_mode": call.ConfigString("parse_mode"),
	}
	if call.InputBool("disable_notification") {
		payload["disable_notification"] = true
	}

	client := resty.New()
	defer client.Close()

	var reply apiResponse
	res, err := client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&reply).
		Post(url)
	if err != nil {
		return nil, fmt.Errorf("telegram request failed: %w", err)
	}
	if res.IsError() || !reply.OK {
		desc := reply.Description
		if desc == "" {
			desc = res.Status()
		}
		return nil, fmt.Errorf("telegram API rejected the message: %s", desc)
	}

	logger.Debug("Message delivered.", "chat_id", call.ConfigString("chat_id"))
	return map[string]any{"delivered": true}, nil
}
