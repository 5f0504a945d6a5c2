// Package webhook delivers signed event envelopes to a tenant-configured
// HTTP endpoint. Every delivery carries a unique ID and, when a secret is
// configured, an HMAC-SHA256 signature of the body.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/hclmanifest"
	"github.com/vk/connectgrid/internal/registry"
)

//go:embed manifest.hcl
var manifestSrc []byte

// httpClient is shared across deliveries to reuse TCP connections.
var httpClient = &http.Client{}

// Module implements the registry.Module interface for this package.
type Module struct{}

func (m *Module) Register(r *registry.Registry) {
	p, err := hclmanifest.Parse(context.Background(), "plugins/webhook/manifest.hcl", manifestSrc)
	if err != nil {
		panic(fmt.Sprintf("webhook: invalid embedded manifest: %v", err))
	}
	r.RegisterPlugin(p)
	r.RegisterHandler("DeliverWebhook", deliver)
}

// envelope is the JSON body of one delivery.
type envelope struct {
	ID        string         `json:"id"`
	Event     string         `json:"event"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

func deliver(ctx context.Context, call registry.Call) (any, error) {
	logger := ctxlog.FromContext(ctx).With("plugin", "webhook", "action", "deliver")

	timeout, err := time.ParseDuration(call.ConfigString("timeout"))
	if err != nil {
		logger.Warn("Failed to parse timeout, using default 10s", "timeout", call.ConfigString("timeout"), "error", err)
		timeout = 10 * time.Second
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	env := envelope{
		ID:        uuid.NewString(),
		Event:     call.InputString("event"),
		Timestamp: time.Now().UTC(),
		Payload:   call.InputMap("payload"),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode delivery envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(opCtx, http.MethodPost, call.ConfigString("url"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build delivery request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", env.ID)
	if secret := call.ConfigString("secret"); secret != "" {
		req.Header.Set("X-Signature", sign(secret, body))
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("webhook endpoint returned status %d", res.StatusCode)
	}

	logger.Debug("Delivery accepted.", "delivery_id", env.ID, "status", res.StatusCode)
	return map[string]any{"delivery_id": env.ID, "status": res.StatusCode}, nil
}

// sign computes the hex HMAC-SHA256 of body under secret.
func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
