// Package natsbridge publishes tenant events onto a NATS subject.
package natsbridge

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/hclmanifest"
	"github.com/vk/connectgrid/internal/registry"
)

//go:embed manifest.hcl
var manifestSrc []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

func (m *Module) Register(r *registry.Registry) {
	p, err := hclmanifest.Parse(context.Background(), "plugins/natsbridge/manifest.hcl", manifestSrc)
	if err != nil {
		panic(fmt.Sprintf("natsbridge: invalid embedded manifest: %v", err))
	}
	r.RegisterPlugin(p)
	r.RegisterHandler("PublishNATSMessage", publish)
}

func publish(ctx context.Context, call registry.Call) (any, error) {
	logger := ctxlog.FromContext(ctx).With("plugin", "natsbridge", "action", "publish")

	subject := call.InputString("subject")
	if subject == "" {
		subject = call.ConfigString("subject")
	}
	if subject == "" {
		return nil, fmt.Errorf("no subject configured or supplied")
	}

	data, err := json.Marshal(call.InputMap("payload"))
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	nc, err := nats.Connect(call.ConfigString("url"),
		nats.Name("connectgrid"),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	defer nc.Close()

	if err := nc.Publish(subject, data); err != nil {
		return nil, fmt.Errorf("failed to publish to %q: %w", subject, err)
	}
	if err := nc.FlushTimeout(5 * time.Second); err != nil {
		return nil, fmt.Errorf("failed to flush publish: %w", err)
	}

	logger.Debug("Event published.", "subject", subject, "bytes", len(data))
	return map[string]any{"subject": subject, "bytes": len(data)}, nil
}
