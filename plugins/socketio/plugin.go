// Package socketio emits events to a Socket.IO server on behalf of a
// tenant, optionally waiting for a reply event before resolving.
package socketio

import (
	"context"
	"crypto/tls"
	_ "embed"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/hclmanifest"
	"github.com/vk/connectgrid/internal/registry"
)

//go:embed manifest.hcl
var manifestSrc []byte

// Module implements the registry.Module interface for this package.
type Module struct{}

func (m *Module) Register(r *registry.Registry) {
	p, err := hclmanifest.Parse(context.Background(), "plugins/socketio/manifest.hcl", manifestSrc)
	if err != nil {
		panic(fmt.Sprintf("socketio: invalid embedded manifest: %v", err))
	}
	r.RegisterPlugin(p)
	r.RegisterHandler("EmitSocketIOEvent", emit)
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	value any
	err   error
}

func emit(ctx context.Context, call registry.Call) (any, error) {
	event := call.InputString("event")
	awaitEvent := call.InputString("await_event")
	logger := ctxlog.FromContext(ctx).With("plugin", "socketio", "url", call.ConfigString("url"), "event", event)
	logger.Debug("Handler started")
	defer logger.Debug("Handler finished")

	var isConnected atomic.Bool

	timeout, err := time.ParseDuration(call.ConfigString("timeout"))
	if err != nil {
		logger.Warn("Failed to parse timeout, using default 10s", "timeout", call.ConfigString("timeout"), "error", err)
		timeout = 10 * time.Second
	}

	done := make(chan opResult, 1)
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	parsedURL, err := url.Parse(call.ConfigString("url"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)

	if call.ConfigBool("insecure_skip_verify") {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(call.ConfigString("namespace"), opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	// --- Event Listeners ---
	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected", "sid", io.Id())
		io.Emit(event, call.InputMap("data"))
		if awaitEvent == "" {
			done <- opResult{value: map[string]any{"emitted": event}}
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				done <- opResult{err: err}
				return
			}
		}
		done <- opResult{err: fmt.Errorf("socket.io connection failed")}
	})

	if awaitEvent != "" {
		io.On(types.EventName(awaitEvent), func(data ...any) {
			var reply any
			if len(data) > 0 {
				reply = data[0]
			}
			done <- opResult{value: map[string]any{"emitted": event, "reply": reply}}
		})
	}

	// --- Execution Block ---
	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event %q", awaitEvent)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.value, res.err
	}
}
