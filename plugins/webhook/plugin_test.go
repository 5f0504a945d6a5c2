package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/connectgrid/internal/registry"
)

func TestModuleRegister(t *testing.T) {
	r := registry.New()
	(&Module{}).Register(r)
	require.NoError(t, r.Validate(context.Background()))

	v, err := r.Get("webhook")
	require.NoError(t, err)
	require.Len(t, v.Actions(), 1)
	assert.Equal(t, "deliver", v.Actions()[0].Name)
}

type captured struct {
	body       []byte
	deliveryID string
	signature  string
}

func serveOnce(t *testing.T, status int, out *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		out.body = body
		out.deliveryID = r.Header.Get("X-Delivery-Id")
		out.signature = r.Header.Get("X-Signature")
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDeliver(t *testing.T) {
	var got captured
	srv := serveOnce(t, http.StatusNoContent, &got)

	res, err := deliver(context.Background(), registry.Call{
		Config: map[string]any{"url": srv.URL, "timeout": "5s"},
		Input: map[string]any{
			"event":   "invoice.paid",
			"payload": map[string]any{"invoice_id": "inv_42"},
		},
	})
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(got.body, &env))
	assert.Equal(t, "invoice.paid", env.Event)
	assert.Equal(t, map[string]any{"invoice_id": "inv_42"}, env.Payload)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, env.ID, got.deliveryID)
	assert.Empty(t, got.signature, "no signature without a secret")

	result := res.(map[string]any)
	assert.Equal(t, env.ID, result["delivery_id"])
	assert.Equal(t, http.StatusNoContent, result["status"])
}

func TestDeliver_SignsWithSecret(t *testing.T) {
	var got captured
	srv := serveOnce(t, http.StatusOK, &got)

	_, err := deliver(context.Background(), registry.Call{
		Config: map[string]any{"url": srv.URL, "secret": "s3cret", "timeout": "5s"},
		Input:  map[string]any{"event": "ping"},
	})
	require.NoError(t, err)

	mac := hmac.New(sha256.New, []byte("s3cret"))
	mac.Write(got.body)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), got.signature)
}

func TestDeliver_NonSuccessStatus(t *testing.T) {
	var got captured
	srv := serveOnce(t, http.StatusInternalServerError, &got)

	_, err := deliver(context.Background(), registry.Call{
		Config: map[string]any{"url": srv.URL, "timeout": "5s"},
		Input:  map[string]any{"event": "ping"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned status 500")
}

func TestDeliver_UnreachableEndpoint(t *testing.T) {
	_, err := deliver(context.Background(), registry.Call{
		Config: map[string]any{"url": "http://127.0.0.1:1/hook", "timeout": "1s"},
		Input:  map[string]any{"event": "ping"},
	})
	assert.Error(t, err)
}

func TestDeliver_BadTimeoutFallsBack(t *testing.T) {
	var got captured
	srv := serveOnce(t, http.StatusOK, &got)

	_, err := deliver(context.Background(), registry.Call{
		Config: map[string]any{"url": srv.URL, "timeout": "soon"},
		Input:  map[string]any{"event": "ping"},
	})
	assert.NoError(t, err)
}
