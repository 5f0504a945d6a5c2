package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/connectgrid/internal/appconfig"
	"github.com/vk/connectgrid/internal/plugin"
	"github.com/vk/connectgrid/internal/registry"
)

func TestNewApp_RegistersCorePlugins(t *testing.T) {
	testApp, logBuffer := SetupAppTest(t)

	summaries := testApp.Registry().List()
	require.Len(t, summaries, 5)

	slugs := make([]string, 0, len(summaries))
	for _, s := range summaries {
		slugs = append(slugs, s.Slug)
	}
	assert.Equal(t, []string{"slack", "telegram", "webhook", "socketio", "natsbridge"}, slugs)

	// Every built-in ships at least one derivable config field.
	for _, s := range summaries {
		assert.NotEmpty(t, s.Fields, "plugin %s has no form fields", s.Slug)
	}

	assert.Contains(t, logBuffer.String(), "Registry validation passed.")
}

func TestNewApp_ServesAPI(t *testing.T) {
	testApp, _ := SetupAppTest(t)
	h := testApp.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/plugins", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Plugins []struct {
			Slug string `json:"slug"`
		} `json:"plugins"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Plugins, 5)
}

func TestNewApp_InvalidConfigPanics(t *testing.T) {
	cfg := appconfig.Default()
	cfg.Log.Format = "xml"
	assert.Panics(t, func() {
		NewApp(&SafeBuffer{}, cfg)
	})
}

type brokenModule struct{}

// Register declares an action whose handler is never registered, so
// startup validation must refuse to come up.
func (brokenModule) Register(r *registry.Registry) {
	r.RegisterPlugin(&plugin.Plugin{
		Slug:    "broken",
		Name:    "Broken",
		Actions: []*plugin.Action{{Name: "do", Handler: "Nowhere"}},
	})
}

func TestNewApp_ValidationFailurePanics(t *testing.T) {
	cfg := appconfig.Default()
	cfg.Log.Format = "text"
	assert.Panics(t, func() {
		NewApp(&SafeBuffer{}, cfg, brokenModule{})
	})
}
