package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/fields"
	"github.com/vk/connectgrid/internal/registry"
	"github.com/vk/connectgrid/internal/tenantstore"
)

func (s *Server) handleListPlugins(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"plugins": s.registry.List()})
}

// actionSummary is the API projection of one declared action.
type actionSummary struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Fields      []fields.Field `json:"fields"`
}

func (s *Server) handleGetPlugin(w http.ResponseWriter, r *http.Request) {
	view, ok := s.getView(w, r)
	if !ok {
		return
	}

	actions := make([]actionSummary, 0, len(view.Actions()))
	for _, a := range view.Actions() {
		actions = append(actions, actionSummary{
			Name:        a.Name,
			Description: a.Description,
			Fields:      fields.Derive(a.InputSchema),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"slug":     view.Slug(),
		"name":     view.Name(),
		"metadata": view.Metadata(),
		"fields":   fields.Derive(view.Schema()),
		"actions":  actions,
	})
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if _, ok := s.getView(w, r); !ok {
		return
	}

	cfg, err := s.store.Get(r.Context(), vars["org"], vars["slug"])
	if errors.Is(err, tenantstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "integration is not configured")
		return
	}
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("Failed to read tenant config", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": cfg})
}

// handlePutConfig validates the submitted configuration against the
// plugin's schema and stores the normalized copy (defaults materialized,
// unknown keys dropped).
func (s *Server) handlePutConfig(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, ok := s.getView(w, r)
	if !ok {
		return
	}

	raw, ok := decodeObject(w, r)
	if !ok {
		return
	}

	coerced, err := view.Schema().Coerce(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.Put(r.Context(), vars["org"], vars["slug"], coerced); err != nil {
		ctxlog.FromContext(r.Context()).Error("Failed to store tenant config", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"config": coerced})
}

// handleInvoke runs one tenant-bound action: read the tenant's stored
// config, coerce it against the plugin schema (validation lives here, not
// in the registry), bind, and invoke with the request-body input. Handler
// results and errors pass through unmodified.
func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logger := ctxlog.FromContext(r.Context())
	view, ok := s.getView(w, r)
	if !ok {
		return
	}
	actionName := vars["action"]

	// An unconfigured integration binds against an empty object; required
	// fields then surface as a 422 rather than a blind handler failure.
	stored, err := s.store.Get(r.Context(), vars["org"], vars["slug"])
	if err != nil && !errors.Is(err, tenantstore.ErrNotFound) {
		logger.Error("Failed to read tenant config", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read configuration")
		return
	}

	config, err := view.Schema().Coerce(stored)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	bound, ok := view.Bind(config)[actionName]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown action")
		return
	}

	input, ok := decodeObject(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := bound(r.Context(), input)
	s.metrics.ActionDuration.WithLabelValues(vars["slug"], actionName).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.ActionInvocations.WithLabelValues(vars["slug"], actionName, "error").Inc()
		logger.Warn("Action invocation failed.", "plugin", vars["slug"], "action", actionName, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	s.metrics.ActionInvocations.WithLabelValues(vars["slug"], actionName, "ok").Inc()
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

// getView resolves the slug path variable against the registry, writing a
// 404 when the plugin does not exist.
func (s *Server) getView(w http.ResponseWriter, r *http.Request) (*registry.View, bool) {
	slug := mux.Vars(r)["slug"]
	view, err := s.registry.Get(slug)
	if err != nil {
		var nf *registry.NotFoundError
		if errors.As(err, &nf) {
			writeError(w, http.StatusNotFound, err.Error())
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return view, true
}

// decodeObject reads an optional JSON object body; an empty body yields an
// empty object.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		return map[string]any{}, true
	}
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, false
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
