// Package httpapi exposes the plugin registry to the surrounding product
// over HTTP: the marketplace listing with auto-derived form fields, tenant
// configuration reads/writes, and tenant-bound action invocation.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vk/connectgrid/internal/metrics"
	"github.com/vk/connectgrid/internal/registry"
	"github.com/vk/connectgrid/internal/tenantstore"
)

// Server wires the registry, the tenant store, and the instrumentation
// behind a mux router. It holds no per-request state.
type Server struct {
	logger   *slog.Logger
	registry *registry.Registry
	store    tenantstore.Store
	metrics  *metrics.Metrics
}

// NewServer creates the HTTP surface over the given collaborators.
func NewServer(logger *slog.Logger, reg *registry.Registry, store tenantstore.Store, m *metrics.Metrics) *Server {
	return &Server{
		logger:   logger,
		registry: reg,
		store:    store,
		metrics:  m,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/plugins", s.handleListPlugins).Methods(http.MethodGet)
	v1.HandleFunc("/plugins/{slug}", s.handleGetPlugin).Methods(http.MethodGet)
	v1.HandleFunc("/orgs/{org}/plugins/{slug}/config", s.handleGetConfig).Methods(http.MethodGet)
	v1.HandleFunc("/orgs/{org}/plugins/{slug}/config", s.handlePutConfig).Methods(http.MethodPut)
	v1.HandleFunc("/orgs/{org}/plugins/{slug}/actions/{action}", s.handleInvoke).Methods(http.MethodPost)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK\n"))
}
