package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/connectgrid/internal/appconfig"
	"github.com/vk/connectgrid/internal/ctxlog"
	"github.com/vk/connectgrid/internal/httpapi"
	"github.com/vk/connectgrid/internal/metrics"
	"github.com/vk/connectgrid/internal/registry"
	"github.com/vk/connectgrid/internal/tenantstore"
)

// App bundles everything a running connectgrid instance owns.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *appconfig.Config
	registry *registry.Registry
	store    tenantstore.Store
	metrics  *metrics.Metrics
	server   *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, registry,
// and metrics. Startup problems (invalid config, manifest/handler
// mismatches) are programmer or operator errors and panic; main recovers
// to print a clean message.
func NewApp(outW io.Writer, cfg *appconfig.Config, modules ...registry.Module) *App {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All plugin modules registered.", "count", len(modules))

	// Manifest/handler parity is checked once here; after this the
	// registry is read-only.
	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "plugins", len(reg.Plugins()))

	store, err := newStore(ctx, cfg)
	if err != nil {
		panic(fmt.Errorf("failed to initialize tenant store: %w", err))
	}

	m := metrics.New()
	api := httpapi.NewServer(logger, reg, store, m)

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		store:    store,
		metrics:  m,
		server: &http.Server{
			Addr:    cfg.Listen,
			Handler: api.Router(),
		},
	}
}

// newStore selects the tenant configuration store from config.
func newStore(ctx context.Context, cfg *appconfig.Config) (tenantstore.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return tenantstore.NewPostgres(ctx, cfg.Store.DSN)
	default:
		return tenantstore.NewMemory(), nil
	}
}

// Registry returns the application's registry. This is primarily for
// testing and the offline CLI commands.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Store returns the tenant configuration store.
func (a *App) Store() tenantstore.Store {
	return a.store
}

// Handler returns the HTTP handler, for tests that drive the API without a
// listener.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}
