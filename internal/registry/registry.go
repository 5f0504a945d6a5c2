package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/connectgrid/internal/fields"
	"github.com/vk/connectgrid/internal/plugin"
)

// Module is the interface that all built-in plugin packages implement to be
// registered at bootstrap.
type Module interface {
	Register(r *Registry)
}

// Call carries the two arguments of an action invocation: the tenant's
// configuration and the caller-supplied input. Both are read-only by
// convention; handlers must not mutate them.
type Call struct {
	Config map[string]any
	Input  map[string]any
}

// ActionFunc is a compiled Go handler for one plugin action. Errors and
// results pass through the registry unmodified; retry, timeout, and
// fallback policy belong to the caller, via ctx or a wrapper.
type ActionFunc func(ctx context.Context, call Call) (any, error)

// Registry holds all registered plugin descriptors and action handlers for
// a single application instance. It is constructed once at bootstrap,
// populated, validated, and then only read.
type Registry struct {
	plugins  map[string]*plugin.Plugin
	order    []string
	handlers map[string]ActionFunc
}

// New creates an empty Registry instance.
func New() *Registry {
	return &Registry{
		plugins:  make(map[string]*plugin.Plugin),
		handlers: make(map[string]ActionFunc),
	}
}

// RegisterPlugin adds a plugin descriptor. Registration is append-only and
// happens before any serving; registering the same slug twice is a
// programmer error and panics.
func (r *Registry) RegisterPlugin(p *plugin.Plugin) {
	if p == nil || p.Slug == "" {
		panic("registry: plugin descriptor must have a slug")
	}
	if _, exists := r.plugins[p.Slug]; exists {
		panic(fmt.Sprintf("plugin with slug '%s' already registered", p.Slug))
	}
	slog.Debug("Registering plugin.", "slug", p.Slug)
	r.plugins[p.Slug] = p
	r.order = append(r.order, p.Slug)
}

// RegisterHandler registers a Go function for a plugin action by name.
func (r *Registry) RegisterHandler(name string, fn ActionFunc) {
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("action handler with name '%s' already registered", name))
	}
	slog.Debug("Registering action handler.", "name", name)
	r.handlers[name] = fn
}

// Plugins returns all registered descriptors in registration order.
func (r *Registry) Plugins() []*plugin.Plugin {
	out := make([]*plugin.Plugin, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.plugins[slug])
	}
	return out
}

// Summary is one entry of List: the descriptor's identity plus the form
// fields derived from its configuration schema.
type Summary struct {
	Slug     string          `json:"slug"`
	Name     string          `json:"name"`
	Schema   *plugin.Object  `json:"-"`
	Metadata plugin.Metadata `json:"metadata"`
	Fields   []fields.Field  `json:"fields"`
}

// List returns one summary per registered plugin, in registration order.
// Fields are derived on demand and not cached, so List always reflects the
// descriptor exactly.
func (r *Registry) List() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, slug := range r.order {
		p := r.plugins[slug]
		out = append(out, Summary{
			Slug:     p.Slug,
			Name:     p.Name,
			Schema:   p.ConfigSchema,
			Metadata: p.Metadata,
			Fields:   fields.Derive(p.ConfigSchema),
		})
	}
	return out
}
