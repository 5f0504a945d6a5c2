package registry

import (
	"context"
	"fmt"

	"github.com/vk/connectgrid/internal/plugin"
)

// BoundAction is an ephemeral closure over one tenant's configuration. It
// owns no state beyond the captured config and carries no identity; a nil
// input is replaced with an empty object before the handler runs.
type BoundAction func(ctx context.Context, input map[string]any) (any, error)

// BoundActions maps each of a plugin's action names to its bound callable.
type BoundActions map[string]BoundAction

// View is a read-only handle on one registered plugin, obtained via Get.
type View struct {
	p        *plugin.Plugin
	handlers map[string]ActionFunc
}

func (v *View) Slug() string              { return v.p.Slug }
func (v *View) Name() string              { return v.p.Name }
func (v *View) Schema() *plugin.Object    { return v.p.ConfigSchema }
func (v *View) Metadata() plugin.Metadata { return v.p.Metadata }
func (v *View) Actions() []*plugin.Action { return v.p.Actions }

// Get returns a view of the plugin registered under slug, or a
// *NotFoundError when no such plugin exists.
func (r *Registry) Get(slug string) (*View, error) {
	p, ok := r.plugins[slug]
	if !ok {
		return nil, &NotFoundError{Slug: slug}
	}
	return &View{p: p, handlers: r.handlers}, nil
}

// Bind closes the plugin's actions over a tenant configuration. Binding is
// pure: it reads the descriptor and returns fresh closures, so concurrent
// binds for different tenants cannot interfere. The registry performs no
// validation here; callers coerce config against the schema first if they
// want schema guarantees.
func (v *View) Bind(config map[string]any) BoundActions {
	if config == nil {
		config = map[string]any{}
	}
	out := make(BoundActions, len(v.p.Actions))
	for _, a := range v.p.Actions {
		fn, ok := v.handlers[a.Handler]
		if !ok {
			// Startup validation makes this unreachable for built-in
			// plugins; keep a defined failure for hand-built registries.
			name := a.Handler
			out[a.Name] = func(ctx context.Context, _ map[string]any) (any, error) {
				return nil, fmt.Errorf("action handler %q is not registered", name)
			}
			continue
		}
		out[a.Name] = bind(fn, config)
	}
	return out
}

func bind(fn ActionFunc, config map[string]any) BoundAction {
	return func(ctx context.Context, input map[string]any) (any, error) {
		if input == nil {
			input = map[string]any{}
		}
		return fn(ctx, Call{Config: config, Input: input})
	}
}

// Setup is the bulk variant of Get+Bind: it binds every registered plugin
// to its entry in configs, in one pass. Plugins without an entry are bound
// to an empty configuration. Like Bind, Setup never writes to descriptor
// state.
func (r *Registry) Setup(configs map[string]map[string]any) map[string]BoundActions {
	out := make(map[string]BoundActions, len(r.order))
	for _, slug := range r.order {
		v := &View{p: r.plugins[slug], handlers: r.handlers}
		out[slug] = v.Bind(configs[slug])
	}
	return out
}
