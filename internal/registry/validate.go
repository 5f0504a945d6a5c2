package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/connectgrid/internal/ctxlog"
)

// Validate performs a strict parity check between plugin manifests and Go
// code: every action a manifest declares must reference a registered
// handler, and every registered handler should be referenced by some
// action. Presence failures are collected and reported together.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	referenced := make(map[string]struct{})
	for _, slug := range r.order {
		p := r.plugins[slug]
		if len(p.Actions) == 0 {
			errs = append(errs, fmt.Sprintf("plugin '%s': manifest declares no actions", slug))
		}
		seen := make(map[string]struct{})
		for _, a := range p.Actions {
			if _, dup := seen[a.Name]; dup {
				errs = append(errs, fmt.Sprintf("plugin '%s': action '%s' declared more than once", slug, a.Name))
			}
			seen[a.Name] = struct{}{}

			if a.Handler == "" {
				errs = append(errs, fmt.Sprintf("plugin '%s': action '%s' declares no handler", slug, a.Name))
				continue
			}
			referenced[a.Handler] = struct{}{}
			if _, ok := r.handlers[a.Handler]; !ok {
				errs = append(errs, fmt.Sprintf("plugin '%s': action '%s' references handler '%s' which is not registered in Go", slug, a.Name, a.Handler))
			}
		}
	}

	for name := range r.handlers {
		if _, ok := referenced[name]; !ok {
			logger.Warn("Go handler is registered but referenced by no manifest action.", "handler", name)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return nil
}
