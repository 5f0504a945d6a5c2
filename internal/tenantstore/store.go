// Package tenantstore persists per-organization plugin configuration as
// opaque JSON objects. The registry never touches the store; the HTTP
// layer reads a tenant's config here and passes it into binding.
package tenantstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no configuration exists for the
// (organization, plugin) pair.
var ErrNotFound = errors.New("tenant plugin configuration not found")

// Store is the persistence boundary for tenant plugin configuration.
type Store interface {
	// Get returns the stored configuration object for one plugin of one
	// organization, or ErrNotFound.
	Get(ctx context.Context, orgID, slug string) (map[string]any, error)

	// Put creates or replaces the configuration object.
	Put(ctx context.Context, orgID, slug string, config map[string]any) error

	// List returns all stored configurations of one organization, keyed by
	// plugin slug.
	List(ctx context.Context, orgID string) (map[string]map[string]any, error)

	// Close releases any underlying resources.
	Close()
}
