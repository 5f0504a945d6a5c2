package tenantstore

import (
	"context"
	"maps"
	"sync"
)

// Memory is a thread-safe, in-memory Store. It is suitable for tests and
// single-process deployments that accept losing tenant settings on
// restart; production deployments use the Postgres store.
type Memory struct {
	mu   sync.RWMutex
	orgs map[string]map[string]map[string]any // orgID -> slug -> config
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{orgs: make(map[string]map[string]map[string]any)}
}

func (m *Memory) Get(ctx context.Context, orgID, slug string) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.orgs[orgID][slug]
	if !ok {
		return nil, ErrNotFound
	}
	return maps.Clone(cfg), nil
}

func (m *Memory) Put(ctx context.Context, orgID, slug string, config map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.orgs[orgID] == nil {
		m.orgs[orgID] = make(map[string]map[string]any)
	}
	m.orgs[orgID][slug] = maps.Clone(config)
	return nil
}

func (m *Memory) List(ctx context.Context, orgID string) (map[string]map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]map[string]any, len(m.orgs[orgID]))
	for slug, cfg := range m.orgs[orgID] {
		out[slug] = maps.Clone(cfg)
	}
	return out, nil
}

func (m *Memory) Close() {}
