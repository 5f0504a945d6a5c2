package tenantstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS tenant_plugin_configs (
	org_id      text NOT NULL,
	plugin_slug text NOT NULL,
	config      jsonb NOT NULL,
	updated_at  timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (org_id, plugin_slug)
)`

// Postgres is a Store backed by a pgx connection pool. One row per
// (organization, plugin) pair; the config column stays an opaque JSON
// object, mirroring how the rest of the product stores integration
// settings.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to the given DSN and ensures the backing table
// exists.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure tenant_plugin_configs table: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Get(ctx context.Context, orgID, slug string) (map[string]any, error) {
	var raw []byte
	err := p.pool.QueryRow(ctx,
		`SELECT config FROM tenant_plugin_configs WHERE org_id = $1 AND plugin_slug = $2`,
		orgID, slug,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant config: %w", err)
	}

	var cfg map[string]any
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("stored tenant config is not a JSON object: %w", err)
	}
	return cfg, nil
}

func (p *Postgres) Put(ctx context.Context, orgID, slug string, config map[string]any) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode tenant config: %w", err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO tenant_plugin_configs (org_id, plugin_slug, config, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (org_id, plugin_slug) DO UPDATE SET config = EXCLUDED.config, updated_at = now()`,
		orgID, slug, raw,
	)
	if err != nil {
		return fmt.Errorf("failed to write tenant config: %w", err)
	}
	return nil
}

func (p *Postgres) List(ctx context.Context, orgID string) (map[string]map[string]any, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT plugin_slug, config FROM tenant_plugin_configs WHERE org_id = $1`,
		orgID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant configs: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]any)
	for rows.Next() {
		var slug string
		var raw []byte
		if err := rows.Scan(&slug, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan tenant config row: %w", err)
		}
		var cfg map[string]any
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("stored tenant config for %q is not a JSON object: %w", slug, err)
		}
		out[slug] = cfg
	}
	return out, rows.Err()
}

func (p *Postgres) Close() {
	p.pool.Close()
}
