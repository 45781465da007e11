/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package postgres

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hive-operator/internal/adapter/types"
)

const (
	defaultPort    = 5432
	connectTimeout = 5 * time.Second
)

// pool is the subset of *pgxpool.Pool the prober needs
type pool interface {
	Ping(ctx context.Context) error
	Close()
}

// Prober checks that the PostgreSQL metastore database accepts the
// configured credentials.
type Prober struct {
	target types.DatabaseTarget
	pool   pool
	mu     sync.Mutex
}

// NewProber creates a new PostgreSQL prober
func NewProber(target types.DatabaseTarget) *Prober {
	return &Prober{target: target}
}

// Probe connects if needed and pings the server
func (p *Prober) Probe(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool == nil {
		cfg, err := p.buildPoolConfig()
		if err != nil {
			return fmt.Errorf("failed to build connection config: %w", err)
		}
		pl, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		p.pool = pl
	}

	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (p *Prober) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
	return nil
}

// buildPoolConfig translates the JDBC URL into a single-connection pgx pool
// config. JDBC-only parameters are dropped; ssl=true maps to sslmode=require.
func (p *Prober) buildPoolConfig() (*pgxpool.Config, error) {
	j, err := types.ParseJDBCURL(p.target.JDBCURL)
	if err != nil {
		return nil, err
	}
	if j.Driver != "postgresql" && j.Driver != "postgres" {
		return nil, fmt.Errorf("unexpected jdbc driver %q for postgres", j.Driver)
	}

	sslMode := j.Params.Get("sslmode")
	if sslMode == "" && j.Params.Get("ssl") == "true" {
		sslMode = "require"
	}
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     j.Address(defaultPort),
		Path:     "/" + j.Database,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	cfg, err := pgxpool.ParseConfig(u.String())
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.User = p.target.Username
	cfg.ConnConfig.Password = p.target.Password
	cfg.ConnConfig.ConnectTimeout = connectTimeout
	cfg.MaxConns = 1
	return cfg, nil
}
