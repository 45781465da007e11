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

package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/hive-operator/internal/adapter/types"
)

const (
	defaultPort    = 3306
	connectTimeout = 5 * time.Second
)

// Prober checks that the MySQL metastore database accepts the configured
// credentials.
type Prober struct {
	target types.DatabaseTarget
	db     *sql.DB
	mu     sync.Mutex
}

// NewProber creates a new MySQL prober
func NewProber(target types.DatabaseTarget) *Prober {
	return &Prober{target: target}
}

// Probe opens the database if needed and pings the server
func (p *Prober) Probe(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		cfg, err := p.buildConfig()
		if err != nil {
			return fmt.Errorf("failed to build DSN: %w", err)
		}
		connector, err := mysql.NewConnector(cfg)
		if err != nil {
			return fmt.Errorf("failed to create connector: %w", err)
		}
		db := sql.OpenDB(connector)
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(time.Minute)
		p.db = db
	}

	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close closes the database handle
func (p *Prober) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db != nil {
		err := p.db.Close()
		p.db = nil
		return err
	}
	return nil
}

// buildConfig translates the JDBC URL into a driver config
func (p *Prober) buildConfig() (*mysql.Config, error) {
	j, err := types.ParseJDBCURL(p.target.JDBCURL)
	if err != nil {
		return nil, err
	}
	if j.Driver != "mysql" && j.Driver != "mariadb" {
		return nil, fmt.Errorf("unexpected jdbc driver %q for mysql", j.Driver)
	}

	cfg := mysql.NewConfig()
	cfg.User = p.target.Username
	cfg.Passwd = p.target.Password
	cfg.Net = "tcp"
	cfg.Addr = j.Address(defaultPort)
	cfg.DBName = j.Database
	cfg.Timeout = connectTimeout

	// Connector/J spells this useSSL or sslMode
	if strings.EqualFold(j.Params.Get("useSSL"), "true") ||
		strings.EqualFold(j.Params.Get("sslMode"), "REQUIRED") {
		cfg.TLSConfig = "skip-verify"
	}
	return cfg, nil
}
