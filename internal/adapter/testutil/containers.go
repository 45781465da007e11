//go:build integration

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
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mariadb"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter/types"
)

// Flavor is a database server a metastore can be backed by.
type Flavor struct {
	Name  string
	Image string

	kind   hivev1alpha1.DatabaseKind
	scheme string
	run    func(ctx context.Context, image string) (testcontainers.Container, error)
}

var (
	Postgres = Flavor{
		Name:   "postgres",
		Image:  "postgres:16-alpine",
		kind:   hivev1alpha1.DatabaseKindPostgres,
		scheme: "postgresql",
		run: func(ctx context.Context, image string) (testcontainers.Container, error) {
			return postgres.Run(ctx, image,
				postgres.WithUsername(Username),
				postgres.WithPassword(Password),
				postgres.WithDatabase(Database),
				postgres.BasicWaitStrategies(),
			)
		},
	}

	MySQL = Flavor{
		Name:   "mysql",
		Image:  "mysql:8",
		kind:   hivev1alpha1.DatabaseKindMySQL,
		scheme: "mysql",
		run: func(ctx context.Context, image string) (testcontainers.Container, error) {
			return mysql.Run(ctx, image,
				mysql.WithUsername(Username),
				mysql.WithPassword(Password),
				mysql.WithDatabase(Database),
			)
		},
	}

	// MariaDB speaks the MySQL protocol and is configured with the mysql kind.
	MariaDB = Flavor{
		Name:   "mariadb",
		Image:  "mariadb:11.2",
		kind:   hivev1alpha1.DatabaseKindMySQL,
		scheme: "mariadb",
		run: func(ctx context.Context, image string) (testcontainers.Container, error) {
			return mariadb.Run(ctx, image,
				mariadb.WithUsername(Username),
				mariadb.WithPassword(Password),
				mariadb.WithDatabase(Database),
			)
		},
	}
)

// DatabaseContainer is a throwaway metastore database.
type DatabaseContainer struct {
	flavor  Flavor
	jdbcURL string
}

// StartDatabase starts f and terminates it when t finishes. Tests are
// skipped in short mode.
func StartDatabase(t testing.TB, f Flavor) *DatabaseContainer {
	t.Helper()
	if testing.Short() {
		t.Skipf("skipping %s container in short mode", f.Name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	c, err := f.run(ctx, f.Image)
	testcontainers.CleanupContainer(t, c)
	if err != nil {
		t.Fatalf("failed to start %s: %v", f.Name, err)
	}

	// host:port of the only exposed port
	endpoint, err := c.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get %s endpoint: %v", f.Name, err)
	}
	return &DatabaseContainer{
		flavor:  f,
		jdbcURL: fmt.Sprintf("jdbc:%s://%s/%s", f.scheme, endpoint, Database),
	}
}

// JDBCURL returns the URL a metastore would use to reach the container.
func (dc *DatabaseContainer) JDBCURL() string {
	return dc.jdbcURL
}

// Target returns a probe target with the container credentials.
func (dc *DatabaseContainer) Target() types.DatabaseTarget {
	return Target(dc.flavor.kind, dc.jdbcURL)
}
