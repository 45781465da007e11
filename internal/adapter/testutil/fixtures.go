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
// Package testutil holds fixtures shared by the metastore database prober
// tests. Container helpers need the integration build tag.
package testutil

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pashagolub/pgxmock/v4"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter/types"
)

// Credentials used by every fixture and test container.
const (
	Username = "hive"
	Password = "hivehive"
	Database = "hive"
)

// Target returns a probe target for jdbcURL using the fixture credentials.
func Target(kind hivev1alpha1.DatabaseKind, jdbcURL string) types.DatabaseTarget {
	return types.DatabaseTarget{
		Kind:     string(kind),
		JDBCURL:  jdbcURL,
		Username: Username,
		Password: Password,
	}
}

// NewMockDB returns a sqlmock database where Ping is an expectation.
func NewMockDB() (*sql.DB, sqlmock.Sqlmock, error) {
	return sqlmock.New(sqlmock.MonitorPingsOption(true))
}

// NewMockPool returns a pgxmock pool where Ping is an expectation.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool()
}
