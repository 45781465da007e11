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

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hive-operator/internal/adapter/testutil"
)

func TestPostgreSQLProber_Integration(t *testing.T) {
	for _, flavor := range []testutil.Flavor{testutil.Postgres} {
		t.Run(flavor.Name, func(t *testing.T) {
			db := testutil.StartDatabase(t, flavor)

			probe := func(password string) error {
				target := db.Target()
				target.Password = password
				p := NewProber(target)
				defer p.Close()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				return p.Probe(ctx)
			}

			assert.NoError(t, probe(testutil.Password), db.JDBCURL())
			assert.Error(t, probe("wrong"), "wrong password must fail")
		})
	}
}
