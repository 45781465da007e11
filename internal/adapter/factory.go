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

package adapter

import (
	"fmt"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter/mysql"
	"github.com/hive-operator/internal/adapter/postgres"
	"github.com/hive-operator/internal/adapter/types"
	"github.com/hive-operator/internal/service"
)

type (
	Prober         = types.Prober
	DatabaseTarget = types.DatabaseTarget
	BucketTarget   = types.BucketTarget
)

// NewDatabaseProber returns a prober for target.Kind. Kinds the operator
// configures but cannot reach from Go return service.ErrProbeUnsupported.
func NewDatabaseProber(target DatabaseTarget) (Prober, error) {
	kind := hivev1alpha1.DatabaseKind(target.Kind)
	switch {
	case kind == hivev1alpha1.DatabaseKindPostgres:
		return postgres.NewProber(target), nil
	case kind == hivev1alpha1.DatabaseKindMySQL:
		return mysql.NewProber(target), nil
	case kind.IsValid():
		return nil, fmt.Errorf("%s: %w", target.Kind, service.ErrProbeUnsupported)
	default:
		return nil, fmt.Errorf("unsupported database kind: %s", target.Kind)
	}
}
