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

package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
)

const clusterManifest = `
apiVersion: hive.hiveops.io/v1alpha1
kind: HiveCluster
metadata:
  name: hive
spec:
  image:
    productVersion: 4.0.1
  clusterConfig:
    database:
      connectionString: jdbc:postgresql://postgres:5432/hive
      kind: postgres
      credentialsSecret: hive-db
  metastore:
    roleGroups:
      default:
        replicas: 1
`

const secretManifest = `
apiVersion: v1
kind: Secret
metadata:
  name: hive-db
  namespace: analytics
stringData:
  username: hive
  password: s3cret
`

func TestLoadReader(t *testing.T) {
	stream := "---\n" + clusterManifest + "---\n" + secretManifest + "---\n"

	m, err := LoadReader(strings.NewReader(stream), "default")
	require.NoError(t, err)
	require.Len(t, m.Clusters, 1)
	require.Len(t, m.Referenced, 1)

	hc := m.Clusters[0]
	assert.Equal(t, "hive", hc.Name)
	assert.Equal(t, "default", hc.Namespace)
	assert.Equal(t, "HiveCluster", hc.Kind)
	assert.Equal(t, hivev1alpha1.DatabaseKindPostgres, hc.Spec.ClusterConfig.Database.Kind)

	secret, ok := m.Referenced[0].(*corev1.Secret)
	require.True(t, ok)
	assert.Equal(t, "analytics", secret.Namespace)
	assert.Equal(t, []byte("s3cret"), secret.Data["password"])
	assert.Empty(t, secret.StringData)
}

func TestLoadReader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stream   string
		contains string
	}{
		{"empty", "---\n---\n", "no valid resources"},
		{"unknown kind", "apiVersion: v1\nkind: Pod\nmetadata:\n  name: p\n", "unsupported kind"},
		{"broken yaml", "kind: [HiveCluster\n", "invalid YAML"},
		{"unknown field", strings.Replace(clusterManifest, "replicas: 1", "replicas: 1\n        replica: 2", 1), "document 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.stream), "default")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadReader_NonStringOverrideIsValidationError(t *testing.T) {
	manifest := strings.Replace(clusterManifest, "  metastore:\n", "  metastore:\n    envOverrides:\n      HEAP: 512\n", 1)
	_, err := LoadReader(strings.NewReader(manifest), "default")
	require.Error(t, err)
	assert.True(t, service.IsValidationError(err), "got %v", err)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	cluster := filepath.Join(dir, "hive.yaml")
	secret := filepath.Join(dir, "secret.yaml")
	require.NoError(t, os.WriteFile(cluster, []byte(clusterManifest), 0o600))
	require.NoError(t, os.WriteFile(secret, []byte(secretManifest), 0o600))

	m, err := LoadFiles("prod", cluster, secret)
	require.NoError(t, err)
	assert.Len(t, m.Clusters, 1)
	assert.Len(t, m.Referenced, 1)
	assert.Equal(t, "prod", m.Clusters[0].Namespace)

	_, err = LoadFiles("prod", secret)
	assert.ErrorContains(t, err, "no HiveCluster")

	_, err = LoadFiles("prod", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
