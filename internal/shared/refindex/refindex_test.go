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

package refindex

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

func cluster(name string, mutate ...func(*hivev1alpha1.HiveCluster)) *hivev1alpha1.HiveCluster {
	hc := &hivev1alpha1.HiveCluster{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		Spec: hivev1alpha1.HiveClusterSpec{
			Image: hivev1alpha1.ImageSpec{ProductVersion: "4.0.0"},
			ClusterConfig: hivev1alpha1.ClusterConfig{
				Database: hivev1alpha1.DatabaseConnection{
					ConnectionString:  "jdbc:postgresql://postgres:5432/hive",
					Kind:              hivev1alpha1.DatabaseKindPostgres,
					CredentialsSecret: "hive-credentials",
				},
			},
			Metastore: &hivev1alpha1.MetastoreRoleSpec{
				RoleGroups: map[string]hivev1alpha1.RoleGroupSpec{
					"default": {Replicas: ptr.To(int32(1))},
				},
			},
		},
	}
	for _, m := range mutate {
		m(hc)
	}
	return hc
}

func withS3Reference(name string) func(*hivev1alpha1.HiveCluster) {
	return func(hc *hivev1alpha1.HiveCluster) {
		hc.Spec.ClusterConfig.ObjectStorage = &hivev1alpha1.ObjectStorage{
			S3: &hivev1alpha1.S3Storage{Reference: name},
		}
	}
}

func newMapper(t *testing.T, objs ...client.Object) *Mapper {
	t.Helper()
	scheme := runtime.NewScheme()
	require.NoError(t, clientgoscheme.AddToScheme(scheme))
	require.NoError(t, hivev1alpha1.AddToScheme(scheme))

	c := fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objs...).
		WithIndex(&hivev1alpha1.HiveCluster{}, FieldSecrets, SecretsIndex).
		WithIndex(&hivev1alpha1.HiveCluster{}, FieldConfigMaps, ConfigMapsIndex).
		WithIndex(&hivev1alpha1.HiveCluster{}, FieldS3Connections, S3ConnectionsIndex).
		WithIndex(&hivev1alpha1.S3Connection{}, FieldS3ConnectionSecret, S3ConnectionSecretIndex).
		Build()
	return NewMapper(c, logr.Discard())
}

func request(name string) reconcile.Request {
	return reconcile.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: name}}
}

func TestFor(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*hivev1alpha1.HiveCluster)
		want   References
	}{
		{
			name:   "database only",
			mutate: func(*hivev1alpha1.HiveCluster) {},
			want:   References{Secrets: []string{"hive-credentials"}},
		},
		{
			name:   "s3 reference",
			mutate: withS3Reference("minio"),
			want: References{
				Secrets:       []string{"hive-credentials"},
				S3Connections: []string{"minio"},
			},
		},
		{
			name: "inline s3 secret",
			mutate: func(hc *hivev1alpha1.HiveCluster) {
				hc.Spec.ClusterConfig.ObjectStorage = &hivev1alpha1.ObjectStorage{S3: &hivev1alpha1.S3Storage{
					Inline: &hivev1alpha1.S3ConnectionSpec{
						Host:        "minio",
						Credentials: &hivev1alpha1.S3Credentials{SecretName: "s3-keys"},
					},
				}}
			},
			want: References{Secrets: []string{"hive-credentials", "s3-keys"}},
		},
		{
			name: "gcs",
			mutate: func(hc *hivev1alpha1.HiveCluster) {
				hc.Spec.ClusterConfig.ObjectStorage = &hivev1alpha1.ObjectStorage{
					GCS: &hivev1alpha1.GCSStorage{Bucket: "warehouse", CredentialsSecret: "gcs-key"},
				}
			},
			want: References{Secrets: []string{"gcs-key", "hive-credentials"}},
		},
		{
			name: "configmaps",
			mutate: func(hc *hivev1alpha1.HiveCluster) {
				hc.Spec.ClusterConfig.Filesystem = &hivev1alpha1.Filesystem{HDFS: &hivev1alpha1.HDFSFilesystem{ConfigMap: "hdfs"}}
				hc.Spec.ClusterConfig.Authorization = &hivev1alpha1.Authorization{OPA: &hivev1alpha1.OPAAuthorization{ConfigMap: "opa"}}
				hc.Spec.ClusterConfig.VectorAggregatorConfigMapName = "vector-aggregator"
				hc.Spec.Metastore.Config = &hivev1alpha1.MetastoreConfigFragment{
					Logging: &hivev1alpha1.LoggingFragment{
						EnableVectorAgent: ptr.To(true),
						CustomConfigMap:   ptr.To("hive-log"),
					},
				}
			},
			want: References{
				Secrets:    []string{"hive-credentials"},
				ConfigMaps: []string{"hdfs", "hive-log", "opa", "vector-aggregator"},
			},
		},
		{
			name: "aggregator ignored without vector agent",
			mutate: func(hc *hivev1alpha1.HiveCluster) {
				hc.Spec.ClusterConfig.VectorAggregatorConfigMapName = "vector-aggregator"
			},
			want: References{Secrets: []string{"hive-credentials"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, For(cluster("hive", tt.mutate)))
		})
	}
}

func TestIndexersIgnoreOtherTypes(t *testing.T) {
	secret := &corev1.Secret{}
	assert.Nil(t, SecretsIndex(secret))
	assert.Nil(t, ConfigMapsIndex(secret))
	assert.Nil(t, S3ConnectionsIndex(secret))
	assert.Nil(t, S3ConnectionSecretIndex(secret))
}

func TestClustersForSecret(t *testing.T) {
	conn := &hivev1alpha1.S3Connection{
		ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "default"},
		Spec: hivev1alpha1.S3ConnectionSpec{
			Host:        "minio",
			Credentials: &hivev1alpha1.S3Credentials{SecretName: "minio-keys"},
		},
	}
	m := newMapper(t,
		cluster("alpha"),
		cluster("beta", withS3Reference("minio")),
		cluster("gamma", func(hc *hivev1alpha1.HiveCluster) {
			hc.Spec.ClusterConfig.Database.CredentialsSecret = "other"
		}),
		conn,
	)

	direct := m.ClustersForSecret(context.Background(), &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "hive-credentials", Namespace: "default"},
	})
	assert.Equal(t, []reconcile.Request{request("alpha"), request("beta")}, direct)

	viaConnection := m.ClustersForSecret(context.Background(), &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "minio-keys", Namespace: "default"},
	})
	assert.Equal(t, []reconcile.Request{request("beta")}, viaConnection)

	unused := m.ClustersForSecret(context.Background(), &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "unused", Namespace: "default"},
	})
	assert.Empty(t, unused)
}

func TestClustersForSecret_OtherNamespace(t *testing.T) {
	m := newMapper(t, cluster("alpha"))

	reqs := m.ClustersForSecret(context.Background(), &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: "hive-credentials", Namespace: "elsewhere"},
	})
	assert.Empty(t, reqs)
}

func TestClustersForConfigMapAndS3Connection(t *testing.T) {
	m := newMapper(t,
		cluster("alpha", func(hc *hivev1alpha1.HiveCluster) {
			hc.Spec.ClusterConfig.Filesystem = &hivev1alpha1.Filesystem{HDFS: &hivev1alpha1.HDFSFilesystem{ConfigMap: "hdfs"}}
		}),
		cluster("beta", withS3Reference("minio")),
	)

	assert.Equal(t, []reconcile.Request{request("alpha")},
		m.ClustersForConfigMap(context.Background(), &corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "hdfs", Namespace: "default"},
		}))
	assert.Equal(t, []reconcile.Request{request("beta")},
		m.ClustersForS3Connection(context.Background(), &hivev1alpha1.S3Connection{
			ObjectMeta: metav1.ObjectMeta{Name: "minio", Namespace: "default"},
		}))
}
