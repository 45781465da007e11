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

// Package refindex maps Secrets, ConfigMaps and S3Connections back to the
// HiveClusters that reference them, so that a change to a referenced object
// enqueues every cluster using it.
package refindex

import (
	"context"
	"sort"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
)

// Field index names
const (
	FieldSecrets       = ".spec.refs.secrets"
	FieldConfigMaps    = ".spec.refs.configMaps"
	FieldS3Connections = ".spec.refs.s3Connections"

	// FieldS3ConnectionSecret indexes S3Connections by their credentials secret
	FieldS3ConnectionSecret = ".spec.credentials.secretName"
)

// References lists the names a HiveCluster spec points at, in its own namespace.
type References struct {
	Secrets       []string
	ConfigMaps    []string
	S3Connections []string
}

// For extracts the references from the spec alone. Secrets named by a
// referenced S3Connection are not included; Mapper follows those separately.
func For(hc *hivev1alpha1.HiveCluster) References {
	var refs References
	cc := hc.Spec.ClusterConfig

	if cc.Database.CredentialsSecret != "" {
		refs.Secrets = append(refs.Secrets, cc.Database.CredentialsSecret)
	}
	switch cc.ObjectStorage.Kind() {
	case hivev1alpha1.ObjectStorageS3:
		s3 := cc.ObjectStorage.S3
		if s3.Reference != "" {
			refs.S3Connections = append(refs.S3Connections, s3.Reference)
		}
		if s3.Inline != nil && s3.Inline.Credentials != nil && s3.Inline.Credentials.SecretName != "" {
			refs.Secrets = append(refs.Secrets, s3.Inline.Credentials.SecretName)
		}
	case hivev1alpha1.ObjectStorageGCS:
		refs.Secrets = append(refs.Secrets, cc.ObjectStorage.GCS.CredentialsSecret)
	case hivev1alpha1.ObjectStorageAzure:
		refs.Secrets = append(refs.Secrets, cc.ObjectStorage.Azure.CredentialsSecret)
	}

	if name := hc.HDFSConfigMap(); name != "" {
		refs.ConfigMaps = append(refs.ConfigMaps, name)
	}
	if a := cc.Authorization; a != nil && a.OPA != nil {
		refs.ConfigMaps = append(refs.ConfigMaps, a.OPA.ConfigMap)
	}
	if cc.VectorAggregatorConfigMapName != "" && adapter.VectorRequested(hc) {
		refs.ConfigMaps = append(refs.ConfigMaps, cc.VectorAggregatorConfigMapName)
	}
	refs.ConfigMaps = append(refs.ConfigMaps, adapter.CustomLogConfigMaps(hc)...)

	refs.Secrets = uniqueSorted(refs.Secrets)
	refs.ConfigMaps = uniqueSorted(refs.ConfigMaps)
	refs.S3Connections = uniqueSorted(refs.S3Connections)
	return refs
}

// SecretsIndex is the extractor for FieldSecrets.
func SecretsIndex(obj client.Object) []string {
	if hc, ok := obj.(*hivev1alpha1.HiveCluster); ok {
		return For(hc).Secrets
	}
	return nil
}

// ConfigMapsIndex is the extractor for FieldConfigMaps.
func ConfigMapsIndex(obj client.Object) []string {
	if hc, ok := obj.(*hivev1alpha1.HiveCluster); ok {
		return For(hc).ConfigMaps
	}
	return nil
}

// S3ConnectionsIndex is the extractor for FieldS3Connections.
func S3ConnectionsIndex(obj client.Object) []string {
	if hc, ok := obj.(*hivev1alpha1.HiveCluster); ok {
		return For(hc).S3Connections
	}
	return nil
}

// S3ConnectionSecretIndex is the extractor for FieldS3ConnectionSecret.
func S3ConnectionSecretIndex(obj client.Object) []string {
	conn, ok := obj.(*hivev1alpha1.S3Connection)
	if !ok || conn.Spec.Credentials == nil || conn.Spec.Credentials.SecretName == "" {
		return nil
	}
	return []string{conn.Spec.Credentials.SecretName}
}

// Register installs every field index on the manager's cache.
func Register(ctx context.Context, indexer client.FieldIndexer) error {
	indexes := []struct {
		obj     client.Object
		field   string
		extract client.IndexerFunc
	}{
		{&hivev1alpha1.HiveCluster{}, FieldSecrets, SecretsIndex},
		{&hivev1alpha1.HiveCluster{}, FieldConfigMaps, ConfigMapsIndex},
		{&hivev1alpha1.HiveCluster{}, FieldS3Connections, S3ConnectionsIndex},
		{&hivev1alpha1.S3Connection{}, FieldS3ConnectionSecret, S3ConnectionSecretIndex},
	}
	for _, idx := range indexes {
		if err := indexer.IndexField(ctx, idx.obj, idx.field, idx.extract); err != nil {
			return err
		}
	}
	return nil
}

// Mapper turns a referenced object into reconcile requests for the clusters using it.
type Mapper struct {
	reader client.Reader
	logger logr.Logger
}

// NewMapper creates a mapper reading through the indexed cache.
func NewMapper(reader client.Reader, logger logr.Logger) *Mapper {
	return &Mapper{reader: reader, logger: logger}
}

// ClustersForSecret returns the clusters referencing the secret directly or
// through an S3Connection.
func (m *Mapper) ClustersForSecret(ctx context.Context, obj client.Object) []reconcile.Request {
	reqs := m.clusters(ctx, obj.GetNamespace(), FieldSecrets, obj.GetName())

	conns := &hivev1alpha1.S3ConnectionList{}
	if err := m.reader.List(ctx, conns,
		client.InNamespace(obj.GetNamespace()),
		client.MatchingFields{FieldS3ConnectionSecret: obj.GetName()}); err != nil {
		m.logger.Error(err, "Failed to list S3Connections for secret", "secret", obj.GetName())
		return dedupe(reqs)
	}
	for i := range conns.Items {
		reqs = append(reqs, m.clusters(ctx, obj.GetNamespace(), FieldS3Connections, conns.Items[i].Name)...)
	}
	return dedupe(reqs)
}

// ClustersForConfigMap returns the clusters referencing the ConfigMap.
func (m *Mapper) ClustersForConfigMap(ctx context.Context, obj client.Object) []reconcile.Request {
	return dedupe(m.clusters(ctx, obj.GetNamespace(), FieldConfigMaps, obj.GetName()))
}

// ClustersForS3Connection returns the clusters referencing the S3Connection.
func (m *Mapper) ClustersForS3Connection(ctx context.Context, obj client.Object) []reconcile.Request {
	return dedupe(m.clusters(ctx, obj.GetNamespace(), FieldS3Connections, obj.GetName()))
}

func (m *Mapper) clusters(ctx context.Context, namespace, field, name string) []reconcile.Request {
	list := &hivev1alpha1.HiveClusterList{}
	if err := m.reader.List(ctx, list,
		client.InNamespace(namespace),
		client.MatchingFields{field: name}); err != nil {
		m.logger.Error(err, "Failed to list HiveClusters by reference", "field", field, "name", name)
		return nil
	}
	reqs := make([]reconcile.Request, 0, len(list.Items))
	for i := range list.Items {
		reqs = append(reqs, reconcile.Request{NamespacedName: types.NamespacedName{
			Namespace: list.Items[i].Namespace,
			Name:      list.Items[i].Name,
		}})
	}
	return reqs
}

func dedupe(reqs []reconcile.Request) []reconcile.Request {
	seen := make(map[types.NamespacedName]bool, len(reqs))
	out := reqs[:0]
	for _, r := range reqs {
		if seen[r.NamespacedName] {
			continue
		}
		seen[r.NamespacedName] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
