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

// Package render turns merged role-group configurations into the Kubernetes
// objects of a HiveCluster.
//
// Names are plain joins of cluster, role and role group, e.g.
// hive-metastore-default. Validation guarantees that the cluster name never
// contains the role as a dash-separated segment, which makes the join
// reversible and therefore collision-free. Names that would exceed the limit
// of their kind are truncated and suffixed with a hash of the parts.
package render

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

const (
	// hashBytes must never change since it would rename every object
	hashBytes = 4

	truncationMark = "---"

	// StatefulSetNameLimit leaves room for the pod ordinal and the
	// controller-revision-hash label
	StatefulSetNameLimit = 52

	// ServiceNameLimit is the DNS label limit
	ServiceNameLimit = 63
)

// hashParts digests the name parts with a separator that cannot appear in them
func hashParts(parts []string) string {
	h := md5.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:hashBytes])
}

// join concatenates parts with '-' and falls back to a truncated name with a
// hash suffix when the result does not fit in limit.
func join(limit int, parts ...string) string {
	name := strings.Join(parts, "-")
	if len(name) <= limit {
		return name
	}
	hash := hashParts(parts)
	return name[:limit-len(truncationMark)-len(hash)] + truncationMark + hash
}

// ObjectName is the name of the per role-group StatefulSet and ConfigMap.
func ObjectName(cluster, role, group string) string {
	return join(StatefulSetNameLimit, cluster, role, group)
}

// HeadlessServiceName is the governing service of the role-group StatefulSet.
func HeadlessServiceName(cluster, role, group string) string {
	return join(ServiceNameLimit, ObjectName(cluster, role, group), "headless")
}

// MetricsServiceName exposes the metrics port of a role group.
func MetricsServiceName(cluster, role, group string) string {
	return join(ServiceNameLimit, ObjectName(cluster, role, group), "metrics")
}

// RoleServiceName is the cluster-wide service clients connect to.
func RoleServiceName(cluster string) string {
	return cluster
}

// PDBName is the role PodDisruptionBudget.
func PDBName(cluster, role string) string {
	return join(ServiceNameLimit, cluster, role)
}

// DiscoveryName is the in-cluster discovery ConfigMap.
func DiscoveryName(cluster string) string {
	return cluster
}

// ExternalDiscoveryName is the discovery ConfigMap with externally reachable addresses.
func ExternalDiscoveryName(cluster string) string {
	return join(ServiceNameLimit, cluster, "external")
}

// MetastoreObjectName is ObjectName for the metastore role.
func MetastoreObjectName(cluster, group string) string {
	return ObjectName(cluster, hivev1alpha1.RoleMetastore, group)
}
