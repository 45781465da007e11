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

package render

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/merge"
	"github.com/hive-operator/internal/service"
)

// Input is everything the renderer needs for one cluster.
type Input struct {
	Cluster *hivev1alpha1.HiveCluster

	// Groups holds one merged configuration per role group, sorted by group name
	Groups []*merge.MergedConfig

	// Resolved are the adapter contributions. Nil means none.
	Resolved *adapter.Resolved

	// ExternalAddresses are host:port pairs under which the role service is
	// reachable from outside. Only used for external exposure classes.
	ExternalAddresses []string
}

// DesiredResourceSet is the complete rendered state of a cluster.
type DesiredResourceSet struct {
	// Objects are in a deterministic order
	Objects  []client.Object
	Warnings []service.UnsupportedConfigurationWarning
}

// Render builds every object of the cluster. The same input always yields
// byte-identical objects.
func Render(in Input) (*DesiredResourceSet, error) {
	hc := in.Cluster
	if hc == nil {
		return nil, fmt.Errorf("render: cluster is required")
	}
	resolved := in.Resolved
	if resolved == nil {
		resolved = &adapter.Resolved{}
	}

	set := &DesiredResourceSet{}
	warned := embeddedReplicaWarning(hc, in.Groups)

	for _, mc := range in.Groups {
		cm, err := buildConfigMap(hc, mc)
		if err != nil {
			return nil, err
		}
		configHash, err := contentHash(cm.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to hash ConfigMap %s: %w", cm.Name, err)
		}
		sts, err := buildStatefulSet(hc, mc, resolved, configHash)
		if err != nil {
			return nil, err
		}
		if warned != "" && sts.Spec.Replicas != nil && *sts.Spec.Replicas > 0 {
			sts.Annotations[hivev1alpha1.AnnotationUnsupportedConfiguration] = warned
			set.Warnings = append(set.Warnings, service.UnsupportedConfigurationWarning{
				Object:  "StatefulSet/" + sts.Name,
				Message: warned,
			})
		}
		set.Objects = append(set.Objects,
			cm,
			sts,
			buildHeadlessService(hc, mc.RoleGroup()),
			buildMetricsService(hc, mc.RoleGroup()),
		)
	}

	set.Objects = append(set.Objects, buildRoleService(hc))
	if pdb := buildPDB(hc); pdb != nil {
		set.Objects = append(set.Objects, pdb)
	}
	set.Objects = append(set.Objects, buildDiscovery(hc))
	if ext := buildExternalDiscovery(hc, in.ExternalAddresses); ext != nil {
		set.Objects = append(set.Objects, ext)
	}

	for _, obj := range set.Objects {
		if err := setHashAnnotation(obj); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// DiscoveryRecords returns the discovery ConfigMaps of the set.
func (s *DesiredResourceSet) DiscoveryRecords() []*corev1.ConfigMap {
	var out []*corev1.ConfigMap
	for _, obj := range s.Objects {
		cm, ok := obj.(*corev1.ConfigMap)
		if ok && cm.Data[hivev1alpha1.DiscoveryKeyHive] != "" {
			out = append(out, cm)
		}
	}
	return out
}

// DiscoveryHash is a SHA-256 over the contents of every discovery record.
func (s *DesiredResourceSet) DiscoveryHash() string {
	h := sha256.New()
	for _, cm := range s.DiscoveryRecords() {
		h.Write([]byte(cm.Name))
		h.Write([]byte{0})
		h.Write([]byte(cm.Data[hivev1alpha1.DiscoveryKeyHive]))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// embeddedReplicaWarning returns a message when an embedded database would be
// shared by more than one metastore replica.
func embeddedReplicaWarning(hc *hivev1alpha1.HiveCluster, groups []*merge.MergedConfig) string {
	if !hc.Spec.ClusterConfig.Database.Kind.IsEmbedded() || hc.IsStopped() {
		return ""
	}
	var total int32
	for _, mc := range groups {
		total += mc.Replicas()
	}
	if total <= 1 {
		return ""
	}
	return fmt.Sprintf("%d metastore replicas with an embedded %s database do not share state",
		total, hc.Spec.ClusterConfig.Database.Kind)
}

// contentHash digests any JSON-encodable value
func contentHash(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// setHashAnnotation stores the content hash of obj on obj. The hash excludes
// the annotation itself.
func setHashAnnotation(obj client.Object) error {
	annotations := obj.GetAnnotations()
	delete(annotations, hivev1alpha1.AnnotationConfigHash)
	obj.SetAnnotations(annotations)

	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to hash %s: %w", obj.GetName(), err)
	}
	sum := sha256.Sum256(data)

	if annotations == nil {
		annotations = map[string]string{}
	}
	annotations[hivev1alpha1.AnnotationConfigHash] = hex.EncodeToString(sum[:])
	obj.SetAnnotations(annotations)
	return nil
}

// ObjectHash returns the content hash annotation of obj.
func ObjectHash(obj client.Object) string {
	return obj.GetAnnotations()[hivev1alpha1.AnnotationConfigHash]
}

func objectMeta(hc *hivev1alpha1.HiveCluster, name string, labels map[string]string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:        name,
		Namespace:   hc.Namespace,
		Labels:      labels,
		Annotations: map[string]string{},
	}
}
