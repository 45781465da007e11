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

package merge

import (
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// Operator defaults
const (
	DefaultCPUMin           = "250m"
	DefaultCPUMax           = "1000m"
	DefaultMemoryLimit      = "768Mi"
	DefaultGracefulShutdown = 5 * time.Minute
	DefaultWarehouseDir     = "/stackable/warehouse"
	DefaultLogLevel         = hivev1alpha1.LogLevelInfo

	// AntiAffinityWeight spreads role-group pods across nodes when possible
	AntiAffinityWeight = 70
)

// DefaultConfig returns the operator defaults for a cluster. Every leaf is set.
func DefaultConfig(clusterName string) *hivev1alpha1.MetastoreConfigFragment {
	cpuMin := resource.MustParse(DefaultCPUMin)
	cpuMax := resource.MustParse(DefaultCPUMax)
	memory := resource.MustParse(DefaultMemoryLimit)

	return &hivev1alpha1.MetastoreConfigFragment{
		Resources: &hivev1alpha1.ResourcesFragment{
			CPU:    &hivev1alpha1.CPUFragment{Min: &cpuMin, Max: &cpuMax},
			Memory: &hivev1alpha1.MemoryFragment{Limit: &memory},
		},
		Logging: &hivev1alpha1.LoggingFragment{
			EnableVectorAgent: ptr.To(false),
			RootLevel:         ptr.To(DefaultLogLevel),
			ConsoleLevel:      ptr.To(DefaultLogLevel),
			FileLevel:         ptr.To(DefaultLogLevel),
			CustomConfigMap:   ptr.To(""),
		},
		WarehouseDir:            ptr.To(DefaultWarehouseDir),
		GracefulShutdownTimeout: &metav1.Duration{Duration: DefaultGracefulShutdown},
		Affinity:                DefaultAffinity(clusterName),
	}
}

// DefaultAffinity prefers spreading metastore pods over nodes.
func DefaultAffinity(clusterName string) *corev1.Affinity {
	return &corev1.Affinity{
		PodAntiAffinity: &corev1.PodAntiAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []corev1.WeightedPodAffinityTerm{{
				Weight: AntiAffinityWeight,
				PodAffinityTerm: corev1.PodAffinityTerm{
					LabelSelector: &metav1.LabelSelector{
						MatchLabels: map[string]string{
							hivev1alpha1.LabelName:      hivev1alpha1.AppName,
							hivev1alpha1.LabelInstance:  clusterName,
							hivev1alpha1.LabelComponent: hivev1alpha1.RoleMetastore,
						},
					},
					TopologyKey: corev1.LabelHostname,
				},
			}},
		},
	}
}

// DefaultSecurityProperties are the JVM security defaults.
func DefaultSecurityProperties() map[string]string {
	return map[string]string{
		"networkaddress.cache.ttl":          "30",
		"networkaddress.cache.negative.ttl": "0",
	}
}

// DefaultLayer builds the cluster-defaults layer. Properties resolved by the
// integration adapters are folded in on top of the operator defaults.
func DefaultLayer(clusterName string, adapterProperties map[string]map[string]string) Layer {
	props := map[string]map[string]string{
		hivev1alpha1.SecurityProperties: DefaultSecurityProperties(),
	}
	for file, kv := range adapterProperties {
		if props[file] == nil {
			props[file] = map[string]string{}
		}
		for k, v := range kv {
			props[file][k] = v
		}
	}
	return Layer{
		Kind:            LayerClusterDefaults,
		Config:          DefaultConfig(clusterName),
		ConfigOverrides: props,
	}
}
