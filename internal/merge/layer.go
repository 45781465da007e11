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

// Package merge folds the layered HiveCluster configuration of one role group
// into a single immutable MergedConfig.
package merge

import (
	"k8s.io/apimachinery/pkg/runtime"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// LayerKind names a position in the precedence order.
type LayerKind string

const (
	LayerClusterDefaults    LayerKind = "cluster-defaults"
	LayerRoleConfig         LayerKind = "role-config"
	LayerRoleOverrides      LayerKind = "role-overrides"
	LayerRoleGroupConfig    LayerKind = "role-group-config"
	LayerRoleGroupOverrides LayerKind = "role-group-overrides"
)

// Layer is one level of the hierarchy. Later layers win.
type Layer struct {
	Kind LayerKind

	Config *hivev1alpha1.MetastoreConfigFragment

	EnvOverrides    map[string]string
	ConfigOverrides map[string]map[string]string
	// JVMArgumentOverrides replaces the list of every earlier layer when non-nil
	JVMArgumentOverrides []string
	PodOverrides         *runtime.RawExtension
}

// Target identifies the role group being merged.
type Target struct {
	Role      string
	RoleGroup string
	Replicas  int32
}

// RoleGroupLayers returns the five layers for one role group of the metastore
// role, starting with defaults.
func RoleGroupLayers(defaults Layer, role *hivev1alpha1.MetastoreRoleSpec, group hivev1alpha1.RoleGroupSpec) []Layer {
	defaults.Kind = LayerClusterDefaults
	return []Layer{
		defaults,
		{Kind: LayerRoleConfig, Config: role.Config},
		overridesLayer(LayerRoleOverrides, role.CommonConfiguration),
		{Kind: LayerRoleGroupConfig, Config: group.Config},
		overridesLayer(LayerRoleGroupOverrides, group.CommonConfiguration),
	}
}

func overridesLayer(kind LayerKind, c hivev1alpha1.CommonConfiguration) Layer {
	return Layer{
		Kind:                 kind,
		EnvOverrides:         c.EnvOverrides,
		ConfigOverrides:      c.ConfigOverrides,
		JVMArgumentOverrides: c.JVMArgumentOverrides,
		PodOverrides:         c.PodOverrides,
	}
}
