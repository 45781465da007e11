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
	"context"

	corev1 "k8s.io/api/core/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/format"
)

func (r *Resolver) resolveVector(ctx context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	if !VectorRequested(hc) {
		return nil
	}
	name := hc.Spec.ClusterConfig.VectorAggregatorConfigMapName
	if _, err := r.secrets.GetConfigMapKey(ctx, hc.Namespace, name, hivev1alpha1.VectorAggregatorKey); err != nil {
		return err
	}
	out.ReferencedConfigMaps = append(out.ReferencedConfigMaps, name)
	out.VectorEnv = []corev1.EnvVar{{
		Name: format.VectorAddressEnv,
		ValueFrom: &corev1.EnvVarSource{
			ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: name},
				Key:                  hivev1alpha1.VectorAggregatorKey,
			},
		},
	}}
	return nil
}

// resolveLogConfigMaps checks that every custom log configuration exists
func (r *Resolver) resolveLogConfigMaps(ctx context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	for _, name := range CustomLogConfigMaps(hc) {
		if _, err := r.secrets.GetConfigMap(ctx, hc.Namespace, name); err != nil {
			return err
		}
		out.ReferencedConfigMaps = append(out.ReferencedConfigMaps, name)
	}
	return nil
}

// VectorRequested reports whether any role group ends up with the vector
// agent enabled.
func VectorRequested(hc *hivev1alpha1.HiveCluster) bool {
	role := hc.Spec.Metastore
	if role == nil {
		return false
	}
	roleValue := vectorFlag(role.Config)
	for _, name := range role.RoleGroupNames() {
		v := vectorFlag(role.RoleGroups[name].Config)
		if v == nil {
			v = roleValue
		}
		if v != nil && *v {
			return true
		}
	}
	return false
}

func vectorFlag(f *hivev1alpha1.MetastoreConfigFragment) *bool {
	if f == nil || f.Logging == nil {
		return nil
	}
	return f.Logging.EnableVectorAgent
}

// CustomLogConfigMaps returns the custom log ConfigMaps named at role or group level.
func CustomLogConfigMaps(hc *hivev1alpha1.HiveCluster) []string {
	role := hc.Spec.Metastore
	if role == nil {
		return nil
	}
	var names []string
	add := func(f *hivev1alpha1.MetastoreConfigFragment) {
		if f != nil && f.Logging != nil && f.Logging.CustomConfigMap != nil && *f.Logging.CustomConfigMap != "" {
			names = append(names, *f.Logging.CustomConfigMap)
		}
	}
	add(role.Config)
	for _, name := range role.RoleGroupNames() {
		add(role.RoleGroups[name].Config)
	}
	return uniqueSorted(names)
}
