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
	"sort"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// Labels returns the recommended labels of an object of a role group.
// An empty group yields the role labels.
func Labels(cluster, role, group, version string) map[string]string {
	labels := SelectorLabels(cluster, role, group)
	labels[hivev1alpha1.LabelManagedBy] = hivev1alpha1.OperatorName
	if version != "" {
		labels[hivev1alpha1.LabelVersion] = version
	}
	return labels
}

// SelectorLabels are the immutable labels used in selectors.
func SelectorLabels(cluster, role, group string) map[string]string {
	labels := map[string]string{
		hivev1alpha1.LabelName:     hivev1alpha1.AppName,
		hivev1alpha1.LabelInstance: cluster,
	}
	if role != "" {
		labels[hivev1alpha1.LabelComponent] = role
	}
	if group != "" {
		labels[hivev1alpha1.LabelRoleGroup] = group
	}
	return labels
}

// OwnershipLabels select every object the operator manages for a cluster.
func OwnershipLabels(cluster string) map[string]string {
	return map[string]string{
		hivev1alpha1.LabelInstance:  cluster,
		hivev1alpha1.LabelManagedBy: hivev1alpha1.OperatorName,
	}
}

// MergeLabels returns a new map with the entries of every map, later maps winning.
func MergeLabels(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
