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
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// DefaultMaxUnavailable is the PDB budget when none is configured.
const DefaultMaxUnavailable int32 = 1

// buildPDB returns nil when the budget is disabled.
func buildPDB(hc *hivev1alpha1.HiveCluster) *policyv1.PodDisruptionBudget {
	maxUnavailable := DefaultMaxUnavailable
	if rc := hc.Spec.Metastore.RoleConfig; rc != nil && rc.PodDisruptionBudget != nil {
		pdb := rc.PodDisruptionBudget
		if pdb.Enabled != nil && !*pdb.Enabled {
			return nil
		}
		if pdb.MaxUnavailable != nil {
			maxUnavailable = *pdb.MaxUnavailable
		}
	}

	role := hivev1alpha1.RoleMetastore
	budget := intstr.FromInt32(maxUnavailable)
	return &policyv1.PodDisruptionBudget{
		TypeMeta:   metav1.TypeMeta{APIVersion: "policy/v1", Kind: "PodDisruptionBudget"},
		ObjectMeta: objectMeta(hc, PDBName(hc.Name, role), Labels(hc.Name, role, "", hc.Spec.Image.ProductVersion)),
		Spec: policyv1.PodDisruptionBudgetSpec{
			MaxUnavailable: &budget,
			Selector:       &metav1.LabelSelector{MatchLabels: SelectorLabels(hc.Name, role, "")},
		},
	}
}
