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
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/format"
	"github.com/hive-operator/internal/merge"
)

// buildConfigMap renders the configuration files of one role group.
func buildConfigMap(hc *hivev1alpha1.HiveCluster, mc *merge.MergedConfig) (*corev1.ConfigMap, error) {
	name := MetastoreObjectName(hc.Name, mc.RoleGroup())
	data := mc.Files()

	if mc.Logging().EnableVectorAgent {
		vector, err := format.VectorConfig(format.VectorIdentity{
			Namespace: hc.Namespace,
			Cluster:   hc.Name,
			Role:      mc.Role(),
			RoleGroup: mc.RoleGroup(),
			LogDir:    hivev1alpha1.LogDir,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to render vector config for %s: %w", name, err)
		}
		data[hivev1alpha1.VectorConfigFile] = vector
	}

	return &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: objectMeta(hc, name, Labels(hc.Name, mc.Role(), mc.RoleGroup(), hc.Spec.Image.ProductVersion)),
		Data:       data,
	}, nil
}
