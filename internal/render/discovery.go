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
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

func buildDiscovery(hc *hivev1alpha1.HiveCluster) *corev1.ConfigMap {
	address := fmt.Sprintf("thrift://%s.%s.svc.cluster.local:%d",
		RoleServiceName(hc.Name), hc.Namespace, hivev1alpha1.HivePort)
	return discoveryConfigMap(hc, DiscoveryName(hc.Name), address)
}

// buildExternalDiscovery returns nil unless the cluster is exposed externally
// and at least one address is known.
func buildExternalDiscovery(hc *hivev1alpha1.HiveCluster, addresses []string) *corev1.ConfigMap {
	if !hc.ExposureClass().IsExternal() || len(addresses) == 0 {
		return nil
	}
	uris := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		uris = append(uris, "thrift://"+addr)
	}
	return discoveryConfigMap(hc, ExternalDiscoveryName(hc.Name), strings.Join(uris, "\n"))
}

func discoveryConfigMap(hc *hivev1alpha1.HiveCluster, name, value string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "ConfigMap"},
		ObjectMeta: objectMeta(hc, name, Labels(hc.Name, hivev1alpha1.RoleMetastore, "", hc.Spec.Image.ProductVersion)),
		Data:       map[string]string{hivev1alpha1.DiscoveryKeyHive: value},
	}
}
