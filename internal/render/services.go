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
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

func servicePort(name string, port int32) corev1.ServicePort {
	return corev1.ServicePort{
		Name:       name,
		Port:       port,
		TargetPort: intstr.FromString(name),
		Protocol:   corev1.ProtocolTCP,
	}
}

func buildHeadlessService(hc *hivev1alpha1.HiveCluster, group string) *corev1.Service {
	role := hivev1alpha1.RoleMetastore
	return &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: objectMeta(hc, HeadlessServiceName(hc.Name, role, group), Labels(hc.Name, role, group, hc.Spec.Image.ProductVersion)),
		Spec: corev1.ServiceSpec{
			Type:                     corev1.ServiceTypeClusterIP,
			ClusterIP:                corev1.ClusterIPNone,
			PublishNotReadyAddresses: true,
			Selector:                 SelectorLabels(hc.Name, role, group),
			Ports:                    []corev1.ServicePort{servicePort(hivev1alpha1.HivePortName, hivev1alpha1.HivePort)},
		},
	}
}

func buildMetricsService(hc *hivev1alpha1.HiveCluster, group string) *corev1.Service {
	role := hivev1alpha1.RoleMetastore
	labels := Labels(hc.Name, role, group, hc.Spec.Image.ProductVersion)
	labels["prometheus.io/scrape"] = "true"
	return &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: objectMeta(hc, MetricsServiceName(hc.Name, role, group), labels),
		Spec: corev1.ServiceSpec{
			Type:                     corev1.ServiceTypeClusterIP,
			ClusterIP:                corev1.ClusterIPNone,
			PublishNotReadyAddresses: true,
			Selector:                 SelectorLabels(hc.Name, role, group),
			Ports:                    []corev1.ServicePort{servicePort(hivev1alpha1.MetricsPortName, hivev1alpha1.MetricsPort)},
		},
	}
}

// buildRoleService selects the pods of every role group.
func buildRoleService(hc *hivev1alpha1.HiveCluster) *corev1.Service {
	role := hivev1alpha1.RoleMetastore
	svc := &corev1.Service{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Service"},
		ObjectMeta: objectMeta(hc, RoleServiceName(hc.Name), Labels(hc.Name, role, "", hc.Spec.Image.ProductVersion)),
		Spec: corev1.ServiceSpec{
			Type:     hc.ExposureClass().ServiceType(),
			Selector: SelectorLabels(hc.Name, role, ""),
			Ports:    []corev1.ServicePort{servicePort(hivev1alpha1.HivePortName, hivev1alpha1.HivePort)},
		},
	}
	if svc.Spec.Type != corev1.ServiceTypeClusterIP {
		svc.Spec.ExternalTrafficPolicy = corev1.ServiceExternalTrafficPolicyLocal
	}
	return svc
}
