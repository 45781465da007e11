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

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
	"k8s.io/utils/ptr"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/merge"
)

// Container and volume names managed by the renderer
const (
	ContainerHive   = "hive"
	ContainerVector = "vector"

	VolumeConfigMount    = "config-mount"
	VolumeConfig         = "config"
	VolumeLog            = "log"
	VolumeLogConfigMount = "log-config-mount"
)

const (
	stackableUID int64 = 1000
	stackableGID int64 = 0

	logVolumeSize = "33Mi"
)

var shellCommand = []string{"/bin/bash", "-x", "-euo", "pipefail", "-c"}

// startCommand prepares the writable config dir and starts the metastore.
func startCommand(hc *hivev1alpha1.HiveCluster, resolved *adapter.Resolved) string {
	cmds := []string{
		fmt.Sprintf("cp -RL %s/* %s", hivev1alpha1.ConfigMountDir, hivev1alpha1.ConfigDir),
		fmt.Sprintf("cp -RL %s/%s %s/%s",
			hivev1alpha1.LogConfigMountDir, hivev1alpha1.Log4j2Properties,
			hivev1alpha1.ConfigDir, hivev1alpha1.Log4j2Properties),
		fmt.Sprintf("keytool -importkeystore -srckeystore %s -srcstoretype jks -srcstorepass %s "+
			"-destkeystore %s -deststoretype pkcs12 -deststorepass %s -noprompt",
			hivev1alpha1.SystemTrustStore, hivev1alpha1.SystemTrustStorePW,
			hivev1alpha1.TrustStore, hivev1alpha1.TrustStorePassword),
	}
	cmds = append(cmds, resolved.StartCommands...)
	cmds = append(cmds, fmt.Sprintf("bin/start-metastore --config %s --db-type %s --hive-bin-dir bin",
		hivev1alpha1.ConfigDir, hc.Spec.ClusterConfig.Database.Kind.SchemaToolType()))
	return strings.Join(cmds, " && ")
}

func hiveResources(mc *merge.MergedConfig) corev1.ResourceRequirements {
	r := mc.Resources()
	return corev1.ResourceRequirements{
		Requests: corev1.ResourceList{
			corev1.ResourceCPU:    r.CPUMin,
			corev1.ResourceMemory: r.MemoryLimit,
		},
		Limits: corev1.ResourceList{
			corev1.ResourceCPU:    r.CPUMax,
			corev1.ResourceMemory: r.MemoryLimit,
		},
	}
}

func tcpProbe(initialDelay, period int32) *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			TCPSocket: &corev1.TCPSocketAction{Port: intstr.FromString(hivev1alpha1.HivePortName)},
		},
		InitialDelaySeconds: initialDelay,
		PeriodSeconds:       period,
	}
}

func hiveContainer(hc *hivev1alpha1.HiveCluster, mc *merge.MergedConfig, resolved *adapter.Resolved) corev1.Container {
	env := mc.Env()
	env = append(env, resolved.Env...)

	mounts := []corev1.VolumeMount{
		{Name: VolumeConfigMount, MountPath: hivev1alpha1.ConfigMountDir},
		{Name: VolumeConfig, MountPath: hivev1alpha1.ConfigDir},
		{Name: VolumeLog, MountPath: hivev1alpha1.LogDir},
		{Name: VolumeLogConfigMount, MountPath: hivev1alpha1.LogConfigMountDir},
	}
	mounts = append(mounts, resolved.Mounts...)

	return corev1.Container{
		Name:            ContainerHive,
		Image:           hc.ImageRef(),
		ImagePullPolicy: hc.Spec.Image.PullPolicy,
		Command:         shellCommand,
		Args:            []string{startCommand(hc, resolved)},
		Env:             env,
		Ports: []corev1.ContainerPort{
			{Name: hivev1alpha1.HivePortName, ContainerPort: hivev1alpha1.HivePort, Protocol: corev1.ProtocolTCP},
			{Name: hivev1alpha1.MetricsPortName, ContainerPort: hivev1alpha1.MetricsPort, Protocol: corev1.ProtocolTCP},
		},
		Resources:      hiveResources(mc),
		ReadinessProbe: tcpProbe(10, 10),
		LivenessProbe:  tcpProbe(30, 10),
		VolumeMounts:   mounts,
	}
}

func vectorContainer(hc *hivev1alpha1.HiveCluster, resolved *adapter.Resolved) corev1.Container {
	return corev1.Container{
		Name:            ContainerVector,
		Image:           hc.ImageRef(),
		ImagePullPolicy: hc.Spec.Image.PullPolicy,
		Command:         shellCommand,
		Args: []string{fmt.Sprintf("vector --config %s/%s",
			hivev1alpha1.ConfigMountDir, hivev1alpha1.VectorConfigFile)},
		Env: append([]corev1.EnvVar(nil), resolved.VectorEnv...),
		Resources: corev1.ResourceRequirements{
			Requests: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("250m"),
				corev1.ResourceMemory: resource.MustParse("128Mi"),
			},
			Limits: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse("500m"),
				corev1.ResourceMemory: resource.MustParse("128Mi"),
			},
		},
		VolumeMounts: []corev1.VolumeMount{
			{Name: VolumeConfigMount, MountPath: hivev1alpha1.ConfigMountDir},
			{Name: VolumeLog, MountPath: hivev1alpha1.LogDir},
		},
	}
}

func configMapVolume(name, configMap string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: configMap},
			},
		},
	}
}

func podVolumes(mc *merge.MergedConfig, configMap string, resolved *adapter.Resolved) []corev1.Volume {
	logConfig := configMap
	if custom := mc.Logging().CustomConfigMap; custom != "" {
		logConfig = custom
	}
	logSize := resource.MustParse(logVolumeSize)

	volumes := []corev1.Volume{
		configMapVolume(VolumeConfigMount, configMap),
		{Name: VolumeConfig, VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{}}},
		{Name: VolumeLog, VolumeSource: corev1.VolumeSource{EmptyDir: &corev1.EmptyDirVolumeSource{SizeLimit: &logSize}}},
		configMapVolume(VolumeLogConfigMount, logConfig),
	}
	return append(volumes, resolved.Volumes...)
}

// buildStatefulSet renders the StatefulSet of one role group. configHash
// changes whenever the role-group ConfigMap does.
func buildStatefulSet(hc *hivev1alpha1.HiveCluster, mc *merge.MergedConfig, resolved *adapter.Resolved, configHash string) (*appsv1.StatefulSet, error) {
	role, group := mc.Role(), mc.RoleGroup()
	name := MetastoreObjectName(hc.Name, group)
	labels := Labels(hc.Name, role, group, hc.Spec.Image.ProductVersion)
	selector := SelectorLabels(hc.Name, role, group)

	replicas := mc.Replicas()
	if hc.IsStopped() {
		replicas = 0
	}

	containers := []corev1.Container{hiveContainer(hc, mc, resolved)}
	if mc.Logging().EnableVectorAgent {
		containers = append(containers, vectorContainer(hc, resolved))
	}

	template := corev1.PodTemplateSpec{
		ObjectMeta: metav1.ObjectMeta{
			Labels:      MergeLabels(labels),
			Annotations: map[string]string{hivev1alpha1.AnnotationConfigHash: configHash},
		},
		Spec: corev1.PodSpec{
			Containers:                    containers,
			Volumes:                       podVolumes(mc, name, resolved),
			Affinity:                      mc.Affinity(),
			ImagePullSecrets:              append([]corev1.LocalObjectReference(nil), hc.Spec.Image.PullSecrets...),
			TerminationGracePeriodSeconds: ptr.To(int64(mc.GracefulShutdown().Seconds())),
			SecurityContext: &corev1.PodSecurityContext{
				RunAsUser:  ptr.To(stackableUID),
				RunAsGroup: ptr.To(stackableGID),
				FSGroup:    ptr.To(stackableUID),
			},
		},
	}

	template, err := applyPodOverrides(template, mc.PodOverrides(), selector)
	if err != nil {
		return nil, err
	}

	return &appsv1.StatefulSet{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "StatefulSet"},
		ObjectMeta: objectMeta(hc, name, labels),
		Spec: appsv1.StatefulSetSpec{
			Replicas:            ptr.To(replicas),
			ServiceName:         HeadlessServiceName(hc.Name, role, group),
			Selector:            &metav1.LabelSelector{MatchLabels: selector},
			PodManagementPolicy: appsv1.ParallelPodManagement,
			UpdateStrategy: appsv1.StatefulSetUpdateStrategy{
				Type: appsv1.RollingUpdateStatefulSetStrategyType,
			},
			Template: template,
		},
	}, nil
}
