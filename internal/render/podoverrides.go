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
	"encoding/json"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/util/strategicpatch"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
)

// applyPodOverrides applies the strategic merge patches in order and then
// restores what the renderer owns. Overrides may add to or change managed
// fields but never remove them.
func applyPodOverrides(base corev1.PodTemplateSpec, patches []runtime.RawExtension, selector map[string]string) (corev1.PodTemplateSpec, error) {
	if len(patches) == 0 {
		return base, nil
	}

	doc, err := json.Marshal(base)
	if err != nil {
		return base, err
	}
	for i, patch := range patches {
		doc, err = strategicpatch.StrategicMergePatch(doc, patch.Raw, corev1.PodTemplateSpec{})
		if err != nil {
			return base, service.NewValidationError("podOverrides", "patch %d cannot be applied: %v", i, err)
		}
	}

	var out corev1.PodTemplateSpec
	if err := json.Unmarshal(doc, &out); err != nil {
		return base, service.NewValidationError("podOverrides", "patched pod template is invalid: %v", err)
	}

	restoreManaged(&out, &base, selector)
	return out, nil
}

func restoreManaged(out, base *corev1.PodTemplateSpec, selector map[string]string) {
	if out.Labels == nil {
		out.Labels = map[string]string{}
	}
	for k, v := range selector {
		out.Labels[k] = v
	}
	if out.Annotations == nil {
		out.Annotations = map[string]string{}
	}
	out.Annotations[hivev1alpha1.AnnotationConfigHash] = base.Annotations[hivev1alpha1.AnnotationConfigHash]

	out.Spec.Volumes = upsertByName(out.Spec.Volumes, base.Spec.Volumes,
		func(v corev1.Volume) string { return v.Name })
	if out.Spec.SecurityContext == nil {
		out.Spec.SecurityContext = base.Spec.SecurityContext
	}

	for _, managed := range base.Spec.Containers {
		idx := -1
		for i := range out.Spec.Containers {
			if out.Spec.Containers[i].Name == managed.Name {
				idx = i
				break
			}
		}
		if idx < 0 {
			out.Spec.Containers = append(out.Spec.Containers, managed)
			continue
		}
		restoreContainer(&out.Spec.Containers[idx], managed)
	}
}

func restoreContainer(c *corev1.Container, managed corev1.Container) {
	c.VolumeMounts = upsertByName(c.VolumeMounts, managed.VolumeMounts,
		func(m corev1.VolumeMount) string { return m.Name })
	c.Ports = upsertByName(c.Ports, managed.Ports,
		func(p corev1.ContainerPort) string { return p.Name })
	c.Env = upsertByName(c.Env, managed.Env,
		func(e corev1.EnvVar) string { return e.Name })

	if c.Image == "" {
		c.Image = managed.Image
	}
	if len(c.Command) == 0 {
		c.Command = managed.Command
	}
	if len(c.Args) == 0 {
		c.Args = managed.Args
	}
	if c.ReadinessProbe == nil {
		c.ReadinessProbe = managed.ReadinessProbe
	}
	if c.LivenessProbe == nil {
		c.LivenessProbe = managed.LivenessProbe
	}
	if c.SecurityContext == nil {
		c.SecurityContext = managed.SecurityContext
	}
	c.Resources.Limits = restoreResources(c.Resources.Limits, managed.Resources.Limits)
	c.Resources.Requests = restoreResources(c.Resources.Requests, managed.Resources.Requests)
}

// restoreResources puts back the managed resource names missing from have.
// Values set by an override are kept.
func restoreResources(have, managed corev1.ResourceList) corev1.ResourceList {
	if len(managed) == 0 {
		return have
	}
	if have == nil {
		have = corev1.ResourceList{}
	}
	for name, q := range managed {
		if _, ok := have[name]; !ok {
			have[name] = q.DeepCopy()
		}
	}
	return have
}

// upsertByName replaces the items of have that share a name with managed,
// drops duplicates of managed names and appends the managed items that are
// missing.
func upsertByName[T any](have, managed []T, name func(T) string) []T {
	byName := make(map[string]T, len(managed))
	for _, item := range managed {
		byName[name(item)] = item
	}

	out := make([]T, 0, len(have)+len(managed))
	seen := map[string]bool{}
	for _, item := range have {
		n := name(item)
		m, ok := byName[n]
		if !ok {
			out = append(out, item)
			continue
		}
		if !seen[n] {
			seen[n] = true
			out = append(out, m)
		}
	}
	for _, item := range managed {
		if !seen[name(item)] {
			out = append(out, item)
		}
	}
	return out
}
