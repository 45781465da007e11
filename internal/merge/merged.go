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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
)

// Resources are the resolved container resources.
type Resources struct {
	CPUMin      resource.Quantity
	CPUMax      resource.Quantity
	MemoryLimit resource.Quantity
}

// Logging is the resolved logging configuration.
type Logging struct {
	EnableVectorAgent bool
	RootLevel         string
	ConsoleLevel      string
	FileLevel         string
	Loggers           map[string]string
	// CustomConfigMap replaces the generated log4j2 file when set
	CustomConfigMap string
}

// MergedConfig is the fully resolved configuration of one role group.
// It is immutable: accessors return copies.
type MergedConfig struct {
	s    snapshot
	hash string
}

// snapshot holds every field and is what Hash digests.
type snapshot struct {
	Role             string                       `json:"role"`
	RoleGroup        string                       `json:"roleGroup"`
	Replicas         int32                        `json:"replicas"`
	Resources        Resources                    `json:"resources"`
	Env              []corev1.EnvVar              `json:"env"`
	Properties       map[string]map[string]string `json:"properties"`
	Files            map[string]string            `json:"files"`
	Logging          Logging                      `json:"logging"`
	JVMArgs          []string                     `json:"jvmArgs"`
	HeapSizeMiB      int64                        `json:"heapSizeMiB"`
	GracefulShutdown time.Duration                `json:"gracefulShutdown"`
	Affinity         *corev1.Affinity             `json:"affinity,omitempty"`
	PodOverrides     []runtime.RawExtension       `json:"podOverrides,omitempty"`
}

func newMergedConfig(s snapshot) (*MergedConfig, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	return &MergedConfig{s: s, hash: hex.EncodeToString(sum[:])}, nil
}

// Hash returns a stable digest of the whole configuration.
func (m *MergedConfig) Hash() string { return m.hash }

func (m *MergedConfig) Role() string      { return m.s.Role }
func (m *MergedConfig) RoleGroup() string { return m.s.RoleGroup }
func (m *MergedConfig) Replicas() int32   { return m.s.Replicas }

// Resources returns the resolved resources.
func (m *MergedConfig) Resources() Resources {
	return Resources{
		CPUMin:      m.s.Resources.CPUMin.DeepCopy(),
		CPUMax:      m.s.Resources.CPUMax.DeepCopy(),
		MemoryLimit: m.s.Resources.MemoryLimit.DeepCopy(),
	}
}

// Env returns the merged env vars sorted by name.
func (m *MergedConfig) Env() []corev1.EnvVar {
	out := make([]corev1.EnvVar, len(m.s.Env))
	for i := range m.s.Env {
		m.s.Env[i].DeepCopyInto(&out[i])
	}
	return out
}

// EnvValue returns the value of a merged env var.
func (m *MergedConfig) EnvValue(name string) (string, bool) {
	for _, e := range m.s.Env {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// Files returns the rendered file contents keyed by file name.
func (m *MergedConfig) Files() map[string]string {
	out := make(map[string]string, len(m.s.Files))
	for k, v := range m.s.Files {
		out[k] = v
	}
	return out
}

// File returns one rendered file.
func (m *MergedConfig) File(name string) (string, bool) {
	v, ok := m.s.Files[name]
	return v, ok
}

// Properties returns the pre-render properties per file.
func (m *MergedConfig) Properties() map[string]map[string]string {
	out := make(map[string]map[string]string, len(m.s.Properties))
	for file, kv := range m.s.Properties {
		c := make(map[string]string, len(kv))
		for k, v := range kv {
			c[k] = v
		}
		out[file] = c
	}
	return out
}

// Property returns one property of a file.
func (m *MergedConfig) Property(file, key string) (string, bool) {
	v, ok := m.s.Properties[file][key]
	return v, ok
}

// Logging returns the resolved logging configuration.
func (m *MergedConfig) Logging() Logging {
	l := m.s.Logging
	l.Loggers = make(map[string]string, len(m.s.Logging.Loggers))
	for k, v := range m.s.Logging.Loggers {
		l.Loggers[k] = v
	}
	return l
}

// JVMArgs returns every JVM argument: heap first, then operator arguments,
// then the effective override list.
func (m *MergedConfig) JVMArgs() []string {
	return append([]string(nil), m.s.JVMArgs...)
}

func (m *MergedConfig) HeapSizeMiB() int64 { return m.s.HeapSizeMiB }

func (m *MergedConfig) GracefulShutdown() time.Duration { return m.s.GracefulShutdown }

// Affinity returns a copy of the resolved affinity.
func (m *MergedConfig) Affinity() *corev1.Affinity {
	return m.s.Affinity.DeepCopy()
}

// PodOverrides returns the strategic merge patches in application order.
func (m *MergedConfig) PodOverrides() []runtime.RawExtension {
	out := make([]runtime.RawExtension, len(m.s.PodOverrides))
	for i := range m.s.PodOverrides {
		m.s.PodOverrides[i].DeepCopyInto(&out[i])
	}
	return out
}
