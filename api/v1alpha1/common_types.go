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

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
)

// Phase represents the reconcile state of a HiveCluster
type Phase string

const (
	PhaseIdle           Phase = "Idle"
	PhaseValidating     Phase = "Validating"
	PhaseMerging        Phase = "Merging"
	PhaseRendering      Phase = "Rendering"
	PhaseDiffing        Phase = "Diffing"
	PhaseApplying       Phase = "Applying"
	PhaseUpdatingStatus Phase = "UpdatingStatus"
	PhaseFailed         Phase = "Failed"
	PhasePaused         Phase = "Paused"
)

// LogLevel is a log4j2 level
// +kubebuilder:validation:Enum=TRACE;DEBUG;INFO;WARN;ERROR;FATAL;NONE
type LogLevel string

const (
	LogLevelTrace LogLevel = "TRACE"
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
	LogLevelNone  LogLevel = "NONE"
)

// IsValid reports whether the level is one log4j2 understands.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal, LogLevelNone:
		return true
	}
	return false
}

// CPUFragment defines the CPU request (min) and limit (max)
type CPUFragment struct {
	// +optional
	Min *resource.Quantity `json:"min,omitempty"`

	// +optional
	Max *resource.Quantity `json:"max,omitempty"`
}

// MemoryFragment defines the memory limit, also used as request
type MemoryFragment struct {
	// +optional
	Limit *resource.Quantity `json:"limit,omitempty"`
}

// ResourcesFragment holds container resources. Every leaf is optional so that
// an unset value falls through to a less specific layer.
type ResourcesFragment struct {
	// +optional
	CPU *CPUFragment `json:"cpu,omitempty"`

	// +optional
	Memory *MemoryFragment `json:"memory,omitempty"`
}

// LoggingFragment configures log4j2 for the metastore container
type LoggingFragment struct {
	// EnableVectorAgent adds a vector sidecar shipping logs to the aggregator
	// +optional
	EnableVectorAgent *bool `json:"enableVectorAgent,omitempty"`

	// +optional
	RootLevel *LogLevel `json:"rootLevel,omitempty"`

	// +optional
	ConsoleLevel *LogLevel `json:"consoleLevel,omitempty"`

	// +optional
	FileLevel *LogLevel `json:"fileLevel,omitempty"`

	// Loggers sets per-logger levels, merged by logger name across layers
	// +optional
	Loggers map[string]LogLevel `json:"loggers,omitempty"`

	// CustomConfigMap replaces the generated log4j2 configuration
	// +optional
	CustomConfigMap *string `json:"customConfigMap,omitempty"`
}

// MetastoreConfigFragment is the per-layer metastore configuration
type MetastoreConfigFragment struct {
	// +optional
	Resources *ResourcesFragment `json:"resources,omitempty"`

	// +optional
	Logging *LoggingFragment `json:"logging,omitempty"`

	// WarehouseDir sets hive.metastore.warehouse.dir
	// +optional
	WarehouseDir *string `json:"warehouseDir,omitempty"`

	// GracefulShutdownTimeout is the time period pods have to shut down, e.g. 30m
	// +optional
	GracefulShutdownTimeout *metav1.Duration `json:"gracefulShutdownTimeout,omitempty"`

	// +optional
	Affinity *corev1.Affinity `json:"affinity,omitempty"`
}

// CommonConfiguration is shared by the role and its role groups
type CommonConfiguration struct {
	// +optional
	Config *MetastoreConfigFragment `json:"config,omitempty"`

	// EnvOverrides sets environment variables, merged by name across layers
	// +optional
	EnvOverrides map[string]string `json:"envOverrides,omitempty"`

	// ConfigOverrides sets properties per rendered file, merged by key across layers
	// +optional
	ConfigOverrides map[string]map[string]string `json:"configOverrides,omitempty"`

	// JVMArgumentOverrides are extra JVM arguments; a later layer replaces the whole list
	// +optional
	JVMArgumentOverrides []string `json:"jvmArgumentOverrides,omitempty"`

	// PodOverrides is a strategic merge patch applied to the rendered pod template
	// +optional
	// +kubebuilder:pruning:PreserveUnknownFields
	// +kubebuilder:validation:Schemaless
	PodOverrides *runtime.RawExtension `json:"podOverrides,omitempty"`
}
