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
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DatabaseKind is the metastore backing database
// +kubebuilder:validation:Enum=embedded;derby;postgres;mysql;oracle;mssql
type DatabaseKind string

const (
	DatabaseKindEmbedded DatabaseKind = "embedded"
	DatabaseKindDerby    DatabaseKind = "derby"
	DatabaseKindPostgres DatabaseKind = "postgres"
	DatabaseKindMySQL    DatabaseKind = "mysql"
	DatabaseKindOracle   DatabaseKind = "oracle"
	DatabaseKindMSSQL    DatabaseKind = "mssql"
)

// IsValid reports whether k is a known database kind.
func (k DatabaseKind) IsValid() bool {
	switch k {
	case DatabaseKindEmbedded, DatabaseKindDerby, DatabaseKindPostgres,
		DatabaseKindMySQL, DatabaseKindOracle, DatabaseKindMSSQL:
		return true
	}
	return false
}

// IsEmbedded reports whether the database lives inside the metastore pod and
// therefore cannot be shared between replicas.
func (k DatabaseKind) IsEmbedded() bool {
	return k == DatabaseKindEmbedded || k == DatabaseKindDerby
}

// DriverClass returns the JDBC driver class name.
func (k DatabaseKind) DriverClass() string {
	switch k {
	case DatabaseKindPostgres:
		return "org.postgresql.Driver"
	case DatabaseKindMySQL:
		return "com.mysql.jdbc.Driver"
	case DatabaseKindOracle:
		return "oracle.jdbc.driver.OracleDriver"
	case DatabaseKindMSSQL:
		return "com.microsoft.sqlserver.jdbc.SQLServerDriver"
	default:
		return "org.apache.derby.jdbc.EmbeddedDriver"
	}
}

// SchemaToolType returns the --db-type value used by the metastore start script.
func (k DatabaseKind) SchemaToolType() string {
	if k.IsEmbedded() {
		return string(DatabaseKindDerby)
	}
	return string(k)
}

// ExposureClass selects how the metastore is reachable
// +kubebuilder:validation:Enum=cluster-internal;external-unstable;external-stable
type ExposureClass string

const (
	ExposureClusterInternal  ExposureClass = "cluster-internal"
	ExposureExternalUnstable ExposureClass = "external-unstable"
	ExposureExternalStable   ExposureClass = "external-stable"
)

// IsValid reports whether e is a known exposure class. Empty means the default.
func (e ExposureClass) IsValid() bool {
	switch e {
	case "", ExposureClusterInternal, ExposureExternalUnstable, ExposureExternalStable:
		return true
	}
	return false
}

// IsExternal reports whether the class makes the metastore reachable from outside the cluster.
func (e ExposureClass) IsExternal() bool {
	return e == ExposureExternalUnstable || e == ExposureExternalStable
}

// ServiceType maps the exposure class to a Service type.
func (e ExposureClass) ServiceType() corev1.ServiceType {
	switch e {
	case ExposureExternalUnstable:
		return corev1.ServiceTypeNodePort
	case ExposureExternalStable:
		return corev1.ServiceTypeLoadBalancer
	default:
		return corev1.ServiceTypeClusterIP
	}
}

// ImageSpec selects the metastore image
type ImageSpec struct {
	// ProductVersion is the Hive version, e.g. 4.0.1
	// +kubebuilder:validation:Required
	ProductVersion string `json:"productVersion"`

	// Repository overrides the default image repository
	// +optional
	Repository string `json:"repository,omitempty"`

	// Custom is a full image reference used verbatim
	// +optional
	Custom string `json:"custom,omitempty"`

	// +kubebuilder:default=IfNotPresent
	// +optional
	PullPolicy corev1.PullPolicy `json:"pullPolicy,omitempty"`

	// +optional
	PullSecrets []corev1.LocalObjectReference `json:"pullSecrets,omitempty"`
}

// DatabaseConnection configures the metastore database
type DatabaseConnection struct {
	// ConnectionString is the JDBC URL
	// +kubebuilder:validation:Required
	ConnectionString string `json:"connectionString"`

	// +kubebuilder:validation:Required
	Kind DatabaseKind `json:"kind"`

	// CredentialsSecret names a secret with username and password keys.
	// Required for all kinds except embedded databases.
	// +optional
	CredentialsSecret string `json:"credentialsSecret,omitempty"`
}

// ObjectStorageKind discriminates ObjectStorage
type ObjectStorageKind string

const (
	ObjectStorageNone  ObjectStorageKind = ""
	ObjectStorageS3    ObjectStorageKind = "s3"
	ObjectStorageGCS   ObjectStorageKind = "gcs"
	ObjectStorageAzure ObjectStorageKind = "azure"
)

// ObjectStorage is a tagged variant; at most one field may be set
type ObjectStorage struct {
	// +optional
	S3 *S3Storage `json:"s3,omitempty"`

	// +optional
	GCS *GCSStorage `json:"gcs,omitempty"`

	// +optional
	Azure *AzureStorage `json:"azure,omitempty"`
}

// Kind returns the discriminant. It returns the first set variant; validation
// rejects more than one.
func (o *ObjectStorage) Kind() ObjectStorageKind {
	switch {
	case o == nil:
		return ObjectStorageNone
	case o.S3 != nil:
		return ObjectStorageS3
	case o.GCS != nil:
		return ObjectStorageGCS
	case o.Azure != nil:
		return ObjectStorageAzure
	}
	return ObjectStorageNone
}

// S3Storage is either an inline connection or a reference to an S3Connection
type S3Storage struct {
	// +optional
	Inline *S3ConnectionSpec `json:"inline,omitempty"`

	// Reference names an S3Connection in the cluster namespace
	// +optional
	Reference string `json:"reference,omitempty"`
}

// GCSStorage configures Google Cloud Storage
type GCSStorage struct {
	// +kubebuilder:validation:Required
	Bucket string `json:"bucket"`

	// CredentialsSecret holds a service account key under key.json
	// +kubebuilder:validation:Required
	CredentialsSecret string `json:"credentialsSecret"`
}

// AzureStorage configures Azure Data Lake Storage
type AzureStorage struct {
	// +kubebuilder:validation:Required
	StorageAccount string `json:"storageAccount"`

	// +kubebuilder:validation:Required
	Container string `json:"container"`

	// CredentialsSecret holds the account key under accountKey
	// +kubebuilder:validation:Required
	CredentialsSecret string `json:"credentialsSecret"`
}

// Filesystem configures a distributed filesystem
type Filesystem struct {
	// +optional
	HDFS *HDFSFilesystem `json:"hdfs,omitempty"`
}

// HDFSFilesystem references an HDFS discovery ConfigMap
type HDFSFilesystem struct {
	// ConfigMap is the HDFS discovery ConfigMap with core-site.xml and hdfs-site.xml
	// +kubebuilder:validation:Required
	ConfigMap string `json:"configMap"`
}

// Authentication configures metastore authentication
type Authentication struct {
	// +optional
	Kerberos *KerberosAuthentication `json:"kerberos,omitempty"`
}

// KerberosAuthentication enables Kerberos using a secret class for keytabs
type KerberosAuthentication struct {
	// +kubebuilder:validation:Required
	SecretClass string `json:"secretClass"`

	// Realm is the expected Kerberos realm. When set it must match the realm
	// of a Kerberized HDFS.
	// +optional
	Realm string `json:"realm,omitempty"`
}

// Authorization configures metastore authorization
type Authorization struct {
	// +optional
	OPA *OPAAuthorization `json:"opa,omitempty"`
}

// OPAAuthorization references an OPA discovery ConfigMap
type OPAAuthorization struct {
	// +kubebuilder:validation:Required
	ConfigMap string `json:"configMap"`

	// Package is the rego package, defaults to hive
	// +optional
	Package string `json:"package,omitempty"`
}

// ClusterConfig is cluster-wide configuration
type ClusterConfig struct {
	// +kubebuilder:validation:Required
	Database DatabaseConnection `json:"database"`

	// +optional
	ObjectStorage *ObjectStorage `json:"objectStorage,omitempty"`

	// +optional
	Filesystem *Filesystem `json:"filesystem,omitempty"`

	// +optional
	Authentication *Authentication `json:"authentication,omitempty"`

	// +optional
	Authorization *Authorization `json:"authorization,omitempty"`

	// +kubebuilder:default=cluster-internal
	// +optional
	ExposureClass ExposureClass `json:"exposureClass,omitempty"`

	// VectorAggregatorConfigMapName names the discovery ConfigMap of the vector aggregator
	// +optional
	VectorAggregatorConfigMapName string `json:"vectorAggregatorConfigMapName,omitempty"`
}

// ClusterOperation controls lifecycle operations
type ClusterOperation struct {
	// Stopped scales all role groups to zero
	// +optional
	Stopped bool `json:"stopped,omitempty"`

	// ReconciliationPaused stops the operator from changing owned objects
	// +optional
	ReconciliationPaused bool `json:"reconciliationPaused,omitempty"`
}

// PodDisruptionBudgetConfig configures the role PDB
type PodDisruptionBudgetConfig struct {
	// +kubebuilder:default=true
	// +optional
	Enabled *bool `json:"enabled,omitempty"`

	// +kubebuilder:validation:Minimum=1
	// +optional
	MaxUnavailable *int32 `json:"maxUnavailable,omitempty"`
}

// RoleConfig is configuration that only applies at role level
type RoleConfig struct {
	// +optional
	PodDisruptionBudget *PodDisruptionBudgetConfig `json:"podDisruptionBudget,omitempty"`
}

// RoleGroupSpec is an independently scaled subset of a role
type RoleGroupSpec struct {
	CommonConfiguration `json:",inline"`

	// +kubebuilder:validation:Minimum=0
	// +optional
	Replicas *int32 `json:"replicas,omitempty"`
}

// MetastoreRoleSpec is the metastore role
type MetastoreRoleSpec struct {
	CommonConfiguration `json:",inline"`

	// +optional
	RoleConfig *RoleConfig `json:"roleConfig,omitempty"`

	// +kubebuilder:validation:MinProperties=1
	RoleGroups map[string]RoleGroupSpec `json:"roleGroups"`
}

// RoleGroupNames returns the role group names in sorted order.
func (r *MetastoreRoleSpec) RoleGroupNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.RoleGroups))
	for name := range r.RoleGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HiveClusterSpec defines the desired state of HiveCluster
type HiveClusterSpec struct {
	// +kubebuilder:validation:Required
	Image ImageSpec `json:"image"`

	// +kubebuilder:validation:Required
	ClusterConfig ClusterConfig `json:"clusterConfig"`

	// +optional
	ClusterOperation *ClusterOperation `json:"clusterOperation,omitempty"`

	// +kubebuilder:validation:Required
	Metastore *MetastoreRoleSpec `json:"metastore"`
}

// HiveClusterStatus defines the observed state of HiveCluster
type HiveClusterStatus struct {
	// Phase is the reconcile state machine position
	// +optional
	Phase Phase `json:"phase,omitempty"`

	// +optional
	Message string `json:"message,omitempty"`

	// DiscoveryHash is a digest of the published discovery records
	// +optional
	DiscoveryHash string `json:"discoveryHash,omitempty"`

	// +optional
	ObservedGeneration int64 `json:"observedGeneration,omitempty"`

	// ReconcileID is the id of the reconcile that last wrote this status
	// +optional
	ReconcileID string `json:"reconcileID,omitempty"`

	// +optional
	LastReconcileTime *metav1.Time `json:"lastReconcileTime,omitempty"`

	// +optional
	// +listType=map
	// +listMapKey=type
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=hive
// +kubebuilder:printcolumn:name="Version",type=string,JSONPath=`.spec.image.productVersion`
// +kubebuilder:printcolumn:name="Database",type=string,JSONPath=`.spec.clusterConfig.database.kind`
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
// +kubebuilder:printcolumn:name="Available",type=string,JSONPath=`.status.conditions[?(@.type=="Available")].status`
// +kubebuilder:printcolumn:name="Age",type=date,JSONPath=`.metadata.creationTimestamp`

// HiveCluster is the Schema for the hiveclusters API
type HiveCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   HiveClusterSpec   `json:"spec,omitempty"`
	Status HiveClusterStatus `json:"status,omitempty"`
}

// IsStopped reports whether the cluster should run zero replicas.
func (h *HiveCluster) IsStopped() bool {
	return h.Spec.ClusterOperation != nil && h.Spec.ClusterOperation.Stopped
}

// IsReconciliationPaused reports whether reconciliation is paused via clusterOperation.
func (h *HiveCluster) IsReconciliationPaused() bool {
	return h.Spec.ClusterOperation != nil && h.Spec.ClusterOperation.ReconciliationPaused
}

// KerberosSecretClass returns the Kerberos secret class, or "" when Kerberos is disabled.
func (h *HiveCluster) KerberosSecretClass() string {
	if a := h.Spec.ClusterConfig.Authentication; a != nil && a.Kerberos != nil {
		return a.Kerberos.SecretClass
	}
	return ""
}

// HasKerberos reports whether Kerberos authentication is configured.
func (h *HiveCluster) HasKerberos() bool {
	return h.KerberosSecretClass() != ""
}

// ExposureClass returns the configured exposure class with the default applied.
func (h *HiveCluster) ExposureClass() ExposureClass {
	if h.Spec.ClusterConfig.ExposureClass == "" {
		return ExposureClusterInternal
	}
	return h.Spec.ClusterConfig.ExposureClass
}

// HDFSConfigMap returns the HDFS discovery ConfigMap name, or "".
func (h *HiveCluster) HDFSConfigMap() string {
	if fs := h.Spec.ClusterConfig.Filesystem; fs != nil && fs.HDFS != nil {
		return fs.HDFS.ConfigMap
	}
	return ""
}

// IsHive3 reports whether the product version is a Hive 3 release.
func (h *HiveCluster) IsHive3() bool {
	return strings.HasPrefix(h.Spec.Image.ProductVersion, "3.")
}

// ImageRef returns the container image reference.
func (h *HiveCluster) ImageRef() string {
	if h.Spec.Image.Custom != "" {
		return h.Spec.Image.Custom
	}
	repo := h.Spec.Image.Repository
	if repo == "" {
		repo = DefaultImageRepository
	}
	return fmt.Sprintf("%s:%s", repo, h.Spec.Image.ProductVersion)
}

// +kubebuilder:object:root=true

// HiveClusterList contains a list of HiveCluster
type HiveClusterList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []HiveCluster `json:"items"`
}

func init() {
	SchemeBuilder.Register(&HiveCluster{}, &HiveClusterList{})
}
