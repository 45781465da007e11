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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	// Metric namespace
	namespace = "hive_operator"

	// Label names
	labelCluster   = "cluster"
	labelNamespace = "namespace"
	labelResult    = "result"
	labelKind      = "kind"
	labelOperation = "operation"
	labelStatus    = "status"
	labelProbe     = "probe"
)

// Status values
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Reconcile results
const (
	ResultSuccess    = "success"
	ResultInvalid    = "invalid"
	ResultUnresolved = "unresolved"
	ResultError      = "error"
	ResultPaused     = "paused"
	ResultDeleted    = "deleted"
	ResultDegraded   = "degraded"
)

// Operation values
const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

var (
	// Reconcile metrics

	// ReconcileTotal tracks reconciliations by result
	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_total",
			Help:      "Total number of HiveCluster reconciliations by result",
		},
		[]string{labelResult, labelNamespace},
	)

	// ReconcileDurationSeconds tracks the duration of reconciliations
	ReconcileDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "reconcile_duration_seconds",
			Help:      "Duration of HiveCluster reconciliations in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{labelResult, labelNamespace},
	)

	// Apply metrics

	// ApplyOperationsTotal tracks writes of owned objects
	ApplyOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "apply_operations_total",
			Help:      "Total number of owned object writes by kind, operation and status",
		},
		[]string{labelKind, labelOperation, labelStatus, labelNamespace},
	)

	// RetryAttemptsTotal tracks in-place retries of platform writes
	RetryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retry_attempts_total",
			Help:      "Total number of retried platform writes",
		},
		[]string{labelOperation, labelNamespace},
	)

	// OrphansDeletedTotal tracks owned objects deleted because they were no longer desired
	OrphansDeletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orphans_deleted_total",
			Help:      "Total number of orphaned owned objects deleted",
		},
		[]string{labelKind, labelNamespace},
	)

	// Per-cluster gauges

	// DesiredObjects is the size of the last rendered resource set
	DesiredObjects = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_desired_objects",
			Help:      "Number of objects in the last rendered resource set",
		},
		[]string{labelCluster, labelNamespace},
	)

	// ReadyReplicas is the total of ready metastore replicas
	ReadyReplicas = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_ready_replicas",
			Help:      "Number of ready metastore replicas across all role groups",
		},
		[]string{labelCluster, labelNamespace},
	)

	// ClusterDegraded indicates whether a cluster is degraded (1) or not (0)
	ClusterDegraded = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_degraded",
			Help:      "Whether the HiveCluster is degraded (1) or not (0)",
		},
		[]string{labelCluster, labelNamespace},
	)

	// DependencyReachable reports the last dependency probe, 1 when reachable
	DependencyReachable = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cluster_dependency_reachable",
			Help:      "Whether the last probe of a dependency succeeded (1) or not (0)",
		},
		[]string{labelCluster, labelProbe, labelNamespace},
	)
)

func init() {
	// Register all metrics with the controller-runtime metrics registry
	metrics.Registry.MustRegister(
		ReconcileTotal,
		ReconcileDurationSeconds,

		ApplyOperationsTotal,
		RetryAttemptsTotal,
		OrphansDeletedTotal,

		DesiredObjects,
		ReadyReplicas,
		ClusterDegraded,
		DependencyReachable,
	)
}

// RecordReconcile records a reconciliation with its result and duration
func RecordReconcile(result, namespace string, seconds float64) {
	ReconcileTotal.WithLabelValues(result, namespace).Inc()
	ReconcileDurationSeconds.WithLabelValues(result, namespace).Observe(seconds)
}

// RecordApply records a write of an owned object
func RecordApply(kind, operation, namespace, status string) {
	ApplyOperationsTotal.WithLabelValues(kind, operation, status, namespace).Inc()
}

// RecordRetries records the retries that preceded the final attempt
func RecordRetries(operation, namespace string, retries int) {
	if retries <= 0 {
		return
	}
	RetryAttemptsTotal.WithLabelValues(operation, namespace).Add(float64(retries))
}

// RecordOrphanDeleted records an orphan deletion
func RecordOrphanDeleted(kind, namespace string) {
	OrphansDeletedTotal.WithLabelValues(kind, namespace).Inc()
}

// SetClusterState sets the per-cluster gauges
func SetClusterState(cluster, namespace string, desiredObjects, readyReplicas int, degraded bool) {
	DesiredObjects.WithLabelValues(cluster, namespace).Set(float64(desiredObjects))
	ReadyReplicas.WithLabelValues(cluster, namespace).Set(float64(readyReplicas))
	ClusterDegraded.WithLabelValues(cluster, namespace).Set(boolValue(degraded))
}

// SetClusterDegraded sets only the Degraded gauge of a cluster
func SetClusterDegraded(cluster, namespace string, degraded bool) {
	ClusterDegraded.WithLabelValues(cluster, namespace).Set(boolValue(degraded))
}

// SetDependencyReachable records the outcome of one dependency probe
func SetDependencyReachable(cluster, probe, namespace string, reachable bool) {
	DependencyReachable.WithLabelValues(cluster, probe, namespace).Set(boolValue(reachable))
}

// DeleteClusterMetrics removes all per-cluster series of a deleted cluster
func DeleteClusterMetrics(cluster, namespace string) {
	DesiredObjects.DeleteLabelValues(cluster, namespace)
	ReadyReplicas.DeleteLabelValues(cluster, namespace)
	ClusterDegraded.DeleteLabelValues(cluster, namespace)
	DependencyReachable.DeletePartialMatch(prometheus.Labels{labelCluster: cluster, labelNamespace: namespace})
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
