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

// Package hivecluster provides the HiveCluster feature module. It turns a
// cluster spec into StatefulSets, Services, ConfigMaps and a
// PodDisruptionBudget and keeps the observed objects converged on them.
package hivecluster

import (
	"context"

	"sigs.k8s.io/controller-runtime/pkg/client"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/render"
	"github.com/hive-operator/internal/service/drift"
)

// API defines the public interface for the hivecluster module.
type API interface {
	// Sync renders the desired state of hc and applies the difference to the
	// observed objects. onPhase is called with every phase the pass enters.
	Sync(ctx context.Context, hc *hivev1alpha1.HiveCluster, onPhase func(hivev1alpha1.Phase)) (*SyncResult, error)

	// Probe checks the database and object storage dependencies.
	Probe(ctx context.Context, hc *hivev1alpha1.HiveCluster, resolved *adapter.Resolved) *ProbeReport

	// SaveStatus persists the status of hc.
	SaveStatus(ctx context.Context, hc *hivev1alpha1.HiveCluster) error

	// Cleanup releases every per-cluster resource held by the operator.
	Cleanup(ctx context.Context, hc *hivev1alpha1.HiveCluster)
}

// SyncResult is the outcome of one pass.
type SyncResult struct {
	Resolved *adapter.Resolved

	// Set is the rendered desired state
	Set *render.DesiredResourceSet

	// Plan is the comparison of desired and observed objects
	Plan *drift.Plan

	// Applied counts the objects written, Deleted the orphans removed
	Applied int
	Deleted int

	Readiness Readiness
}

// Changed reports whether the pass wrote or deleted anything.
func (r *SyncResult) Changed() bool {
	return r != nil && r.Applied+r.Deleted > 0
}

// Readiness summarizes the StatefulSets of a cluster.
type Readiness struct {
	StatefulSets    int
	DesiredReplicas int32
	ReadyReplicas   int32

	// NotReady names the StatefulSets still rolling out
	NotReady []string
}

// Ready reports whether every StatefulSet has its replicas ready.
func (r Readiness) Ready() bool {
	return len(r.NotReady) == 0
}

// RepositoryInterface defines the platform operations of the module.
type RepositoryInterface interface {
	// Apply creates or updates obj, owned by hc.
	Apply(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error

	// Delete removes an observed object.
	Delete(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error

	// ListObserved returns the objects of the managed kinds labeled for hc.
	ListObserved(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]client.Object, error)

	// ExternalAddresses returns the host:port pairs of the role Service, if exposed externally.
	ExternalAddresses(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]string, error)

	// UpdateStatus writes the status subresource of hc.
	UpdateStatus(ctx context.Context, hc *hivev1alpha1.HiveCluster) error
}

// Ensure Repository implements RepositoryInterface.
var _ RepositoryInterface = (*Repository)(nil)
