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

package hivecluster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/logging"
	"github.com/hive-operator/internal/metrics"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/service/drift"
	"github.com/hive-operator/internal/service/pipeline"
	"github.com/hive-operator/internal/shared/eventbus"
	"github.com/hive-operator/internal/storage"
	"github.com/hive-operator/internal/util"
)

// Handler contains the business logic of a reconcile pass.
type Handler struct {
	repo     RepositoryInterface
	pipeline *pipeline.Service
	eventBus eventbus.Bus
	probes   probeConfig
	logger   logr.Logger
}

// HandlerConfig holds dependencies for the handler.
type HandlerConfig struct {
	Repository RepositoryInterface
	Pipeline   *pipeline.Service
	EventBus   eventbus.Bus

	// ProbeDependencies enables Probe. Disabled probes report nothing.
	ProbeDependencies bool
	ProbeTimeout      util.TimeoutConfig
	ProbeRetry        util.RetryConfig

	// ProbeInterval is how long a report is reused for the same generation
	// and targets. Zero probes on every pass.
	ProbeInterval time.Duration

	// DatabaseProber and BucketProber default to the adapter and storage factories
	DatabaseProber func(adapter.DatabaseTarget) (adapter.Prober, error)
	BucketProber   func(context.Context, adapter.BucketTarget) (adapter.Prober, error)

	Logger logr.Logger
}

// NewHandler creates a new hivecluster handler.
func NewHandler(cfg HandlerConfig) *Handler {
	probes := probeConfig{
		enabled:  cfg.ProbeDependencies,
		timeouts: cfg.ProbeTimeout,
		retry:    cfg.ProbeRetry,
		database: cfg.DatabaseProber,
		bucket:   cfg.BucketProber,
		cache:    newReportCache(cfg.ProbeInterval),
	}
	if probes.database == nil {
		probes.database = adapter.NewDatabaseProber
	}
	if probes.bucket == nil {
		probes.bucket = storage.NewBucketProber
	}
	return &Handler{
		repo:     cfg.Repository,
		pipeline: cfg.Pipeline,
		eventBus: cfg.EventBus,
		probes:   probes,
		logger:   cfg.Logger,
	}
}

// Sync runs one pass: render, observe, diff, apply, delete orphans.
// On a failed write the partial result is returned with the error.
// Implements API.Sync
func (h *Handler) Sync(ctx context.Context, hc *hivev1alpha1.HiveCluster, onPhase func(hivev1alpha1.Phase)) (*SyncResult, error) {
	log := logf.FromContext(ctx).WithValues("hivecluster", hc.Name, "namespace", hc.Namespace)
	enter := func(p hivev1alpha1.Phase) {
		if onPhase != nil {
			onPhase(p)
		}
	}

	addresses, err := h.repo.ExternalAddresses(ctx, hc)
	if err != nil {
		return nil, fmt.Errorf("external addresses: %w", err)
	}

	run, err := h.pipeline.Run(ctx, hc, pipeline.Options{ExternalAddresses: addresses, OnPhase: enter})
	if err != nil {
		h.publishUnresolved(ctx, hc, err)
		return nil, err
	}
	for _, w := range run.Set.Warnings {
		h.publish(ctx, eventbus.NewUnsupportedConfiguration(hc.Name, hc.Namespace, w.Object, w.Message))
	}

	enter(hivev1alpha1.PhaseDiffing)
	observed, err := h.repo.ListObserved(ctx, hc)
	if err != nil {
		return nil, fmt.Errorf("list observed objects: %w", err)
	}
	detector := drift.NewService(&drift.Config{
		ForceResync: util.HasForceResyncAnnotation(hc),
		Logger:      log,
	})
	plan := detector.Detect(hc.Name, run.Set.Objects, observed)

	result := &SyncResult{Resolved: run.Resolved, Set: run.Set, Plan: plan}

	enter(hivev1alpha1.PhaseApplying)
	actions := make(map[string]drift.Action, len(plan.Result.Diffs))
	for _, d := range plan.Result.Diffs {
		actions[d.Key()] = d.Action
	}
	for _, obj := range plan.Apply {
		kind := obj.GetObjectKind().GroupVersionKind().Kind
		operation := metrics.OperationUpdate
		if actions[kind+"/"+obj.GetName()] == drift.ActionCreate {
			operation = metrics.OperationCreate
		}
		if err := h.repo.Apply(ctx, hc, obj); err != nil {
			metrics.RecordApply(kind, operation, hc.Namespace, metrics.StatusFailure)
			h.publishDegraded(ctx, hc, kind+"/"+obj.GetName(), err)
			return result, fmt.Errorf("apply %s/%s: %w", kind, obj.GetName(), err)
		}
		metrics.RecordApply(kind, operation, hc.Namespace, metrics.StatusSuccess)
		result.Applied++
		log.V(1).Info("Applied object", "kind", kind, "name", obj.GetName(), "operation", operation)
	}

	for _, obj := range plan.Delete {
		kind := obj.GetObjectKind().GroupVersionKind().Kind
		if err := h.repo.Delete(ctx, hc, obj); err != nil {
			metrics.RecordApply(kind, metrics.OperationDelete, hc.Namespace, metrics.StatusFailure)
			h.publishDegraded(ctx, hc, kind+"/"+obj.GetName(), err)
			return result, fmt.Errorf("delete orphan %s/%s: %w", kind, obj.GetName(), err)
		}
		metrics.RecordApply(kind, metrics.OperationDelete, hc.Namespace, metrics.StatusSuccess)
		metrics.RecordOrphanDeleted(kind, hc.Namespace)
		result.Deleted++
		log.Info("Deleted orphaned object", "kind", kind, "name", obj.GetName())
	}

	result.Readiness = readiness(run.Set.Objects, observed)
	metrics.SetClusterState(hc.Name, hc.Namespace, len(run.Set.Objects), int(result.Readiness.ReadyReplicas), false)

	h.publish(ctx, eventbus.NewClusterReconciled(hc.Name, hc.Namespace, logging.IDFromContext(ctx),
		plan.Result.Count(drift.ActionCreate), plan.Result.Count(drift.ActionUpdate), result.Deleted))
	return result, nil
}

// SaveStatus persists the status of hc.
// Implements API.SaveStatus
func (h *Handler) SaveStatus(ctx context.Context, hc *hivev1alpha1.HiveCluster) error {
	return h.repo.UpdateStatus(ctx, hc)
}

// Cleanup announces the deletion of hc. Per-cluster metrics are dropped by
// the ClusterDeleted subscriber, or directly when there is no event bus.
// Implements API.Cleanup
func (h *Handler) Cleanup(ctx context.Context, hc *hivev1alpha1.HiveCluster) {
	if h.eventBus == nil {
		metrics.DeleteClusterMetrics(hc.Name, hc.Namespace)
		return
	}
	if err := h.eventBus.Publish(ctx, eventbus.NewClusterDeleted(hc.Name, hc.Namespace)); err != nil {
		logf.FromContext(ctx).Error(err, "ClusterDeleted handlers failed")
	}
}

// OnClusterDeleted drops the metrics series and cached reports of the deleted cluster.
func (h *Handler) OnClusterDeleted(_ context.Context, event *eventbus.ClusterDeleted) error {
	cluster := event.Cluster()
	metrics.DeleteClusterMetrics(cluster.Name, cluster.Namespace)
	h.probes.cache.forget(types.NamespacedName{Namespace: cluster.Namespace, Name: cluster.Name})
	return nil
}

func (h *Handler) publish(ctx context.Context, event eventbus.Event) {
	if h.eventBus != nil {
		h.eventBus.PublishAsync(ctx, event)
	}
}

func (h *Handler) publishUnresolved(ctx context.Context, hc *hivev1alpha1.HiveCluster, err error) {
	var unresolved *service.UnresolvedReferenceError
	if errors.As(err, &unresolved) {
		h.publish(ctx, eventbus.NewReferenceUnresolved(hc.Name, hc.Namespace, unresolved.Kind, unresolved.Name))
	}
}

func (h *Handler) publishDegraded(ctx context.Context, hc *hivev1alpha1.HiveCluster, object string, err error) {
	var exhausted *service.RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		return
	}
	metrics.SetClusterDegraded(hc.Name, hc.Namespace, true)
	h.publish(ctx, eventbus.NewClusterDegraded(hc.Name, hc.Namespace, object, exhausted.Attempts, exhausted.Err.Error()))
}

// readiness counts ready replicas from the observed StatefulSets. A
// StatefulSet written in this pass keeps its replicas ready until the
// controller reports the new generation.
func readiness(desired, observed []client.Object) Readiness {
	current := map[string]*appsv1.StatefulSet{}
	for _, obj := range observed {
		if sts, ok := obj.(*appsv1.StatefulSet); ok {
			current[sts.Name] = sts
		}
	}

	var r Readiness
	for _, obj := range desired {
		sts, ok := obj.(*appsv1.StatefulSet)
		if !ok {
			continue
		}
		r.StatefulSets++
		replicas := ptr.Deref(sts.Spec.Replicas, 1)
		r.DesiredReplicas += replicas

		seen, found := current[sts.Name]
		if found {
			r.ReadyReplicas += seen.Status.ReadyReplicas
		}
		if replicas == 0 {
			continue
		}
		if !found || seen.Status.ObservedGeneration < seen.Generation || seen.Status.ReadyReplicas < replicas {
			r.NotReady = append(r.NotReady, sts.Name)
		}
	}
	return r
}

// Ensure Handler implements API interface.
var _ API = (*Handler)(nil)
