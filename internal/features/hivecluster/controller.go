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
	"time"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/logging"
	"github.com/hive-operator/internal/metrics"
	"github.com/hive-operator/internal/reconcileutil"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/shared/refindex"
	"github.com/hive-operator/internal/util"
)

// Kubernetes event reasons
const (
	EventReasonReconciled = "Reconciled"
	EventReasonDeleting   = "Deleting"
	EventReasonPaused     = "ReconciliationPaused"
)

// Controller handles K8s reconciliation for HiveCluster resources.
type Controller struct {
	client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	handler  API
	resync   *util.ResyncSchedule

	instanceID              string
	maxConcurrentReconciles int
	rateLimiter             workqueue.TypedRateLimiter[reconcile.Request]
	predicates              []predicate.Predicate
	logger                  logr.Logger
}

// ControllerConfig holds dependencies for the controller.
type ControllerConfig struct {
	Client   client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	Handler  API

	// Resync defaults to util.DefaultResyncSchedule
	Resync *util.ResyncSchedule

	// InstanceID defaults to util.DefaultInstanceID
	InstanceID              string
	MaxConcurrentReconciles int
	RateLimiter             workqueue.TypedRateLimiter[reconcile.Request]
	Predicates              []predicate.Predicate
	Logger                  logr.Logger
}

// NewController creates a new hivecluster controller.
func NewController(cfg ControllerConfig) *Controller {
	resync := cfg.Resync
	if resync == nil {
		resync, _ = util.ParseResyncSchedule(util.DefaultResyncSchedule)
	}
	instanceID := cfg.InstanceID
	if instanceID == "" {
		instanceID = util.DefaultInstanceID
	}
	return &Controller{
		Client:                  cfg.Client,
		Scheme:                  cfg.Scheme,
		Recorder:                cfg.Recorder,
		handler:                 cfg.Handler,
		resync:                  resync,
		instanceID:              instanceID,
		maxConcurrentReconciles: cfg.MaxConcurrentReconciles,
		rateLimiter:             cfg.RateLimiter,
		predicates:              cfg.Predicates,
		logger:                  cfg.Logger,
	}
}

// +kubebuilder:rbac:groups=hive.hiveops.io,resources=hiveclusters,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=hive.hiveops.io,resources=hiveclusters/status,verbs=get;update;patch
// +kubebuilder:rbac:groups=hive.hiveops.io,resources=hiveclusters/finalizers,verbs=update
// +kubebuilder:rbac:groups=hive.hiveops.io,resources=s3connections,verbs=get;list;watch
// +kubebuilder:rbac:groups=apps,resources=statefulsets,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=services;configmaps,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups=policy,resources=poddisruptionbudgets,verbs=get;list;watch;create;update;patch;delete
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=pods,verbs=get;list;watch
// +kubebuilder:rbac:groups="",resources=events,verbs=create;patch

// Reconcile implements the reconciliation loop for HiveCluster resources.
func (c *Controller) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	start := time.Now()
	log := logf.FromContext(ctx).WithValues("hivecluster", req.NamespacedName)
	ctx = logf.IntoContext(ctx, log)

	hc := &hivev1alpha1.HiveCluster{}
	if err := c.Get(ctx, req.NamespacedName, hc); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	// Watches on referenced objects bypass the event filter
	if !util.OwnedByInstance(hc, c.instanceID) {
		log.V(1).Info("Cluster belongs to another operator instance")
		return ctrl.Result{}, nil
	}

	if util.IsMarkedForDeletion(hc) {
		return c.handleDeletion(ctx, hc, start)
	}

	if controllerutil.AddFinalizer(hc, util.FinalizerHiveCluster) {
		if err := c.Update(ctx, hc); err != nil {
			return ctrl.Result{}, err
		}
	}

	if util.ShouldSkipReconcile(hc) || hc.IsReconciliationPaused() {
		return c.handlePaused(ctx, hc, start)
	}

	return c.reconcile(ctx, hc, start)
}

// reconcile runs one pass and records its outcome in the status.
func (c *Controller) reconcile(ctx context.Context, hc *hivev1alpha1.HiveCluster, start time.Time) (ctrl.Result, error) {
	log := logf.FromContext(ctx)

	util.SetPausedCondition(&hc.Status.Conditions, metav1.ConditionFalse,
		util.ReasonNotPaused, "Reconciliation is active", hc.Generation)

	result, err := c.handler.Sync(ctx, hc, func(p hivev1alpha1.Phase) {
		hc.Status.Phase = p
	})
	if err != nil {
		metrics.RecordReconcile(outcome(err), hc.Namespace, time.Since(start).Seconds())
		return c.handleError(ctx, hc, err)
	}

	for _, w := range result.Set.Warnings {
		c.Recorder.Event(hc, corev1.EventTypeWarning, util.ReasonUnsupportedConfig, logging.EventMessage(ctx, "%s", w.String()))
	}

	hc.Status.Phase = hivev1alpha1.PhaseUpdatingStatus
	setSyncedStatus(hc, result)
	if report := c.handler.Probe(ctx, hc, result.Resolved); report != nil {
		status, reason, message := report.Condition()
		util.SetDependenciesCondition(&hc.Status.Conditions, status, reason, message, hc.Generation)
	}
	hc.Status.Phase = hivev1alpha1.PhaseIdle
	stamp(ctx, hc)
	hc.Status.ObservedGeneration = hc.Generation

	if err := c.handler.SaveStatus(ctx, hc); err != nil {
		log.Error(err, "Failed to update status")
		metrics.RecordReconcile(metrics.ResultError, hc.Namespace, time.Since(start).Seconds())
		return reconcileutil.Requeue(client.IgnoreNotFound(err))
	}
	metrics.RecordReconcile(metrics.ResultSuccess, hc.Namespace, time.Since(start).Seconds())

	if result.Changed() {
		c.Recorder.Event(hc, corev1.EventTypeNormal, EventReasonReconciled,
			logging.EventMessage(ctx, "Applied desired state: %s", result.Plan.Result.Summary()))
	}
	log.Info("Successfully reconciled HiveCluster",
		"summary", result.Plan.Result.Summary(),
		"readyReplicas", result.Readiness.ReadyReplicas,
		"desiredReplicas", result.Readiness.DesiredReplicas)

	return ctrl.Result{RequeueAfter: c.resync.RequeueAfter(time.Now())}, nil
}

// handleError records a failed pass. Validation errors are not requeued,
// missing references are re-checked after a fixed delay, everything else
// backs off through the work queue.
func (c *Controller) handleError(ctx context.Context, hc *hivev1alpha1.HiveCluster, err error) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	conds := &hc.Status.Conditions
	gen := hc.Generation
	hc.Status.Message = err.Error()

	switch {
	case service.IsValidationError(err):
		log.Info("HiveCluster spec is invalid", "error", err.Error())
		hc.Status.Phase = hivev1alpha1.PhaseFailed
		util.SetAvailableCondition(conds, metav1.ConditionFalse, util.ReasonValidationFailed, err.Error(), gen)
		util.SetProgressingCondition(conds, metav1.ConditionFalse, util.ReasonValidationFailed, "Waiting for a valid spec", gen)
		c.Recorder.Event(hc, corev1.EventTypeWarning, util.ReasonValidationFailed, logging.EventMessage(ctx, "%v", err))
	case service.IsUnresolvedReference(err):
		log.Info("Waiting for referenced object", "error", err.Error())
		util.SetProgressingCondition(conds, metav1.ConditionTrue, util.ReasonReferenceNotFound, err.Error(), gen)
		c.Recorder.Event(hc, corev1.EventTypeWarning, util.ReasonReferenceNotFound, logging.EventMessage(ctx, "%v", err))
	case service.IsRetriesExhausted(err):
		log.Error(err, "Giving up on write after retries")
		util.SetDegradedCondition(conds, metav1.ConditionTrue, util.ReasonRetriesExhausted, err.Error(), gen)
		util.SetProgressingCondition(conds, metav1.ConditionTrue, util.ReasonApplyFailed, err.Error(), gen)
		c.Recorder.Event(hc, corev1.EventTypeWarning, util.ReasonRetriesExhausted, logging.EventMessage(ctx, "%v", err))
	default:
		log.Error(err, "Reconciliation failed")
		util.SetProgressingCondition(conds, metav1.ConditionTrue, util.ReasonReconcileFailed, err.Error(), gen)
		c.Recorder.Event(hc, corev1.EventTypeWarning, util.ReasonReconcileFailed, logging.EventMessage(ctx, "%v", err))
	}

	stamp(ctx, hc)
	if statusErr := c.handler.SaveStatus(ctx, hc); statusErr != nil {
		log.Error(statusErr, "Failed to update status")
	}
	return reconcileutil.Requeue(err)
}

// handlePaused records that the operator leaves the owned objects alone.
func (c *Controller) handlePaused(ctx context.Context, hc *hivev1alpha1.HiveCluster, start time.Time) (ctrl.Result, error) {
	log := logf.FromContext(ctx)
	message := "Reconciliation paused by clusterOperation.reconciliationPaused"
	if util.ShouldSkipReconcile(hc) {
		message = "Reconciliation paused by annotation"
	}

	changed := util.SetCondition(&hc.Status.Conditions, util.ConditionTypeReconciliationPaused,
		metav1.ConditionTrue, util.ReasonPaused, message, hc.Generation)
	if changed || hc.Status.Phase != hivev1alpha1.PhasePaused {
		log.Info("Reconciliation paused")
		hc.Status.Phase = hivev1alpha1.PhasePaused
		hc.Status.Message = message
		stamp(ctx, hc)
		if err := c.handler.SaveStatus(ctx, hc); err != nil {
			return ctrl.Result{}, client.IgnoreNotFound(err)
		}
		c.Recorder.Event(hc, corev1.EventTypeNormal, EventReasonPaused, logging.EventMessage(ctx, "%s", message))
	}

	metrics.RecordReconcile(metrics.ResultPaused, hc.Namespace, time.Since(start).Seconds())
	return ctrl.Result{}, nil
}

// handleDeletion runs the cleanup guarded by the finalizer. Owned objects are
// garbage collected through their owner references.
func (c *Controller) handleDeletion(ctx context.Context, hc *hivev1alpha1.HiveCluster, start time.Time) (ctrl.Result, error) {
	log := logf.FromContext(ctx)

	if !controllerutil.ContainsFinalizer(hc, util.FinalizerHiveCluster) {
		return ctrl.Result{}, nil
	}

	log.Info("Handling deletion of HiveCluster")
	c.handler.Cleanup(ctx, hc)
	c.Recorder.Event(hc, corev1.EventTypeNormal, EventReasonDeleting, logging.EventMessage(ctx, "Released cluster resources"))

	controllerutil.RemoveFinalizer(hc, util.FinalizerHiveCluster)
	if err := c.Update(ctx, hc); err != nil {
		return ctrl.Result{}, client.IgnoreNotFound(err)
	}

	metrics.RecordReconcile(metrics.ResultDeleted, hc.Namespace, time.Since(start).Seconds())
	log.Info("Successfully handled deletion of HiveCluster")
	return ctrl.Result{}, nil
}

// SetupWithManager registers the controller with the manager.
func (c *Controller) SetupWithManager(mgr ctrl.Manager) error {
	mapper := refindex.NewMapper(mgr.GetClient(), c.logger.WithName("refindex"))

	return logging.Register(mgr, logging.Registration{
		Name: "hivecluster",
		For:  &hivev1alpha1.HiveCluster{},
		Owns: []client.Object{
			&appsv1.StatefulSet{},
			&corev1.ConfigMap{},
			&corev1.Service{},
			&policyv1.PodDisruptionBudget{},
		},
		Watches: []logging.Watch{
			{Object: &corev1.Secret{}, Handler: handler.EnqueueRequestsFromMapFunc(mapper.ClustersForSecret)},
			{Object: &corev1.ConfigMap{}, Handler: handler.EnqueueRequestsFromMapFunc(mapper.ClustersForConfigMap)},
			{Object: &hivev1alpha1.S3Connection{}, Handler: handler.EnqueueRequestsFromMapFunc(mapper.ClustersForS3Connection)},
		},
		Predicates: c.predicates,
		Options: controller.Options{
			MaxConcurrentReconciles: c.maxConcurrentReconciles,
			RateLimiter:             c.rateLimiter,
		},
	}, c)
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case service.IsValidationError(err):
		return metrics.ResultInvalid
	case service.IsUnresolvedReference(err):
		return metrics.ResultUnresolved
	case service.IsRetriesExhausted(err):
		return metrics.ResultDegraded
	default:
		return metrics.ResultError
	}
}
