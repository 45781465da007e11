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
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/go-logr/logr"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/metrics"
	"github.com/hive-operator/internal/render"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/util"
)

// FieldOwner is the server-side apply field manager of every owned object.
const FieldOwner = client.FieldOwner(hivev1alpha1.OperatorName)

// Repository performs the platform calls of the module. Every call is bounded
// by the API timeout and retried in place on transient errors.
type Repository struct {
	client   client.Client
	scheme   *runtime.Scheme
	timeouts util.TimeoutConfig
	retry    util.RetryConfig
	logger   logr.Logger
}

// RepositoryConfig holds dependencies for the repository.
type RepositoryConfig struct {
	Client   client.Client
	Scheme   *runtime.Scheme
	Timeouts util.TimeoutConfig
	Retry    util.RetryConfig
	Logger   logr.Logger
}

// NewRepository creates a new hivecluster repository.
func NewRepository(cfg RepositoryConfig) *Repository {
	return &Repository{
		client:   cfg.Client,
		scheme:   cfg.Scheme,
		timeouts: cfg.Timeouts,
		retry:    cfg.Retry,
		logger:   cfg.Logger,
	}
}

// Apply server-side applies obj with a controller reference to hc.
func (r *Repository) Apply(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
	if err := controllerutil.SetControllerReference(hc, obj, r.scheme); err != nil {
		return fmt.Errorf("set owner of %s: %w", objectRef(obj), err)
	}
	obj.SetManagedFields(nil)
	obj.SetResourceVersion("")

	return r.call(ctx, hc.Namespace, "apply", objectRef(obj), func(ctx context.Context) error {
		return r.client.Patch(ctx, obj, client.Apply, FieldOwner, client.ForceOwnership)
	})
}

// Delete removes obj. Objects that are already gone count as deleted.
func (r *Repository) Delete(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
	return r.call(ctx, hc.Namespace, "delete", objectRef(obj), func(ctx context.Context) error {
		err := r.client.Delete(ctx, obj, client.PropagationPolicy(metav1.DeletePropagationBackground))
		return client.IgnoreNotFound(err)
	})
}

// ListObserved lists every StatefulSet, ConfigMap, Service and
// PodDisruptionBudget carrying the ownership labels of hc. Objects controlled
// by another owner are skipped. Each returned object has its kind set.
func (r *Repository) ListObserved(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]client.Object, error) {
	opts := []client.ListOption{
		client.InNamespace(hc.Namespace),
		client.MatchingLabels(render.OwnershipLabels(hc.Name)),
	}
	var observed []client.Object

	var statefulSets appsv1.StatefulSetList
	if err := r.list(ctx, hc, &statefulSets, opts...); err != nil {
		return nil, err
	}
	for i := range statefulSets.Items {
		observed = collect(observed, hc, &statefulSets.Items[i], appsv1.SchemeGroupVersion.WithKind("StatefulSet"))
	}

	var configMaps corev1.ConfigMapList
	if err := r.list(ctx, hc, &configMaps, opts...); err != nil {
		return nil, err
	}
	for i := range configMaps.Items {
		observed = collect(observed, hc, &configMaps.Items[i], corev1.SchemeGroupVersion.WithKind("ConfigMap"))
	}

	var services corev1.ServiceList
	if err := r.list(ctx, hc, &services, opts...); err != nil {
		return nil, err
	}
	for i := range services.Items {
		observed = collect(observed, hc, &services.Items[i], corev1.SchemeGroupVersion.WithKind("Service"))
	}

	var pdbs policyv1.PodDisruptionBudgetList
	if err := r.list(ctx, hc, &pdbs, opts...); err != nil {
		return nil, err
	}
	for i := range pdbs.Items {
		observed = collect(observed, hc, &pdbs.Items[i], policyv1.SchemeGroupVersion.WithKind("PodDisruptionBudget"))
	}

	return observed, nil
}

// ExternalAddresses derives the externally reachable addresses from the role
// Service of the previous pass. A LoadBalancer contributes its ingress
// points, a NodePort the host IPs of the metastore pods.
func (r *Repository) ExternalAddresses(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]string, error) {
	if !hc.ExposureClass().IsExternal() {
		return nil, nil
	}

	svc := &corev1.Service{}
	key := types.NamespacedName{Namespace: hc.Namespace, Name: render.RoleServiceName(hc.Name)}
	err := r.call(ctx, hc.Namespace, "get", "Service/"+key.Name, func(ctx context.Context) error {
		return r.client.Get(ctx, key, svc)
	})
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var addresses []string
	switch svc.Spec.Type {
	case corev1.ServiceTypeLoadBalancer:
		for _, ingress := range svc.Status.LoadBalancer.Ingress {
			host := ingress.Hostname
			if host == "" {
				host = ingress.IP
			}
			if host != "" {
				addresses = append(addresses, net.JoinHostPort(host, strconv.Itoa(hivev1alpha1.HivePort)))
			}
		}
	case corev1.ServiceTypeNodePort:
		nodePort := hiveNodePort(svc)
		if nodePort == 0 {
			return nil, nil
		}
		var pods corev1.PodList
		err := r.list(ctx, hc, &pods,
			client.InNamespace(hc.Namespace),
			client.MatchingLabels(render.SelectorLabels(hc.Name, hivev1alpha1.RoleMetastore, "")))
		if err != nil {
			return nil, err
		}
		for _, pod := range pods.Items {
			if pod.Status.HostIP != "" {
				addresses = append(addresses, net.JoinHostPort(pod.Status.HostIP, strconv.Itoa(int(nodePort))))
			}
		}
	}

	slices.Sort(addresses)
	return slices.Compact(addresses), nil
}

// UpdateStatus writes the status of hc onto the latest stored version.
func (r *Repository) UpdateStatus(ctx context.Context, hc *hivev1alpha1.HiveCluster) error {
	status := hc.Status.DeepCopy()
	return r.call(ctx, hc.Namespace, "status", "HiveCluster/"+hc.Name, func(ctx context.Context) error {
		latest := &hivev1alpha1.HiveCluster{}
		if err := r.client.Get(ctx, client.ObjectKeyFromObject(hc), latest); err != nil {
			return err
		}
		latest.Status = *status
		if err := r.client.Status().Update(ctx, latest); err != nil {
			return err
		}
		hc.ResourceVersion = latest.ResourceVersion
		return nil
	})
}

func (r *Repository) list(ctx context.Context, hc *hivev1alpha1.HiveCluster, list client.ObjectList, opts ...client.ListOption) error {
	return r.call(ctx, hc.Namespace, "list", fmt.Sprintf("%T", list), func(ctx context.Context) error {
		return r.client.List(ctx, list, opts...)
	})
}

// call runs fn under the API timeout with in-place retries. Transient
// failures that exhaust the retries become a RetriesExhaustedError.
func (r *Repository) call(ctx context.Context, namespace, operation, object string, fn func(context.Context) error) error {
	cfg := r.retry
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, wait time.Duration, err error) {
		r.logger.V(1).Info("Retrying platform call",
			"operation", operation, "object", object, "attempt", attempt, "wait", wait, "error", err.Error())
		if onRetry != nil {
			onRetry(attempt, wait, err)
		}
	}

	result := util.RetryWithBackoff(ctx, cfg, func() error {
		callCtx, cancel := r.timeouts.WithAPITimeout(ctx)
		defer cancel()
		err := fn(callCtx)
		if err != nil && util.IsTimeoutError(err) && ctx.Err() == nil {
			return service.NewTimeoutError(operation, object, r.timeouts.APITimeout, err)
		}
		return err
	})
	metrics.RecordRetries(operation, namespace, result.Attempts-1)

	switch {
	case result.LastError == nil:
		return nil
	case result.Exhausted(cfg):
		return &service.RetriesExhaustedError{Attempts: result.Attempts, Err: result.LastError}
	case util.IsRetryableError(result.LastError):
		return service.NewTransientPlatformError(operation, object, result.LastError)
	default:
		return result.LastError
	}
}

// collect appends obj unless another owner controls it.
func collect(out []client.Object, hc *hivev1alpha1.HiveCluster, obj client.Object, gvk schema.GroupVersionKind) []client.Object {
	if ref := metav1.GetControllerOf(obj); ref != nil && ref.UID != hc.UID {
		return out
	}
	obj.GetObjectKind().SetGroupVersionKind(gvk)
	return append(out, obj)
}

func hiveNodePort(svc *corev1.Service) int32 {
	for _, p := range svc.Spec.Ports {
		if p.Name == hivev1alpha1.HivePortName {
			return p.NodePort
		}
	}
	return 0
}

func objectRef(obj client.Object) string {
	return obj.GetObjectKind().GroupVersionKind().Kind + "/" + obj.GetName()
}
