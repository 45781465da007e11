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
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/tools/record"
	"k8s.io/client-go/util/workqueue"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/service/pipeline"
	"github.com/hive-operator/internal/shared/eventbus"
	"github.com/hive-operator/internal/shared/refindex"
	"github.com/hive-operator/internal/util"
)

// Module wires the repository, handler and controller of the HiveCluster
// feature and owns its event subscriptions.
type Module struct {
	handler    *Handler
	controller *Controller
	eventBus   eventbus.Bus
	logger     logr.Logger
}

// ModuleConfig holds dependencies for the hivecluster module.
type ModuleConfig struct {
	Client   client.Client
	Scheme   *runtime.Scheme
	Recorder record.EventRecorder
	EventBus eventbus.Bus

	Timeouts util.TimeoutConfig
	Resync   *util.ResyncSchedule

	MaxConcurrentReconciles int
	RateLimiter             workqueue.TypedRateLimiter[reconcile.Request]
	Predicates              []predicate.Predicate
	InstanceID              string
	ProbeDependencies       bool
	ProbeInterval           time.Duration
	ExtraJVMArgs            []string

	Logger logr.Logger
}

// NewModule builds the module. Client and Scheme are required; a nil
// EventBus disables the deletion and degradation subscribers.
func NewModule(cfg ModuleConfig) (*Module, error) {
	if cfg.Client == nil || cfg.Scheme == nil {
		return nil, fmt.Errorf("hivecluster: client and scheme are required")
	}
	logger := cfg.Logger.WithName("hivecluster")

	repo := NewRepository(RepositoryConfig{
		Client:   cfg.Client,
		Scheme:   cfg.Scheme,
		Timeouts: cfg.Timeouts,
		Retry:    util.DefaultRetryConfig(),
		Logger:   logger.WithName("repository"),
	})
	pipe := pipeline.NewService(&pipeline.Config{
		Resolver:     adapter.NewResolver(cfg.Client, cfg.Timeouts.AdapterTimeout),
		ExtraJVMArgs: cfg.ExtraJVMArgs,
		Logger:       logger.WithName("pipeline"),
	})
	handler := NewHandler(HandlerConfig{
		Repository:        repo,
		Pipeline:          pipe,
		EventBus:          cfg.EventBus,
		ProbeDependencies: cfg.ProbeDependencies,
		ProbeTimeout:      cfg.Timeouts,
		ProbeRetry:        util.ProbeRetryConfig(),
		ProbeInterval:     cfg.ProbeInterval,
		Logger:            logger.WithName("handler"),
	})

	m := &Module{
		handler: handler,
		controller: NewController(ControllerConfig{
			Client:                  cfg.Client,
			Scheme:                  cfg.Scheme,
			Recorder:                cfg.Recorder,
			Handler:                 handler,
			Resync:                  cfg.Resync,
			InstanceID:              cfg.InstanceID,
			MaxConcurrentReconciles: cfg.MaxConcurrentReconciles,
			RateLimiter:             cfg.RateLimiter,
			Predicates:              cfg.Predicates,
			Logger:                  logger.WithName("controller"),
		}),
		eventBus: cfg.EventBus,
		logger:   logger,
	}
	if m.eventBus != nil {
		m.eventBus.Subscribe(eventbus.EventClusterDeleted, "hivecluster.OnClusterDeleted",
			typed(m.handler.OnClusterDeleted))
		m.eventBus.Subscribe(eventbus.EventClusterDegraded, "hivecluster.OnClusterDegraded",
			typed(m.onClusterDegraded))
	}
	return m, nil
}

// typed adapts fn to an eventbus.Handler. Events of another type are ignored.
func typed[E eventbus.Event](fn func(context.Context, E) error) eventbus.Handler {
	return func(ctx context.Context, event eventbus.Event) error {
		e, ok := event.(E)
		if !ok {
			return nil
		}
		return fn(ctx, e)
	}
}

func (m *Module) onClusterDegraded(_ context.Context, e *eventbus.ClusterDegraded) error {
	cluster := e.Cluster()
	m.logger.Info("Cluster degraded",
		"cluster", cluster.Name, "namespace", cluster.Namespace,
		"object", e.Object, "attempts", e.Attempts, "reason", e.Reason)
	return nil
}

// SetupWithManager registers the reference indexes and the controller.
func (m *Module) SetupWithManager(mgr ctrl.Manager) error {
	if err := refindex.Register(context.Background(), mgr.GetFieldIndexer()); err != nil {
		return fmt.Errorf("register reference indexes: %w", err)
	}
	return m.controller.SetupWithManager(mgr)
}

// Handler returns the module's handler.
func (m *Module) Handler() API {
	return m.handler
}

// Name returns the module name.
func (m *Module) Name() string {
	return "hivecluster"
}
