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

// Package app wires the HiveCluster feature and its shared infrastructure
// into a controller manager.
package app

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	"github.com/hive-operator/internal/features/hivecluster"
	"github.com/hive-operator/internal/shared/eventbus"
	"github.com/hive-operator/internal/util"
)

// Application owns the event bus and the HiveCluster module of one operator
// instance.
type Application struct {
	bus    eventbus.Bus
	hive   *hivecluster.Module
	logger logr.Logger
}

// NewApplication validates cfg and builds the application. Event bus metrics
// go to reg unless it is nil.
func NewApplication(mgr ctrl.Manager, cfg OperatorConfig, reg prometheus.Registerer) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resync, err := util.ParseResyncSchedule(cfg.ResyncSchedule)
	if err != nil {
		return nil, err
	}

	logger := mgr.GetLogger().WithName("app").WithValues("instanceID", cfg.InstanceID)
	bus, err := newEventBus(logger, reg)
	if err != nil {
		return nil, err
	}

	hive, err := hivecluster.NewModule(hivecluster.ModuleConfig{
		Client:                  mgr.GetClient(),
		Scheme:                  mgr.GetScheme(),
		Recorder:                mgr.GetEventRecorderFor("hivecluster-controller"),
		EventBus:                bus,
		Timeouts:                cfg.Timeouts(),
		Resync:                  resync,
		MaxConcurrentReconciles: cfg.MaxConcurrentReconciles,
		RateLimiter:             cfg.RateLimiter.NewRateLimiter(),
		Predicates:              []predicate.Predicate{InstanceIDPredicate(cfg.InstanceID)},
		InstanceID:              cfg.InstanceID,
		ProbeDependencies:       cfg.ProbeDependencies,
		ProbeInterval:           cfg.ProbeInterval,
		ExtraJVMArgs:            cfg.ExtraJVMArgs,
		Logger:                  logger,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Application created", "resync", resync.String(), "probeDependencies", cfg.ProbeDependencies)
	return &Application{bus: bus, hive: hive, logger: logger}, nil
}

// newEventBus builds the in-memory bus. Middleware order: logging outermost,
// then panic recovery, then delivery metrics.
func newEventBus(logger logr.Logger, reg prometheus.Registerer) (eventbus.Bus, error) {
	busMetrics := eventbus.NewMetrics("hive_operator")
	if reg != nil {
		if err := busMetrics.Register(reg); err != nil {
			return nil, err
		}
	}
	return eventbus.NewInMemoryBus(
		eventbus.WithLogger(logger.WithName("eventbus")),
		eventbus.WithMiddleware(
			eventbus.LoggingMiddleware(logger.WithName("events")),
			eventbus.RecoveryMiddleware(logger.WithName("recovery")),
			eventbus.MetricsMiddleware(busMetrics),
		),
	), nil
}

// SetupWithManager registers the HiveCluster controller with mgr.
func (a *Application) SetupWithManager(mgr ctrl.Manager) error {
	if err := a.hive.SetupWithManager(mgr); err != nil {
		return err
	}
	a.logger.Info("HiveCluster controller registered")
	return nil
}

// Drain waits for asynchronous event handlers after the manager stopped.
func (a *Application) Drain(ctx context.Context) error {
	return a.bus.Wait(ctx)
}
