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

package eventbus

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hive-operator/internal/logging"
)

// Dispatch delivers one event to one subscription.
type Dispatch func(ctx context.Context, event Event, sub Subscription) error

// Middleware wraps a Dispatch.
type Middleware func(next Dispatch) Dispatch

// LoggingMiddleware logs every delivery together with the reconcile ID that
// produced the event.
func LoggingMiddleware(logger logr.Logger) Middleware {
	return func(next Dispatch) Dispatch {
		return func(ctx context.Context, event Event, sub Subscription) error {
			log := logger.WithValues("event", event.EventName(), "cluster", event.Cluster().String(),
				"subscription", sub.Name)
			if id := logging.IDFromContext(ctx); id != "" {
				log = log.WithValues(logging.ReconcileIDKey, id)
			}

			start := time.Now()
			err := next(ctx, event, sub)
			if err != nil {
				log.Error(err, "Event delivery failed", "duration", time.Since(start))
				return err
			}
			log.V(1).Info("Event delivered", "duration", time.Since(start))
			return nil
		}
	}
}

// Metrics counts and times deliveries per event and subscription.
type Metrics struct {
	deliveries *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the delivery collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "eventbus",
				Name:      "deliveries_total",
				Help:      "Event deliveries per subscription by status",
			},
			[]string{"event", "subscription", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "eventbus",
				Name:      "delivery_duration_seconds",
				Help:      "Time one subscription spent handling an event",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"event", "subscription"},
		),
	}
}

// Register registers the collectors with registry.
func (m *Metrics) Register(registry prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.deliveries, m.duration} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MetricsMiddleware records every delivery in metrics.
func MetricsMiddleware(metrics *Metrics) Middleware {
	return func(next Dispatch) Dispatch {
		return func(ctx context.Context, event Event, sub Subscription) error {
			start := time.Now()
			err := next(ctx, event, sub)

			status := "success"
			if err != nil {
				status = "error"
			}
			metrics.deliveries.WithLabelValues(event.EventName(), sub.Name, status).Inc()
			metrics.duration.WithLabelValues(event.EventName(), sub.Name).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecoveryMiddleware turns a panicking subscription into an error so the
// remaining subscriptions still run.
func RecoveryMiddleware(logger logr.Logger) Middleware {
	return func(next Dispatch) Dispatch {
		return func(ctx context.Context, event Event, sub Subscription) (err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error(nil, "Subscription panicked",
						"event", event.EventName(), "subscription", sub.Name, "panic", r)
					err = fmt.Errorf("subscription %s panicked on %s: %v", sub.Name, event.EventName(), r)
				}
			}()
			return next(ctx, event, sub)
		}
	}
}
