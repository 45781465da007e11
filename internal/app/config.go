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

package app

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"k8s.io/client-go/util/workqueue"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	"github.com/hive-operator/internal/util"
)

// OperatorConfig holds operator-wide configuration set via CLI flags.
type OperatorConfig struct {
	// MaxConcurrentReconciles bounds the number of clusters reconciled at once (default: 4).
	MaxConcurrentReconciles int

	// ResyncSchedule is the cron expression of the periodic full reconcile (default: "@every 10m").
	ResyncSchedule string

	// APITimeout bounds a single platform API call (default: 15s).
	APITimeout time.Duration

	// AdapterTimeout bounds resolving the external references of one cluster (default: 10s).
	AdapterTimeout time.Duration

	// ProbeTimeout bounds one dependency probe (default: 5s).
	ProbeTimeout time.Duration

	// ShutdownDrain is how long in-flight reconciles may run after shutdown starts (default: 30s).
	ShutdownDrain time.Duration

	// ProbeDependencies enables the database and object storage probes.
	ProbeDependencies bool

	// ProbeInterval is how long probe results of an unchanged cluster are
	// reused (default: 5m).
	ProbeInterval time.Duration

	// InstanceID partitions clusters across multiple operators on the same platform.
	// Clusters are matched by the "hive.hiveops.io/operator-instance-id" label.
	// The value "default" also manages unlabeled clusters.
	InstanceID string

	// ExtraJVMArgs are appended to the JVM arguments of every metastore.
	ExtraJVMArgs []string

	// RateLimiter configures the work queue. The effective delay is the
	// larger of the per-item exponential backoff and the token bucket.
	RateLimiter RateLimiterConfig
}

// RateLimiterConfig configures the controller work queue rate limiter.
type RateLimiterConfig struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	QPS       float64
	Burst     int
}

// DefaultOperatorConfig returns an OperatorConfig with production defaults.
func DefaultOperatorConfig() OperatorConfig {
	timeouts := util.DefaultTimeoutConfig()
	return OperatorConfig{
		MaxConcurrentReconciles: 4,
		ResyncSchedule:          util.DefaultResyncSchedule,
		APITimeout:              timeouts.APITimeout,
		AdapterTimeout:          timeouts.AdapterTimeout,
		ProbeTimeout:            timeouts.ProbeTimeout,
		ShutdownDrain:           30 * time.Second,
		ProbeInterval:           5 * time.Minute,
		InstanceID:              util.DefaultInstanceID,
		RateLimiter: RateLimiterConfig{
			BaseDelay: time.Second,
			MaxDelay:  5 * time.Minute,
			QPS:       10,
			Burst:     100,
		},
	}
}

// Validate reports the first setting that cannot be used.
func (c OperatorConfig) Validate() error {
	if c.MaxConcurrentReconciles < 1 {
		return fmt.Errorf("max concurrent reconciles must be at least 1, got %d", c.MaxConcurrentReconciles)
	}
	if c.InstanceID == "" {
		return fmt.Errorf("instance id must not be empty")
	}
	if _, err := util.ParseResyncSchedule(c.ResyncSchedule); err != nil {
		return err
	}
	if c.RateLimiter.BaseDelay <= 0 || c.RateLimiter.MaxDelay < c.RateLimiter.BaseDelay {
		return fmt.Errorf("rate limiter delays must satisfy 0 < base (%s) <= max (%s)",
			c.RateLimiter.BaseDelay, c.RateLimiter.MaxDelay)
	}
	if c.ProbeDependencies && c.ProbeInterval <= 0 {
		return fmt.Errorf("probe interval must be positive, got %s", c.ProbeInterval)
	}
	if c.RateLimiter.QPS <= 0 || c.RateLimiter.Burst < 1 {
		return fmt.Errorf("rate limiter needs a positive qps and burst")
	}
	return nil
}

// Timeouts returns the per-call timeouts.
func (c OperatorConfig) Timeouts() util.TimeoutConfig {
	return util.TimeoutConfig{
		APITimeout:     c.APITimeout,
		AdapterTimeout: c.AdapterTimeout,
		ProbeTimeout:   c.ProbeTimeout,
	}
}

// NewRateLimiter builds the work queue rate limiter.
func (c RateLimiterConfig) NewRateLimiter() workqueue.TypedRateLimiter[reconcile.Request] {
	return workqueue.NewTypedMaxOfRateLimiter(
		workqueue.NewTypedItemExponentialFailureRateLimiter[reconcile.Request](c.BaseDelay, c.MaxDelay),
		&workqueue.TypedBucketRateLimiter[reconcile.Request]{Limiter: rate.NewLimiter(rate.Limit(c.QPS), c.Burst)},
	)
}
