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
	"strings"
	"sync"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/metrics"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/shared/eventbus"
	"github.com/hive-operator/internal/util"
)

// Probe names, also used as metric label values
const (
	ProbeDatabase = "database"
	ProbeBucket   = "bucket"
)

type probeConfig struct {
	enabled  bool
	timeouts util.TimeoutConfig
	retry    util.RetryConfig
	database func(adapter.DatabaseTarget) (adapter.Prober, error)
	bucket   func(context.Context, adapter.BucketTarget) (adapter.Prober, error)
	cache    *reportCache
}

// reportCache keeps the last report per cluster. A report is reused while the
// generation and the targets are unchanged and it is younger than interval.
type reportCache struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	entries  map[types.NamespacedName]cachedReport
}

type cachedReport struct {
	generation int64
	targets    string
	at         time.Time
	report     *ProbeReport
}

func newReportCache(interval time.Duration) *reportCache {
	return &reportCache{
		interval: interval,
		now:      time.Now,
		entries:  map[types.NamespacedName]cachedReport{},
	}
}

func (c *reportCache) get(key types.NamespacedName, generation int64, targets string) (*ProbeReport, bool) {
	if c == nil || c.interval <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.generation != generation || e.targets != targets || c.now().Sub(e.at) >= c.interval {
		return nil, false
	}
	return e.report, true
}

func (c *reportCache) put(key types.NamespacedName, generation int64, targets string, report *ProbeReport) {
	if c == nil || c.interval <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedReport{generation: generation, targets: targets, at: c.now(), report: report}
}

func (c *reportCache) forget(key types.NamespacedName) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// probeTargets identifies what a report was taken against.
func probeTargets(resolved *adapter.Resolved) string {
	targets := ""
	if resolved.Database.Kind != "" {
		targets = resolved.Database.String()
	}
	if resolved.Bucket != nil {
		targets += "|" + resolved.Bucket.String()
	}
	return targets
}

// ProbeCheck is the outcome of probing one dependency.
type ProbeCheck struct {
	Name   string
	Target string

	// Unsupported is set when no Go client exists for the dependency
	Unsupported bool
	Err         error
}

// Reachable reports whether the probe succeeded.
func (c ProbeCheck) Reachable() bool {
	return !c.Unsupported && c.Err == nil
}

// ProbeReport holds the checks of one pass. A nil report means probing is disabled.
type ProbeReport struct {
	Checks []ProbeCheck
}

// Condition maps the report to the DependenciesReachable condition.
func (r *ProbeReport) Condition() (metav1.ConditionStatus, string, string) {
	var failed, reachable, unsupported []string
	for _, c := range r.Checks {
		switch {
		case c.Unsupported:
			unsupported = append(unsupported, c.Name)
		case c.Err != nil:
			failed = append(failed, fmt.Sprintf("%s: %v", c.Name, c.Err))
		default:
			reachable = append(reachable, c.Name)
		}
	}

	switch {
	case len(r.Checks) == 0:
		return metav1.ConditionUnknown, util.ReasonProbeUnsupported, "No dependencies to probe"
	case len(failed) > 0:
		return metav1.ConditionFalse, util.ReasonProbeFailed, strings.Join(failed, "; ")
	case len(reachable) == 0:
		return metav1.ConditionUnknown, util.ReasonProbeUnsupported,
			fmt.Sprintf("No probe available for: %s", strings.Join(unsupported, ", "))
	default:
		return metav1.ConditionTrue, util.ReasonProbeSucceeded,
			fmt.Sprintf("Reachable: %s", strings.Join(reachable, ", "))
	}
}

// ProbesEnabled reports whether Probe does anything.
func (h *Handler) ProbesEnabled() bool {
	return h.probes.enabled
}

// Probe checks the metastore database and the warehouse bucket. Failures
// never fail the reconcile; they are reported through the condition.
// Reports are reused within the probe interval for the same generation and
// targets, without repeating metrics or events.
// Implements API.Probe
func (h *Handler) Probe(ctx context.Context, hc *hivev1alpha1.HiveCluster, resolved *adapter.Resolved) *ProbeReport {
	if !h.probes.enabled || resolved == nil {
		return nil
	}
	key := types.NamespacedName{Namespace: hc.Namespace, Name: hc.Name}
	targets := probeTargets(resolved)
	if cached, ok := h.probes.cache.get(key, hc.Generation, targets); ok {
		return cached
	}
	report := &ProbeReport{}

	if resolved.Database.Kind != "" {
		check := ProbeCheck{Name: ProbeDatabase, Target: resolved.Database.String()}
		prober, err := h.probes.database(resolved.Database)
		if err == nil {
			check.Err = h.runProbe(ctx, prober)
		} else if errors.Is(err, service.ErrProbeUnsupported) {
			check.Unsupported = true
		} else {
			check.Err = err
		}
		report.Checks = append(report.Checks, check)
	}

	if resolved.Bucket != nil {
		check := ProbeCheck{Name: ProbeBucket, Target: resolved.Bucket.String()}
		prober, err := h.probes.bucket(ctx, *resolved.Bucket)
		if err == nil {
			check.Err = h.runProbe(ctx, prober)
		} else {
			check.Err = err
		}
		report.Checks = append(report.Checks, check)
	}

	log := logf.FromContext(ctx)
	for _, c := range report.Checks {
		if c.Unsupported {
			continue
		}
		metrics.SetDependencyReachable(hc.Name, c.Name, hc.Namespace, c.Reachable())
		if c.Err != nil {
			log.Info("Dependency unreachable", "probe", c.Name, "target", c.Target, "error", c.Err.Error())
			h.publish(ctx, eventbus.NewDependencyUnreachable(hc.Name, hc.Namespace, c.Name, c.Err.Error()))
		}
	}
	h.probes.cache.put(key, hc.Generation, targets, report)
	return report
}

// runProbe probes with the probe retry policy, each attempt bounded by the probe timeout.
func (h *Handler) runProbe(ctx context.Context, prober adapter.Prober) error {
	defer func() { _ = prober.Close() }()

	cfg := h.probes.retry
	cfg.Retryable = func(err error) bool { return ctx.Err() == nil }
	result := util.RetryWithBackoff(ctx, cfg, func() error {
		probeCtx, cancel := h.probes.timeouts.WithProbeTimeout(ctx)
		defer cancel()
		return prober.Probe(probeCtx)
	})
	return result.LastError
}
