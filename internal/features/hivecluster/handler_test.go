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
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/service/pipeline"
	"github.com/hive-operator/internal/shared/eventbus"
	"github.com/hive-operator/internal/util"
)

func newMockHandler(repo RepositoryInterface, bus eventbus.Bus, objs ...client.Object) *Handler {
	c := newFakeClient(newTestScheme(), applyAsCreateOrUpdate(nil), objs...)
	return NewHandler(HandlerConfig{
		Repository: repo,
		Pipeline:   pipeline.NewService(&pipeline.Config{Resolver: adapter.NewResolver(c, time.Second)}),
		EventBus:   bus,
		Logger:     logr.Discard(),
	})
}

func TestHandler_Sync_AppliesEveryDesiredObject(t *testing.T) {
	repo := NewMockRepository()
	bus := NewMockEventBus()
	h := newMockHandler(repo, bus, newCredentialsSecret())

	var phases []hivev1alpha1.Phase
	result, err := h.Sync(context.Background(), newTestHiveCluster(), func(p hivev1alpha1.Phase) {
		phases = append(phases, p)
	})
	require.NoError(t, err)

	assert.Equal(t, len(result.Set.Objects), result.Applied)
	assert.Equal(t, result.Applied, repo.CallCount("Apply"))
	assert.Zero(t, repo.CallCount("Delete"))
	assert.True(t, result.Changed())
	assert.Equal(t, []hivev1alpha1.Phase{
		hivev1alpha1.PhaseValidating,
		hivev1alpha1.PhaseMerging,
		hivev1alpha1.PhaseRendering,
		hivev1alpha1.PhaseDiffing,
		hivev1alpha1.PhaseApplying,
	}, phases)
	assert.Equal(t, []string{eventbus.EventClusterReconciled}, bus.Names())
}

func TestHandler_Sync_ApplyFailureReturnsPartialResult(t *testing.T) {
	repo := NewMockRepository()
	calls := 0
	repo.ApplyFunc = func(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
		calls++
		if calls == 2 {
			return &service.RetriesExhaustedError{Attempts: 5, Err: errors.New("conflict")}
		}
		return nil
	}
	bus := NewMockEventBus()
	h := newMockHandler(repo, bus, newCredentialsSecret())

	result, err := h.Sync(context.Background(), newTestHiveCluster(), nil)
	require.Error(t, err)
	assert.True(t, service.IsRetriesExhausted(err))
	require.NotNil(t, result)
	assert.Equal(t, 1, result.Applied)
	assert.Contains(t, bus.Names(), eventbus.EventClusterDegraded)
	assert.NotContains(t, bus.Names(), eventbus.EventClusterReconciled)
}

func TestHandler_Sync_ListFailure(t *testing.T) {
	repo := NewMockRepository()
	repo.ListObservedFunc = func(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]client.Object, error) {
		return nil, errors.New("connection refused")
	}
	h := newMockHandler(repo, NewMockEventBus(), newCredentialsSecret())

	_, err := h.Sync(context.Background(), newTestHiveCluster(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list observed objects")
	assert.Zero(t, repo.CallCount("Apply"))
}

func TestHandler_Sync_ExternalAddressesReachDiscovery(t *testing.T) {
	repo := NewMockRepository()
	repo.ExternalAddressesFunc = func(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]string, error) {
		return []string{"10.0.0.7:31083"}, nil
	}
	hc := newTestHiveCluster()
	hc.Spec.ClusterConfig.ExposureClass = hivev1alpha1.ExposureExternalUnstable
	h := newMockHandler(repo, NewMockEventBus(), newCredentialsSecret())

	result, err := h.Sync(context.Background(), hc, nil)
	require.NoError(t, err)
	records := result.Set.DiscoveryRecords()
	require.Len(t, records, 2)
	assert.Equal(t, "thrift://10.0.0.7:31083", records[1].Data[hivev1alpha1.DiscoveryKeyHive])
}

func TestHandler_Cleanup(t *testing.T) {
	bus := NewMockEventBus()
	h := newMockHandler(NewMockRepository(), bus)

	h.Cleanup(context.Background(), newTestHiveCluster())
	assert.Equal(t, []string{eventbus.EventClusterDeleted}, bus.Names())

	// Without a bus, cleanup still succeeds.
	newMockHandler(NewMockRepository(), nil).Cleanup(context.Background(), newTestHiveCluster())
}

func statefulSet(name string, replicas, ready int32, generation, observed int64) *appsv1.StatefulSet {
	return &appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: name, Generation: generation},
		Spec:       appsv1.StatefulSetSpec{Replicas: ptr.To(replicas)},
		Status:     appsv1.StatefulSetStatus{ReadyReplicas: ready, ObservedGeneration: observed},
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		desired  []client.Object
		observed []client.Object
		want     Readiness
	}{
		{
			name:     "all ready",
			desired:  []client.Object{statefulSet("a", 2, 0, 0, 0)},
			observed: []client.Object{statefulSet("a", 2, 2, 3, 3)},
			want:     Readiness{StatefulSets: 1, DesiredReplicas: 2, ReadyReplicas: 2},
		},
		{
			name:    "missing",
			desired: []client.Object{statefulSet("a", 1, 0, 0, 0)},
			want:    Readiness{StatefulSets: 1, DesiredReplicas: 1, NotReady: []string{"a"}},
		},
		{
			name:     "updated and still observed ready",
			desired:  []client.Object{statefulSet("a", 1, 0, 0, 0)},
			observed: []client.Object{statefulSet("a", 1, 1, 1, 1)},
			want:     Readiness{StatefulSets: 1, DesiredReplicas: 1, ReadyReplicas: 1},
		},
		{
			name:     "stale observed generation",
			desired:  []client.Object{statefulSet("a", 1, 0, 0, 0)},
			observed: []client.Object{statefulSet("a", 1, 1, 2, 1)},
			want:     Readiness{StatefulSets: 1, DesiredReplicas: 1, ReadyReplicas: 1, NotReady: []string{"a"}},
		},
		{
			name:     "zero replicas count as ready",
			desired:  []client.Object{statefulSet("a", 0, 0, 0, 0)},
			observed: []client.Object{statefulSet("a", 0, 0, 2, 1)},
			want:     Readiness{StatefulSets: 1},
		},
		{
			name:    "no statefulsets",
			desired: []client.Object{},
			want:    Readiness{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readiness(tt.desired, tt.observed)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.want.NotReady) == 0, got.Ready())
		})
	}
}

func TestProbeReport_Condition(t *testing.T) {
	tests := []struct {
		name   string
		checks []ProbeCheck
		status metav1.ConditionStatus
		reason string
	}{
		{"nothing to probe", nil, metav1.ConditionUnknown, util.ReasonProbeUnsupported},
		{"all reachable", []ProbeCheck{{Name: ProbeDatabase}, {Name: ProbeBucket}}, metav1.ConditionTrue, util.ReasonProbeSucceeded},
		{"one failed", []ProbeCheck{{Name: ProbeDatabase}, {Name: ProbeBucket, Err: errors.New("403")}}, metav1.ConditionFalse, util.ReasonProbeFailed},
		{"only unsupported", []ProbeCheck{{Name: ProbeDatabase, Unsupported: true}}, metav1.ConditionUnknown, util.ReasonProbeUnsupported},
		{"unsupported and reachable", []ProbeCheck{{Name: ProbeDatabase, Unsupported: true}, {Name: ProbeBucket}}, metav1.ConditionTrue, util.ReasonProbeSucceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, reason, message := (&ProbeReport{Checks: tt.checks}).Condition()
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.reason, reason)
			assert.NotEmpty(t, message)
		})
	}
}

type fakeProber struct {
	errs   []error
	calls  int
	closed bool
}

func (p *fakeProber) Probe(ctx context.Context) error {
	p.calls++
	if len(p.errs) == 0 {
		return nil
	}
	err := p.errs[0]
	p.errs = p.errs[1:]
	return err
}

func (p *fakeProber) Close() error {
	p.closed = true
	return nil
}

func newProbingHandler(bus eventbus.Bus, db, bucket *fakeProber, dbErr error) *Handler {
	return NewHandler(HandlerConfig{
		Repository:        NewMockRepository(),
		EventBus:          bus,
		ProbeDependencies: true,
		ProbeTimeout:      util.TimeoutConfig{ProbeTimeout: time.Second},
		ProbeRetry:        fastRetry(),
		DatabaseProber: func(adapter.DatabaseTarget) (adapter.Prober, error) {
			if dbErr != nil {
				return nil, dbErr
			}
			return db, nil
		},
		BucketProber: func(context.Context, adapter.BucketTarget) (adapter.Prober, error) {
			return bucket, nil
		},
		Logger: logr.Discard(),
	})
}

func TestHandler_Probe(t *testing.T) {
	resolved := &adapter.Resolved{
		Database: adapter.DatabaseTarget{Kind: "postgres", JDBCURL: "jdbc:postgresql://pg:5432/hive"},
		Bucket:   &adapter.BucketTarget{Kind: "s3", Bucket: "warehouse"},
	}

	t.Run("retries until reachable", func(t *testing.T) {
		db := &fakeProber{errs: []error{errors.New("connection refused")}}
		bucket := &fakeProber{}
		h := newProbingHandler(NewMockEventBus(), db, bucket, nil)

		report := h.Probe(context.Background(), newTestHiveCluster(), resolved)
		require.NotNil(t, report)
		require.Len(t, report.Checks, 2)
		assert.True(t, report.Checks[0].Reachable())
		assert.True(t, report.Checks[1].Reachable())
		assert.Equal(t, 2, db.calls)
		assert.True(t, db.closed)
		assert.True(t, bucket.closed)
	})

	t.Run("failure is reported, not returned", func(t *testing.T) {
		down := errors.New("no route to host")
		bucket := &fakeProber{errs: []error{down, down, down, down}}
		bus := NewMockEventBus()
		h := newProbingHandler(bus, &fakeProber{}, bucket, nil)

		report := h.Probe(context.Background(), newTestHiveCluster(), resolved)
		require.NotNil(t, report)
		status, reason, _ := report.Condition()
		assert.Equal(t, metav1.ConditionFalse, status)
		assert.Equal(t, util.ReasonProbeFailed, reason)
		assert.Equal(t, 4, bucket.calls)
		assert.Equal(t, []string{eventbus.EventDependencyUnreachable}, bus.Names())
	})

	t.Run("unsupported database", func(t *testing.T) {
		h := newProbingHandler(NewMockEventBus(), nil, &fakeProber{},
			errors.Join(service.ErrProbeUnsupported, errors.New("oracle")))

		report := h.Probe(context.Background(), newTestHiveCluster(), resolved)
		require.NotNil(t, report)
		assert.True(t, report.Checks[0].Unsupported)
		assert.False(t, report.Checks[0].Reachable())
	})

	t.Run("disabled", func(t *testing.T) {
		h := newMockHandler(NewMockRepository(), nil)
		assert.False(t, h.ProbesEnabled())
		assert.Nil(t, h.Probe(context.Background(), newTestHiveCluster(), resolved))
	})
}

func TestHandler_DependencyReportsReusedPerGeneration(t *testing.T) {
	resolved := &adapter.Resolved{
		Database: adapter.DatabaseTarget{Kind: "postgres", JDBCURL: "jdbc:postgresql://pg:5432/hive"},
		Bucket:   &adapter.BucketTarget{Kind: "s3", Bucket: "warehouse"},
	}
	db := &fakeProber{}
	bus := NewMockEventBus()
	h := NewHandler(HandlerConfig{
		Repository:        NewMockRepository(),
		EventBus:          bus,
		ProbeDependencies: true,
		ProbeTimeout:      util.TimeoutConfig{ProbeTimeout: time.Second},
		ProbeRetry:        fastRetry(),
		ProbeInterval:     time.Minute,
		DatabaseProber: func(adapter.DatabaseTarget) (adapter.Prober, error) {
			return db, nil
		},
		BucketProber: func(context.Context, adapter.BucketTarget) (adapter.Prober, error) {
			return nil, errors.New("bucket down")
		},
		Logger: logr.Discard(),
	})
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	h.probes.cache.now = func() time.Time { return now }

	hc := newTestHiveCluster()
	hc.Generation = 1
	ctx := context.Background()

	first := h.Probe(ctx, hc, resolved)
	second := h.Probe(ctx, hc, resolved)
	assert.Same(t, first, second)
	assert.Equal(t, 1, db.calls)
	assert.Len(t, bus.Names(), 1, "cached reports publish nothing")

	hc.Generation = 2
	h.Probe(ctx, hc, resolved)
	assert.Equal(t, 2, db.calls)

	other := &adapter.Resolved{
		Database: adapter.DatabaseTarget{Kind: "postgres", JDBCURL: "jdbc:postgresql://pg2:5432/hive"},
		Bucket:   resolved.Bucket,
	}
	h.Probe(ctx, hc, other)
	assert.Equal(t, 3, db.calls)

	now = now.Add(time.Minute)
	h.Probe(ctx, hc, other)
	assert.Equal(t, 4, db.calls)

	require.NoError(t, h.OnClusterDeleted(ctx, eventbus.NewClusterDeleted(hc.Name, hc.Namespace)))
	h.Probe(ctx, hc, other)
	assert.Equal(t, 5, db.calls)
}
