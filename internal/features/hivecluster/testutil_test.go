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
	"sync"
	"time"

	"github.com/go-logr/logr"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/tools/record"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"
	"sigs.k8s.io/controller-runtime/pkg/client/interceptor"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/service/pipeline"
	"github.com/hive-operator/internal/shared/eventbus"
	"github.com/hive-operator/internal/util"
)

const (
	testNamespace = "default"
	testCluster   = "simple-hive"
	testSecret    = "hive-credentials"
	testUID       = types.UID("test-uid")
)

func newTestScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	_ = clientgoscheme.AddToScheme(scheme)
	_ = hivev1alpha1.AddToScheme(scheme)
	return scheme
}

func newTestHiveCluster() *hivev1alpha1.HiveCluster {
	return &hivev1alpha1.HiveCluster{
		TypeMeta: metav1.TypeMeta{APIVersion: hivev1alpha1.GroupVersion.String(), Kind: "HiveCluster"},
		ObjectMeta: metav1.ObjectMeta{
			Name:       testCluster,
			Namespace:  testNamespace,
			UID:        testUID,
			Generation: 1,
		},
		Spec: hivev1alpha1.HiveClusterSpec{
			Image: hivev1alpha1.ImageSpec{ProductVersion: "4.0.1"},
			ClusterConfig: hivev1alpha1.ClusterConfig{
				Database: hivev1alpha1.DatabaseConnection{
					ConnectionString:  "jdbc:postgresql://postgresql:5432/hive",
					Kind:              hivev1alpha1.DatabaseKindPostgres,
					CredentialsSecret: testSecret,
				},
			},
			Metastore: &hivev1alpha1.MetastoreRoleSpec{
				RoleGroups: map[string]hivev1alpha1.RoleGroupSpec{
					"default": {Replicas: ptr.To(int32(1))},
				},
			},
		},
	}
}

func newCredentialsSecret() *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: testSecret, Namespace: testNamespace},
		Data: map[string][]byte{
			"username": []byte("hive"),
			"password": []byte("hive"),
		},
	}
}

// fastRetry keeps the in-place retries of tests in the millisecond range.
func fastRetry() util.RetryConfig {
	return util.RetryConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     50 * time.Millisecond,
		Multiplier:      2,
	}
}

// patchCounter counts apply patches by kind/name.
type patchCounter struct {
	mu      sync.Mutex
	patches map[string]int
}

func (p *patchCounter) record(obj client.Object) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.patches == nil {
		p.patches = map[string]int{}
	}
	p.patches[objectRef(obj)]++
}

func (p *patchCounter) total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.patches {
		n += c
	}
	return n
}

// applyAsCreateOrUpdate turns server-side apply patches into a create or a
// full update so the fake client can store them.
func applyAsCreateOrUpdate(counter *patchCounter) interceptor.Funcs {
	return interceptor.Funcs{
		Patch: func(ctx context.Context, c client.WithWatch, obj client.Object, patch client.Patch, opts ...client.PatchOption) error {
			if patch.Type() != types.ApplyPatchType {
				return c.Patch(ctx, obj, patch, opts...)
			}
			if counter != nil {
				counter.record(obj)
			}
			existing, ok := obj.DeepCopyObject().(client.Object)
			if !ok {
				return apierrors.NewBadRequest("not a client.Object")
			}
			err := c.Get(ctx, client.ObjectKeyFromObject(obj), existing)
			if apierrors.IsNotFound(err) {
				obj.SetResourceVersion("")
				return c.Create(ctx, obj)
			}
			if err != nil {
				return err
			}
			obj.SetResourceVersion(existing.GetResourceVersion())
			return c.Update(ctx, obj)
		},
	}
}

func newFakeClient(scheme *runtime.Scheme, funcs interceptor.Funcs, objs ...client.Object) client.WithWatch {
	return fake.NewClientBuilder().
		WithScheme(scheme).
		WithObjects(objs...).
		WithStatusSubresource(&hivev1alpha1.HiveCluster{}).
		WithInterceptorFuncs(funcs).
		Build()
}

// testEnv wires the real repository, pipeline and handler onto a fake client.
type testEnv struct {
	client     client.WithWatch
	scheme     *runtime.Scheme
	recorder   *record.FakeRecorder
	bus        *MockEventBus
	repo       *Repository
	handler    *Handler
	controller *Controller
}

func newTestEnv(funcs interceptor.Funcs, retry util.RetryConfig, objs ...client.Object) *testEnv {
	scheme := newTestScheme()
	c := newFakeClient(scheme, funcs, objs...)
	bus := NewMockEventBus()
	recorder := record.NewFakeRecorder(100)

	repo := NewRepository(RepositoryConfig{
		Client:   c,
		Scheme:   scheme,
		Timeouts: util.DefaultTimeoutConfig(),
		Retry:    retry,
		Logger:   logr.Discard(),
	})
	handler := NewHandler(HandlerConfig{
		Repository: repo,
		Pipeline: pipeline.NewService(&pipeline.Config{
			Resolver: adapter.NewResolver(c, time.Second),
		}),
		EventBus: bus,
		Logger:   logr.Discard(),
	})
	controller := NewController(ControllerConfig{
		Client:   c,
		Scheme:   scheme,
		Recorder: recorder,
		Handler:  handler,
		Logger:   logr.Discard(),
	})
	return &testEnv{
		client:     c,
		scheme:     scheme,
		recorder:   recorder,
		bus:        bus,
		repo:       repo,
		handler:    handler,
		controller: controller,
	}
}

func (e *testEnv) cluster(ctx context.Context) (*hivev1alpha1.HiveCluster, error) {
	hc := &hivev1alpha1.HiveCluster{}
	err := e.client.Get(ctx, types.NamespacedName{Namespace: testNamespace, Name: testCluster}, hc)
	return hc, err
}

// drainEvents returns every event recorded so far.
func drainEvents(recorder *record.FakeRecorder) []string {
	var events []string
	for {
		select {
		case e := <-recorder.Events:
			events = append(events, e)
		default:
			return events
		}
	}
}

// MockRepository is a mock implementation of RepositoryInterface for testing.
type MockRepository struct {
	ApplyFunc             func(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error
	DeleteFunc            func(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error
	ListObservedFunc      func(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]client.Object, error)
	ExternalAddressesFunc func(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]string, error)
	UpdateStatusFunc      func(ctx context.Context, hc *hivev1alpha1.HiveCluster) error

	// Call tracking
	Calls []MockCall
}

// MockCall records a method call for verification.
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMockRepository creates a new mock repository with default implementations.
func NewMockRepository() *MockRepository {
	return &MockRepository{
		ApplyFunc: func(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
			return nil
		},
		DeleteFunc: func(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
			return nil
		},
		ListObservedFunc: func(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]client.Object, error) {
			return nil, nil
		},
		ExternalAddressesFunc: func(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]string, error) {
			return nil, nil
		},
		UpdateStatusFunc: func(ctx context.Context, hc *hivev1alpha1.HiveCluster) error {
			return nil
		},
	}
}

func (m *MockRepository) Apply(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
	m.Calls = append(m.Calls, MockCall{Method: "Apply", Args: []interface{}{objectRef(obj)}})
	return m.ApplyFunc(ctx, hc, obj)
}

func (m *MockRepository) Delete(ctx context.Context, hc *hivev1alpha1.HiveCluster, obj client.Object) error {
	m.Calls = append(m.Calls, MockCall{Method: "Delete", Args: []interface{}{objectRef(obj)}})
	return m.DeleteFunc(ctx, hc, obj)
}

func (m *MockRepository) ListObserved(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]client.Object, error) {
	m.Calls = append(m.Calls, MockCall{Method: "ListObserved"})
	return m.ListObservedFunc(ctx, hc)
}

func (m *MockRepository) ExternalAddresses(ctx context.Context, hc *hivev1alpha1.HiveCluster) ([]string, error) {
	m.Calls = append(m.Calls, MockCall{Method: "ExternalAddresses"})
	return m.ExternalAddressesFunc(ctx, hc)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, hc *hivev1alpha1.HiveCluster) error {
	m.Calls = append(m.Calls, MockCall{Method: "UpdateStatus"})
	return m.UpdateStatusFunc(ctx, hc)
}

// CallCount returns how often method was called.
func (m *MockRepository) CallCount(method string) int {
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

// MockEventBus is a mock event bus for testing.
type MockEventBus struct {
	mu              sync.Mutex
	PublishedEvents []eventbus.Event
}

// NewMockEventBus creates a new mock event bus.
func NewMockEventBus() *MockEventBus {
	return &MockEventBus{}
}

// Publish records a published event.
func (m *MockEventBus) Publish(ctx context.Context, event eventbus.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishedEvents = append(m.PublishedEvents, event)
	return nil
}

// PublishAsync records a published event (async version).
func (m *MockEventBus) PublishAsync(ctx context.Context, event eventbus.Event) {
	_ = m.Publish(ctx, event)
}

// Subscribe is a no-op for the mock.
func (m *MockEventBus) Subscribe(eventName string, handlerName string, handler eventbus.Handler) {}

// Unsubscribe is a no-op for the mock.
func (m *MockEventBus) Unsubscribe(eventName string, handlerName string) {}

// Subscriptions returns an empty list for the mock.
func (m *MockEventBus) Subscriptions(eventName string) []eventbus.Subscription {
	return nil
}

// Wait returns at once; the mock runs nothing asynchronously.
func (m *MockEventBus) Wait(ctx context.Context) error {
	return nil
}

// Names returns the names of the published events in order.
func (m *MockEventBus) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.PublishedEvents))
	for _, e := range m.PublishedEvents {
		names = append(names, e.EventName())
	}
	return names
}

// Ensure mocks implement their interfaces.
var (
	_ RepositoryInterface = (*MockRepository)(nil)
	_ eventbus.Bus        = (*MockEventBus)(nil)
)
