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
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/types"
)

// Event is something that happened to a HiveCluster.
type Event interface {
	EventName() string
	EventTime() time.Time
	Cluster() types.NamespacedName
}

// Handler reacts to one event. Handlers must tolerate duplicate delivery.
type Handler func(ctx context.Context, event Event) error

// Subscription is a named handler registered for one event name.
type Subscription struct {
	Name    string
	Handler Handler
}

// Bus decouples the reconcile path from reactions such as metrics cleanup.
type Bus interface {
	// Publish delivers event to every subscription and joins their errors.
	Publish(ctx context.Context, event Event) error

	// PublishAsync delivers event on a separate goroutine; errors are only logged.
	PublishAsync(ctx context.Context, event Event)

	// Wait blocks until every PublishAsync returned or ctx is done.
	Wait(ctx context.Context) error

	// Subscribe registers handler under name. A second call with the same
	// name replaces the earlier handler.
	Subscribe(eventName, name string, handler Handler)

	Unsubscribe(eventName, name string)

	// Subscriptions returns a copy of the subscriptions for eventName.
	Subscriptions(eventName string) []Subscription
}

// InMemoryBus delivers events in-process, one subscription after another.
type InMemoryBus struct {
	mu         sync.RWMutex
	subs       map[string][]Subscription
	log        logr.Logger
	middleware []Middleware
	dispatch   Dispatch
	pending    sync.WaitGroup
}

// BusOption configures an InMemoryBus.
type BusOption func(*InMemoryBus)

// WithLogger sets the logger for the bus.
func WithLogger(logger logr.Logger) BusOption {
	return func(b *InMemoryBus) {
		b.log = logger
	}
}

// WithMiddleware wraps every delivery. The first middleware is outermost.
func WithMiddleware(middleware ...Middleware) BusOption {
	return func(b *InMemoryBus) {
		b.middleware = append(b.middleware, middleware...)
	}
}

// NewInMemoryBus creates a bus with no subscriptions.
func NewInMemoryBus(opts ...BusOption) *InMemoryBus {
	b := &InMemoryBus{
		subs: make(map[string][]Subscription),
		log:  logr.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.dispatch = deliver
	for i := len(b.middleware) - 1; i >= 0; i-- {
		b.dispatch = b.middleware[i](b.dispatch)
	}
	return b
}

func deliver(ctx context.Context, event Event, sub Subscription) error {
	return sub.Handler(ctx, event)
}

// Publish delivers event to every subscription, even after one failed.
func (b *InMemoryBus) Publish(ctx context.Context, event Event) error {
	subs := b.Subscriptions(event.EventName())
	if len(subs) == 0 {
		b.log.V(2).Info("No subscriptions for event", "event", event.EventName(), "cluster", event.Cluster())
		return nil
	}

	var errs []error
	for _, sub := range subs {
		if err := b.dispatch(ctx, event, sub); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", sub.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s for %s: %d of %d subscriptions failed: %w",
			event.EventName(), event.Cluster(), len(errs), len(subs), errors.Join(errs...))
	}
	return nil
}

// PublishAsync keeps the context values of ctx, such as the reconcile ID,
// but not its cancellation.
func (b *InMemoryBus) PublishAsync(ctx context.Context, event Event) {
	detached := context.WithoutCancel(ctx)
	b.pending.Add(1)
	go func() {
		defer b.pending.Done()
		if err := b.Publish(detached, event); err != nil {
			b.log.Error(err, "Async publish failed", "event", event.EventName(), "cluster", event.Cluster())
		}
	}()
}

func (b *InMemoryBus) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *InMemoryBus) Subscribe(eventName, name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := Subscription{Name: name, Handler: handler}
	for i, existing := range b.subs[eventName] {
		if existing.Name == name {
			b.subs[eventName][i] = sub
			b.log.V(1).Info("Subscription replaced", "event", eventName, "subscription", name)
			return
		}
	}
	b.subs[eventName] = append(b.subs[eventName], sub)
	b.log.V(1).Info("Subscribed", "event", eventName, "subscription", name,
		"subscriptions", len(b.subs[eventName]))
}

func (b *InMemoryBus) Unsubscribe(eventName, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventName]
	for i, sub := range subs {
		if sub.Name != name {
			continue
		}
		b.subs[eventName] = append(subs[:i:i], subs[i+1:]...)
		if len(b.subs[eventName]) == 0 {
			delete(b.subs, eventName)
		}
		return
	}
}

func (b *InMemoryBus) Subscriptions(eventName string) []Subscription {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Subscription, len(b.subs[eventName]))
	copy(out, b.subs[eventName])
	return out
}

var _ Bus = (*InMemoryBus)(nil)
