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

package logging

import (
	"fmt"

	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

// Watch maps changes of a secondary type back to primary objects.
// Handlers only enqueue.
type Watch struct {
	Object  client.Object
	Handler handler.EventHandler
}

// Registration describes one controller.
//
//	logging.Register(mgr, logging.Registration{
//	    Name:    "hivecluster",
//	    For:     &hivev1alpha1.HiveCluster{},
//	    Owns:    []client.Object{&appsv1.StatefulSet{}},
//	    Watches: []logging.Watch{{Object: &corev1.Secret{}, Handler: h}},
//	}, reconciler)
type Registration struct {
	Name string
	For  client.Object
	Owns []client.Object

	Watches []Watch

	// Predicates filter events of the primary type only.
	Predicates []predicate.Predicate

	Options controller.Options
}

// Register adds r to mgr. Every reconcile request gets its own reconcile ID
// in the context and the context logger.
func Register(mgr ctrl.Manager, reg Registration, r reconcile.Reconciler) error {
	if reg.For == nil {
		return fmt.Errorf("controller %q: primary type is required", reg.Name)
	}

	bld := ctrl.NewControllerManagedBy(mgr).
		Named(reg.Name).
		For(reg.For, builder.WithPredicates(reg.Predicates...)).
		WithOptions(reg.Options)
	for _, owned := range reg.Owns {
		bld = bld.Owns(owned)
	}
	for _, w := range reg.Watches {
		bld = bld.Watches(w.Object, w.Handler)
	}
	return bld.Complete(&withReconcileID{inner: r})
}
