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
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/go-logr/logr"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

// ReconcileIDKey is the log key that carries the reconcile ID.
const ReconcileIDKey = "reconcileID"

type idKey struct{}

// GenerateID returns 8 random lowercase hex characters.
func GenerateID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

// WithID returns a context carrying id whose logger is tagged with it.
func WithID(ctx context.Context, id string) context.Context {
	ctx = logr.NewContext(ctx, logf.FromContext(ctx).WithValues(ReconcileIDKey, id))
	return context.WithValue(ctx, idKey{}, id)
}

// IDFromContext returns the reconcile ID of ctx, or "".
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(idKey{}).(string)
	return id
}

// EventMessage formats a Kubernetes event message. Inside a reconcile the
// message is prefixed with "[<id>] " so events line up with log output.
func EventMessage(ctx context.Context, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	id := IDFromContext(ctx)
	if id == "" {
		return msg
	}
	return fmt.Sprintf("[%s] %s", id, msg)
}

type withReconcileID struct {
	inner reconcile.Reconciler
}

func (w *withReconcileID) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	return w.inner.Reconcile(WithID(ctx, GenerateID()), req)
}
