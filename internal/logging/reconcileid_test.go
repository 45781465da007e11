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
	"errors"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	logf "sigs.k8s.io/controller-runtime/pkg/log"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

var _ = Describe("Reconcile IDs", func() {
	It("are eight lowercase hex characters and vary between calls", func() {
		seen := map[string]struct{}{}
		for i := 0; i < 64; i++ {
			id := GenerateID()
			Expect(id).To(MatchRegexp("^[0-9a-f]{8}$"))
			seen[id] = struct{}{}
		}
		Expect(len(seen)).To(BeNumerically(">", 60))
	})

	It("round-trip through the context", func() {
		Expect(IDFromContext(context.Background())).To(BeEmpty())
		Expect(IDFromContext(WithID(context.Background(), "0badcafe"))).To(Equal("0badcafe"))
	})

	DescribeTable("EventMessage",
		func(id, want string) {
			ctx := context.Background()
			if id != "" {
				ctx = WithID(ctx, id)
			}
			Expect(EventMessage(ctx, "applied %d objects to %s", 7, "simple-hive")).To(Equal(want))
		},
		Entry("with an ID", "0badcafe", "[0badcafe] applied 7 objects to simple-hive"),
		Entry("without an ID", "", "applied 7 objects to simple-hive"),
	)
})

var _ = Describe("withReconcileID", func() {
	var (
		lines []string
		ctx   context.Context
		req   = ctrl.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "simple-hive"}}
	)

	BeforeEach(func() {
		lines = nil
		sink := funcr.New(func(_, args string) { lines = append(lines, args) }, funcr.Options{})
		ctx = logr.NewContext(context.Background(), sink)
	})

	It("tags every log line of the inner reconciler with the same ID", func() {
		var id string
		inner := reconcile.Func(func(ctx context.Context, got ctrl.Request) (ctrl.Result, error) {
			Expect(got).To(Equal(req))
			id = IDFromContext(ctx)
			logf.FromContext(ctx).Info("Rendering")
			logf.FromContext(ctx).Info("Applying")
			return ctrl.Result{}, nil
		})

		_, err := (&withReconcileID{inner: inner}).Reconcile(ctx, req)

		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(MatchRegexp("^[0-9a-f]{8}$"))
		Expect(lines).To(HaveLen(2))
		for _, l := range lines {
			Expect(l).To(ContainSubstring(`"reconcileID"="` + id + `"`))
		}
	})

	It("uses a fresh ID for every pass", func() {
		var ids []string
		inner := reconcile.Func(func(ctx context.Context, _ ctrl.Request) (ctrl.Result, error) {
			ids = append(ids, IDFromContext(ctx))
			return ctrl.Result{}, nil
		})
		r := &withReconcileID{inner: inner}

		for i := 0; i < 5; i++ {
			_, _ = r.Reconcile(ctx, req)
		}

		Expect(ids).To(HaveLen(5))
		for i := 1; i < len(ids); i++ {
			Expect(ids[i]).NotTo(Equal(ids[i-1]))
		}
	})

	It("returns the result and error of the inner reconciler", func() {
		unresolved := errors.New("secret default/hive-credentials not found")
		inner := reconcile.Func(func(context.Context, ctrl.Request) (ctrl.Result, error) {
			return ctrl.Result{RequeueAfter: 10}, unresolved
		})

		result, err := (&withReconcileID{inner: inner}).Reconcile(ctx, req)

		Expect(result).To(Equal(ctrl.Result{RequeueAfter: 10}))
		Expect(err).To(MatchError(unresolved))
	})
})
