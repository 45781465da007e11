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

package util

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

var _ = Describe("Annotations", func() {
	var cluster *hivev1alpha1.HiveCluster

	BeforeEach(func() {
		cluster = &hivev1alpha1.HiveCluster{
			ObjectMeta: metav1.ObjectMeta{Name: "hive", Namespace: "default"},
		}
	})

	It("should detect deletion", func() {
		Expect(IsMarkedForDeletion(cluster)).To(BeFalse())
		now := metav1.NewTime(time.Now())
		cluster.DeletionTimestamp = &now
		Expect(IsMarkedForDeletion(cluster)).To(BeTrue())
	})

	DescribeTable("ShouldSkipReconcile",
		func(annotations map[string]string, expected bool) {
			cluster.Annotations = annotations
			Expect(ShouldSkipReconcile(cluster)).To(Equal(expected))
		},
		Entry("no annotations", nil, false),
		Entry("skip", map[string]string{AnnotationSkipReconcile: "true"}, true),
		Entry("pause", map[string]string{AnnotationPauseReconcile: "true"}, true),
		Entry("skip false", map[string]string{AnnotationSkipReconcile: "false"}, false),
	)

	It("should detect the force-resync annotation", func() {
		Expect(HasForceResyncAnnotation(cluster)).To(BeFalse())
		cluster.Annotations = map[string]string{AnnotationForceResync: "true"}
		Expect(HasForceResyncAnnotation(cluster)).To(BeTrue())
	})
})

var _ = Describe("ResyncSchedule", func() {
	It("should default to every ten minutes", func() {
		s, err := ParseResyncSchedule("")
		Expect(err).NotTo(HaveOccurred())
		Expect(s.String()).To(Equal(DefaultResyncSchedule))

		now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
		Expect(s.RequeueAfter(now)).To(Equal(10 * time.Minute))
	})

	It("should accept five-field cron expressions", func() {
		s, err := ParseResyncSchedule("*/5 * * * *")
		Expect(err).NotTo(HaveOccurred())

		now := time.Date(2026, 1, 1, 12, 1, 0, 0, time.UTC)
		Expect(s.Next(now)).To(Equal(time.Date(2026, 1, 1, 12, 5, 0, 0, time.UTC)))
	})

	It("should reject garbage", func() {
		_, err := ParseResyncSchedule("every now and then")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Timeouts", func() {
	It("should not set a deadline for zero timeouts", func() {
		ctx, cancel := TimeoutConfig{}.WithAPITimeout(context.Background())
		defer cancel()
		_, ok := ctx.Deadline()
		Expect(ok).To(BeFalse())
	})

	It("should set a deadline for the probe timeout", func() {
		ctx, cancel := DefaultTimeoutConfig().WithProbeTimeout(context.Background())
		defer cancel()
		deadline, ok := ctx.Deadline()
		Expect(ok).To(BeTrue())
		Expect(time.Until(deadline)).To(BeNumerically("<=", 5*time.Second))
	})

	It("should recognise wrapped deadline errors", func() {
		ctx, cancel := WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		<-ctx.Done()
		Expect(IsTimeoutError(fmt.Errorf("get secret: %w", ctx.Err()))).To(BeTrue())
		Expect(IsTimeoutError(context.Canceled)).To(BeFalse())
	})
})

var _ = Describe("OwnedByInstance", func() {
	DescribeTable("instance assignment",
		func(labels map[string]string, instance string, expected bool) {
			hc := &hivev1alpha1.HiveCluster{ObjectMeta: metav1.ObjectMeta{Name: "hive", Labels: labels}}
			Expect(OwnedByInstance(hc, instance)).To(Equal(expected))
		},
		Entry("unlabeled, default instance", nil, DefaultInstanceID, true),
		Entry("unlabeled, other instance", nil, "blue", false),
		Entry("labeled for blue", map[string]string{hivev1alpha1.LabelOperatorInstanceID: "blue"}, "blue", true),
		Entry("labeled for green", map[string]string{hivev1alpha1.LabelOperatorInstanceID: "green"}, "blue", false),
	)

	It("should reject nil objects", func() {
		Expect(OwnedByInstance(nil, DefaultInstanceID)).To(BeFalse())
	})
})
