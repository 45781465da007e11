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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

var _ = Describe("Conditions", func() {
	Describe("SetCondition", func() {
		var conditions []metav1.Condition

		BeforeEach(func() {
			conditions = []metav1.Condition{}
		})

		Context("when adding a new condition", func() {
			It("should add the condition to the list", func() {
				changed := SetCondition(&conditions, ConditionTypeAvailable, metav1.ConditionTrue, ReasonAllReplicasReady, "All replicas ready", 3)

				Expect(changed).To(BeTrue())
				Expect(conditions).To(HaveLen(1))
				Expect(conditions[0].Type).To(Equal(ConditionTypeAvailable))
				Expect(conditions[0].Status).To(Equal(metav1.ConditionTrue))
				Expect(conditions[0].Reason).To(Equal(ReasonAllReplicasReady))
				Expect(conditions[0].ObservedGeneration).To(Equal(int64(3)))
				Expect(conditions[0].LastTransitionTime.IsZero()).To(BeFalse())
			})

			It("should add multiple different conditions", func() {
				SetAvailableCondition(&conditions, metav1.ConditionFalse, ReasonReplicasNotReady, "", 1)
				SetProgressingCondition(&conditions, metav1.ConditionTrue, ReasonApplying, "", 1)
				SetDegradedCondition(&conditions, metav1.ConditionFalse, ReasonNoFailures, "", 1)

				Expect(conditions).To(HaveLen(3))
			})
		})

		Context("when updating an existing condition", func() {
			var originalTime metav1.Time

			BeforeEach(func() {
				originalTime = metav1.NewTime(time.Now().Add(-1 * time.Hour).Truncate(time.Second))
				conditions = []metav1.Condition{
					{
						Type:               ConditionTypeProgressing,
						Status:             metav1.ConditionTrue,
						Reason:             ReasonApplying,
						Message:            "applying 3 objects",
						LastTransitionTime: originalTime,
						ObservedGeneration: 1,
					},
				}
			})

			It("should move LastTransitionTime when the status flips", func() {
				SetProgressingCondition(&conditions, metav1.ConditionFalse, ReasonUpToDate, "", 1)

				Expect(conditions[0].Status).To(Equal(metav1.ConditionFalse))
				Expect(conditions[0].LastTransitionTime.After(originalTime.Time)).To(BeTrue())
			})

			It("should keep LastTransitionTime when only the reason changes", func() {
				SetProgressingCondition(&conditions, metav1.ConditionTrue, ReasonRollingOut, "rolling out", 2)

				Expect(conditions[0].Reason).To(Equal(ReasonRollingOut))
				Expect(conditions[0].ObservedGeneration).To(Equal(int64(2)))
				Expect(conditions[0].LastTransitionTime).To(Equal(originalTime))
			})

			It("should report no change for an identical condition", func() {
				changed := SetCondition(&conditions, ConditionTypeProgressing, metav1.ConditionTrue, ReasonApplying, "applying 3 objects", 1)

				Expect(changed).To(BeFalse())
				Expect(conditions).To(HaveLen(1))
			})
		})
	})

	Describe("queries", func() {
		conditions := []metav1.Condition{
			{Type: ConditionTypeAvailable, Status: metav1.ConditionTrue},
			{Type: ConditionTypeDegraded, Status: metav1.ConditionFalse},
		}

		It("should find conditions by type", func() {
			Expect(GetCondition(conditions, ConditionTypeAvailable)).NotTo(BeNil())
			Expect(GetCondition(conditions, ConditionTypeProgressing)).To(BeNil())
		})

		It("should report true and false", func() {
			Expect(IsConditionTrue(conditions, ConditionTypeAvailable)).To(BeTrue())
			Expect(IsConditionTrue(conditions, ConditionTypeDegraded)).To(BeFalse())
			Expect(IsConditionTrue(conditions, ConditionTypeProgressing)).To(BeFalse())
		})
	})

	Describe("SortConditions", func() {
		It("should put Available, Progressing and Degraded first", func() {
			conditions := []metav1.Condition{
				{Type: ConditionTypeDependenciesReachable},
				{Type: ConditionTypeDegraded},
				{Type: ConditionTypeAvailable},
				{Type: ConditionTypeProgressing},
			}
			SortConditions(conditions)

			types := []string{}
			for _, c := range conditions {
				types = append(types, c.Type)
			}
			Expect(types).To(Equal([]string{
				ConditionTypeAvailable,
				ConditionTypeProgressing,
				ConditionTypeDegraded,
				ConditionTypeDependenciesReachable,
			}))
		})
	})
})
