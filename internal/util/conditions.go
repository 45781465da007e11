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
	"sort"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Condition types for HiveCluster resources
const (
	// ConditionTypeAvailable indicates every StatefulSet has its required ready replicas
	ConditionTypeAvailable = "Available"

	// ConditionTypeProgressing indicates desired objects differed from observed in the last pass
	ConditionTypeProgressing = "Progressing"

	// ConditionTypeDegraded indicates applies keep failing after in-place retries
	ConditionTypeDegraded = "Degraded"

	// ConditionTypeReconciliationPaused indicates the operator is not changing owned objects
	ConditionTypeReconciliationPaused = "ReconciliationPaused"

	// ConditionTypeDependenciesReachable reports the optional dependency probes
	ConditionTypeDependenciesReachable = "DependenciesReachable"
)

// Condition reasons
const (
	ReasonReconciling       = "Reconciling"
	ReasonReconcileSuccess  = "ReconcileSuccess"
	ReasonReconcileFailed   = "ReconcileFailed"
	ReasonValidationFailed  = "ValidationFailed"
	ReasonReferenceNotFound = "ReferenceNotFound"
	ReasonApplying          = "Applying"
	ReasonUpToDate          = "UpToDate"
	ReasonRollingOut        = "RollingOut"
	ReasonAllReplicasReady  = "AllReplicasReady"
	ReasonReplicasNotReady  = "ReplicasNotReady"
	ReasonStopped           = "Stopped"
	ReasonApplyFailed       = "ApplyFailed"
	ReasonRetriesExhausted  = "RetriesExhausted"
	ReasonNoFailures        = "NoFailures"
	ReasonPaused            = "Paused"
	ReasonNotPaused         = "NotPaused"
	ReasonProbeSucceeded    = "ProbeSucceeded"
	ReasonProbeFailed       = "ProbeFailed"
	ReasonProbeUnsupported  = "ProbeUnsupported"
	ReasonUnsupportedConfig = "UnsupportedConfiguration"
	ReasonDeleting          = "Deleting"
	ReasonOrphanDeleted     = "OrphanDeleted"
)

// SetCondition adds or updates a condition in the conditions list.
// LastTransitionTime only moves when the status flips.
func SetCondition(conditions *[]metav1.Condition, conditionType string, status metav1.ConditionStatus, reason, message string, generation int64) bool {
	now := metav1.NewTime(time.Now())

	for i, c := range *conditions {
		if c.Type != conditionType {
			continue
		}
		if c.Status == status && c.Reason == reason && c.Message == message && c.ObservedGeneration == generation {
			return false
		}
		transition := c.LastTransitionTime
		if c.Status != status {
			transition = now
		}
		(*conditions)[i] = metav1.Condition{
			Type:               conditionType,
			Status:             status,
			Reason:             reason,
			Message:            message,
			LastTransitionTime: transition,
			ObservedGeneration: generation,
		}
		return true
	}

	*conditions = append(*conditions, metav1.Condition{
		Type:               conditionType,
		Status:             status,
		Reason:             reason,
		Message:            message,
		LastTransitionTime: now,
		ObservedGeneration: generation,
	})
	return true
}

// GetCondition returns a condition by type
func GetCondition(conditions []metav1.Condition, conditionType string) *metav1.Condition {
	for i := range conditions {
		if conditions[i].Type == conditionType {
			return &conditions[i]
		}
	}
	return nil
}

// IsConditionTrue checks if a condition is true
func IsConditionTrue(conditions []metav1.Condition, conditionType string) bool {
	cond := GetCondition(conditions, conditionType)
	return cond != nil && cond.Status == metav1.ConditionTrue
}

// SetAvailableCondition is a helper to set the Available condition
func SetAvailableCondition(conditions *[]metav1.Condition, status metav1.ConditionStatus, reason, message string, generation int64) {
	SetCondition(conditions, ConditionTypeAvailable, status, reason, message, generation)
}

// SetProgressingCondition is a helper to set the Progressing condition
func SetProgressingCondition(conditions *[]metav1.Condition, status metav1.ConditionStatus, reason, message string, generation int64) {
	SetCondition(conditions, ConditionTypeProgressing, status, reason, message, generation)
}

// SetDegradedCondition is a helper to set the Degraded condition
func SetDegradedCondition(conditions *[]metav1.Condition, status metav1.ConditionStatus, reason, message string, generation int64) {
	SetCondition(conditions, ConditionTypeDegraded, status, reason, message, generation)
}

// SetPausedCondition is a helper to set the ReconciliationPaused condition
func SetPausedCondition(conditions *[]metav1.Condition, status metav1.ConditionStatus, reason, message string, generation int64) {
	SetCondition(conditions, ConditionTypeReconciliationPaused, status, reason, message, generation)
}

// SetDependenciesCondition is a helper to set the DependenciesReachable condition
func SetDependenciesCondition(conditions *[]metav1.Condition, status metav1.ConditionStatus, reason, message string, generation int64) {
	SetCondition(conditions, ConditionTypeDependenciesReachable, status, reason, message, generation)
}

// SortConditions orders conditions so the three core types come first in a stable order.
func SortConditions(conditions []metav1.Condition) {
	rank := func(t string) int {
		switch t {
		case ConditionTypeAvailable:
			return 0
		case ConditionTypeProgressing:
			return 1
		case ConditionTypeDegraded:
			return 2
		case ConditionTypeReconciliationPaused:
			return 3
		default:
			return 4
		}
	}
	sort.SliceStable(conditions, func(i, j int) bool {
		return rank(conditions[i].Type) < rank(conditions[j].Type)
	})
}
