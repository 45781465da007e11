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
	"sigs.k8s.io/controller-runtime/pkg/client"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// FinalizerHiveCluster holds a HiveCluster until its metrics and
// subscribers have been cleaned up.
const FinalizerHiveCluster = "hive.hiveops.io/cluster-protection"

const (
	// AnnotationSkipReconcile makes the controller ignore the cluster entirely
	AnnotationSkipReconcile = "hive.hiveops.io/skip-reconcile"

	// AnnotationPauseReconcile is an alias of AnnotationSkipReconcile
	AnnotationPauseReconcile = "hive.hiveops.io/pause-reconcile"

	// AnnotationForceResync rewrites every owned object on the next pass,
	// even when its hash is unchanged
	AnnotationForceResync = "hive.hiveops.io/force-resync"
)

// DefaultInstanceID is the operator instance that also manages unlabeled clusters.
const DefaultInstanceID = "default"

func annotationSet(obj client.Object, key string) bool {
	return obj.GetAnnotations()[key] == "true"
}

// IsMarkedForDeletion reports whether obj has a deletion timestamp.
func IsMarkedForDeletion(obj client.Object) bool {
	return !obj.GetDeletionTimestamp().IsZero()
}

// ShouldSkipReconcile reports whether the skip or pause annotation is "true".
func ShouldSkipReconcile(obj client.Object) bool {
	return annotationSet(obj, AnnotationSkipReconcile) || annotationSet(obj, AnnotationPauseReconcile)
}

// HasForceResyncAnnotation reports whether the force-resync annotation is "true".
func HasForceResyncAnnotation(obj client.Object) bool {
	return annotationSet(obj, AnnotationForceResync)
}

// OwnedByInstance reports whether obj is assigned to the operator instance.
// Unlabeled objects belong to DefaultInstanceID.
func OwnedByInstance(obj client.Object, instanceID string) bool {
	if obj == nil {
		return false
	}
	val, ok := obj.GetLabels()[hivev1alpha1.LabelOperatorInstanceID]
	if !ok {
		return instanceID == DefaultInstanceID
	}
	return val == instanceID
}
