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

// Package drift compares the desired objects of a HiveCluster with the
// observed ones and decides which need to be written or deleted.
package drift

import (
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// Service handles drift detection between desired and observed objects.
//
// The service follows the same patterns as other services:
// - Uses structured logging via logr
// - Returns typed results for controllers to process
// - Does not directly update Kubernetes resources (that's the controller's job)
type Service struct {
	config *Config
	log    logr.Logger
}

// Config contains configuration for drift detection.
type Config struct {
	// ForceResync marks every desired object for update regardless of its hash.
	// This should be set based on the CR's annotation.
	ForceResync bool

	// Logger is the logger to use for drift operations
	Logger logr.Logger
}

// NewService creates a new drift detection service.
func NewService(cfg *Config) *Service {
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}

	return &Service{
		config: cfg,
		log:    log.WithName("DriftService"),
	}
}

// Plan is the result of a comparison plus the objects to act on.
type Plan struct {
	Result *Result

	// Apply are the desired objects to create or update, in desired order
	Apply []client.Object

	// Delete are observed objects that are no longer desired
	Delete []client.Object
}

// Detect compares desired with observed. Objects are matched by kind and
// name. An observed object is unchanged when its content hash annotation
// matches and it still carries every desired field value, so edits made
// outside the operator are repaired. Every object must carry its kind in its
// TypeMeta.
func (s *Service) Detect(cluster string, desired, observed []client.Object) *Plan {
	plan := &Plan{Result: NewResult(cluster)}

	existing := make(map[string]client.Object, len(observed))
	for _, obj := range observed {
		existing[objectKey(obj)] = obj
	}

	wanted := make(map[string]bool, len(desired))
	for _, obj := range desired {
		key := objectKey(obj)
		wanted[key] = true

		diff := Diff{
			Kind:     obj.GetObjectKind().GroupVersionKind().Kind,
			Name:     obj.GetName(),
			Expected: hashOf(obj),
		}
		current, ok := existing[key]
		switch {
		case !ok:
			diff.Action = ActionCreate
		case s.config.ForceResync || hashOf(current) != diff.Expected:
			diff.Action = ActionUpdate
			diff.Actual = hashOf(current)
		default:
			diff.Actual = diff.Expected
			diff.Action = ActionUnchanged
			path, err := FirstDifference(obj, current)
			if err != nil {
				s.log.Error(err, "failed to compare object, applying it", "object", key)
				diff.Action = ActionUpdate
			} else if path != "" {
				s.log.V(1).Info("object modified outside the operator", "object", key, "field", path)
				diff.Action = ActionUpdate
				diff.Field = path
			}
		}

		plan.Result.AddDiff(diff)
		if diff.Action != ActionUnchanged {
			plan.Apply = append(plan.Apply, obj)
		}
	}

	for _, obj := range observed {
		if wanted[objectKey(obj)] || !obj.GetDeletionTimestamp().IsZero() {
			continue
		}
		plan.Result.AddDiff(Diff{
			Kind:   obj.GetObjectKind().GroupVersionKind().Kind,
			Name:   obj.GetName(),
			Action: ActionDelete,
			Actual: hashOf(obj),
		})
		plan.Delete = append(plan.Delete, obj)
	}

	s.log.V(1).Info("drift detected", "cluster", cluster, "summary", plan.Result.Summary())
	return plan
}

func objectKey(obj client.Object) string {
	return obj.GetObjectKind().GroupVersionKind().Kind + "/" + obj.GetName()
}

func hashOf(obj client.Object) string {
	return obj.GetAnnotations()[hivev1alpha1.AnnotationConfigHash]
}
