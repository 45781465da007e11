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

package drift

import (
	"fmt"
	"time"
)

// Action is what the controller must do with one object.
type Action string

const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionUnchanged Action = "unchanged"
)

// Result contains the outcome of comparing desired objects with the objects
// observed in the cluster.
type Result struct {
	// ResourceName is the HiveCluster the objects belong to
	ResourceName string `json:"resourceName"`

	// CheckedAt is when the comparison ran
	CheckedAt time.Time `json:"checkedAt"`

	// Diffs holds one entry per desired or orphaned object
	Diffs []Diff `json:"diffs,omitempty"`
}

// NewResult creates a new drift result for the given cluster.
func NewResult(resourceName string) *Result {
	return &Result{
		ResourceName: resourceName,
		CheckedAt:    time.Now(),
	}
}

// HasDrift returns true if any object needs a write.
func (r *Result) HasDrift() bool {
	for _, d := range r.Diffs {
		if d.Action != ActionUnchanged {
			return true
		}
	}
	return false
}

// HasChanges returns true if any desired object is created or updated.
// Orphan deletion alone does not count.
func (r *Result) HasChanges() bool {
	return r.Count(ActionCreate)+r.Count(ActionUpdate) > 0
}

// Count returns the number of diffs with the given action.
func (r *Result) Count(action Action) int {
	n := 0
	for _, d := range r.Diffs {
		if d.Action == action {
			n++
		}
	}
	return n
}

// AddDiff adds a difference to the result.
func (r *Result) AddDiff(diff Diff) {
	r.Diffs = append(r.Diffs, diff)
}

// Summary is a one-line description for events and logs.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d created, %d updated, %d deleted, %d unchanged",
		r.Count(ActionCreate), r.Count(ActionUpdate), r.Count(ActionDelete), r.Count(ActionUnchanged))
}

// Diff represents the state of a single object.
type Diff struct {
	// Kind is the object kind, e.g. StatefulSet
	Kind string `json:"kind"`

	// Name is the object name
	Name string `json:"name"`

	Action Action `json:"action"`

	// Expected is the desired content hash
	Expected string `json:"expected,omitempty"`

	// Actual is the content hash found on the observed object
	Actual string `json:"actual,omitempty"`

	// Field is the first desired field changed on the observed object when
	// the hashes match
	Field string `json:"field,omitempty"`
}

// Key is the kind/name identity of the object.
func (d Diff) Key() string {
	return d.Kind + "/" + d.Name
}
