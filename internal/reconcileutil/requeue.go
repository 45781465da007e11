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

// Package reconcileutil maps reconcile errors to controller-runtime results.
package reconcileutil

import (
	"time"

	ctrl "sigs.k8s.io/controller-runtime"

	"github.com/hive-operator/internal/service"
)

// UnresolvedRecheckInterval is how long a cluster waits before looking for a
// missing Secret, ConfigMap or S3Connection again.
const UnresolvedRecheckInterval = 10 * time.Second

// Outcome is what happens to a request after a failed pass.
type Outcome int

const (
	// Backoff returns the error so the rate limiter schedules the retry
	Backoff Outcome = iota

	// Recheck requeues after UnresolvedRecheckInterval without an error
	Recheck

	// WaitForChange drops the request until the HiveCluster is edited
	WaitForChange
)

var outcomeNames = [...]string{
	Backoff:       "backoff",
	Recheck:       "recheck",
	WaitForChange: "wait-for-change",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Classify decides the Outcome for err. A nil error is Backoff, which
// Requeue turns into an empty result.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return Backoff
	case service.IsValidationError(err):
		return WaitForChange
	case service.IsUnresolvedReference(err):
		return Recheck
	default:
		return Backoff
	}
}

// Requeue returns the reconcile result for err.
func Requeue(err error) (ctrl.Result, error) {
	if err == nil {
		return ctrl.Result{}, nil
	}
	switch Classify(err) {
	case WaitForChange:
		return ctrl.Result{}, nil
	case Recheck:
		return ctrl.Result{RequeueAfter: UnresolvedRecheckInterval}, nil
	default:
		return ctrl.Result{}, err
	}
}
