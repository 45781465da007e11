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

package service

import (
	"time"

	"github.com/go-logr/logr"
)

// StepLog logs one pipeline step of one resource and reports its duration.
//
//	step := service.BeginStep(log, "Merge", "simple-hive/metastore/default")
//	if err != nil {
//	    step.Failed(err)
//	    return err
//	}
//	step.Done("merged", "hash", hash)
type StepLog struct {
	log   logr.Logger
	start time.Time
}

// BeginStep logs the start of step at V(1).
func BeginStep(log logr.Logger, step, resource string) *StepLog {
	s := &StepLog{
		log:   log.WithValues("step", step, "resource", resource),
		start: time.Now(),
	}
	s.log.V(1).Info("Step started")
	return s
}

// Done logs completion at V(1).
func (s *StepLog) Done(msg string, keysAndValues ...interface{}) {
	s.log.V(1).Info(msg, append(keysAndValues, "duration", s.Elapsed().String())...)
}

// Failed logs err. Errors caused by the cluster definition itself
// (validation, reserved keys, missing references) are expected and stay at
// V(1); anything else is logged as an error.
func (s *StepLog) Failed(err error) {
	if IsValidationError(err) || IsReservedKey(err) || IsUnresolvedReference(err) {
		s.log.V(1).Info("Step rejected", "error", err.Error(), "duration", s.Elapsed().String())
		return
	}
	s.log.Error(err, "Step failed", "duration", s.Elapsed().String())
}

// Elapsed returns the time since the step began.
func (s *StepLog) Elapsed() time.Duration {
	return time.Since(s.start)
}
