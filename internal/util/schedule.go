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
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultResyncSchedule is the periodic full reconcile cadence.
const DefaultResyncSchedule = "@every 10m"

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ResyncSchedule computes when a cluster should next be reconciled even if
// nothing changed.
type ResyncSchedule struct {
	spec     string
	schedule cron.Schedule
}

// ParseResyncSchedule parses a standard five-field cron expression or a
// descriptor such as "@every 10m" or "@hourly".
func ParseResyncSchedule(spec string) (*ResyncSchedule, error) {
	if spec == "" {
		spec = DefaultResyncSchedule
	}
	s, err := scheduleParser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid resync schedule %q: %w", spec, err)
	}
	return &ResyncSchedule{spec: spec, schedule: s}, nil
}

// String returns the schedule expression.
func (r *ResyncSchedule) String() string {
	return r.spec
}

// Next returns the next activation after now.
func (r *ResyncSchedule) Next(now time.Time) time.Time {
	return r.schedule.Next(now)
}

// RequeueAfter returns the delay until the next activation, never less than a second.
func (r *ResyncSchedule) RequeueAfter(now time.Time) time.Duration {
	d := r.schedule.Next(now).Sub(now)
	if d < time.Second {
		return time.Second
	}
	return d
}
