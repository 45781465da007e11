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
	"errors"
	"time"
)

// TimeoutConfig bounds the blocking calls made during one reconcile.
// A zero field leaves the parent deadline in charge.
type TimeoutConfig struct {
	// APITimeout bounds each get, list, apply or delete against the platform
	APITimeout time.Duration

	// AdapterTimeout bounds resolving the external references of one cluster
	AdapterTimeout time.Duration

	// ProbeTimeout bounds a single database ping or bucket check
	ProbeTimeout time.Duration
}

// DefaultTimeoutConfig returns 15s for API calls, 10s for reference
// resolution and 5s for probes.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		APITimeout:     15 * time.Second,
		AdapterTimeout: 10 * time.Second,
		ProbeTimeout:   5 * time.Second,
	}
}

// WithTimeout derives a context bounded by timeout. Non-positive values
// return ctx unchanged with a no-op cancel.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return ctx, func() {}
}

// WithAPITimeout bounds ctx by APITimeout.
func (c TimeoutConfig) WithAPITimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return WithTimeout(ctx, c.APITimeout)
}

// WithProbeTimeout bounds ctx by ProbeTimeout.
func (c TimeoutConfig) WithProbeTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return WithTimeout(ctx, c.ProbeTimeout)
}

// IsTimeoutError reports whether err is or wraps context.DeadlineExceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
