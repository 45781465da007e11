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
	"io"
	"math/rand"
	"strings"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

// RetryConfig is an exponential backoff policy for in-place retries of
// platform writes and dependency probes.
type RetryConfig struct {
	// MaxRetries counts the attempts after the first, immediate one
	MaxRetries int
	// InitialInterval is the wait after the first failure
	InitialInterval time.Duration
	// MaxInterval caps every wait
	MaxInterval time.Duration
	// Multiplier grows the wait between consecutive retries
	Multiplier float64
	// RandomizationFactor is the jitter fraction in [0, 1)
	RandomizationFactor float64
	// Retryable decides whether an error is worth another attempt.
	// Defaults to IsRetryableError.
	Retryable func(error) bool
	// OnRetry is called before each backoff wait
	OnRetry func(attempt int, wait time.Duration, err error)
}

// DefaultRetryConfig returns the in-place retry policy for platform writes.
// Sequence: immediate -> 200ms -> 400ms -> 800ms -> 1.6s (capped at 5s)
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:          4,
		InitialInterval:     200 * time.Millisecond,
		MaxInterval:         5 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.1,
	}
}

// ProbeRetryConfig returns config for dependency probes, which tolerate a
// slower start of the probed service.
// Sequence: immediate -> 1s -> 2s
func ProbeRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:          2,
		InitialInterval:     time.Second,
		MaxInterval:         10 * time.Second,
		Multiplier:          2.0,
		RandomizationFactor: 0.2,
	}
}

// RetryResult reports how a retried call went.
type RetryResult struct {
	Attempts int
	// LastError is nil on success
	LastError error
	TotalTime time.Duration
	// Intervals holds every backoff wait in order
	Intervals []time.Duration
}

// Exhausted reports whether the operation failed after using every retry.
func (r RetryResult) Exhausted(config RetryConfig) bool {
	return r.LastError != nil && r.Attempts > config.MaxRetries
}

// RetryWithBackoff executes fn with exponential backoff on failure.
// The first attempt is immediate. Non-retryable errors return at once.
func RetryWithBackoff(ctx context.Context, config RetryConfig, fn func() error) RetryResult {
	startTime := time.Now()
	retryable := config.Retryable
	if retryable == nil {
		retryable = IsRetryableError
	}

	result := RetryResult{}
	maxAttempts := config.MaxRetries + 1
	base := time.Duration(0)
	var wait time.Duration

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if wait > 0 {
			select {
			case <-ctx.Done():
				result.LastError = ctx.Err()
				result.TotalTime = time.Since(startTime)
				return result
			case <-time.After(wait):
			}
		}

		result.Attempts = attempt + 1
		result.LastError = fn()
		if result.LastError == nil || !retryable(result.LastError) {
			result.TotalTime = time.Since(startTime)
			return result
		}
		if attempt == maxAttempts-1 {
			break
		}

		if base == 0 {
			base = config.InitialInterval
		} else {
			base = time.Duration(float64(base) * config.Multiplier)
		}
		if base > config.MaxInterval {
			base = config.MaxInterval
		}
		wait = jitter(base, config.RandomizationFactor)

		result.Intervals = append(result.Intervals, wait)
		if config.OnRetry != nil {
			config.OnRetry(attempt+1, wait, result.LastError)
		}
	}

	result.TotalTime = time.Since(startTime)
	return result
}

// jitter spreads d by +/- factor/2 so that consecutive uncapped intervals stay
// strictly increasing for any multiplier above (1+factor/2)/(1-factor/2).
func jitter(d time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		return d
	}
	delta := factor / 2 * float64(d)
	return time.Duration(float64(d) - delta + rand.Float64()*2*delta)
}

// IsRetryableError determines if an error should trigger a retry.
// Returns true for transient platform errors (conflicts, timeouts, throttling)
// and transient network errors.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	if apierrors.IsConflict(err) ||
		apierrors.IsServerTimeout(err) ||
		apierrors.IsTimeout(err) ||
		apierrors.IsTooManyRequests(err) ||
		apierrors.IsServiceUnavailable(err) ||
		apierrors.IsInternalError(err) {
		return true
	}
	// These never succeed on retry without a spec or RBAC change.
	if apierrors.IsInvalid(err) || apierrors.IsForbidden(err) || apierrors.IsBadRequest(err) ||
		apierrors.IsUnauthorized(err) || apierrors.IsNotFound(err) || apierrors.IsAlreadyExists(err) {
		return false
	}

	errStr := strings.ToLower(err.Error())
	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"i/o timeout",
		"deadline exceeded",
		"temporary failure",
		"connection timed out",
		"network is unreachable",
		"no route to host",
		"broken pipe",
		"connection closed",
		"http2: client connection lost",
		"unavailable",
		"try again",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}
