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
	"fmt"
	"io"
	"net/url"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var _ = Describe("Retry", func() {
	gr := schema.GroupResource{Group: "apps", Resource: "statefulsets"}

	Describe("RetryWithBackoff", func() {
		var (
			ctx    context.Context
			cancel context.CancelFunc
			config RetryConfig
		)

		BeforeEach(func() {
			ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
			config = RetryConfig{
				MaxRetries:          3,
				InitialInterval:     5 * time.Millisecond,
				MaxInterval:         100 * time.Millisecond,
				Multiplier:          2.0,
				RandomizationFactor: 0,
			}
		})

		AfterEach(func() {
			cancel()
		})

		Context("when the function succeeds on first attempt", func() {
			It("should return success with 1 attempt", func() {
				callCount := 0
				result := RetryWithBackoff(ctx, config, func() error {
					callCount++
					return nil
				})

				Expect(result.LastError).To(BeNil())
				Expect(result.Attempts).To(Equal(1))
				Expect(result.Intervals).To(BeEmpty())
				Expect(callCount).To(Equal(1))
			})
		})

		Context("when a conflict keeps happening", func() {
			It("should retry with strictly increasing backoff", func() {
				config.RandomizationFactor = 0.1
				conflict := apierrors.NewConflict(gr, "hive-metastore-default", errors.New("object was modified"))

				result := RetryWithBackoff(ctx, config, func() error { return conflict })

				Expect(result.Attempts).To(Equal(4))
				Expect(result.Exhausted(config)).To(BeTrue())
				Expect(apierrors.IsConflict(result.LastError)).To(BeTrue())
				Expect(len(result.Intervals)).To(BeNumerically(">=", 2))
				for i := 1; i < len(result.Intervals); i++ {
					Expect(result.Intervals[i]).To(BeNumerically(">", result.Intervals[i-1]))
				}
			})

			It("should call OnRetry before every wait", func() {
				var attempts []int
				config.OnRetry = func(attempt int, _ time.Duration, _ error) {
					attempts = append(attempts, attempt)
				}

				RetryWithBackoff(ctx, config, func() error {
					return apierrors.NewServerTimeout(gr, "apply", 1)
				})

				Expect(attempts).To(Equal([]int{1, 2, 3}))
			})
		})

		Context("when the function fails then succeeds", func() {
			It("should stop retrying after success", func() {
				callCount := 0
				result := RetryWithBackoff(ctx, config, func() error {
					callCount++
					if callCount < 3 {
						return apierrors.NewTooManyRequests("slow down", 1)
					}
					return nil
				})

				Expect(result.LastError).To(BeNil())
				Expect(result.Attempts).To(Equal(3))
				Expect(result.Exhausted(config)).To(BeFalse())
			})
		})

		Context("when the error is not retryable", func() {
			It("should return after one attempt", func() {
				result := RetryWithBackoff(ctx, config, func() error {
					return apierrors.NewBadRequest("invalid")
				})

				Expect(result.Attempts).To(Equal(1))
				Expect(result.LastError).To(HaveOccurred())
			})
		})

		Context("when the context is cancelled", func() {
			It("should return the context error", func() {
				cancel()
				config.InitialInterval = time.Second
				result := RetryWithBackoff(ctx, config, func() error {
					return errors.New("connection refused")
				})

				Expect(result.LastError).To(MatchError(context.Canceled))
			})
		})

		It("should cap intervals at MaxInterval", func() {
			config.MaxRetries = 6
			config.MaxInterval = 20 * time.Millisecond
			result := RetryWithBackoff(ctx, config, func() error { return context.DeadlineExceeded })

			for _, interval := range result.Intervals {
				Expect(interval).To(BeNumerically("<=", 20*time.Millisecond))
			}
		})
	})

	DescribeTable("IsRetryableError",
		func(err error, expected bool) {
			Expect(IsRetryableError(err)).To(Equal(expected))
		},
		Entry("nil", nil, false),
		Entry("conflict", apierrors.NewConflict(gr, "x", errors.New("modified")), true),
		Entry("server timeout", apierrors.NewServerTimeout(gr, "patch", 1), true),
		Entry("too many requests", apierrors.NewTooManyRequests("busy", 1), true),
		Entry("service unavailable", apierrors.NewServiceUnavailable("down"), true),
		Entry("deadline exceeded", fmt.Errorf("apply: %w", context.DeadlineExceeded), true),
		Entry("connection refused", errors.New("dial tcp: connection refused"), true),
		Entry("invalid", apierrors.NewInvalid(schema.GroupKind{Kind: "Service"}, "x", nil), false),
		Entry("forbidden", apierrors.NewForbidden(gr, "x", errors.New("rbac")), false),
		Entry("canceled", context.Canceled, false),
		Entry("plain error", errors.New("boom"), false),
		Entry("wrapped EOF", fmt.Errorf("watch stream: %w", io.EOF), true),
		Entry("unexpected EOF", &url.Error{Op: "Get", URL: "https://api", Err: io.ErrUnexpectedEOF}, true),
		Entry("eof inside a word", errors.New("invalid geofence field"), false),
		Entry("eof in a message only", errors.New("read config: premature eof marker"), false),
	)
})
