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

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"
)

func TestDefaultOperatorConfig(t *testing.T) {
	cfg := DefaultOperatorConfig()

	assert.Equal(t, 4, cfg.MaxConcurrentReconciles)
	assert.Equal(t, "@every 10m", cfg.ResyncSchedule)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 10*time.Second, cfg.AdapterTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownDrain)
	assert.False(t, cfg.ProbeDependencies)
	assert.Equal(t, 5*time.Minute, cfg.ProbeInterval)
	assert.Equal(t, "default", cfg.InstanceID)
	assert.Equal(t, time.Second, cfg.RateLimiter.BaseDelay)
	assert.Equal(t, 5*time.Minute, cfg.RateLimiter.MaxDelay)
	assert.NoError(t, cfg.Validate())
}

func TestOperatorConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OperatorConfig)
		wantErr string
	}{
		{name: "zero workers", mutate: func(c *OperatorConfig) { c.MaxConcurrentReconciles = 0 }, wantErr: "max concurrent"},
		{name: "empty instance", mutate: func(c *OperatorConfig) { c.InstanceID = "" }, wantErr: "instance id"},
		{name: "bad schedule", mutate: func(c *OperatorConfig) { c.ResyncSchedule = "every ten minutes" }, wantErr: "invalid resync schedule"},
		{name: "max below base", mutate: func(c *OperatorConfig) { c.RateLimiter.MaxDelay = time.Millisecond }, wantErr: "rate limiter delays"},
		{name: "zero qps", mutate: func(c *OperatorConfig) { c.RateLimiter.QPS = 0 }, wantErr: "qps"},
		{name: "zero probe interval", mutate: func(c *OperatorConfig) {
			c.ProbeDependencies = true
			c.ProbeInterval = 0
		}, wantErr: "probe interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultOperatorConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOperatorConfigTimeouts(t *testing.T) {
	cfg := DefaultOperatorConfig()
	cfg.ProbeTimeout = 2 * time.Second

	timeouts := cfg.Timeouts()
	assert.Equal(t, cfg.APITimeout, timeouts.APITimeout)
	assert.Equal(t, cfg.AdapterTimeout, timeouts.AdapterTimeout)
	assert.Equal(t, 2*time.Second, timeouts.ProbeTimeout)
}

func TestRateLimiterBacksOffPerItem(t *testing.T) {
	limiter := DefaultOperatorConfig().RateLimiter.NewRateLimiter()
	req := reconcile.Request{NamespacedName: types.NamespacedName{Namespace: "default", Name: "simple-hive"}}

	first := limiter.When(req)
	second := limiter.When(req)
	third := limiter.When(req)

	assert.Equal(t, time.Second, first)
	assert.Equal(t, 2*time.Second, second)
	assert.Equal(t, 4*time.Second, third)
	assert.Equal(t, 3, limiter.NumRequeues(req))

	limiter.Forget(req)
	assert.Equal(t, 0, limiter.NumRequeues(req))
}
