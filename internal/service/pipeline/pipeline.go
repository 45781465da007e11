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

// Package pipeline turns a HiveCluster into its desired resources:
// Validate, Resolve, Merge, Render. Every step is logged with its duration.
package pipeline

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"k8s.io/utils/ptr"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/merge"
	"github.com/hive-operator/internal/render"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/validation"
)

// DefaultReplicas applies to role groups without replicas.
const DefaultReplicas int32 = 1

// Resolver resolves the external references of a cluster.
type Resolver interface {
	Resolve(ctx context.Context, hc *hivev1alpha1.HiveCluster) (*adapter.Resolved, error)
}

// Config contains configuration for the pipeline.
type Config struct {
	// Resolver is optional. Without one no external reference is resolved.
	Resolver Resolver

	// ExtraJVMArgs are appended to the operator JVM arguments of every group
	ExtraJVMArgs []string

	Logger logr.Logger
}

// Service runs the pipeline. It holds no per-cluster state.
type Service struct {
	resolver     Resolver
	extraJVMArgs []string
	log          logr.Logger
}

// NewService creates a pipeline service.
func NewService(cfg *Config) *Service {
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Service{
		resolver:     cfg.Resolver,
		extraJVMArgs: cfg.ExtraJVMArgs,
		log:          log.WithName("PipelineService"),
	}
}

// Options tune a single run.
type Options struct {
	// ExternalAddresses are passed to the renderer for external discovery
	ExternalAddresses []string

	// OnPhase is called when the run enters a phase
	OnPhase func(hivev1alpha1.Phase)
}

// Result holds the output of every step.
type Result struct {
	Resolved *adapter.Resolved
	Groups   []*merge.MergedConfig
	Set      *render.DesiredResourceSet
}

// Run executes the pipeline. Validation and reference errors are returned
// unwrapped so callers can classify them.
func (s *Service) Run(ctx context.Context, hc *hivev1alpha1.HiveCluster, opts Options) (*Result, error) {
	name := hc.Namespace + "/" + hc.Name
	enter := func(p hivev1alpha1.Phase) {
		if opts.OnPhase != nil {
			opts.OnPhase(p)
		}
	}

	enter(hivev1alpha1.PhaseValidating)
	step := service.BeginStep(s.log, "Validate", name)
	if err := validation.Validate(hc); err != nil {
		step.Failed(err)
		return nil, err
	}
	step.Done("cluster is valid")

	result := &Result{Resolved: &adapter.Resolved{}}
	if s.resolver != nil {
		step = service.BeginStep(s.log, "Resolve", name)
		resolved, err := s.resolver.Resolve(ctx, hc)
		if err != nil {
			step.Failed(err)
			return nil, err
		}
		result.Resolved = resolved
		step.Done("references resolved",
			"secrets", len(resolved.ReferencedSecrets),
			"configMaps", len(resolved.ReferencedConfigMaps))
	}

	enter(hivev1alpha1.PhaseMerging)
	groups, err := s.merge(hc, result.Resolved)
	if err != nil {
		return nil, err
	}
	result.Groups = groups

	enter(hivev1alpha1.PhaseRendering)
	step = service.BeginStep(s.log, "Render", name)
	set, err := render.Render(render.Input{
		Cluster:           hc,
		Groups:            groups,
		Resolved:          result.Resolved,
		ExternalAddresses: opts.ExternalAddresses,
	})
	if err != nil {
		step.Failed(err)
		return nil, err
	}
	step.Done("rendered", "objects", len(set.Objects), "warnings", len(set.Warnings))
	result.Set = set
	return result, nil
}

// merge builds one MergedConfig per role group, in group name order.
func (s *Service) merge(hc *hivev1alpha1.HiveCluster, resolved *adapter.Resolved) ([]*merge.MergedConfig, error) {
	role := hc.Spec.Metastore
	defaults := merge.DefaultLayer(hc.Name, resolved.Properties)

	jvmArgs := make([]string, 0, len(resolved.JVMArgs)+len(s.extraJVMArgs))
	jvmArgs = append(jvmArgs, resolved.JVMArgs...)
	jvmArgs = append(jvmArgs, s.extraJVMArgs...)
	derive := merge.MetastoreDerivation(jvmArgs)

	groups := make([]*merge.MergedConfig, 0, len(role.RoleGroups))
	for _, name := range role.RoleGroupNames() {
		group := role.RoleGroups[name]
		resource := fmt.Sprintf("%s/%s/%s", hc.Name, hivev1alpha1.RoleMetastore, name)
		step := service.BeginStep(s.log, "Merge", resource)

		mc, err := merge.Merge(merge.Target{
			Role:      hivev1alpha1.RoleMetastore,
			RoleGroup: name,
			Replicas:  ptr.Deref(group.Replicas, DefaultReplicas),
		}, merge.RoleGroupLayers(defaults, role, group), derive)
		if err != nil {
			step.Failed(err)
			return nil, err
		}
		step.Done("merged", "hash", mc.Hash())
		groups = append(groups, mc)
	}
	return groups, nil
}
