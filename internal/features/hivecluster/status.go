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

package hivecluster

import (
	"context"
	"fmt"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/logging"
	"github.com/hive-operator/internal/util"
)

// setSyncedStatus sets the conditions and discovery hash after a pass that
// wrote every desired object.
func setSyncedStatus(hc *hivev1alpha1.HiveCluster, result *SyncResult) {
	conds := &hc.Status.Conditions
	gen := hc.Generation
	r := result.Readiness
	replicas := fmt.Sprintf("%d/%d replicas ready", r.ReadyReplicas, r.DesiredReplicas)

	switch {
	case hc.IsStopped():
		util.SetAvailableCondition(conds, metav1.ConditionFalse, util.ReasonStopped, "Cluster is stopped", gen)
	case r.Ready():
		util.SetAvailableCondition(conds, metav1.ConditionTrue, util.ReasonAllReplicasReady, replicas, gen)
	default:
		util.SetAvailableCondition(conds, metav1.ConditionFalse, util.ReasonReplicasNotReady,
			fmt.Sprintf("%s; waiting for %s", replicas, strings.Join(r.NotReady, ", ")), gen)
	}

	switch {
	case result.Plan.Result.HasChanges():
		util.SetProgressingCondition(conds, metav1.ConditionTrue, util.ReasonApplying, result.Plan.Result.Summary(), gen)
	case !r.Ready():
		util.SetProgressingCondition(conds, metav1.ConditionTrue, util.ReasonRollingOut,
			"Waiting for "+strings.Join(r.NotReady, ", "), gen)
	default:
		util.SetProgressingCondition(conds, metav1.ConditionFalse, util.ReasonUpToDate, "Observed state matches desired state", gen)
	}

	util.SetDegradedCondition(conds, metav1.ConditionFalse, util.ReasonNoFailures, "All writes succeeded", gen)

	hc.Status.DiscoveryHash = result.Set.DiscoveryHash()
	hc.Status.Message = replicas
	if result.Changed() {
		hc.Status.Message = result.Plan.Result.Summary()
	}
}

// stamp records which reconcile wrote the status and orders the conditions.
func stamp(ctx context.Context, hc *hivev1alpha1.HiveCluster) {
	now := metav1.Now()
	hc.Status.ReconcileID = logging.IDFromContext(ctx)
	hc.Status.LastReconcileTime = &now
	util.SortConditions(hc.Status.Conditions)
}
