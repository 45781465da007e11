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
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/predicate"

	"github.com/hive-operator/internal/util"
)

// InstanceIDPredicate admits only HiveClusters carrying this instance's
// operator-instance-id label. The "default" instance also claims unlabeled
// clusters, so a single operator needs no labels at all.
func InstanceIDPredicate(instanceID string) predicate.Predicate {
	return predicate.NewPredicateFuncs(func(obj client.Object) bool {
		return util.OwnedByInstance(obj, instanceID)
	})
}
