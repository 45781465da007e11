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

package eventbus

import (
	"time"

	"k8s.io/apimachinery/pkg/types"
)

// Domain events published by the HiveCluster feature
const (
	EventClusterReconciled        = "ClusterReconciled"
	EventClusterDegraded          = "ClusterDegraded"
	EventClusterDeleted           = "ClusterDeleted"
	EventReferenceUnresolved      = "ReferenceUnresolved"
	EventUnsupportedConfiguration = "UnsupportedConfiguration"
	EventDependencyUnreachable    = "DependencyUnreachable"
)

// ClusterEvent carries the identity shared by every event about one HiveCluster.
// Embed it in concrete event types.
type ClusterEvent struct {
	name    string
	at      time.Time
	cluster types.NamespacedName
}

// NewClusterEvent stamps an event about cluster with the current time.
func NewClusterEvent(name string, cluster types.NamespacedName) ClusterEvent {
	return ClusterEvent{name: name, at: time.Now(), cluster: cluster}
}

func (e ClusterEvent) EventName() string             { return e.name }
func (e ClusterEvent) EventTime() time.Time          { return e.at }
func (e ClusterEvent) Cluster() types.NamespacedName { return e.cluster }

func clusterEvent(name, cluster, namespace string) ClusterEvent {
	return NewClusterEvent(name, types.NamespacedName{Namespace: namespace, Name: cluster})
}

// ClusterReconciled is published after a pass that applied the desired state.
type ClusterReconciled struct {
	ClusterEvent
	ReconcileID string
	Created     int
	Updated     int
	Deleted     int
}

func NewClusterReconciled(cluster, namespace, reconcileID string, created, updated, deleted int) *ClusterReconciled {
	return &ClusterReconciled{
		ClusterEvent: clusterEvent(EventClusterReconciled, cluster, namespace),
		ReconcileID:  reconcileID,
		Created:      created,
		Updated:      updated,
		Deleted:      deleted,
	}
}

// Changed reports whether the pass wrote anything.
func (e *ClusterReconciled) Changed() bool {
	return e.Created+e.Updated+e.Deleted > 0
}

// ClusterDegraded is published when a write still fails after the in-place retries.
type ClusterDegraded struct {
	ClusterEvent
	Object   string
	Attempts int
	Reason   string
}

func NewClusterDegraded(cluster, namespace, object string, attempts int, reason string) *ClusterDegraded {
	return &ClusterDegraded{
		ClusterEvent: clusterEvent(EventClusterDegraded, cluster, namespace),
		Object:       object,
		Attempts:     attempts,
		Reason:       reason,
	}
}

// ClusterDeleted is published from the finalizer.
type ClusterDeleted struct {
	ClusterEvent
}

func NewClusterDeleted(cluster, namespace string) *ClusterDeleted {
	return &ClusterDeleted{ClusterEvent: clusterEvent(EventClusterDeleted, cluster, namespace)}
}

// ReferenceUnresolved names the Secret, ConfigMap or S3Connection that is missing.
type ReferenceUnresolved struct {
	ClusterEvent
	Kind string
	Name string
}

func NewReferenceUnresolved(cluster, namespace, kind, name string) *ReferenceUnresolved {
	return &ReferenceUnresolved{
		ClusterEvent: clusterEvent(EventReferenceUnresolved, cluster, namespace),
		Kind:         kind,
		Name:         name,
	}
}

// UnsupportedConfiguration is published for a valid but risky combination.
type UnsupportedConfiguration struct {
	ClusterEvent
	Object  string
	Message string
}

func NewUnsupportedConfiguration(cluster, namespace, object, message string) *UnsupportedConfiguration {
	return &UnsupportedConfiguration{
		ClusterEvent: clusterEvent(EventUnsupportedConfiguration, cluster, namespace),
		Object:       object,
		Message:      message,
	}
}

// DependencyUnreachable is published when the database or bucket probe fails.
type DependencyUnreachable struct {
	ClusterEvent
	Dependency string
	Reason     string
}

func NewDependencyUnreachable(cluster, namespace, dependency, reason string) *DependencyUnreachable {
	return &DependencyUnreachable{
		ClusterEvent: clusterEvent(EventDependencyUnreachable, cluster, namespace),
		Dependency:   dependency,
		Reason:       reason,
	}
}
