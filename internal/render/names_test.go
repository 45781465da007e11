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

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

func TestNames(t *testing.T) {
	assert.Equal(t, "hive-metastore-default", MetastoreObjectName("hive", "default"))
	assert.Equal(t, "hive-metastore-default-headless", HeadlessServiceName("hive", hivev1alpha1.RoleMetastore, "default"))
	assert.Equal(t, "hive-metastore-default-metrics", MetricsServiceName("hive", hivev1alpha1.RoleMetastore, "default"))
	assert.Equal(t, "hive", RoleServiceName("hive"))
	assert.Equal(t, "hive-metastore", PDBName("hive", hivev1alpha1.RoleMetastore))
	assert.Equal(t, "hive", DiscoveryName("hive"))
	assert.Equal(t, "hive-external", ExternalDiscoveryName("hive"))
}

func TestNames_Truncation(t *testing.T) {
	cluster := strings.Repeat("c", 40)
	long := MetastoreObjectName(cluster, "group-a")
	other := MetastoreObjectName(cluster, "group-b")

	assert.Len(t, long, StatefulSetNameLimit)
	assert.Contains(t, long, truncationMark)
	assert.NotEqual(t, long, other)
	assert.Equal(t, long, MetastoreObjectName(cluster, "group-a"))

	headless := HeadlessServiceName(cluster, hivev1alpha1.RoleMetastore, "group-a")
	assert.LessOrEqual(t, len(headless), ServiceNameLimit)
	assert.True(t, strings.HasPrefix(headless, long))
}

func TestNames_HashSeparatesParts(t *testing.T) {
	assert.NotEqual(t, hashParts([]string{"a-b", "c"}), hashParts([]string{"a", "b-c"}))
	assert.Len(t, hashParts([]string{"x"}), 2*hashBytes)
}

func TestLabels(t *testing.T) {
	labels := Labels("hive", hivev1alpha1.RoleMetastore, "default", "4.0.0")
	assert.Equal(t, map[string]string{
		hivev1alpha1.LabelName:      hivev1alpha1.AppName,
		hivev1alpha1.LabelInstance:  "hive",
		hivev1alpha1.LabelComponent: hivev1alpha1.RoleMetastore,
		hivev1alpha1.LabelRoleGroup: "default",
		hivev1alpha1.LabelManagedBy: hivev1alpha1.OperatorName,
		hivev1alpha1.LabelVersion:   "4.0.0",
	}, labels)

	role := SelectorLabels("hive", hivev1alpha1.RoleMetastore, "")
	assert.NotContains(t, role, hivev1alpha1.LabelRoleGroup)
	assert.Equal(t, map[string]string{"a": "2", "b": "1"}, MergeLabels(map[string]string{"a": "1", "b": "1"}, map[string]string{"a": "2"}))
}
