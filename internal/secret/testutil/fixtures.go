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

// Package testutil builds the Secrets and ConfigMaps that HiveCluster
// references resolve against.
package testutil

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	Namespace = "default"

	// CredentialsSecret holds the metastore database login
	CredentialsSecret = "hive-credentials"
	Username          = "hive"
	Password          = "hivehive"

	// OPAConfigMap is the discovery ConfigMap of an OPA cluster
	OPAConfigMap = "opa"
	OPAURL       = "http://opa:8081/"
)

// CredentialSecret returns CredentialsSecret in namespace with username and
// password keys.
func CredentialSecret(namespace string) *corev1.Secret {
	return Secret(namespace, CredentialsSecret, "username", Username, "password", Password)
}

// Secret returns a Secret holding the key/value pairs in kv.
func Secret(namespace, name string, kv ...string) *corev1.Secret {
	data := make(map[string][]byte, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[kv[i]] = []byte(kv[i+1])
	}
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Data:       data,
	}
}

// OPADiscovery returns the OPA discovery ConfigMap in namespace.
func OPADiscovery(namespace string) *corev1.ConfigMap {
	return &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: OPAConfigMap, Namespace: namespace},
		Data:       map[string]string{"OPA": OPAURL},
	}
}
