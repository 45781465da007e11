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

package secret

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/hive-operator/internal/service"
)

// Default credential keys in a database credentials secret
const (
	UsernameKey = "username"
	PasswordKey = "password"
)

// Manager handles lookups of referenced Secrets and ConfigMaps.
// A missing object or key becomes a *service.UnresolvedReferenceError; any
// other API error is returned wrapped.
type Manager struct {
	client client.Reader
}

// NewManager creates a new secret manager
func NewManager(c client.Reader) *Manager {
	return &Manager{client: c}
}

// Credentials holds username and password
type Credentials struct {
	Username string
	Password string
}

// GetSecret retrieves a secret by name
func (m *Manager) GetSecret(ctx context.Context, namespace, name string) (*corev1.Secret, error) {
	secret := &corev1.Secret{}
	if err := m.get(ctx, "Secret", namespace, name, secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// GetSecretKey retrieves a specific key from a secret
func (m *Manager) GetSecretKey(ctx context.Context, namespace, name, key string) ([]byte, error) {
	secret, err := m.GetSecret(ctx, namespace, name)
	if err != nil {
		return nil, err
	}
	data, ok := secret.Data[key]
	if !ok {
		return nil, service.NewUnresolvedReferenceError("Secret", name, key, nil)
	}
	return data, nil
}

// GetFirstSecretKey returns the first of keys present in the secret
func (m *Manager) GetFirstSecretKey(ctx context.Context, namespace, name string, keys ...string) (string, []byte, error) {
	secret, err := m.GetSecret(ctx, namespace, name)
	if err != nil {
		return "", nil, err
	}
	for _, k := range keys {
		if v, ok := secret.Data[k]; ok {
			return k, v, nil
		}
	}
	return "", nil, service.NewUnresolvedReferenceError("Secret", name, keys[0],
		fmt.Errorf("none of the keys %v present", keys))
}

// GetCredentials retrieves the username and password keys of a secret
func (m *Manager) GetCredentials(ctx context.Context, namespace, name string) (*Credentials, error) {
	secret, err := m.GetSecret(ctx, namespace, name)
	if err != nil {
		return nil, err
	}

	username, ok := secret.Data[UsernameKey]
	if !ok {
		return nil, service.NewUnresolvedReferenceError("Secret", name, UsernameKey, nil)
	}
	password, ok := secret.Data[PasswordKey]
	if !ok {
		return nil, service.NewUnresolvedReferenceError("Secret", name, PasswordKey, nil)
	}

	return &Credentials{
		Username: string(username),
		Password: string(password),
	}, nil
}

// GetConfigMap retrieves a configmap by name
func (m *Manager) GetConfigMap(ctx context.Context, namespace, name string) (*corev1.ConfigMap, error) {
	cm := &corev1.ConfigMap{}
	if err := m.get(ctx, "ConfigMap", namespace, name, cm); err != nil {
		return nil, err
	}
	return cm, nil
}

// GetConfigMapKey retrieves a specific key from a configmap
func (m *Manager) GetConfigMapKey(ctx context.Context, namespace, name, key string) (string, error) {
	cm, err := m.GetConfigMap(ctx, namespace, name)
	if err != nil {
		return "", err
	}
	v, ok := cm.Data[key]
	if !ok {
		return "", service.NewUnresolvedReferenceError("ConfigMap", name, key, nil)
	}
	return v, nil
}

func (m *Manager) get(ctx context.Context, kind, namespace, name string, obj client.Object) error {
	err := m.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: name}, obj)
	if apierrors.IsNotFound(err) {
		return service.NewUnresolvedReferenceError(kind, name, "", err)
	}
	if err != nil {
		return fmt.Errorf("failed to get %s %s/%s: %w", kind, namespace, name, err)
	}
	return nil
}
