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

package internal

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	sigsyaml "sigs.k8s.io/yaml"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/validation"
)

// Resource kinds understood by the loader
const (
	KindHiveCluster  = "HiveCluster"
	KindS3Connection = "S3Connection"
	KindSecret       = "Secret"
	KindConfigMap    = "ConfigMap"
)

// Manifests holds the documents of one or more files. Clusters are kept
// apart from the objects they may reference.
type Manifests struct {
	Clusters []*hivev1alpha1.HiveCluster

	// Referenced holds Secrets, ConfigMaps and S3Connections
	Referenced []client.Object
}

// typeMeta is used for initial parsing to determine the kind
type typeMeta struct {
	APIVersion string `json:"apiVersion"`
	Kind       string `json:"kind"`
}

// LoadFiles loads every file and applies namespace to objects without one.
func LoadFiles(namespace string, paths ...string) (*Manifests, error) {
	out := &Manifests{}
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		m, err := LoadReader(file, namespace)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out.Clusters = append(out.Clusters, m.Clusters...)
		out.Referenced = append(out.Referenced, m.Referenced...)
	}
	if len(out.Clusters) == 0 {
		return nil, fmt.Errorf("no HiveCluster found")
	}
	return out, nil
}

// LoadReader loads a multi-document YAML stream.
func LoadReader(r io.Reader, namespace string) (*Manifests, error) {
	documents, err := splitDocuments(r)
	if err != nil {
		return nil, err
	}

	out := &Manifests{}
	for i, doc := range documents {
		obj, err := parseDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse document %d: %w", i+1, err)
		}
		if obj.GetNamespace() == "" {
			obj.SetNamespace(namespace)
		}
		if hc, ok := obj.(*hivev1alpha1.HiveCluster); ok {
			out.Clusters = append(out.Clusters, hc)
			continue
		}
		out.Referenced = append(out.Referenced, obj)
	}
	return out, nil
}

// splitDocuments re-encodes every non-empty document of the stream.
func splitDocuments(r io.Reader) ([][]byte, error) {
	dec := yaml.NewDecoder(r)
	var documents [][]byte
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid YAML in document %d: %w", len(documents)+1, err)
		}
		if len(node.Content) == 0 || node.Content[0].Tag == "!!null" {
			continue
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		if err := enc.Encode(&node); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		documents = append(documents, buf.Bytes())
	}
	if len(documents) == 0 {
		return nil, fmt.Errorf("no valid resources found in file")
	}
	return documents, nil
}

// parseDocument parses a single YAML document. HiveClusters go through the
// strict parser; referenced objects only need to decode.
func parseDocument(doc []byte) (client.Object, error) {
	var meta typeMeta
	if err := sigsyaml.Unmarshal(doc, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	switch meta.Kind {
	case KindHiveCluster:
		hc, err := validation.ParseHiveCluster(doc)
		if err != nil {
			return nil, err
		}
		hc.SetGroupVersionKind(hivev1alpha1.GroupVersion.WithKind(KindHiveCluster))
		return hc, nil
	case KindS3Connection:
		conn := &hivev1alpha1.S3Connection{}
		if err := sigsyaml.UnmarshalStrict(doc, conn); err != nil {
			return nil, err
		}
		return conn, nil
	case KindSecret:
		secret := &corev1.Secret{}
		if err := sigsyaml.Unmarshal(doc, secret); err != nil {
			return nil, err
		}
		// The API server merges stringData into data on write
		for k, v := range secret.StringData {
			if secret.Data == nil {
				secret.Data = map[string][]byte{}
			}
			secret.Data[k] = []byte(v)
		}
		secret.StringData = nil
		return secret, nil
	case KindConfigMap:
		cm := &corev1.ConfigMap{}
		if err := sigsyaml.Unmarshal(doc, cm); err != nil {
			return nil, err
		}
		return cm, nil
	default:
		return nil, fmt.Errorf("unsupported kind: %q", meta.Kind)
	}
}
