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

// Package validation parses HiveCluster manifests strictly and checks them
// before any configuration is merged.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
)

// ParseHiveCluster decodes a YAML or JSON manifest. Unknown fields and values
// of the wrong type are rejected rather than dropped or coerced.
func ParseHiveCluster(data []byte) (*hivev1alpha1.HiveCluster, error) {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, service.NewValidationError("manifest", "invalid YAML: %v", err)
	}

	dec := json.NewDecoder(bytes.NewReader(jsonData))
	dec.DisallowUnknownFields()

	hc := &hivev1alpha1.HiveCluster{}
	if err := dec.Decode(hc); err != nil {
		return nil, decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, service.NewValidationError("manifest", "trailing data after the HiveCluster document")
	}

	if hc.Kind != "" && hc.Kind != "HiveCluster" {
		return nil, service.NewValidationError("kind", "expected HiveCluster, got %q", hc.Kind)
	}
	if hc.APIVersion != "" && hc.APIVersion != hivev1alpha1.GroupVersion.String() {
		return nil, service.NewValidationError("apiVersion", "expected %s, got %q",
			hivev1alpha1.GroupVersion.String(), hc.APIVersion)
	}
	return hc, nil
}

func decodeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "manifest"
		}
		return service.NewValidationError(field, "must be a %s, got %s", typeErr.Type.String(), typeErr.Value)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return service.NewValidationError("manifest", "syntax error at offset %d: %v", syntaxErr.Offset, err)
	}
	// encoding/json reports unknown fields as plain errors
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		name := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return service.NewValidationError(name, "unknown field")
	}
	return service.NewValidationError("manifest", "%v", err)
}

// StrictDecode decodes raw JSON into out, rejecting unknown fields.
func StrictDecode(raw []byte, out interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("strict decode: %w", err)
	}
	return nil
}
