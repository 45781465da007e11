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

package drift

import (
	"fmt"
	"reflect"
	"sort"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
)

// FirstDifference returns the path of the first field set on desired whose
// value differs on observed, or "" when observed still carries every desired
// value. Fields only observed has, such as server defaults, are ignored, as
// are status and all metadata except labels and annotations.
func FirstDifference(desired, observed client.Object) (string, error) {
	want, err := managedFields(desired)
	if err != nil {
		return "", fmt.Errorf("failed to convert desired %s: %w", desired.GetName(), err)
	}
	have, err := managedFields(observed)
	if err != nil {
		return "", fmt.Errorf("failed to convert observed %s: %w", observed.GetName(), err)
	}
	return firstDifference("", want, have), nil
}

func managedFields(obj client.Object) (map[string]interface{}, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, err
	}
	delete(u, "status")
	delete(u, "apiVersion")
	delete(u, "kind")
	meta := map[string]interface{}{}
	if m, ok := u["metadata"].(map[string]interface{}); ok {
		for _, key := range []string{"labels", "annotations"} {
			if v, ok := m[key]; ok {
				meta[key] = v
			}
		}
	}
	u["metadata"] = meta
	return u, nil
}

func firstDifference(path string, want, have interface{}) string {
	switch w := want.(type) {
	case nil:
		return ""
	case map[string]interface{}:
		h, ok := have.(map[string]interface{})
		if !ok {
			if len(w) == 0 && have == nil {
				return ""
			}
			return path
		}
		keys := make([]string, 0, len(w))
		for k := range w {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if d := firstDifference(path+"."+k, w[k], h[k]); d != "" {
				return d
			}
		}
		return ""
	case []interface{}:
		h, ok := have.([]interface{})
		if !ok {
			if len(w) == 0 && have == nil {
				return ""
			}
			return path
		}
		if len(h) != len(w) {
			return path
		}
		for i := range w {
			if d := firstDifference(fmt.Sprintf("%s[%d]", path, i), w[i], h[i]); d != "" {
				return d
			}
		}
		return ""
	default:
		if have == nil && reflect.ValueOf(want).IsZero() {
			return ""
		}
		if !reflect.DeepEqual(want, have) {
			return path
		}
		return ""
	}
}
