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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/yaml"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/storage"
)

// OutputFormat selects how rendered objects are printed
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatYAML  OutputFormat = "yaml"
	FormatJSON  OutputFormat = "json"
)

// ParseOutputFormat accepts table, yaml (or yml) and json, ignoring case.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatTable, nil
	case FormatTable, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (table|yaml|json)", s)
	}
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return tw
}

// WriteObjects prints rendered objects as a YAML stream, a JSON List or a
// kind/namespace/name/config-hash table.
func WriteObjects(w io.Writer, format OutputFormat, objs []client.Object) error {
	switch format {
	case FormatYAML:
		for _, obj := range objs {
			out, err := yaml.Marshal(obj)
			if err != nil {
				return fmt.Errorf("failed to marshal %s: %w", obj.GetName(), err)
			}
			fmt.Fprintf(w, "---\n%s", out)
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"apiVersion": "v1",
			"kind":       "List",
			"items":      objs,
		})
	default:
		tw := newTable(w, "KIND", "NAMESPACE", "NAME", "CONFIG-HASH")
		for _, obj := range objs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				obj.GetObjectKind().GroupVersionKind().Kind,
				obj.GetNamespace(),
				obj.GetName(),
				obj.GetAnnotations()[hivev1alpha1.AnnotationConfigHash])
		}
		return tw.Flush()
	}
}

// ValidationResult is the outcome of validating one cluster.
type ValidationResult struct {
	Cluster string
	Err     error
}

// WriteValidation prints one row per field problem and a single row for
// each valid cluster.
func WriteValidation(w io.Writer, results []ValidationResult) error {
	tw := newTable(w, "CLUSTER", "RESULT", "FIELD", "MESSAGE")
	for _, r := range results {
		if r.Err == nil {
			fmt.Fprintf(tw, "%s\tvalid\t\t\n", r.Cluster)
			continue
		}
		for _, p := range problems(r.Err) {
			fmt.Fprintf(tw, "%s\tinvalid\t%s\t%s\n", r.Cluster, p.Field, p.Message)
		}
	}
	return tw.Flush()
}

func problems(err error) []*service.ValidationError {
	var all service.ValidationErrors
	if errors.As(err, &all) && len(all) > 0 {
		sorted := append(service.ValidationErrors(nil), all...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].Field < sorted[j].Field })
		return sorted
	}
	var one *service.ValidationError
	if errors.As(err, &one) {
		return []*service.ValidationError{one}
	}
	return []*service.ValidationError{{Field: "-", Message: err.Error()}}
}

// BundleFiles turns rendered objects into bundle entries named
// <namespace>/<kind>/<name>.yaml, sorted by name.
func BundleFiles(objs []client.Object) ([]storage.BundleFile, error) {
	files := make([]storage.BundleFile, 0, len(objs))
	for _, obj := range objs {
		out, err := yaml.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", obj.GetName(), err)
		}
		kind := strings.ToLower(obj.GetObjectKind().GroupVersionKind().Kind)
		files = append(files, storage.BundleFile{
			Name: fmt.Sprintf("%s/%s/%s.yaml", obj.GetNamespace(), kind, obj.GetName()),
			Data: out,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
