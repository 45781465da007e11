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

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/hive-operator/cmd/hive-operator/internal"
	"github.com/hive-operator/internal/adapter"
	"github.com/hive-operator/internal/service/pipeline"
	"github.com/hive-operator/internal/storage"
)

var (
	renderFiles     []string
	renderNamespace string
	renderOutput    string
	renderBundle    string
	renderJVMArgs   []string
)

var renderCmd = &cobra.Command{
	Use:   "render -f FILE [-f FILE...]",
	Short: "Print the objects the operator would create",
	Long: `Run validation, reference resolution, config merge and rendering
offline. Secrets, ConfigMaps and S3Connections referenced by a cluster are
looked up among the documents of the given files.

With --bundle the objects are also written to a tar archive. The
compression follows the extension: .tar, .tar.gz, .tar.zst or .tar.lz4.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := internal.ParseOutputFormat(renderOutput)
		if err != nil {
			return err
		}
		m, err := internal.LoadFiles(renderNamespace, renderFiles...)
		if err != nil {
			return err
		}

		objs, warnings, err := renderManifests(cmd.Context(), m, renderJVMArgs)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
		}

		if renderBundle != "" {
			if err := writeBundle(renderBundle, objs); err != nil {
				return err
			}
			printVerbose(cmd, "wrote %d objects to %s", len(objs), renderBundle)
		}
		return internal.WriteObjects(cmd.OutOrStdout(), format, objs)
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringSliceVarP(&renderFiles, "filename", "f", nil, "Manifest file (repeatable)")
	f.StringVarP(&renderNamespace, "namespace", "n", "default", "Namespace of objects without one")
	f.StringVarP(&renderOutput, "output", "o", "yaml", "Output format (table|yaml|json)")
	f.StringVar(&renderBundle, "bundle", "", "Also write the objects to this archive")
	f.StringSliceVar(&renderJVMArgs, "extra-jvm-arg", nil, "JVM argument appended for every metastore. Repeatable.")
	_ = renderCmd.MarkFlagRequired("filename")
}

// renderManifests renders every cluster of m. References resolve against
// the other documents of m.
func renderManifests(ctx context.Context, m *internal.Manifests, jvmArgs []string) ([]client.Object, []string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	reader := fake.NewClientBuilder().WithScheme(scheme).WithObjects(m.Referenced...).Build()
	svc := pipeline.NewService(&pipeline.Config{
		Resolver:     adapter.NewResolver(reader, 10*time.Second),
		ExtraJVMArgs: jvmArgs,
		Logger:       logr.Discard(),
	})

	var (
		objs     []client.Object
		warnings []string
	)
	for _, hc := range m.Clusters {
		result, err := svc.Run(ctx, hc, pipeline.Options{})
		if err != nil {
			return nil, nil, fmt.Errorf("%s/%s: %w", hc.Namespace, hc.Name, err)
		}
		objs = append(objs, result.Set.Objects...)
		for _, w := range result.Set.Warnings {
			warnings = append(warnings, fmt.Sprintf("%s/%s: %s", hc.Namespace, hc.Name, w.String()))
		}
	}
	return objs, warnings, nil
}

func writeBundle(path string, objs []client.Object) (err error) {
	compressor, err := storage.CompressorForPath(path)
	if err != nil {
		return err
	}
	files, err := internal.BundleFiles(objs)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return storage.WriteBundle(out, compressor, files)
}
