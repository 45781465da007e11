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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hive-operator/cmd/hive-operator/internal"
	"github.com/hive-operator/internal/validation"
)

var (
	validateFiles     []string
	validateNamespace string
)

var validateCmd = &cobra.Command{
	Use:   "validate -f FILE",
	Short: "Check HiveCluster manifests",
	Long: `Parse and validate every HiveCluster in the given files.

Unknown fields, values of the wrong type and invalid settings are reported
with their field path. References to Secrets, ConfigMaps and S3Connections
are not resolved.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := internal.LoadFiles(validateNamespace, validateFiles...)
		if err != nil {
			return err
		}

		results := make([]internal.ValidationResult, 0, len(m.Clusters))
		invalid := 0
		for _, hc := range m.Clusters {
			err := validation.Validate(hc)
			if err != nil {
				invalid++
			}
			results = append(results, internal.ValidationResult{Cluster: hc.Namespace + "/" + hc.Name, Err: err})
		}
		if err := internal.WriteValidation(cmd.OutOrStdout(), results); err != nil {
			return err
		}
		printVerbose(cmd, "checked %d clusters", len(m.Clusters))

		if invalid > 0 {
			return fmt.Errorf("%d of %d clusters are invalid", invalid, len(m.Clusters))
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringSliceVarP(&validateFiles, "filename", "f", nil, "Manifest file (repeatable)")
	validateCmd.Flags().StringVarP(&validateNamespace, "namespace", "n", "default", "Namespace of objects without one")
	_ = validateCmd.MarkFlagRequired("filename")
}
