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
	"runtime/debug"

	"github.com/spf13/cobra"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
)

// Set with -ldflags "-X github.com/hive-operator/cmd/hive-operator/cmd.version=..."
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// moduleVersion falls back to the module version recorded by go install.
func moduleVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the build of hive-operator and the API it serves.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "hive-operator %s (commit %s, built %s)\n", moduleVersion(), commit, buildDate)
		fmt.Fprintf(out, "  API:   %s\n", hivev1alpha1.GroupVersion.String())
		fmt.Fprintf(out, "  Image: %s:<productVersion>\n", hivev1alpha1.DefaultImageRepository)
	},
}
