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

package format

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// VectorIdentity labels the log events shipped by the vector sidecar.
type VectorIdentity struct {
	Namespace string
	Cluster   string
	Role      string
	RoleGroup string
	// LogDir is scanned for *.log4j2.xml files
	LogDir string
}

type vectorConfig struct {
	DataDir    string                  `yaml:"data_dir"`
	LogSchema  map[string]string       `yaml:"log_schema"`
	Sources    map[string]vectorSource `yaml:"sources"`
	Transforms map[string]vectorRemap  `yaml:"transforms"`
	Sinks      map[string]vectorSink   `yaml:"sinks"`
}

type vectorSource struct {
	Type    string   `yaml:"type"`
	Include []string `yaml:"include,omitempty"`
}

type vectorRemap struct {
	Type   string   `yaml:"type"`
	Inputs []string `yaml:"inputs"`
	Source string   `yaml:"source"`
}

type vectorSink struct {
	Type    string   `yaml:"type"`
	Inputs  []string `yaml:"inputs"`
	Address string   `yaml:"address"`
}

// VectorAddressEnv names the env var carrying the aggregator address.
const VectorAddressEnv = "VECTOR_AGGREGATOR_ADDRESS"

// VectorConfig renders the vector agent configuration that tails the log4j2
// XML files and forwards them to the aggregator.
func VectorConfig(id VectorIdentity) (string, error) {
	cfg := vectorConfig{
		DataDir:   "/stackable/vector/var",
		LogSchema: map[string]string{"host_key": "pod"},
		Sources: map[string]vectorSource{
			"files_log4j2": {Type: "file", Include: []string{id.LogDir + "/*/*.log4j2.xml"}},
			"vector":       {Type: "internal_logs"},
		},
		Transforms: map[string]vectorRemap{
			"processed_files_log4j2": {
				Type:   "remap",
				Inputs: []string{"files_log4j2"},
				Source: ".logger = \"ROOT\"\n.level = \"INFO\"\n",
			},
			"filtered_logs_vector": {
				Type:   "remap",
				Inputs: []string{"vector"},
				Source: ".logger = .metadata.module_path\n.level = .metadata.level\n",
			},
			"extended_logs": {
				Type:   "remap",
				Inputs: []string{"processed_files_log4j2", "filtered_logs_vector"},
				Source: fmt.Sprintf(".namespace = %q\n.cluster = %q\n.role = %q\n.roleGroup = %q\n",
					id.Namespace, id.Cluster, id.Role, id.RoleGroup),
			},
		},
		Sinks: map[string]vectorSink{
			"aggregator": {
				Type:    "vector",
				Inputs:  []string{"extended_logs"},
				Address: "${" + VectorAddressEnv + "}",
			},
		},
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal vector config: %w", err)
	}
	return string(out), nil
}
