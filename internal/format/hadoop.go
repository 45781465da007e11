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

// Package format renders the configuration files mounted into metastore pods.
// Every writer sorts its keys so the same input always yields the same bytes.
package format

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
)

// HadoopXML renders properties in the Hadoop configuration XML format.
// Names and values are XML-escaped.
func HadoopXML(properties map[string]string) string {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\"?>\n<configuration>\n")
	for _, k := range sortedKeys(properties) {
		b.WriteString("  <property>\n    <name>")
		b.WriteString(escapeXML(k))
		b.WriteString("</name>\n    <value>")
		b.WriteString(escapeXML(properties[k]))
		b.WriteString("</value>\n  </property>\n")
	}
	b.WriteString("</configuration>\n")
	return b.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	// xml.EscapeText only fails when the writer fails
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

type hadoopConfiguration struct {
	XMLName    xml.Name         `xml:"configuration"`
	Properties []hadoopProperty `xml:"property"`
}

type hadoopProperty struct {
	Name  string `xml:"name"`
	Value string `xml:"value"`
}

// ParseHadoopXML reads a Hadoop configuration XML document. Later duplicates win.
func ParseHadoopXML(data []byte) (map[string]string, error) {
	var conf hadoopConfiguration
	if err := xml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parse hadoop configuration: %w", err)
	}
	out := make(map[string]string, len(conf.Properties))
	for _, p := range conf.Properties {
		out[strings.TrimSpace(p.Name)] = strings.TrimSpace(p.Value)
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
