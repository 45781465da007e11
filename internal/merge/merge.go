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

package merge

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/format"
	"github.com/hive-operator/internal/service"
)

// JavaHeapFactor is the share of the memory limit given to the heap.
const JavaHeapFactor = 0.8

// Log file settings of the generated log4j2 configuration
const (
	LogFile           = "hive.log4j2.xml"
	MaxLogFileSizeMiB = 5
	ArchivedLogFiles  = 1
)

// Env vars derived from the folded configuration
const (
	EnvHadoopHeapSize = "HADOOP_HEAPSIZE"
	EnvHadoopOpts     = "HADOOP_OPTS"
)

// Derived are values computed from the folded config fragment.
type Derived struct {
	// HeapSizeMiB is the Java heap in MiB
	HeapSizeMiB int64
	// JVMArgs are the operator-generated arguments, heap first
	JVMArgs []string
	// Properties are seeded before any override is applied
	Properties map[string]map[string]string
}

// DeriveFunc computes derived values from a complete fragment.
type DeriveFunc func(folded *hivev1alpha1.MetastoreConfigFragment) (Derived, error)

// MetastoreDerivation derives heap, JVM arguments and the warehouse dir.
// extraJVMArgs are appended after the built-in operator arguments.
func MetastoreDerivation(extraJVMArgs []string) DeriveFunc {
	return func(folded *hivev1alpha1.MetastoreConfigFragment) (Derived, error) {
		limit := folded.Resources.Memory.Limit
		heap := int64(float64(limit.Value()) / (1024 * 1024) * JavaHeapFactor)
		if heap < 1 {
			return Derived{}, service.NewValidationError("config.resources.memory.limit",
				"%s leaves no room for a Java heap", limit.String())
		}

		args := []string{
			fmt.Sprintf("-Xmx%dm", heap),
			fmt.Sprintf("-Xms%dm", heap),
			fmt.Sprintf("-Djava.security.properties=%s/%s", hivev1alpha1.ConfigDir, hivev1alpha1.SecurityProperties),
			fmt.Sprintf("-javaagent:%s=%d:%s", hivev1alpha1.JMXAgentJar, hivev1alpha1.MetricsPort, hivev1alpha1.JMXAgentConfig),
			"-Djavax.net.ssl.trustStore=" + hivev1alpha1.TrustStore,
			"-Djavax.net.ssl.trustStorePassword=" + hivev1alpha1.TrustStorePassword,
			"-Djavax.net.ssl.trustStoreType=pkcs12",
		}
		args = append(args, extraJVMArgs...)

		return Derived{
			HeapSizeMiB: heap,
			JVMArgs:     args,
			Properties: map[string]map[string]string{
				hivev1alpha1.HiveSiteXML: {"hive.metastore.warehouse.dir": *folded.WarehouseDir},
			},
		}, nil
	}
}

// Merge folds layers in order into a MergedConfig. It does not touch its
// inputs and returns the same result for the same arguments.
func Merge(target Target, layers []Layer, derive DeriveFunc) (*MergedConfig, error) {
	folded := &hivev1alpha1.MetastoreConfigFragment{}
	for _, l := range layers {
		foldFragment(folded, l.Config)
	}
	if err := checkComplete(folded); err != nil {
		return nil, err
	}

	derived, err := derive(folded)
	if err != nil {
		return nil, err
	}

	var overrideArgs []string
	for _, l := range layers {
		if l.JVMArgumentOverrides != nil {
			overrideArgs = l.JVMArgumentOverrides
		}
	}
	jvmArgs := make([]string, 0, len(derived.JVMArgs)+len(overrideArgs))
	jvmArgs = append(jvmArgs, derived.JVMArgs...)
	jvmArgs = append(jvmArgs, overrideArgs...)

	env := map[string]string{
		EnvHadoopHeapSize: strconv.FormatInt(derived.HeapSizeMiB, 10),
		EnvHadoopOpts:     strings.Join(nonHeapArgs(jvmArgs), " "),
	}
	props := copyProperties(derived.Properties)
	logging := resolveLogging(folded.Logging)
	if logging.CustomConfigMap == "" {
		props[hivev1alpha1.Log4j2Properties] = format.Log4j2Properties(format.Log4j2Config{
			LogDir:         hivev1alpha1.LogDir + "/" + hivev1alpha1.AppName,
			LogFile:        LogFile,
			MaxFileSizeMiB: MaxLogFileSizeMiB,
			ArchivedFiles:  ArchivedLogFiles,
			RootLevel:      logging.RootLevel,
			ConsoleLevel:   logging.ConsoleLevel,
			FileLevel:      logging.FileLevel,
			Loggers:        logging.Loggers,
		})
	}

	var patches []runtime.RawExtension
	for _, l := range layers {
		for name, value := range l.EnvOverrides {
			if hivev1alpha1.IsReservedEnvVar(name) && l.Kind != LayerClusterDefaults {
				return nil, &service.ReservedKeyError{File: "env", Key: name}
			}
			env[name] = value
		}
		for file, kv := range l.ConfigOverrides {
			if !hivev1alpha1.IsKnownConfigFile(file) {
				return nil, service.NewValidationError("configOverrides", "unknown file %q", file)
			}
			if file == hivev1alpha1.Log4j2Properties && logging.CustomConfigMap != "" {
				continue
			}
			if props[file] == nil {
				props[file] = map[string]string{}
			}
			for k, v := range kv {
				if hivev1alpha1.IsReservedProperty(file, k) && l.Kind != LayerClusterDefaults {
					return nil, &service.ReservedKeyError{File: file, Key: k}
				}
				props[file][k] = v
			}
		}
		if l.PodOverrides != nil && len(l.PodOverrides.Raw) > 0 {
			patches = append(patches, *l.PodOverrides.DeepCopy())
		}
	}

	files := map[string]string{
		hivev1alpha1.HiveSiteXML:        format.HadoopXML(props[hivev1alpha1.HiveSiteXML]),
		hivev1alpha1.CoreSiteXML:        format.HadoopXML(props[hivev1alpha1.CoreSiteXML]),
		hivev1alpha1.SecurityProperties: format.Properties(props[hivev1alpha1.SecurityProperties]),
	}
	if logging.CustomConfigMap == "" {
		files[hivev1alpha1.Log4j2Properties] = format.Properties(props[hivev1alpha1.Log4j2Properties])
	}

	return newMergedConfig(snapshot{
		Role:      target.Role,
		RoleGroup: target.RoleGroup,
		Replicas:  target.Replicas,
		Resources: Resources{
			CPUMin:      folded.Resources.CPU.Min.DeepCopy(),
			CPUMax:      folded.Resources.CPU.Max.DeepCopy(),
			MemoryLimit: folded.Resources.Memory.Limit.DeepCopy(),
		},
		Env:              sortedEnv(env),
		Properties:       props,
		Files:            files,
		Logging:          logging,
		JVMArgs:          jvmArgs,
		HeapSizeMiB:      derived.HeapSizeMiB,
		GracefulShutdown: folded.GracefulShutdownTimeout.Duration,
		Affinity:         folded.Affinity.DeepCopy(),
		PodOverrides:     patches,
	})
}

// foldFragment writes every leaf set in src over dst.
func foldFragment(dst, src *hivev1alpha1.MetastoreConfigFragment) {
	if src == nil {
		return
	}
	if r := src.Resources; r != nil {
		if dst.Resources == nil {
			dst.Resources = &hivev1alpha1.ResourcesFragment{}
		}
		if r.CPU != nil {
			if dst.Resources.CPU == nil {
				dst.Resources.CPU = &hivev1alpha1.CPUFragment{}
			}
			if r.CPU.Min != nil {
				q := r.CPU.Min.DeepCopy()
				dst.Resources.CPU.Min = &q
			}
			if r.CPU.Max != nil {
				q := r.CPU.Max.DeepCopy()
				dst.Resources.CPU.Max = &q
			}
		}
		if r.Memory != nil && r.Memory.Limit != nil {
			q := r.Memory.Limit.DeepCopy()
			dst.Resources.Memory = &hivev1alpha1.MemoryFragment{Limit: &q}
		}
	}
	if l := src.Logging; l != nil {
		if dst.Logging == nil {
			dst.Logging = &hivev1alpha1.LoggingFragment{}
		}
		d := dst.Logging
		if l.EnableVectorAgent != nil {
			v := *l.EnableVectorAgent
			d.EnableVectorAgent = &v
		}
		if l.RootLevel != nil {
			v := *l.RootLevel
			d.RootLevel = &v
		}
		if l.ConsoleLevel != nil {
			v := *l.ConsoleLevel
			d.ConsoleLevel = &v
		}
		if l.FileLevel != nil {
			v := *l.FileLevel
			d.FileLevel = &v
		}
		if l.CustomConfigMap != nil {
			v := *l.CustomConfigMap
			d.CustomConfigMap = &v
		}
		for name, level := range l.Loggers {
			if d.Loggers == nil {
				d.Loggers = map[string]hivev1alpha1.LogLevel{}
			}
			d.Loggers[name] = level
		}
	}
	if src.WarehouseDir != nil {
		v := *src.WarehouseDir
		dst.WarehouseDir = &v
	}
	if src.GracefulShutdownTimeout != nil {
		v := *src.GracefulShutdownTimeout
		dst.GracefulShutdownTimeout = &v
	}
	if src.Affinity != nil {
		dst.Affinity = src.Affinity.DeepCopy()
	}
}

func checkComplete(f *hivev1alpha1.MetastoreConfigFragment) error {
	var errs service.ValidationErrors
	missing := func(field string) {
		errs = append(errs, service.NewValidationError("config."+field, "no value resolved"))
	}
	switch {
	case f.Resources == nil || f.Resources.CPU == nil:
		missing("resources.cpu")
	default:
		if f.Resources.CPU.Min == nil {
			missing("resources.cpu.min")
		}
		if f.Resources.CPU.Max == nil {
			missing("resources.cpu.max")
		}
	}
	if f.Resources == nil || f.Resources.Memory == nil || f.Resources.Memory.Limit == nil {
		missing("resources.memory.limit")
	}
	if l := f.Logging; l == nil || l.RootLevel == nil || l.ConsoleLevel == nil || l.FileLevel == nil {
		missing("logging")
	}
	if f.WarehouseDir == nil {
		missing("warehouseDir")
	}
	if f.GracefulShutdownTimeout == nil {
		missing("gracefulShutdownTimeout")
	}
	return errs.ErrorOrNil()
}

func resolveLogging(l *hivev1alpha1.LoggingFragment) Logging {
	out := Logging{
		RootLevel:    string(*l.RootLevel),
		ConsoleLevel: string(*l.ConsoleLevel),
		FileLevel:    string(*l.FileLevel),
		Loggers:      make(map[string]string, len(l.Loggers)),
	}
	if l.EnableVectorAgent != nil {
		out.EnableVectorAgent = *l.EnableVectorAgent
	}
	if l.CustomConfigMap != nil {
		out.CustomConfigMap = *l.CustomConfigMap
	}
	for name, level := range l.Loggers {
		out.Loggers[name] = string(level)
	}
	return out
}

// nonHeapArgs drops -Xmx and -Xms; the heap is passed through HADOOP_HEAPSIZE.
func nonHeapArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		lower := strings.ToLower(a)
		if strings.HasPrefix(lower, "-xmx") || strings.HasPrefix(lower, "-xms") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func sortedEnv(env map[string]string) []corev1.EnvVar {
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]corev1.EnvVar, 0, len(names))
	for _, name := range names {
		out = append(out, corev1.EnvVar{Name: name, Value: env[name]})
	}
	return out
}

func copyProperties(in map[string]map[string]string) map[string]map[string]string {
	out := make(map[string]map[string]string, len(in))
	for file, kv := range in {
		c := make(map[string]string, len(kv))
		for k, v := range kv {
			c[k] = v
		}
		out[file] = c
	}
	return out
}
