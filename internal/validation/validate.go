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

package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	k8svalidation "k8s.io/apimachinery/pkg/util/validation"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/merge"
	"github.com/hive-operator/internal/service"
)

// MaxStatefulSetNameLength leaves room for the controller-revision-hash label
// value, which appends a 10 character hash to the StatefulSet name.
const MaxStatefulSetNameLength = 52

// Validate checks the whole spec and reports every problem at once. Reserved
// key violations are additionally reported as ReservedKeyError.
func Validate(hc *hivev1alpha1.HiveCluster) error {
	v := &validator{}
	v.metadata(hc)
	v.image(&hc.Spec.Image)
	v.clusterConfig(&hc.Spec.ClusterConfig)
	v.metastore(hc)

	if len(v.reserved) == 0 {
		return v.errs.ErrorOrNil()
	}
	errs := make([]error, 0, len(v.reserved)+1)
	for _, r := range v.reserved {
		errs = append(errs, r)
	}
	errs = append(errs, v.errs.ErrorOrNil())
	return errors.Join(errs...)
}

type validator struct {
	errs     service.ValidationErrors
	reserved []*service.ReservedKeyError
}

func (v *validator) add(field, format string, args ...interface{}) {
	v.errs = append(v.errs, service.NewValidationError(field, format, args...))
}

func (v *validator) metadata(hc *hivev1alpha1.HiveCluster) {
	if hc.Name == "" {
		v.add("metadata.name", "is required")
		return
	}
	for _, msg := range k8svalidation.IsDNS1035Label(hc.Name) {
		v.add("metadata.name", "%s", msg)
	}
	// object names are <cluster>-metastore-<group>, so the role segment
	// must not appear inside the cluster name
	for _, seg := range strings.Split(hc.Name, "-") {
		if seg == hivev1alpha1.RoleMetastore {
			v.add("metadata.name", "must not contain %q as a dash-separated segment", hivev1alpha1.RoleMetastore)
			break
		}
	}
}

func (v *validator) image(img *hivev1alpha1.ImageSpec) {
	if img.ProductVersion == "" {
		v.add("spec.image.productVersion", "is required")
	}
	switch img.PullPolicy {
	case "", corev1.PullAlways, corev1.PullIfNotPresent, corev1.PullNever:
	default:
		v.add("spec.image.pullPolicy", "unknown pull policy %q", img.PullPolicy)
	}
}

func (v *validator) clusterConfig(cc *hivev1alpha1.ClusterConfig) {
	const base = "spec.clusterConfig"
	db := cc.Database
	switch {
	case db.Kind == "":
		v.add(base+".database.kind", "is required")
	case !db.Kind.IsValid():
		v.add(base+".database.kind", "unknown database kind %q", db.Kind)
	case !db.Kind.IsEmbedded() && db.CredentialsSecret == "":
		v.add(base+".database.credentialsSecret", "is required for %s databases", db.Kind)
	}
	if db.ConnectionString == "" {
		v.add(base+".database.connectionString", "is required")
	} else if !strings.HasPrefix(db.ConnectionString, "jdbc:") {
		v.add(base+".database.connectionString", "must be a JDBC URL starting with jdbc:")
	}

	if cc.ObjectStorage != nil {
		v.objectStorage(base+".objectStorage", cc.ObjectStorage)
	}
	if fs := cc.Filesystem; fs != nil && fs.HDFS != nil && fs.HDFS.ConfigMap == "" {
		v.add(base+".filesystem.hdfs.configMap", "is required")
	}
	if a := cc.Authentication; a != nil && a.Kerberos != nil && a.Kerberos.SecretClass == "" {
		v.add(base+".authentication.kerberos.secretClass", "is required")
	}
	if a := cc.Authorization; a != nil && a.OPA != nil && a.OPA.ConfigMap == "" {
		v.add(base+".authorization.opa.configMap", "is required")
	}
	if !cc.ExposureClass.IsValid() {
		v.add(base+".exposureClass", "unknown exposure class %q", cc.ExposureClass)
	}
}

func (v *validator) objectStorage(path string, o *hivev1alpha1.ObjectStorage) {
	set := 0
	for _, ok := range []bool{o.S3 != nil, o.GCS != nil, o.Azure != nil} {
		if ok {
			set++
		}
	}
	if set > 1 {
		v.add(path, "at most one of s3, gcs and azure may be set")
		return
	}

	switch o.Kind() {
	case hivev1alpha1.ObjectStorageS3:
		s3 := o.S3
		switch {
		case s3.Inline != nil && s3.Reference != "":
			v.add(path+".s3", "exactly one of inline and reference must be set, got both")
		case s3.Inline == nil && s3.Reference == "":
			v.add(path+".s3", "exactly one of inline and reference must be set")
		case s3.Inline != nil:
			v.s3Connection(path+".s3.inline", s3.Inline)
		}
	case hivev1alpha1.ObjectStorageGCS:
		if o.GCS.Bucket == "" {
			v.add(path+".gcs.bucket", "is required")
		}
		if o.GCS.CredentialsSecret == "" {
			v.add(path+".gcs.credentialsSecret", "is required")
		}
	case hivev1alpha1.ObjectStorageAzure:
		if o.Azure.StorageAccount == "" {
			v.add(path+".azure.storageAccount", "is required")
		}
		if o.Azure.Container == "" {
			v.add(path+".azure.container", "is required")
		}
		if o.Azure.CredentialsSecret == "" {
			v.add(path+".azure.credentialsSecret", "is required")
		}
	}
}

// ValidateS3Connection checks an S3Connection spec, inline or referenced.
func ValidateS3Connection(path string, s *hivev1alpha1.S3ConnectionSpec) error {
	v := &validator{}
	v.s3Connection(path, s)
	return v.errs.ErrorOrNil()
}

func (v *validator) s3Connection(path string, s *hivev1alpha1.S3ConnectionSpec) {
	if s.Host == "" {
		v.add(path+".host", "is required")
	}
	if s.Port != nil && (*s.Port < 1 || *s.Port > 65535) {
		v.add(path+".port", "must be between 1 and 65535")
	}
	switch s.AccessStyle {
	case "", hivev1alpha1.S3AccessStylePath, hivev1alpha1.S3AccessStyleVirtualHosted:
	default:
		v.add(path+".accessStyle", "unknown access style %q", s.AccessStyle)
	}
	if c := s.Credentials; c != nil && (c.SecretClass == "") == (c.SecretName == "") {
		v.add(path+".credentials", "exactly one of secretClass and secretName must be set")
	}
	if t := s.TLS; t != nil {
		tv := t.Verification
		switch {
		case (tv.None == nil) == (tv.Server == nil):
			v.add(path+".tls.verification", "exactly one of none and server must be set")
		case tv.Server != nil && (tv.Server.CACert.SecretClass == "") == (tv.Server.CACert.WebPKI == nil):
			v.add(path+".tls.verification.server.caCert", "exactly one of secretClass and webPki must be set")
		}
	}
}

func (v *validator) metastore(hc *hivev1alpha1.HiveCluster) {
	const base = "spec.metastore"
	role := hc.Spec.Metastore
	if role == nil {
		v.add(base, "is required")
		return
	}
	if len(role.RoleGroups) == 0 {
		v.add(base+".roleGroups", "at least one role group is required")
	}
	v.common(base, role.CommonConfiguration)
	if rc := role.RoleConfig; rc != nil && rc.PodDisruptionBudget != nil {
		if mu := rc.PodDisruptionBudget.MaxUnavailable; mu != nil && *mu < 1 {
			v.add(base+".roleConfig.podDisruptionBudget.maxUnavailable", "must be at least 1")
		}
	}

	for _, name := range role.RoleGroupNames() {
		group := role.RoleGroups[name]
		path := fmt.Sprintf("%s.roleGroups[%s]", base, name)

		for _, msg := range k8svalidation.IsDNS1035Label(name) {
			v.add(path, "role group name: %s", msg)
		}
		if hc.Name != "" {
			sts := fmt.Sprintf("%s-%s-%s", hc.Name, hivev1alpha1.RoleMetastore, name)
			if len(sts) > MaxStatefulSetNameLength {
				v.add(path, "object name %q is %d characters, at most %d are allowed",
					sts, len(sts), MaxStatefulSetNameLength)
			}
		}
		if group.Replicas != nil && *group.Replicas < 0 {
			v.add(path+".replicas", "must not be negative")
		}
		v.common(path, group.CommonConfiguration)
		v.cpuRange(path, hc.Name, role.Config, group.Config)

		vectorEnabled := vectorAgent(role.Config)
		if g := vectorAgent(group.Config); g != nil {
			vectorEnabled = g
		}
		if vectorEnabled != nil && *vectorEnabled && hc.Spec.ClusterConfig.VectorAggregatorConfigMapName == "" {
			v.add("spec.clusterConfig.vectorAggregatorConfigMapName",
				"is required when the vector agent is enabled in role group %s", name)
		}
	}
}

func vectorAgent(f *hivev1alpha1.MetastoreConfigFragment) *bool {
	if f == nil || f.Logging == nil {
		return nil
	}
	return f.Logging.EnableVectorAgent
}

func (v *validator) common(path string, c hivev1alpha1.CommonConfiguration) {
	if f := c.Config; f != nil {
		v.fragment(path+".config", f)
	}

	for _, name := range sortedKeys(c.EnvOverrides) {
		field := fmt.Sprintf("%s.envOverrides[%s]", path, name)
		for _, msg := range k8svalidation.IsEnvVarName(name) {
			v.add(field, "%s", msg)
		}
		if hivev1alpha1.IsReservedEnvVar(name) {
			v.reserved = append(v.reserved, &service.ReservedKeyError{File: "env", Key: name})
		}
	}

	files := make([]string, 0, len(c.ConfigOverrides))
	for f := range c.ConfigOverrides {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, file := range files {
		field := fmt.Sprintf("%s.configOverrides[%s]", path, file)
		if !hivev1alpha1.IsKnownConfigFile(file) {
			v.add(field, "unknown file, expected one of %s", strings.Join(hivev1alpha1.KnownConfigFiles, ", "))
			continue
		}
		for _, key := range sortedKeys(c.ConfigOverrides[file]) {
			if hivev1alpha1.IsReservedProperty(file, key) {
				v.reserved = append(v.reserved, &service.ReservedKeyError{File: file, Key: key})
			}
		}
	}

	for i, arg := range c.JVMArgumentOverrides {
		if strings.TrimSpace(arg) == "" {
			v.add(fmt.Sprintf("%s.jvmArgumentOverrides[%d]", path, i), "must not be empty")
		}
	}

	if c.PodOverrides != nil && len(c.PodOverrides.Raw) > 0 {
		var tpl corev1.PodTemplateSpec
		if err := StrictDecode(c.PodOverrides.Raw, &tpl); err != nil {
			v.add(path+".podOverrides", "not a valid pod template: %v", err)
		}
	}
}

func (v *validator) fragment(path string, f *hivev1alpha1.MetastoreConfigFragment) {
	if r := f.Resources; r != nil {
		if r.CPU != nil {
			if r.CPU.Min != nil && r.CPU.Min.Sign() <= 0 {
				v.add(path+".resources.cpu.min", "must be positive")
			}
			if r.CPU.Max != nil && r.CPU.Max.Sign() <= 0 {
				v.add(path+".resources.cpu.max", "must be positive")
			}
		}
		if r.Memory != nil && r.Memory.Limit != nil && r.Memory.Limit.Sign() <= 0 {
			v.add(path+".resources.memory.limit", "must be positive")
		}
	}
	if l := f.Logging; l != nil {
		for field, level := range map[string]*hivev1alpha1.LogLevel{
			"rootLevel":    l.RootLevel,
			"consoleLevel": l.ConsoleLevel,
			"fileLevel":    l.FileLevel,
		} {
			if level != nil && !level.IsValid() {
				v.add(path+".logging."+field, "unknown log level %q", *level)
			}
		}
		for name, level := range l.Loggers {
			if !level.IsValid() {
				v.add(fmt.Sprintf("%s.logging.loggers[%s]", path, name), "unknown log level %q", level)
			}
		}
		if l.CustomConfigMap != nil && *l.CustomConfigMap == "" {
			v.add(path+".logging.customConfigMap", "must not be empty")
		}
	}
	if f.GracefulShutdownTimeout != nil && f.GracefulShutdownTimeout.Duration < 0 {
		v.add(path+".gracefulShutdownTimeout", "must not be negative")
	}
	if f.WarehouseDir != nil && *f.WarehouseDir == "" {
		v.add(path+".warehouseDir", "must not be empty")
	}
}

// cpuRange checks cpu.min <= cpu.max after resolving both across defaults,
// role and role group.
func (v *validator) cpuRange(path, cluster string, layers ...*hivev1alpha1.MetastoreConfigFragment) {
	defaults := merge.DefaultConfig(cluster).Resources.CPU
	minQ, maxQ := defaults.Min.DeepCopy(), defaults.Max.DeepCopy()
	for _, f := range layers {
		if f == nil || f.Resources == nil || f.Resources.CPU == nil {
			continue
		}
		if f.Resources.CPU.Min != nil {
			minQ = f.Resources.CPU.Min.DeepCopy()
		}
		if f.Resources.CPU.Max != nil {
			maxQ = f.Resources.CPU.Max.DeepCopy()
		}
	}
	if minQ.Cmp(maxQ) > 0 {
		v.add(path+".config.resources.cpu", "min %s exceeds max %s", minQ.String(), maxQ.String())
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
