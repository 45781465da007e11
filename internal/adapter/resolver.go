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

package adapter

import (
	"context"
	"fmt"
	"sort"
	"time"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/controller-runtime/pkg/client"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/secret"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/util"
)

// Secret-operator volume conventions
const (
	secretStorageClass          = "secrets.stackable.tech"
	secretClassAnnotation       = "secrets.stackable.tech/class"
	secretScopeAnnotation       = "secrets.stackable.tech/scope"
	secretKerberosAnnotation    = "secrets.stackable.tech/kerberos.service.names"
	secretFormatAnnotation      = "secrets.stackable.tech/format"
	hiveSitePath                = hivev1alpha1.ConfigDir + "/" + hivev1alpha1.HiveSiteXML
	coreSitePath                = hivev1alpha1.ConfigDir + "/" + hivev1alpha1.CoreSiteXML
	hdfsSitePath                = hivev1alpha1.ConfigDir + "/" + hivev1alpha1.HDFSSiteXML
	defaultOPAPackage           = "hive"
	defaultKerberosRealmEnvExpr = "${env.KERBEROS_REALM}"
)

// Resolved is everything the external integrations contribute to a cluster.
// It holds credentials for the dependency probes and must never be logged.
type Resolved struct {
	Env           []corev1.EnvVar
	Volumes       []corev1.Volume
	Mounts        []corev1.VolumeMount
	Properties    map[string]map[string]string
	StartCommands []string
	JVMArgs       []string

	// VectorEnv is set on the vector sidecar when any group enables it
	VectorEnv []corev1.EnvVar

	ReferencedSecrets       []string
	ReferencedConfigMaps    []string
	ReferencedS3Connections []string

	KerberosRealm  string
	HDFSRealm      string
	HDFSKerberized bool

	Database DatabaseTarget
	// Bucket is nil when the storage location cannot be probed
	Bucket *BucketTarget
}

func newResolved() *Resolved {
	return &Resolved{Properties: map[string]map[string]string{}}
}

func (r *Resolved) set(file, key, value string) {
	if r.Properties[file] == nil {
		r.Properties[file] = map[string]string{}
	}
	r.Properties[file][key] = value
}

func (r *Resolved) mount(v corev1.Volume, path string) {
	r.Volumes = append(r.Volumes, v)
	r.Mounts = append(r.Mounts, corev1.VolumeMount{Name: v.Name, MountPath: path})
}

func (r *Resolved) commands(cmds ...string) {
	r.StartCommands = append(r.StartCommands, cmds...)
}

// Resolver looks up every object a HiveCluster references and turns it into
// container configuration.
type Resolver struct {
	client  client.Reader
	secrets *secret.Manager
	timeout time.Duration
}

// NewResolver creates a resolver. A zero timeout means the caller's deadline applies.
func NewResolver(c client.Reader, timeout time.Duration) *Resolver {
	return &Resolver{client: c, secrets: secret.NewManager(c), timeout: timeout}
}

// Resolve runs every integration in a fixed order. Start commands keep that
// order: database, object storage, HDFS, Kerberos, OPA.
func (r *Resolver) Resolve(ctx context.Context, hc *hivev1alpha1.HiveCluster) (*Resolved, error) {
	ctx, cancel := util.WithTimeout(ctx, r.timeout)
	defer cancel()

	out := newResolved()
	steps := []func(context.Context, *hivev1alpha1.HiveCluster, *Resolved) error{
		r.resolveDatabase,
		r.resolveObjectStorage,
		r.resolveHDFS,
		r.resolveKerberos,
		r.resolveOPA,
		r.resolveVector,
		r.resolveLogConfigMaps,
	}
	for _, step := range steps {
		if err := step(ctx, hc, out); err != nil {
			if util.IsTimeoutError(err) {
				return nil, service.NewTimeoutError("resolve", hc.Name, r.timeout, err)
			}
			return nil, err
		}
	}

	if err := checkRealms(hc, out); err != nil {
		return nil, err
	}

	out.ReferencedSecrets = uniqueSorted(out.ReferencedSecrets)
	out.ReferencedConfigMaps = uniqueSorted(out.ReferencedConfigMaps)
	out.ReferencedS3Connections = uniqueSorted(out.ReferencedS3Connections)
	return out, nil
}

// checkRealms rejects Kerberos and HDFS settings that cannot work together
func checkRealms(hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	if hc.HDFSConfigMap() == "" {
		return nil
	}
	const field = "spec.clusterConfig.authentication.kerberos"
	var errs service.ValidationErrors
	switch {
	case out.HDFSKerberized && !hc.HasKerberos():
		errs = append(errs, service.NewValidationError(field,
			"HDFS %s uses Kerberos but the metastore has no Kerberos configured", hc.HDFSConfigMap()))
	case !out.HDFSKerberized && hc.HasKerberos():
		errs = append(errs, service.NewValidationError(field,
			"Kerberos is configured but HDFS %s does not use Kerberos", hc.HDFSConfigMap()))
	case out.KerberosRealm != "" && out.HDFSRealm != "" && out.KerberosRealm != out.HDFSRealm:
		errs = append(errs, service.NewValidationError(field+".realm",
			"realm %s differs from the HDFS realm %s", out.KerberosRealm, out.HDFSRealm))
	}
	return errs.ErrorOrNil()
}

// secretClassVolume builds a secret-operator ephemeral volume
func secretClassVolume(name, class string, annotations map[string]string) corev1.Volume {
	ann := map[string]string{secretClassAnnotation: class}
	for k, v := range annotations {
		ann[k] = v
	}
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			Ephemeral: &corev1.EphemeralVolumeSource{
				VolumeClaimTemplate: &corev1.PersistentVolumeClaimTemplate{
					ObjectMeta: metav1.ObjectMeta{Annotations: ann},
					Spec: corev1.PersistentVolumeClaimSpec{
						AccessModes:      []corev1.PersistentVolumeAccessMode{corev1.ReadWriteOnce},
						StorageClassName: ptr.To(secretStorageClass),
						Resources: corev1.VolumeResourceRequirements{
							Requests: corev1.ResourceList{corev1.ResourceStorage: resource.MustParse("1")},
						},
					},
				},
			},
		},
	}
}

func secretVolume(name, secretName string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			Secret: &corev1.SecretVolumeSource{SecretName: secretName},
		},
	}
}

func configMapVolume(name, configMap string) corev1.Volume {
	return corev1.Volume{
		Name: name,
		VolumeSource: corev1.VolumeSource{
			ConfigMap: &corev1.ConfigMapVolumeSource{
				LocalObjectReference: corev1.LocalObjectReference{Name: configMap},
			},
		},
	}
}

// sedFromFile replaces placeholder in file with the content of secretFile
func sedFromFile(placeholder, secretFile, file string) string {
	return fmt.Sprintf(`sed -i "s|%s|$(cat %s)|g" %s`, placeholder, secretFile, file)
}

// importCACommand adds a mounted CA certificate to the metastore truststore
func importCACommand(certFile, alias string) string {
	return fmt.Sprintf("keytool -importcert -file %s -alias %s -keystore %s -storepass %s -noprompt",
		certFile, alias, hivev1alpha1.TrustStore, hivev1alpha1.TrustStorePassword)
}

func uniqueSorted(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
