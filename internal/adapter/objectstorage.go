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
	"strconv"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/types"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
	"github.com/hive-operator/internal/validation"
)

// S3 keys
const (
	PropS3Endpoint   = "fs.s3a.endpoint"
	PropS3PathStyle  = "fs.s3a.path.style.access"
	PropS3Region     = "fs.s3a.endpoint.region"
	PropS3SSLEnabled = "fs.s3a.connection.ssl.enabled"
	PropS3AccessKey  = "fs.s3a.access.key"
	PropS3SecretKey  = "fs.s3a.secret.key"

	S3AccessKeyPlaceholder = "xxx_access_key_xxx"
	S3SecretKeyPlaceholder = "xxx_secret_key_xxx"
	S3AccessKeyFile        = "accessKey"
	S3SecretKeyFile        = "secretKey"
	S3CredentialsVolume    = "s3-credentials"
)

// GCS keys
const (
	PropGSImpl           = "fs.gs.impl"
	PropGSAbstractImpl   = "fs.AbstractFileSystem.gs.impl"
	PropGSServiceAccount = "google.cloud.auth.service.account.enable"
	PropGSKeyFile        = "google.cloud.auth.service.account.json.keyfile"
	GCSKeyFile           = "key.json"
	GCSCredentialsVolume = "gcs-credentials"

	gcsFileSystemClass    = "com.google.cloud.hadoop.fs.gcs.GoogleHadoopFileSystem"
	gcsAbstractFileSystem = "com.google.cloud.hadoop.fs.gcs.GoogleHadoopFS"
)

// Azure keys
const (
	AzureKeyPlaceholder    = "xxx_azure_account_key_xxx"
	AzureCredentialsVolume = "azure-credentials"
)

// AzureAccountKeys are the secret keys tried, in order, for the account key
var AzureAccountKeys = []string{"AZURE_STORAGE_ACCOUNT_KEY", "accountKey", "storageAccountKey", "key"}

func (r *Resolver) resolveObjectStorage(ctx context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	storage := hc.Spec.ClusterConfig.ObjectStorage
	switch storage.Kind() {
	case hivev1alpha1.ObjectStorageS3:
		return r.resolveS3(ctx, hc, storage.S3, out)
	case hivev1alpha1.ObjectStorageGCS:
		return r.resolveGCS(ctx, hc, storage.GCS, out)
	case hivev1alpha1.ObjectStorageAzure:
		return r.resolveAzure(ctx, hc, storage.Azure, out)
	}
	return nil
}

// S3ConnectionSpec returns the inline connection or fetches the referenced one
func (r *Resolver) S3ConnectionSpec(ctx context.Context, namespace string, s3 *hivev1alpha1.S3Storage) (*hivev1alpha1.S3ConnectionSpec, error) {
	if s3.Inline != nil {
		return s3.Inline, nil
	}

	conn := &hivev1alpha1.S3Connection{}
	err := r.client.Get(ctx, types.NamespacedName{Namespace: namespace, Name: s3.Reference}, conn)
	if apierrors.IsNotFound(err) {
		return nil, service.NewUnresolvedReferenceError("S3Connection", s3.Reference, "", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get S3Connection %s/%s: %w", namespace, s3.Reference, err)
	}
	if err := validation.ValidateS3Connection("S3Connection/"+s3.Reference+".spec", &conn.Spec); err != nil {
		return nil, err
	}
	return &conn.Spec, nil
}

func (r *Resolver) resolveS3(ctx context.Context, hc *hivev1alpha1.HiveCluster, s3 *hivev1alpha1.S3Storage, out *Resolved) error {
	spec, err := r.S3ConnectionSpec(ctx, hc.Namespace, s3)
	if err != nil {
		return err
	}
	if s3.Reference != "" {
		out.ReferencedS3Connections = append(out.ReferencedS3Connections, s3.Reference)
	}

	pathStyle := spec.AccessStyle == hivev1alpha1.S3AccessStylePath
	out.set(hivev1alpha1.HiveSiteXML, PropS3Endpoint, spec.Endpoint())
	out.set(hivev1alpha1.HiveSiteXML, PropS3PathStyle, strconv.FormatBool(pathStyle))
	out.set(hivev1alpha1.HiveSiteXML, PropS3Region, spec.RegionOrDefault())
	out.set(hivev1alpha1.HiveSiteXML, PropS3SSLEnabled, strconv.FormatBool(spec.TLS != nil))

	bucket := &BucketTarget{
		Kind:      string(hivev1alpha1.ObjectStorageS3),
		Bucket:    spec.Bucket,
		Endpoint:  spec.Endpoint(),
		Region:    spec.RegionOrDefault(),
		PathStyle: pathStyle,
	}

	if c := spec.Credentials; c != nil {
		dir := hivev1alpha1.SecretsDir + "/" + S3CredentialsVolume
		if c.SecretClass != "" {
			out.mount(secretClassVolume(S3CredentialsVolume, c.SecretClass, map[string]string{
				secretScopeAnnotation: "service=" + hc.Name,
			}), dir)
			// secret-class material is not readable by the operator
			bucket = nil
		} else {
			ak, err := r.secrets.GetSecretKey(ctx, hc.Namespace, c.SecretName, S3AccessKeyFile)
			if err != nil {
				return err
			}
			sk, err := r.secrets.GetSecretKey(ctx, hc.Namespace, c.SecretName, S3SecretKeyFile)
			if err != nil {
				return err
			}
			out.ReferencedSecrets = append(out.ReferencedSecrets, c.SecretName)
			out.mount(secretVolume(S3CredentialsVolume, c.SecretName), dir)
			bucket.AccessKey = string(ak)
			bucket.SecretKey = string(sk)
		}

		out.set(hivev1alpha1.HiveSiteXML, PropS3AccessKey, S3AccessKeyPlaceholder)
		out.set(hivev1alpha1.HiveSiteXML, PropS3SecretKey, S3SecretKeyPlaceholder)
		out.commands(
			fmt.Sprintf("echo replacing %s and %s with secret values.", S3AccessKeyPlaceholder, S3SecretKeyPlaceholder),
			sedFromFile(S3AccessKeyPlaceholder, dir+"/"+S3AccessKeyFile, hiveSitePath),
			sedFromFile(S3SecretKeyPlaceholder, dir+"/"+S3SecretKeyFile, hiveSitePath),
		)
	}

	if class := spec.TLS.CASecretClass(); class != "" {
		name := class + "-tls-certificate"
		dir := hivev1alpha1.CertificatesDir + "/" + name
		out.mount(secretClassVolume(name, class, map[string]string{
			secretScopeAnnotation:  "pod",
			secretFormatAnnotation: "tls-pem",
		}), dir)
		out.commands(importCACommand(dir+"/ca.crt", "stackable-"+class))
	}

	if bucket != nil && bucket.Bucket != "" {
		out.Bucket = bucket
	}
	return nil
}

func (r *Resolver) resolveGCS(ctx context.Context, hc *hivev1alpha1.HiveCluster, gcs *hivev1alpha1.GCSStorage, out *Resolved) error {
	keyJSON, err := r.secrets.GetSecretKey(ctx, hc.Namespace, gcs.CredentialsSecret, GCSKeyFile)
	if err != nil {
		return err
	}
	out.ReferencedSecrets = append(out.ReferencedSecrets, gcs.CredentialsSecret)

	dir := hivev1alpha1.SecretsDir + "/" + GCSCredentialsVolume
	out.mount(secretVolume(GCSCredentialsVolume, gcs.CredentialsSecret), dir)
	out.set(hivev1alpha1.HiveSiteXML, PropGSImpl, gcsFileSystemClass)
	out.set(hivev1alpha1.HiveSiteXML, PropGSAbstractImpl, gcsAbstractFileSystem)
	out.set(hivev1alpha1.HiveSiteXML, PropGSServiceAccount, "true")
	out.set(hivev1alpha1.HiveSiteXML, PropGSKeyFile, dir+"/"+GCSKeyFile)

	out.Bucket = &BucketTarget{
		Kind:               string(hivev1alpha1.ObjectStorageGCS),
		Bucket:             gcs.Bucket,
		ServiceAccountJSON: keyJSON,
	}
	return nil
}

func (r *Resolver) resolveAzure(ctx context.Context, hc *hivev1alpha1.HiveCluster, az *hivev1alpha1.AzureStorage, out *Resolved) error {
	key, accountKey, err := r.secrets.GetFirstSecretKey(ctx, hc.Namespace, az.CredentialsSecret, AzureAccountKeys...)
	if err != nil {
		return err
	}
	out.ReferencedSecrets = append(out.ReferencedSecrets, az.CredentialsSecret)

	dir := hivev1alpha1.SecretsDir + "/" + AzureCredentialsVolume
	out.mount(secretVolume(AzureCredentialsVolume, az.CredentialsSecret), dir)
	prop := fmt.Sprintf("fs.azure.account.key.%s.dfs.core.windows.net", az.StorageAccount)
	out.set(hivev1alpha1.HiveSiteXML, prop, AzureKeyPlaceholder)
	out.commands(sedFromFile(AzureKeyPlaceholder, dir+"/"+key, hiveSitePath))

	out.Bucket = &BucketTarget{
		Kind:       string(hivev1alpha1.ObjectStorageAzure),
		Account:    az.StorageAccount,
		AccountKey: string(accountKey),
		Container:  az.Container,
	}
	return nil
}
