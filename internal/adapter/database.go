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

	corev1 "k8s.io/api/core/v1"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/secret"
)

// Metastore database keys and placeholders. The real credentials are only
// substituted into hive-site.xml inside the container.
const (
	PropConnectionURL      = "javax.jdo.option.ConnectionURL"
	PropConnectionDriver   = "javax.jdo.option.ConnectionDriverName"
	PropConnectionUser     = "javax.jdo.option.ConnectionUserName"
	PropConnectionPassword = "javax.jdo.option.ConnectionPassword"
	PropMetricsEnabled     = "hive.metastore.metrics.enabled"

	DBUsernamePlaceholder = "xxx_db_username_xxx"
	DBPasswordPlaceholder = "xxx_db_password_xxx"
	EnvDBUsername         = "DB_USERNAME_ENV"
	EnvDBPassword         = "DB_PASSWORD_ENV"
)

func (r *Resolver) resolveDatabase(ctx context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	db := hc.Spec.ClusterConfig.Database

	out.set(hivev1alpha1.HiveSiteXML, PropConnectionURL, db.ConnectionString)
	out.set(hivev1alpha1.HiveSiteXML, PropConnectionDriver, db.Kind.DriverClass())
	out.set(hivev1alpha1.HiveSiteXML, PropMetricsEnabled, "true")
	out.Database = DatabaseTarget{Kind: string(db.Kind), JDBCURL: db.ConnectionString}

	if db.Kind.IsEmbedded() {
		return nil
	}

	creds, err := r.secrets.GetCredentials(ctx, hc.Namespace, db.CredentialsSecret)
	if err != nil {
		return err
	}
	out.ReferencedSecrets = append(out.ReferencedSecrets, db.CredentialsSecret)
	out.Database.Username = creds.Username
	out.Database.Password = creds.Password

	out.set(hivev1alpha1.HiveSiteXML, PropConnectionUser, DBUsernamePlaceholder)
	out.set(hivev1alpha1.HiveSiteXML, PropConnectionPassword, DBPasswordPlaceholder)
	out.Env = append(out.Env,
		secretKeyEnv(EnvDBUsername, db.CredentialsSecret, secret.UsernameKey),
		secretKeyEnv(EnvDBPassword, db.CredentialsSecret, secret.PasswordKey),
	)
	out.commands(
		fmt.Sprintf(`sed -i "s|%s|${%s}|g" %s`, DBUsernamePlaceholder, EnvDBUsername, hiveSitePath),
		fmt.Sprintf(`sed -i "s|%s|${%s}|g" %s`, DBPasswordPlaceholder, EnvDBPassword, hiveSitePath),
	)
	return nil
}

func secretKeyEnv(name, secretName, key string) corev1.EnvVar {
	return corev1.EnvVar{
		Name: name,
		ValueFrom: &corev1.EnvVarSource{
			SecretKeyRef: &corev1.SecretKeySelector{
				LocalObjectReference: corev1.LocalObjectReference{Name: secretName},
				Key:                  key,
			},
		},
	}
}
