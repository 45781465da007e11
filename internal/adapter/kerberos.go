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
)

const (
	PropKerberosPrincipal       = "hive.metastore.kerberos.principal"
	PropKerberosClientPrincipal = "hive.metastore.client.kerberos.principal"
	PropKerberosKeytab          = "hive.metastore.kerberos.keytab.file"
	PropSASLEnabled             = "hive.metastore.sasl.enabled"
	EnvKrb5Config               = "KRB5_CONFIG"
	KerberosVolume              = "kerberos"
)

func (r *Resolver) resolveKerberos(_ context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	class := hc.KerberosSecretClass()
	if class == "" {
		return nil
	}
	out.KerberosRealm = hc.Spec.ClusterConfig.Authentication.Kerberos.Realm

	krb5 := hivev1alpha1.KerberosDir + "/krb5.conf"
	out.mount(secretClassVolume(KerberosVolume, class, map[string]string{
		secretScopeAnnotation:    "service=" + hc.Name,
		secretKerberosAnnotation: hivev1alpha1.KerberosServiceName + ",HTTP",
	}), hivev1alpha1.KerberosDir)
	out.Env = append(out.Env, corev1.EnvVar{Name: EnvKrb5Config, Value: krb5})
	out.JVMArgs = append(out.JVMArgs, "-Djava.security.krb5.conf="+krb5)

	principal := fmt.Sprintf("%s/%s.%s.svc.cluster.local@%s",
		hivev1alpha1.KerberosServiceName, hc.Name, hc.Namespace, defaultKerberosRealmEnvExpr)
	out.set(hivev1alpha1.HiveSiteXML, PropKerberosPrincipal, principal)
	out.set(hivev1alpha1.HiveSiteXML, PropKerberosClientPrincipal, principal)
	out.set(hivev1alpha1.HiveSiteXML, PropKerberosKeytab, hivev1alpha1.KerberosDir+"/keytab")
	out.set(hivev1alpha1.HiveSiteXML, PropSASLEnabled, "true")
	out.set(hivev1alpha1.CoreSiteXML, PropHadoopAuthentication, "kerberos")

	out.commands(fmt.Sprintf(`export KERBEROS_REALM=$(grep -oP 'default_realm = \K.*' %s)`, krb5))
	files := []string{hiveSitePath, coreSitePath}
	if hc.HDFSConfigMap() != "" {
		files = append(files, hdfsSitePath)
	}
	for _, f := range files {
		out.commands(fmt.Sprintf(`sed -i -e 's/${env.KERBEROS_REALM}/'"$KERBEROS_REALM/g" %s`, f))
	}
	return nil
}
