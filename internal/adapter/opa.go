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
	"strings"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
)

const (
	PropPreEventListeners     = "hive.metastore.pre.event.listeners"
	PropAuthorizationManager  = "hive.security.metastore.authorization.manager"
	PropOPABaseEndpoint       = "com.bosch.bdps.opa.authorization.base.endpoint"
	PropOPAPolicyURLDatabase  = "com.bosch.bdps.opa.authorization.policy.url.database"
	PropOPAPolicyURLTable     = "com.bosch.bdps.opa.authorization.policy.url.table"
	PropOPAPolicyURLColumn    = "com.bosch.bdps.opa.authorization.policy.url.column"
	PropOPAPolicyURLPartition = "com.bosch.bdps.opa.authorization.policy.url.partition"
	PropOPAPolicyURLUser      = "com.bosch.bdps.opa.authorization.policy.url.user"

	// OPASecretClassKey optionally names the secret class of the OPA server CA
	OPASecretClassKey = "OPA_SECRET_CLASS"
	OPATLSVolume      = "opa-tls"
)

type opaClasses struct {
	preEventListener string
	provider         string
}

var (
	opaHMS3 = opaClasses{
		preEventListener: "com.bosch.bdps.hms3.OpaAuthorizationPreEventListener",
		provider:         "com.bosch.bdps.hms3.OpaBasedAuthorizationProvider",
	}
	opaHMS4 = opaClasses{
		preEventListener: "com.bosch.bdps.hms4.OpaAuthorizationPreEventListener",
		provider:         "com.bosch.bdps.hms4.OpaBasedAuthorizationProvider",
	}
)

func (r *Resolver) resolveOPA(ctx context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	az := hc.Spec.ClusterConfig.Authorization
	if az == nil || az.OPA == nil {
		return nil
	}
	opa := az.OPA

	cm, err := r.secrets.GetConfigMap(ctx, hc.Namespace, opa.ConfigMap)
	if err != nil {
		return err
	}
	out.ReferencedConfigMaps = append(out.ReferencedConfigMaps, opa.ConfigMap)
	base, ok := cm.Data[hivev1alpha1.OPADiscoveryKey]
	if !ok {
		return service.NewUnresolvedReferenceError("ConfigMap", opa.ConfigMap, hivev1alpha1.OPADiscoveryKey, nil)
	}

	classes := opaHMS4
	if hc.IsHive3() {
		classes = opaHMS3
	}
	out.set(hivev1alpha1.HiveSiteXML, PropPreEventListeners, classes.preEventListener)
	out.set(hivev1alpha1.HiveSiteXML, PropAuthorizationManager, classes.provider)
	out.set(hivev1alpha1.HiveSiteXML, PropOPABaseEndpoint, OPAEndpoint(base, opa.Package))
	out.set(hivev1alpha1.HiveSiteXML, PropOPAPolicyURLDatabase, "database_allow")
	out.set(hivev1alpha1.HiveSiteXML, PropOPAPolicyURLTable, "table_allow")
	out.set(hivev1alpha1.HiveSiteXML, PropOPAPolicyURLColumn, "column_allow")
	out.set(hivev1alpha1.HiveSiteXML, PropOPAPolicyURLPartition, "partition_allow")
	out.set(hivev1alpha1.HiveSiteXML, PropOPAPolicyURLUser, "user_allow")

	if class := cm.Data[OPASecretClassKey]; class != "" {
		dir := hivev1alpha1.SecretsDir + "/" + OPATLSVolume
		out.mount(secretClassVolume(OPATLSVolume, class, map[string]string{
			secretScopeAnnotation:  "pod",
			secretFormatAnnotation: "tls-pem",
		}), dir)
		out.commands(importCACommand(dir+"/ca.crt", "opa-"+class))
	}
	return nil
}

// OPAEndpoint joins the discovered OPA base URL with the data API path of pkg
func OPAEndpoint(base, pkg string) string {
	if pkg == "" {
		pkg = defaultOPAPackage
	}
	return strings.TrimRight(base, "/") + "/v1/data/" + strings.Trim(pkg, "/")
}
