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
	"strings"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/format"
	"github.com/hive-operator/internal/service"
)

const (
	PropHadoopAuthentication = "hadoop.security.authentication"
	HDFSDiscoveryVolume      = "hdfs-discovery"
)

// resolveHDFS mounts the HDFS discovery ConfigMap. Its core-site properties
// join the cluster defaults so overrides still apply; hdfs-site.xml is copied
// verbatim at start.
func (r *Resolver) resolveHDFS(ctx context.Context, hc *hivev1alpha1.HiveCluster, out *Resolved) error {
	name := hc.HDFSConfigMap()
	if name == "" {
		return nil
	}

	cm, err := r.secrets.GetConfigMap(ctx, hc.Namespace, name)
	if err != nil {
		return err
	}
	out.ReferencedConfigMaps = append(out.ReferencedConfigMaps, name)

	raw, ok := cm.Data[hivev1alpha1.CoreSiteXML]
	if !ok {
		return service.NewUnresolvedReferenceError("ConfigMap", name, hivev1alpha1.CoreSiteXML, nil)
	}
	if _, ok := cm.Data[hivev1alpha1.HDFSSiteXML]; !ok {
		return service.NewUnresolvedReferenceError("ConfigMap", name, hivev1alpha1.HDFSSiteXML, nil)
	}
	coreSite, err := format.ParseHadoopXML([]byte(raw))
	if err != nil {
		return service.NewUnresolvedReferenceError("ConfigMap", name, hivev1alpha1.CoreSiteXML, err)
	}

	for k, v := range coreSite {
		out.set(hivev1alpha1.CoreSiteXML, k, v)
	}
	out.HDFSKerberized = strings.EqualFold(coreSite[PropHadoopAuthentication], "kerberos")
	out.HDFSRealm = principalRealm(coreSite)

	out.mount(configMapVolume(HDFSDiscoveryVolume, name), hivev1alpha1.HDFSConfigMountDir)
	out.commands(fmt.Sprintf("cp -RL %s/%s %s",
		hivev1alpha1.HDFSConfigMountDir, hivev1alpha1.HDFSSiteXML, hdfsSitePath))
	return nil
}

// principalRealm returns the realm of the first principal with a literal
// realm, scanning keys in sorted order.
func principalRealm(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		if strings.HasSuffix(k, ".principal") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, realm, ok := strings.Cut(props[k], "@")
		if ok && realm != "" && !strings.Contains(realm, "${") {
			return realm
		}
	}
	return ""
}
