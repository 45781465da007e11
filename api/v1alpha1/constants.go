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

package v1alpha1

// Product identity
const (
	AppName                = "hive"
	RoleMetastore          = "metastore"
	OperatorName           = "hive-operator"
	DefaultImageRepository = "oci.stackable.tech/sdp/hive"
	KerberosServiceName    = "hive"
)

// Ports
const (
	HivePortName    = "hive"
	HivePort        = 9083
	MetricsPortName = "metrics"
	MetricsPort     = 9084
)

// Container paths
const (
	ConfigDir          = "/stackable/config"
	ConfigMountDir     = "/stackable/mount/config"
	LogDir             = "/stackable/log"
	LogConfigMountDir  = "/stackable/mount/log-config"
	HDFSConfigMountDir = "/stackable/mount/hdfs-config"
	KerberosDir        = "/stackable/kerberos"
	SecretsDir         = "/stackable/secrets"
	CertificatesDir    = "/stackable/certificates"
	TrustStore         = "/stackable/truststore.p12"
	TrustStorePassword = "changeit"
	SystemTrustStore   = "/etc/pki/java/cacerts"
	SystemTrustStorePW = "changeit"
	JMXAgentJar        = "/stackable/jmx/jmx_prometheus_javaagent.jar"
	JMXAgentConfig     = "/stackable/jmx/jmx_hive_config.yaml"
)

// Rendered files
const (
	HiveSiteXML         = "hive-site.xml"
	CoreSiteXML         = "core-site.xml"
	HDFSSiteXML         = "hdfs-site.xml"
	SecurityProperties  = "security.properties"
	Log4j2Properties    = "metastore-log4j2.properties"
	VectorConfigFile    = "vector.yaml"
	DiscoveryKeyHive    = "HIVE"
	OPADiscoveryKey     = "OPA"
	VectorAggregatorKey = "ADDRESS"
)

// KnownConfigFiles are the files that accept configOverrides.
var KnownConfigFiles = []string{HiveSiteXML, CoreSiteXML, SecurityProperties, Log4j2Properties}

// IsKnownConfigFile reports whether name accepts configOverrides.
func IsKnownConfigFile(name string) bool {
	for _, f := range KnownConfigFiles {
		if f == name {
			return true
		}
	}
	return false
}

// Labels and annotations
const (
	LabelName      = "app.kubernetes.io/name"
	LabelInstance  = "app.kubernetes.io/instance"
	LabelComponent = "app.kubernetes.io/component"
	LabelRoleGroup = "app.kubernetes.io/role-group"
	LabelManagedBy = "app.kubernetes.io/managed-by"
	LabelVersion   = "app.kubernetes.io/version"

	// LabelOperatorInstanceID assigns a HiveCluster to one of several operator deployments
	LabelOperatorInstanceID = "hive.hiveops.io/operator-instance-id"

	AnnotationConfigHash               = "hive.hiveops.io/config-hash"
	AnnotationUnsupportedConfiguration = "hive.hiveops.io/unsupported-configuration"
)

// ReservedProperties are keys in rendered files that only the operator may set.
var ReservedProperties = map[string][]string{
	HiveSiteXML: {
		"javax.jdo.option.ConnectionUserName",
		"javax.jdo.option.ConnectionPassword",
		"fs.s3a.access.key",
		"fs.s3a.secret.key",
		"hive.metastore.kerberos.keytab.file",
	},
}

// ReservedEnvVars are env vars that only the operator may set.
var ReservedEnvVars = []string{"DB_USERNAME_ENV", "DB_PASSWORD_ENV", "KRB5_CONFIG"}

// IsReservedProperty reports whether key in file is operator-managed.
func IsReservedProperty(file, key string) bool {
	for _, k := range ReservedProperties[file] {
		if k == key {
			return true
		}
	}
	return false
}

// IsReservedEnvVar reports whether name is operator-managed.
func IsReservedEnvVar(name string) bool {
	for _, n := range ReservedEnvVars {
		if n == name {
			return true
		}
	}
	return false
}
