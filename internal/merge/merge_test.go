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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/utils/ptr"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/service"
)

func cpuMax(v string) *hivev1alpha1.MetastoreConfigFragment {
	q := resource.MustParse(v)
	return &hivev1alpha1.MetastoreConfigFragment{
		Resources: &hivev1alpha1.ResourcesFragment{CPU: &hivev1alpha1.CPUFragment{Max: &q}},
	}
}

// quantity formats q; the accessors return values, which are not addressable.
func quantity(q resource.Quantity) string {
	return q.String()
}

var target = Target{Role: hivev1alpha1.RoleMetastore, RoleGroup: "default", Replicas: 1}

func mergeRoleGroup(role *hivev1alpha1.MetastoreRoleSpec, group hivev1alpha1.RoleGroupSpec) (*MergedConfig, error) {
	return Merge(target, RoleGroupLayers(DefaultLayer("hive", nil), role, group), MetastoreDerivation(nil))
}

var _ = Describe("Merge", func() {
	var (
		role  *hivev1alpha1.MetastoreRoleSpec
		group hivev1alpha1.RoleGroupSpec
	)

	BeforeEach(func() {
		role = &hivev1alpha1.MetastoreRoleSpec{RoleGroups: map[string]hivev1alpha1.RoleGroupSpec{}}
		group = hivev1alpha1.RoleGroupSpec{Replicas: ptr.To[int32](1)}
	})

	Context("precedence", func() {
		It("resolves each leaf to the most specific layer", func() {
			defaults := DefaultLayer("hive", nil)
			defaults.Config = DefaultConfig("hive")
			two := resource.MustParse("2")
			defaults.Config.Resources.CPU.Max = &two

			role.Config = cpuMax("3")
			group.Config = cpuMax("4")

			m, err := Merge(target, RoleGroupLayers(defaults, role, group), MetastoreDerivation(nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(quantity(m.Resources().CPUMax)).To(Equal("4"))

			group.Config = nil
			m, err = Merge(target, RoleGroupLayers(defaults, role, group), MetastoreDerivation(nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(quantity(m.Resources().CPUMax)).To(Equal("3"))

			role.Config = nil
			m, err = Merge(target, RoleGroupLayers(defaults, role, group), MetastoreDerivation(nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(quantity(m.Resources().CPUMax)).To(Equal("2"))
		})

		It("keeps unrelated leaves from less specific layers", func() {
			role.Config = &hivev1alpha1.MetastoreConfigFragment{WarehouseDir: ptr.To("s3a://warehouse/")}
			group.Config = cpuMax("4")

			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(quantity(m.Resources().CPUMax)).To(Equal("4"))
			Expect(quantity(m.Resources().CPUMin)).To(Equal(DefaultCPUMin))
			v, _ := m.Property(hivev1alpha1.HiveSiteXML, "hive.metastore.warehouse.dir")
			Expect(v).To(Equal("s3a://warehouse/"))
		})

		It("replaces affinity as a whole", func() {
			group.Config = &hivev1alpha1.MetastoreConfigFragment{
				Affinity: &corev1.Affinity{NodeAffinity: &corev1.NodeAffinity{}},
			}
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Affinity().PodAntiAffinity).To(BeNil())
			Expect(m.Affinity().NodeAffinity).NotTo(BeNil())
		})
	})

	Context("defaults", func() {
		It("derives the heap from the memory limit", func() {
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.HeapSizeMiB()).To(Equal(int64(614)))
			heap, ok := m.EnvValue(EnvHadoopHeapSize)
			Expect(ok).To(BeTrue())
			Expect(heap).To(Equal("614"))
			Expect(m.JVMArgs()[:2]).To(Equal([]string{"-Xmx614m", "-Xms614m"}))
		})

		It("keeps heap arguments out of HADOOP_OPTS", func() {
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			opts, _ := m.EnvValue(EnvHadoopOpts)
			Expect(opts).NotTo(ContainSubstring("-Xmx"))
			Expect(opts).To(ContainSubstring("-Djava.security.properties=/stackable/config/security.properties"))
			Expect(opts).To(ContainSubstring("-javaagent:/stackable/jmx/jmx_prometheus_javaagent.jar=9084:/stackable/jmx/jmx_hive_config.yaml"))
		})

		It("applies the operator defaults", func() {
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(quantity(m.Resources().CPUMin)).To(Equal("250m"))
			Expect(quantity(m.Resources().MemoryLimit)).To(Equal("768Mi"))
			Expect(m.GracefulShutdown()).To(Equal(DefaultGracefulShutdown))
			Expect(m.Logging().RootLevel).To(Equal("INFO"))

			terms := m.Affinity().PodAntiAffinity.PreferredDuringSchedulingIgnoredDuringExecution
			Expect(terms).To(HaveLen(1))
			Expect(terms[0].Weight).To(Equal(int32(70)))
			Expect(terms[0].PodAffinityTerm.TopologyKey).To(Equal("kubernetes.io/hostname"))
			Expect(terms[0].PodAffinityTerm.LabelSelector.MatchLabels).To(HaveKeyWithValue(hivev1alpha1.LabelInstance, "hive"))
		})

		It("fails when no layer sets a leaf", func() {
			_, err := Merge(target, []Layer{{Kind: LayerRoleConfig, Config: cpuMax("1")}}, MetastoreDerivation(nil))
			Expect(err).To(HaveOccurred())
			Expect(service.IsValidationError(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("config.resources.cpu.min"))
		})
	})

	Context("overrides", func() {
		It("merges env per key", func() {
			role.EnvOverrides = map[string]string{"COMMON_VAR": "role-value", "ROLE_VAR": "role"}
			group.EnvOverrides = map[string]string{"COMMON_VAR": "group-value", "GROUP_VAR": "group"}

			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			common, _ := m.EnvValue("COMMON_VAR")
			roleVar, _ := m.EnvValue("ROLE_VAR")
			groupVar, _ := m.EnvValue("GROUP_VAR")
			Expect(common).To(Equal("group-value"))
			Expect(roleVar).To(Equal("role"))
			Expect(groupVar).To(Equal("group"))
		})

		It("sorts env by name", func() {
			group.EnvOverrides = map[string]string{"ZZZ": "1", "AAA": "2"}
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			env := m.Env()
			for i := 1; i < len(env); i++ {
				Expect(env[i-1].Name < env[i].Name).To(BeTrue())
			}
		})

		It("merges config overrides per file and key", func() {
			role.ConfigOverrides = map[string]map[string]string{
				hivev1alpha1.HiveSiteXML: {"a": "role", "b": "role"},
			}
			group.ConfigOverrides = map[string]map[string]string{
				hivev1alpha1.HiveSiteXML: {"b": "group"},
			}
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			a, _ := m.Property(hivev1alpha1.HiveSiteXML, "a")
			b, _ := m.Property(hivev1alpha1.HiveSiteXML, "b")
			Expect(a).To(Equal("role"))
			Expect(b).To(Equal("group"))
			site, _ := m.File(hivev1alpha1.HiveSiteXML)
			Expect(site).To(ContainSubstring("<name>b</name>\n    <value>group</value>"))
		})

		It("replaces jvm argument overrides wholesale", func() {
			role.JVMArgumentOverrides = []string{"-Drole.a=1", "-Drole.b=2"}
			group.JVMArgumentOverrides = []string{"-Dgroup=3"}

			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			args := m.JVMArgs()
			Expect(args[len(args)-1]).To(Equal("-Dgroup=3"))
			Expect(args).NotTo(ContainElement("-Drole.a=1"))

			group.JVMArgumentOverrides = nil
			m, err = mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.JVMArgs()).To(ContainElements("-Drole.a=1", "-Drole.b=2"))
		})

		It("appends adapter jvm arguments before overrides", func() {
			group.JVMArgumentOverrides = []string{"-Dlast=1"}
			m, err := Merge(target, RoleGroupLayers(DefaultLayer("hive", nil), role, group),
				MetastoreDerivation([]string{"-Djava.security.krb5.conf=/stackable/kerberos/krb5.conf"}))
			Expect(err).NotTo(HaveOccurred())
			args := m.JVMArgs()
			Expect(args[len(args)-2]).To(Equal("-Djava.security.krb5.conf=/stackable/kerberos/krb5.conf"))
			Expect(args[len(args)-1]).To(Equal("-Dlast=1"))
		})

		It("rejects reserved keys", func() {
			group.ConfigOverrides = map[string]map[string]string{
				hivev1alpha1.HiveSiteXML: {"javax.jdo.option.ConnectionPassword": "secret"},
			}
			_, err := mergeRoleGroup(role, group)
			Expect(service.IsReservedKey(err)).To(BeTrue())
			Expect(service.IsValidationError(err)).To(BeTrue())

			group.ConfigOverrides = nil
			role.EnvOverrides = map[string]string{"KRB5_CONFIG": "/tmp/krb5.conf"}
			_, err = mergeRoleGroup(role, group)
			Expect(service.IsReservedKey(err)).To(BeTrue())
		})

		It("allows reserved keys from the defaults layer", func() {
			defaults := DefaultLayer("hive", map[string]map[string]string{
				hivev1alpha1.HiveSiteXML: {"javax.jdo.option.ConnectionPassword": "xxx_db_password_xxx"},
			})
			m, err := Merge(target, RoleGroupLayers(defaults, role, group), MetastoreDerivation(nil))
			Expect(err).NotTo(HaveOccurred())
			v, _ := m.Property(hivev1alpha1.HiveSiteXML, "javax.jdo.option.ConnectionPassword")
			Expect(v).To(Equal("xxx_db_password_xxx"))
		})

		It("merges loggers per name", func() {
			role.Config = &hivev1alpha1.MetastoreConfigFragment{Logging: &hivev1alpha1.LoggingFragment{
				Loggers: map[string]hivev1alpha1.LogLevel{"org.apache.hadoop": "WARN", "com.amazonaws": "ERROR"},
			}}
			group.Config = &hivev1alpha1.MetastoreConfigFragment{Logging: &hivev1alpha1.LoggingFragment{
				Loggers: map[string]hivev1alpha1.LogLevel{"org.apache.hadoop": "DEBUG"},
			}}
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Logging().Loggers).To(Equal(map[string]string{
				"org.apache.hadoop": "DEBUG",
				"com.amazonaws":     "ERROR",
			}))
			log4j, _ := m.File(hivev1alpha1.Log4j2Properties)
			Expect(log4j).To(ContainSubstring("logger.org_apache_hadoop.level=DEBUG"))
		})

		It("omits the generated log4j2 file for a custom config map", func() {
			group.Config = &hivev1alpha1.MetastoreConfigFragment{Logging: &hivev1alpha1.LoggingFragment{
				CustomConfigMap: ptr.To("my-logging"),
			}}
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			_, ok := m.File(hivev1alpha1.Log4j2Properties)
			Expect(ok).To(BeFalse())
			Expect(m.Logging().CustomConfigMap).To(Equal("my-logging"))
		})

		It("collects pod overrides role first", func() {
			role.PodOverrides = &runtime.RawExtension{Raw: []byte(`{"metadata":{"labels":{"from":"role"}}}`)}
			group.PodOverrides = &runtime.RawExtension{Raw: []byte(`{"metadata":{"labels":{"from":"group"}}}`)}
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			patches := m.PodOverrides()
			Expect(patches).To(HaveLen(2))
			Expect(string(patches[0].Raw)).To(ContainSubstring("role"))
			Expect(string(patches[1].Raw)).To(ContainSubstring("group"))
		})
	})

	Context("determinism", func() {
		It("is idempotent", func() {
			role.EnvOverrides = map[string]string{"A": "1", "B": "2", "C": "3"}
			role.ConfigOverrides = map[string]map[string]string{
				hivev1alpha1.HiveSiteXML: {"x": "1", "y": "2", "z": "3"},
			}
			first, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			second, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Files()).To(Equal(first.Files()))
			Expect(second.Hash()).To(Equal(first.Hash()))
		})

		It("changes the hash when a value changes", func() {
			first, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			group.EnvOverrides = map[string]string{"NEW": "1"}
			second, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Hash()).NotTo(Equal(first.Hash()))
		})

		It("does not modify its inputs", func() {
			role.EnvOverrides = map[string]string{"A": "1"}
			group.Config = cpuMax("4")
			_, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			Expect(role.EnvOverrides).To(Equal(map[string]string{"A": "1"}))
			Expect(group.Config.Resources.CPU.Min).To(BeNil())
		})

		It("returns copies from accessors", func() {
			m, err := mergeRoleGroup(role, group)
			Expect(err).NotTo(HaveOccurred())
			files := m.Files()
			files[hivev1alpha1.HiveSiteXML] = "changed"
			site, _ := m.File(hivev1alpha1.HiveSiteXML)
			Expect(site).NotTo(Equal("changed"))
		})
	})
})
