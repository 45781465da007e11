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

package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter/testutil"
	"github.com/hive-operator/internal/adapter/types"
)

const localURL = "jdbc:mysql://localhost:3306/hive"

func target(jdbcURL string) types.DatabaseTarget {
	return testutil.Target(hivev1alpha1.DatabaseKindMySQL, jdbcURL)
}

var _ = Describe("MySQL Prober", func() {
	Describe("buildConfig", func() {
		It("should translate the JDBC URL and credentials", func() {
			p := NewProber(target(localURL))

			cfg, err := p.buildConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Net).To(Equal("tcp"))
			Expect(cfg.Addr).To(Equal("localhost:3306"))
			Expect(cfg.DBName).To(Equal("hive"))
			Expect(cfg.User).To(Equal(testutil.Username))
			Expect(cfg.Passwd).To(Equal(testutil.Password))
			Expect(cfg.Timeout).To(Equal(5 * time.Second))
			Expect(cfg.TLSConfig).To(BeEmpty())
		})

		It("should default the port", func() {
			p := NewProber(target("jdbc:mysql://db.example.com/metastore"))

			cfg, err := p.buildConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Addr).To(Equal("db.example.com:3306"))
			Expect(cfg.DBName).To(Equal("metastore"))
		})

		It("should enable TLS for useSSL=true", func() {
			p := NewProber(target("jdbc:mysql://localhost:3306/hive?useSSL=true"))

			cfg, err := p.buildConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.TLSConfig).To(Equal("skip-verify"))
		})

		It("should accept the mariadb driver name", func() {
			p := NewProber(target("jdbc:mariadb://localhost:3306/hive"))

			_, err := p.buildConfig()

			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a postgres URL", func() {
			p := NewProber(target("jdbc:postgresql://localhost:5432/hive"))

			_, err := p.buildConfig()

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Probe", func() {
		var (
			mock   sqlmock.Sqlmock
			prober *Prober
			ctx    context.Context
		)

		BeforeEach(func() {
			db, m, err := testutil.NewMockDB()
			Expect(err).NotTo(HaveOccurred())
			mock = m

			prober = NewProber(target(localURL))
			prober.db = db
			ctx = context.Background()
		})

		AfterEach(func() {
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})

		It("should succeed when the server answers", func() {
			mock.ExpectPing()

			Expect(prober.Probe(ctx)).To(Succeed())
		})

		It("should wrap a ping failure", func() {
			mock.ExpectPing().WillReturnError(errors.New("Access denied for user 'hive'"))

			err := prober.Probe(ctx)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to ping database"))
			Expect(err.Error()).To(ContainSubstring("Access denied"))
		})

		It("should close the handle", func() {
			mock.ExpectClose()

			Expect(prober.Close()).To(Succeed())
			Expect(prober.db).To(BeNil())
		})
	})
})
