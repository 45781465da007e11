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

package postgres

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pashagolub/pgxmock/v4"

	hivev1alpha1 "github.com/hive-operator/api/v1alpha1"
	"github.com/hive-operator/internal/adapter/testutil"
	"github.com/hive-operator/internal/adapter/types"
)

const localURL = "jdbc:postgresql://localhost:5432/hive"

func target(jdbcURL string) types.DatabaseTarget {
	return testutil.Target(hivev1alpha1.DatabaseKindPostgres, jdbcURL)
}

var _ = Describe("PostgreSQL Prober", func() {
	Describe("buildPoolConfig", func() {
		It("should translate the JDBC URL and credentials", func() {
			p := NewProber(target(localURL))

			cfg, err := p.buildPoolConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ConnConfig.Host).To(Equal("localhost"))
			Expect(cfg.ConnConfig.Port).To(Equal(uint16(5432)))
			Expect(cfg.ConnConfig.Database).To(Equal("hive"))
			Expect(cfg.ConnConfig.User).To(Equal(testutil.Username))
			Expect(cfg.ConnConfig.Password).To(Equal(testutil.Password))
			Expect(cfg.ConnConfig.ConnectTimeout).To(Equal(5 * time.Second))
			Expect(cfg.MaxConns).To(Equal(int32(1)))
		})

		It("should default the port", func() {
			p := NewProber(target("jdbc:postgresql://db.example.com/metastore"))

			cfg, err := p.buildPoolConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ConnConfig.Host).To(Equal("db.example.com"))
			Expect(cfg.ConnConfig.Port).To(Equal(uint16(5432)))
		})

		It("should drop JDBC-only parameters", func() {
			p := NewProber(target(
				"jdbc:postgresql://localhost:5432/hive?ssl=true&sslfactory=org.postgresql.ssl.NonValidatingFactory"))

			cfg, err := p.buildPoolConfig()

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.ConnConfig.RuntimeParams).NotTo(HaveKey("sslfactory"))
			Expect(cfg.ConnConfig.RuntimeParams).NotTo(HaveKey("ssl"))
			Expect(cfg.ConnConfig.TLSConfig).NotTo(BeNil())
		})

		It("should reject a non-postgres driver", func() {
			p := NewProber(target("jdbc:mysql://localhost:3306/hive"))

			_, err := p.buildPoolConfig()

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unexpected jdbc driver"))
		})

		It("should reject a URL without the jdbc prefix", func() {
			p := NewProber(target("postgresql://localhost:5432/hive"))

			_, err := p.buildPoolConfig()

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Probe", func() {
		var (
			mock   pgxmock.PgxPoolIface
			prober *Prober
			ctx    context.Context
		)

		BeforeEach(func() {
			var err error
			mock, err = testutil.NewMockPool()
			Expect(err).NotTo(HaveOccurred())

			prober = NewProber(target(localURL))
			prober.pool = mock
			ctx = context.Background()
		})

		It("should succeed when the server answers", func() {
			mock.ExpectPing()

			Expect(prober.Probe(ctx)).To(Succeed())
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})

		It("should wrap a ping failure", func() {
			mock.ExpectPing().WillReturnError(errors.New("connection refused"))

			err := prober.Probe(ctx)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to ping database"))
			Expect(err.Error()).To(ContainSubstring("connection refused"))
			Expect(mock.ExpectationsWereMet()).To(Succeed())
		})

		It("should drop the pool on Close", func() {
			Expect(prober.Close()).To(Succeed())
			Expect(prober.pool).To(BeNil())
			Expect(prober.Close()).To(Succeed())
		})
	})
})
