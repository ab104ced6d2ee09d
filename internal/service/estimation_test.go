package service_test

import (
	"context"
	"errors"
	"os"
	"path"

	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/yaml"
)

var _ = Describe("estimation service", func() {
	var srv *service.EstimationService

	BeforeEach(func() {
		registry, err := service.NewReferenceRegistry("")
		Expect(err).To(BeNil())
		srv = service.NewEstimationService(registry, "")
	})

	Context("tables", func() {
		It("defaults to the current preset", func() {
			Expect(srv.DefaultVersion()).To(Equal(reference.DefaultVersion))
			table, err := srv.Table("")
			Expect(err).To(BeNil())
			Expect(table.Version).To(Equal(reference.DefaultVersion))
		})

		It("lists every preset", func() {
			versions := []string{}
			for _, t := range srv.Tables() {
				versions = append(versions, t.Version)
			}
			Expect(versions).To(Equal([]string{"2.0", "3.0"}))
		})

		It("fails on an unknown version", func() {
			_, err := srv.Table("9.9")
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("registers an extra table from disk", func() {
			table := reference.DefaultTable()
			extra := *table
			extra.Version = "3.1-local"
			data, err := yaml.Marshal(extra)
			Expect(err).To(BeNil())
			file := path.Join(GinkgoT().TempDir(), "table.yaml")
			Expect(os.WriteFile(file, data, 0o600)).To(Succeed())

			registry, err := service.NewReferenceRegistry(file)
			Expect(err).To(BeNil())
			Expect(registry.Versions()).To(ContainElement("3.1-local"))
		})

		It("refuses an extra table that reuses a preset version", func() {
			data, err := yaml.Marshal(reference.DefaultTable())
			Expect(err).To(BeNil())
			file := path.Join(GinkgoT().TempDir(), "table.yaml")
			Expect(os.WriteFile(file, data, 0o600)).To(Succeed())

			_, err = service.NewReferenceRegistry(file)
			Expect(err).NotTo(BeNil())
		})
	})

	Context("estimate", func() {
		It("estimates the default snapshot", func() {
			result, err := srv.Estimate(context.TODO(), household.DefaultSnapshot(), "")
			Expect(err).To(BeNil())
			Expect(result.TableVersion).To(Equal("3.0"))
			Expect(result.Trucks).To(Equal([]string{"26' Truck", "10' - 15' Truck"}))
			Expect(result.Plan).NotTo(BeEmpty())
		})

		It("uses the requested table", func() {
			result, err := srv.Estimate(context.TODO(), household.DefaultSnapshot(), "2.0")
			Expect(err).To(BeNil())
			Expect(result.TableVersion).To(Equal("2.0"))
			Expect(result.RequiredSpace.Min).To(Equal(result.RequiredSpace.Max))
		})

		It("fails with an unknown table", func() {
			_, err := srv.Estimate(context.TODO(), household.DefaultSnapshot(), "1.0")
			var notFound *service.ErrResourceNotFound
			Expect(errors.As(err, &notFound)).To(BeTrue())
		})

		It("reports a configuration error for input the table cannot price", func() {
			s := household.DefaultSnapshot()
			s.Home.Tier = "castle"
			_, err := srv.Estimate(context.TODO(), s, "")
			var cfgErr *reference.ErrConfiguration
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
		})
	})
})
