package service_test

import (
	"context"
	"errors"
	"strings"

	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("report service", func() {
	var (
		reportSrv *service.ReportService
		table     *reference.Table
		snapshot  household.Snapshot
	)

	BeforeEach(func() {
		reportSrv = service.NewReportService()
		table = reference.DefaultTable()
		snapshot = household.DefaultSnapshot()
		snapshot.SetHobby(reference.HobbyCycling, reference.IntensityHigh)
	})

	It("lists the supported formats", func() {
		Expect(reportSrv.Formats()).To(Equal([]service.ReportFormat{
			service.ReportFormatCSV, service.ReportFormatHTML, service.ReportFormatXLSX,
		}))
	})

	It("rejects an unknown format", func() {
		_, err := reportSrv.ParseReportFormat("pdf")
		var unsupported *service.ErrUnsupportedFormat
		Expect(errors.As(err, &unsupported)).To(BeTrue())

		format, err := reportSrv.ParseReportFormat("csv")
		Expect(err).To(BeNil())
		Expect(format).To(Equal(service.ReportFormatCSV))
	})

	Context("generate", func() {
		var estimationSrv *service.EstimationService

		BeforeEach(func() {
			registry, err := service.NewReferenceRegistry("")
			Expect(err).To(BeNil())
			estimationSrv = service.NewEstimationService(registry, "")
		})

		It("renders a csv plan without the household inputs by default", func() {
			result, err := estimationSrv.Estimate(context.TODO(), snapshot, "")
			Expect(err).To(BeNil())

			report, err := reportSrv.GenerateReport(context.TODO(), table, snapshot, *result, service.ReportOptions{Format: service.ReportFormatCSV})
			Expect(err).To(BeNil())
			Expect(report.ContentType).To(HavePrefix("text/csv"))
			Expect(report.Filename).To(HaveSuffix(".csv"))

			content := string(report.Content)
			Expect(content).To(ContainSubstring("MOVE PLAN"))
			Expect(content).To(ContainSubstring(result.TruckRecommendation()))
			Expect(content).NotTo(ContainSubstring("HOUSEHOLD"))
		})

		It("keeps the household section and the custom title when asked", func() {
			result, err := estimationSrv.Estimate(context.TODO(), snapshot, "")
			Expect(err).To(BeNil())

			report, err := reportSrv.GenerateReport(context.TODO(), table, snapshot, *result, service.ReportOptions{
				Format:        service.ReportFormatHTML,
				Title:         "Our move",
				IncludeInputs: true,
			})
			Expect(err).To(BeNil())
			Expect(report.ContentType).To(HavePrefix("text/html"))

			content := string(report.Content)
			Expect(content).To(ContainSubstring("Our move"))
			Expect(strings.Count(content, "Household")).To(BeNumerically(">=", 1))
		})

		It("renders a spreadsheet", func() {
			result, err := estimationSrv.Estimate(context.TODO(), snapshot, "")
			Expect(err).To(BeNil())

			report, err := reportSrv.GenerateReport(context.TODO(), table, snapshot, *result, service.ReportOptions{Format: service.ReportFormatXLSX})
			Expect(err).To(BeNil())
			Expect(report.ContentType).To(Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
			// xlsx files are zip archives
			Expect(report.Content[:2]).To(Equal([]byte("PK")))
		})

		It("fails on an unknown format", func() {
			result, err := estimationSrv.Estimate(context.TODO(), snapshot, "")
			Expect(err).To(BeNil())

			_, err = reportSrv.GenerateReport(context.TODO(), table, snapshot, *result, service.ReportOptions{Format: "pdf"})
			var unsupported *service.ErrUnsupportedFormat
			Expect(errors.As(err, &unsupported)).To(BeTrue())
		})
	})
})
