package service

import (
	"context"
	"fmt"
	"time"

	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service/report"
	"github.com/smartstow/move-planner/internal/service/report/csv"
	"github.com/smartstow/move-planner/internal/service/report/html"
	"github.com/smartstow/move-planner/internal/service/report/types"
	"github.com/smartstow/move-planner/internal/service/report/xlsx"
	"github.com/smartstow/move-planner/pkg/log"
	"github.com/smartstow/move-planner/pkg/metrics"
	"github.com/thoas/go-funk"
)

type ReportRenderer = types.ReportRenderer
type ReportFormat = types.ReportFormat
type ReportOptions = types.ReportOptions
type ReportData = types.ReportData

const (
	ReportFormatCSV  = types.ReportFormatCSV
	ReportFormatHTML = types.ReportFormatHTML
	ReportFormatXLSX = types.ReportFormatXLSX
)

// Report is a rendered plan ready to be written out.
type Report struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ReportService struct {
	processor types.PlanProcessor
	renderers map[types.ReportFormat]types.ReportRenderer
	logger    *log.StructuredLogger
}

func NewReportService() *ReportService {
	service := &ReportService{
		processor: report.NewStandardPlanProcessor(),
		renderers: make(map[types.ReportFormat]types.ReportRenderer),
		logger:    log.NewDebugLogger("report_service"),
	}

	for _, renderer := range []types.ReportRenderer{csv.NewRenderer(), html.NewRenderer(), xlsx.NewRenderer()} {
		service.renderers[renderer.SupportedFormat()] = renderer
	}

	return service
}

// Formats lists the supported formats in a stable order.
func (r *ReportService) Formats() []ReportFormat {
	return []ReportFormat{ReportFormatCSV, ReportFormatHTML, ReportFormatXLSX}
}

// ParseReportFormat validates a user supplied format name.
func (r *ReportService) ParseReportFormat(raw string) (ReportFormat, error) {
	format := ReportFormat(raw)
	if _, ok := r.renderers[format]; !ok {
		return "", NewErrUnsupportedFormat(raw)
	}
	return format, nil
}

func (r *ReportService) GenerateReport(ctx context.Context, table *reference.Table, snapshot household.Snapshot, result estimation.Result, options ReportOptions) (*Report, error) {
	tracer := r.logger.WithContext(ctx).Operation("generate_report").
		WithString("format", string(options.Format)).
		WithString("table_version", result.TableVersion).
		Build()

	renderer, exists := r.renderers[options.Format]
	if !exists {
		err := NewErrUnsupportedFormat(string(options.Format))
		tracer.Error(err).Log()
		return nil, err
	}

	data, err := r.processor.ProcessPlan(report.NewTableInfo(table), snapshot, result)
	if err != nil {
		tracer.Error(err).Log()
		return nil, fmt.Errorf("failed to process plan: %w", err)
	}

	data.Options = options
	if options.Title != "" {
		data.Title = options.Title
	}
	if !options.IncludeInputs {
		data.Sections = funk.Filter(data.Sections, func(s types.Section) bool {
			return s.Title != report.HouseholdSection
		}).([]types.Section)
	}

	content, err := renderer.Render(data)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	metrics.IncreaseReportsRenderedMetric(string(options.Format))
	tracer.Success().WithInt("bytes", len(content)).Log()

	return &Report{
		Content:     content,
		ContentType: renderer.ContentType(),
		Filename:    fmt.Sprintf("move-plan-%s.%s", time.Now().Format("20060102"), options.Format),
	}, nil
}
