package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/smartstow/move-planner/api/v1alpha1"
	"github.com/smartstow/move-planner/internal/estimation"
	"github.com/smartstow/move-planner/internal/handlers/v1alpha1/mappers"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/smartstow/move-planner/pkg/log"
)

const defaultReportFormat = service.ReportFormatHTML

// (POST /api/v1/estimates)
func (h *ServiceHandler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.NewDebugLogger("estimation_handler").
		WithContext(ctx).
		Operation("create_estimate").
		Build()

	var form v1alpha1.EstimateRequest
	if err := decodeBody(r, &form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.estimateValidator.Struct(form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	table, snapshot, ok := h.householdInputs(w, r, *form.Household, form.TableVersion, logger)
	if !ok {
		return
	}

	result, ok := h.estimate(w, r, snapshot, table, logger)
	if !ok {
		return
	}

	logger.Success().
		WithString("table_version", result.TableVersion).
		WithString("truck", result.TruckRecommendation()).
		Log()

	respond(w, r, http.StatusOK, mappers.EstimateToApi(*result))
}

// (POST /api/v1/estimates/report)
func (h *ServiceHandler) CreateEstimateReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rawFormat := r.URL.Query().Get("format")
	if rawFormat == "" {
		rawFormat = string(defaultReportFormat)
	}

	logger := log.NewDebugLogger("estimation_handler").
		WithContext(ctx).
		Operation("create_estimate_report").
		WithString("format", rawFormat).
		Build()

	format, err := h.reportSrv.ParseReportFormat(rawFormat)
	if err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var form v1alpha1.ReportRequest
	if err := decodeBody(r, &form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.estimateValidator.Struct(form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	table, snapshot, ok := h.householdInputs(w, r, *form.Household, form.TableVersion, logger)
	if !ok {
		return
	}

	result, ok := h.estimate(w, r, snapshot, table, logger)
	if !ok {
		return
	}

	report, err := h.reportSrv.GenerateReport(ctx, table, snapshot, *result, service.ReportOptions{
		Format:        format,
		Title:         form.Title,
		IncludeInputs: form.IncludeInputs,
	})
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to generate report")
		return
	}

	logger.Success().WithInt("bytes", len(report.Content)).Log()

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(report.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(report.Content)
}

// householdInputs resolves the table named by a request and builds its snapshot. On failure the response
// has been written and ok is false.
func (h *ServiceHandler) householdInputs(w http.ResponseWriter, r *http.Request, resource v1alpha1.Household, tableVersion string, logger *log.OperationTracer) (table *reference.Table, snapshot household.Snapshot, ok bool) {
	table, err := h.estimationSrv.Table(tableVersion)
	if err != nil {
		logger.Error(err).WithString("table_version", tableVersion).Log()
		respondServiceError(w, r, err, http.StatusBadRequest, "failed to load reference table")
		return nil, household.Snapshot{}, false
	}

	snapshot, err = mappers.HouseholdFromApi(resource, table)
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusBadRequest, "failed to read household")
		return nil, household.Snapshot{}, false
	}

	logger.Step("household_resolved").
		WithString("table_version", table.Version).
		WithString("home_tier", string(snapshot.Home.Tier)).
		WithInt("hobbies", len(snapshot.Hobbies)).
		Log()

	return table, snapshot, true
}

func (h *ServiceHandler) estimate(w http.ResponseWriter, r *http.Request, snapshot household.Snapshot, table *reference.Table, logger *log.OperationTracer) (*estimation.Result, bool) {
	result, err := h.estimationSrv.Estimate(r.Context(), snapshot, table.Version)
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusBadRequest, "failed to estimate the move")
		return nil, false
	}
	return result, true
}
