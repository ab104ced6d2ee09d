package v1alpha1

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/smartstow/move-planner/internal/handlers/v1alpha1/mappers"
	"github.com/smartstow/move-planner/pkg/log"
)

// (GET /api/v1/reference-tables)
func (h *ServiceHandler) ListReferenceTables(w http.ResponseWriter, r *http.Request) {
	tables := h.estimationSrv.Tables()
	respond(w, r, http.StatusOK, mappers.ReferenceTableListToApi(tables, h.estimationSrv.DefaultVersion()))
}

// (GET /api/v1/reference-tables/{version})
func (h *ServiceHandler) GetReferenceTable(w http.ResponseWriter, r *http.Request) {
	version := chi.URLParam(r, "version")
	logger := log.NewDebugLogger("reference_handler").
		WithContext(r.Context()).
		Operation("get_reference_table").
		WithString("table_version", version).
		Build()

	table, err := h.estimationSrv.Table(version)
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to load reference table")
		return
	}

	respond(w, r, http.StatusOK, mappers.ReferenceTableToApi(table, h.estimationSrv.DefaultVersion()))
}
