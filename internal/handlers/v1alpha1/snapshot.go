package v1alpha1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/smartstow/move-planner/api/v1alpha1"
	"github.com/smartstow/move-planner/internal/handlers/v1alpha1/mappers"
	"github.com/smartstow/move-planner/internal/service"
	"github.com/smartstow/move-planner/pkg/log"
)

func snapshotID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid snapshot id %q", raw)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("query parameter %s must be a number", name)
	}
	return v, nil
}

// (GET /api/v1/snapshots)
func (h *ServiceHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("snapshot_handler").
		WithContext(r.Context()).
		Operation("list_snapshots").
		Build()

	limit, err := queryInt(r, "limit")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	filter := mappers.SnapshotFilterApi(query.Get("label"), query.Get("tableVersion"), limit, offset)

	snapshots, err := h.snapshotSrv.List(r.Context(), filter)
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to list snapshots")
		return
	}

	logger.Success().WithInt("count", len(snapshots)).Log()
	respond(w, r, http.StatusOK, mappers.SnapshotListToApi(snapshots))
}

// (POST /api/v1/snapshots)
func (h *ServiceHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	logger := log.NewDebugLogger("snapshot_handler").
		WithContext(r.Context()).
		Operation("create_snapshot").
		Build()

	var form v1alpha1.SnapshotCreate
	if err := decodeBody(r, &form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	created, ok := h.saveSnapshot(w, r, uuid.Nil, form, logger)
	if !ok {
		return
	}

	logger.Success().WithUUID("snapshot_id", created.ID).Log()
	respond(w, r, http.StatusCreated, mappers.SnapshotToApi(*created))
}

// (GET /api/v1/snapshots/{id})
func (h *ServiceHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := snapshotID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	logger := log.NewDebugLogger("snapshot_handler").
		WithContext(r.Context()).
		Operation("get_snapshot").
		WithUUID("snapshot_id", id).
		Build()

	saved, err := h.snapshotSrv.Get(r.Context(), id)
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to get snapshot")
		return
	}

	logger.Success().WithBool("restored", saved.Restored).Log()
	respond(w, r, http.StatusOK, mappers.SnapshotToApi(*saved))
}

// (PUT /api/v1/snapshots/{id})
func (h *ServiceHandler) UpdateSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := snapshotID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	logger := log.NewDebugLogger("snapshot_handler").
		WithContext(r.Context()).
		Operation("update_snapshot").
		WithUUID("snapshot_id", id).
		Build()

	var form v1alpha1.SnapshotUpdate
	if err := decodeBody(r, &form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, ok := h.saveSnapshot(w, r, id, v1alpha1.SnapshotCreate(form), logger)
	if !ok {
		return
	}

	logger.Success().Log()
	respond(w, r, http.StatusOK, mappers.SnapshotToApi(*updated))
}

// (DELETE /api/v1/snapshots/{id})
func (h *ServiceHandler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := snapshotID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	logger := log.NewDebugLogger("snapshot_handler").
		WithContext(r.Context()).
		Operation("delete_snapshot").
		WithUUID("snapshot_id", id).
		Build()

	if err := h.snapshotSrv.Delete(r.Context(), id); err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to delete snapshot")
		return
	}

	logger.Success().Log()
	w.WriteHeader(http.StatusNoContent)
}

// (GET /api/v1/snapshots/{id}/estimate)
//
// The tableVersion query parameter overrides the table stored with the snapshot. A stored record that can no
// longer be read is estimated as the default household and reported with restored=false.
func (h *ServiceHandler) EstimateSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := snapshotID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	logger := log.NewDebugLogger("snapshot_handler").
		WithContext(r.Context()).
		Operation("estimate_snapshot").
		WithUUID("snapshot_id", id).
		Build()

	saved, err := h.snapshotSrv.Get(r.Context(), id)
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to get snapshot")
		return
	}

	version := r.URL.Query().Get("tableVersion")
	if version == "" {
		version = saved.TableVersion
	}

	result, err := h.estimationSrv.Estimate(r.Context(), saved.Snapshot, version)
	if err != nil {
		logger.Error(err).WithString("table_version", version).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to estimate the move")
		return
	}

	logger.Success().
		WithBool("restored", saved.Restored).
		WithString("table_version", result.TableVersion).
		Log()

	respond(w, r, http.StatusOK, v1alpha1.SnapshotEstimate{
		Snapshot: mappers.SnapshotToApi(*saved),
		Estimate: mappers.EstimateToApi(*result),
	})
}

// saveSnapshot validates form and creates a snapshot, or replaces snapshot id when it is not nil.
func (h *ServiceHandler) saveSnapshot(w http.ResponseWriter, r *http.Request, id uuid.UUID, form v1alpha1.SnapshotCreate, logger *log.OperationTracer) (*service.SavedSnapshot, bool) {
	if err := h.snapshotValidator.Struct(form); err != nil {
		logger.Error(err).Log()
		respondError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	table, snapshot, ok := h.householdInputs(w, r, *form.Household, form.TableVersion, logger)
	if !ok {
		return nil, false
	}

	snapshotForm := mappers.SnapshotFormApi(form.Label, table.Version, snapshot)

	var (
		saved *service.SavedSnapshot
		err   error
	)
	if id == uuid.Nil {
		saved, err = h.snapshotSrv.Save(r.Context(), snapshotForm)
	} else {
		saved, err = h.snapshotSrv.Update(r.Context(), id, snapshotForm)
	}
	if err != nil {
		logger.Error(err).Log()
		respondServiceError(w, r, err, http.StatusNotFound, "failed to save snapshot")
		return nil, false
	}

	return saved, true
}
