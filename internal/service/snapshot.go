package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/smartstow/move-planner/internal/events"
	"github.com/smartstow/move-planner/internal/household"
	"github.com/smartstow/move-planner/internal/reference"
	"github.com/smartstow/move-planner/internal/store"
	"github.com/smartstow/move-planner/internal/store/model"
	"github.com/smartstow/move-planner/pkg/log"
	"github.com/smartstow/move-planner/pkg/metrics"
)

const maxLabelLength = 255

// SavedSnapshot is a stored snapshot as read back from the store.
type SavedSnapshot struct {
	ID           uuid.UUID
	Label        string
	TableVersion string
	Snapshot     household.Snapshot
	// Restored is false when the stored record could not be decoded. Snapshot then holds the default snapshot
	// and RestoreError the reason.
	Restored     bool
	RestoreError string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type SnapshotForm struct {
	Label        string
	TableVersion string
	Snapshot     household.Snapshot
}

type SnapshotFilter struct {
	Label        string
	TableVersion string
	Limit        int
	Offset       int
}

type SnapshotService struct {
	store    store.Store
	evWriter *events.EventProducer
	logger   *log.StructuredLogger
}

// NewSnapshotService creates the service. A nil ew disables snapshot events.
func NewSnapshotService(store store.Store, ew *events.EventProducer) *SnapshotService {
	return &SnapshotService{
		store:    store,
		evWriter: ew,
		logger:   log.NewDebugLogger("snapshot_service"),
	}
}

func (s *SnapshotService) Save(ctx context.Context, form SnapshotForm) (*SavedSnapshot, error) {
	tracer := s.logger.WithContext(ctx).Operation("save_snapshot").
		WithString("label", form.Label).
		Build()

	m, err := s.toModel(form)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	created, err := s.store.Snapshot().Create(ctx, m)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithUUID("snapshot_id", created.ID).Log()
	s.publish(ctx, tracer, events.SnapshotSaved, *created)
	return s.fromModel(*created), nil
}

func (s *SnapshotService) Update(ctx context.Context, id uuid.UUID, form SnapshotForm) (*SavedSnapshot, error) {
	tracer := s.logger.WithContext(ctx).Operation("update_snapshot").
		WithUUID("snapshot_id", id).
		WithString("label", form.Label).
		Build()

	m, err := s.toModel(form)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}
	m.ID = id

	ctx, err = s.store.NewTransactionContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Snapshot().Get(ctx, id); err != nil {
		_, _ = store.Rollback(ctx)
		if errors.Is(err, store.ErrRecordNotFound) {
			tracer.Error(err).Log()
			return nil, NewErrSnapshotNotFound(id)
		}
		tracer.Error(err).Log()
		return nil, err
	}

	updated, err := s.store.Snapshot().Update(ctx, m)
	if err != nil {
		_, _ = store.Rollback(ctx)
		tracer.Error(err).Log()
		return nil, err
	}

	if _, err := store.Commit(ctx); err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().Log()
	s.publish(ctx, tracer, events.SnapshotUpdated, *updated)
	return s.fromModel(*updated), nil
}

// Get reads a snapshot back. A record that no longer decodes is not an error: the default snapshot is
// returned with Restored set to false.
func (s *SnapshotService) Get(ctx context.Context, id uuid.UUID) (*SavedSnapshot, error) {
	tracer := s.logger.WithContext(ctx).Operation("get_snapshot").
		WithUUID("snapshot_id", id).
		Build()

	m, err := s.store.Snapshot().Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			tracer.Error(err).Log()
			return nil, NewErrSnapshotNotFound(id)
		}
		tracer.Error(err).Log()
		return nil, err
	}

	saved := s.fromModel(*m)
	if saved.Restored {
		metrics.IncreaseSnapshotRestoresMetric(metrics.RestoreOK)
		tracer.Success().Log()
	} else {
		metrics.IncreaseSnapshotRestoresMetric(metrics.RestoreFallback)
		tracer.Warn(errors.New(saved.RestoreError)).WithBool("restored", false).Log()
	}

	return saved, nil
}

func (s *SnapshotService) List(ctx context.Context, filter SnapshotFilter) ([]SavedSnapshot, error) {
	storeFilter := store.NewSnapshotQueryFilter()
	if filter.Label != "" {
		storeFilter = storeFilter.ByLabelLike(filter.Label)
	}
	if filter.TableVersion != "" {
		storeFilter = storeFilter.ByTableVersion(filter.TableVersion)
	}

	opts := store.NewSnapshotQueryOptions().WithSortOrder(store.SortByCreatedTime)
	if filter.Limit > 0 {
		opts = opts.WithLimit(filter.Limit)
	}
	if filter.Offset > 0 {
		opts = opts.WithOffset(filter.Offset)
	}

	models, err := s.store.Snapshot().List(ctx, storeFilter, opts)
	if err != nil {
		return nil, err
	}

	res := make([]SavedSnapshot, 0, len(models))
	for _, m := range models {
		res = append(res, *s.fromModel(m))
	}
	return res, nil
}

func (s *SnapshotService) Delete(ctx context.Context, id uuid.UUID) error {
	tracer := s.logger.WithContext(ctx).Operation("delete_snapshot").
		WithUUID("snapshot_id", id).
		Build()

	if err := s.store.Snapshot().Delete(ctx, id); err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrSnapshotNotFound(id)
		}
		return err
	}

	tracer.Success().Log()
	s.publish(ctx, tracer, events.SnapshotDeleted, model.SavedSnapshot{ID: id})
	return nil
}

// publish sends a lifecycle event. A failed publish never fails the operation.
func (s *SnapshotService) publish(ctx context.Context, tracer *log.OperationTracer, action events.SnapshotAction, m model.SavedSnapshot) {
	if s.evWriter == nil {
		return
	}
	err := s.evWriter.WriteSnapshotEvent(ctx, events.SnapshotEvent{
		SnapshotID:   m.ID.String(),
		Action:       action,
		Label:        m.Label,
		TableVersion: m.TableVersion,
	})
	if err != nil {
		tracer.Warn(err).WithString("event", string(action)).Log()
	}
}

func (s *SnapshotService) toModel(form SnapshotForm) (model.SavedSnapshot, error) {
	label := strings.TrimSpace(form.Label)
	if label == "" {
		return model.SavedSnapshot{}, NewErrInvalidInput("snapshot label is required")
	}
	if len(label) > maxLabelLength {
		return model.SavedSnapshot{}, NewErrInvalidInput("snapshot label is longer than %d characters", maxLabelLength)
	}

	tableVersion := form.TableVersion
	if tableVersion == "" {
		tableVersion = reference.DefaultVersion
	}

	record, err := household.Encode(form.Snapshot)
	if err != nil {
		return model.SavedSnapshot{}, err
	}

	return model.SavedSnapshot{
		Label:         label,
		SchemaVersion: household.SchemaVersion,
		TableVersion:  tableVersion,
		Record:        string(record),
	}, nil
}

func (s *SnapshotService) fromModel(m model.SavedSnapshot) *SavedSnapshot {
	snapshot, err := household.Restore([]byte(m.Record))
	saved := &SavedSnapshot{
		ID:           m.ID,
		Label:        m.Label,
		TableVersion: m.TableVersion,
		Snapshot:     snapshot,
		Restored:     err == nil,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if err != nil {
		saved.RestoreError = err.Error()
	}
	return saved
}
