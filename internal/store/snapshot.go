package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/smartstow/move-planner/internal/store/model"
	"gorm.io/gorm"
)

type Snapshot interface {
	Create(ctx context.Context, snapshot model.SavedSnapshot) (*model.SavedSnapshot, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SavedSnapshot, error)
	List(ctx context.Context, filter *SnapshotQueryFilter, opts *SnapshotQueryOptions) (model.SavedSnapshotList, error)
	Update(ctx context.Context, snapshot model.SavedSnapshot) (*model.SavedSnapshot, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter *SnapshotQueryFilter) (int64, error)
}

type SnapshotStore struct {
	db *gorm.DB
}

var _ Snapshot = (*SnapshotStore)(nil)

func NewSnapshotStore(db *gorm.DB) Snapshot {
	return &SnapshotStore{db: db}
}

func (s *SnapshotStore) Create(ctx context.Context, snapshot model.SavedSnapshot) (*model.SavedSnapshot, error) {
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	result := s.getDB(ctx).Create(&snapshot)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, result.Error
	}
	return &snapshot, nil
}

func (s *SnapshotStore) Get(ctx context.Context, id uuid.UUID) (*model.SavedSnapshot, error) {
	var snapshot model.SavedSnapshot
	result := s.getDB(ctx).First(&snapshot, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}
	return &snapshot, nil
}

func (s *SnapshotStore) List(ctx context.Context, filter *SnapshotQueryFilter, opts *SnapshotQueryOptions) (model.SavedSnapshotList, error) {
	var snapshots model.SavedSnapshotList
	tx := s.getDB(ctx).Model(&snapshots)

	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}

	if opts != nil && len(opts.QueryFn) > 0 {
		for _, fn := range opts.QueryFn {
			tx = fn(tx)
		}
	} else {
		tx = tx.Order("created_at DESC")
	}

	result := tx.Find(&snapshots)
	if result.Error != nil {
		return nil, result.Error
	}
	return snapshots, nil
}

// Update replaces the label and record of an existing snapshot.
func (s *SnapshotStore) Update(ctx context.Context, snapshot model.SavedSnapshot) (*model.SavedSnapshot, error) {
	result := s.getDB(ctx).Model(&model.SavedSnapshot{}).
		Where("id = ?", snapshot.ID).
		Updates(map[string]any{
			"label":          snapshot.Label,
			"schema_version": snapshot.SchemaVersion,
			"table_version":  snapshot.TableVersion,
			"record":         snapshot.Record,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}
	return s.Get(ctx, snapshot.ID)
}

func (s *SnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.getDB(ctx).Delete(&model.SavedSnapshot{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (s *SnapshotStore) Count(ctx context.Context, filter *SnapshotQueryFilter) (int64, error) {
	var count int64
	tx := s.getDB(ctx).Model(&model.SavedSnapshot{})
	if filter != nil {
		for _, fn := range filter.QueryFn {
			tx = fn(tx)
		}
	}
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SnapshotStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db.WithContext(ctx)
}
