package store

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/smartstow/move-planner/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Snapshot() Snapshot
	Statistics(ctx context.Context) (model.SnapshotStats, error)
	Close() error
}

type DataStore struct {
	db       *gorm.DB
	log      logrus.FieldLogger
	snapshot Snapshot
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:       db,
		log:      logrus.New().WithField("component", "store"),
		snapshot: NewSnapshotStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db, s.log)
}

func (s *DataStore) Snapshot() Snapshot {
	return s.snapshot
}

func (s *DataStore) Statistics(ctx context.Context) (model.SnapshotStats, error) {
	var rows []struct {
		TableVersion string
		Total        int
	}
	err := s.db.WithContext(ctx).Model(&model.SavedSnapshot{}).
		Select("table_version, COUNT(*) AS total").
		Group("table_version").
		Scan(&rows).Error
	if err != nil {
		return model.SnapshotStats{}, err
	}

	byVersion := make(map[string]int, len(rows))
	for _, r := range rows {
		byVersion[r.TableVersion] = r.Total
	}
	return model.NewSnapshotStats(byVersion), nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
