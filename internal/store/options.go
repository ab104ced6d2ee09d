package store

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SortOrder int

const (
	Unsorted SortOrder = iota
	SortByID
	SortByUpdatedTime
	SortByCreatedTime
	SortByLabel
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type SnapshotQueryFilter BaseQuerier

func NewSnapshotQueryFilter() *SnapshotQueryFilter {
	return &SnapshotQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (f *SnapshotQueryFilter) ByID(ids []uuid.UUID) *SnapshotQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN ?", ids)
	})
	return f
}

// ByLabelLike matches labels containing pattern, ignoring case.
func (f *SnapshotQueryFilter) ByLabelLike(pattern string) *SnapshotQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("LOWER(label) LIKE ?", "%"+strings.ToLower(pattern)+"%")
	})
	return f
}

func (f *SnapshotQueryFilter) ByTableVersion(version string) *SnapshotQueryFilter {
	f.QueryFn = append(f.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("table_version = ?", version)
	})
	return f
}

type SnapshotQueryOptions BaseQuerier

func NewSnapshotQueryOptions() *SnapshotQueryOptions {
	return &SnapshotQueryOptions{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (o *SnapshotQueryOptions) WithLimit(limit int) *SnapshotQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(limit)
	})
	return o
}

func (o *SnapshotQueryOptions) WithOffset(offset int) *SnapshotQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Offset(offset)
	})
	return o
}

func (o *SnapshotQueryOptions) WithSortOrder(sort SortOrder) *SnapshotQueryOptions {
	o.QueryFn = append(o.QueryFn, func(tx *gorm.DB) *gorm.DB {
		switch sort {
		case SortByID:
			return tx.Order("id")
		case SortByUpdatedTime:
			return tx.Order("updated_at DESC")
		case SortByCreatedTime:
			return tx.Order("created_at DESC")
		case SortByLabel:
			return tx.Order("label")
		default:
			return tx
		}
	})
	return o
}
