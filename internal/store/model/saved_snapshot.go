package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedSnapshot is a named household snapshot kept in the store.
// Record holds the encoded snapshot document exactly as it was written so that a
// damaged row can still be read back and reported.
type SavedSnapshot struct {
	ID            uuid.UUID `gorm:"primaryKey;type:VARCHAR(36)"`
	Label         string    `gorm:"not null;size:255;index"`
	SchemaVersion string    `gorm:"not null;size:64"`
	TableVersion  string    `gorm:"not null;size:32"`
	Record        string    `gorm:"type:text;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SavedSnapshot) TableName() string {
	return "saved_snapshots"
}

type SavedSnapshotList []SavedSnapshot

// SnapshotStats is a summary of the saved snapshots.
type SnapshotStats struct {
	Total int
	// TotalByTableVersion is keyed by reference table version.
	TotalByTableVersion map[string]int
}

func NewSnapshotStats(byTableVersion map[string]int) SnapshotStats {
	stats := SnapshotStats{TotalByTableVersion: make(map[string]int, len(byTableVersion))}
	for version, total := range byTableVersion {
		stats.Total += total
		stats.TotalByTableVersion[version] = total
	}
	return stats
}
