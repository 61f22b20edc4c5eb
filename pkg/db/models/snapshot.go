package models

import "time"

// SnapshotRecord stores one JSON blob per key for the sql snapshot backend.
type SnapshotRecord struct {
	Key       string    `gorm:"column:key;primaryKey;size:255"`
	Value     string    `gorm:"column:value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SnapshotRecord) TableName() string {
	return "snapshots"
}
