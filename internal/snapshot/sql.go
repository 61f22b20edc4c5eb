package snapshot

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/superstore-backend/internal/repo"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
)

// SQLBackend keeps blobs in the snapshots table.
type SQLBackend struct {
	repo.Base
}

func NewSQLBackend(db *gorm.DB) (*SQLBackend, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	return &SQLBackend{Base: repo.NewBase(db)}, nil
}

// Migrate creates the snapshots table when missing.
func (s *SQLBackend) Migrate(ctx context.Context) error {
	return s.DB(ctx).AutoMigrate(&models.SnapshotRecord{})
}

func (s *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var rec models.SnapshotRecord
	err := s.DB(ctx).Where(&models.SnapshotRecord{Key: key}).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (s *SQLBackend) Put(ctx context.Context, key string, value []byte) error {
	rec := models.SnapshotRecord{Key: key, Value: string(value)}
	return s.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}
