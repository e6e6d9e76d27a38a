package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/recipe-video-analyzer/backend/internal/model"
)

// MaxRecentRecords caps the page size of Recent
const MaxRecentRecords = 100

// GormRecordStore persists analysis records through gorm
type GormRecordStore struct {
	db *gorm.DB
}

// NewGormRecordStore creates a new GormRecordStore instance
func NewGormRecordStore(db *gorm.DB) *GormRecordStore {
	return &GormRecordStore{db: db}
}

// Create inserts a record
func (s *GormRecordStore) Create(ctx context.Context, record *model.AnalysisRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// Recent returns the newest records first
func (s *GormRecordStore) Recent(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	if limit <= 0 || limit > MaxRecentRecords {
		limit = MaxRecentRecords
	}
	var records []model.AnalysisRecord
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
