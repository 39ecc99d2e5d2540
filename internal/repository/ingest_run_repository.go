package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"webqa/internal/model"
)

type IngestRunRepository struct {
	db *gorm.DB
}

func NewIngestRunRepository(db *gorm.DB) *IngestRunRepository {
	return &IngestRunRepository{db: db}
}

// Create inserts run; a redelivered message with a known run_id is ignored.
func (r *IngestRunRepository) Create(run *model.IngestRun) error {
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(run).Error; err != nil {
		return fmt.Errorf("create ingest run failed: %w", err)
	}
	return nil
}

// ListRecent returns at most limit runs, newest first.
func (r *IngestRunRepository) ListRecent(limit int) ([]model.IngestRun, error) {
	var list []model.IngestRun
	if err := r.db.Order("started_at DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list ingest runs failed: %w", err)
	}
	return list, nil
}

func (r *IngestRunRepository) GetByRunID(runID string) (*model.IngestRun, error) {
	var run model.IngestRun
	if err := r.db.Where("run_id = ?", runID).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingest run failed: %w", err)
	}
	return &run, nil
}
