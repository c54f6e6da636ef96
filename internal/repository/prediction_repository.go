package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cofflyze-api/internal/model"
)

type PredictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Create(ctx context.Context, prediction *model.Prediction) error {
	if err := r.db.WithContext(ctx).Create(prediction).Error; err != nil {
		return fmt.Errorf("create prediction failed: %w", err)
	}
	return nil
}

// ListNewestFirst returns every prediction ordered by tanggal descending.
func (r *PredictionRepository) ListNewestFirst(ctx context.Context) ([]model.Prediction, error) {
	predictions := make([]model.Prediction, 0)
	if err := r.db.WithContext(ctx).Order("tanggal DESC").Order("id DESC").Find(&predictions).Error; err != nil {
		return nil, fmt.Errorf("list predictions failed: %w", err)
	}
	return predictions, nil
}
