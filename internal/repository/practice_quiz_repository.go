package repository

import (
	"context"
	"hr_learning_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type PracticeQuizRepository struct {
	DB *gorm.DB
}

func NewPracticeQuizRepository(db *gorm.DB) *PracticeQuizRepository {
	return &PracticeQuizRepository{DB: db}
}

func (r *PracticeQuizRepository) Create(ctx context.Context, result *model.PracticeQuizResult) error {
	return r.DB.WithContext(ctx).Create(result).Error
}

func (r *PracticeQuizRepository) ListBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.PracticeQuizResult, error) {
	var results []model.PracticeQuizResult
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Where("created_at BETWEEN ? AND ?", start, end).
		Find(&results).Error
	return results, err
}
