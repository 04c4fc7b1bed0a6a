package repository

import (
	"context"
	"errors"
	"hr_learning_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.CourseProgress, error) {
	var progresses []model.CourseProgress
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Order("created_at asc").
		Find(&progresses).Error
	return progresses, err
}

// FindByLearnerAndCourse 返回 nil, nil 表示尚未开始学习该课程
func (r *ProgressRepository) FindByLearnerAndCourse(ctx context.Context, filter model.QueryFilter, courseID string) (*model.CourseProgress, error) {
	var progress model.CourseProgress
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Where("course_id = ?", courseID).
		Order("created_at asc").
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) Save(ctx context.Context, progress *model.CourseProgress) error {
	return r.DB.WithContext(ctx).Save(progress).Error
}
