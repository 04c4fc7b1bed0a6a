package repository

import (
	"context"
	"hr_learning_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// LiveSessionRepository 两个来源各自存储：网页端签到表和会议集成参会表
type LiveSessionRepository struct {
	DB *gorm.DB
}

func NewLiveSessionRepository(db *gorm.DB) *LiveSessionRepository {
	return &LiveSessionRepository{DB: db}
}

func (r *LiveSessionRepository) CreateAttendance(ctx context.Context, attendance *model.SessionAttendance) error {
	return r.DB.WithContext(ctx).Create(attendance).Error
}

func (r *LiveSessionRepository) ListAttendanceBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.SessionAttendance, error) {
	var rows []model.SessionAttendance
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Where("joined_at BETWEEN ? AND ?", start, end).
		Find(&rows).Error
	return rows, err
}

func (r *LiveSessionRepository) ListParticipantsBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.MeetingParticipant, error) {
	var rows []model.MeetingParticipant
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Where("joined_at BETWEEN ? AND ?", start, end).
		Find(&rows).Error
	return rows, err
}
