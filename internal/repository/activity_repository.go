package repository

import (
	"context"
	"hr_learning_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

// ListBetween 按日期字符串闭区间查询，YYYY-MM-DD 可直接按字典序比较
func (r *ActivityRepository) ListBetween(ctx context.Context, filter model.QueryFilter, startDay, endDay string) ([]model.LearningActivity, error) {
	var rows []model.LearningActivity
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Where("day >= ? AND day <= ?", startDay, endDay).
		Find(&rows).Error
	return rows, err
}

// Increment 原子累加：首次写入当天创建行，之后只在数据库侧做自增，不做应用层读改写
func (r *ActivityRepository) Increment(ctx context.Context, owner model.LearnerOwned, day string, delta model.ActivityCounters, score int) error {
	row := model.LearningActivity{
		EmployeeID:       owner.EmployeeID,
		UserID:           owner.UserID,
		Day:              day,
		ActivityCounters: delta,
		ActivityScore:    score,
	}

	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "employee_id"},
			{Name: "user_id"},
			{Name: "day"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_minutes":          gorm.Expr("total_minutes + ?", delta.TotalMinutes),
			"lessons_completed":      gorm.Expr("lessons_completed + ?", delta.LessonsCompleted),
			"quizzes_attempted":      gorm.Expr("quizzes_attempted + ?", delta.QuizzesAttempted),
			"assessments_attempted":  gorm.Expr("assessments_attempted + ?", delta.AssessmentsAttempted),
			"live_sessions_attended": gorm.Expr("live_sessions_attended + ?", delta.LiveSessionsAttended),
			"activity_score":         gorm.Expr("activity_score + ?", score),
			"updated_at":             gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&row).Error
}
