package repository

import (
	"context"
	"errors"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.GeneratedQuiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.GeneratedQuiz, error) {
	var quiz model.GeneratedQuiz
	err := r.DB.WithContext(ctx).First(&quiz, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.GeneratedQuiz, error) {
	var quizzes []model.GeneratedQuiz
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Order("created_at desc").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListSubmittedBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.GeneratedQuiz, error) {
	var quizzes []model.GeneratedQuiz
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Where("status = ? AND submitted_at IS NOT NULL AND submitted_at BETWEEN ? AND ?", model.QuizSubmitted, start, end).
		Find(&quizzes).Error
	return quizzes, err
}

// MarkSubmitted 只推进 Created -> Submitted，返回是否发生了状态变更
func (r *QuizRepository) MarkSubmitted(ctx context.Context, quiz *model.GeneratedQuiz) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.GeneratedQuiz{}).
		Where("id = ? AND status = ?", quiz.ID, model.QuizCreated).
		Updates(map[string]interface{}{
			"status":          model.QuizSubmitted,
			"responses":       quiz.Responses,
			"score":           quiz.Score,
			"completion_time": quiz.CompletionTime,
			"submitted_at":    quiz.SubmittedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *QuizAttemptRepository) ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Scopes(filter.Scope()).
		Order("created_at desc").
		Find(&attempts).Error
	return attempts, err
}
