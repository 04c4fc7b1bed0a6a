package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"hr_learning_backend/pkg/logger"
	"hr_learning_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

type ProgressStore interface {
	ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.CourseProgress, error)
	FindByLearnerAndCourse(ctx context.Context, filter model.QueryFilter, courseID string) (*model.CourseProgress, error)
	Save(ctx context.Context, progress *model.CourseProgress) error
}

// ActivityRecorder 写入显式学习日志
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, identity model.LearnerIdentity, day string, delta model.ActivityCounters) error
}

type AssessmentSubmission struct {
	Answers map[string][]string `json:"answers"`
}

type AssessmentService struct {
	Courses  CourseFinder
	Progress ProgressStore
	Activity ActivityRecorder

	DefaultQualification int
	Now                  func() time.Time
}

func NewAssessmentService(courses CourseFinder, progress ProgressStore, activity ActivityRecorder, defaultQualification int) *AssessmentService {
	if defaultQualification <= 0 {
		defaultQualification = defaultQualificationScore
	}
	return &AssessmentService{
		Courses:              courses,
		Progress:             progress,
		Activity:             activity,
		DefaultQualification: defaultQualification,
		Now:                  time.Now,
	}
}

// Submit 课程结业考核：判分，更新课程进度中的考核字段，并记一次考核活动
func (s *AssessmentService) Submit(ctx context.Context, identity model.LearnerIdentity, courseID string, sub AssessmentSubmission) (*model.AssessmentResult, error) {
	filter, err := BuildFilter(identity)
	if err != nil {
		return nil, err
	}

	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(course.AssessmentQuestions) == 0 {
		return nil, util.ErrNoAssessment
	}

	qualification := course.QualificationScore
	if qualification <= 0 {
		qualification = s.DefaultQualification
	}
	result := GradeAssessment(course.AssessmentQuestions, sub.Answers, qualification)

	progress, err := s.Progress.FindByLearnerAndCourse(ctx, filter, course.ID)
	if err != nil {
		return nil, fmt.Errorf("load course progress: %w", err)
	}
	if progress == nil {
		progress = &model.CourseProgress{
			LearnerOwned: identity.Owner(),
			CourseID:     course.ID,
			Status:       model.ProgressNotStarted,
		}
	}

	now := s.Now()
	score, passed := result.Score, result.Passed
	progress.AssessmentScore = &score
	progress.AssessmentPassed = &passed
	progress.AssessmentSubmittedAt = &now
	if passed {
		progress.Status = model.ProgressCompleted
	}
	if err := s.Progress.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("save course progress: %w", err)
	}

	if s.Activity != nil {
		if err := s.Activity.RecordActivity(ctx, identity, util.DayKey(now), model.ActivityCounters{AssessmentsAttempted: 1}); err != nil {
			logger.Log.Warn("Failed to record assessment activity",
				zap.String("course_id", course.ID),
				zap.Error(err))
		}
	}
	monitoring.ObserveSubmission("assessment", passed)
	return &result, nil
}
