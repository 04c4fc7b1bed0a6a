package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"math"
	"time"
)

type ProgressService struct {
	Courses  CourseFinder
	Progress ProgressStore
	Practice PracticeResultStore
	Now      func() time.Time
}

func NewProgressService(courses CourseFinder, progress ProgressStore, practice PracticeResultStore) *ProgressService {
	return &ProgressService{Courses: courses, Progress: progress, Practice: practice, Now: time.Now}
}

type PracticeResultRequest struct {
	Score int `json:"score" binding:"min=0"`
	Total int `json:"total" binding:"required,min=1"`
}

func progressStatus(percent int) model.ProgressStatus {
	switch {
	case percent >= 100:
		return model.ProgressCompleted
	case percent > 0:
		return model.ProgressInProgress
	default:
		return model.ProgressNotStarted
	}
}

// ViewMaterial 记录资料首次浏览并重新计算完成度，重复浏览不重复计数
func (s *ProgressService) ViewMaterial(ctx context.Context, identity model.LearnerIdentity, courseID, materialID string) (*model.CourseProgress, error) {
	filter, err := BuildFilter(identity)
	if err != nil {
		return nil, err
	}

	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	materials := FlattenMaterials(course)
	known := make(map[string]struct{}, len(materials))
	for _, m := range materials {
		known[m.ID] = struct{}{}
	}
	if _, ok := known[materialID]; !ok {
		return nil, util.ErrUnknownMaterial
	}

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
	if progress.HasViewed(materialID) {
		return progress, nil
	}

	progress.ViewedMaterials = append(progress.ViewedMaterials, model.MaterialView{
		MaterialID: materialID,
		ViewedAt:   s.Now().UTC(),
	})

	viewed := 0
	for _, v := range progress.ViewedMaterials {
		if _, ok := known[v.MaterialID]; ok {
			viewed++
		}
	}
	progress.CompletionPercentage = int(math.Round(100 * float64(viewed) / float64(len(materials))))
	// 考核通过后的 Completed 状态不回退
	if progress.Status != model.ProgressCompleted {
		progress.Status = progressStatus(progress.CompletionPercentage)
	}

	if err := s.Progress.Save(ctx, progress); err != nil {
		return nil, fmt.Errorf("save course progress: %w", err)
	}
	return progress, nil
}

// RecordPracticeResult 练习题成绩由客户端判分，这里只追加记录
func (s *ProgressService) RecordPracticeResult(ctx context.Context, identity model.LearnerIdentity, courseID string, req PracticeResultRequest) (*model.PracticeQuizResult, error) {
	if identity.IsEmpty() {
		return nil, util.ErrUnauthorized
	}
	if _, err := s.Courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}
	result := &model.PracticeQuizResult{
		LearnerOwned: identity.Owner(),
		CourseID:     courseID,
		Score:        req.Score,
		Total:        req.Total,
	}
	if err := s.Practice.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("create practice result: %w", err)
	}
	return result, nil
}
