package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/model"
	"math"
	"strings"
	"time"
)

type QuizLister interface {
	ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.GeneratedQuiz, error)
}

type AttemptLister interface {
	ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.QuizAttempt, error)
}

type ScoreService struct {
	Progress ProgressLister
	Courses  CourseFinder
	Quizzes  QuizLister
	Attempts AttemptLister
	Now      func() time.Time
}

func NewScoreService(progress ProgressLister, courses CourseFinder, quizzes QuizLister, attempts AttemptLister) *ScoreService {
	return &ScoreService{Progress: progress, Courses: courses, Quizzes: quizzes, Attempts: attempts, Now: time.Now}
}

// NormalizeDifficulty 旧数据中的 Difficult 归为 Hard，未知或缺失归为 Medium
func NormalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return "Easy"
	case "hard", "difficult":
		return "Hard"
	default:
		return "Medium"
	}
}

// DueDate 课程创建时间加完成期限，月份按日历月计算
func DueDate(course model.Course) *time.Time {
	n := course.CompletionDurationValue
	if n <= 0 || course.CreatedAt.IsZero() {
		return nil
	}
	var due time.Time
	switch strings.ToLower(string(course.CompletionDurationUnit)) {
	case "days", "day":
		due = course.CreatedAt.AddDate(0, 0, n)
	case "weeks", "week":
		due = course.CreatedAt.AddDate(0, 0, 7*n)
	case "months", "month":
		due = course.CreatedAt.AddDate(0, n, 0)
	default:
		return nil
	}
	return &due
}

func daysRemaining(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// firstPerCourse 输入已按 created_at 升序
func firstPerCourse(rows []model.CourseProgress) []model.CourseProgress {
	seen := make(map[string]struct{}, len(rows))
	out := make([]model.CourseProgress, 0, len(rows))
	for _, p := range rows {
		if _, ok := seen[p.CourseID]; ok {
			continue
		}
		seen[p.CourseID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// CompileScores 汇总课程进度和测验统计
func (s *ScoreService) CompileScores(ctx context.Context, identity model.LearnerIdentity) (*model.ScoreReport, error) {
	filter, err := BuildFilter(identity)
	if err != nil {
		return nil, err
	}

	progress, err := s.Progress.ListByLearner(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	// 两个 key 下可能各有一条同课程的进度，按创建时间保留最早的一条，与 FindByLearnerAndCourse 一致
	progress = firstPerCourse(progress)
	ids := make([]string, 0, len(progress))
	for _, p := range progress {
		ids = append(ids, p.CourseID)
	}
	courses, err := s.Courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	byID := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}

	now := s.Now()
	report := &model.ScoreReport{Courses: make([]model.CourseScore, 0, len(progress))}
	sum := 0
	for _, p := range progress {
		// 课程已被删除的进度记录直接忽略
		course, ok := byID[p.CourseID]
		if !ok {
			continue
		}
		row := model.CourseScore{
			CourseID:             course.ID,
			Title:                course.Title,
			Status:               p.Status,
			CompletionPercentage: p.CompletionPercentage,
			AssessmentScore:      p.AssessmentScore,
		}
		if due := DueDate(course); due != nil {
			remaining := daysRemaining(*due, now)
			row.DueDate = due
			row.DaysRemaining = &remaining
		}
		report.Courses = append(report.Courses, row)

		sum += p.CompletionPercentage
		switch p.Status {
		case model.ProgressCompleted:
			report.Summary.CompletedCourses++
		case model.ProgressInProgress:
			report.Summary.InProgress++
		}
	}
	report.Summary.TotalCourses = len(report.Courses)
	if report.Summary.TotalCourses > 0 {
		mean := float64(sum) / float64(report.Summary.TotalCourses)
		report.Summary.OverallScore = math.Round(mean*100) / 100
	}

	stats, err := s.quizStats(ctx, filter)
	if err != nil {
		return nil, err
	}
	report.QuizStats = stats
	return report, nil
}

func bucketFor(stats *model.QuizStats, difficulty string) *model.DifficultyStats {
	switch NormalizeDifficulty(difficulty) {
	case "Easy":
		return &stats.Easy
	case "Hard":
		return &stats.Hard
	default:
		return &stats.Medium
	}
}

// quizStats 有生成测验时只用测验表；一条都没有才退回到作答记录
func (s *ScoreService) quizStats(ctx context.Context, filter model.QueryFilter) (model.QuizStats, error) {
	quizzes, err := s.Quizzes.ListByLearner(ctx, filter)
	if err != nil {
		return model.QuizStats{}, fmt.Errorf("list quizzes: %w", err)
	}

	var stats model.QuizStats
	if len(quizzes) > 0 {
		stats.Source = model.QuizStatsFromQuizzes
		for _, q := range quizzes {
			b := bucketFor(&stats, q.Difficulty)
			b.Assigned++
			stats.TotalAssigned++
			if q.Status == model.QuizSubmitted {
				b.Completed++
				stats.TotalCompleted++
			}
		}
	} else {
		attempts, err := s.Attempts.ListByLearner(ctx, filter)
		if err != nil {
			return model.QuizStats{}, fmt.Errorf("list attempts: %w", err)
		}
		stats.Source = model.QuizStatsFromAttempts

		type quizAgg struct {
			difficulty string
			completed  bool
		}
		order := make([]string, 0)
		agg := make(map[string]*quizAgg)
		for _, a := range attempts {
			q, ok := agg[a.QuizID]
			if !ok {
				q = &quizAgg{difficulty: a.Difficulty}
				agg[a.QuizID] = q
				order = append(order, a.QuizID)
			}
			if a.Passed != nil {
				q.completed = true
			}
		}
		for _, id := range order {
			q := agg[id]
			b := bucketFor(&stats, q.difficulty)
			b.Assigned++
			stats.TotalAssigned++
			if q.completed {
				b.Completed++
				stats.TotalCompleted++
			}
		}
	}

	if stats.TotalAssigned > 0 {
		stats.CompletionPercent = percent(stats.TotalCompleted, stats.TotalAssigned)
	}
	return stats, nil
}
