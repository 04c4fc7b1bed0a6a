package service

import (
	"context"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"time"
)

// ActivityContribution 一条原始记录映射出的某日增量
type ActivityContribution struct {
	Day   string
	Delta model.ActivityCounters
}

// ActivitySource 热力图的一个数据来源。新增来源只需实现该接口，
// 分桶与评分逻辑不用改。
type ActivitySource interface {
	Name() string
	Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error)
}

type ActivityLogStore interface {
	ListBetween(ctx context.Context, filter model.QueryFilter, startDay, endDay string) ([]model.LearningActivity, error)
	Increment(ctx context.Context, owner model.LearnerOwned, day string, delta model.ActivityCounters, score int) error
}

type PracticeResultStore interface {
	Create(ctx context.Context, result *model.PracticeQuizResult) error
	ListBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.PracticeQuizResult, error)
}

type SubmittedQuizLister interface {
	ListSubmittedBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.GeneratedQuiz, error)
}

type AttendanceStore interface {
	CreateAttendance(ctx context.Context, attendance *model.SessionAttendance) error
	ListAttendanceBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.SessionAttendance, error)
}

type ParticipantLister interface {
	ListParticipantsBetween(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]model.MeetingParticipant, error)
}

type ProgressLister interface {
	ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.CourseProgress, error)
}

func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// 显式上报日志：五项计数直接累加
type explicitLogSource struct {
	store ActivityLogStore
}

func (s explicitLogSource) Name() string { return "explicit-log" }

func (s explicitLogSource) Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error) {
	rows, err := s.store.ListBetween(ctx, filter, util.DayKey(start), util.DayKey(end))
	if err != nil {
		return nil, err
	}
	out := make([]ActivityContribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, ActivityContribution{Day: r.Day, Delta: r.ActivityCounters})
	}
	return out, nil
}

type practiceQuizSource struct {
	store PracticeResultStore
}

func (s practiceQuizSource) Name() string { return "practice-quiz" }

func (s practiceQuizSource) Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error) {
	rows, err := s.store.ListBetween(ctx, filter, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityContribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, ActivityContribution{Day: util.DayKey(r.CreatedAt), Delta: model.ActivityCounters{QuizzesAttempted: 1}})
	}
	return out, nil
}

type aiQuizSource struct {
	store SubmittedQuizLister
}

func (s aiQuizSource) Name() string { return "ai-quiz" }

func (s aiQuizSource) Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error) {
	rows, err := s.store.ListSubmittedBetween(ctx, filter, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityContribution, 0, len(rows))
	for _, q := range rows {
		if q.Status != model.QuizSubmitted || q.SubmittedAt == nil || !inWindow(*q.SubmittedAt, start, end) {
			continue
		}
		out = append(out, ActivityContribution{Day: util.DayKey(*q.SubmittedAt), Delta: model.ActivityCounters{QuizzesAttempted: 1}})
	}
	return out, nil
}

// 网页端签到，和会议参会记录互不去重
type attendanceSource struct {
	store AttendanceStore
}

func (s attendanceSource) Name() string { return "live-attendance" }

func (s attendanceSource) Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error) {
	rows, err := s.store.ListAttendanceBetween(ctx, filter, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityContribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, ActivityContribution{Day: util.DayKey(r.JoinedAt), Delta: model.ActivityCounters{LiveSessionsAttended: 1}})
	}
	return out, nil
}

type participantSource struct {
	store ParticipantLister
}

func (s participantSource) Name() string { return "meeting-participant" }

func (s participantSource) Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error) {
	rows, err := s.store.ListParticipantsBetween(ctx, filter, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]ActivityContribution, 0, len(rows))
	for _, r := range rows {
		out = append(out, ActivityContribution{Day: util.DayKey(r.JoinedAt), Delta: model.ActivityCounters{LiveSessionsAttended: 1}})
	}
	return out, nil
}

// 进度记录里嵌套的资料浏览时间，每次浏览按固定分钟数计入
type contentViewSource struct {
	store         ProgressLister
	minutesCredit func() int
}

func (s contentViewSource) Name() string { return "content-view" }

func (s contentViewSource) Collect(ctx context.Context, filter model.QueryFilter, start, end time.Time) ([]ActivityContribution, error) {
	rows, err := s.store.ListByLearner(ctx, filter)
	if err != nil {
		return nil, err
	}
	credit := s.minutesCredit()
	var out []ActivityContribution
	for _, p := range rows {
		for _, v := range p.ViewedMaterials {
			if v.ViewedAt.IsZero() || !inWindow(v.ViewedAt, start, end) {
				continue
			}
			out = append(out, ActivityContribution{
				Day:   util.DayKey(v.ViewedAt),
				Delta: model.ActivityCounters{LessonsCompleted: 1, TotalMinutes: credit},
			})
		}
	}
	return out, nil
}
