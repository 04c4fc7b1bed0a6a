package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"hr_learning_backend/pkg/logger"
	"hr_learning_backend/pkg/monitoring"
	"hr_learning_backend/pkg/tracing"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// HeatmapSources 热力图依赖的全部存储
type HeatmapSources struct {
	Logs         ActivityLogStore
	Practice     PracticeResultStore
	Quizzes      SubmittedQuizLister
	Attendance   AttendanceStore
	Participants ParticipantLister
	Progress     ProgressLister
}

type HeatmapService struct {
	logs    ActivityLogStore
	sources []ActivitySource

	mu     sync.RWMutex
	policy ScoringPolicy

	Now func() time.Time
}

func NewHeatmapService(src HeatmapSources, policy ScoringPolicy) *HeatmapService {
	s := &HeatmapService{
		logs:   src.Logs,
		policy: policy,
		Now:    time.Now,
	}
	s.sources = []ActivitySource{
		explicitLogSource{store: src.Logs},
		practiceQuizSource{store: src.Practice},
		aiQuizSource{store: src.Quizzes},
		attendanceSource{store: src.Attendance},
		participantSource{store: src.Participants},
		contentViewSource{store: src.Progress, minutesCredit: func() int { return s.Policy().ViewMinuteCredit }},
	}
	return s
}

// SetPolicy 配置热更新时调用
func (s *HeatmapService) SetPolicy(p ScoringPolicy) {
	s.mu.Lock()
	s.policy = p
	s.mu.Unlock()
}

func (s *HeatmapService) Policy() ScoringPolicy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.policy
}

// BuildHeatmap 汇总窗口内各来源的学习记录，按天分桶。
// 没有记录的日期不返回；任一来源失败则整体失败。
func (s *HeatmapService) BuildHeatmap(ctx context.Context, identity model.LearnerIdentity, windowDays int) ([]model.DayBucket, error) {
	filter, err := BuildFilter(identity)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "heatmap.build")
	defer span.End()
	started := time.Now()
	defer func() { monitoring.HeatmapBuildDuration.Observe(time.Since(started).Seconds()) }()

	policy := s.Policy()
	if windowDays <= 0 {
		windowDays = policy.WindowDays
	}
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	span.SetAttributes(attribute.Int("heatmap.window_days", windowDays))
	end := s.Now().UTC()
	start := end.AddDate(0, 0, -windowDays)

	counters := make(map[string]*model.ActivityCounters)
	for _, src := range s.sources {
		contributions, err := src.Collect(ctx, filter, start, end)
		if err != nil {
			logger.Log.Error("Heatmap source failed",
				zap.String("source", src.Name()),
				zap.Error(err))
			return nil, fmt.Errorf("collect %s: %w", src.Name(), err)
		}
		for _, c := range contributions {
			bucket, ok := counters[c.Day]
			if !ok {
				bucket = &model.ActivityCounters{}
				counters[c.Day] = bucket
			}
			bucket.Add(c.Delta)
		}
	}

	buckets := make([]model.DayBucket, 0, len(counters))
	for day, c := range counters {
		if c.IsZero() {
			continue
		}
		score := policy.Score(*c)
		buckets = append(buckets, model.DayBucket{
			Date:             day,
			ActivityCounters: *c,
			ActivityScore:    score,
			ActivityLevel:    policy.Level(score),
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Date < buckets[j].Date })
	return buckets, nil
}

// RecordActivity 显式日志的原子累加
func (s *HeatmapService) RecordActivity(ctx context.Context, identity model.LearnerIdentity, day string, delta model.ActivityCounters) error {
	if identity.IsEmpty() {
		return util.ErrUnauthorized
	}
	if _, err := util.ParseDay(day); err != nil {
		return err
	}
	if delta.TotalMinutes < 0 || delta.LessonsCompleted < 0 || delta.QuizzesAttempted < 0 ||
		delta.AssessmentsAttempted < 0 || delta.LiveSessionsAttended < 0 {
		return util.ErrInvalidDelta
	}
	if delta.IsZero() {
		return nil
	}
	score := s.Policy().Score(delta)
	if err := s.logs.Increment(ctx, identity.Owner(), day, delta, score); err != nil {
		return fmt.Errorf("increment activity log: %w", err)
	}
	return nil
}
