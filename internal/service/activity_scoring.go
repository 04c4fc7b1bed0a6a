package service

import (
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/model"
)

// ScoringPolicy 活跃度评分的权重与分档阈值，集中在这里修改
type ScoringPolicy struct {
	MinuteWeight     int
	LessonWeight     int
	QuizWeight       int
	AssessmentWeight int
	LiveWeight       int

	// 分数严格大于阈值才进入该档
	HighAbove   int
	MediumAbove int
	LowAbove    int

	ViewMinuteCredit int
	WindowDays       int
}

const defaultWindowDays = 371

var DefaultScoringPolicy = ScoringPolicy{
	MinuteWeight:     1,
	LessonWeight:     10,
	QuizWeight:       15,
	AssessmentWeight: 20,
	LiveWeight:       20,
	HighAbove:        60,
	MediumAbove:      40,
	LowAbove:         0,
	ViewMinuteCredit: 5,
	WindowDays:       defaultWindowDays,
}

// PolicyFromConfig 只覆盖配置里给出的正整数项
func PolicyFromConfig(cfg config.LearningConfig) ScoringPolicy {
	p := DefaultScoringPolicy
	if cfg.HeatmapWindowDays > 0 {
		p.WindowDays = cfg.HeatmapWindowDays
	}
	if cfg.ViewMinuteCredit > 0 {
		p.ViewMinuteCredit = cfg.ViewMinuteCredit
	}
	return p
}

func (p ScoringPolicy) Score(c model.ActivityCounters) int {
	return c.TotalMinutes*p.MinuteWeight +
		c.LessonsCompleted*p.LessonWeight +
		c.QuizzesAttempted*p.QuizWeight +
		c.AssessmentsAttempted*p.AssessmentWeight +
		c.LiveSessionsAttended*p.LiveWeight
}

func (p ScoringPolicy) Level(score int) model.ActivityLevel {
	switch {
	case score > p.HighAbove:
		return model.ActivityHigh
	case score > p.MediumAbove:
		return model.ActivityMedium
	case score > p.LowAbove:
		return model.ActivityLow
	default:
		return model.ActivityNone
	}
}
