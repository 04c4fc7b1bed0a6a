package model

import "time"

// ActivityCounters 单日学习指标
type ActivityCounters struct {
	TotalMinutes         int `gorm:"not null;default:0" json:"totalMinutes"`
	LessonsCompleted     int `gorm:"not null;default:0" json:"lessonsCompleted"`
	QuizzesAttempted     int `gorm:"not null;default:0" json:"quizzesAttempted"`
	AssessmentsAttempted int `gorm:"not null;default:0" json:"assessmentsAttempted"`
	LiveSessionsAttended int `gorm:"not null;default:0" json:"liveSessionsAttended"`
}

func (c *ActivityCounters) Add(d ActivityCounters) {
	c.TotalMinutes += d.TotalMinutes
	c.LessonsCompleted += d.LessonsCompleted
	c.QuizzesAttempted += d.QuizzesAttempted
	c.AssessmentsAttempted += d.AssessmentsAttempted
	c.LiveSessionsAttended += d.LiveSessionsAttended
}

func (c ActivityCounters) IsZero() bool {
	return c == ActivityCounters{}
}

type ActivityLevel string

const (
	ActivityNone   ActivityLevel = "none"
	ActivityLow    ActivityLevel = "low"
	ActivityMedium ActivityLevel = "medium"
	ActivityHigh   ActivityLevel = "high"
)

// DayBucket 热力图中的一天，只在读取时计算，不落库
type DayBucket struct {
	Date string `json:"date"`
	ActivityCounters
	ActivityScore int           `json:"activityScore"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
}

// LearningActivity 客户端显式上报的每日学习日志。每个 (学习者, 日期) 唯一，只做累加。
type LearningActivity struct {
	ID               uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID       string `gorm:"size:36;not null;default:'';uniqueIndex:idx_learning_activity_owner_day" json:"employeeId,omitempty"`
	UserID           string `gorm:"size:36;not null;default:'';uniqueIndex:idx_learning_activity_owner_day" json:"userId,omitempty"`
	Day              string `gorm:"size:10;not null;uniqueIndex:idx_learning_activity_owner_day" json:"date"`
	ActivityCounters `gorm:"embedded"`
	ActivityScore    int       `gorm:"not null;default:0" json:"activityScore"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (LearningActivity) TableName() string {
	return "learning_activities"
}

func (a LearningActivity) Owner() LearnerOwned {
	return LearnerOwned{EmployeeID: a.EmployeeID, UserID: a.UserID}
}
