package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "Not Started"
	ProgressInProgress ProgressStatus = "In Progress"
	ProgressCompleted  ProgressStatus = "Completed"
)

type MaterialView struct {
	MaterialID string    `json:"materialId"`
	ViewedAt   time.Time `json:"viewedAt"`
}

// swagger:model CourseProgress
type CourseProgress struct {
	UUIDBase
	LearnerOwned
	CourseID              string                            `gorm:"size:36;not null;index" json:"courseId"`
	Status                ProgressStatus                    `gorm:"size:20;default:'Not Started'" json:"status"`
	CompletionPercentage  int                               `gorm:"default:0" json:"completionPercentage"`
	ViewedMaterials       datatypes.JSONSlice[MaterialView] `gorm:"type:json" json:"viewedMaterials"`
	AssessmentScore       *int                              `json:"assessmentScore,omitempty"`
	AssessmentPassed      *bool                             `json:"assessmentPassed,omitempty"`
	AssessmentSubmittedAt *time.Time                        `json:"assessmentSubmittedAt,omitempty"`
}

func (CourseProgress) TableName() string {
	return "course_progresses"
}

func (p *CourseProgress) HasViewed(materialID string) bool {
	for _, v := range p.ViewedMaterials {
		if v.MaterialID == materialID {
			return true
		}
	}
	return false
}
