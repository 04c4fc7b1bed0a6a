package model

import (
	"strings"

	"gorm.io/datatypes"
)

type MaterialType string

const (
	MaterialYouTube MaterialType = "YOUTUBE"
	MaterialPDF     MaterialType = "PDF"
	MaterialVideo   MaterialType = "VIDEO"
	MaterialDrive   MaterialType = "DRIVE"
	MaterialURL     MaterialType = "URL"
	MaterialPPT     MaterialType = "PPT"
)

// IsVideo reports whether the material may carry a transcript.
func (t MaterialType) IsVideo() bool {
	switch MaterialType(strings.ToUpper(string(t))) {
	case MaterialYouTube, MaterialVideo:
		return true
	}
	return false
}

// QuizMaterial 课程资料，可以直接挂在课程上，也可以挂在课时下
type QuizMaterial struct {
	ID          string       `json:"id"`
	Order       int          `json:"order"`
	Type        MaterialType `json:"type"`
	Title       string       `json:"title"`
	LessonTitle string       `json:"lessonTitle,omitempty"`
	URL         string       `json:"url"`
	Content     string       `json:"content,omitempty"`
}

type Lesson struct {
	Title     string         `json:"title"`
	Order     int            `json:"order"`
	Materials []QuizMaterial `json:"materials"`
}

type DurationUnit string

const (
	DurationDays   DurationUnit = "Days"
	DurationWeeks  DurationUnit = "Weeks"
	DurationMonths DurationUnit = "Months"
)

// AssessmentQuestion 课程结业考核题，可多选
type AssessmentQuestion struct {
	ID             string   `json:"id"`
	LessonTitle    string   `json:"lessonTitle"`
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	Marks          int      `json:"marks"`
	CorrectAnswers []string `json:"correctAnswers"`
}

// swagger:model Course
type Course struct {
	UUIDBase
	Title                   string                                 `gorm:"size:255;not null" json:"title"`
	Description             string                                 `gorm:"type:text" json:"description"`
	Materials               datatypes.JSONSlice[QuizMaterial]       `gorm:"type:json" json:"materials"`
	Contents                datatypes.JSONSlice[QuizMaterial]       `gorm:"type:json" json:"contents"`
	Lessons                 datatypes.JSONSlice[Lesson]             `gorm:"type:json" json:"lessons"`
	CompletionDurationValue int                                    `gorm:"default:0" json:"completionDurationValue"`
	CompletionDurationUnit  DurationUnit                           `gorm:"size:10" json:"completionDurationUnit"`
	QualificationScore      int                                    `gorm:"default:80" json:"qualificationScore"`
	AssessmentQuestions     datatypes.JSONSlice[AssessmentQuestion] `gorm:"type:json" json:"assessmentQuestions"`
}

func (Course) TableName() string {
	return "courses"
}
