package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuizStatus string

const (
	QuizCreated   QuizStatus = "Created"
	QuizSubmitted QuizStatus = "Submitted"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

const (
	QuizSourceGenerated   = "generated"
	QuizSourcePlaceholder = "placeholder"
)

type QuizQuestion struct {
	Text          string       `json:"text"`
	Type          QuestionType `json:"type"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correctAnswer"`
	Points        int          `json:"points"`
	Rationale     string       `json:"rationale,omitempty"`
}

// QuizResponse 已判分的作答
type QuizResponse struct {
	QuestionIndex int    `json:"questionIndex"`
	Answer        string `json:"answer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
}

// GeneratedQuiz 根据课程资料即时生成的测验
// swagger:model GeneratedQuiz
type GeneratedQuiz struct {
	UUIDBase
	LearnerOwned
	CourseID       string                            `gorm:"size:36;not null;index" json:"courseId"`
	Difficulty     string                            `gorm:"size:20" json:"difficulty"`
	Questions      datatypes.JSONSlice[QuizQuestion] `gorm:"type:json" json:"questions"`
	TotalPoints    int                               `json:"totalPoints"`
	PassingScore   int                               `json:"passingScore"`
	Status         QuizStatus                        `gorm:"size:20;index;default:'Created'" json:"status"`
	Source         string                            `gorm:"size:20" json:"source"`
	Responses      datatypes.JSONSlice[QuizResponse] `gorm:"type:json" json:"responses,omitempty"`
	Score          *int                              `json:"score,omitempty"`
	CompletionTime int                               `json:"completionTime"` // seconds
	SubmittedAt    *time.Time                        `gorm:"index" json:"submittedAt,omitempty"`
}

func (GeneratedQuiz) TableName() string {
	return "generated_quizzes"
}

// QuizAttempt 每次提交追加一条，不修改
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	LearnerOwned
	QuizID         string                            `gorm:"size:36;not null;index" json:"quizId"`
	CourseID       string                            `gorm:"size:36;index" json:"courseId"`
	Difficulty     string                            `gorm:"size:20" json:"difficulty"`
	Responses      datatypes.JSONSlice[QuizResponse] `gorm:"type:json" json:"responses"`
	Score          int                               `json:"score"`
	TotalPoints    int                               `json:"totalPoints"`
	Passed         *bool                             `json:"passed"`
	CompletionTime int                               `json:"completionTime"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// PracticeQuizResult 课程内练习题的提交记录（客户端自行判分）
type PracticeQuizResult struct {
	UUIDBase
	LearnerOwned
	CourseID string `gorm:"size:36;index" json:"courseId"`
	Score    int    `gorm:"not null" json:"score"`
	Total    int    `gorm:"not null" json:"total"`
}

func (PracticeQuizResult) TableName() string {
	return "practice_quiz_results"
}
