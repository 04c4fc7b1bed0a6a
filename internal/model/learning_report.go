package model

import "time"

type QuestionResult struct {
	QuestionIndex int    `json:"questionIndex"`
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Rationale     string `json:"rationale"`
}

type QuizSubmissionResult struct {
	QuizID          string           `json:"quizId"`
	Score           int              `json:"score"`
	Passed          bool             `json:"passed"`
	TotalPoints     int              `json:"totalPoints"`
	EarnedPoints    int              `json:"earnedPoints"`
	Proficiency     int              `json:"proficiency"`
	QuestionResults []QuestionResult `json:"questionResults"`
}

type AssessmentQuestionResult struct {
	QuestionID    string   `json:"questionId"`
	CorrectAnswer []string `json:"correctAnswer"`
	UserAnswer    []string `json:"userAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	MarksAwarded  int      `json:"marksAwarded"`
	MarksTotal    int      `json:"marksTotal"`
}

type AssessmentResult struct {
	Score           int                        `json:"score"`
	Passed          bool                       `json:"passed"`
	TotalPoints     int                        `json:"totalPoints"`
	EarnedPoints    int                        `json:"earnedPoints"`
	QuestionResults []AssessmentQuestionResult `json:"questionResults"`
}

type ScoreSummary struct {
	TotalCourses     int     `json:"totalCourses"`
	CompletedCourses int     `json:"completedCourses"`
	InProgress       int     `json:"inProgress"`
	OverallScore     float64 `json:"overallScore"`
}

type CourseScore struct {
	CourseID             string         `json:"courseId"`
	Title                string         `json:"title"`
	Status               ProgressStatus `json:"status"`
	CompletionPercentage int            `json:"completionPercentage"`
	AssessmentScore      *int           `json:"assessmentScore"`
	DueDate              *time.Time     `json:"dueDate"`
	DaysRemaining        *int           `json:"daysRemaining"`
}

type DifficultyStats struct {
	Assigned  int `json:"assigned"`
	Completed int `json:"completed"`
}

const (
	QuizStatsFromQuizzes  = "quizzes"
	QuizStatsFromAttempts = "attempts"
)

type QuizStats struct {
	TotalAssigned     int             `json:"totalAssigned"`
	TotalCompleted    int             `json:"totalCompleted"`
	CompletionPercent int             `json:"completionPercent"`
	Easy              DifficultyStats `json:"easy"`
	Medium            DifficultyStats `json:"medium"`
	Hard              DifficultyStats `json:"hard"`
	Source            string          `json:"source"`
}

type ScoreReport struct {
	Summary   ScoreSummary  `json:"summary"`
	Courses   []CourseScore `json:"courses"`
	QuizStats QuizStats     `json:"quizStats"`
}
