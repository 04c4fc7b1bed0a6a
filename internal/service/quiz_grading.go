package service

import (
	"math"
	"sort"

	"hr_learning_backend/internal/model"

	"github.com/spf13/cast"
)

const defaultQualificationScore = 80

// FixedAnswerGrade 生成测验的判分结果
type FixedAnswerGrade struct {
	Responses    []model.QuizResponse
	Results      []model.QuestionResult
	TotalPoints  int
	EarnedPoints int
	PassingScore int
	Passed       bool
	Proficiency  int
}

// SubmittedAnswer 前端提交的单题作答，answer 可能是字符串、数字或布尔值。
// 未带 questionIndex 时按数组位置对应题目。
type SubmittedAnswer struct {
	QuestionIndex *int        `json:"questionIndex,omitempty"`
	Answer        interface{} `json:"answer"`
}

func (a SubmittedAnswer) index(position int) int {
	if a.QuestionIndex != nil {
		return *a.QuestionIndex
	}
	return position
}

func questionPoints(q model.QuizQuestion) int {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

func TotalPoints(questions []model.QuizQuestion) int {
	total := 0
	for _, q := range questions {
		total += questionPoints(q)
	}
	return total
}

// DefaultPassingScore ceil(ratio * total)
func DefaultPassingScore(total int, ratio float64) int {
	if ratio <= 0 || ratio > 1 {
		ratio = 0.6
	}
	return int(math.Ceil(ratio * float64(total)))
}

func percent(earned, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(earned) / float64(total)))
}

// GradeFixedAnswers 逐题做字符串精确比较。越界或缺失的作答记为错误，不报错；
// 同一题有多条作答时只取第一条。passingScore <= 0 时按 ratio 计算默认及格线。
func GradeFixedAnswers(questions []model.QuizQuestion, answers []SubmittedAnswer, passingScore int, ratio float64) FixedAnswerGrade {
	byIndex := make(map[int]string, len(answers))
	for pos, a := range answers {
		i := a.index(pos)
		if i < 0 || i >= len(questions) {
			continue
		}
		if _, seen := byIndex[i]; seen {
			continue
		}
		byIndex[i] = cast.ToString(a.Answer)
	}

	g := FixedAnswerGrade{
		Responses: make([]model.QuizResponse, 0, len(questions)),
		Results:   make([]model.QuestionResult, 0, len(questions)),
	}
	for i, q := range questions {
		pts := questionPoints(q)
		g.TotalPoints += pts

		answer, answered := byIndex[i]
		correctAnswer := cast.ToString(q.CorrectAnswer)
		correct := answered && answer == correctAnswer
		if correct {
			g.EarnedPoints += pts
		}

		g.Responses = append(g.Responses, model.QuizResponse{
			QuestionIndex: i,
			Answer:        answer,
			Correct:       correct,
			CorrectAnswer: correctAnswer,
		})
		g.Results = append(g.Results, model.QuestionResult{
			QuestionIndex: i,
			Question:      q.Text,
			UserAnswer:    answer,
			Correct:       correct,
			CorrectAnswer: correctAnswer,
			Rationale:     q.Rationale,
		})
	}

	g.PassingScore = passingScore
	if g.PassingScore <= 0 {
		g.PassingScore = DefaultPassingScore(g.TotalPoints, ratio)
	}
	g.Passed = g.EarnedPoints >= g.PassingScore
	g.Proficiency = percent(g.EarnedPoints, g.TotalPoints)
	return g
}

func sortedAnswers(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}

// sameSortedAnswers 排序后逐位比较。重复答案不按多重集处理，保留现有行为。
func sameSortedAnswers(correct, submitted []string) bool {
	if len(correct) != len(submitted) {
		return false
	}
	for i := range correct {
		if correct[i] != submitted[i] {
			return false
		}
	}
	return true
}

// GradeAssessment 结业考核判分，每题全对才得分
func GradeAssessment(questions []model.AssessmentQuestion, answers map[string][]string, qualification int) model.AssessmentResult {
	if qualification <= 0 {
		qualification = defaultQualificationScore
	}

	result := model.AssessmentResult{
		QuestionResults: make([]model.AssessmentQuestionResult, 0, len(questions)),
	}
	for _, q := range questions {
		correct := sortedAnswers(q.CorrectAnswers)
		submitted := sortedAnswers(answers[q.ID])

		isCorrect := sameSortedAnswers(correct, submitted)
		awarded := 0
		if isCorrect {
			awarded = q.Marks
		}
		result.TotalPoints += q.Marks
		result.EarnedPoints += awarded

		result.QuestionResults = append(result.QuestionResults, model.AssessmentQuestionResult{
			QuestionID:    q.ID,
			CorrectAnswer: correct,
			UserAnswer:    submitted,
			IsCorrect:     isCorrect,
			MarksAwarded:  awarded,
			MarksTotal:    q.Marks,
		})
	}

	result.Score = percent(result.EarnedPoints, result.TotalPoints)
	result.Passed = result.Score >= qualification
	return result
}
