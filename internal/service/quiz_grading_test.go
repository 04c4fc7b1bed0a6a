package service

import (
	"encoding/json"
	"testing"

	"hr_learning_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveQuestions() []model.QuizQuestion {
	qs := make([]model.QuizQuestion, 5)
	for i := range qs {
		qs[i] = model.QuizQuestion{
			Text:          "q",
			Type:          model.QuestionMultipleChoice,
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Points:        1,
		}
	}
	return qs
}

func at(i int) *int { return &i }

func answersWithCorrect(n, total int) []SubmittedAnswer {
	out := make([]SubmittedAnswer, 0, total)
	for i := 0; i < total; i++ {
		ans := "B"
		if i < n {
			ans = "A"
		}
		out = append(out, SubmittedAnswer{QuestionIndex: at(i), Answer: ans})
	}
	return out
}

func TestGradeFixedAnswers_DefaultPassingScore(t *testing.T) {
	qs := fiveQuestions()

	g := GradeFixedAnswers(qs, answersWithCorrect(3, 5), 0, 0.6)
	assert.Equal(t, 3, g.PassingScore)
	assert.Equal(t, 5, g.TotalPoints)
	assert.Equal(t, 3, g.EarnedPoints)
	assert.True(t, g.Passed)
	assert.Equal(t, 60, g.Proficiency)

	g = GradeFixedAnswers(qs, answersWithCorrect(2, 5), 0, 0.6)
	assert.Equal(t, 2, g.EarnedPoints)
	assert.False(t, g.Passed)
	assert.Equal(t, 40, g.Proficiency)
}

func TestGradeFixedAnswers_ExplicitPassingScore(t *testing.T) {
	g := GradeFixedAnswers(fiveQuestions(), answersWithCorrect(4, 5), 5, 0.6)
	assert.Equal(t, 5, g.PassingScore)
	assert.False(t, g.Passed)
}

func TestGradeFixedAnswers_Idempotent(t *testing.T) {
	qs := fiveQuestions()
	answers := answersWithCorrect(3, 5)

	first := GradeFixedAnswers(qs, answers, 0, 0.6)
	second := GradeFixedAnswers(qs, answers, 0, 0.6)
	assert.Equal(t, first, second)
}

func TestGradeFixedAnswers_MissingAndOutOfRange(t *testing.T) {
	qs := fiveQuestions()
	answers := []SubmittedAnswer{
		{QuestionIndex: at(0), Answer: "A"},
		{QuestionIndex: at(7), Answer: "A"},
		{QuestionIndex: at(-1), Answer: "A"},
	}

	g := GradeFixedAnswers(qs, answers, 0, 0.6)
	assert.Equal(t, 1, g.EarnedPoints)
	require.Len(t, g.Responses, 5)
	assert.True(t, g.Responses[0].Correct)
	for _, r := range g.Responses[1:] {
		assert.False(t, r.Correct)
		assert.Equal(t, "", r.Answer)
		assert.Equal(t, "A", r.CorrectAnswer)
	}
}

func TestGradeFixedAnswers_PositionalAnswers(t *testing.T) {
	var req SubmitQuizRequest
	body := `{"answers":[{"answer":"A"},{"answer":"A"},{"answer":"B"},{"answer":"A"},{"answer":"A"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	g := GradeFixedAnswers(fiveQuestions(), req.Answers, 0, 0.6)
	assert.Equal(t, 4, g.EarnedPoints)
	assert.False(t, g.Responses[2].Correct)
	assert.Equal(t, "B", g.Responses[2].Answer)

	// 显式下标与位置可以混用
	mixed := []SubmittedAnswer{
		{QuestionIndex: at(4), Answer: "A"},
		{Answer: "A"},
	}
	g = GradeFixedAnswers(fiveQuestions(), mixed, 0, 0.6)
	assert.Equal(t, 2, g.EarnedPoints)
	assert.True(t, g.Responses[1].Correct)
	assert.True(t, g.Responses[4].Correct)
}

func TestGradeFixedAnswers_DuplicateIndexKeepsFirst(t *testing.T) {
	answers := []SubmittedAnswer{
		{QuestionIndex: at(0), Answer: "B"},
		{QuestionIndex: at(0), Answer: "A"},
	}
	g := GradeFixedAnswers(fiveQuestions(), answers, 0, 0.6)
	assert.Equal(t, 0, g.EarnedPoints)
	assert.Equal(t, "B", g.Responses[0].Answer)
}

func TestGradeFixedAnswers_CoercesAnswers(t *testing.T) {
	qs := []model.QuizQuestion{
		{Text: "2+2", CorrectAnswer: "4", Points: 2},
		{Text: "sky is blue", Type: model.QuestionTrueFalse, CorrectAnswer: "true"},
	}
	answers := []SubmittedAnswer{
		{QuestionIndex: at(0), Answer: 4},
		{QuestionIndex: at(1), Answer: true},
	}

	g := GradeFixedAnswers(qs, answers, 0, 0.6)
	assert.Equal(t, 3, g.TotalPoints, "missing points default to 1")
	assert.Equal(t, 3, g.EarnedPoints)
	assert.Equal(t, 100, g.Proficiency)
	assert.Equal(t, "4", g.Results[0].UserAnswer)
}

func TestGradeFixedAnswers_NoQuestions(t *testing.T) {
	g := GradeFixedAnswers(nil, nil, 0, 0.6)
	assert.Equal(t, 0, g.TotalPoints)
	assert.Equal(t, 0, g.Proficiency)
	assert.True(t, g.Passed)
}

func TestDefaultPassingScore(t *testing.T) {
	assert.Equal(t, 3, DefaultPassingScore(5, 0.6))
	assert.Equal(t, 6, DefaultPassingScore(10, 0.6))
	assert.Equal(t, 1, DefaultPassingScore(1, 0.6))
	assert.Equal(t, 3, DefaultPassingScore(5, 0), "invalid ratio falls back to 0.6")
}

func TestGradeAssessment_OrderIndependent(t *testing.T) {
	qs := []model.AssessmentQuestion{
		{ID: "q1", Marks: 4, CorrectAnswers: []string{"A", "B"}},
	}

	res := GradeAssessment(qs, map[string][]string{"q1": {"B", "A"}}, 80)
	require.Len(t, res.QuestionResults, 1)
	assert.True(t, res.QuestionResults[0].IsCorrect)
	assert.Equal(t, 4, res.QuestionResults[0].MarksAwarded)
	assert.Equal(t, []string{"A", "B"}, res.QuestionResults[0].UserAnswer)
	assert.Equal(t, 100, res.Score)
	assert.True(t, res.Passed)

	res = GradeAssessment(qs, map[string][]string{"q1": {"A"}}, 80)
	assert.False(t, res.QuestionResults[0].IsCorrect)
	assert.Equal(t, 0, res.QuestionResults[0].MarksAwarded)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Passed)
}

func TestGradeAssessment_MissingAnswersAndPartialCredit(t *testing.T) {
	qs := []model.AssessmentQuestion{
		{ID: "q1", Marks: 1, CorrectAnswers: []string{"A"}},
		{ID: "q2", Marks: 2, CorrectAnswers: []string{"C", "D"}},
	}

	res := GradeAssessment(qs, map[string][]string{"q1": {"A"}}, 0)
	assert.Equal(t, 3, res.TotalPoints)
	assert.Equal(t, 1, res.EarnedPoints)
	assert.Equal(t, 33, res.Score)
	assert.False(t, res.Passed, "qualification defaults to 80")
	assert.Equal(t, []string{}, res.QuestionResults[1].UserAnswer)
	assert.Equal(t, 2, res.QuestionResults[1].MarksTotal)
}

// 排序后逐位比较：重复提交的答案即使集合相同也判错，这是现有行为
func TestGradeAssessment_DuplicateAnswersComparePositionally(t *testing.T) {
	qs := []model.AssessmentQuestion{
		{ID: "q1", Marks: 1, CorrectAnswers: []string{"A", "B"}},
	}

	res := GradeAssessment(qs, map[string][]string{"q1": {"A", "A"}}, 80)
	assert.False(t, res.QuestionResults[0].IsCorrect)

	res = GradeAssessment(qs, map[string][]string{"q1": {"A", "B", "B"}}, 80)
	assert.False(t, res.QuestionResults[0].IsCorrect, "set-equal but longer submission is wrong")

	dup := []model.AssessmentQuestion{
		{ID: "q1", Marks: 1, CorrectAnswers: []string{"A", "A"}},
	}
	res = GradeAssessment(dup, map[string][]string{"q1": {"A", "A"}}, 80)
	assert.True(t, res.QuestionResults[0].IsCorrect)
}

func TestGradeAssessment_NoMarks(t *testing.T) {
	res := GradeAssessment([]model.AssessmentQuestion{{ID: "q1", CorrectAnswers: []string{"A"}}}, nil, 80)
	assert.Equal(t, 0, res.Score)
	assert.False(t, res.Passed)
}
