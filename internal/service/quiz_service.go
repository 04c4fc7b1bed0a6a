package service

import (
	"context"
	"fmt"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/util"
	"hr_learning_backend/pkg/logger"
	"hr_learning_backend/pkg/monitoring"
	"hr_learning_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const maxQuestionCount = 20

type CourseFinder interface {
	FindByID(ctx context.Context, id string) (*model.Course, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Course, error)
}

type QuizStore interface {
	Create(ctx context.Context, quiz *model.GeneratedQuiz) error
	FindByID(ctx context.Context, id string) (*model.GeneratedQuiz, error)
	MarkSubmitted(ctx context.Context, quiz *model.GeneratedQuiz) (bool, error)
	ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.GeneratedQuiz, error)
}

type AttemptStore interface {
	Create(ctx context.Context, attempt *model.QuizAttempt) error
	ListByLearner(ctx context.Context, filter model.QueryFilter) ([]model.QuizAttempt, error)
}

type GenerateQuizRequest struct {
	MaterialRequest
	Difficulty   string `json:"difficulty"`
	Count        int    `json:"count"`
	PassingScore int    `json:"passingScore"`
}

type SubmitQuizRequest struct {
	Answers        []SubmittedAnswer `json:"answers"`
	CompletionTime int               `json:"completionTime"`
}

type QuizHistory struct {
	Quizzes  []model.GeneratedQuiz `json:"quizzes"`
	Attempts []model.QuizAttempt   `json:"attempts"`
}

type QuizService struct {
	Courses     CourseFinder
	Quizzes     QuizStore
	Attempts    AttemptStore
	Transcripts TranscriptProvider
	Generator   QuestionGenerator

	PassingRatio      float64
	DefaultCount      int
	GenerationTimeout time.Duration
	Now               func() time.Time
}

func NewQuizService(courses CourseFinder, quizzes QuizStore, attempts AttemptStore,
	transcripts TranscriptProvider, generator QuestionGenerator, cfg *config.Config) *QuizService {
	s := &QuizService{
		Courses:           courses,
		Quizzes:           quizzes,
		Attempts:          attempts,
		Transcripts:       transcripts,
		Generator:         generator,
		PassingRatio:      0.6,
		DefaultCount:      5,
		GenerationTimeout: 60 * time.Second,
		Now:               time.Now,
	}
	if cfg != nil {
		if cfg.Learning.PassingRatio > 0 {
			s.PassingRatio = cfg.Learning.PassingRatio
		}
		if cfg.Learning.QuestionCount > 0 {
			s.DefaultCount = cfg.Learning.QuestionCount
		}
		if cfg.AI.TimeoutSeconds > 0 {
			s.GenerationTimeout = time.Duration(cfg.AI.TimeoutSeconds) * time.Second
		}
	}
	return s
}

// Generate 选取资料并生成测验。出题服务失败时使用占位题，不让整个请求失败。
func (s *QuizService) Generate(ctx context.Context, identity model.LearnerIdentity, courseID string, req GenerateQuizRequest) (*model.GeneratedQuiz, error) {
	if identity.IsEmpty() {
		return nil, util.ErrUnauthorized
	}

	course, err := s.Courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	materials, err := SelectMaterials(ctx, s.Transcripts, course, req.MaterialRequest)
	if err != nil {
		return nil, err
	}
	if err := CheckViability(materials); err != nil {
		return nil, err
	}

	count := req.Count
	if count <= 0 {
		count = s.DefaultCount
	}
	if count > maxQuestionCount {
		count = maxQuestionCount
	}
	difficulty := NormalizeDifficulty(req.Difficulty)

	questions, source := s.generateQuestions(ctx, course, materials, difficulty, count)

	total := TotalPoints(questions)
	passing := req.PassingScore
	if passing <= 0 || passing > total {
		passing = DefaultPassingScore(total, s.PassingRatio)
	}

	quiz := &model.GeneratedQuiz{
		LearnerOwned: identity.Owner(),
		CourseID:     course.ID,
		Difficulty:   difficulty,
		Questions:    questions,
		TotalPoints:  total,
		PassingScore: passing,
		Status:       model.QuizCreated,
		Source:       source,
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

func (s *QuizService) generateQuestions(ctx context.Context, course *model.Course, materials []model.QuizMaterial, difficulty string, count int) ([]model.QuizQuestion, string) {
	if s.Generator != nil {
		genCtx, span := tracing.StartSpan(ctx, "quiz.generate",
			attribute.String("course.id", course.ID),
			attribute.Int("quiz.count", count))
		genCtx, cancel := context.WithTimeout(genCtx, s.GenerationTimeout)
		questions, err := s.Generator.Generate(genCtx, GenerationRequest{
			CourseTitle: course.Title,
			Materials:   materials,
			Difficulty:  difficulty,
			Count:       count,
		})
		cancel()
		span.End()

		if err == nil && len(questions) > 0 {
			if len(questions) > count {
				questions = questions[:count]
			}
			monitoring.QuizGenerationCounter.WithLabelValues(model.QuizSourceGenerated).Inc()
			return questions, model.QuizSourceGenerated
		}
		logger.Log.Warn("Question generation degraded, using placeholder questions",
			zap.String("course_id", course.ID),
			zap.Int("returned", len(questions)),
			zap.Error(err))
	}
	monitoring.QuizGenerationCounter.WithLabelValues(model.QuizSourcePlaceholder).Inc()
	return PlaceholderQuestions(course.Title, count), model.QuizSourcePlaceholder
}

// Submit 判分。首次提交推进 Created -> Submitted，每次提交都追加一条作答记录。
func (s *QuizService) Submit(ctx context.Context, identity model.LearnerIdentity, quizID string, req SubmitQuizRequest) (*model.QuizSubmissionResult, error) {
	if identity.IsEmpty() {
		return nil, util.ErrUnauthorized
	}

	quiz, err := s.Quizzes.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if !identity.Owns(quiz.LearnerOwned) {
		return nil, util.ErrQuizNotOwned
	}

	grade := GradeFixedAnswers(quiz.Questions, req.Answers, quiz.PassingScore, s.PassingRatio)
	passed := grade.Passed

	if quiz.Status == model.QuizCreated {
		now := s.Now()
		score := grade.EarnedPoints
		quiz.Responses = grade.Responses
		quiz.Score = &score
		quiz.CompletionTime = req.CompletionTime
		quiz.SubmittedAt = &now
		if _, err := s.Quizzes.MarkSubmitted(ctx, quiz); err != nil {
			logger.Log.Error("Failed to mark quiz submitted",
				zap.String("quiz_id", quiz.ID),
				zap.Error(err))
		} else {
			quiz.Status = model.QuizSubmitted
		}
	}

	attempt := &model.QuizAttempt{
		LearnerOwned:   identity.Owner(),
		QuizID:         quiz.ID,
		CourseID:       quiz.CourseID,
		Difficulty:     quiz.Difficulty,
		Responses:      grade.Responses,
		Score:          grade.EarnedPoints,
		TotalPoints:    grade.TotalPoints,
		Passed:         &passed,
		CompletionTime: req.CompletionTime,
	}
	if err := s.Attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record quiz attempt: %w", err)
	}
	monitoring.ObserveSubmission("quiz", passed)

	return &model.QuizSubmissionResult{
		QuizID:          quiz.ID,
		Score:           grade.EarnedPoints,
		Passed:          passed,
		TotalPoints:     grade.TotalPoints,
		EarnedPoints:    grade.EarnedPoints,
		Proficiency:     grade.Proficiency,
		QuestionResults: grade.Results,
	}, nil
}

func (s *QuizService) List(ctx context.Context, identity model.LearnerIdentity) (*QuizHistory, error) {
	filter, err := BuildFilter(identity)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.Quizzes.ListByLearner(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	attempts, err := s.Attempts.ListByLearner(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return &QuizHistory{Quizzes: quizzes, Attempts: attempts}, nil
}
