package controller

import (
	"hr_learning_backend/internal/service"
	"hr_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Identity    *service.IdentityService
	Quizzes     *service.QuizService
	Assessments *service.AssessmentService
}

func NewQuizController(identity *service.IdentityService, quizzes *service.QuizService, assessments *service.AssessmentService) *QuizController {
	return &QuizController{Identity: identity, Quizzes: quizzes, Assessments: assessments}
}

// @Summary 根据课程资料生成测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Router /api/courses/{courseId}/quizzes [post]
func (c *QuizController) GenerateQuiz(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	var req service.GenerateQuizRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	quiz, err := c.Quizzes.Generate(ctx.Request.Context(), learner, ctx.Param("courseId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary 我的测验与作答记录
// @Tags 测验
// @Produce json
// @Security BearerAuth
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	history, err := c.Quizzes.List(ctx.Request.Context(), learner)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// @Summary 提交测验
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quizId path string true "测验ID"
// @Router /api/quizzes/{quizId}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Quizzes.Submit(ctx.Request.Context(), learner, ctx.Param("quizId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交课程结业考核
// @Tags 测验
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "课程ID"
// @Router /api/courses/{courseId}/assessment/submit [post]
func (c *QuizController) SubmitAssessment(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	var req service.AssessmentSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.Assessments.Submit(ctx.Request.Context(), learner, ctx.Param("courseId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
