package controller

import (
	"hr_learning_backend/internal/service"
	"hr_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseProgressController struct {
	Identity *service.IdentityService
	Progress *service.ProgressService
}

func NewCourseProgressController(identity *service.IdentityService, progress *service.ProgressService) *CourseProgressController {
	return &CourseProgressController{Identity: identity, Progress: progress}
}

// @Summary 记录资料浏览
// @Tags 课程进度
// @Produce json
// @Security BearerAuth
// @Router /api/courses/{courseId}/materials/{materialId}/view [post]
func (c *CourseProgressController) ViewMaterial(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	progress, err := c.Progress.ViewMaterial(ctx.Request.Context(), learner, ctx.Param("courseId"), ctx.Param("materialId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 提交练习题成绩
// @Tags 课程进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/courses/{courseId}/practice-results [post]
func (c *CourseProgressController) RecordPracticeResult(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	var req service.PracticeResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Score > req.Total {
		util.BadRequest(ctx, "score cannot exceed total")
		return
	}

	result, err := c.Progress.RecordPracticeResult(ctx.Request.Context(), learner, ctx.Param("courseId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, result)
}
