package controller

import (
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/service"
	"hr_learning_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	Identity *service.IdentityService
	Heatmap  *service.HeatmapService
	Scores   *service.ScoreService
}

func NewLearningController(identity *service.IdentityService, heatmap *service.HeatmapService, scores *service.ScoreService) *LearningController {
	return &LearningController{Identity: identity, Heatmap: heatmap, Scores: scores}
}

type recordActivityRequest struct {
	Date string `json:"date" binding:"required"`
	model.ActivityCounters
}

// @Summary 学习活跃度热力图
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Param days query int false "窗口天数，默认 371"
// @Success 200 {object} util.Response
// @Router /api/learning/heatmap [get]
func (c *LearningController) GetHeatmap(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	days := 0
	if raw := ctx.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			util.BadRequest(ctx, "days must be a non-negative integer")
			return
		}
		days = n
	}

	buckets, err := c.Heatmap.BuildHeatmap(ctx.Request.Context(), learner, days)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, buckets)
}

// @Summary 上报当日学习日志（累加）
// @Tags 学习
// @Accept json
// @Produce json
// @Security BearerAuth
// @Router /api/learning/activity [post]
func (c *LearningController) RecordActivity(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	var req recordActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Heatmap.RecordActivity(ctx.Request.Context(), learner, req.Date, req.ActivityCounters); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"date": req.Date})
}

// @Summary 课程与测验成绩汇总
// @Tags 学习
// @Produce json
// @Security BearerAuth
// @Router /api/learning/scores [get]
func (c *LearningController) GetScores(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	report, err := c.Scores.CompileScores(ctx.Request.Context(), learner)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
