package controller

import (
	"hr_learning_backend/internal/service"
	"hr_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LiveSessionController struct {
	Identity *service.IdentityService
	Sessions *service.LiveSessionService
}

func NewLiveSessionController(identity *service.IdentityService, sessions *service.LiveSessionService) *LiveSessionController {
	return &LiveSessionController{Identity: identity, Sessions: sessions}
}

// @Summary 加入直播课
// @Tags 直播课
// @Produce json
// @Security BearerAuth
// @Router /api/live-sessions/{sessionId}/join [post]
func (c *LiveSessionController) JoinSession(ctx *gin.Context) {
	learner, ok := currentLearner(ctx, c.Identity)
	if !ok {
		return
	}

	attendance, err := c.Sessions.JoinSession(ctx.Request.Context(), learner, ctx.Param("sessionId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, attendance)
}
