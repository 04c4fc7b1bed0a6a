package controller

import (
	"hr_learning_backend/internal/model"
	"hr_learning_backend/internal/service"
	"hr_learning_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// currentLearner 解析当前请求的学习者身份，失败时已写入响应
func currentLearner(ctx *gin.Context, identity *service.IdentityService) (model.LearnerIdentity, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return model.LearnerIdentity{}, false
	}
	learner, err := identity.Resolve(ctx.Request.Context(), service.CredentialFromClaims(claims))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return model.LearnerIdentity{}, false
	}
	return learner, true
}
