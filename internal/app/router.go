package app

import (
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/middleware"
	"hr_learning_backend/pkg/monitoring"
	"hr_learning_backend/pkg/security"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerLearningRoutes(authGroup, c)
		a.registerCourseRoutes(authGroup, c, cfg)
	}
}

func (a *App) registerLearningRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/learning/heatmap", c.learning.GetHeatmap)
	rg.POST("/learning/activity", c.learning.RecordActivity)
	rg.GET("/learning/scores", c.learning.GetScores)

	rg.GET("/quizzes", c.quiz.ListQuizzes)
	rg.POST("/quizzes/:quizId/submit", c.quiz.SubmitQuiz)

	rg.POST("/live-sessions/:sessionId/join", c.liveSession.JoinSession)
}

func (a *App) registerCourseRoutes(rg *gin.RouterGroup, c *controllers, cfg *config.Config) {
	courses := rg.Group("/courses/:courseId")
	{
		courses.POST("/materials/:materialId/view", c.progress.ViewMaterial)
		courses.POST("/practice-results", c.progress.RecordPracticeResult)
		courses.POST("/quizzes", security.GenerationLimiter(cfg.RateLimit), c.quiz.GenerateQuiz)
		courses.POST("/assessment/submit", c.quiz.SubmitAssessment)
	}
}
