package app

import (
	"smart_recall_backend/docs"
	"smart_recall_backend/internal/middleware"
	"smart_recall_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.GET("/profile", c.auth.Profile)

		// 学习内容
		authGroup.POST("/contents", c.content.Create)
		authGroup.GET("/contents", c.content.List)
		authGroup.GET("/contents/:id", c.content.Get)
		authGroup.PUT("/contents/:id", c.content.Update)
		authGroup.DELETE("/contents/:id", c.content.Delete)

		// 题目
		authGroup.POST("/contents/:id/questions", c.question.Create)
		authGroup.GET("/contents/:id/questions", c.question.List)
		authGroup.PUT("/contents/:id/questions/:qid", c.question.Update)
		authGroup.DELETE("/contents/:id/questions/:qid", c.question.Delete)

		// 答题会话
		authGroup.POST("/sessions", c.session.Start)
		authGroup.GET("/sessions", c.session.List)
		authGroup.GET("/sessions/stats", c.session.Stats)
		authGroup.GET("/sessions/:id", c.session.Get)
		authGroup.GET("/sessions/:id/current", c.session.Current)
		authGroup.POST("/sessions/:id/answers", c.session.Submit)
		authGroup.POST("/sessions/:id/complete", c.session.Complete)
		authGroup.GET("/sessions/:id/summary", c.session.Summary)
	}
}
