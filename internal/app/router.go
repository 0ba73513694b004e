package app

import (
	"lawyer_exam_backend/docs"
	"lawyer_exam_backend/internal/config"
	"lawyer_exam_backend/internal/middleware"
	"lawyer_exam_backend/internal/model"

	"lawyer_exam_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

// registerPublicRoutes covers everything a visitor can reach before signing
// in: the question bank, the section list and the UI translations.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)

		auth := public.Group("/auth")
		{
			auth.POST("/register", c.auth.Register)
			auth.POST("/login", c.auth.Login)
		}

		public.GET("/questions", c.question.GetQuestions)
		public.GET("/questions/demo", c.question.GetDemoQuestions)
		public.GET("/questions/exam", c.question.GetExamQuestions)
		public.GET("/questions/trainer", c.question.GetTrainerQuestions)
		public.GET("/legislation-sections", c.question.GetSections)

		public.GET("/translations", c.translation.GetAll)
		public.GET("/translations/:lang", c.translation.GetLanguage)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	rg.POST("/exams/submit", c.exam.Submit)
	rg.GET("/exams/history", c.exam.History)
	rg.GET("/exams/:id", c.exam.Detail)

	rg.POST("/reports", c.report.Create)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/questions", c.admin.ListQuestions)
		admin.POST("/questions", c.admin.CreateQuestion)
		admin.POST("/questions/import", c.admin.ImportQuestions)
		admin.PUT("/questions/:id", c.admin.UpdateQuestion)
		admin.DELETE("/questions/:id", c.admin.DeleteQuestion)

		admin.PUT("/translations/:lang", c.translation.UpdateLanguage)

		admin.GET("/reports", c.report.List)
	}
}
