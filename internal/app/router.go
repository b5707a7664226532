package app

import (
	"intellistudy_backend/docs"
	"intellistudy_backend/internal/config"
	"intellistudy_backend/internal/middleware"
	"intellistudy_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由，无会话
	a.registerPublicRoutes(router, c)

	// 2. 浏览器会话路由，身份可选
	sessionGroup := router.Group("/api")
	sessionGroup.Use(
		middleware.IdentityMiddleware(cfg.JWT.Secret),
		middleware.ActivityMiddleware(s.user),
		middleware.SessionMiddleware(cfg.Session, s.sessions),
	)
	{
		a.registerDashboardRoutes(sessionGroup, c)

		// 3. 管理员相关接口
		a.registerAdminRoutes(sessionGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/quiz/get-result", c.quiz.GetResult)
		public.POST("/get-user-role", c.user.GetUserRole)
	}
}

func (a *App) registerDashboardRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/preferences", c.preference.GetPreferences)
	rg.PUT("/preferences/language", c.preference.SetLanguage)
	rg.POST("/preferences/theme/toggle", c.preference.ToggleTheme)

	rg.GET("/dashboard/shell", c.dashboard.GetShell)
	rg.GET("/dashboard/nodes", c.dashboard.GetNodes)
	rg.POST("/dashboard/nodes", c.dashboard.RegisterNodes)

	rg.POST("/translate", c.translation.Translate)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RequirePrivileged())
	{
		admin.GET("/stats", c.admin.GetStats)
		admin.POST("/quiz-results", c.admin.RecordQuizResult)
	}
}
