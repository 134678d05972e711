package app

import (
	"pfolio_backend/internal/config"
	"pfolio_backend/internal/middleware"
	"pfolio_backend/internal/model"
	"pfolio_backend/pkg/monitoring"
	"pfolio_backend/pkg/security"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg, s.sessions))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.GET("/dashboard", c.dashboard.GetDashboard)

		// 教师相关接口
		a.registerTeacherRoutes(authGroup, c, s)

		// 管理员相关接口
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// 表单字段预留的请求体余量
const multipartOverhead = 1 << 20

func (a *App) registerTeacherRoutes(group *gin.RouterGroup, c *controllers, s *services) {
	var bodyLimit int64
	if limit := s.activities.MaxProofBytes(); limit > 0 {
		bodyLimit = limit + multipartOverhead
	}

	teacher := group.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher), security.BodyLimit(bodyLimit))
	{
		teacher.GET("/activities", c.activity.ListActivities)

		teacher.POST("/practices", c.activity.CreatePractice)
		teacher.PUT("/practices/:id", c.activity.UpdatePractice)
		teacher.DELETE("/practices/:id", c.activity.DeletePractice)

		teacher.POST("/seminars", c.activity.CreateSeminar)
		teacher.PUT("/seminars/:id", c.activity.UpdateSeminar)
		teacher.DELETE("/seminars/:id", c.activity.DeleteSeminar)
	}
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	admin := group.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/overview", c.admin.GetOverview)
		admin.GET("/teachers", c.admin.ListTeachers)
		admin.GET("/teachers/:id/portfolio", c.admin.GetPortfolio)
		admin.GET("/teachers/:id/portfolio/export", c.admin.ExportPortfolio)
	}
}
