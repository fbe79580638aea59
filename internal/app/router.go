package app

import (
	"math_tutor_backend/internal/config"
	"math_tutor_backend/internal/middleware"
	"math_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公开路由：展示页与健康检查
	router.GET("/display/:id", c.solution.Display)
	router.GET("/health", c.health.HealthCheck)
	router.GET("/api/health", c.health.HealthCheck)

	// 共享密钥保护的写入接口
	api := router.Group("/api")
	api.Use(middleware.SharedSecretMiddleware(cfg))
	{
		api.POST("/create-solution", c.solution.CreateSolution)
	}

	// 教师接口：统一的身份校验 + 自动开通
	teacherAPI := router.Group("/api/teacher")
	teacherAPI.Use(middleware.TeacherMiddleware(s.teacher))
	{
		teacherAPI.GET("/dashboard/:date", c.teacher.Dashboard)
		teacherAPI.GET("/student/:studentName/:date", c.teacher.StudentQuestions)
		teacherAPI.GET("/topic-analysis/:teacherId", c.teacher.TopicAnalysis)
		teacherAPI.GET("/student-search/:teacherId", c.teacher.StudentSearch)
		teacherAPI.POST("/dashboard-link/:teacherId", middleware.SharedSecretMiddleware(cfg), c.teacher.DashboardLink)
		teacherAPI.POST("/student-search-link/:teacherId", middleware.SharedSecretMiddleware(cfg), c.teacher.StudentSearchLink)
		teacherAPI.POST("/topic-analysis-link/:teacherId", middleware.SharedSecretMiddleware(cfg), c.teacher.TopicAnalysisLink)
	}

	// 教师 HTML 页面
	teacherPages := router.Group("/teacher")
	teacherPages.Use(middleware.TeacherMiddleware(s.teacher))
	{
		teacherPages.GET("/dashboard/today/:teacherId", c.teacher.DashboardPage)
		teacherPages.GET("/student-search/:teacherId", c.teacher.StudentSearchPage)
		teacherPages.GET("/topic-analysis/:teacherId", c.teacher.TopicAnalysisPage)
	}
}
