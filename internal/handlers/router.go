package handlers

import (
	"github.com/SAP-F-2025/learning-analytics-service/internal/services"
	"github.com/SAP-F-2025/learning-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	statisticsHandler *StatisticsHandler
	teacherHandler    *TeacherHandler
	adminStatsHandler *AdminStatsHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	validator *utils.Validator,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		statisticsHandler: NewStatisticsHandler(
			serviceManager.Engagement(),
			serviceManager.Analytics(),
			serviceManager.Activity(),
			serviceManager.TestStats(),
			serviceManager.Progress(),
			serviceManager.Report(),
			serviceManager.Achievements(),
			logger,
		),
		teacherHandler:    NewTeacherHandler(serviceManager.Teacher(), serviceManager.Export(), validator, logger),
		adminStatsHandler: NewAdminStatsHandler(serviceManager.Dashboard(), serviceManager.TaskStats(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "learning-analytics-service",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-student statistics routes
		statistics := v1.Group("/statistics")
		{
			statistics.GET("/engagement/:user_id", hm.statisticsHandler.GetEngagement)
			statistics.GET("/analytics/:user_id", hm.statisticsHandler.GetAnalytics)
			statistics.GET("/activity/:user_id", hm.statisticsHandler.GetActivity)
			statistics.GET("/streaks/:user_id", hm.statisticsHandler.GetStreaks)
			statistics.GET("/tests/:user_id", hm.statisticsHandler.GetTestStats)
			statistics.GET("/progress/:user_id/course/:course_id", hm.statisticsHandler.GetCourseProgress)
			statistics.GET("/progress/:user_id/subject/:subject_id", hm.statisticsHandler.GetSubjectProgress)
			statistics.GET("/report/:user_id", hm.statisticsHandler.GetLearningReport)
			statistics.GET("/recommendations/:user_id", hm.statisticsHandler.GetRecommendations)
			statistics.GET("/achievements/:user_id", hm.statisticsHandler.GetAchievements)
			statistics.GET("/achievements/:user_id/progress", hm.statisticsHandler.GetAchievementProgress)
		}

		// Teacher cohort routes
		teacher := v1.Group("/teacher")
		{
			teacher.GET("/groups/performance", hm.teacherHandler.GetGroupPerformance)
			teacher.POST("/groups/performance", hm.teacherHandler.QueryGroupPerformance)
			teacher.GET("/groups/performance/export", hm.teacherHandler.ExportGroupPerformance)
			teacher.GET("/students/:student_id", hm.teacherHandler.GetStudentDetail)
			teacher.GET("/students/:student_id/report/export", hm.teacherHandler.ExportStudentReport)
		}

		// Admin routes
		admin := v1.Group("/admin", AdminMiddleware())
		{
			admin.GET("/dashboard", hm.adminStatsHandler.GetDashboard)
			admin.GET("/growth", hm.adminStatsHandler.GetUserGrowth)
			admin.GET("/tasks/:task_id/stats", hm.adminStatsHandler.GetTaskStats)
		}
	}
}

// AdminMiddleware - placeholder for admin authorization middleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// TODO: enforce the admin role once the auth gateway forwards claims
		c.Next()
	}
}
