package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/learning-analytics-service/internal/services"
	"github.com/SAP-F-2025/learning-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	BaseHandler
	engagementService   services.EngagementService
	analyticsService    services.AnalyticsService
	activityService     services.ActivityService
	testStatsService    services.TestStatsService
	progressService     services.ProgressService
	reportService       services.ReportService
	achievementsService services.AchievementService
}

func NewStatisticsHandler(
	engagementService services.EngagementService,
	analyticsService services.AnalyticsService,
	activityService services.ActivityService,
	testStatsService services.TestStatsService,
	progressService services.ProgressService,
	reportService services.ReportService,
	achievementsService services.AchievementService,
	logger utils.Logger,
) *StatisticsHandler {
	return &StatisticsHandler{
		BaseHandler:         NewBaseHandler(logger),
		engagementService:   engagementService,
		analyticsService:    analyticsService,
		activityService:     activityService,
		testStatsService:    testStatsService,
		progressService:     progressService,
		reportService:       reportService,
		achievementsService: achievementsService,
	}
}

// GetEngagement returns the composite engagement report for one student
// @Summary Get engagement metrics
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Param start_date query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end_date query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} services.EngagementReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/engagement/{user_id} [get]
func (h *StatisticsHandler) GetEngagement(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}
	dateRange, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting engagement metrics", "user_id", userID)

	report, err := h.engagementService.GetEngagementMetrics(c.Request.Context(), userID, dateRange)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetAnalytics returns behavioral analytics for one student
// @Summary Get user analytics
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Success 200 {object} services.UserAnalyticsReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/analytics/{user_id} [get]
func (h *StatisticsHandler) GetAnalytics(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	h.LogRequest(c, "Getting user analytics", "user_id", userID)

	report, err := h.analyticsService.GetUserAnalytics(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetActivity returns streaks and period rollups for one student
// @Summary Get activity summary
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Success 200 {object} services.ActivitySummary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/activity/{user_id} [get]
func (h *StatisticsHandler) GetActivity(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	summary, err := h.activityService.GetActivitySummary(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetStreaks returns only the streak counters for one student
// @Summary Get activity streaks
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Success 200 {object} services.StreakSummary
// @Router /statistics/streaks/{user_id} [get]
func (h *StatisticsHandler) GetStreaks(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	summary, err := h.activityService.GetStreaks(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTestStats returns per-test aggregates for one student
// @Summary Get test statistics
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end"
// @Success 200 {object} services.TestStatsReport
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /statistics/tests/{user_id} [get]
func (h *StatisticsHandler) GetTestStats(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}
	dateRange, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	report, err := h.testStatsService.GetTestStats(c.Request.Context(), userID, dateRange)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCourseProgress returns one student's progress in one course
// @Summary Get course progress
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Param course_id path uint true "Course ID"
// @Success 200 {object} services.CourseProgressReport
// @Failure 404 {object} ErrorResponse
// @Router /statistics/progress/{user_id}/course/{course_id} [get]
func (h *StatisticsHandler) GetCourseProgress(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}
	courseID := h.parseIDParam(c, "course_id")
	if courseID == 0 {
		return
	}

	report, err := h.progressService.GetCourseProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSubjectProgress returns one student's progress across a subject
// @Summary Get subject progress
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Param subject_id path uint true "Subject ID"
// @Success 200 {object} services.SubjectProgressReport
// @Router /statistics/progress/{user_id}/subject/{subject_id} [get]
func (h *StatisticsHandler) GetSubjectProgress(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}
	subjectID := h.parseIDParam(c, "subject_id")
	if subjectID == 0 {
		return
	}

	report, err := h.progressService.GetSubjectProgress(c.Request.Context(), userID, subjectID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetLearningReport returns the full composed report with recommendations
// @Summary Get learning report
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end"
// @Success 200 {object} services.LearningReport
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /statistics/report/{user_id} [get]
func (h *StatisticsHandler) GetLearningReport(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}
	dateRange, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Generating learning report", "user_id", userID)

	report, err := h.reportService.GenerateLearningReport(c.Request.Context(), userID, dateRange)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRecommendations returns only the recommendation list for one student
// @Summary Get recommendations
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end"
// @Success 200 {array} services.Recommendation
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /statistics/recommendations/{user_id} [get]
func (h *StatisticsHandler) GetRecommendations(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}
	dateRange, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Generating recommendations", "user_id", userID)

	recommendations, err := h.reportService.GetRecommendations(c.Request.Context(), userID, dateRange)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, recommendations)
}

// GetAchievements returns the earned milestones for one student, newest first
// @Summary Get achievements
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Success 200 {array} models.Achievement
// @Failure 400 {object} ErrorResponse
// @Router /statistics/achievements/{user_id} [get]
func (h *StatisticsHandler) GetAchievements(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	h.LogRequest(c, "Getting achievements", "user_id", userID)

	achievements, err := h.achievementsService.GetUserAchievements(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, achievements)
}

// GetAchievementProgress returns progress toward unearned milestones
// @Summary Get achievement progress
// @Tags statistics
// @Produce json
// @Param user_id path uint true "User ID"
// @Success 200 {array} services.AchievementProgress
// @Failure 400 {object} ErrorResponse
// @Router /statistics/achievements/{user_id}/progress [get]
func (h *StatisticsHandler) GetAchievementProgress(c *gin.Context) {
	userID := h.parseIDParam(c, "user_id")
	if userID == 0 {
		return
	}

	h.LogRequest(c, "Getting achievement progress", "user_id", userID)

	progress, err := h.achievementsService.GetAchievementProgress(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
