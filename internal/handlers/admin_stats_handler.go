package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/learning-analytics-service/internal/services"
	"github.com/SAP-F-2025/learning-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type AdminStatsHandler struct {
	BaseHandler
	dashboardService services.DashboardService
	taskStatsService services.TaskStatsService
}

func NewAdminStatsHandler(
	dashboardService services.DashboardService,
	taskStatsService services.TaskStatsService,
	logger utils.Logger,
) *AdminStatsHandler {
	return &AdminStatsHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		taskStatsService: taskStatsService,
	}
}

// GetDashboard returns platform-wide totals for the admin overview
// @Summary Get dashboard stats
// @Tags admin
// @Produce json
// @Success 200 {object} services.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /admin/dashboard [get]
func (h *AdminStatsHandler) GetDashboard(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetUserGrowth returns monthly registration growth
// @Summary Get user growth
// @Tags admin
// @Produce json
// @Param months query int false "Trailing months to report (default 6)"
// @Success 200 {array} services.GrowthPoint
// @Failure 400 {object} ErrorResponse
// @Router /admin/growth [get]
func (h *AdminStatsHandler) GetUserGrowth(c *gin.Context) {
	months := 6
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 60 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid months",
				Details: "must be between 1 and 60",
			})
			return
		}
		months = parsed
	}

	points, err := h.dashboardService.GetUserGrowth(c.Request.Context(), months)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// GetTaskStats returns the aggregate difficulty and mistake profile of a task
// @Summary Get task stats
// @Tags admin
// @Produce json
// @Param task_id path uint true "Task ID"
// @Success 200 {object} services.TaskStatsReport
// @Failure 422 {object} ErrorResponse
// @Router /admin/tasks/{task_id}/stats [get]
func (h *AdminStatsHandler) GetTaskStats(c *gin.Context) {
	taskID := h.parseIDParam(c, "task_id")
	if taskID == 0 {
		return
	}

	report, err := h.taskStatsService.GetTaskStats(c.Request.Context(), taskID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
