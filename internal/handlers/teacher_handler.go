package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/services"
	"github.com/SAP-F-2025/learning-analytics-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type TeacherHandler struct {
	BaseHandler
	teacherService services.TeacherService
	exportService  services.ExportService
	validator      *utils.Validator
}

func NewTeacherHandler(
	teacherService services.TeacherService,
	exportService services.ExportService,
	validator *utils.Validator,
	logger utils.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:    NewBaseHandler(logger),
		teacherService: teacherService,
		exportService:  exportService,
		validator:      validator,
	}
}

// GroupPerformanceRequest is the POST body variant of the group rollup query
type GroupPerformanceRequest struct {
	GroupIDs []uint `json:"group_ids" validate:"required,min=1,dive,gt=0"`
}

// GetGroupPerformance returns the cohort rollup for the requested groups
// @Summary Get group performance
// @Tags teacher
// @Produce json
// @Param group_ids query string true "Comma-separated group IDs"
// @Success 200 {object} services.GroupPerformanceReport
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/groups/performance [get]
func (h *TeacherHandler) GetGroupPerformance(c *gin.Context) {
	groupIDs, ok := h.parseGroupIDs(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Getting group performance", "group_ids", groupIDs)

	report, err := h.teacherService.GetGroupPerformance(c.Request.Context(), groupIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// QueryGroupPerformance returns the cohort rollup for groups given in a body
// @Summary Query group performance
// @Tags teacher
// @Accept json
// @Produce json
// @Param request body GroupPerformanceRequest true "Group selection"
// @Success 200 {object} services.GroupPerformanceReport
// @Failure 400 {object} ErrorResponse
// @Router /teacher/groups/performance [post]
func (h *TeacherHandler) QueryGroupPerformance(c *gin.Context) {
	var req GroupPerformanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		h.handleServiceError(c, err)
		return
	}

	report, err := h.teacherService.GetGroupPerformance(c.Request.Context(), req.GroupIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStudentDetail returns the drill-down report for one student
// @Summary Get student detail
// @Tags teacher
// @Produce json
// @Param student_id path uint true "Student ID"
// @Success 200 {object} services.StudentDetailReport
// @Failure 404 {object} ErrorResponse
// @Router /teacher/students/{student_id} [get]
func (h *TeacherHandler) GetStudentDetail(c *gin.Context) {
	studentID := h.parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}

	h.LogRequest(c, "Getting student detail", "student_id", studentID)

	report, err := h.teacherService.GetStudentDetail(c.Request.Context(), studentID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportGroupPerformance streams the group rollup as a spreadsheet download
// @Summary Export group performance
// @Tags teacher
// @Produce application/octet-stream
// @Param group_ids query string true "Comma-separated group IDs"
// @Param format query string false "csv or xlsx (default xlsx)"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Router /teacher/groups/performance/export [get]
func (h *TeacherHandler) ExportGroupPerformance(c *gin.Context) {
	groupIDs, ok := h.parseGroupIDs(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	stamp := time.Now().Format("2006-01-02")

	var (
		payload     []byte
		contentType string
		filename    string
		err         error
	)
	switch format {
	case "csv":
		payload, err = h.exportService.ExportGroupPerformanceToCSV(c.Request.Context(), groupIDs)
		contentType = "text/csv"
		filename = fmt.Sprintf("group-performance-%s.csv", stamp)
	case "xlsx":
		payload, err = h.exportService.ExportGroupPerformanceToExcel(c.Request.Context(), groupIDs)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = fmt.Sprintf("group-performance-%s.xlsx", stamp)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid format",
			Details: "must be csv or xlsx",
		})
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}

// ExportStudentReport streams one student's learning report as a workbook
// @Summary Export student report
// @Tags teacher
// @Produce application/octet-stream
// @Param student_id path uint true "Student ID"
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /teacher/students/{student_id}/report/export [get]
func (h *TeacherHandler) ExportStudentReport(c *gin.Context) {
	studentID := h.parseIDParam(c, "student_id")
	if studentID == 0 {
		return
	}
	dateRange, ok := h.parseDateRange(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting student report", "student_id", studentID)

	payload, err := h.exportService.ExportLearningReportToExcel(c.Request.Context(), studentID, dateRange)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("learning-report-%d-%s.xlsx", studentID, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", payload)
}
