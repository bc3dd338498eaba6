package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/services"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive numeric path parameter, responding with 400
// and returning 0 when it is missing or malformed.
func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

// parseDateRange reads optional start_date / end_date query parameters in
// RFC 3339 or date-only form. The ok result is false after a 400 response.
func (h *BaseHandler) parseDateRange(c *gin.Context) (services.DateRange, bool) {
	var dateRange services.DateRange

	for _, bound := range []struct {
		name string
		dest **time.Time
	}{
		{"start_date", &dateRange.StartDate},
		{"end_date", &dateRange.EndDate},
	} {
		raw := strings.TrimSpace(c.Query(bound.name))
		if raw == "" {
			continue
		}
		parsed, err := parseTimestamp(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid " + bound.name,
				Details: "must be an RFC 3339 timestamp or YYYY-MM-DD date",
			})
			return dateRange, false
		}
		*bound.dest = &parsed
	}

	return dateRange, true
}

func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// parseGroupIDs reads the comma-separated group_ids query parameter.
func (h *BaseHandler) parseGroupIDs(c *gin.Context) ([]uint, bool) {
	raw := strings.TrimSpace(c.Query("group_ids"))
	if raw == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid group_ids",
			Details: "at least one group id is required",
		})
		return nil, false
	}

	parts := strings.Split(raw, ",")
	groupIDs := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil || id == 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Message: "Invalid group_ids",
				Details: "each group id must be a positive integer",
			})
			return nil, false
		}
		groupIDs = append(groupIDs, uint(id))
	}
	return groupIDs, true
}
