package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of analytics events
type EventType string

const (
	// Report events
	EventReportGenerated EventType = "report.generated"

	// Recommendation events
	EventRecommendationsGenerated EventType = "recommendations.generated"
)

// AnalyticsEvent is the base event structure for all analytics events
type AnalyticsEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Report event payloads

type ReportGeneratedEvent struct {
	UserID              uint      `json:"user_id"`
	PeriodStart         time.Time `json:"period_start"`
	PeriodEnd           time.Time `json:"period_end"`
	CompletedCourses    int       `json:"completed_courses"`
	RecommendationCount int       `json:"recommendation_count"`
	GeneratedAt         time.Time `json:"generated_at"`
}

type RecommendationsGeneratedEvent struct {
	UserID       uint      `json:"user_id"`
	Count        int       `json:"count"`
	HighPriority int       `json:"high_priority"`
	GeneratedAt  time.Time `json:"generated_at"`
}

// Event factory functions

func NewReportGeneratedEvent(userID uint, periodStart, periodEnd time.Time, completedCourses, recommendationCount int) *AnalyticsEvent {
	return &AnalyticsEvent{
		ID:        generateEventID(),
		Type:      EventReportGenerated,
		Timestamp: time.Now(),
		Source:    "learning-analytics-service",
		Version:   "1.0",
		Data: ReportGeneratedEvent{
			UserID:              userID,
			PeriodStart:         periodStart,
			PeriodEnd:           periodEnd,
			CompletedCourses:    completedCourses,
			RecommendationCount: recommendationCount,
			GeneratedAt:         time.Now(),
		},
	}
}

func NewRecommendationsGeneratedEvent(userID uint, count, highPriority int) *AnalyticsEvent {
	return &AnalyticsEvent{
		ID:        generateEventID(),
		Type:      EventRecommendationsGenerated,
		Timestamp: time.Now(),
		Source:    "learning-analytics-service",
		Version:   "1.0",
		Data: RecommendationsGeneratedEvent{
			UserID:       userID,
			Count:        count,
			HighPriority: highPriority,
			GeneratedAt:  time.Now(),
		},
	}
}

func generateEventID() string {
	return watermill.NewUUID()
}
