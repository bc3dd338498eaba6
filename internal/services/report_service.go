package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	"github.com/SAP-F-2025/learning-analytics-service/internal/events"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// ReportService composes the full learning report for one student and
// notifies downstream consumers that a fresh report exists.
type ReportService interface {
	GenerateLearningReport(ctx context.Context, userID uint, dateRange DateRange) (*LearningReport, error)
	GetRecommendations(ctx context.Context, userID uint, dateRange DateRange) ([]Recommendation, error)
}

type reportService struct {
	repo            repositories.Repository
	analytics       AnalyticsService
	testStats       TestStatsService
	activity        ActivityService
	recommendations RecommendationService
	publisher       events.EventPublisher
	cfg             config.AnalyticsConfig
	logger          *slog.Logger
	ops             *ServiceLogger
	now             func() time.Time
}

func NewReportService(
	repo repositories.Repository,
	analytics AnalyticsService,
	testStats TestStatsService,
	activity ActivityService,
	recommendations RecommendationService,
	publisher events.EventPublisher,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		repo:            repo,
		analytics:       analytics,
		testStats:       testStats,
		activity:        activity,
		recommendations: recommendations,
		publisher:       publisher,
		cfg:             cfg,
		logger:          logger,
		ops:             NewServiceLogger(logger, LogConfig{Service: "learning-analytics", Component: "report"}),
		now:             time.Now,
	}
}

// ===== DATA STRUCTURES =====

type LearningReport struct {
	UserID           uint                 `json:"user_id"`
	Period           ReportPeriod         `json:"period"`
	Analytics        *UserAnalyticsReport `json:"analytics"`
	TestStats        []TestStats          `json:"test_stats"`
	Activity         *ActivitySummary     `json:"activity"`
	CompletedCourses int                  `json:"completed_courses"`
	Recommendations  []Recommendation     `json:"recommendations"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *reportService) GenerateLearningReport(ctx context.Context, userID uint, dateRange DateRange) (report *LearningReport, err error) {
	started := s.now()
	defer func() {
		s.ops.LogOperation(ctx, "generate_learning_report", userID, s.now().Sub(started), err)
	}()

	if err := dateRange.Validate(); err != nil {
		return nil, err
	}
	start, end := dateRange.Resolve(s.now(), s.cfg.DefaultWindowDays)

	analytics, err := s.analytics.GetUserAnalytics(ctx, userID)
	if err != nil {
		return nil, err
	}

	testStatsReport, err := s.testStats.GetTestStats(ctx, userID, dateRange)
	if err != nil {
		return nil, err
	}

	activitySummary, err := s.activity.GetActivitySummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.repo.Progress().GetCompletedCourses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get completed courses: %w", err)
	}

	recommendations, err := s.recommendations.GenerateRecommendations(ctx, userID, analytics, testStatsReport.Tests)
	if err != nil {
		return nil, err
	}

	report = &LearningReport{
		UserID:           userID,
		Period:           ReportPeriod{Start: start, End: end},
		Analytics:        analytics,
		TestStats:        testStatsReport.Tests,
		Activity:         activitySummary,
		CompletedCourses: len(completed),
		Recommendations:  recommendations,
		GeneratedAt:      s.now(),
	}

	// Report delivery is best effort: a publish failure never fails the
	// request that produced the report.
	event := events.NewReportGeneratedEvent(userID, start, end, report.CompletedCourses, len(recommendations))
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.logger.Warn("report event publish failed", "user_id", userID, "error", err)
	}

	return report, nil
}

// GetRecommendations produces the recommendation list without composing the
// rest of the report.
func (s *reportService) GetRecommendations(ctx context.Context, userID uint, dateRange DateRange) (recommendations []Recommendation, err error) {
	started := s.now()
	defer func() {
		s.ops.LogOperation(ctx, "get_recommendations", userID, s.now().Sub(started), err)
	}()

	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	analytics, err := s.analytics.GetUserAnalytics(ctx, userID)
	if err != nil {
		return nil, err
	}

	testStatsReport, err := s.testStats.GetTestStats(ctx, userID, dateRange)
	if err != nil {
		return nil, err
	}

	recommendations, err = s.recommendations.GenerateRecommendations(ctx, userID, analytics, testStatsReport.Tests)
	if err != nil {
		return nil, err
	}

	highPriority := 0
	for _, rec := range recommendations {
		if rec.Priority == PriorityHigh {
			highPriority++
		}
	}
	event := events.NewRecommendationsGeneratedEvent(userID, len(recommendations), highPriority)
	if err := s.publisher.PublishAnalyticsEvent(ctx, event); err != nil {
		s.logger.Warn("recommendations event publish failed", "user_id", userID, "error", err)
	}

	return recommendations, nil
}
