package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/cache"
	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// EngagementService derives composite engagement scores for one student
type EngagementService interface {
	GetEngagementMetrics(ctx context.Context, userID uint, dateRange DateRange) (*EngagementReport, error)
}

type engagementService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	cfg    config.AnalyticsConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewEngagementService(repo repositories.Repository, cacheService cache.CacheService, cfg config.AnalyticsConfig, logger *slog.Logger) EngagementService {
	return &engagementService{
		repo:   repo,
		cache:  cacheService,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type ReportPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type EngagementScores struct {
	ParticipationRate int `json:"participation_rate"`
	CompletionRate    int `json:"completion_rate"`
	InteractionScore  int `json:"interaction_score"`
	ConsistencyScore  int `json:"consistency_score"`
}

type EngagementDetails struct {
	TotalSessions        int        `json:"total_sessions"`
	AverageSessionLength int        `json:"average_session_length_seconds"`
	TotalInteractions    int        `json:"total_interactions"`
	LastEngagement       *time.Time `json:"last_engagement"`
}

type EngagementTrends struct {
	WeeklyProgress []int `json:"weekly_progress"`
	DailyActivity  []int `json:"daily_activity"`
}

type EngagementReport struct {
	UserID      uint              `json:"user_id"`
	Period      ReportPeriod      `json:"period"`
	Metrics     EngagementScores  `json:"metrics"`
	Details     EngagementDetails `json:"details"`
	Trends      EngagementTrends  `json:"trends"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *engagementService) GetEngagementMetrics(ctx context.Context, userID uint, dateRange DateRange) (*EngagementReport, error) {
	// Window validation happens before any fetch.
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	start, end := dateRange.Resolve(s.now(), s.cfg.DefaultWindowDays)

	cacheKey := fmt.Sprintf("engagement:%d:%d:%d", userID, start.Unix(), end.Unix())
	var cached EngagementReport
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("engagement cache read failed", "user_id", userID, "error", err)
	}

	activityFilters := repositories.ActivityFilters{DateFrom: &start, DateTo: &end}
	activities, err := s.repo.Activity().GetByUser(ctx, userID, activityFilters)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity records: %w", err)
	}

	progress, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}

	report, err := s.buildReport(userID, activities, progress, start, end)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.cfg.CacheTTLSeconds) * time.Second
	if err := s.cache.Set(ctx, cacheKey, report, ttl); err != nil {
		s.logger.Warn("engagement cache write failed", "user_id", userID, "error", err)
	}

	return report, nil
}

func (s *engagementService) buildReport(userID uint, activities []*models.ActivityRecord, progress []*models.ProgressRecord, start, end time.Time) (*EngagementReport, error) {
	windowDays := windowDayCount(start, end)

	participation, err := ParticipationRate(activities, windowDays)
	if err != nil {
		return nil, err
	}

	report := &EngagementReport{
		UserID: userID,
		Period: ReportPeriod{Start: start, End: end},
		Metrics: EngagementScores{
			ParticipationRate: participation,
			CompletionRate:    CompletionRate(progress),
			InteractionScore:  InteractionScore(activities, s.cfg),
			ConsistencyScore:  ConsistencyScore(activities),
		},
		Details: buildEngagementDetails(activities),
		Trends: EngagementTrends{
			WeeklyProgress: WeeklyTrend(activities, start, end),
			DailyActivity:  DailyTrend(activities, start, end),
		},
		GeneratedAt: s.now(),
	}

	return report, nil
}

func buildEngagementDetails(activities []*models.ActivityRecord) EngagementDetails {
	details := EngagementDetails{
		TotalSessions:     len(activities),
		TotalInteractions: len(activities),
	}
	if len(activities) == 0 {
		return details
	}

	var totalDuration int
	var last time.Time
	for _, activity := range activities {
		totalDuration += activity.DurationSeconds
		if activity.Timestamp.After(last) {
			last = activity.Timestamp
		}
	}

	details.AverageSessionLength = int(math.Round(float64(totalDuration) / float64(len(activities))))
	details.LastEngagement = &last
	return details
}

// windowDayCount counts the calendar days covered by [start, end], never
// less than one.
func windowDayCount(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
