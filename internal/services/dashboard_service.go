package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// DashboardService serves the admin overview: platform totals, recent
// activity and registration growth.
type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetUserGrowth(ctx context.Context, months int) ([]GrowthPoint, error)
}

type dashboardService struct {
	repo   repositories.Repository
	cfg    config.AnalyticsConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewDashboardService(repo repositories.Repository, cfg config.AnalyticsConfig, logger *slog.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type DashboardStats struct {
	TotalUsers            int                `json:"total_users"`
	TotalCourses          int                `json:"total_courses"`
	ActiveStudents        int                `json:"active_students"`
	OverallCompletionRate int                `json:"overall_completion_rate"`
	RecentActions         []*models.AuditLog `json:"recent_actions"`
	GeneratedAt           time.Time          `json:"generated_at"`
}

type GrowthPoint struct {
	Month        string `json:"month"`
	NewUsers     int    `json:"new_users"`
	RunningTotal int    `json:"running_total"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	totalUsers, err := s.repo.User().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalCourses, err := s.repo.Catalog().CountCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	since := s.now().AddDate(0, 0, -s.cfg.ActiveStudentDays)
	activeStudents, err := s.repo.Progress().CountActiveUsersSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count active students: %w", err)
	}

	percentages, err := s.repo.Progress().GetAllPercentages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress percentages: %w", err)
	}

	recent, err := s.repo.Audit().GetRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent audit entries: %w", err)
	}

	return &DashboardStats{
		TotalUsers:            totalUsers,
		TotalCourses:          totalCourses,
		ActiveStudents:        activeStudents,
		OverallCompletionRate: meanPercentage(percentages),
		RecentActions:         recent,
		GeneratedAt:           s.now(),
	}, nil
}

func meanPercentage(values []float64) int {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return int(math.Round(sum / float64(len(values))))
}

// GetUserGrowth buckets registrations into the trailing calendar months,
// oldest first.
func (s *dashboardService) GetUserGrowth(ctx context.Context, months int) ([]GrowthPoint, error) {
	if months <= 0 {
		months = 6
	}

	dates, err := s.repo.User().GetRegistrationDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get registration dates: %w", err)
	}

	now := s.now().UTC()
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	points := make([]GrowthPoint, months)
	for i := range points {
		points[i].Month = firstMonth.AddDate(0, i, 0).Format("2006-01")
	}

	carriedOver := 0
	for _, date := range dates {
		d := date.UTC()
		monthStart := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		if monthStart.Before(firstMonth) {
			carriedOver++
			continue
		}
		index := (monthStart.Year()-firstMonth.Year())*12 + int(monthStart.Month()-firstMonth.Month())
		if index >= 0 && index < months {
			points[index].NewUsers++
		}
	}

	running := carriedOver
	for i := range points {
		running += points[i].NewUsers
		points[i].RunningTotal = running
	}
	return points, nil
}
