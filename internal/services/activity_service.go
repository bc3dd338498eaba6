package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// ActivityService summarizes a student's raw activity stream into streaks and
// rolling period rollups.
type ActivityService interface {
	GetActivitySummary(ctx context.Context, userID uint) (*ActivitySummary, error)
	GetStreaks(ctx context.Context, userID uint) (*StreakSummary, error)
}

type activityService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewActivityService(repo repositories.Repository, logger *slog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type StreakSummary struct {
	UserID        uint       `json:"user_id"`
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	LastActiveDay *time.Time `json:"last_active_day"`
}

type ActivitySummary struct {
	UserID      uint           `json:"user_id"`
	Streaks     StreakSummary  `json:"streaks"`
	Daily       ActivityPeriod `json:"daily"`
	Weekly      ActivityPeriod `json:"weekly"`
	Monthly     ActivityPeriod `json:"monthly"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *activityService) GetStreaks(ctx context.Context, userID uint) (*StreakSummary, error) {
	dates, err := s.repo.Activity().GetActivityDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity dates: %w", err)
	}
	return buildStreakSummary(userID, dates), nil
}

func (s *activityService) GetActivitySummary(ctx context.Context, userID uint) (*ActivitySummary, error) {
	dates, err := s.repo.Activity().GetActivityDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity dates: %w", err)
	}

	now := s.now()
	return &ActivitySummary{
		UserID:      userID,
		Streaks:     *buildStreakSummary(userID, dates),
		Daily:       activityPeriod(dates, now.AddDate(0, 0, -1), now),
		Weekly:      activityPeriod(dates, now.AddDate(0, 0, -7), now),
		Monthly:     activityPeriod(dates, now.AddDate(0, -1, 0), now),
		GeneratedAt: now,
	}, nil
}

func buildStreakSummary(userID uint, dates []time.Time) *StreakSummary {
	summary := &StreakSummary{
		UserID:        userID,
		CurrentStreak: CurrentStreak(dates),
		LongestStreak: LongestStreak(dates),
	}

	if days := distinctDaysDescending(dates); len(days) > 0 {
		last := days[0]
		summary.LastActiveDay = &last
	}
	return summary
}
