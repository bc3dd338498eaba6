package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// streakAchievementDays is the run of consecutive active days that earns the
// streak milestone.
const streakAchievementDays = 7

// AchievementService lists earned milestones and derives how far along the
// student is toward the unearned ones. Progress is computed from the read
// models, never stored.
type AchievementService interface {
	GetUserAchievements(ctx context.Context, userID uint) ([]*models.Achievement, error)
	GetAchievementProgress(ctx context.Context, userID uint) ([]AchievementProgress, error)
}

type achievementsService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewAchievementService(repo repositories.Repository, logger *slog.Logger) AchievementService {
	return &achievementsService{
		repo:   repo,
		logger: logger,
	}
}

// ===== DATA STRUCTURES =====

type AchievementProgress struct {
	Type       models.AchievementType `json:"type"`
	Current    float64                `json:"current"`
	Required   float64                `json:"required"`
	Percentage float64                `json:"percentage"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *achievementsService) GetUserAchievements(ctx context.Context, userID uint) ([]*models.Achievement, error) {
	achievements, err := s.repo.Achievement().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	return achievements, nil
}

func (s *achievementsService) GetAchievementProgress(ctx context.Context, userID uint) ([]AchievementProgress, error) {
	progress := []AchievementProgress{}

	courseProgress, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}
	if len(courseProgress) > 0 {
		total := 0.0
		for _, record := range courseProgress {
			total += record.ProgressPercentage
		}
		avg := total / float64(len(courseProgress))
		progress = append(progress, AchievementProgress{
			Type:       models.AchievementCourseCompletion,
			Current:    avg,
			Required:   100,
			Percentage: avg,
		})
	}

	dates, err := s.repo.Activity().GetActivityDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity dates: %w", err)
	}
	if len(dates) > 0 {
		streak := float64(CurrentStreak(dates))
		progress = append(progress, AchievementProgress{
			Type:       models.AchievementStreak,
			Current:    streak,
			Required:   streakAchievementDays,
			Percentage: math.Min(100, 100*streak/streakAchievementDays),
		})
	}

	s.logger.Debug("achievement progress derived", "user_id", userID, "entries", len(progress))
	return progress, nil
}
