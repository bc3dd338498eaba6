package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

type RecommendationKind string

const (
	RecommendationCourse   RecommendationKind = "course"
	RecommendationReview   RecommendationKind = "review"
	RecommendationPractice RecommendationKind = "practice"
)

type RecommendationPriority string

const (
	PriorityHigh   RecommendationPriority = "high"
	PriorityMedium RecommendationPriority = "medium"
	PriorityLow    RecommendationPriority = "low"
)

// priorityRank orders high before medium before low for the final sort.
func priorityRank(p RecommendationPriority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// RecommendationService turns a student's analytics and test statistics into
// an ordered list of next-step suggestions. Nothing is persisted; the caller
// owns delivery.
type RecommendationService interface {
	GenerateRecommendations(ctx context.Context, userID uint, analytics *UserAnalyticsReport, testStats []TestStats) ([]Recommendation, error)
}

type recommendationService struct {
	repo   repositories.Repository
	cfg    config.AnalyticsConfig
	logger *slog.Logger
}

func NewRecommendationService(repo repositories.Repository, cfg config.AnalyticsConfig, logger *slog.Logger) RecommendationService {
	return &recommendationService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// ===== DATA STRUCTURES =====

type Recommendation struct {
	Kind        RecommendationKind     `json:"kind" validate:"required"`
	Priority    RecommendationPriority `json:"priority" validate:"required,recommendation_priority"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Reason      string                 `json:"reason"`
	CourseID    *uint                  `json:"course_id,omitempty"`
	TestID      *uint                  `json:"test_id,omitempty"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *recommendationService) GenerateRecommendations(ctx context.Context, userID uint, analytics *UserAnalyticsReport, testStats []TestStats) ([]Recommendation, error) {
	recommendations := []Recommendation{}

	// Rule 1: each improvement area with a related course in the catalog.
	for _, area := range analytics.ImprovementAreas {
		if area.SubjectID == 0 {
			continue
		}
		course, err := s.repo.Catalog().GetRelatedCourse(ctx, area.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up related course: %w", err)
		}
		if course == nil {
			continue
		}
		courseID := course.ID
		recommendations = append(recommendations, Recommendation{
			Kind:        RecommendationCourse,
			Priority:    PriorityHigh,
			Title:       course.Name,
			Description: fmt.Sprintf("Strengthen %s with the course %s", area.TestName, course.Name),
			Reason:      "This area needs improvement based on your test results",
			CourseID:    &courseID,
		})
	}

	// Rule 2: the first few weak tests get a review suggestion.
	reviews := 0
	for _, stats := range testStats {
		if reviews >= s.cfg.ReviewRecommendCap {
			break
		}
		if float64(stats.AverageScore) >= s.cfg.WeaknessThreshold {
			continue
		}
		testID := stats.TestID
		recommendations = append(recommendations, Recommendation{
			Kind:        RecommendationReview,
			Priority:    PriorityMedium,
			Title:       stats.TestName,
			Description: fmt.Sprintf("Review the material for %s and retake the test", stats.TestName),
			Reason:      fmt.Sprintf("Your score (%d%%) indicates room for improvement", stats.AverageScore),
			TestID:      &testID,
		})
		reviews++
	}

	// Rule 3: one generic nudge when overall completion lags.
	if float64(analytics.LearningPatterns.CompletionRate) < s.cfg.PracticeThreshold {
		recommendations = append(recommendations, Recommendation{
			Kind:        RecommendationPractice,
			Priority:    PriorityMedium,
			Title:       "Keep up the practice",
			Description: "Complete more of your enrolled courses to stay on track",
			Reason:      "Consistent practice will help improve your completion rate",
		})
	}

	// Stable sort keeps emission order within the same priority.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return priorityRank(recommendations[i].Priority) < priorityRank(recommendations[j].Priority)
	})

	s.logger.Debug("recommendations generated", "user_id", userID, "count", len(recommendations))
	return recommendations, nil
}
