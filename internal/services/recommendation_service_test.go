package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRecommendationService_GenerateRecommendations(t *testing.T) {
	ctx := context.Background()
	cfg := testAnalyticsConfig()

	t.Run("only improvement areas with a matching course emit course recommendations", func(t *testing.T) {
		repo := NewMockRepository()
		repo.catalog.On("GetRelatedCourse", ctx, uint(10)).Return(nil, nil)
		repo.catalog.On("GetRelatedCourse", ctx, uint(20)).Return(&models.CourseSummary{ID: 200, Name: "Geometry Refresher"}, nil)
		repo.catalog.On("GetRelatedCourse", ctx, uint(30)).Return(nil, nil)

		analytics := &UserAnalyticsReport{
			ImprovementAreas: []PerformanceArea{
				{TestID: 1, TestName: "Fractions", SubjectID: 10, Score: 40},
				{TestID: 2, TestName: "Angles", SubjectID: 20, Score: 45},
				{TestID: 3, TestName: "Graphs", SubjectID: 30, Score: 50},
			},
			LearningPatterns: LearningPatternStats{CompletionRate: 90},
		}

		service := NewRecommendationService(repo, cfg, testLogger())
		recommendations, err := service.GenerateRecommendations(ctx, 1, analytics, nil)

		assert.NoError(t, err)
		assert.Len(t, recommendations, 1)
		assert.Equal(t, RecommendationCourse, recommendations[0].Kind)
		assert.Equal(t, PriorityHigh, recommendations[0].Priority)
		assert.Equal(t, uint(200), *recommendations[0].CourseID)
	})

	t.Run("weak tests are capped and keep input order", func(t *testing.T) {
		repo := NewMockRepository()

		analytics := &UserAnalyticsReport{
			LearningPatterns: LearningPatternStats{CompletionRate: 90},
		}
		testStats := []TestStats{
			{TestID: 1, TestName: "First Weak", AverageScore: 30},
			{TestID: 2, TestName: "Strong", AverageScore: 95},
			{TestID: 3, TestName: "Second Weak", AverageScore: 50},
			{TestID: 4, TestName: "Third Weak", AverageScore: 10},
		}

		service := NewRecommendationService(repo, cfg, testLogger())
		recommendations, err := service.GenerateRecommendations(ctx, 1, analytics, testStats)

		assert.NoError(t, err)
		assert.Len(t, recommendations, 2)
		assert.Equal(t, RecommendationReview, recommendations[0].Kind)
		assert.Equal(t, uint(1), *recommendations[0].TestID)
		assert.Equal(t, uint(3), *recommendations[1].TestID)
	})

	t.Run("thresholds compare scores against the configured cutoffs", func(t *testing.T) {
		repo := NewMockRepository()

		// Completion exactly at the practice threshold stays quiet; a score
		// exactly at the weakness threshold is not weak.
		analytics := &UserAnalyticsReport{
			LearningPatterns: LearningPatternStats{CompletionRate: int(cfg.PracticeThreshold)},
		}
		testStats := []TestStats{
			{TestID: 1, TestName: "At Threshold", AverageScore: int(cfg.WeaknessThreshold)},
			{TestID: 2, TestName: "Just Below", AverageScore: int(cfg.WeaknessThreshold) - 1},
		}

		service := NewRecommendationService(repo, cfg, testLogger())
		recommendations, err := service.GenerateRecommendations(ctx, 1, analytics, testStats)

		assert.NoError(t, err)
		assert.Len(t, recommendations, 1)
		assert.Equal(t, RecommendationReview, recommendations[0].Kind)
		assert.Equal(t, uint(2), *recommendations[0].TestID)
	})

	t.Run("every recommendation carries a reason", func(t *testing.T) {
		repo := NewMockRepository()
		repo.catalog.On("GetRelatedCourse", ctx, uint(20)).Return(&models.CourseSummary{ID: 200, Name: "Geometry Refresher"}, nil)

		analytics := &UserAnalyticsReport{
			ImprovementAreas: []PerformanceArea{
				{TestID: 2, TestName: "Angles", SubjectID: 20, Score: 45},
			},
			LearningPatterns: LearningPatternStats{CompletionRate: 40},
		}
		testStats := []TestStats{
			{TestID: 5, TestName: "Weak One", AverageScore: 20},
		}

		service := NewRecommendationService(repo, cfg, testLogger())
		recommendations, err := service.GenerateRecommendations(ctx, 1, analytics, testStats)

		assert.NoError(t, err)
		assert.Len(t, recommendations, 3)
		assert.Equal(t, "This area needs improvement based on your test results", recommendations[0].Reason)
		assert.Equal(t, "Your score (20%) indicates room for improvement", recommendations[1].Reason)
		assert.Equal(t, "Consistent practice will help improve your completion rate", recommendations[2].Reason)
	})

	t.Run("low completion rate adds one practice nudge", func(t *testing.T) {
		repo := NewMockRepository()

		analytics := &UserAnalyticsReport{
			LearningPatterns: LearningPatternStats{CompletionRate: 40},
		}

		service := NewRecommendationService(repo, cfg, testLogger())
		recommendations, err := service.GenerateRecommendations(ctx, 1, analytics, nil)

		assert.NoError(t, err)
		assert.Len(t, recommendations, 1)
		assert.Equal(t, RecommendationPractice, recommendations[0].Kind)
		assert.Equal(t, PriorityMedium, recommendations[0].Priority)
	})

	t.Run("high priority sorts ahead of medium, stable within priority", func(t *testing.T) {
		repo := NewMockRepository()
		repo.catalog.On("GetRelatedCourse", ctx, uint(20)).Return(&models.CourseSummary{ID: 200, Name: "Geometry Refresher"}, nil)

		analytics := &UserAnalyticsReport{
			ImprovementAreas: []PerformanceArea{
				{TestID: 2, TestName: "Angles", SubjectID: 20, Score: 45},
			},
			LearningPatterns: LearningPatternStats{CompletionRate: 40},
		}
		testStats := []TestStats{
			{TestID: 5, TestName: "Weak One", AverageScore: 20},
		}

		service := NewRecommendationService(repo, cfg, testLogger())
		recommendations, err := service.GenerateRecommendations(ctx, 1, analytics, testStats)

		assert.NoError(t, err)
		assert.Len(t, recommendations, 3)
		assert.Equal(t, RecommendationCourse, recommendations[0].Kind)
		assert.Equal(t, RecommendationReview, recommendations[1].Kind)
		assert.Equal(t, RecommendationPractice, recommendations[2].Kind)
	})
}
