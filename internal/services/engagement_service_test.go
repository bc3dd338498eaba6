package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/cache"
	apperrors "github.com/SAP-F-2025/learning-analytics-service/internal/errors"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEngagementService_GetEngagementMetrics(t *testing.T) {
	ctx := context.Background()
	cfg := testAnalyticsConfig()

	t.Run("reversed range fails before any fetch", func(t *testing.T) {
		repo := NewMockRepository()
		cacheService := new(MockCacheService)
		service := NewEngagementService(repo, cacheService, cfg, testLogger())

		start := day(2024, time.February, 1)
		end := day(2024, time.January, 1)
		_, err := service.GetEngagementMetrics(ctx, 1, DateRange{StartDate: &start, EndDate: &end})

		assert.Error(t, err)
		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
		repo.activity.AssertNotCalled(t, "GetByUser", mock.Anything, mock.Anything, mock.Anything)
		cacheService.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("composes scores from fetched rows", func(t *testing.T) {
		repo := NewMockRepository()
		cacheService := new(MockCacheService)
		cacheService.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(cache.ErrCacheMiss)
		cacheService.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		now := day(2024, time.March, 31)
		activities := []*models.ActivityRecord{
			activityAt(now.AddDate(0, 0, -1), models.ActivityTestAttempt),
			activityAt(now.AddDate(0, 0, -2), models.ActivityLessonView),
			activityAt(now.AddDate(0, 0, -3), models.ActivityLessonView),
		}
		progress := []*models.ProgressRecord{progressAt(50), progressAt(100)}

		repo.activity.On("GetByUser", mock.Anything, uint(1), mock.Anything).Return(activities, nil)
		repo.progress.On("GetByUser", mock.Anything, uint(1)).Return(progress, nil)

		service := NewEngagementService(repo, cacheService, cfg, testLogger()).(*engagementService)
		service.now = func() time.Time { return now }

		report, err := service.GetEngagementMetrics(ctx, 1, DateRange{})

		assert.NoError(t, err)
		assert.Equal(t, uint(1), report.UserID)
		assert.Equal(t, 10, report.Metrics.ParticipationRate)
		assert.Equal(t, 75, report.Metrics.CompletionRate)
		assert.Equal(t, 3, report.Details.TotalSessions)
		assert.NotNil(t, report.Details.LastEngagement)
		assert.Len(t, report.Trends.DailyActivity, 30)
		cacheService.AssertCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cached report is returned without fetching", func(t *testing.T) {
		repo := NewMockRepository()
		cacheService := new(MockCacheService)
		cacheService.On("Get", mock.Anything, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			dest := args.Get(2).(*EngagementReport)
			dest.UserID = 1
			dest.Metrics.ParticipationRate = 42
		}).Return(nil)

		service := NewEngagementService(repo, cacheService, cfg, testLogger())
		report, err := service.GetEngagementMetrics(ctx, 1, DateRange{})

		assert.NoError(t, err)
		assert.Equal(t, 42, report.Metrics.ParticipationRate)
		repo.activity.AssertNotCalled(t, "GetByUser", mock.Anything, mock.Anything, mock.Anything)
	})
}
