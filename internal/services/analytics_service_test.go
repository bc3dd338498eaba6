package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func subjectActivity(ts time.Time, subjectID uint) *models.ActivityRecord {
	return &models.ActivityRecord{Kind: models.ActivityLessonView, Timestamp: ts, SubjectID: &subjectID}
}

func TestPreferredLearningTime(t *testing.T) {
	morning := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	afternoon := time.Date(2024, time.March, 1, 14, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 1, 21, 0, 0, 0, time.UTC)

	assert.Equal(t, "", preferredLearningTime(nil))
	assert.Equal(t, "Morning", preferredLearningTime([]*models.ActivityRecord{activityAt(morning, models.ActivityLessonView)}))
	assert.Equal(t, "Afternoon", preferredLearningTime([]*models.ActivityRecord{activityAt(afternoon, models.ActivityLessonView)}))
	assert.Equal(t, "Evening", preferredLearningTime([]*models.ActivityRecord{activityAt(evening, models.ActivityLessonView)}))
}

func TestMostEngagedSubject(t *testing.T) {
	ts := day(2024, time.March, 1)

	t.Run("no subject activity", func(t *testing.T) {
		_, ok := mostEngagedSubject([]*models.ActivityRecord{activityAt(ts, models.ActivityLessonView)})
		assert.False(t, ok)
	})

	t.Run("highest count wins", func(t *testing.T) {
		records := []*models.ActivityRecord{
			subjectActivity(ts, 1),
			subjectActivity(ts, 2),
			subjectActivity(ts, 2),
		}
		id, ok := mostEngagedSubject(records)
		assert.True(t, ok)
		assert.Equal(t, uint(2), id)
	})

	t.Run("ties break by first appearance", func(t *testing.T) {
		records := []*models.ActivityRecord{
			subjectActivity(ts, 5),
			subjectActivity(ts, 3),
			subjectActivity(ts, 3),
			subjectActivity(ts, 5),
		}
		id, ok := mostEngagedSubject(records)
		assert.True(t, ok)
		assert.Equal(t, uint(5), id)
	})
}

func TestAnalyticsService_GetUserAnalytics(t *testing.T) {
	ctx := context.Background()
	base := day(2024, time.March, 1)

	repo := NewMockRepository()
	subjectID := uint(20)
	activities := []*models.ActivityRecord{
		{Kind: models.ActivityLessonView, Timestamp: base, DurationSeconds: 600, SubjectID: &subjectID},
		{Kind: models.ActivityLessonView, Timestamp: base.Add(time.Hour), DurationSeconds: 1200, SubjectID: &subjectID},
	}
	answers := []*models.AnswerRecord{
		answerFor(1, true, base),
		answerFor(1, true, base),
		answerFor(2, false, base),
		answerFor(2, true, base),
		answerFor(3, false, base),
		answerFor(3, false, base),
		answerFor(4, true, base),
	}

	repo.activity.On("GetByUser", mock.Anything, uint(9), mock.Anything).Return(activities, nil)
	repo.progress.On("GetByUser", mock.Anything, uint(9)).Return([]*models.ProgressRecord{progressAt(80)}, nil)
	repo.answer.On("GetByUser", mock.Anything, uint(9), mock.Anything).Return(answers, nil)
	repo.catalog.On("GetSubjectNames", mock.Anything, []uint{20}).Return(map[uint]string{20: "Mathematics"}, nil)
	repo.catalog.On("GetTestNames", mock.Anything, mock.Anything).Return(map[uint]string{1: "One", 2: "Two", 3: "Three", 4: "Four"}, nil)
	repo.catalog.On("GetTestSubjects", mock.Anything, mock.Anything).Return(map[uint]uint{1: 20, 2: 20, 3: 21, 4: 21}, nil)

	now := day(2024, time.March, 15)
	service := NewAnalyticsService(repo, testLogger()).(*analyticsService)
	service.now = func() time.Time { return now }
	report, err := service.GetUserAnalytics(ctx, 9)

	assert.NoError(t, err)
	assert.Equal(t, uint(9), report.UserID)
	assert.Equal(t, now, report.GeneratedAt)
	assert.Equal(t, 30, report.TimeSpent.TotalMinutes)
	assert.Equal(t, 15, report.TimeSpent.AverageMinutesPerSession)
	assert.Equal(t, "Mathematics", report.LearningPatterns.MostEngagedSubjectName)
	assert.Equal(t, 80, report.LearningPatterns.CompletionRate)

	// Tests 1 (100) and 4 (100) lead, test 3 (0) trails.
	assert.Len(t, report.StrengthAreas, 3)
	assert.Equal(t, uint(1), report.StrengthAreas[0].TestID)
	assert.Equal(t, uint(4), report.StrengthAreas[1].TestID)
	assert.Len(t, report.ImprovementAreas, 3)
	assert.Equal(t, uint(3), report.ImprovementAreas[2].TestID)
	assert.Equal(t, 0.0, report.ImprovementAreas[2].Score)
}
