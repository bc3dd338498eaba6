package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

func taskAnswer(userID uint, correct bool, seconds int, payload string) *models.AnswerRecord {
	return &models.AnswerRecord{
		UserID:                userID,
		TaskID:                1,
		IsCorrect:             correct,
		CompletionTimeSeconds: seconds,
		Answer:                datatypes.JSON([]byte(payload)),
	}
}

func TestTaskStatsService_GetTaskStats(t *testing.T) {
	ctx := context.Background()

	t.Run("no answers yields an empty report", func(t *testing.T) {
		repo := NewMockRepository()
		repo.answer.On("GetByTask", mock.Anything, uint(1)).Return([]*models.AnswerRecord{}, nil)

		service := NewTaskStatsService(repo, testLogger())
		report, err := service.GetTaskStats(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, 0, report.TotalAttempts)
		assert.Empty(t, report.CommonMistakes)
	})

	t.Run("aggregates attempts, students and mistakes", func(t *testing.T) {
		repo := NewMockRepository()
		answers := []*models.AnswerRecord{
			taskAnswer(1, true, 30, `{"choice":"a"}`),
			taskAnswer(1, false, 40, `{"choice":"b"}`),
			taskAnswer(2, false, 50, `{"choice":"b"}`),
			taskAnswer(3, false, 60, `{"choice":"c"}`),
			taskAnswer(3, true, 20, `{"choice":"a"}`),
		}
		repo.answer.On("GetByTask", mock.Anything, uint(1)).Return(answers, nil)

		service := NewTaskStatsService(repo, testLogger())
		report, err := service.GetTaskStats(ctx, 1)

		assert.NoError(t, err)
		assert.Equal(t, 5, report.TotalAttempts)
		assert.Equal(t, 3, report.UniqueStudents)
		assert.Equal(t, 40.0, report.SuccessRate)
		assert.Equal(t, 40, report.AverageCompletionTime)
		assert.Equal(t, 4.0, report.DifficultyRating)

		// Wrong payloads ranked by frequency.
		assert.Len(t, report.CommonMistakes, 2)
		assert.Equal(t, `{"choice":"b"}`, report.CommonMistakes[0].Answer)
		assert.Equal(t, 2, report.CommonMistakes[0].Count)

		total := report.TimeDistribution.Fast + report.TimeDistribution.Average + report.TimeDistribution.Slow
		assert.Equal(t, len(answers), total)
	})
}

func TestRankCommonMistakes(t *testing.T) {
	answers := []*models.AnswerRecord{
		taskAnswer(1, false, 10, `"x"`),
		taskAnswer(2, false, 10, `"y"`),
		taskAnswer(3, false, 10, `"x"`),
		taskAnswer(4, false, 10, `"z"`),
		taskAnswer(5, true, 10, `"w"`),
	}

	mistakes := rankCommonMistakes(answers, 2)
	assert.Len(t, mistakes, 2)
	assert.Equal(t, `"x"`, mistakes[0].Answer)
	// Ties keep first appearance: y before z.
	assert.Equal(t, `"y"`, mistakes[1].Answer)
}

func TestWindowDayCount(t *testing.T) {
	start := day(2024, time.March, 1)
	assert.Equal(t, 7, windowDayCount(start, start.AddDate(0, 0, 7)))
	assert.Equal(t, 1, windowDayCount(start, start))
	assert.Equal(t, 1, windowDayCount(start, start.Add(2*time.Hour)))
}
