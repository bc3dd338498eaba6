package services

import (
	"context"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/learning-analytics-service/internal/errors"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func answerFor(testID uint, correct bool, createdAt time.Time) *models.AnswerRecord {
	return &models.AnswerRecord{TestID: testID, IsCorrect: correct, CreatedAt: createdAt}
}

func TestAccumulateTestStats(t *testing.T) {
	base := day(2024, time.March, 1)

	t.Run("empty input yields empty stats", func(t *testing.T) {
		stats, err := AccumulateTestStats(nil)
		assert.NoError(t, err)
		assert.Empty(t, stats)
	})

	t.Run("keeps first-seen test order", func(t *testing.T) {
		answers := []*models.AnswerRecord{
			answerFor(3, true, base),
			answerFor(1, false, base.Add(time.Hour)),
			answerFor(3, true, base.Add(2*time.Hour)),
			answerFor(2, true, base.Add(3*time.Hour)),
		}
		stats, err := AccumulateTestStats(answers)
		assert.NoError(t, err)
		assert.Len(t, stats, 3)
		assert.Equal(t, uint(3), stats[0].TestID)
		assert.Equal(t, uint(1), stats[1].TestID)
		assert.Equal(t, uint(2), stats[2].TestID)
	})

	t.Run("tracks attempts, scores and last attempt", func(t *testing.T) {
		answers := []*models.AnswerRecord{
			answerFor(1, true, base),
			answerFor(1, false, base.Add(time.Hour)),
			answerFor(1, true, base.Add(2*time.Hour)),
		}
		stats, err := AccumulateTestStats(answers)
		assert.NoError(t, err)
		assert.Len(t, stats, 1)

		s := stats[0]
		assert.Equal(t, 3, s.TotalAttempts)
		assert.Equal(t, 2, s.CorrectAnswers)
		assert.Equal(t, 67, s.AverageScore)
		// Running max: 100 after first correct answer.
		assert.Equal(t, 100, s.BestScore)
		assert.Equal(t, base.Add(2*time.Hour), *s.LastAttemptAt)
	})

	t.Run("incremental result matches batch computation", func(t *testing.T) {
		answers := []*models.AnswerRecord{
			answerFor(1, true, base),
			answerFor(2, false, base.Add(time.Hour)),
			answerFor(1, false, base.Add(2*time.Hour)),
			answerFor(2, true, base.Add(3*time.Hour)),
			answerFor(1, true, base.Add(4*time.Hour)),
		}
		stats, err := AccumulateTestStats(answers)
		assert.NoError(t, err)

		for _, s := range stats {
			correct, total := 0, 0
			var last time.Time
			for _, answer := range answers {
				if answer.TestID != s.TestID {
					continue
				}
				total++
				if answer.IsCorrect {
					correct++
				}
				if answer.CreatedAt.After(last) {
					last = answer.CreatedAt
				}
			}
			assert.Equal(t, total, s.TotalAttempts)
			assert.Equal(t, correct, s.CorrectAnswers)
			assert.Equal(t, int(math.Round(float64(correct)/float64(total)*100)), s.AverageScore)
			assert.Equal(t, last, *s.LastAttemptAt)
		}
	})
}

func TestTestStatsService_GetTestStats(t *testing.T) {
	ctx := context.Background()
	base := day(2024, time.March, 1)

	t.Run("reversed range fails before any fetch", func(t *testing.T) {
		repo := NewMockRepository()
		service := NewTestStatsService(repo, testLogger())

		start := day(2024, time.February, 1)
		end := day(2024, time.January, 1)
		_, err := service.GetTestStats(ctx, 1, DateRange{StartDate: &start, EndDate: &end})

		assert.Error(t, err)
		var ve *apperrors.ValidationError
		assert.ErrorAs(t, err, &ve)
		repo.answer.AssertNotCalled(t, "GetByUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("resolves test names", func(t *testing.T) {
		repo := NewMockRepository()
		answers := []*models.AnswerRecord{
			answerFor(7, true, base),
			answerFor(7, false, base.Add(time.Hour)),
		}
		repo.answer.On("GetByUser", mock.Anything, uint(1), mock.Anything).Return(answers, nil)
		repo.catalog.On("GetTestNames", mock.Anything, []uint{7}).Return(map[uint]string{7: "Algebra Basics"}, nil)

		service := NewTestStatsService(repo, testLogger())
		report, err := service.GetTestStats(ctx, 1, DateRange{})

		assert.NoError(t, err)
		assert.Len(t, report.Tests, 1)
		assert.Equal(t, "Algebra Basics", report.Tests[0].TestName)
		assert.Equal(t, 50, report.Tests[0].AverageScore)
	})
}
