package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	apperrors "github.com/SAP-F-2025/learning-analytics-service/internal/errors"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// TestStatsService aggregates submitted answers into per-test statistics.
type TestStatsService interface {
	GetTestStats(ctx context.Context, userID uint, dateRange DateRange) (*TestStatsReport, error)
}

type testStatsService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewTestStatsService(repo repositories.Repository, logger *slog.Logger) TestStatsService {
	return &testStatsService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type TestStats struct {
	TestID         uint       `json:"test_id"`
	TestName       string     `json:"test_name"`
	TotalAttempts  int        `json:"total_attempts"`
	CorrectAnswers int        `json:"correct_answers"`
	AverageScore   int        `json:"average_score"`
	BestScore      int        `json:"best_score"`
	LastAttemptAt  *time.Time `json:"last_attempt_at"`
}

type TestStatsReport struct {
	UserID      uint        `json:"user_id"`
	Tests       []TestStats `json:"tests"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *testStatsService) GetTestStats(ctx context.Context, userID uint, dateRange DateRange) (*TestStatsReport, error) {
	if err := dateRange.Validate(); err != nil {
		return nil, err
	}

	filters := repositories.AnswerFilters{
		DateFrom: dateRange.StartDate,
		DateTo:   dateRange.EndDate,
	}
	answers, err := s.repo.Answer().GetByUser(ctx, userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer records: %w", err)
	}

	tests, err := AccumulateTestStats(answers)
	if err != nil {
		return nil, err
	}

	testIDs := make([]uint, len(tests))
	for i, test := range tests {
		testIDs[i] = test.TestID
	}
	names, err := s.repo.Catalog().GetTestNames(ctx, testIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve test names: %w", err)
	}
	for i := range tests {
		tests[i].TestName = names[tests[i].TestID]
	}

	return &TestStatsReport{
		UserID:      userID,
		Tests:       tests,
		GeneratedAt: s.now(),
	}, nil
}

// AccumulateTestStats folds answers one at a time into per-test aggregates,
// returned in first-seen order. The correct <= attempts invariant is
// re-checked after every increment; a violation aborts the whole computation.
func AccumulateTestStats(answers []*models.AnswerRecord) ([]TestStats, error) {
	index := make(map[uint]int)
	var tests []TestStats

	for _, answer := range answers {
		i, seen := index[answer.TestID]
		if !seen {
			i = len(tests)
			index[answer.TestID] = i
			tests = append(tests, TestStats{TestID: answer.TestID})
		}

		stats := &tests[i]
		stats.TotalAttempts++
		if answer.IsCorrect {
			stats.CorrectAnswers++
		}
		if stats.CorrectAnswers > stats.TotalAttempts {
			return nil, apperrors.NewDataIntegrityError("correct_within_total", "correct answers cannot exceed total attempts", stats.CorrectAnswers)
		}

		stats.AverageScore = int(math.Round(float64(stats.CorrectAnswers) / float64(stats.TotalAttempts) * 100))
		if stats.AverageScore > stats.BestScore {
			stats.BestScore = stats.AverageScore
		}
		if stats.LastAttemptAt == nil || answer.CreatedAt.After(*stats.LastAttemptAt) {
			ts := answer.CreatedAt
			stats.LastAttemptAt = &ts
		}
	}

	if tests == nil {
		tests = []TestStats{}
	}
	return tests, nil
}
