package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// TaskStatsService aggregates all submitted answers for one task, giving
// teachers and admins a difficulty and mistake profile.
type TaskStatsService interface {
	GetTaskStats(ctx context.Context, taskID uint) (*TaskStatsReport, error)
}

type taskStatsService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewTaskStatsService(repo repositories.Repository, logger *slog.Logger) TaskStatsService {
	return &taskStatsService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type CommonMistake struct {
	Answer string `json:"answer"`
	Count  int    `json:"count"`
}

type TaskStatsReport struct {
	TaskID                uint                    `json:"task_id"`
	TotalAttempts         int                     `json:"total_attempts"`
	UniqueStudents        int                     `json:"unique_students"`
	SuccessRate           float64                 `json:"success_rate"`
	AverageCompletionTime int                     `json:"average_completion_time_seconds"`
	DifficultyRating      float64                 `json:"difficulty_rating"`
	CommonMistakes        []CommonMistake         `json:"common_mistakes"`
	TimeDistribution      TimeDistributionBuckets `json:"time_distribution"`
	GeneratedAt           time.Time               `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *taskStatsService) GetTaskStats(ctx context.Context, taskID uint) (*TaskStatsReport, error) {
	answers, err := s.repo.Answer().GetByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer records: %w", err)
	}

	report := &TaskStatsReport{
		TaskID:         taskID,
		TotalAttempts:  len(answers),
		CommonMistakes: []CommonMistake{},
		GeneratedAt:    s.now(),
	}
	if len(answers) == 0 {
		return report, nil
	}

	students := make(map[uint]struct{})
	correct := 0
	totalTime := 0
	times := make([]int, 0, len(answers))
	for _, answer := range answers {
		students[answer.UserID] = struct{}{}
		if answer.IsCorrect {
			correct++
		}
		totalTime += answer.CompletionTimeSeconds
		times = append(times, answer.CompletionTimeSeconds)
	}

	rate, err := SuccessRate(correct, len(answers))
	if err != nil {
		return nil, err
	}

	distribution, err := TimeDistribution(times)
	if err != nil {
		return nil, err
	}

	report.UniqueStudents = len(students)
	report.SuccessRate = rate
	report.AverageCompletionTime = int(math.Round(float64(totalTime) / float64(len(answers))))
	report.DifficultyRating = DifficultyRating(rate)
	report.CommonMistakes = rankCommonMistakes(answers, 5)
	report.TimeDistribution = distribution
	return report, nil
}

// rankCommonMistakes counts identical wrong answer payloads and keeps the
// most frequent ones, ties broken by first appearance.
func rankCommonMistakes(answers []*models.AnswerRecord, limit int) []CommonMistake {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, answer := range answers {
		if answer.IsCorrect || len(answer.Answer) == 0 {
			continue
		}
		payload := string(answer.Answer)
		if _, seen := firstSeen[payload]; !seen {
			firstSeen[payload] = order
			order++
		}
		counts[payload]++
	}

	mistakes := make([]CommonMistake, 0, len(counts))
	for payload, count := range counts {
		mistakes = append(mistakes, CommonMistake{Answer: payload, Count: count})
	}
	sort.Slice(mistakes, func(i, j int) bool {
		if mistakes[i].Count != mistakes[j].Count {
			return mistakes[i].Count > mistakes[j].Count
		}
		return firstSeen[mistakes[i].Answer] < firstSeen[mistakes[j].Answer]
	})

	if len(mistakes) > limit {
		mistakes = mistakes[:limit]
	}
	return mistakes
}
