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

// AnalyticsService derives per-student behavioral analytics: time-spent
// aggregates, learning-pattern classification and strength/improvement areas
type AnalyticsService interface {
	GetUserAnalytics(ctx context.Context, userID uint) (*UserAnalyticsReport, error)
}

type analyticsService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo repositories.Repository, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type TimeSpentStats struct {
	TotalMinutes             int    `json:"total_minutes"`
	AverageMinutesPerSession int    `json:"average_minutes_per_session"`
	MostActiveHour           int    `json:"most_active_hour"`
	MostActiveDay            string `json:"most_active_day"`
}

type LearningPatternStats struct {
	PreferredLearningTime  string `json:"preferred_learning_time"`
	AverageSessionDuration int    `json:"average_session_duration_seconds"`
	MostEngagedSubjectID   uint   `json:"most_engaged_subject_id"`
	MostEngagedSubjectName string `json:"most_engaged_subject_name"`
	CompletionRate         int    `json:"completion_rate"`
}

// PerformanceArea is one test ranked by success rate, carrying the subject
// it belongs to so the recommendation engine can look up related courses.
type PerformanceArea struct {
	TestID    uint    `json:"test_id"`
	TestName  string  `json:"test_name"`
	SubjectID uint    `json:"subject_id"`
	Score     float64 `json:"score"`
}

type UserAnalyticsReport struct {
	UserID           uint                 `json:"user_id"`
	TimeSpent        TimeSpentStats       `json:"time_spent"`
	LearningPatterns LearningPatternStats `json:"learning_patterns"`
	StrengthAreas    []PerformanceArea    `json:"strength_areas"`
	ImprovementAreas []PerformanceArea    `json:"improvement_areas"`
	GeneratedAt      time.Time            `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *analyticsService) GetUserAnalytics(ctx context.Context, userID uint) (*UserAnalyticsReport, error) {
	activities, err := s.repo.Activity().GetByUser(ctx, userID, repositories.ActivityFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get activity records: %w", err)
	}

	progress, err := s.repo.Progress().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}

	answers, err := s.repo.Answer().GetByUser(ctx, userID, repositories.AnswerFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get answer records: %w", err)
	}

	patterns, err := s.buildLearningPatterns(ctx, activities, progress)
	if err != nil {
		return nil, err
	}

	strengths, improvements, err := s.analyzePerformance(ctx, answers)
	if err != nil {
		return nil, err
	}

	return &UserAnalyticsReport{
		UserID:           userID,
		TimeSpent:        buildTimeSpentStats(activities),
		LearningPatterns: patterns,
		StrengthAreas:    strengths,
		ImprovementAreas: improvements,
		GeneratedAt:      s.now(),
	}, nil
}

func buildTimeSpentStats(activities []*models.ActivityRecord) TimeSpentStats {
	var stats TimeSpentStats
	if len(activities) == 0 {
		return stats
	}

	var totalSeconds int
	hourCounts := make(map[int]int)
	dayCounts := make(map[time.Weekday]int)
	for _, activity := range activities {
		totalSeconds += activity.DurationSeconds
		ts := activity.Timestamp.UTC()
		hourCounts[ts.Hour()]++
		dayCounts[ts.Weekday()]++
	}

	stats.TotalMinutes = totalSeconds / 60
	stats.AverageMinutesPerSession = int(math.Round(float64(totalSeconds) / 60 / float64(len(activities))))
	stats.MostActiveHour = modeHour(hourCounts)
	stats.MostActiveDay = modeWeekday(dayCounts).String()
	return stats
}

// modeHour picks the most frequent hour, preferring the earliest hour on
// ties.
func modeHour(counts map[int]int) int {
	best, bestCount := 0, -1
	for hour := 0; hour < 24; hour++ {
		if counts[hour] > bestCount {
			best, bestCount = hour, counts[hour]
		}
	}
	return best
}

// modeWeekday picks the most frequent weekday, preferring calendar order on
// ties.
func modeWeekday(counts map[time.Weekday]int) time.Weekday {
	best, bestCount := time.Sunday, -1
	for day := time.Sunday; day <= time.Saturday; day++ {
		if counts[day] > bestCount {
			best, bestCount = day, counts[day]
		}
	}
	return best
}

func (s *analyticsService) buildLearningPatterns(ctx context.Context, activities []*models.ActivityRecord, progress []*models.ProgressRecord) (LearningPatternStats, error) {
	patterns := LearningPatternStats{
		PreferredLearningTime: preferredLearningTime(activities),
		CompletionRate:        CompletionRate(progress),
	}
	if len(activities) == 0 {
		return patterns, nil
	}

	var totalSeconds int
	for _, activity := range activities {
		totalSeconds += activity.DurationSeconds
	}
	patterns.AverageSessionDuration = int(math.Round(float64(totalSeconds) / float64(len(activities))))

	subjectID, engaged := mostEngagedSubject(activities)
	if engaged {
		patterns.MostEngagedSubjectID = subjectID

		names, err := s.repo.Catalog().GetSubjectNames(ctx, []uint{subjectID})
		if err != nil {
			return patterns, fmt.Errorf("failed to resolve subject name: %w", err)
		}
		patterns.MostEngagedSubjectName = names[subjectID]
	}

	return patterns, nil
}

// preferredLearningTime classifies the average activity hour into a coarse
// time-of-day label.
func preferredLearningTime(activities []*models.ActivityRecord) string {
	if len(activities) == 0 {
		return ""
	}

	var hourSum int
	for _, activity := range activities {
		hourSum += activity.Timestamp.UTC().Hour()
	}
	avgHour := int(math.Round(float64(hourSum) / float64(len(activities))))

	switch {
	case avgHour < 12:
		return "Morning"
	case avgHour < 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// mostEngagedSubject picks the subject with the most activity records, ties
// broken by first appearance in the stream.
func mostEngagedSubject(activities []*models.ActivityRecord) (uint, bool) {
	counts := make(map[uint]int)
	firstSeen := make(map[uint]int)
	order := 0
	for _, activity := range activities {
		if activity.SubjectID == nil {
			continue
		}
		id := *activity.SubjectID
		if _, seen := firstSeen[id]; !seen {
			firstSeen[id] = order
			order++
		}
		counts[id]++
	}
	if len(counts) == 0 {
		return 0, false
	}

	var best uint
	bestCount := -1
	for id, count := range counts {
		if count > bestCount || (count == bestCount && firstSeen[id] < firstSeen[best]) {
			best, bestCount = id, count
		}
	}
	return best, true
}

// analyzePerformance ranks per-test success rates and keeps the top and
// bottom three as strength and improvement areas.
func (s *analyticsService) analyzePerformance(ctx context.Context, answers []*models.AnswerRecord) ([]PerformanceArea, []PerformanceArea, error) {
	type testTally struct {
		testID  uint
		correct int
		total   int
	}

	index := make(map[uint]int)
	var tallies []*testTally
	for _, answer := range answers {
		i, seen := index[answer.TestID]
		if !seen {
			i = len(tallies)
			index[answer.TestID] = i
			tallies = append(tallies, &testTally{testID: answer.TestID})
		}
		tallies[i].total++
		if answer.IsCorrect {
			tallies[i].correct++
		}
	}
	if len(tallies) == 0 {
		return []PerformanceArea{}, []PerformanceArea{}, nil
	}

	areas := make([]PerformanceArea, 0, len(tallies))
	testIDs := make([]uint, 0, len(tallies))
	for _, tally := range tallies {
		rate, err := SuccessRate(tally.correct, tally.total)
		if err != nil {
			return nil, nil, err
		}
		areas = append(areas, PerformanceArea{TestID: tally.testID, Score: rate})
		testIDs = append(testIDs, tally.testID)
	}

	names, err := s.repo.Catalog().GetTestNames(ctx, testIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve test names: %w", err)
	}
	subjects, err := s.repo.Catalog().GetTestSubjects(ctx, testIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve test subjects: %w", err)
	}
	for i := range areas {
		areas[i].TestName = names[areas[i].TestID]
		areas[i].SubjectID = subjects[areas[i].TestID]
	}

	// Stable sort keeps input order among equal scores.
	sort.SliceStable(areas, func(i, j int) bool { return areas[i].Score > areas[j].Score })

	strengths := areas[:min(3, len(areas))]
	improvements := areas[max(0, len(areas)-3):]
	return strengths, improvements, nil
}
