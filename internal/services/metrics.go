package services

import (
	"math"
	"sort"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	apperrors "github.com/SAP-F-2025/learning-analytics-service/internal/errors"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
)

// Metric primitives reduce raw rows (already filtered to one user and an
// optional window) to single scores. They are pure: no I/O, no clock access.
// Empty input yields zero by convention - absence of data is a zero signal,
// not an error. Invariant violations on the data itself raise
// DataIntegrityError.

// DateRange is an optional [start, end] reporting window.
type DateRange struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Validate rejects inverted ranges. Called before any data fetch.
func (r DateRange) Validate() error {
	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return apperrors.NewValidationError("start_date", "cannot be after end date", r.StartDate.Format(time.RFC3339))
	}
	return nil
}

// Resolve materializes the window, defaulting to the trailing windowDays
// ending at now when a bound is missing.
func (r DateRange) Resolve(now time.Time, windowDays int) (time.Time, time.Time) {
	end := now
	if r.EndDate != nil {
		end = *r.EndDate
	}
	start := end.AddDate(0, 0, -windowDays)
	if r.StartDate != nil {
		start = *r.StartDate
	}
	return start, end
}

// dayKey buckets a timestamp into its UTC calendar day. All streak and
// consistency math uses UTC day boundaries.
func dayKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParticipationRate is the percentage of days in the window with at least one
// activity record.
func ParticipationRate(records []*models.ActivityRecord, windowDays int) (int, error) {
	if windowDays <= 0 {
		return 0, apperrors.NewValidationError("window_days", "must be a positive number of days", windowDays)
	}
	if len(records) == 0 {
		return 0, nil
	}

	uniqueDays := make(map[time.Time]struct{})
	for _, record := range records {
		uniqueDays[dayKey(record.Timestamp)] = struct{}{}
	}

	return int(math.Round(float64(len(uniqueDays)) / float64(windowDays) * 100)), nil
}

// CompletionRate is the mean progress percentage across progress rows,
// rounded to the nearest integer.
func CompletionRate(progress []*models.ProgressRecord) int {
	if len(progress) == 0 {
		return 0
	}

	var total float64
	for _, record := range progress {
		total += record.ProgressPercentage
	}

	return int(math.Round(total / float64(len(progress))))
}

// InteractionScore is a weighted mean of activity kinds scaled to [0, 100].
// Unknown kinds fall back to the configured default weight.
func InteractionScore(records []*models.ActivityRecord, cfg config.AnalyticsConfig) int {
	if len(records) == 0 {
		return 0
	}

	var weightedSum float64
	for _, record := range records {
		weightedSum += interactionWeight(record.ResolveKind(), cfg)
	}

	score := math.Round(weightedSum / float64(len(records)) * 50)
	return int(math.Min(100, score))
}

func interactionWeight(kind models.ActivityKind, cfg config.AnalyticsConfig) float64 {
	switch kind {
	case models.ActivityTestAttempt:
		return cfg.TestAttemptWeight
	case models.ActivityLessonView:
		return cfg.LessonViewWeight
	case models.ActivityDiscussion:
		return cfg.DiscussionWeight
	case models.ActivityResourceAccess:
		return cfg.ResourceAccessWeight
	default:
		return cfg.DefaultWeight
	}
}

// ConsistencyScore is the inverse of how bursty the daily activity counts
// are: 100 for perfectly even activity, approaching 0 as the population
// standard deviation of daily counts grows past 10.
func ConsistencyScore(records []*models.ActivityRecord) int {
	if len(records) == 0 {
		return 0
	}

	dailyCounts := make(map[time.Time]float64)
	for _, record := range records {
		dailyCounts[dayKey(record.Timestamp)]++
	}

	counts := make([]float64, 0, len(dailyCounts))
	for _, count := range dailyCounts {
		counts = append(counts, count)
	}

	stddev := populationStdDev(counts)
	return int(math.Round(100 * (1 - math.Min(1, stddev/10))))
}

// CurrentStreak counts consecutive UTC calendar days with activity, walking
// backward from the most recent active day until the first gap.
func CurrentStreak(dates []time.Time) int {
	days := distinctDaysDescending(dates)
	if len(days) == 0 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) != 24*time.Hour {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak scans the full history for the longest run of consecutive
// active days.
func LongestStreak(dates []time.Time) int {
	days := distinctDaysDescending(dates)
	if len(days) == 0 {
		return 0
	}

	longest := 1
	current := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}
	return longest
}

func distinctDaysDescending(dates []time.Time) []time.Time {
	unique := make(map[time.Time]struct{}, len(dates))
	for _, date := range dates {
		unique[dayKey(date)] = struct{}{}
	}

	days := make([]time.Time, 0, len(unique))
	for day := range unique {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}

// TimeDistributionBuckets counts values one standard deviation below, within,
// and above the mean.
type TimeDistributionBuckets struct {
	Fast    int `json:"fast"`
	Average int `json:"average"`
	Slow    int `json:"slow"`
}

// TimeDistribution buckets completion times around the mean. Identical
// inputs (stddev 0) all land in the average bucket. Negative durations are
// an integrity violation.
func TimeDistribution(times []int) (TimeDistributionBuckets, error) {
	var buckets TimeDistributionBuckets
	if len(times) == 0 {
		return buckets, nil
	}

	values := make([]float64, len(times))
	for i, t := range times {
		if t < 0 {
			return buckets, apperrors.NewDataIntegrityError("non_negative_duration", "completion time cannot be negative", t)
		}
		values[i] = float64(t)
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	stddev := populationStdDev(values)

	for _, v := range values {
		switch {
		case v < mean-stddev:
			buckets.Fast++
		case v > mean+stddev:
			buckets.Slow++
		default:
			buckets.Average++
		}
	}
	return buckets, nil
}

// DifficultyRating maps an aggregate success rate onto a 1 (easy) to 5
// (hard) scale.
func DifficultyRating(successRate float64) float64 {
	return math.Max(1, math.Min(5, 6-successRate/20))
}

// SuccessRate is the percentage of correct answers. correct > total or a
// negative count is an integrity violation, never clamped.
func SuccessRate(correct, total int) (float64, error) {
	if correct < 0 {
		return 0, apperrors.NewDataIntegrityError("non_negative_correct", "correct answers cannot be negative", correct)
	}
	if total < 0 {
		return 0, apperrors.NewDataIntegrityError("non_negative_total", "total attempts cannot be negative", total)
	}
	if correct > total {
		return 0, apperrors.NewDataIntegrityError("correct_within_total", "correct answers cannot exceed total attempts", correct)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total) * 100, nil
}

// WeeklyTrend buckets activity counts into consecutive 7-day slots from
// start to end.
func WeeklyTrend(records []*models.ActivityRecord, start, end time.Time) []int {
	return bucketCounts(records, start, end, 7*24*time.Hour)
}

// DailyTrend buckets activity counts into consecutive 1-day slots from start
// to end.
func DailyTrend(records []*models.ActivityRecord, start, end time.Time) []int {
	return bucketCounts(records, start, end, 24*time.Hour)
}

func bucketCounts(records []*models.ActivityRecord, start, end time.Time, width time.Duration) []int {
	if !end.After(start) {
		return []int{}
	}

	buckets := make([]int, int(math.Ceil(float64(end.Sub(start))/float64(width))))
	for _, record := range records {
		index := int(record.Timestamp.Sub(start) / width)
		if index >= 0 && index < len(buckets) {
			buckets[index]++
		}
	}
	return buckets
}

// ActivityPeriod summarizes activity inside one window.
type ActivityPeriod struct {
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	TotalActiveDays int       `json:"total_active_days"`
	TotalSessions   int       `json:"total_sessions"`
}

func activityPeriod(dates []time.Time, start, end time.Time) ActivityPeriod {
	uniqueDays := make(map[time.Time]struct{})
	sessions := 0
	for _, date := range dates {
		if date.Before(start) || date.After(end) {
			continue
		}
		sessions++
		uniqueDays[dayKey(date)] = struct{}{}
	}

	return ActivityPeriod{
		StartDate:       start,
		EndDate:         end,
		TotalActiveDays: len(uniqueDays),
		TotalSessions:   sessions,
	}
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var squares float64
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}
	return math.Sqrt(squares / float64(len(values)))
}
