package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

// TeacherService builds cohort-level rollups for teachers: how a group of
// students performs as a whole, and a drill-down into one student.
type TeacherService interface {
	GetGroupPerformance(ctx context.Context, groupIDs []uint) (*GroupPerformanceReport, error)
	GetStudentDetail(ctx context.Context, studentID uint) (*StudentDetailReport, error)
}

type teacherService struct {
	repo   repositories.Repository
	cfg    config.AnalyticsConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewTeacherService(repo repositories.Repository, cfg config.AnalyticsConfig, logger *slog.Logger) TeacherService {
	return &teacherService{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type MemberPerformance struct {
	UserID         uint    `json:"user_id"`
	Name           string  `json:"name"`
	CompletionRate int     `json:"completion_rate"`
	SuccessRate    float64 `json:"success_rate"`
	ActivityCount  int     `json:"activity_count"`
}

// PerformanceDistribution buckets members by success rate: high at or above
// the strength threshold, low below the weakness threshold.
type PerformanceDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type GroupPerformanceReport struct {
	GroupIDs           []uint                  `json:"group_ids"`
	MemberCount        int                     `json:"member_count"`
	AverageCompletion  int                     `json:"average_completion"`
	AverageSuccessRate float64                 `json:"average_success_rate"`
	Distribution       PerformanceDistribution `json:"distribution"`
	Members            []MemberPerformance     `json:"members"`
	GeneratedAt        time.Time               `json:"generated_at"`
}

type SubjectScore struct {
	SubjectID   uint    `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	Score       float64 `json:"score"`
}

type StudentDetailReport struct {
	StudentID      uint           `json:"student_id"`
	Name           string         `json:"name"`
	CompletionRate int            `json:"completion_rate"`
	TestStats      []TestStats    `json:"test_stats"`
	Activity       StreakSummary  `json:"activity"`
	Strengths      []SubjectScore `json:"strengths"`
	Weaknesses     []SubjectScore `json:"weaknesses"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *teacherService) GetGroupPerformance(ctx context.Context, groupIDs []uint) (*GroupPerformanceReport, error) {
	students, err := s.repo.Group().GetGroupStudents(ctx, groupIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get group students: %w", err)
	}
	if len(students) == 0 {
		return nil, ErrNoGroupMembers
	}

	studentIDs := make([]uint, len(students))
	for i, student := range students {
		studentIDs[i] = student.ID
	}

	activities, err := s.repo.Activity().GetByUsers(ctx, studentIDs, repositories.ActivityFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get activity records: %w", err)
	}
	progress, err := s.repo.Progress().GetByUsers(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}
	answers, err := s.repo.Answer().GetByUsers(ctx, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer records: %w", err)
	}

	activityByUser := make(map[uint][]*models.ActivityRecord)
	for _, record := range activities {
		activityByUser[record.UserID] = append(activityByUser[record.UserID], record)
	}
	progressByUser := make(map[uint][]*models.ProgressRecord)
	for _, record := range progress {
		progressByUser[record.UserID] = append(progressByUser[record.UserID], record)
	}
	answersByUser := make(map[uint][]*models.AnswerRecord)
	for _, record := range answers {
		answersByUser[record.UserID] = append(answersByUser[record.UserID], record)
	}

	report := &GroupPerformanceReport{
		GroupIDs:    groupIDs,
		MemberCount: len(students),
		Members:     make([]MemberPerformance, 0, len(students)),
		GeneratedAt: s.now(),
	}

	var completionSum, successSum float64
	for _, student := range students {
		// A member with no rows still contributes zero-valued aggregates.
		member, err := s.buildMemberPerformance(student, activityByUser[student.ID], progressByUser[student.ID], answersByUser[student.ID])
		if err != nil {
			return nil, err
		}
		report.Members = append(report.Members, member)

		completionSum += float64(member.CompletionRate)
		successSum += member.SuccessRate
		switch {
		case member.SuccessRate >= float64(s.cfg.StrengthThreshold):
			report.Distribution.High++
		case member.SuccessRate < float64(s.cfg.WeaknessThreshold):
			report.Distribution.Low++
		default:
			report.Distribution.Medium++
		}
	}

	report.AverageCompletion = int(math.Round(completionSum / float64(len(students))))
	report.AverageSuccessRate = successSum / float64(len(students))
	return report, nil
}

func (s *teacherService) buildMemberPerformance(student *models.User, activities []*models.ActivityRecord, progress []*models.ProgressRecord, answers []*models.AnswerRecord) (MemberPerformance, error) {
	correct := 0
	for _, answer := range answers {
		if answer.IsCorrect {
			correct++
		}
	}
	rate, err := SuccessRate(correct, len(answers))
	if err != nil {
		return MemberPerformance{}, err
	}

	return MemberPerformance{
		UserID:         student.ID,
		Name:           student.Name,
		CompletionRate: CompletionRate(progress),
		SuccessRate:    rate,
		ActivityCount:  len(activities),
	}, nil
}

func (s *teacherService) GetStudentDetail(ctx context.Context, studentID uint) (*StudentDetailReport, error) {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	progress, err := s.repo.Progress().GetByUser(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}
	answers, err := s.repo.Answer().GetByUser(ctx, studentID, repositories.AnswerFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to get answer records: %w", err)
	}
	dates, err := s.repo.Activity().GetActivityDates(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity dates: %w", err)
	}

	testStats, err := AccumulateTestStats(answers)
	if err != nil {
		return nil, err
	}

	testIDs := make([]uint, len(testStats))
	for i, stats := range testStats {
		testIDs[i] = stats.TestID
	}
	names, err := s.repo.Catalog().GetTestNames(ctx, testIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve test names: %w", err)
	}
	for i := range testStats {
		testStats[i].TestName = names[testStats[i].TestID]
	}

	strengths, weaknesses, err := s.classifySubjects(ctx, testStats)
	if err != nil {
		return nil, err
	}

	return &StudentDetailReport{
		StudentID:      studentID,
		Name:           student.Name,
		CompletionRate: CompletionRate(progress),
		TestStats:      testStats,
		Activity:       *buildStreakSummary(studentID, dates),
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		GeneratedAt:    s.now(),
	}, nil
}

// classifySubjects averages test scores per subject and splits subjects into
// strengths and weaknesses around the configured thresholds.
func (s *teacherService) classifySubjects(ctx context.Context, testStats []TestStats) ([]SubjectScore, []SubjectScore, error) {
	strengths := []SubjectScore{}
	weaknesses := []SubjectScore{}
	if len(testStats) == 0 {
		return strengths, weaknesses, nil
	}

	testIDs := make([]uint, len(testStats))
	for i, stats := range testStats {
		testIDs[i] = stats.TestID
	}
	subjects, err := s.repo.Catalog().GetTestSubjects(ctx, testIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve test subjects: %w", err)
	}

	type subjectTally struct {
		sum   float64
		count int
	}
	tallies := make(map[uint]*subjectTally)
	var subjectOrder []uint
	for _, stats := range testStats {
		subjectID, ok := subjects[stats.TestID]
		if !ok {
			continue
		}
		tally, seen := tallies[subjectID]
		if !seen {
			tally = &subjectTally{}
			tallies[subjectID] = tally
			subjectOrder = append(subjectOrder, subjectID)
		}
		tally.sum += float64(stats.AverageScore)
		tally.count++
	}

	names, err := s.repo.Catalog().GetSubjectNames(ctx, subjectOrder)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve subject names: %w", err)
	}

	for _, subjectID := range subjectOrder {
		tally := tallies[subjectID]
		score := SubjectScore{
			SubjectID:   subjectID,
			SubjectName: names[subjectID],
			Score:       tally.sum / float64(tally.count),
		}
		switch {
		case score.Score >= float64(s.cfg.StrengthThreshold):
			strengths = append(strengths, score)
		case score.Score < float64(s.cfg.WeaknessThreshold):
			weaknesses = append(weaknesses, score)
		}
	}
	return strengths, weaknesses, nil
}
