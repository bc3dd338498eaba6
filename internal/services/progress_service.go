package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	apperrors "github.com/SAP-F-2025/learning-analytics-service/internal/errors"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

// ProgressService reports course and subject completion for one student.
type ProgressService interface {
	GetCourseProgress(ctx context.Context, userID, courseID uint) (*CourseProgressReport, error)
	GetSubjectProgress(ctx context.Context, userID, subjectID uint) (*SubjectProgressReport, error)
}

type progressService struct {
	repo   repositories.Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewProgressService(repo repositories.Repository, logger *slog.Logger) ProgressService {
	return &progressService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ===== DATA STRUCTURES =====

type CourseProgressReport struct {
	UserID             uint      `json:"user_id"`
	CourseID           uint      `json:"course_id"`
	CourseName         string    `json:"course_name"`
	ProgressPercentage int       `json:"progress_percentage"`
	CompletedLessons   int       `json:"completed_lessons"`
	TotalLessons       int       `json:"total_lessons"`
	Completed          bool      `json:"completed"`
	LastActivity       time.Time `json:"last_activity"`
}

type SubjectProgressReport struct {
	UserID             uint    `json:"user_id"`
	SubjectID          uint    `json:"subject_id"`
	SubjectName        string  `json:"subject_name"`
	CourseCount        int     `json:"course_count"`
	CompletedCourses   int     `json:"completed_courses"`
	ProgressPercentage int     `json:"progress_percentage"`
	AverageProgress    float64 `json:"average_progress"`
}

// ===== SERVICE IMPLEMENTATION =====

func (s *progressService) GetCourseProgress(ctx context.Context, userID, courseID uint) (*CourseProgressReport, error) {
	course, err := s.repo.Catalog().GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	record, err := s.repo.Progress().GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("failed to get progress record: %w", err)
	}

	if record.ProgressPercentage < 0 || record.ProgressPercentage > 100 {
		return nil, apperrors.NewDataIntegrityError("progress_percentage_range", "progress percentage must be between 0 and 100", record.ProgressPercentage)
	}

	totalLessons, err := s.repo.Catalog().CountLessons(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}
	if record.CompletedLessons > totalLessons && totalLessons > 0 {
		return nil, apperrors.NewDataIntegrityError("completed_within_total", "completed lessons cannot exceed total lessons", record.CompletedLessons)
	}

	return &CourseProgressReport{
		UserID:             userID,
		CourseID:           courseID,
		CourseName:         course.Name,
		ProgressPercentage: int(math.Round(record.ProgressPercentage)),
		CompletedLessons:   record.CompletedLessons,
		TotalLessons:       totalLessons,
		Completed:          record.Completed(),
		LastActivity:       record.LastActivity,
	}, nil
}

func (s *progressService) GetSubjectProgress(ctx context.Context, userID, subjectID uint) (*SubjectProgressReport, error) {
	records, err := s.repo.Progress().GetByUserAndSubject(ctx, userID, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress records: %w", err)
	}

	names, err := s.repo.Catalog().GetSubjectNames(ctx, []uint{subjectID})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve subject name: %w", err)
	}

	report := &SubjectProgressReport{
		UserID:      userID,
		SubjectID:   subjectID,
		SubjectName: names[subjectID],
		CourseCount: len(records),
	}
	if len(records) == 0 {
		return report, nil
	}

	var total float64
	for _, record := range records {
		if record.ProgressPercentage < 0 || record.ProgressPercentage > 100 {
			return nil, apperrors.NewDataIntegrityError("progress_percentage_range", "progress percentage must be between 0 and 100", record.ProgressPercentage)
		}
		total += record.ProgressPercentage
		if record.Completed() {
			report.CompletedCourses++
		}
	}

	report.AverageProgress = total / float64(len(records))
	report.ProgressPercentage = int(math.Round(report.AverageProgress))
	return report, nil
}
