package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
)

// ActivityRepository reads the append-only activity stream.
type ActivityRepository interface {
	GetByUser(ctx context.Context, userID uint, filters ActivityFilters) ([]*models.ActivityRecord, error)
	GetByUsers(ctx context.Context, userIDs []uint, filters ActivityFilters) ([]*models.ActivityRecord, error)
	GetActivityDates(ctx context.Context, userID uint) ([]time.Time, error)
}

// ProgressRepository reads enrollment progress rows maintained by the
// progress-tracking service.
type ProgressRepository interface {
	GetByUser(ctx context.Context, userID uint) ([]*models.ProgressRecord, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.ProgressRecord, error)
	GetByUserAndSubject(ctx context.Context, userID, subjectID uint) ([]*models.ProgressRecord, error)
	GetByUsers(ctx context.Context, userIDs []uint) ([]*models.ProgressRecord, error)
	GetCompletedCourses(ctx context.Context, userID uint) ([]*models.ProgressRecord, error)
	CountActiveUsersSince(ctx context.Context, since time.Time) (int, error)
	GetAllPercentages(ctx context.Context) ([]float64, error)
}

// AnswerRepository reads submitted answers.
type AnswerRepository interface {
	GetByUser(ctx context.Context, userID uint, filters AnswerFilters) ([]*models.AnswerRecord, error)
	GetByUsers(ctx context.Context, userIDs []uint) ([]*models.AnswerRecord, error)
	GetByTask(ctx context.Context, taskID uint) ([]*models.AnswerRecord, error)
}

