package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
)

// CatalogRepository reads curriculum entities owned by the course service.
type CatalogRepository interface {
	GetCourse(ctx context.Context, courseID uint) (*models.Course, error)
	// GetRelatedCourse returns one course teaching the given subject, or nil
	// when the catalog has none.
	GetRelatedCourse(ctx context.Context, subjectID uint) (*models.CourseSummary, error)
	CountLessons(ctx context.Context, courseID uint) (int, error)
	CountCourses(ctx context.Context) (int, error)
	GetTestNames(ctx context.Context, testIDs []uint) (map[uint]string, error)
	// GetTestSubjects resolves each test to the subject its course teaches.
	GetTestSubjects(ctx context.Context, testIDs []uint) (map[uint]uint, error)
	GetSubjectNames(ctx context.Context, subjectIDs []uint) (map[uint]string, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Count(ctx context.Context) (int, error)
	GetRegistrationDates(ctx context.Context) ([]time.Time, error)
}

type GroupRepository interface {
	GetGroupStudents(ctx context.Context, groupIDs []uint) ([]*models.User, error)
	GetTeacherGroups(ctx context.Context, teacherID uint) ([]*models.StudentGroup, error)
}

type AuditRepository interface {
	GetRecent(ctx context.Context, limit int) ([]*models.AuditLog, error)
}

// AchievementRepository reads milestones written by the gamification
// pipeline. Achievement progress is derived, not stored.
type AchievementRepository interface {
	GetByUser(ctx context.Context, userID uint) ([]*models.Achievement, error)
}
