package services

import (
	"context"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/cache"
	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"github.com/stretchr/testify/mock"
)

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) GetByUser(ctx context.Context, userID uint, filters repositories.ActivityFilters) ([]*models.ActivityRecord, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]*models.ActivityRecord), args.Error(1)
}

func (m *MockActivityRepository) GetByUsers(ctx context.Context, userIDs []uint, filters repositories.ActivityFilters) ([]*models.ActivityRecord, error) {
	args := m.Called(ctx, userIDs, filters)
	return args.Get(0).([]*models.ActivityRecord), args.Error(1)
}

func (m *MockActivityRepository) GetActivityDates(ctx context.Context, userID uint) ([]time.Time, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]time.Time), args.Error(1)
}

// MockProgressRepository is a mock implementation of ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetByUser(ctx context.Context, userID uint) ([]*models.ProgressRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.ProgressRecord, error) {
	args := m.Called(ctx, userID, courseID)
	return args.Get(0).(*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) GetByUserAndSubject(ctx context.Context, userID, subjectID uint) ([]*models.ProgressRecord, error) {
	args := m.Called(ctx, userID, subjectID)
	return args.Get(0).([]*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) GetByUsers(ctx context.Context, userIDs []uint) ([]*models.ProgressRecord, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) GetCompletedCourses(ctx context.Context, userID uint) ([]*models.ProgressRecord, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.ProgressRecord), args.Error(1)
}

func (m *MockProgressRepository) CountActiveUsersSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressRepository) GetAllPercentages(ctx context.Context) ([]float64, error) {
	args := m.Called(ctx)
	return args.Get(0).([]float64), args.Error(1)
}

// MockAnswerRepository is a mock implementation of AnswerRepository
type MockAnswerRepository struct {
	mock.Mock
}

func (m *MockAnswerRepository) GetByUser(ctx context.Context, userID uint, filters repositories.AnswerFilters) ([]*models.AnswerRecord, error) {
	args := m.Called(ctx, userID, filters)
	return args.Get(0).([]*models.AnswerRecord), args.Error(1)
}

func (m *MockAnswerRepository) GetByUsers(ctx context.Context, userIDs []uint) ([]*models.AnswerRecord, error) {
	args := m.Called(ctx, userIDs)
	return args.Get(0).([]*models.AnswerRecord), args.Error(1)
}

func (m *MockAnswerRepository) GetByTask(ctx context.Context, taskID uint) ([]*models.AnswerRecord, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]*models.AnswerRecord), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetCourse(ctx context.Context, courseID uint) (*models.Course, error) {
	args := m.Called(ctx, courseID)
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCatalogRepository) GetRelatedCourse(ctx context.Context, subjectID uint) (*models.CourseSummary, error) {
	args := m.Called(ctx, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CourseSummary), args.Error(1)
}

func (m *MockCatalogRepository) CountLessons(ctx context.Context, courseID uint) (int, error) {
	args := m.Called(ctx, courseID)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogRepository) CountCourses(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockCatalogRepository) GetTestNames(ctx context.Context, testIDs []uint) (map[uint]string, error) {
	args := m.Called(ctx, testIDs)
	return args.Get(0).(map[uint]string), args.Error(1)
}

func (m *MockCatalogRepository) GetTestSubjects(ctx context.Context, testIDs []uint) (map[uint]uint, error) {
	args := m.Called(ctx, testIDs)
	return args.Get(0).(map[uint]uint), args.Error(1)
}

func (m *MockCatalogRepository) GetSubjectNames(ctx context.Context, subjectIDs []uint) (map[uint]string, error) {
	args := m.Called(ctx, subjectIDs)
	return args.Get(0).(map[uint]string), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) GetRegistrationDates(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).([]time.Time), args.Error(1)
}

// MockGroupRepository is a mock implementation of GroupRepository
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) GetGroupStudents(ctx context.Context, groupIDs []uint) ([]*models.User, error) {
	args := m.Called(ctx, groupIDs)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockGroupRepository) GetTeacherGroups(ctx context.Context, teacherID uint) ([]*models.StudentGroup, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).([]*models.StudentGroup), args.Error(1)
}

// MockAuditRepository is a mock implementation of AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) GetRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

// MockAchievementRepository is a mock implementation of AchievementRepository
type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetByUser(ctx context.Context, userID uint) ([]*models.Achievement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Achievement), args.Error(1)
}

// MockRepository aggregates the repository mocks behind the manager interface
type MockRepository struct {
	activity    *MockActivityRepository
	progress    *MockProgressRepository
	answer      *MockAnswerRepository
	catalog     *MockCatalogRepository
	user        *MockUserRepository
	group       *MockGroupRepository
	audit       *MockAuditRepository
	achievement *MockAchievementRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		activity:    new(MockActivityRepository),
		progress:    new(MockProgressRepository),
		answer:      new(MockAnswerRepository),
		catalog:     new(MockCatalogRepository),
		user:        new(MockUserRepository),
		group:       new(MockGroupRepository),
		audit:       new(MockAuditRepository),
		achievement: new(MockAchievementRepository),
	}
}

func (m *MockRepository) Activity() repositories.ActivityRepository       { return m.activity }
func (m *MockRepository) Progress() repositories.ProgressRepository       { return m.progress }
func (m *MockRepository) Answer() repositories.AnswerRepository           { return m.answer }
func (m *MockRepository) Catalog() repositories.CatalogRepository         { return m.catalog }
func (m *MockRepository) User() repositories.UserRepository               { return m.user }
func (m *MockRepository) Group() repositories.GroupRepository             { return m.group }
func (m *MockRepository) Audit() repositories.AuditRepository             { return m.audit }
func (m *MockRepository) Achievement() repositories.AchievementRepository { return m.achievement }

// MockCacheService is an always-miss cache for service tests
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

var _ cache.CacheService = (*MockCacheService)(nil)
