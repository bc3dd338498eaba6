package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type CatalogPostgreSQL struct {
	db *gorm.DB
}

func NewCatalogPostgreSQL(db *gorm.DB) repositories.CatalogRepository {
	return &CatalogPostgreSQL{db: db}
}

func (c CatalogPostgreSQL) GetCourse(ctx context.Context, courseID uint) (*models.Course, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).First(&course, courseID).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (c CatalogPostgreSQL) GetRelatedCourse(ctx context.Context, subjectID uint) (*models.CourseSummary, error) {
	var course models.Course
	if err := c.db.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("id ASC").
		First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	summary := &models.CourseSummary{
		ID:   course.ID,
		Name: course.Name,
	}
	if course.Description != nil {
		summary.Description = *course.Description
	}
	return summary, nil
}

func (c CatalogPostgreSQL) CountLessons(ctx context.Context, courseID uint) (int, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Lesson{}).
		Where("course_id = ?", courseID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (c CatalogPostgreSQL) CountCourses(ctx context.Context) (int, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.Course{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (c CatalogPostgreSQL) GetTestNames(ctx context.Context, testIDs []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(testIDs))
	if len(testIDs) == 0 {
		return names, nil
	}

	var tests []models.Test
	if err := c.db.WithContext(ctx).
		Where("id IN ?", testIDs).
		Find(&tests).Error; err != nil {
		return nil, err
	}

	for _, test := range tests {
		names[test.ID] = test.Name
	}
	return names, nil
}

func (c CatalogPostgreSQL) GetTestSubjects(ctx context.Context, testIDs []uint) (map[uint]uint, error) {
	subjects := make(map[uint]uint, len(testIDs))
	if len(testIDs) == 0 {
		return subjects, nil
	}

	type testSubject struct {
		TestID    uint
		SubjectID uint
	}

	var rows []testSubject
	if err := c.db.WithContext(ctx).
		Model(&models.Test{}).
		Select("tests.id AS test_id, courses.subject_id AS subject_id").
		Joins("JOIN courses ON courses.id = tests.course_id").
		Where("tests.id IN ?", testIDs).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		subjects[row.TestID] = row.SubjectID
	}
	return subjects, nil
}

func (c CatalogPostgreSQL) GetSubjectNames(ctx context.Context, subjectIDs []uint) (map[uint]string, error) {
	names := make(map[uint]string, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return names, nil
	}

	var subjects []models.Subject
	if err := c.db.WithContext(ctx).
		Where("id IN ?", subjectIDs).
		Find(&subjects).Error; err != nil {
		return nil, err
	}

	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}
	return names, nil
}

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u UserPostgreSQL) Count(ctx context.Context) (int, error) {
	var count int64
	if err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (u UserPostgreSQL) GetRegistrationDates(ctx context.Context) ([]time.Time, error) {
	var dates []time.Time
	if err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Order("created_at ASC").
		Pluck("created_at", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

type GroupPostgreSQL struct {
	db *gorm.DB
}

func NewGroupPostgreSQL(db *gorm.DB) repositories.GroupRepository {
	return &GroupPostgreSQL{db: db}
}

func (g GroupPostgreSQL) GetGroupStudents(ctx context.Context, groupIDs []uint) ([]*models.User, error) {
	if len(groupIDs) == 0 {
		return []*models.User{}, nil
	}

	var students []*models.User
	if err := g.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN student_group_members ON student_group_members.student_id = users.id").
		Where("student_group_members.group_id IN ?", groupIDs).
		Distinct().
		Order("users.id ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (g GroupPostgreSQL) GetTeacherGroups(ctx context.Context, teacherID uint) ([]*models.StudentGroup, error) {
	var groups []*models.StudentGroup
	if err := g.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Preload("Members").
		Preload("Members.Student").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

type AuditPostgreSQL struct {
	db *gorm.DB
}

func NewAuditPostgreSQL(db *gorm.DB) repositories.AuditRepository {
	return &AuditPostgreSQL{db: db}
}

func (a AuditPostgreSQL) GetRecent(ctx context.Context, limit int) ([]*models.AuditLog, error) {
	var logs []*models.AuditLog
	if err := a.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

type AchievementPostgreSQL struct {
	db *gorm.DB
}

func NewAchievementPostgreSQL(db *gorm.DB) repositories.AchievementRepository {
	return &AchievementPostgreSQL{db: db}
}

func (a AchievementPostgreSQL) GetByUser(ctx context.Context, userID uint) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	if err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, err
	}
	return achievements, nil
}
