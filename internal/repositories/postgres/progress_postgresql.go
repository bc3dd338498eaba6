package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type ProgressPostgreSQL struct {
	db *gorm.DB
}

func NewProgressPostgreSQL(db *gorm.DB) repositories.ProgressRepository {
	return &ProgressPostgreSQL{db: db}
}

func (p ProgressPostgreSQL) GetByUser(ctx context.Context, userID uint) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	if err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Course").
		Preload("Subject").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (p ProgressPostgreSQL) GetByUserAndCourse(ctx context.Context, userID, courseID uint) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Preload("Course").
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (p ProgressPostgreSQL) GetByUserAndSubject(ctx context.Context, userID, subjectID uint) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Preload("Course").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (p ProgressPostgreSQL) GetByUsers(ctx context.Context, userIDs []uint) ([]*models.ProgressRecord, error) {
	if len(userIDs) == 0 {
		return []*models.ProgressRecord{}, nil
	}

	var records []*models.ProgressRecord
	if err := p.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (p ProgressPostgreSQL) GetCompletedCourses(ctx context.Context, userID uint) ([]*models.ProgressRecord, error) {
	var records []*models.ProgressRecord
	if err := p.db.WithContext(ctx).
		Where("user_id = ? AND progress_percentage = ?", userID, 100).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (p ProgressPostgreSQL) CountActiveUsersSince(ctx context.Context, since time.Time) (int, error) {
	var count int64
	if err := p.db.WithContext(ctx).
		Model(&models.ProgressRecord{}).
		Where("last_activity >= ?", since).
		Distinct("user_id").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (p ProgressPostgreSQL) GetAllPercentages(ctx context.Context) ([]float64, error) {
	var percentages []float64
	if err := p.db.WithContext(ctx).
		Model(&models.ProgressRecord{}).
		Pluck("progress_percentage", &percentages).Error; err != nil {
		return nil, err
	}
	return percentages, nil
}
