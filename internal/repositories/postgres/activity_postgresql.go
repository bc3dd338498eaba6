package postgres

import (
	"context"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type ActivityPostgreSQL struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &ActivityPostgreSQL{db: db}
}

func (a ActivityPostgreSQL) GetByUser(ctx context.Context, userID uint, filters repositories.ActivityFilters) ([]*models.ActivityRecord, error) {
	var records []*models.ActivityRecord

	query := a.db.WithContext(ctx).
		Model(&models.ActivityRecord{}).
		Where("user_id = ?", userID)
	query = applyActivityFilters(query, filters)

	if err := query.Order("timestamp ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (a ActivityPostgreSQL) GetByUsers(ctx context.Context, userIDs []uint, filters repositories.ActivityFilters) ([]*models.ActivityRecord, error) {
	if len(userIDs) == 0 {
		return []*models.ActivityRecord{}, nil
	}

	var records []*models.ActivityRecord

	query := a.db.WithContext(ctx).
		Model(&models.ActivityRecord{}).
		Where("user_id IN ?", userIDs)
	query = applyActivityFilters(query, filters)

	if err := query.Order("timestamp ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (a ActivityPostgreSQL) GetActivityDates(ctx context.Context, userID uint) ([]time.Time, error) {
	var dates []time.Time

	if err := a.db.WithContext(ctx).
		Model(&models.ActivityRecord{}).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Pluck("timestamp", &dates).Error; err != nil {
		return nil, err
	}

	return dates, nil
}

func applyActivityFilters(query *gorm.DB, filters repositories.ActivityFilters) *gorm.DB {
	if filters.Kind != nil {
		query = query.Where("kind = ?", *filters.Kind)
	}
	if filters.SubjectID != nil {
		query = query.Where("subject_id = ?", *filters.SubjectID)
	}
	if filters.DateFrom != nil {
		query = query.Where("timestamp >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("timestamp <= ?", *filters.DateTo)
	}
	return query
}
