package postgres

import (
	"context"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

func (a AnswerPostgreSQL) GetByUser(ctx context.Context, userID uint, filters repositories.AnswerFilters) ([]*models.AnswerRecord, error) {
	var records []*models.AnswerRecord

	query := a.db.WithContext(ctx).
		Model(&models.AnswerRecord{}).
		Where("user_id = ?", userID)

	if filters.TestID != nil {
		query = query.Where("test_id = ?", *filters.TestID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Preload("Test").Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

func (a AnswerPostgreSQL) GetByUsers(ctx context.Context, userIDs []uint) ([]*models.AnswerRecord, error) {
	if len(userIDs) == 0 {
		return []*models.AnswerRecord{}, nil
	}

	var records []*models.AnswerRecord
	if err := a.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (a AnswerPostgreSQL) GetByTask(ctx context.Context, taskID uint) ([]*models.AnswerRecord, error) {
	var records []*models.AnswerRecord
	if err := a.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
