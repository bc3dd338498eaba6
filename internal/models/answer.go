package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerRecord is one submitted answer, written once by the submission
// service and immutable afterwards.
type AnswerRecord struct {
	ID                    uint           `json:"id" gorm:"primaryKey"`
	UserID                uint           `json:"user_id" gorm:"not null;index:idx_answer_user_test"`
	TestID                uint           `json:"test_id" gorm:"not null;index:idx_answer_user_test"`
	TaskID                uint           `json:"task_id" gorm:"not null;index"`
	IsCorrect             bool           `json:"is_correct" gorm:"not null"`
	CompletionTimeSeconds int            `json:"completion_time_seconds" gorm:"default:0" validate:"min=0"`
	Answer                datatypes.JSON `json:"answer" gorm:"type:jsonb"`
	CreatedAt             time.Time      `json:"created_at" gorm:"index"`

	Test Test `json:"-" gorm:"foreignKey:TestID"`
	Task Task `json:"-" gorm:"foreignKey:TaskID"`
}
