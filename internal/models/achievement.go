package models

import (
	"time"

	"gorm.io/datatypes"
)

type AchievementType string

const (
	AchievementCourseCompletion AchievementType = "course_completion"
	AchievementTestScore        AchievementType = "test_score"
	AchievementStreak           AchievementType = "streak"
	AchievementLessonCompletion AchievementType = "lesson_completion"
)

// Achievement rows are written by the gamification pipeline when a milestone
// is reached; the analytics layer reads them back, newest first.
type Achievement struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Type        AchievementType `json:"type" gorm:"not null;size:50"`
	Title       string          `json:"title" gorm:"not null;size:255"`
	Description string          `json:"description" gorm:"type:text"`
	EarnedAt    time.Time       `json:"earned_at" gorm:"index"`
	Metadata    datatypes.JSON  `json:"metadata" gorm:"type:jsonb"`
}
