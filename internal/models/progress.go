package models

import (
	"time"
)

// ProgressRecord holds one logical row per (user, course) scope. It is
// updated in place by the enrollment service as the student advances; the
// analytics layer reads it and never writes it.
type ProgressRecord struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	UserID             uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID           uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	SubjectID          *uint     `json:"subject_id" gorm:"index"`
	LessonID           *uint     `json:"lesson_id"`
	TopicID            *uint     `json:"topic_id"`
	ProgressPercentage float64   `json:"progress_percentage" gorm:"not null;default:0" validate:"min=0,max=100"`
	CompletedLessons   int       `json:"completed_lessons" gorm:"default:0" validate:"min=0"`
	LastActivity       time.Time `json:"last_activity" gorm:"index"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Course  Course   `json:"-" gorm:"foreignKey:CourseID"`
	Subject *Subject `json:"-" gorm:"foreignKey:SubjectID"`
}

// Completed reports whether the scope is fully done. By invariant a record is
// completed exactly when the percentage reaches 100.
func (p *ProgressRecord) Completed() bool {
	return p.ProgressPercentage == 100
}
