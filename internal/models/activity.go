package models

import (
	"time"
)

type ActivityKind string

const (
	ActivityLessonView     ActivityKind = "lesson_view"
	ActivityTestAttempt    ActivityKind = "test_attempt"
	ActivityResourceAccess ActivityKind = "resource_access"
	ActivityDiscussion     ActivityKind = "discussion"
)

// ActivityRecord is one row of the append-only activity stream written by the
// activity logger. This service never mutates it.
type ActivityRecord struct {
	ID              uint         `json:"id" gorm:"primaryKey"`
	UserID          uint         `json:"user_id" gorm:"not null;index:idx_activity_user_ts"`
	Kind            ActivityKind `json:"kind" gorm:"not null;size:30;index" validate:"omitempty,activity_kind"`
	Timestamp       time.Time    `json:"timestamp" gorm:"not null;index:idx_activity_user_ts"`
	DurationSeconds int          `json:"duration_seconds" gorm:"default:0" validate:"min=0"`

	// Contextual foreign keys; at most one is set per record.
	LessonID   *uint `json:"lesson_id" gorm:"index"`
	TestID     *uint `json:"test_id" gorm:"index"`
	ResourceID *uint `json:"resource_id" gorm:"index"`
	SubjectID  *uint `json:"subject_id" gorm:"index"`
}

// ResolveKind falls back to the contextual foreign keys when the kind column
// is empty, mirroring how older rows were written before the kind column
// existed.
func (a *ActivityRecord) ResolveKind() ActivityKind {
	if a.Kind != "" {
		return a.Kind
	}
	switch {
	case a.TestID != nil:
		return ActivityTestAttempt
	case a.LessonID != nil:
		return ActivityLessonView
	case a.ResourceID != nil:
		return ActivityResourceAccess
	default:
		return ActivityDiscussion
	}
}
