package models

import (
	"time"
)

// Catalog entities are owned by the course-management service; this service
// only reads them when enriching reports.

type Subject struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	CreatedAt time.Time `json:"created_at"`
}

type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SubjectID   uint      `json:"subject_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null;size:200;index" validate:"required,min=1,max=200"`
	Description *string   `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Subject Subject  `json:"-" gorm:"foreignKey:SubjectID"`
	Lessons []Lesson `json:"-" gorm:"foreignKey:CourseID"`
}

type Lesson struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Order    int    `json:"order" gorm:"default:0"`
}

type Test struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	CourseID uint   `json:"course_id" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
}

type Task struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	TestID     uint   `json:"test_id" gorm:"not null;index"`
	Question   string `json:"question" gorm:"type:text;not null" validate:"required"`
	Difficulty string `json:"difficulty" gorm:"size:20;index"`
}

// CourseSummary is the projection returned by the related-course lookup used
// when turning improvement areas into course recommendations.
type CourseSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
