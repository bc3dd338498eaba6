package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null;size:255" validate:"required,email"`
	Name      string    `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Role      UserRole  `json:"role" gorm:"default:student;index" validate:"omitempty,user_role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentGroup is a teacher-owned collection of students used by the
// group-performance rollups.
type StudentGroup struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TeacherID uint      `json:"teacher_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	CreatedAt time.Time `json:"created_at"`

	Teacher User                 `json:"-" gorm:"foreignKey:TeacherID"`
	Members []StudentGroupMember `json:"members" gorm:"foreignKey:GroupID"`
}

type StudentGroupMember struct {
	GroupID   uint `json:"group_id" gorm:"primaryKey"`
	StudentID uint `json:"student_id" gorm:"primaryKey;index"`

	Student User `json:"student" gorm:"foreignKey:StudentID"`
}
