package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog rows are written by the admin CRUD surface; the dashboard reads
// the most recent entries back.
type AuditLog struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     uint           `json:"user_id" gorm:"not null;index"`
	Action     string         `json:"action" gorm:"not null;size:50"`
	EntityType string         `json:"entity_type" gorm:"not null;size:50"`
	EntityID   uint           `json:"entity_id"`
	Changes    datatypes.JSON `json:"changes" gorm:"type:jsonb"`
	Timestamp  time.Time      `json:"timestamp" gorm:"index"`
}
