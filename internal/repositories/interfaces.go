package repositories

import (
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type ActivityFilters struct {
	Kind      *models.ActivityKind `json:"kind"`
	SubjectID *uint                `json:"subject_id"`
	DateFrom  *time.Time           `json:"date_from"`
	DateTo    *time.Time           `json:"date_to"`
}

type AnswerFilters struct {
	TestID   *uint      `json:"test_id"`
	DateFrom *time.Time `json:"date_from"`
	DateTo   *time.Time `json:"date_to"`
}

// ===== REPOSITORY MANAGER =====

// Repository aggregates the read-only data-access ports the analytics layer
// depends on. Every fetch is side-effect free; storage failures are returned
// to the caller unchanged.
type Repository interface {
	Activity() ActivityRepository
	Progress() ProgressRepository
	Answer() AnswerRepository
	Catalog() CatalogRepository
	User() UserRepository
	Group() GroupRepository
	Audit() AuditRepository
	Achievement() AchievementRepository
}
