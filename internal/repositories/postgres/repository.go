package postgres

import (
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	activity    repositories.ActivityRepository
	progress    repositories.ProgressRepository
	answer      repositories.AnswerRepository
	catalog     repositories.CatalogRepository
	user        repositories.UserRepository
	group       repositories.GroupRepository
	audit       repositories.AuditRepository
	achievement repositories.AchievementRepository
}

// NewRepository wires the gorm-backed implementations behind the Repository
// manager interface.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		activity:    NewActivityPostgreSQL(db),
		progress:    NewProgressPostgreSQL(db),
		answer:      NewAnswerPostgreSQL(db),
		catalog:     NewCatalogPostgreSQL(db),
		user:        NewUserPostgreSQL(db),
		group:       NewGroupPostgreSQL(db),
		audit:       NewAuditPostgreSQL(db),
		achievement: NewAchievementPostgreSQL(db),
	}
}

func (r *repository) Activity() repositories.ActivityRepository       { return r.activity }
func (r *repository) Progress() repositories.ProgressRepository       { return r.progress }
func (r *repository) Answer() repositories.AnswerRepository           { return r.answer }
func (r *repository) Catalog() repositories.CatalogRepository         { return r.catalog }
func (r *repository) User() repositories.UserRepository               { return r.user }
func (r *repository) Group() repositories.GroupRepository             { return r.group }
func (r *repository) Audit() repositories.AuditRepository             { return r.audit }
func (r *repository) Achievement() repositories.AchievementRepository { return r.achievement }
