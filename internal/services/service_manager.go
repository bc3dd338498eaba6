package services

import (
	"log/slog"

	"github.com/SAP-F-2025/learning-analytics-service/internal/cache"
	"github.com/SAP-F-2025/learning-analytics-service/internal/config"
	"github.com/SAP-F-2025/learning-analytics-service/internal/events"
	"github.com/SAP-F-2025/learning-analytics-service/internal/repositories"
)

// ServiceManager aggregates all analytics services behind one wiring point.
type ServiceManager interface {
	Engagement() EngagementService
	Analytics() AnalyticsService
	Activity() ActivityService
	TestStats() TestStatsService
	TaskStats() TaskStatsService
	Progress() ProgressService
	Teacher() TeacherService
	Recommendation() RecommendationService
	Report() ReportService
	Dashboard() DashboardService
	Export() ExportService
	Achievements() AchievementService
}

type serviceManager struct {
	engagement     EngagementService
	analytics      AnalyticsService
	activity       ActivityService
	testStats      TestStatsService
	taskStats      TaskStatsService
	progress       ProgressService
	teacher        TeacherService
	recommendation RecommendationService
	report         ReportService
	dashboard      DashboardService
	export         ExportService
	achievements   AchievementService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	cfg config.AnalyticsConfig,
	logger *slog.Logger,
) ServiceManager {
	analytics := NewAnalyticsService(repo, logger)
	testStats := NewTestStatsService(repo, logger)
	activity := NewActivityService(repo, logger)
	recommendation := NewRecommendationService(repo, cfg, logger)
	teacher := NewTeacherService(repo, cfg, logger)
	report := NewReportService(repo, analytics, testStats, activity, recommendation, publisher, cfg, logger)

	return &serviceManager{
		engagement:     NewEngagementService(repo, cacheService, cfg, logger),
		analytics:      analytics,
		activity:       activity,
		testStats:      testStats,
		taskStats:      NewTaskStatsService(repo, logger),
		progress:       NewProgressService(repo, logger),
		teacher:        teacher,
		recommendation: recommendation,
		report:         report,
		dashboard:      NewDashboardService(repo, cfg, logger),
		export:         NewExportService(teacher, report, logger),
		achievements:   NewAchievementService(repo, logger),
	}
}

func (m *serviceManager) Engagement() EngagementService         { return m.engagement }
func (m *serviceManager) Analytics() AnalyticsService           { return m.analytics }
func (m *serviceManager) Activity() ActivityService             { return m.activity }
func (m *serviceManager) TestStats() TestStatsService           { return m.testStats }
func (m *serviceManager) TaskStats() TaskStatsService           { return m.taskStats }
func (m *serviceManager) Progress() ProgressService             { return m.progress }
func (m *serviceManager) Teacher() TeacherService               { return m.teacher }
func (m *serviceManager) Recommendation() RecommendationService { return m.recommendation }
func (m *serviceManager) Report() ReportService                 { return m.report }
func (m *serviceManager) Dashboard() DashboardService           { return m.dashboard }
func (m *serviceManager) Export() ExportService                 { return m.export }
func (m *serviceManager) Achievements() AchievementService      { return m.achievements }
