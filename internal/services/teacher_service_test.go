package services

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/learning-analytics-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestTeacherService_GetGroupPerformance(t *testing.T) {
	ctx := context.Background()
	cfg := testAnalyticsConfig()
	base := day(2024, time.March, 1)

	t.Run("empty groups are an error", func(t *testing.T) {
		repo := NewMockRepository()
		repo.group.On("GetGroupStudents", mock.Anything, []uint{1}).Return([]*models.User{}, nil)

		service := NewTeacherService(repo, cfg, testLogger())
		_, err := service.GetGroupPerformance(ctx, []uint{1})

		assert.ErrorIs(t, err, ErrNoGroupMembers)
	})

	t.Run("zero-activity member contributes zero aggregates", func(t *testing.T) {
		repo := NewMockRepository()
		students := []*models.User{
			{ID: 1, Name: "Active Student"},
			{ID: 2, Name: "Silent Student"},
		}
		repo.group.On("GetGroupStudents", mock.Anything, []uint{1}).Return(students, nil)

		activities := []*models.ActivityRecord{
			{UserID: 1, Kind: models.ActivityLessonView, Timestamp: base},
		}
		progress := []*models.ProgressRecord{
			{UserID: 1, ProgressPercentage: 100},
		}
		answers := []*models.AnswerRecord{
			{UserID: 1, TestID: 1, IsCorrect: true, CreatedAt: base},
		}
		repo.activity.On("GetByUsers", mock.Anything, []uint{1, 2}, mock.Anything).Return(activities, nil)
		repo.progress.On("GetByUsers", mock.Anything, []uint{1, 2}).Return(progress, nil)
		repo.answer.On("GetByUsers", mock.Anything, []uint{1, 2}).Return(answers, nil)

		service := NewTeacherService(repo, cfg, testLogger())
		report, err := service.GetGroupPerformance(ctx, []uint{1})

		assert.NoError(t, err)
		assert.Equal(t, 2, report.MemberCount)

		silent := report.Members[1]
		assert.Equal(t, "Silent Student", silent.Name)
		assert.Equal(t, 0, silent.CompletionRate)
		assert.Equal(t, 0.0, silent.SuccessRate)
		assert.Equal(t, 0, silent.ActivityCount)

		// One member at 100%, one at 0%.
		assert.Equal(t, 50, report.AverageCompletion)
		assert.Equal(t, 1, report.Distribution.High)
		assert.Equal(t, 1, report.Distribution.Low)
	})
}

func TestTeacherService_GetStudentDetail(t *testing.T) {
	ctx := context.Background()
	cfg := testAnalyticsConfig()
	base := day(2024, time.March, 1)

	repo := NewMockRepository()
	repo.user.On("GetByID", mock.Anything, uint(5)).Return(&models.User{ID: 5, Name: "Casey"}, nil)
	repo.progress.On("GetByUser", mock.Anything, uint(5)).Return([]*models.ProgressRecord{progressAt(90)}, nil)

	// Strong subject 20 (100%), weak subject 21 (0%).
	answers := []*models.AnswerRecord{
		answerFor(1, true, base),
		answerFor(1, true, base.Add(time.Hour)),
		answerFor(2, false, base),
		answerFor(2, false, base.Add(time.Hour)),
	}
	repo.answer.On("GetByUser", mock.Anything, uint(5), mock.Anything).Return(answers, nil)
	repo.activity.On("GetActivityDates", mock.Anything, uint(5)).Return([]time.Time{base, base.AddDate(0, 0, -1)}, nil)
	repo.catalog.On("GetTestNames", mock.Anything, mock.Anything).Return(map[uint]string{1: "Strong Test", 2: "Weak Test"}, nil)
	repo.catalog.On("GetTestSubjects", mock.Anything, mock.Anything).Return(map[uint]uint{1: 20, 2: 21}, nil)
	repo.catalog.On("GetSubjectNames", mock.Anything, mock.Anything).Return(map[uint]string{20: "Mathematics", 21: "Physics"}, nil)

	service := NewTeacherService(repo, cfg, testLogger())
	report, err := service.GetStudentDetail(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, "Casey", report.Name)
	assert.Equal(t, 90, report.CompletionRate)
	assert.Equal(t, 2, report.Activity.CurrentStreak)

	assert.Len(t, report.Strengths, 1)
	assert.Equal(t, uint(20), report.Strengths[0].SubjectID)
	assert.Len(t, report.Weaknesses, 1)
	assert.Equal(t, "Physics", report.Weaknesses[0].SubjectName)
}
