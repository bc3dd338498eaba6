package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportService renders teacher rollups and student reports as downloadable
// spreadsheets.
type ExportService interface {
	ExportGroupPerformanceToExcel(ctx context.Context, groupIDs []uint) ([]byte, error)
	ExportGroupPerformanceToCSV(ctx context.Context, groupIDs []uint) ([]byte, error)
	ExportLearningReportToExcel(ctx context.Context, userID uint, dateRange DateRange) ([]byte, error)
}

type exportService struct {
	teacher TeacherService
	report  ReportService
	logger  *slog.Logger
}

func NewExportService(teacher TeacherService, report ReportService, logger *slog.Logger) ExportService {
	return &exportService{
		teacher: teacher,
		report:  report,
		logger:  logger,
	}
}

// ===== EXPORT OPERATIONS =====

var groupExportHeaders = []string{
	"Student ID", "Student Name", "Completion Rate (%)", "Success Rate (%)", "Activity Count",
}

func (s *exportService) ExportGroupPerformanceToExcel(ctx context.Context, groupIDs []uint) ([]byte, error) {
	report, err := s.teacher.GetGroupPerformance(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Group Performance"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	for i, header := range groupExportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, member := range report.Members {
		row := []interface{}{
			member.UserID,
			member.Name,
			member.CompletionRate,
			member.SuccessRate,
			member.ActivityCount,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	summaryRow := len(report.Members) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Group Average")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), report.AverageCompletion)
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), report.AverageSuccessRate)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}

func (s *exportService) ExportGroupPerformanceToCSV(ctx context.Context, groupIDs []uint) ([]byte, error) {
	report, err := s.teacher.GetGroupPerformance(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(groupExportHeaders); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, member := range report.Members {
		record := []string{
			strconv.FormatUint(uint64(member.UserID), 10),
			member.Name,
			strconv.Itoa(member.CompletionRate),
			strconv.FormatFloat(member.SuccessRate, 'f', 2, 64),
			strconv.Itoa(member.ActivityCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportLearningReportToExcel renders one student's full report as a
// workbook with a sheet per section.
func (s *exportService) ExportLearningReportToExcel(ctx context.Context, userID uint, dateRange DateRange) ([]byte, error) {
	report, err := s.report.GenerateLearningReport(ctx, userID, dateRange)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	overviewSheet := "Overview"
	index, err := f.NewSheet(overviewSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)

	overview := [][]interface{}{
		{"Student ID", report.UserID},
		{"Period Start", report.Period.Start.Format("2006-01-02")},
		{"Period End", report.Period.End.Format("2006-01-02")},
		{"Completed Courses", report.CompletedCourses},
		{"Total Minutes", report.Analytics.TimeSpent.TotalMinutes},
		{"Completion Rate (%)", report.Analytics.LearningPatterns.CompletionRate},
		{"Preferred Learning Time", report.Analytics.LearningPatterns.PreferredLearningTime},
		{"Most Engaged Subject", report.Analytics.LearningPatterns.MostEngagedSubjectName},
		{"Current Streak", report.Activity.Streaks.CurrentStreak},
		{"Longest Streak", report.Activity.Streaks.LongestStreak},
	}
	for rowIndex, pair := range overview {
		for colIndex, value := range pair {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+1)
			f.SetCellValue(overviewSheet, cell, value)
		}
	}

	testsSheet := "Test Results"
	if _, err := f.NewSheet(testsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	testHeaders := []string{"Test ID", "Test Name", "Attempts", "Correct", "Average Score (%)", "Best Score (%)"}
	for i, header := range testHeaders {
		f.SetCellValue(testsSheet, fmt.Sprintf("%c1", 'A'+i), header)
	}
	for rowIndex, test := range report.TestStats {
		row := []interface{}{
			test.TestID,
			test.TestName,
			test.TotalAttempts,
			test.CorrectAnswers,
			test.AverageScore,
			test.BestScore,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(testsSheet, cell, value)
		}
	}

	recsSheet := "Recommendations"
	if _, err := f.NewSheet(recsSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	recHeaders := []string{"Kind", "Priority", "Title", "Description"}
	for i, header := range recHeaders {
		f.SetCellValue(recsSheet, fmt.Sprintf("%c1", 'A'+i), header)
	}
	for rowIndex, rec := range report.Recommendations {
		row := []interface{}{
			string(rec.Kind),
			string(rec.Priority),
			rec.Title,
			rec.Description,
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(recsSheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buf.Bytes(), nil
}
