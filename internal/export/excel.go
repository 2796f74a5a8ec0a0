// Package export writes application views to an Excel workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tbonnaire/apptrack/internal/columns"
	"github.com/tbonnaire/apptrack/internal/derive"
	"github.com/tbonnaire/apptrack/internal/types"
)

const appsSheet = "Applications"
const summarySheet = "Summary"

// Workbook writes views and the summary to an .xlsx file at path. Only the
// visible columns are exported, in their configured order.
func Workbook(path string, views []derive.ApplicationView, cols []columns.Column, summary *types.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", appsSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(appsSheet, cell, c.Label); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(max(len(cols), 1))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(appsSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	for r, v := range views {
		for i, c := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(appsSheet, cell, cellValue(v, c.Key)); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(appsSheet, "A", lastCol, 20); err != nil {
		return err
	}
	if err := f.AutoFilter(appsSheet, fmt.Sprintf("A1:%s1", lastCol), nil); err != nil {
		return err
	}
	if err := f.SetPanes(appsSheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	if summary != nil {
		if err := writeSummary(f, summary, headerStyle); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func writeSummary(f *excelize.File, s *types.Summary, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	rows := [][2]any{
		{"Total applications", s.TotalApplications},
		{"Auto-created", s.AutoCreatedApplications},
		{"Manual", s.ManualApplications},
		{"Automation rate", fmt.Sprintf("%.1f%%", s.AutomationRate)},
		{"Total emails", s.TotalEmails},
		{"Linked emails", s.LinkedEmails},
		{"Unprocessed emails", s.UnprocessedEmails},
	}

	f.SetCellValue(summarySheet, "A1", "Metric")
	f.SetCellValue(summarySheet, "B1", "Value")
	f.SetCellStyle(summarySheet, "A1", "B1", headerStyle)

	row := 2
	for _, r := range rows {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), r[0])
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), r[1])
		row++
	}

	row++
	f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), "Status")
	f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), "Count")
	f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++
	for _, status := range types.ValidStatuses {
		if n := s.StatusCount(status); n > 0 {
			f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), types.StatusLabel(status))
			f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), n)
			row++
		}
	}

	return f.SetColWidth(summarySheet, "A", "B", 24)
}

// cellValue maps a column key to the exported value for one view.
func cellValue(v derive.ApplicationView, key string) any {
	switch key {
	case "company_name":
		return v.CompanyName
	case "job_title":
		return v.JobTitle
	case "status":
		return v.StatusLabel
	case "applied_date":
		return v.AppliedDate
	case "last_interaction":
		return derive.LastInteraction(v.ApplicationRecord)
	case "contact_person":
		return v.ContactPerson
	case "priority":
		return derive.EffectivePriority(v.ApplicationRecord)
	case "email_count":
		return v.LinkedEmailCount
	case "location":
		return v.Location
	case "interview_date":
		return v.InterviewDate
	case "urgency_level":
		return v.UrgencyLevel
	case "source":
		return v.Source
	default:
		return ""
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
