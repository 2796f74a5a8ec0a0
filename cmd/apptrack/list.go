package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/columns"
	"github.com/tbonnaire/apptrack/internal/derive"
	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/project"
	"github.com/tbonnaire/apptrack/internal/types"
)

var (
	listSearch   string
	listStatus   string
	listCompany  string
	listPriority string
	listAuto     string
	listSort     string
	listDesc     bool
	listPage     int
	listPageSize int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List applications with filters, sorting, and pagination",
	RunE: func(cmd *cobra.Command, args []string) error {
		if listStatus != "" && !types.IsValidStatus(listStatus) {
			return fmt.Errorf("unknown status %q (valid: %v)", listStatus, types.ValidStatuses)
		}
		if listPriority != "" && !types.IsValidPriority(listPriority) {
			return fmt.Errorf("unknown priority %q (valid: %v)", listPriority, types.ValidPriorities)
		}
		if listAuto != "" && listAuto != "true" && listAuto != "false" {
			return fmt.Errorf("--auto accepts true or false")
		}

		cols, err := columns.Load(cfg.ColumnsPath)
		if err != nil {
			return fmt.Errorf("load column config: %w", err)
		}
		if listSort != "" && !cols.Sortable(listSort) {
			return fmt.Errorf("column %q is not sortable", listSort)
		}

		if _, err := ensureData(cmd.Context()); err != nil {
			return err
		}

		if listPageSize > 0 {
			ctrl.SetPageSize(listPageSize)
		}
		ctrl.SetFilter(project.Filter{
			Search:      listSearch,
			Status:      listStatus,
			Company:     listCompany,
			Priority:    listPriority,
			AutoCreated: listAuto,
		})
		if listSort != "" {
			ctrl.SetSort(project.Sort{Field: listSort, Desc: listDesc})
		}
		if listPage > 0 {
			ctrl.SetPage(listPage)
		}
		view := ctrl.View()

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view.Page)
		}

		page := view.Page
		if page.TotalCount == 0 {
			fmt.Println("No applications match.")
			return nil
		}

		visible := cols.Visible()
		printHeader(visible)
		for _, v := range page.Items {
			printRow(visible, v)
		}

		fmt.Println()
		fmt.Printf("  Page %d/%d · %d application(s)\n", page.Number, page.TotalPages, page.TotalCount)
		return nil
	},
}

func printHeader(cols []columns.Column) {
	line := " "
	for _, c := range cols {
		line += fmt.Sprintf(" %-*s", colWidth(c.Key), c.Label)
	}
	display.Header(line)
}

func printRow(cols []columns.Column, v derive.ApplicationView) {
	line := " "
	for _, c := range cols {
		line += fmt.Sprintf(" %-*s", colWidth(c.Key), display.Truncate(cellText(v, c.Key), colWidth(c.Key)))
	}
	fmt.Println(line)
}

// colWidth fixes per-column widths so rows stay aligned without a full
// table pass.
func colWidth(key string) int {
	switch key {
	case "company_name", "job_title":
		return 24
	case "contact_person", "source", "location":
		return 18
	case "status", "urgency_level":
		return 14
	case "email_count", "priority":
		return 8
	default:
		return 12
	}
}

// cellText renders one plain-text cell. Styled variants would break the
// fixed-width alignment, so color is reserved for detail views.
func cellText(v derive.ApplicationView, key string) string {
	switch key {
	case "company_name":
		return v.CompanyName
	case "job_title":
		return v.JobTitle
	case "status":
		return v.StatusLabel
	case "applied_date":
		return display.FormatDate(v.AppliedDate)
	case "last_interaction":
		return display.TimeAgo(derive.LastInteraction(v.ApplicationRecord))
	case "contact_person":
		return v.ContactPerson
	case "priority":
		return derive.EffectivePriority(v.ApplicationRecord)
	case "email_count":
		return strconv.Itoa(v.LinkedEmailCount)
	case "location":
		return v.Location
	case "interview_date":
		return display.FormatDate(v.InterviewDate)
	case "urgency_level":
		return v.UrgencyLevel
	case "source":
		if v.AutoCreated {
			return "auto"
		}
		return v.Source
	default:
		return ""
	}
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Free-text search over company, title, contact, notes")
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by exact status")
	listCmd.Flags().StringVar(&listCompany, "company", "", "Filter by company substring")
	listCmd.Flags().StringVar(&listPriority, "priority", "", "Filter by exact priority")
	listCmd.Flags().StringVar(&listAuto, "auto", "", "Filter auto-created applications (true/false)")
	listCmd.Flags().StringVar(&listSort, "sort", "", "Sort column key")
	listCmd.Flags().BoolVar(&listDesc, "desc", false, "Sort descending")
	listCmd.Flags().IntVar(&listPage, "page", 0, "Page number (out-of-range values clamp)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 0, "Rows per page (default from config)")
	rootCmd.AddCommand(listCmd)
}
