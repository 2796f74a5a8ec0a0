package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/columns"
	"github.com/tbonnaire/apptrack/internal/derive"
	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/export"
	"github.com/tbonnaire/apptrack/internal/project"
)

var (
	exportOut    string
	exportStatus string
	exportSearch string
	exportSort   string
	exportDesc   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export applications to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := ensureData(cmd.Context())
		if err != nil {
			return err
		}

		cols, err := columns.Load(cfg.ColumnsPath)
		if err != nil {
			return fmt.Errorf("load column config: %w", err)
		}

		apps, emails := recs.Snapshot()
		views := derive.Views(apps, emails)

		// Export ignores pagination: one sheet holds the whole filtered set.
		f := project.Filter{Search: exportSearch, Status: exportStatus}
		page := project.Project(views, f, project.Sort{Field: exportSort, Desc: exportDesc}, 1, len(views)+1)

		if err := export.Workbook(exportOut, page.Items, cols.Visible(), view.Summary); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}

		if !quietFlag {
			display.SuccessMsg("exported %d application(s) to %s", len(page.Items), exportOut)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "applications.xlsx", "Output file path")
	exportCmd.Flags().StringVar(&exportStatus, "status", "", "Only export this status")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "Only export matching applications")
	exportCmd.Flags().StringVar(&exportSort, "sort", "applied_date", "Sort column key")
	exportCmd.Flags().BoolVar(&exportDesc, "desc", true, "Sort descending")
	rootCmd.AddCommand(exportCmd)
}
