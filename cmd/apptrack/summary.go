package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/types"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show aggregate automation metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		view, err := ensureData(cmd.Context())
		if err != nil {
			return err
		}
		s := view.Summary

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}

		display.Header("Tracking Summary")
		fmt.Println()

		fmt.Println("  Applications")
		fmt.Printf("    Total         %4d\n", s.TotalApplications)
		fmt.Printf("    Auto-created  %4d  %s\n", s.AutoCreatedApplications,
			display.Dim.Render(fmt.Sprintf("(%s automated)", display.Percent(s.AutomationRate))))
		fmt.Printf("    Manual        %4d\n", s.ManualApplications)
		fmt.Println()

		fmt.Println("  Emails")
		fmt.Printf("    Total         %4d\n", s.TotalEmails)
		fmt.Printf("    Linked        %4d\n", s.LinkedEmails)
		fmt.Printf("    Unprocessed   %4d\n", s.UnprocessedEmails)
		fmt.Println()

		if len(s.StatusBreakdown) > 0 {
			fmt.Println("  By status")
			for _, status := range types.ValidStatuses {
				if n := s.StatusCount(status); n > 0 {
					fmt.Printf("    %-16s %3d\n", types.StatusLabel(status), n)
				}
			}
			for status, n := range s.StatusBreakdown {
				if !types.IsValidStatus(status) {
					fmt.Printf("    %-16s %3d\n", status, n)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
