package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/types"
)

var setStatusNotes string

var setStatusCmd = &cobra.Command{
	Use:   "set-status <application-id> <status>",
	Short: "Change an application's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("set-status needs the backend; drop --offline")
		}
		status := args[1]
		if !types.IsValidStatus(status) {
			return fmt.Errorf("unknown status %q (valid: %v)", status, types.ValidStatuses)
		}

		if _, err := ensureData(cmd.Context()); err != nil {
			return err
		}
		apps, _ := recs.Snapshot()
		app, err := findApplication(apps, args[0])
		if err != nil {
			return err
		}

		rec, err := client.UpdateStatus(cmd.Context(), app.ID, status, setStatusNotes)
		if err != nil {
			return err
		}
		if _, err := ctrl.Refresh(cmd.Context()); err != nil {
			display.WarnMsg("status updated but re-sync failed: %v", err)
		}

		if !quietFlag {
			display.SuccessMsg("%s · %s is now %s", rec.CompanyName, rec.JobTitle, display.StatusBadge(rec.Status))
		}
		return nil
	},
}

var setPriorityCmd = &cobra.Command{
	Use:   "set-priority <application-id> <priority>",
	Short: "Change an application's priority",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("set-priority needs the backend; drop --offline")
		}
		priority := args[1]
		if !types.IsValidPriority(priority) {
			return fmt.Errorf("unknown priority %q (valid: %v)", priority, types.ValidPriorities)
		}

		if _, err := ensureData(cmd.Context()); err != nil {
			return err
		}
		apps, _ := recs.Snapshot()
		app, err := findApplication(apps, args[0])
		if err != nil {
			return err
		}

		rec, err := client.SetPriority(cmd.Context(), app.ID, priority)
		if err != nil {
			return err
		}
		if _, err := ctrl.Refresh(cmd.Context()); err != nil {
			display.WarnMsg("priority updated but re-sync failed: %v", err)
		}

		if !quietFlag {
			display.SuccessMsg("%s %s · %s priority set to %s",
				display.PriorityDot(rec.Priority), rec.CompanyName, rec.JobTitle, rec.Priority)
		}
		return nil
	},
}

func init() {
	setStatusCmd.Flags().StringVar(&setStatusNotes, "notes", "", "Notes to attach with the change")
	rootCmd.AddCommand(setStatusCmd)
	rootCmd.AddCommand(setPriorityCmd)
}
