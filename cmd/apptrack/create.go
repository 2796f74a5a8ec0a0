package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/types"
)

var (
	createTitle    string
	createStatus   string
	createPriority string
	createLocation string
	createContact  string
	createNotes    string
	createSource   string
	createApplied  string
)

var createCmd = &cobra.Command{
	Use:   "create <company>",
	Short: "Create an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("create needs the backend; drop --offline")
		}
		if createTitle == "" {
			return fmt.Errorf("--title is required")
		}
		if createStatus != "" && !types.IsValidStatus(createStatus) {
			return fmt.Errorf("unknown status %q (valid: %v)", createStatus, types.ValidStatuses)
		}
		if createPriority != "" && !types.IsValidPriority(createPriority) {
			return fmt.Errorf("unknown priority %q (valid: %v)", createPriority, types.ValidPriorities)
		}

		rec, err := ctrl.Create(cmd.Context(), types.CreateApplicationRequest{
			CompanyName:   args[0],
			JobTitle:      createTitle,
			Status:        createStatus,
			Priority:      createPriority,
			Location:      createLocation,
			ContactPerson: createContact,
			Notes:         createNotes,
			Source:        createSource,
			AppliedDate:   createApplied,
		})
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}

		display.SuccessMsg("created %s · %s (%s)", rec.CompanyName, rec.JobTitle, rec.ID)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createTitle, "title", "", "Job title (required)")
	createCmd.Flags().StringVar(&createStatus, "status", "", "Initial status (default: backend's)")
	createCmd.Flags().StringVar(&createPriority, "priority", "", "Priority (LOW, MEDIUM, HIGH)")
	createCmd.Flags().StringVar(&createLocation, "location", "", "Location")
	createCmd.Flags().StringVar(&createContact, "contact", "", "Contact person")
	createCmd.Flags().StringVar(&createNotes, "notes", "", "Free-form notes")
	createCmd.Flags().StringVar(&createSource, "source", "", "Where the application came from")
	createCmd.Flags().StringVar(&createApplied, "applied", "", "Applied date (YYYY-MM-DD)")
	rootCmd.AddCommand(createCmd)
}
