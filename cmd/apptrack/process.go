package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
)

var processLimit int

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run the backend's email auto-processing, then re-sync",
	Long: `Ask the backend to classify unprocessed emails, creating and updating
applications from their content. The store is rebuilt from a full re-fetch
afterwards; the run's counters describe the run, not the resulting state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("process needs the backend; drop --offline")
		}

		result, view, err := ctrl.Process(cmd.Context(), processLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		c := result.Results
		display.SuccessMsg("processed %d email(s): %d application(s) created, %d updated, %d email(s) linked",
			c.ProcessedEmails, c.CreatedApplications, c.UpdatedApplications, c.LinkedEmails)

		for _, e := range c.Errors {
			display.ErrorMsg("email %s: %s", e.EmailID, e.Error)
		}

		if !quietFlag && view != nil {
			fmt.Printf("  Now tracking %d application(s).\n", view.Page.TotalCount)
		}
		return nil
	},
}

func init() {
	processCmd.Flags().IntVar(&processLimit, "limit", 0, "Maximum emails to process (0 = backend default)")
	rootCmd.AddCommand(processCmd)
}
