package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
)

var rmCmd = &cobra.Command{
	Use:   "rm <application-id>",
	Short: "Delete an application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("rm needs the backend; drop --offline")
		}

		if _, err := ensureData(cmd.Context()); err != nil {
			return err
		}
		apps, _ := recs.Snapshot()
		app, err := findApplication(apps, args[0])
		if err != nil {
			return err
		}

		if err := ctrl.Delete(cmd.Context(), app.ID); err != nil {
			return err
		}

		if !quietFlag {
			display.SuccessMsg("deleted %s · %s", app.CompanyName, app.JobTitle)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
