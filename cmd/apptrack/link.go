package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
)

var linkCmd = &cobra.Command{
	Use:   "link <email-id> <application-id>",
	Short: "Link an email to an application",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("link needs the backend; drop --offline")
		}

		if _, err := ensureData(cmd.Context()); err != nil {
			return err
		}
		apps, _ := recs.Snapshot()
		app, err := findApplication(apps, args[1])
		if err != nil {
			return err
		}

		email, err := client.LinkEmail(cmd.Context(), args[0], app.ID)
		if err != nil {
			return err
		}
		if _, err := ctrl.Refresh(cmd.Context()); err != nil {
			display.WarnMsg("email linked but re-sync failed: %v", err)
		}

		if !quietFlag {
			display.SuccessMsg("linked %q to %s · %s",
				display.Truncate(email.Subject, 40), app.CompanyName, app.JobTitle)
		}
		return nil
	},
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink <email-id>",
	Short: "Unlink an email from its application",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("unlink needs the backend; drop --offline")
		}

		email, err := client.UnlinkEmail(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if _, err := ctrl.Refresh(cmd.Context()); err != nil {
			display.WarnMsg("email unlinked but re-sync failed: %v", err)
		}

		if !quietFlag {
			display.SuccessMsg("unlinked %q", display.Truncate(email.Subject, 40))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}
