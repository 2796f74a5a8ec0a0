package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/derive"
	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/types"
)

var showCmd = &cobra.Command{
	Use:   "show <application-id>",
	Short: "Show one application with its linked email timeline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := ensureData(cmd.Context()); err != nil {
			return err
		}

		apps, emails := recs.Snapshot()
		app, err := findApplication(apps, args[0])
		if err != nil {
			return err
		}
		timeline := derive.Timeline(app.ID, emails)

		if jsonOutput {
			out := struct {
				Application types.ApplicationRecord `json:"application"`
				AutoCreated bool                    `json:"auto_created"`
				Emails      []types.EmailRecord     `json:"emails"`
			}{*app, derive.AutoCreated(*app), timeline}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		display.Header(fmt.Sprintf("%s · %s", app.CompanyName, app.JobTitle))
		fmt.Printf("  %s %s %s %s\n",
			display.PriorityDot(derive.EffectivePriority(*app)),
			display.StatusBadge(app.Status),
			display.UrgencyMark(app.UrgencyLevel),
			display.AutoTag(derive.AutoCreated(*app)))
		fmt.Println()

		printField("ID", app.ID)
		printField("Applied", display.FormatDate(app.AppliedDate))
		printField("Last activity", display.TimeAgo(derive.LastInteraction(*app)))
		printField("Contact", app.ContactPerson)
		printField("Location", app.Location)
		printField("Interview", display.FormatDate(app.InterviewDate))
		printField("Source", app.Source)
		if app.Notes != "" {
			fmt.Println()
			display.SubHeader("  Notes")
			fmt.Printf("  %s\n", app.Notes)
		}

		fmt.Println()
		if len(timeline) == 0 {
			fmt.Println(display.Dim.Render("  No linked emails."))
			return nil
		}
		display.SubHeader(fmt.Sprintf("  Emails (%d)", len(timeline)))
		for _, e := range timeline {
			fmt.Printf("  %s  %s  %s\n",
				display.Dim.Render(display.TimeAgo(e.SentAt)),
				display.Truncate(e.Subject, 60),
				display.Muted.Render(e.Classification))
		}
		return nil
	},
}

func printField(label, value string) {
	if value == "" {
		return
	}
	fmt.Printf("  %-14s %s\n", display.Muted.Render(label), value)
}

// findApplication resolves an exact ID, then falls back to a unique prefix.
func findApplication(apps []types.ApplicationRecord, id string) (*types.ApplicationRecord, error) {
	for i := range apps {
		if apps[i].ID == id {
			return &apps[i], nil
		}
	}

	var matches []*types.ApplicationRecord
	for i := range apps {
		if strings.HasPrefix(apps[i].ID, id) {
			matches = append(matches, &apps[i])
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("application %q not found", id)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, fmt.Errorf("ambiguous ID %q, matches: %s", id, strings.Join(ids, ", "))
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
