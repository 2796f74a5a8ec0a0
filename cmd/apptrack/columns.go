package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/columns"
	"github.com/tbonnaire/apptrack/internal/display"
)

var columnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Show table columns and their visibility",
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := columns.Load(cfg.ColumnsPath)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(model.All())
		}

		display.Header("Columns")
		for _, c := range model.All() {
			mark := display.Dim.Render("hidden")
			if c.Visible {
				mark = display.Success.Render("shown")
			}
			sortable := ""
			if !c.Sortable {
				sortable = display.Dim.Render("(not sortable)")
			}
			fmt.Printf("  %-18s %-16s %s %s\n", c.Key, c.Label, mark, sortable)
		}
		return nil
	},
}

var columnsToggleCmd = &cobra.Command{
	Use:   "toggle <key>",
	Short: "Toggle a column's visibility",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, err := columns.Load(cfg.ColumnsPath)
		if err != nil {
			return err
		}

		if !model.Toggle(args[0]) {
			return fmt.Errorf("unknown column %q", args[0])
		}
		if err := model.Save(cfg.ColumnsPath); err != nil {
			return fmt.Errorf("save column config: %w", err)
		}

		if !quietFlag {
			state := "hidden"
			for _, c := range model.All() {
				if c.Key == args[0] && c.Visible {
					state = "shown"
				}
			}
			display.SuccessMsg("column %s is now %s", args[0], state)
		}
		return nil
	},
}

func init() {
	columnsCmd.AddCommand(columnsToggleCmd)
	rootCmd.AddCommand(columnsCmd)
}
