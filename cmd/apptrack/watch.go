package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/display"
)

var (
	watchInterval string
	watchLimit    int
	watchNoProc   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Periodically auto-process emails and re-sync",
	Long: `Run until interrupted, triggering the backend's auto-processing on a fixed
interval and re-syncing the local snapshot after each run. One cycle runs
immediately on startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if offlineFlag {
			return fmt.Errorf("watch needs the backend; drop --offline")
		}

		interval := watchInterval
		if interval == "" {
			interval = cfg.WatchInterval
		}
		if _, err := time.ParseDuration(interval); err != nil {
			return fmt.Errorf("invalid interval %q: %w", interval, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cycle := func() {
			runCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()

			if watchNoProc {
				view, err := ctrl.Refresh(runCtx)
				if err != nil {
					display.ErrorMsg("sync failed: %v", err)
					return
				}
				if !quietFlag {
					fmt.Printf("%s synced %d application(s)\n",
						display.Dim.Render(time.Now().Format("15:04:05")), view.Page.TotalCount)
				}
				return
			}

			result, view, err := ctrl.Process(runCtx, watchLimit)
			if err != nil {
				display.ErrorMsg("cycle failed: %v", err)
				return
			}
			if !quietFlag {
				c := result.Results
				total := 0
				if view != nil {
					total = view.Page.TotalCount
				}
				fmt.Printf("%s processed %d email(s), +%d application(s), now tracking %d\n",
					display.Dim.Render(time.Now().Format("15:04:05")),
					c.ProcessedEmails, c.CreatedApplications, total)
			}
		}

		if !quietFlag {
			fmt.Printf("Watching every %s. Ctrl-C to stop.\n", interval)
		}
		cycle()

		sched := cron.New()
		if _, err := sched.AddFunc("@every "+interval, cycle); err != nil {
			return fmt.Errorf("schedule cycle: %w", err)
		}
		sched.Start()
		defer sched.Stop()

		<-ctx.Done()
		if !quietFlag {
			fmt.Println("\nStopped.")
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchInterval, "interval", "", "Cycle interval, e.g. 30m or 2h (default from config)")
	watchCmd.Flags().IntVar(&watchLimit, "limit", 0, "Maximum emails per processing run")
	watchCmd.Flags().BoolVar(&watchNoProc, "sync-only", false, "Only re-sync, never trigger processing")
	rootCmd.AddCommand(watchCmd)
}
