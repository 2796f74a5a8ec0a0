package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbonnaire/apptrack/internal/api"
	"github.com/tbonnaire/apptrack/internal/cache"
	"github.com/tbonnaire/apptrack/internal/config"
	"github.com/tbonnaire/apptrack/internal/display"
	"github.com/tbonnaire/apptrack/internal/store"
	"github.com/tbonnaire/apptrack/internal/tracker"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	configPath  string
	apiFlag     string
	jsonOutput  bool
	quietFlag   bool
	offlineFlag bool

	cfg    config.Config
	client *api.Client
	recs   *store.Store
	snap   *cache.Cache
	ctrl   *tracker.Controller
)

var rootCmd = &cobra.Command{
	Use:   "apptrack",
	Short: "apptrack - Track job applications from the terminal",
	Long:  "Apptrack: fetch, filter, and reconcile recruitment tracking data from the intelligent tracker backend.",
	// Errors are rendered by main with styling, not by cobra.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		if apiFlag != "" {
			cfg.BaseURL = apiFlag
		}

		// Local-only commands never touch the backend or the cache.
		switch cmd.Name() {
		case "help", "version", "completion", "columns", "toggle":
			return nil
		}

		client = api.New(cfg.BaseURL, time.Duration(cfg.TimeoutSeconds)*time.Second)
		recs = store.New()

		opts := []tracker.Option{tracker.WithPageSize(cfg.PageSize)}
		if c, err := cache.Open(cfg.CachePath); err == nil {
			snap = c
			opts = append(opts, tracker.WithSnapshotter(c))
		} else if !quietFlag {
			display.WarnMsg("offline cache unavailable: %v", err)
		}
		ctrl = tracker.New(client, recs, opts...)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if snap != nil {
			snap.Close()
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("apptrack version %s\n", Version)
	},
}

// ensureData refreshes from the backend, falling back to the cached snapshot
// when the backend is unreachable (or when --offline forces it).
func ensureData(ctx context.Context) (*tracker.View, error) {
	if offlineFlag {
		view, err := seedFromCache()
		if err != nil {
			return nil, err
		}
		if !quietFlag && !jsonOutput {
			fmt.Println(display.StaleNotice(view.FetchedAt))
		}
		return view, nil
	}

	view, err := ctrl.Refresh(ctx)
	if err == nil {
		return view, nil
	}
	if errors.Is(err, api.ErrNetwork) && snap != nil {
		if stale, serr := seedFromCache(); serr == nil {
			if !quietFlag && !jsonOutput {
				fmt.Println(display.StaleNotice(stale.FetchedAt))
			}
			return stale, nil
		}
	}
	return nil, err
}

func seedFromCache() (*tracker.View, error) {
	if snap == nil {
		return nil, fmt.Errorf("offline cache unavailable")
	}
	apps, emails, fetchedAt, err := snap.Load()
	if err != nil {
		return nil, fmt.Errorf("load cached snapshot: %w", err)
	}
	return ctrl.Seed(apps, emails, fetchedAt), nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&apiFlag, "api", "", "Backend base URL (overrides config and APPTRACK_API)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&offlineFlag, "offline", false, "Use the cached snapshot instead of the backend")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		display.ErrorMsg("%v", err)
		if errors.Is(err, api.ErrNetwork) {
			display.WarnMsg("backend unreachable; retry, or use --offline for the cached snapshot")
		}
		os.Exit(1)
	}
}
