// Package config loads the apptrack configuration file. The file is JSON
// with comments and trailing commas allowed (JWCC), standardized before
// decoding.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds user settings. Every field has a working default, so a
// missing config file is not an error.
type Config struct {
	// BaseURL of the tracking backend.
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds each backend call.
	TimeoutSeconds int `json:"timeout_seconds"`
	// PageSize for table output.
	PageSize int `json:"page_size"`
	// WatchInterval between auto-process runs in watch mode, e.g. "2h".
	WatchInterval string `json:"watch_interval"`
	// CachePath overrides the offline snapshot location.
	CachePath string `json:"cache_path"`
	// ColumnsPath overrides where column visibility is saved.
	ColumnsPath string `json:"columns_path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:8000",
		TimeoutSeconds: 30,
		PageSize:       50,
		WatchInterval:  "2h",
	}
}

// DefaultPath returns the per-user config location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".apptrack", "config.json")
	}
	return filepath.Join(dir, "apptrack", "config.json")
}

// Load reads the config at path, layered over the defaults. A missing file
// yields the defaults. The APPTRACK_API environment variable overrides
// base_url either way.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		std, err := hujson.Standardize(data)
		if err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	if api := os.Getenv("APPTRACK_API"); api != "" {
		cfg.BaseURL = api
	}
	if cfg.CachePath == "" {
		cfg.CachePath = defaultSibling("cache.db")
	}
	if cfg.ColumnsPath == "" {
		cfg.ColumnsPath = defaultSibling("columns.json")
	}
	return cfg, nil
}

func defaultSibling(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".apptrack", name)
	}
	return filepath.Join(dir, "apptrack", name)
}
