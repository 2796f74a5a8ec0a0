package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 50, cfg.PageSize)
	assert.NotEmpty(t, cfg.CachePath)
	assert.NotEmpty(t, cfg.ColumnsPath)
}

func TestLoadAcceptsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// where the tracker backend lives
		"base_url": "https://tracker.example.com",
		"page_size": 25, // smaller terminal
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://tracker.example.com", cfg.BaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 30, cfg.TimeoutSeconds, "unset fields keep defaults")
}

func TestLoadRejectsBrokenJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": `), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv("APPTRACK_API", "http://10.0.0.5:9000")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": "http://file-wins.example"}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:9000", cfg.BaseURL)
}
