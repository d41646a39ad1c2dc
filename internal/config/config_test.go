package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func clearEnv(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("HIBID_VERBOSE", "")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 8000, cfg.Port)
	require.Equal(t, 31, cfg.Api.MaxPage)
	require.Equal(t, "https://hibid.com", cfg.Scraper.BaseUrl)
	require.Equal(t, 15, cfg.Scraper.RequestTimeoutSeconds)
	require.Equal(t, []string{"hibid.com", "www.hibid.com"}, cfg.Scraper.AllowedDomains)
}

func TestLoadFileOverDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// comments are allowed
		"port": 9001,
		"api": {"max_page": 5},
		"scraper": {
			"request_timeout_seconds": 3,
			"headers": {"X-Extra": "1"}
		}
	}`), 0644)
	require.NoError(t, err)

	cfg, err := Load(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, 9001, cfg.Port)
	require.Equal(t, 5, cfg.Api.MaxPage)
	require.Equal(t, 3, cfg.Scraper.RequestTimeoutSeconds)
	require.Equal(t, "https://hibid.com", cfg.Scraper.BaseUrl)
	require.Equal(t, "1", cfg.Scraper.Headers["X-Extra"])
	require.Contains(t, cfg.Scraper.Headers, "User-Agent")
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(envOf(map[string]string{
		"PORT":           "8080",
		"HIBID_VERBOSE":  "true",
		"HIBID_DUMP_DIR": " /tmp/dumps ",
	}))
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.True(t, cfg.Verbose)
	require.Equal(t, "/tmp/dumps", cfg.DumpDir)

	cfg = Default()
	require.NoError(t, cfg.applyEnv(envOf(map[string]string{"PORT": ":9000"})))
	require.Equal(t, 9000, cfg.Port)

	cfg = Default()
	require.NoError(t, cfg.applyEnv(envOf(map[string]string{"PORT": ""})))
	require.Equal(t, 8000, cfg.Port)

	for _, bad := range []map[string]string{
		{"PORT": "http"},
		{"PORT": "70000"},
		{"HIBID_VERBOSE": "maybe"},
	} {
		cfg = Default()
		require.Error(t, cfg.applyEnv(envOf(bad)), bad)
	}
}
