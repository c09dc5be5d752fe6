package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20, cfg.PageLimit)
	assert.Equal(t, time.Minute, cfg.RefreshSkew)
	assert.Equal(t, filepath.Join(cfg.ConfigDir, "pressroom.db"), cfg.DataPath)
	assert.False(t, cfg.PushEnabled())
	assert.True(t, cfg.IsLocal())
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("PAGE_LIMIT", "50")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DATA_PATH", "/tmp/p.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 50, cfg.PageLimit)
	assert.Equal(t, "/tmp/p.db", cfg.DataPath)
	assert.True(t, cfg.PushEnabled())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "pressroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: http://sandbox:9000\npage_limit: 15\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://sandbox:9000", cfg.APIBaseURL)
	assert.Equal(t, 15, cfg.PageLimit)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("API_BASE_URL", "ftp://nope")
	_, err := Load("")
	assert.Error(t, err)

	t.Setenv("API_BASE_URL", "http://ok")
	t.Setenv("PAGE_LIMIT", "500")
	_, err = Load("")
	assert.Error(t, err)

	assert.Panics(t, func() { MustLoad("") })
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PAGE_LIMIT=42\n"), 0o600))
	t.Setenv("PAGE_LIMIT", "")
	os.Unsetenv("PAGE_LIMIT")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.PageLimit)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
