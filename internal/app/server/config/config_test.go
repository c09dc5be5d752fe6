package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":8080", cfg.Server.RunAddress)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 45, cfg.Seed.Channels)
	assert.False(t, cfg.PushEnabled())
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RUN_ADDRESS", "127.0.0.1:9090")
	t.Setenv("TOKEN_TTL_MINUTES", "1")
	t.Setenv("SEED_NOTIFICATIONS", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("FAULTS", "GET /api/news=503")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.RunAddress)
	assert.Equal(t, time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.Seed.Notifications)
	assert.True(t, cfg.PushEnabled())
	assert.Equal(t, "GET /api/news=503", cfg.Faults)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "zero token ttl",
			env:  map[string]string{"TOKEN_TTL_MINUTES": "0"},
		},
		{
			name: "negative seed",
			env:  map[string]string{"SEED_CHANNELS": "-1"},
		},
		{
			name: "default secret in prod",
			env:  map[string]string{"APP_ENV": "prod"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
