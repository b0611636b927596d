package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"DATABASE_URL", "SERVER_PORT", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "RUN_MIGRATIONS",
	"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
	"SNAPSHOT_INTERVAL", "SNAPSHOT_RETENTION", "BRACKET_BOX_HEIGHT", "BRACKET_INITIAL_GAP",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/brackets")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RunMigrations)
	assert.Zero(t, cfg.SnapshotInterval)
	assert.Equal(t, 20, cfg.SnapshotRetention)
	assert.Equal(t, 60.0, cfg.BracketBoxHeight)
	assert.Equal(t, 20.0, cfg.BracketInitialGap)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/brackets")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("SNAPSHOT_INTERVAL", "5m")
	t.Setenv("SNAPSHOT_RETENTION", "0")
	t.Setenv("BRACKET_BOX_HEIGHT", "80")
	t.Setenv("BRACKET_INITIAL_GAP", "10")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 5*time.Minute, cfg.SnapshotInterval)
	assert.Zero(t, cfg.SnapshotRetention)
	assert.Equal(t, 80.0, cfg.BracketBoxHeight)
	assert.Equal(t, 10.0, cfg.BracketInitialGap)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing database url", env: map[string]string{}},
		{name: "bad port", env: map[string]string{"SERVER_PORT": "eighty"}},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "bad interval", env: map[string]string{"SNAPSHOT_INTERVAL": "often"}},
		{name: "negative interval", env: map[string]string{"SNAPSHOT_INTERVAL": "-1m"}},
		{name: "negative retention", env: map[string]string{"SNAPSHOT_RETENTION": "-3"}},
		{name: "zero box height", env: map[string]string{"BRACKET_BOX_HEIGHT": "0"}},
		{name: "partial storage", env: map[string]string{"R2_BUCKET_NAME": "bucket"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.name != "missing database url" {
				t.Setenv("DATABASE_URL", "postgres://localhost/brackets")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_PartialStorageSentinel(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/brackets")
	t.Setenv("R2_ACCOUNT_ID", "acc")

	_, err := Load()
	assert.ErrorIs(t, err, ErrPartialStorageConfig)
}
