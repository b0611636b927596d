package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrPartialStorageConfig = errors.New("R2 storage is partially configured: set all R2_* variables or none")

// Config holds every setting of the server.
type Config struct {
	DatabaseURL        string
	ServerPort         int
	LogLevel           slog.Level
	CORSAllowedOrigins []string
	RunMigrations      bool

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// SnapshotInterval of zero disables scheduled snapshots.
	SnapshotInterval time.Duration
	// SnapshotRetention is how many snapshots are kept per tournament; zero keeps all.
	SnapshotRetention int

	BracketBoxHeight  float64
	BracketInitialGap float64
}

// StorageEnabled reports whether snapshot storage is configured.
func (c *Config) StorageEnabled() bool {
	return c.R2BucketName != ""
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(envOr("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	runMigrations, err := strconv.ParseBool(envOr("RUN_MIGRATIONS", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_MIGRATIONS environment variable: %w", err)
	}

	interval, err := time.ParseDuration(envOr("SNAPSHOT_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_INTERVAL environment variable: %w", err)
	}
	if interval < 0 {
		return nil, fmt.Errorf("SNAPSHOT_INTERVAL must not be negative, got %s", interval)
	}

	retention, err := intEnv("SNAPSHOT_RETENTION", 20)
	if err != nil {
		return nil, err
	}
	if retention < 0 {
		return nil, fmt.Errorf("SNAPSHOT_RETENTION must not be negative, got %d", retention)
	}

	boxHeight, err := floatEnv("BRACKET_BOX_HEIGHT", 60)
	if err != nil {
		return nil, err
	}
	initialGap, err := floatEnv("BRACKET_INITIAL_GAP", 20)
	if err != nil {
		return nil, err
	}
	if boxHeight <= 0 || initialGap < 0 {
		return nil, fmt.Errorf("bracket geometry must have a positive box height and a non-negative gap, got %v/%v", boxHeight, initialGap)
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		ServerPort:         port,
		LogLevel:           level,
		CORSAllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
		RunMigrations:      runMigrations,
		R2AccountID:        os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:       os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:    os.Getenv("R2_PUBLIC_BASE_URL"),
		SnapshotInterval:   interval,
		SnapshotRetention:  retention,
		BracketBoxHeight:   boxHeight,
		BracketInitialGap:  initialGap,
	}

	if err := cfg.validateStorage(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validateStorage() error {
	values := []string{c.R2AccountID, c.R2AccessKeyID, c.R2SecretAccessKey, c.R2BucketName, c.R2PublicBaseURL}
	set := 0
	for _, v := range values {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(values) {
		return ErrPartialStorageConfig
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
