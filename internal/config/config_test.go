/*-------------------------------------------------------------------------
 *
 * config_test.go
 *    Tests for configuration loading
 *
 * Copyright (c) 2024-2026, Skill Mind, Inc. <support@inheritx.io>
 *
 * IDENTIFICATION
 *    InheritX-Backend/internal/config/config_test.go
 *
 *-------------------------------------------------------------------------
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/* TestLoadConfig tests YAML loading over defaults */
func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
server:
  port: 9090
  read_timeout: 15s
database:
  host: db.internal
  user: app
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout.Std())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "app", cfg.Database.User)
	assert.Equal(t, "debug", cfg.Logging.Level)

	/* Unset keys keep defaults */
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "./migrations", cfg.Database.MigrationsDir)
}

/* TestLoadConfigMissingFile tests the error path */
func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

/* TestLoadFromEnv tests environment variable overrides */
func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("DB_HOST", "env-db")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")

	cfg := DefaultConfig()
	LoadFromEnv(cfg)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

/* TestConnString tests the PostgreSQL connection string */
func TestConnString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "inheritx",
		Password: "pw",
		Database: "inheritx",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=inheritx password=pw dbname=inheritx sslmode=disable",
		cfg.ConnString())
}
