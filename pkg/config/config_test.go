package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datatriage.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
log_format: console
output_dir: /tmp/triage
postgres:
  host: db.example.com
  port: 5433
  user: analyst
  password: secret
  database: warehouse
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "/tmp/triage", cfg.OutputDir)
	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "db.example.com", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Nil(t, cfg.Snowflake)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "log_level: debug\n")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("OUTPUT_DIR", "/data/out")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "/data/out", cfg.OutputDir)
}

func TestPostgresSectionFromEnvironment(t *testing.T) {
	path := writeConfig(t, "{}\n")
	t.Setenv("POSTGRES_USER", "analyst")
	t.Setenv("POSTGRES_DB", "warehouse")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "analyst", cfg.Postgres.User)
	assert.Equal(t, "warehouse", cfg.Postgres.Database)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}

func TestLoadRejectsIncompletePostgresSection(t *testing.T) {
	path := writeConfig(t, `
postgres:
  host: db.example.com
`)
	t.Setenv("POSTGRES_USER", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres configuration invalid")
}

func TestLoadRejectsIncompleteSnowflakeSection(t *testing.T) {
	path := writeConfig(t, `
snowflake:
  user: analyst
`)
	t.Setenv("SNOWFLAKE_ACCOUNT", "")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snowflake configuration invalid")
}

func TestPostgresConnectionString(t *testing.T) {
	pg := &PostgresConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p",
		Database: "d", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=u password=p dbname=d sslmode=disable",
		pg.ConnectionString())
}
