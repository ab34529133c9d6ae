// pkg/config/database.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// PostgresConfig holds PostgreSQL connection parameters for dataset sources
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`

	// Connection pool settings
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	// Query timeout
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// SnowflakeConfig holds Snowflake connection parameters for dataset sources
type SnowflakeConfig struct {
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Account   string `mapstructure:"account"`
	Warehouse string `mapstructure:"warehouse"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Role      string `mapstructure:"role"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`

	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// Validate ensures required PostgreSQL parameters are present
func (c *PostgresConfig) Validate() error {
	if c.User == "" {
		return errors.New("user is required")
	}
	if c.Database == "" {
		return errors.New("database is required")
	}
	return nil
}

// Validate ensures required Snowflake parameters are present
func (c *SnowflakeConfig) Validate() error {
	if c.User == "" {
		return errors.New("user is required")
	}
	if c.Account == "" {
		return errors.New("account is required")
	}
	if c.Warehouse == "" {
		return errors.New("warehouse is required")
	}
	return nil
}

// ConnectionString returns a formatted PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Database,
		c.SSLMode,
	)
}

// applyPostgresEnv overlays POSTGRES_* environment variables, creating the
// section when the core variables are set
func applyPostgresEnv(cfg *Config) {
	if os.Getenv("POSTGRES_USER") == "" && cfg.Postgres == nil {
		return
	}
	if cfg.Postgres == nil {
		cfg.Postgres = &PostgresConfig{}
	}
	pg := cfg.Postgres
	pg.Host = getEnv("POSTGRES_HOST", defaultString(pg.Host, "localhost"))
	pg.Port = getEnvAsInt("POSTGRES_PORT", defaultInt(pg.Port, 5432))
	pg.User = getEnv("POSTGRES_USER", pg.User)
	pg.Password = getEnv("POSTGRES_PASSWORD", pg.Password)
	pg.Database = getEnv("POSTGRES_DB", pg.Database)
	pg.SSLMode = getEnv("POSTGRES_SSLMODE", defaultString(pg.SSLMode, "disable"))
	if pg.MaxOpenConns == 0 {
		pg.MaxOpenConns = getEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 10)
	}
	if pg.MaxIdleConns == 0 {
		pg.MaxIdleConns = getEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5)
	}
	if pg.ConnMaxLifetime == 0 {
		pg.ConnMaxLifetime = time.Duration(getEnvAsInt("POSTGRES_CONN_MAX_LIFETIME_SECONDS", 1800)) * time.Second
	}
	if pg.QueryTimeout == 0 {
		pg.QueryTimeout = time.Duration(getEnvAsInt("POSTGRES_QUERY_TIMEOUT_SECONDS", 300)) * time.Second
	}
}

// applySnowflakeEnv overlays SNOWFLAKE_* environment variables, creating the
// section when the core variables are set
func applySnowflakeEnv(cfg *Config) {
	if os.Getenv("SNOWFLAKE_USER") == "" && cfg.Snowflake == nil {
		return
	}
	if cfg.Snowflake == nil {
		cfg.Snowflake = &SnowflakeConfig{}
	}
	sf := cfg.Snowflake
	sf.User = getEnv("SNOWFLAKE_USER", sf.User)
	sf.Password = getEnv("SNOWFLAKE_PASSWORD", sf.Password)
	sf.Account = getEnv("SNOWFLAKE_ACCOUNT", sf.Account)
	sf.Warehouse = getEnv("SNOWFLAKE_WAREHOUSE", sf.Warehouse)
	sf.Database = getEnv("SNOWFLAKE_DATABASE", sf.Database)
	sf.Schema = getEnv("SNOWFLAKE_SCHEMA", sf.Schema)
	sf.Role = getEnv("SNOWFLAKE_ROLE", sf.Role)
	if sf.MaxOpenConns == 0 {
		sf.MaxOpenConns = getEnvAsInt("SNOWFLAKE_MAX_OPEN_CONNS", 10)
	}
	if sf.MaxIdleConns == 0 {
		sf.MaxIdleConns = getEnvAsInt("SNOWFLAKE_MAX_IDLE_CONNS", 5)
	}
	if sf.ConnMaxLifetime == 0 {
		sf.ConnMaxLifetime = time.Duration(getEnvAsInt("SNOWFLAKE_CONN_MAX_LIFETIME_SECONDS", 600)) * time.Second
	}
	if sf.QueryTimeout == 0 {
		sf.QueryTimeout = time.Duration(getEnvAsInt("SNOWFLAKE_QUERY_TIMEOUT_SECONDS", 300)) * time.Second
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
