// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Where cleaned datasets and audit files are written
	OutputDir string `mapstructure:"output_dir"`

	// Optional warehouse sources for pulling datasets
	Postgres  *PostgresConfig  `mapstructure:"postgres"`
	Snowflake *SnowflakeConfig `mapstructure:"snowflake"`

	// Optional Postgres DSN for persisting audit entries
	AuditDSN string `mapstructure:"audit_dsn"`
}

// Load reads configuration from an optional YAML file merged with
// environment variables. A .env file in the working directory is loaded
// first if present; explicit environment always wins.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is not an error
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("output_dir", "out")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("datatriage")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.datatriage")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	// Environment overrides
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.OutputDir = getEnv("OUTPUT_DIR", cfg.OutputDir)
	cfg.AuditDSN = getEnv("AUDIT_DSN", cfg.AuditDSN)
	applyPostgresEnv(cfg)
	applySnowflakeEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if c.Postgres != nil {
		if err := c.Postgres.Validate(); err != nil {
			return fmt.Errorf("postgres configuration invalid: %w", err)
		}
	}
	if c.Snowflake != nil {
		if err := c.Snowflake.Validate(); err != nil {
			return fmt.Errorf("snowflake configuration invalid: %w", err)
		}
	}
	return nil
}

// Helper functions for environment variables

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
