// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/config"
)

// ConnectorFactory creates dataset source connectors
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// Create builds the connector for the named source ("postgres" or
// "snowflake"); the matching configuration section must be present.
func (f *ConnectorFactory) Create(ctx context.Context, source string) (SourceConnector, error) {
	switch source {
	case "postgres":
		if f.cfg.Postgres == nil {
			return nil, fmt.Errorf("postgres source requested but not configured")
		}
		f.logger.Info("Creating PostgreSQL connector")
		conn, err := NewPostgresConnector(ctx, f.cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connector: %w", err)
		}
		return conn, nil

	case "snowflake":
		if f.cfg.Snowflake == nil {
			return nil, fmt.Errorf("snowflake source requested but not configured")
		}
		f.logger.Info("Creating Snowflake connector")
		conn, err := NewSnowflakeConnector(ctx, f.cfg.Snowflake)
		if err != nil {
			return nil, fmt.Errorf("failed to create Snowflake connector: %w", err)
		}
		return conn, nil

	default:
		return nil, fmt.Errorf("unknown dataset source %q", source)
	}
}
