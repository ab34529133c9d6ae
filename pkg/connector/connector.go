// pkg/connector/connector.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/David-Botos/data-triage/pkg/dataset"
)

// SourceConnector defines the interface for warehouse dataset sources
type SourceConnector interface {
	// DB returns the underlying database handle
	DB() *sqlx.DB

	// Validate verifies the connection and permissions
	Validate() error

	// Close closes the connection and releases resources
	Close() error

	// FetchDataset executes a query and scans the result set into an
	// in-memory dataset ready for profiling
	FetchDataset(ctx context.Context, query string) (*dataset.Dataset, error)
}

// PingWithTimeout attempts to ping a database with a timeout
func PingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}

// ApplyConnectionSettings configures database connection pool settings
func ApplyConnectionSettings(db *sqlx.DB, maxOpen, maxIdle int, maxLifetime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
}

// LogConnectionStats logs connection pool statistics
func LogConnectionStats(logger *zap.Logger, name string, db *sqlx.DB) {
	stats := db.Stats()
	logger.Debug("Connection pool stats",
		zap.String("database", name),
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int("max_open", stats.MaxOpenConnections))
}

// fetchDataset runs the query with a timeout and scans the rows into a
// dataset. Shared by all connectors.
func fetchDataset(
	ctx context.Context,
	db *sqlx.DB,
	query string,
	timeout time.Duration,
) (*dataset.Dataset, error) {
	queryCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rows, err := db.QueryxContext(queryCtx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	return scanDataset(rows)
}

// scanDataset converts a result set into typed columns. A column becomes
// numeric if every non-null cell is numeric, time if every non-null cell is
// a timestamp, text otherwise.
func scanDataset(rows *sqlx.Rows) (*dataset.Dataset, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("query returned no columns")
	}

	cells := make([][]any, len(names))
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i := range names {
			cells[i] = append(cells[i], normalizeCell(raw[i]))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result set: %w", err)
	}

	columns := make([]*dataset.Column, len(names))
	for i, name := range names {
		columns[i] = typedColumn(name, cells[i])
	}
	d, err := dataset.New(columns...)
	if err != nil {
		return nil, err
	}
	if d.NumRows() > dataset.MaxRowsForFullProfile {
		d = dataset.Sample(d, dataset.MaxRowsForFullProfile)
	}
	return d, nil
}

// normalizeCell maps driver values onto dataset cell types
func normalizeCell(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case int64:
		return float64(val)
	case float64:
		return val
	case bool:
		return fmt.Sprintf("%t", val)
	case time.Time:
		return val
	case sql.RawBytes:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// typedColumn classifies scanned cells into one typed column
func typedColumn(name string, values []any) *dataset.Column {
	numeric := true
	timish := true
	nonNull := 0
	for _, v := range values {
		if v == nil {
			continue
		}
		nonNull++
		switch v.(type) {
		case float64:
			timish = false
		case time.Time:
			numeric = false
		default:
			if _, err := dataset.ToFloat(v); err != nil {
				numeric = false
			}
			timish = false
		}
	}

	col := &dataset.Column{Name: name, Type: dataset.TypeText, Values: make([]any, len(values))}
	switch {
	case nonNull > 0 && numeric:
		col.Type = dataset.TypeNumeric
	case nonNull > 0 && timish:
		col.Type = dataset.TypeTime
	}

	for i, v := range values {
		if v == nil {
			continue
		}
		switch col.Type {
		case dataset.TypeNumeric:
			f, _ := dataset.ToFloat(v)
			col.Values[i] = f
		case dataset.TypeTime:
			col.Values[i] = v
		default:
			col.Values[i] = dataset.ToString(v)
		}
	}
	return col
}
