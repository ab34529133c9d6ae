// pkg/audit/recorder.go

// Package audit persists cleaning audit trails to PostgreSQL so applied
// remediations survive the session that produced them.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Recorder batch-inserts audit entries into a tracking table
type Recorder struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewRecorder connects to Postgres and ensures the tracking table exists
func NewRecorder(dsn string, logger *zap.Logger) (*Recorder, error) {
	if dsn == "" {
		return nil, errors.New("audit DSN cannot be empty")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}

	recorder := &Recorder{db: db, logger: logger}
	if err := recorder.setupTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup audit table: %w", err)
	}
	return recorder, nil
}

// setupTable ensures the cleaning_audit tracking table exists
func (r *Recorder) setupTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS public.cleaning_audit (
			id SERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			dataset_name TEXT NOT NULL,
			action TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create tracking table: %w", err)
	}

	r.logger.Info("Ensured cleaning_audit table exists")
	return nil
}

// Record batch-inserts the audit entries for one apply pass
func (r *Recorder) Record(ctx context.Context, sessionID, datasetName string, entries []string) error {
	if len(entries) == 0 {
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := r.db.BeginTxx(opCtx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(opCtx, `
		INSERT INTO public.cleaning_audit (session_id, dataset_name, action)
		VALUES ($1, $2, $3)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.ExecContext(opCtx, sessionID, datasetName, entry); err != nil {
			return fmt.Errorf("failed to insert audit entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Recorded audit entries",
		zap.String("session_id", sessionID),
		zap.Int("count", len(entries)))
	return nil
}

// Close releases the database connection
func (r *Recorder) Close() error {
	return r.db.Close()
}
