package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"goassay/internal/errors"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createExperimentsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create experiments table")
	}
	if err := r.createComparisonStudiesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create comparison_studies table")
	}
	return nil
}

func (r *MigrationRunner) createExperimentsTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS experiments (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		technique VARCHAR(50) NOT NULL,
		true_positive INTEGER NOT NULL CHECK (true_positive >= 0),
		false_positive INTEGER NOT NULL CHECK (false_positive >= 0),
		true_negative INTEGER NOT NULL CHECK (true_negative >= 0),
		false_negative INTEGER NOT NULL CHECK (false_negative >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_experiments_technique ON experiments (technique);
	CREATE INDEX IF NOT EXISTS idx_experiments_created_at ON experiments (created_at DESC);
	`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createComparisonStudiesTable(ctx context.Context, db *sqlx.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS comparison_studies (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		fingerprint VARCHAR(64) NOT NULL,
		result JSONB NOT NULL,
		computed_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_comparison_studies_fingerprint ON comparison_studies (fingerprint);
	`
	_, err := db.ExecContext(ctx, query)
	return err
}
