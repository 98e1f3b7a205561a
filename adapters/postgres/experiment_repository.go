package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"goassay/domain/assay"
	"goassay/domain/core"
	apperrors "goassay/internal/errors"
	"goassay/ports"
)

// experimentRepository implements the ExperimentRepository interface
type experimentRepository struct {
	db *sqlx.DB
}

// NewExperimentRepository creates a new experiment repository
func NewExperimentRepository(db *sqlx.DB) ports.ExperimentRepository {
	return &experimentRepository{db: db}
}

// Create inserts a new experiment into the database
func (r *experimentRepository) Create(ctx context.Context, exp *assay.Experiment) error {
	query := `INSERT INTO experiments (
		id, name, description, technique,
		true_positive, false_positive, true_negative, false_negative, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		exp.ID, exp.Name, exp.Description, exp.Technique,
		exp.Counts.TruePositive, exp.Counts.FalsePositive,
		exp.Counts.TrueNegative, exp.Counts.FalseNegative,
		exp.CreatedAt.Time(),
	)
	if err != nil {
		return apperrors.DatabaseError("failed to create experiment", err)
	}
	return nil
}

// GetByID retrieves an experiment by its ID
func (r *experimentRepository) GetByID(ctx context.Context, id core.ExperimentID) (*assay.Experiment, error) {
	query := `SELECT
		id, name, COALESCE(description, '') as description, technique,
		true_positive, false_positive, true_negative, false_negative, created_at
	FROM experiments WHERE id = $1`

	exp, err := scanExperiment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("experiment", id.String())
		}
		return nil, apperrors.DatabaseError("failed to get experiment", err)
	}
	return exp, nil
}

// List retrieves experiments with pagination, newest first
func (r *experimentRepository) List(ctx context.Context, limit, offset int) ([]*assay.Experiment, error) {
	query := `SELECT
		id, name, COALESCE(description, '') as description, technique,
		true_positive, false_positive, true_negative, false_negative, created_at
	FROM experiments
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to query experiments", err)
	}
	defer rows.Close()

	return collectExperiments(rows)
}

// ListByTechnique retrieves experiments for one technique, newest first
func (r *experimentRepository) ListByTechnique(ctx context.Context, technique core.TechniqueID) ([]*assay.Experiment, error) {
	query := `SELECT
		id, name, COALESCE(description, '') as description, technique,
		true_positive, false_positive, true_negative, false_negative, created_at
	FROM experiments
	WHERE technique = $1
	ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, technique)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to query experiments", err)
	}
	defer rows.Close()

	return collectExperiments(rows)
}

// Delete removes an experiment
func (r *experimentRepository) Delete(ctx context.Context, id core.ExperimentID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM experiments WHERE id = $1`, id)
	if err != nil {
		return apperrors.DatabaseError("failed to delete experiment", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.DatabaseError("failed to check delete result", err)
	}
	if affected == 0 {
		return core.NewNotFoundError("experiment", id.String())
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanExperiment(row rowScanner) (*assay.Experiment, error) {
	var exp assay.Experiment
	var createdAt time.Time
	err := row.Scan(
		&exp.ID, &exp.Name, &exp.Description, &exp.Technique,
		&exp.Counts.TruePositive, &exp.Counts.FalsePositive,
		&exp.Counts.TrueNegative, &exp.Counts.FalseNegative,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	exp.CreatedAt = core.NewTimestamp(createdAt)
	return &exp, nil
}

func collectExperiments(rows *sql.Rows) ([]*assay.Experiment, error) {
	var experiments []*assay.Experiment
	for rows.Next() {
		exp, err := scanExperiment(rows)
		if err != nil {
			return nil, apperrors.DatabaseError("failed to scan experiment", err)
		}
		experiments = append(experiments, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("failed to iterate experiments", err)
	}
	return experiments, nil
}
