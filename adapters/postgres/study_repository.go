package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"goassay/domain/comparison"
	"goassay/domain/core"
	apperrors "goassay/internal/errors"
	"goassay/ports"
)

// studyRepository implements the StudyRepository interface. The full ranked
// result is stored as a JSONB payload; the raw inputs stay in experiments.
type studyRepository struct {
	db *sqlx.DB
}

// NewStudyRepository creates a new comparison study repository
func NewStudyRepository(db *sqlx.DB) ports.StudyRepository {
	return &studyRepository{db: db}
}

// Save stores a completed comparison result
func (r *studyRepository) Save(ctx context.Context, name string, result *comparison.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal comparison result: %w", err)
	}

	query := `INSERT INTO comparison_studies (id, name, fingerprint, result, computed_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.db.ExecContext(ctx, query,
		result.StudyID, name, result.Fingerprint, payload, result.ComputedAt.Time(),
	)
	if err != nil {
		return apperrors.DatabaseError("failed to save comparison study", err)
	}
	return nil
}

// GetByID retrieves a stored comparison result
func (r *studyRepository) GetByID(ctx context.Context, id core.StudyID) (*comparison.Result, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT result FROM comparison_studies WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.NewNotFoundError("study", id.String())
		}
		return nil, apperrors.DatabaseError("failed to get comparison study", err)
	}

	var result comparison.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comparison result: %w", err)
	}
	return &result, nil
}

// List retrieves stored comparison results with pagination, newest first
func (r *studyRepository) List(ctx context.Context, limit, offset int) ([]*comparison.Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT result FROM comparison_studies ORDER BY computed_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to query comparison studies", err)
	}
	defer rows.Close()

	var results []*comparison.Result
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, apperrors.DatabaseError("failed to scan comparison study", err)
		}
		var result comparison.Result
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comparison result: %w", err)
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.DatabaseError("failed to iterate comparison studies", err)
	}
	return results, nil
}
