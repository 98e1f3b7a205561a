package ports

import (
	"context"

	"goassay/domain/assay"
	"goassay/domain/core"
)

// ExperimentRepository defines the interface for experiment storage operations
type ExperimentRepository interface {
	Create(ctx context.Context, exp *assay.Experiment) error
	GetByID(ctx context.Context, id core.ExperimentID) (*assay.Experiment, error)
	List(ctx context.Context, limit, offset int) ([]*assay.Experiment, error)
	ListByTechnique(ctx context.Context, technique core.TechniqueID) ([]*assay.Experiment, error)
	Delete(ctx context.Context, id core.ExperimentID) error
}
