package ports

import (
	"context"

	"goassay/domain/comparison"
	"goassay/domain/core"
)

// StudyRepository persists completed comparison results. The engine itself
// never persists anything; callers decide what to keep.
type StudyRepository interface {
	Save(ctx context.Context, name string, result *comparison.Result) error
	GetByID(ctx context.Context, id core.StudyID) (*comparison.Result, error)
	List(ctx context.Context, limit, offset int) ([]*comparison.Result, error)
}
