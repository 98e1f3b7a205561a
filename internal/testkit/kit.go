package testkit

import (
	"context"
	"sort"
	"sync"

	"goassay/app"
	"goassay/domain/assay"
	"goassay/domain/comparison"
	"goassay/domain/core"
	"goassay/domain/cost"
)

// TestKit provides fixtures and in-memory adapters for tests and the demo
// app: canned experiments, catalog-backed comparison inputs, and repository
// implementations with no database behind them.
type TestKit struct {
	Experiments *InMemoryExperimentRepository
	Studies     *InMemoryStudyRepository
	Service     *app.ComparisonService
}

// NewTestKit creates a kit with default engine settings and seeded fixtures.
func NewTestKit() *TestKit {
	kit := &TestKit{
		Experiments: NewInMemoryExperimentRepository(),
		Studies:     NewInMemoryStudyRepository(),
		Service:     app.NewComparisonService(app.EngineConfig{}),
	}
	for _, exp := range FixtureExperiments() {
		_ = kit.Experiments.Create(context.Background(), exp)
	}
	return kit
}

// FixtureExperiments returns the canned template experiments.
func FixtureExperiments() []*assay.Experiment {
	fixtures := []struct {
		name        string
		description string
		technique   core.TechniqueID
		counts      assay.ConfusionCounts
	}{
		{"Experiment_1", "qPCR validation study", "qPCR", assay.ConfusionCounts{TruePositive: 85, FalsePositive: 3, TrueNegative: 92, FalseNegative: 5}},
		{"Experiment_2", "LAMP comparison test", "LAMP", assay.ConfusionCounts{TruePositive: 78, FalsePositive: 5, TrueNegative: 88, FalseNegative: 9}},
		{"Experiment_3", "RPA field trial", "RPA", assay.ConfusionCounts{TruePositive: 82, FalsePositive: 4, TrueNegative: 89, FalseNegative: 7}},
	}

	experiments := make([]*assay.Experiment, 0, len(fixtures))
	for _, f := range fixtures {
		exp, err := assay.NewExperiment(f.name, f.technique, f.counts)
		if err != nil {
			panic(err) // fixtures are static and must be valid
		}
		exp.Description = f.description
		experiments = append(experiments, exp)
	}
	return experiments
}

// FixtureComparisonInputs builds comparison inputs from the fixture
// experiments using built-in catalog cost models.
func FixtureComparisonInputs() []comparison.TechniqueInput {
	var inputs []comparison.TechniqueInput
	for _, exp := range FixtureExperiments() {
		model, err := cost.CatalogModel(exp.Technique)
		if err != nil {
			panic(err)
		}
		inputs = append(inputs, comparison.TechniqueInput{
			TechniqueID: exp.Technique,
			Counts:      exp.Counts,
			CostModel:   model,
		})
	}
	return inputs
}

// InMemoryExperimentRepository implements ports.ExperimentRepository.
type InMemoryExperimentRepository struct {
	mu          sync.RWMutex
	experiments map[core.ExperimentID]*assay.Experiment
}

// NewInMemoryExperimentRepository creates an empty in-memory repository.
func NewInMemoryExperimentRepository() *InMemoryExperimentRepository {
	return &InMemoryExperimentRepository{experiments: make(map[core.ExperimentID]*assay.Experiment)}
}

func (r *InMemoryExperimentRepository) Create(ctx context.Context, exp *assay.Experiment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *exp
	r.experiments[exp.ID] = &copied
	return nil
}

func (r *InMemoryExperimentRepository) GetByID(ctx context.Context, id core.ExperimentID) (*assay.Experiment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exp, ok := r.experiments[id]
	if !ok {
		return nil, core.NewNotFoundError("experiment", id.String())
	}
	copied := *exp
	return &copied, nil
}

func (r *InMemoryExperimentRepository) List(ctx context.Context, limit, offset int) ([]*assay.Experiment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*assay.Experiment, 0, len(r.experiments))
	for _, exp := range r.experiments {
		copied := *exp
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Time().Equal(all[j].CreatedAt.Time()) {
			return all[j].CreatedAt.Before(all[i].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *InMemoryExperimentRepository) ListByTechnique(ctx context.Context, technique core.TechniqueID) ([]*assay.Experiment, error) {
	all, err := r.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	var filtered []*assay.Experiment
	for _, exp := range all {
		if exp.Technique == technique {
			filtered = append(filtered, exp)
		}
	}
	return filtered, nil
}

func (r *InMemoryExperimentRepository) Delete(ctx context.Context, id core.ExperimentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.experiments[id]; !ok {
		return core.NewNotFoundError("experiment", id.String())
	}
	delete(r.experiments, id)
	return nil
}

// InMemoryStudyRepository implements ports.StudyRepository.
type InMemoryStudyRepository struct {
	mu      sync.RWMutex
	studies map[core.StudyID]*comparison.Result
	order   []core.StudyID
}

// NewInMemoryStudyRepository creates an empty in-memory study repository.
func NewInMemoryStudyRepository() *InMemoryStudyRepository {
	return &InMemoryStudyRepository{studies: make(map[core.StudyID]*comparison.Result)}
}

func (r *InMemoryStudyRepository) Save(ctx context.Context, name string, result *comparison.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *result
	r.studies[result.StudyID] = &copied
	r.order = append(r.order, result.StudyID)
	return nil
}

func (r *InMemoryStudyRepository) GetByID(ctx context.Context, id core.StudyID) (*comparison.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.studies[id]
	if !ok {
		return nil, core.NewNotFoundError("study", id.String())
	}
	copied := *result
	return &copied, nil
}

func (r *InMemoryStudyRepository) List(ctx context.Context, limit, offset int) ([]*comparison.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Newest first.
	var results []*comparison.Result
	for i := len(r.order) - 1; i >= 0; i-- {
		copied := *r.studies[r.order[i]]
		results = append(results, &copied)
	}
	if offset >= len(results) {
		return nil, nil
	}
	end := len(results)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return results[offset:end], nil
}
