package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"goassay/adapters/costing"
	"goassay/adapters/stats"
	"goassay/domain/agreement"
	"goassay/domain/assay"
	"goassay/domain/comparison"
	"goassay/domain/core"
	"goassay/domain/cost"
)

// DefaultMaxParallelEvaluations bounds concurrent per-technique evaluation.
const DefaultMaxParallelEvaluations = 8

// ComparisonService orchestrates the full pipeline across techniques:
// validate -> diagnostics + agreement -> quality -> cost, then a single
// normalization and ranking pass over the collected results.
type ComparisonService struct {
	validator   *stats.MatrixValidator
	diagnostics *stats.DiagnosticCalculator
	kappa       *stats.KappaCalculator
	quality     *stats.QualityAnalyzer
	costs       *costing.Engine
	maxParallel int64
}

// EngineConfig bundles the tunable engine constants. Zero values select the
// documented defaults.
type EngineConfig struct {
	ConfidenceLevel float64
	Quality         stats.QualityConfig
	MaxParallel     int64
}

// NewComparisonService wires the engine components together.
func NewComparisonService(cfg EngineConfig) *ComparisonService {
	maxParallel := cfg.MaxParallel
	if maxParallel <= 0 {
		maxParallel = DefaultMaxParallelEvaluations
	}
	return &ComparisonService{
		validator:   stats.NewMatrixValidator(),
		diagnostics: stats.NewDiagnosticCalculator(cfg.ConfidenceLevel),
		kappa:       stats.NewKappaCalculator(cfg.ConfidenceLevel),
		quality:     stats.NewQualityAnalyzer(cfg.Quality),
		costs:       costing.NewEngine(),
		maxParallel: maxParallel,
	}
}

// CompareRequest defines one multi-technique comparison.
type CompareRequest struct {
	Inputs         []comparison.TechniqueInput
	ExpectedVolume int
	Weights        cost.Weights // zero value selects DefaultWeights
}

// ExperimentAnalysis is the single-experiment result bundle: diagnostics,
// agreement, and advisory warnings.
type ExperimentAnalysis struct {
	Validation   assay.ValidationResult `json:"validation"`
	Stats        assay.DiagnosticStats  `json:"stats"`
	Agreement    *agreement.Result      `json:"agreement,omitempty"`
	AgreementErr string                 `json:"agreement_error,omitempty"`
	Warnings     []assay.QualityWarning `json:"warnings,omitempty"`
}

// AnalyzeExperiment runs the single-matrix pipeline. An undefined kappa is
// reported in-band; every other failure aborts.
func (s *ComparisonService) AnalyzeExperiment(ctx context.Context, counts assay.ConfusionCounts) (*ExperimentAnalysis, error) {
	validation, err := s.validator.Validate(counts)
	if err != nil {
		return nil, err
	}

	diag, err := s.diagnostics.Compute(counts)
	if err != nil {
		return nil, err
	}

	analysis := &ExperimentAnalysis{
		Validation: validation,
		Stats:      diag,
		Warnings:   s.quality.Analyze(counts),
	}

	kappaResult, err := s.kappa.Compute(counts)
	switch {
	case err == nil:
		analysis.Agreement = kappaResult
	case errors.Is(err, core.ErrUndefinedKappa):
		analysis.AgreementErr = err.Error()
	default:
		return nil, err
	}

	return analysis, nil
}

// Compare runs the pipeline for every technique and produces a single ranked
// result. One invalid matrix aborts the whole comparison: callers get a
// clear signal to fix input rather than a misleading partial ranking.
func (s *ComparisonService) Compare(ctx context.Context, req CompareRequest) (*comparison.Result, error) {
	if len(req.Inputs) == 0 {
		return nil, core.ErrEmptyComparison
	}
	if req.ExpectedVolume <= 0 {
		return nil, fmt.Errorf("expected volume must be positive, got %d", req.ExpectedVolume)
	}

	weights := req.Weights
	if weights == (cost.Weights{}) {
		weights = cost.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	// Validate everything up front so a bad technique aborts before any
	// concurrent work starts.
	seen := make(map[core.TechniqueID]bool, len(req.Inputs))
	for _, input := range req.Inputs {
		if input.TechniqueID == "" {
			return nil, fmt.Errorf("technique ID must be set")
		}
		if seen[input.TechniqueID] {
			return nil, fmt.Errorf("duplicate technique %s in comparison", input.TechniqueID)
		}
		seen[input.TechniqueID] = true

		if _, err := s.validator.Validate(input.Counts); err != nil {
			return nil, fmt.Errorf("technique %s: %w", input.TechniqueID, err)
		}
		if err := input.CostModel.Validate(); err != nil {
			return nil, fmt.Errorf("technique %s: %w", input.TechniqueID, err)
		}
	}

	// Per-technique evaluation is independent; run it concurrently, bounded,
	// and join before the normalization pass.
	outcomes := make([]comparison.TechniqueOutcome, len(req.Inputs))
	evalErrs := make([]error, len(req.Inputs))
	sem := semaphore.NewWeighted(s.maxParallel)
	var wg sync.WaitGroup

	for i, input := range req.Inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(idx int, in comparison.TechniqueInput) {
			defer wg.Done()
			defer sem.Release(1)
			outcomes[idx], evalErrs[idx] = s.evaluateTechnique(ctx, in, req.ExpectedVolume)
		}(i, input)
	}
	wg.Wait()

	for i, err := range evalErrs {
		if err != nil {
			return nil, fmt.Errorf("technique %s: %w", req.Inputs[i].TechniqueID, err)
		}
	}

	// Normalization needs the whole set; this is the join point.
	items := make([]costing.ScoredItem, len(outcomes))
	for i := range outcomes {
		items[i] = costing.ScoredItem{
			Result:   &outcomes[i].Effectiveness,
			Accuracy: outcomes[i].Stats.Accuracy,
		}
	}
	if err := s.costs.ScoreSet(items, weights); err != nil {
		return nil, err
	}

	rankOutcomes(outcomes)

	return &comparison.Result{
		StudyID:     core.StudyID(core.NewID()),
		Outcomes:    outcomes,
		Weights:     weights,
		Fingerprint: requestFingerprint(req, weights),
		ComputedAt:  core.Now(),
	}, nil
}

// evaluateTechnique runs the per-technique portion of the pipeline.
func (s *ComparisonService) evaluateTechnique(ctx context.Context, input comparison.TechniqueInput, expectedVolume int) (comparison.TechniqueOutcome, error) {
	analysis, err := s.AnalyzeExperiment(ctx, input.Counts)
	if err != nil {
		return comparison.TechniqueOutcome{}, err
	}

	model := input.CostModel
	model.TechniqueID = input.TechniqueID
	effectiveness, err := s.costs.Evaluate(model, analysis.Stats, expectedVolume)
	if err != nil {
		return comparison.TechniqueOutcome{}, err
	}

	return comparison.TechniqueOutcome{
		TechniqueID:   input.TechniqueID,
		Validation:    analysis.Validation,
		Stats:         analysis.Stats,
		Agreement:     analysis.Agreement,
		AgreementErr:  analysis.AgreementErr,
		Warnings:      analysis.Warnings,
		Effectiveness: effectiveness,
	}, nil
}

// rankOutcomes sorts descending by composite score, ties broken by lower
// cost per sample, then technique ID lexical order for full determinism.
func rankOutcomes(outcomes []comparison.TechniqueOutcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		a, b := outcomes[i], outcomes[j]
		if a.Effectiveness.CompositeScore != b.Effectiveness.CompositeScore {
			return a.Effectiveness.CompositeScore > b.Effectiveness.CompositeScore
		}
		if a.Effectiveness.CostPerSample != b.Effectiveness.CostPerSample {
			return a.Effectiveness.CostPerSample < b.Effectiveness.CostPerSample
		}
		return a.TechniqueID < b.TechniqueID
	})
	for i := range outcomes {
		outcomes[i].Rank = i + 1
	}
}

// requestFingerprint hashes the comparison inputs for the audit trail.
func requestFingerprint(req CompareRequest, weights cost.Weights) core.Hash {
	parts := make(map[string]string, len(req.Inputs)+1)
	for _, input := range req.Inputs {
		parts[input.TechniqueID.String()] = input.Counts.Fingerprint() + "|" + input.CostModel.Fingerprint()
	}
	parts["_request"] = core.CountsFingerprint(req.ExpectedVolume, weights.Cost, weights.Accuracy)
	return core.ComparisonFingerprint(parts)
}
