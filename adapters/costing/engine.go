package costing

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"goassay/domain/assay"
	"goassay/domain/core"
	"goassay/domain/cost"
)

// Default unit costs for misclassification: an unnecessary follow-up for a
// false positive, a missed diagnosis for a false negative.
const (
	DefaultFalsePositiveUnitCost = 100.0
	DefaultFalseNegativeUnitCost = 500.0
	DefaultPowerCostPerKWh       = 4.2
)

// Engine combines per-technique cost models with diagnostic performance.
// Scoring is two-phase: Evaluate produces raw per-technique metrics, then
// ScoreSet normalizes cost and accuracy across the whole comparison set.
// No technique can compute its own composite score in isolation.
type Engine struct {
	fpUnitCost  float64
	fnUnitCost  float64
	powerPerKWh float64
}

// NewEngine creates a cost engine with default unit costs.
func NewEngine() *Engine {
	return &Engine{
		fpUnitCost:  DefaultFalsePositiveUnitCost,
		fnUnitCost:  DefaultFalseNegativeUnitCost,
		powerPerKWh: DefaultPowerCostPerKWh,
	}
}

// NewEngineWithUnitCosts overrides the misclassification unit costs.
func NewEngineWithUnitCosts(fpUnitCost, fnUnitCost float64) *Engine {
	e := NewEngine()
	if fpUnitCost >= 0 {
		e.fpUnitCost = fpUnitCost
	}
	if fnUnitCost >= 0 {
		e.fnUnitCost = fnUnitCost
	}
	return e
}

// Evaluate computes raw cost metrics for one technique. CostPerCorrectResult
// carries the undefined sentinel when accuracy is undefined or zero; callers
// needing a plain number must go through CostPerCorrect, which surfaces the
// typed error instead of an infinity.
func (e *Engine) Evaluate(model cost.Model, diag assay.DiagnosticStats, expectedVolume int) (cost.EffectivenessResult, error) {
	if err := model.Validate(); err != nil {
		return cost.EffectivenessResult{}, err
	}
	if expectedVolume <= 0 {
		return cost.EffectivenessResult{}, fmt.Errorf("expected volume must be positive, got %d", expectedVolume)
	}

	volume := float64(expectedVolume)
	breakdown := cost.Breakdown{
		Equipment:   model.EquipmentCost / volume,
		Reagents:    model.ReagentCostPerSample,
		Labor:       model.LaborCostPerSample,
		Maintenance: model.MaintenanceCostAnnual / volume,
		Power:       (model.PowerConsumptionWatts / 1000) * (model.MinutesPerTest / 60) * e.powerPerKWh,
	}
	perSample := breakdown.Equipment + breakdown.Reagents + breakdown.Labor + breakdown.Maintenance + breakdown.Power

	perCorrect := assay.UndefinedRatio()
	if diag.Accuracy.Defined && diag.Accuracy.Value > 0 {
		perCorrect = assay.DefinedRatio(perSample / diag.Accuracy.Value)
	}

	return cost.EffectivenessResult{
		TechniqueID:          model.TechniqueID,
		CostPerSample:        perSample,
		CostBreakdown:        breakdown,
		CostPerCorrectResult: perCorrect,
		Misclassification:    e.misclassificationCosts(diag),
	}, nil
}

// CostPerCorrect unwraps the cost-per-correct-result sentinel, failing with
// ErrUndefinedCostRatio instead of returning infinity.
func CostPerCorrect(result cost.EffectivenessResult) (float64, error) {
	if !result.CostPerCorrectResult.Defined {
		return 0, core.ErrUndefinedCostRatio
	}
	return result.CostPerCorrectResult.Value, nil
}

// misclassificationCosts estimates expected per-sample error costs. An
// undefined error rate means the matching class is absent, so that class
// contributes no expected cost.
func (e *Engine) misclassificationCosts(diag assay.DiagnosticStats) cost.MisclassificationCosts {
	fpCost := diag.FalsePositiveRate.Or(0) * e.fpUnitCost
	fnCost := diag.FalseNegativeRate.Or(0) * e.fnUnitCost
	return cost.MisclassificationCosts{
		FalsePositiveCost: fpCost,
		FalseNegativeCost: fnCost,
		TotalErrorCost:    fpCost + fnCost,
	}
}

// ScoredItem pairs a technique's raw cost result with the accuracy used for
// normalization.
type ScoredItem struct {
	Result   *cost.EffectivenessResult
	Accuracy assay.Ratio
}

// ScoreSet fills in composite scores across one comparison set using min-max
// normalization. A single technique has nothing to normalize against, so its
// composite is its accuracy alone. When an axis has zero spread every
// technique receives the full score for that axis, leaving discrimination to
// the other axis.
func (e *Engine) ScoreSet(items []ScoredItem, weights cost.Weights) error {
	if len(items) == 0 {
		return nil
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	if len(items) == 1 {
		items[0].Result.CompositeScore = items[0].Accuracy.Or(0)
		return nil
	}

	costs := make([]float64, len(items))
	accuracies := make([]float64, len(items))
	for i, item := range items {
		costs[i] = item.Result.CostPerSample
		accuracies[i] = item.Accuracy.Or(0)
	}

	minCost, _ := stats.Min(costs)
	maxCost, _ := stats.Max(costs)
	minAcc, _ := stats.Min(accuracies)
	maxAcc, _ := stats.Max(accuracies)

	weightSum := weights.Cost + weights.Accuracy
	for i, item := range items {
		invCost := normalizeInverse(costs[i], minCost, maxCost)
		acc := normalize(accuracies[i], minAcc, maxAcc)
		item.Result.CompositeScore = (weights.Cost*invCost + weights.Accuracy*acc) / weightSum
	}
	return nil
}

// normalize maps v onto [0,1] across [min,max]; full score when the axis has
// no spread.
func normalize(v, min, max float64) float64 {
	if max == min {
		return 1
	}
	return (v - min) / (max - min)
}

// normalizeInverse gives the cheapest technique 1 and the dearest 0.
func normalizeInverse(v, min, max float64) float64 {
	if max == min {
		return 1
	}
	return (max - v) / (max - min)
}
