package cost

import (
	"fmt"

	"goassay/domain/assay"
	"goassay/domain/core"
)

// Model captures the per-technique cost structure. Equipment is a capital
// cost amortized over the expected sample volume; the remaining fields are
// per-sample or per-year operating costs. All fields non-negative.
type Model struct {
	TechniqueID          core.TechniqueID `json:"technique_id"`
	EquipmentCost        float64          `json:"equipment_cost"`
	ReagentCostPerSample float64          `json:"reagent_cost_per_sample"`
	LaborCostPerSample   float64          `json:"labor_cost_per_sample"`
	ThroughputPerHour    float64          `json:"throughput_samples_per_hour"`

	// Extended operating costs. Zero values mean "not modeled" and
	// contribute nothing to the per-sample cost.
	MaintenanceCostAnnual float64 `json:"maintenance_cost_annual,omitempty"`
	PowerConsumptionWatts float64 `json:"power_consumption_watts,omitempty"`
	MinutesPerTest        float64 `json:"minutes_per_test,omitempty"`
}

// Validate checks the non-negativity invariant on all cost fields.
func (m Model) Validate() error {
	fields := map[string]float64{
		"equipment_cost":              m.EquipmentCost,
		"reagent_cost_per_sample":     m.ReagentCostPerSample,
		"labor_cost_per_sample":       m.LaborCostPerSample,
		"throughput_samples_per_hour": m.ThroughputPerHour,
		"maintenance_cost_annual":     m.MaintenanceCostAnnual,
		"power_consumption_watts":     m.PowerConsumptionWatts,
		"minutes_per_test":            m.MinutesPerTest,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("cost model %s must be non-negative, got %f", name, v)
		}
	}
	return nil
}

// Fingerprint renders the model into a stable string for audit hashing.
func (m Model) Fingerprint() string {
	return core.CountsFingerprint(
		m.EquipmentCost, m.ReagentCostPerSample, m.LaborCostPerSample,
		m.ThroughputPerHour, m.MaintenanceCostAnnual, m.PowerConsumptionWatts, m.MinutesPerTest,
	)
}

// Breakdown itemizes the per-sample cost composition.
type Breakdown struct {
	Equipment   float64 `json:"equipment"`
	Reagents    float64 `json:"reagents"`
	Labor       float64 `json:"labor"`
	Maintenance float64 `json:"maintenance"`
	Power       float64 `json:"power"`
}

// MisclassificationCosts estimates the expected per-sample cost of
// classification errors at fixed unit prices.
type MisclassificationCosts struct {
	FalsePositiveCost float64 `json:"false_positive_cost"`
	FalseNegativeCost float64 `json:"false_negative_cost"`
	TotalErrorCost    float64 `json:"total_error_cost"`
}

// EffectivenessResult blends cost with diagnostic performance for one
// technique. CostPerCorrectResult carries the undefined sentinel when
// accuracy is undefined or zero.
type EffectivenessResult struct {
	TechniqueID          core.TechniqueID       `json:"technique_id"`
	CostPerSample        float64                `json:"cost_per_sample"`
	CostBreakdown        Breakdown              `json:"cost_breakdown"`
	CostPerCorrectResult assay.Ratio            `json:"cost_per_correct_result"`
	Misclassification    MisclassificationCosts `json:"misclassification"`
	CompositeScore       float64                `json:"composite_score"`
}

// Weights configure the composite score blend. They must sum to a positive
// value; callers normally leave the defaults.
type Weights struct {
	Cost     float64 `json:"cost"`
	Accuracy float64 `json:"accuracy"`
}

// DefaultWeights is the even cost/accuracy blend.
func DefaultWeights() Weights {
	return Weights{Cost: 0.5, Accuracy: 0.5}
}

// Validate checks that the weights are usable.
func (w Weights) Validate() error {
	if w.Cost < 0 || w.Accuracy < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if w.Cost+w.Accuracy == 0 {
		return fmt.Errorf("weights must not both be zero")
	}
	return nil
}
