package assay

import (
	"fmt"

	"goassay/domain/core"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// ConfusionCounts holds the raw 2x2 classification counts for one experiment.
// INVARIANTS:
// - All four counts >= 0
// - Total() > 0 before any statistic is computed (enforced by the validator)
type ConfusionCounts struct {
	TruePositive  int `json:"true_positive"`
	FalsePositive int `json:"false_positive"`
	TrueNegative  int `json:"true_negative"`
	FalseNegative int `json:"false_negative"`
}

// Total returns the number of classified samples.
func (c ConfusionCounts) Total() int {
	return c.TruePositive + c.FalsePositive + c.TrueNegative + c.FalseNegative
}

// Positives returns the count of truly positive cases (TP + FN).
func (c ConfusionCounts) Positives() int {
	return c.TruePositive + c.FalseNegative
}

// Negatives returns the count of truly negative cases (FP + TN).
func (c ConfusionCounts) Negatives() int {
	return c.FalsePositive + c.TrueNegative
}

// Correct returns the count of correct classifications (TP + TN).
func (c ConfusionCounts) Correct() int {
	return c.TruePositive + c.TrueNegative
}

// SwapLabels returns the counts under the opposite positive/negative label
// convention (TP<->TN, FP<->FN). Kappa must be invariant under this swap.
func (c ConfusionCounts) SwapLabels() ConfusionCounts {
	return ConfusionCounts{
		TruePositive:  c.TrueNegative,
		FalsePositive: c.FalseNegative,
		TrueNegative:  c.TruePositive,
		FalseNegative: c.FalsePositive,
	}
}

// Fingerprint renders the counts into a stable string for audit hashing.
func (c ConfusionCounts) Fingerprint() string {
	return core.CountsFingerprint(c.TruePositive, c.FalsePositive, c.TrueNegative, c.FalseNegative)
}

// ValidationResult is the output of the confusion matrix validator.
type ValidationResult struct {
	Total        int  `json:"total"`
	HasVariation bool `json:"has_variation"` // false when all mass sits in one cell
}

// ============================================================================
// RATIO SENTINEL
// ============================================================================

// Ratio is a derived quantity that may be undefined (denominator zero).
// Core metrics (sensitivity, specificity, PPV, NPV, accuracy) lie in [0,1];
// likelihood ratios and the diagnostic odds ratio are unbounded above.
// Undefined is a valid output distinct from 0.0: downstream aggregation and
// ranking must never treat an undefined ratio as zero performance.
type Ratio struct {
	Value   float64 `json:"value"`
	Defined bool    `json:"defined"`
}

// DefinedRatio creates a defined ratio value.
func DefinedRatio(v float64) Ratio {
	return Ratio{Value: v, Defined: true}
}

// UndefinedRatio creates the undefined sentinel.
func UndefinedRatio() Ratio {
	return Ratio{}
}

// RatioOf divides numerator by denominator, returning the undefined sentinel
// when the denominator is zero instead of a computed 0.
func RatioOf(numerator, denominator int) Ratio {
	if denominator == 0 {
		return UndefinedRatio()
	}
	return DefinedRatio(float64(numerator) / float64(denominator))
}

// Or returns the ratio value when defined, otherwise the fallback.
func (r Ratio) Or(fallback float64) float64 {
	if r.Defined {
		return r.Value
	}
	return fallback
}

// String renders the ratio for logs and CLI output.
func (r Ratio) String() string {
	if !r.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", r.Value)
}

// Interval is a two-sided confidence interval.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// ============================================================================
// DERIVED STATISTICS (immutable once computed)
// ============================================================================

// DiagnosticStats holds all diagnostic metrics derived from one confusion
// matrix. Computed once per ConfusionCounts; never mutated.
type DiagnosticStats struct {
	Sensitivity Ratio `json:"sensitivity"`
	Specificity Ratio `json:"specificity"`
	PPV         Ratio `json:"ppv"`
	NPV         Ratio `json:"npv"`
	Accuracy    Ratio `json:"accuracy"`
	Prevalence  Ratio `json:"prevalence"`

	FalsePositiveRate Ratio `json:"false_positive_rate"`
	FalseNegativeRate Ratio `json:"false_negative_rate"`

	// Likelihood ratios and DOR are undefined when their own inputs are
	// undefined or their denominators are zero.
	PositiveLikelihoodRatio Ratio `json:"positive_likelihood_ratio"`
	NegativeLikelihoodRatio Ratio `json:"negative_likelihood_ratio"`
	DiagnosticOddsRatio     Ratio `json:"diagnostic_odds_ratio"`

	F1Score Ratio `json:"f1_score"`
	// MCC is in [-1,1], not [0,1], so it gets its own defined flag.
	MCC        float64 `json:"mcc"`
	MCCDefined bool    `json:"mcc_defined"`

	// Wilson score intervals for the five core ratio metrics. Present only
	// when the matching ratio is defined.
	SensitivityCI Interval `json:"sensitivity_ci"`
	SpecificityCI Interval `json:"specificity_ci"`
	PPVCI         Interval `json:"ppv_ci"`
	NPVCI         Interval `json:"npv_ci"`
	AccuracyCI    Interval `json:"accuracy_ci"`

	ConfidenceLevel float64 `json:"confidence_level"`
	TotalSamples    int     `json:"total_samples"`
}

// ============================================================================
// EXPERIMENT RECORD
// ============================================================================

// Experiment couples a named measurement run with its raw counts.
type Experiment struct {
	ID          core.ExperimentID `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Technique   core.TechniqueID  `json:"technique"`
	Counts      ConfusionCounts   `json:"counts"`
	CreatedAt   core.Timestamp    `json:"created_at"`
}

// NewExperiment creates an experiment with basic invariant checks.
func NewExperiment(name string, technique core.TechniqueID, counts ConfusionCounts) (*Experiment, error) {
	if name == "" {
		return nil, fmt.Errorf("experiment name must be set")
	}
	if technique == "" {
		return nil, fmt.Errorf("technique must be set")
	}
	if counts.TruePositive < 0 || counts.FalsePositive < 0 || counts.TrueNegative < 0 || counts.FalseNegative < 0 {
		return nil, core.NewInvalidMatrixError("counts must be non-negative")
	}
	return &Experiment{
		ID:        core.ExperimentID(core.NewID()),
		Name:      name,
		Technique: technique,
		Counts:    counts,
		CreatedAt: core.Now(),
	}, nil
}
