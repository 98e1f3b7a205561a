package stats

import (
	"math"

	"goassay/domain/agreement"
	"goassay/domain/assay"
	"goassay/domain/core"
)

// KappaCalculator computes Cohen's kappa for a 2x2 confusion table:
// observed agreement against the agreement expected by chance from the
// marginals.
type KappaCalculator struct {
	validator       *MatrixValidator
	confidenceLevel float64
}

// NewKappaCalculator creates a kappa calculator at the given confidence level.
func NewKappaCalculator(confidenceLevel float64) *KappaCalculator {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = DefaultConfidenceLevel
	}
	return &KappaCalculator{
		validator:       NewMatrixValidator(),
		confidenceLevel: confidenceLevel,
	}
}

// Compute returns kappa with its asymptotic standard error and confidence
// interval. When chance agreement is 1 (all mass in a single cell) kappa has
// no information to correct for and the calculator fails with
// ErrUndefinedKappa rather than dividing by zero.
func (c *KappaCalculator) Compute(counts assay.ConfusionCounts) (*agreement.Result, error) {
	if _, err := c.validator.Validate(counts); err != nil {
		return nil, err
	}

	tp := float64(counts.TruePositive)
	fp := float64(counts.FalsePositive)
	tn := float64(counts.TrueNegative)
	fn := float64(counts.FalseNegative)
	n := float64(counts.Total())

	observed := (tp + tn) / n
	expected := ((tp+fp)*(tp+fn) + (fn+tn)*(fp+tn)) / (n * n)

	if 1-expected < 1e-12 {
		return nil, core.ErrUndefinedKappa
	}

	kappa := (observed - expected) / (1 - expected)
	se := math.Sqrt(expected / (n * (1 - expected) * (1 - expected)))
	z := zQuantile(c.confidenceLevel)

	return &agreement.Result{
		Kappa:             kappa,
		StandardError:     se,
		ConfidenceLow:     math.Max(-1, kappa-z*se),
		ConfidenceHigh:    math.Min(1, kappa+z*se),
		ConfidenceLevel:   c.confidenceLevel,
		ObservedAgreement: observed,
		ExpectedAgreement: expected,
		Interpretation:    agreement.Interpret(kappa),
	}, nil
}
