package stats

import (
	"goassay/domain/assay"
	"goassay/domain/core"
)

// MatrixValidator checks raw confusion counts for admissibility before any
// statistic is computed. It rejects only inadmissible matrices; unusual but
// legal distributions (all true positives, say) pass and are left to the
// quality analyzer to flag.
type MatrixValidator struct{}

// NewMatrixValidator creates a matrix validator
func NewMatrixValidator() *MatrixValidator {
	return &MatrixValidator{}
}

// Validate rejects matrices with negative counts or no data at all.
func (v *MatrixValidator) Validate(counts assay.ConfusionCounts) (assay.ValidationResult, error) {
	if counts.TruePositive < 0 || counts.FalsePositive < 0 ||
		counts.TrueNegative < 0 || counts.FalseNegative < 0 {
		return assay.ValidationResult{}, core.NewInvalidMatrixError("counts must be non-negative")
	}

	total := counts.Total()
	if total == 0 {
		return assay.ValidationResult{}, core.NewInvalidMatrixError("all counts are zero")
	}

	return assay.ValidationResult{
		Total:        total,
		HasVariation: hasVariation(counts),
	}, nil
}

// hasVariation reports whether the mass is spread over more than one cell.
func hasVariation(counts assay.ConfusionCounts) bool {
	nonZero := 0
	for _, c := range []int{counts.TruePositive, counts.FalsePositive, counts.TrueNegative, counts.FalseNegative} {
		if c > 0 {
			nonZero++
		}
	}
	return nonZero > 1
}
