package stats

import (
	"fmt"
	"math"

	"goassay/domain/assay"
)

// QualityConfig holds the thresholds for the data quality checks. The
// defaults match standard practice; callers can tighten or loosen them.
type QualityConfig struct {
	SmallSampleThreshold int     // warn when total is below this
	ImbalanceRatio       float64 // warn when max/min class ratio exceeds this
}

// DefaultQualityConfig returns the standard thresholds.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		SmallSampleThreshold: 10,
		ImbalanceRatio:       10,
	}
}

// QualityAnalyzer flags statistically suspicious inputs. Every warning is
// advisory: the checks are independent, all applicable warnings are emitted,
// and none of them ever blocks computation.
type QualityAnalyzer struct {
	config QualityConfig
}

// NewQualityAnalyzer creates an analyzer with the given thresholds.
func NewQualityAnalyzer(config QualityConfig) *QualityAnalyzer {
	if config.SmallSampleThreshold <= 0 {
		config.SmallSampleThreshold = DefaultQualityConfig().SmallSampleThreshold
	}
	if config.ImbalanceRatio <= 0 {
		config.ImbalanceRatio = DefaultQualityConfig().ImbalanceRatio
	}
	return &QualityAnalyzer{config: config}
}

// Analyze runs all quality checks and returns warnings in stable emission
// order: small sample, missing class, imbalance, perfect classification,
// zero accuracy. A matrix with no data produces no warnings; that case is
// the validator's to reject.
func (a *QualityAnalyzer) Analyze(counts assay.ConfusionCounts) []assay.QualityWarning {
	total := counts.Total()
	if total == 0 {
		return nil
	}

	var warnings []assay.QualityWarning

	if total < a.config.SmallSampleThreshold {
		warnings = append(warnings, assay.QualityWarning{
			Code:     assay.WarningSmallSample,
			Severity: assay.SeverityCaution,
			Message:  fmt.Sprintf("small sample size (n=%d) may lead to unreliable statistical estimates", total),
			Params:   map[string]interface{}{"total": total, "threshold": a.config.SmallSampleThreshold},
		})
	}

	positives := counts.Positives()
	negatives := counts.Negatives()

	if positives == 0 {
		warnings = append(warnings, assay.QualityWarning{
			Code:     assay.WarningNoPositives,
			Severity: assay.SeverityInfo,
			Message:  "no positive cases in the dataset",
		})
	} else if negatives == 0 {
		warnings = append(warnings, assay.QualityWarning{
			Code:     assay.WarningNoNegatives,
			Severity: assay.SeverityInfo,
			Message:  "no negative cases in the dataset",
		})
	}

	if positives > 0 && negatives > 0 {
		ratio := float64(maxInt(positives, negatives)) / float64(minInt(positives, negatives))
		if ratio > a.config.ImbalanceRatio {
			rounded := math.Round(ratio*10) / 10
			warnings = append(warnings, assay.QualityWarning{
				Code:     assay.WarningImbalanced,
				Severity: assay.SeverityCaution,
				Message:  fmt.Sprintf("highly imbalanced dataset (ratio %.1f:1)", rounded),
				Params:   map[string]interface{}{"ratio": rounded},
			})
		}
	}

	if counts.FalsePositive == 0 && counts.FalseNegative == 0 {
		warnings = append(warnings, assay.QualityWarning{
			Code:     assay.WarningPerfectResult,
			Severity: assay.SeverityCaution,
			Message:  "perfect classification detected - verify data accuracy",
		})
	}

	if counts.TruePositive == 0 && counts.TrueNegative == 0 {
		warnings = append(warnings, assay.QualityWarning{
			Code:     assay.WarningZeroAccuracy,
			Severity: assay.SeverityCaution,
			Message:  "no correct classifications detected - verify data accuracy",
		})
	}

	return warnings
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
