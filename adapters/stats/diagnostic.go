package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"goassay/domain/assay"
)

// DefaultConfidenceLevel is used when a caller does not supply one.
const DefaultConfidenceLevel = 0.95

// DiagnosticCalculator derives diagnostic statistics from a validated
// confusion matrix. The calculator keeps full float precision; rounding is a
// presentation concern.
type DiagnosticCalculator struct {
	validator       *MatrixValidator
	confidenceLevel float64
}

// NewDiagnosticCalculator creates a calculator at the given confidence level.
// Levels outside (0,1) fall back to the default.
func NewDiagnosticCalculator(confidenceLevel float64) *DiagnosticCalculator {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		confidenceLevel = DefaultConfidenceLevel
	}
	return &DiagnosticCalculator{
		validator:       NewMatrixValidator(),
		confidenceLevel: confidenceLevel,
	}
}

// Compute derives all diagnostic statistics. Each ratio whose own denominator
// is zero is reported as the undefined sentinel, never a computed 0.
func (c *DiagnosticCalculator) Compute(counts assay.ConfusionCounts) (assay.DiagnosticStats, error) {
	if _, err := c.validator.Validate(counts); err != nil {
		return assay.DiagnosticStats{}, err
	}

	tp, fp := counts.TruePositive, counts.FalsePositive
	tn, fn := counts.TrueNegative, counts.FalseNegative
	total := counts.Total()

	out := assay.DiagnosticStats{
		Sensitivity:       assay.RatioOf(tp, tp+fn),
		Specificity:       assay.RatioOf(tn, tn+fp),
		PPV:               assay.RatioOf(tp, tp+fp),
		NPV:               assay.RatioOf(tn, tn+fn),
		Accuracy:          assay.RatioOf(tp+tn, total),
		Prevalence:        assay.RatioOf(tp+fn, total),
		FalsePositiveRate: assay.RatioOf(fp, fp+tn),
		FalseNegativeRate: assay.RatioOf(fn, fn+tp),
		ConfidenceLevel:   c.confidenceLevel,
		TotalSamples:      total,
	}

	out.PositiveLikelihoodRatio = likelihoodRatio(out.Sensitivity, out.FalsePositiveRate)
	out.NegativeLikelihoodRatio = likelihoodRatio(out.FalseNegativeRate, out.Specificity)
	out.DiagnosticOddsRatio = likelihoodRatio(out.PositiveLikelihoodRatio, out.NegativeLikelihoodRatio)
	out.F1Score = f1Score(out.PPV, out.Sensitivity)
	out.MCC, out.MCCDefined = matthewsCorrelation(tp, fp, tn, fn)

	z := zQuantile(c.confidenceLevel)
	if out.Sensitivity.Defined {
		out.SensitivityCI = wilsonInterval(tp, tp+fn, z)
	}
	if out.Specificity.Defined {
		out.SpecificityCI = wilsonInterval(tn, tn+fp, z)
	}
	if out.PPV.Defined {
		out.PPVCI = wilsonInterval(tp, tp+fp, z)
	}
	if out.NPV.Defined {
		out.NPVCI = wilsonInterval(tn, tn+fn, z)
	}
	out.AccuracyCI = wilsonInterval(tp+tn, total, z)

	return out, nil
}

// likelihoodRatio divides one derived ratio by another, propagating the
// undefined sentinel and treating a zero denominator as undefined.
func likelihoodRatio(num, den assay.Ratio) assay.Ratio {
	if !num.Defined || !den.Defined || den.Value == 0 {
		return assay.UndefinedRatio()
	}
	return assay.DefinedRatio(num.Value / den.Value)
}

// f1Score is the harmonic mean of precision and recall.
func f1Score(ppv, sensitivity assay.Ratio) assay.Ratio {
	if !ppv.Defined || !sensitivity.Defined {
		return assay.UndefinedRatio()
	}
	sum := ppv.Value + sensitivity.Value
	if sum == 0 {
		return assay.UndefinedRatio()
	}
	return assay.DefinedRatio(2 * ppv.Value * sensitivity.Value / sum)
}

// matthewsCorrelation computes MCC, undefined when any marginal is zero.
func matthewsCorrelation(tp, fp, tn, fn int) (float64, bool) {
	den := math.Sqrt(float64(tp+fp) * float64(tp+fn) * float64(tn+fp) * float64(tn+fn))
	if den == 0 {
		return 0, false
	}
	num := float64(tp*tn) - float64(fp*fn)
	return num / den, true
}

// wilsonInterval computes the Wilson score interval for x successes out of n.
func wilsonInterval(x, n int, z float64) assay.Interval {
	if n == 0 {
		return assay.Interval{}
	}
	p := float64(x) / float64(n)
	nf := float64(n)
	z2 := z * z

	center := (p + z2/(2*nf)) / (1 + z2/nf)
	margin := z * math.Sqrt((p*(1-p)+z2/(4*nf))/nf) / (1 + z2/nf)

	return assay.Interval{
		Lower: math.Max(0, center-margin),
		Upper: math.Min(1, center+margin),
	}
}

// zQuantile is the two-sided standard normal critical value for the given
// confidence level (1.959964... at 0.95).
func zQuantile(confidenceLevel float64) float64 {
	norm := distuv.Normal{Mu: 0, Sigma: 1}
	return norm.Quantile((1 + confidenceLevel) / 2)
}
