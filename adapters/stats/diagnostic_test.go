package stats

import (
	"errors"
	"math"
	"testing"

	"goassay/domain/assay"
	"goassay/domain/core"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestDiagnosticCalculator_CoreMetrics(t *testing.T) {
	calc := NewDiagnosticCalculator(DefaultConfidenceLevel)

	// qPCR-shaped counts: 90 positive cases among 185 samples.
	counts := assay.ConfusionCounts{TruePositive: 85, FalsePositive: 3, TrueNegative: 92, FalseNegative: 5}

	stats, err := calc.Compute(counts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		got  assay.Ratio
		want float64
	}{
		{"sensitivity", stats.Sensitivity, 85.0 / 90.0},
		{"specificity", stats.Specificity, 92.0 / 95.0},
		{"ppv", stats.PPV, 85.0 / 88.0},
		{"npv", stats.NPV, 92.0 / 97.0},
		{"accuracy", stats.Accuracy, 177.0 / 185.0},
		{"prevalence", stats.Prevalence, 90.0 / 185.0},
		{"fpr", stats.FalsePositiveRate, 3.0 / 95.0},
		{"fnr", stats.FalseNegativeRate, 5.0 / 90.0},
	}
	for _, tc := range cases {
		if !tc.got.Defined {
			t.Errorf("%s: expected defined ratio", tc.name)
			continue
		}
		if !almostEqual(tc.got.Value, tc.want, 1e-12) {
			t.Errorf("%s: got %.6f, want %.6f", tc.name, tc.got.Value, tc.want)
		}
	}

	if stats.TotalSamples != 185 {
		t.Errorf("total samples: got %d, want 185", stats.TotalSamples)
	}
	if stats.ConfidenceLevel != 0.95 {
		t.Errorf("confidence level: got %v, want 0.95", stats.ConfidenceLevel)
	}
}

func TestDiagnosticCalculator_DerivedMetrics(t *testing.T) {
	calc := NewDiagnosticCalculator(DefaultConfidenceLevel)

	stats, err := calc.Compute(assay.ConfusionCounts{TruePositive: 85, FalsePositive: 3, TrueNegative: 92, FalseNegative: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sens := 85.0 / 90.0
	spec := 92.0 / 95.0
	lrPlus := sens / (1 - spec)
	lrMinus := (1 - sens) / spec

	if !stats.PositiveLikelihoodRatio.Defined || !almostEqual(stats.PositiveLikelihoodRatio.Value, lrPlus, 1e-9) {
		t.Errorf("LR+: got %v, want %.6f", stats.PositiveLikelihoodRatio, lrPlus)
	}
	if !stats.NegativeLikelihoodRatio.Defined || !almostEqual(stats.NegativeLikelihoodRatio.Value, lrMinus, 1e-9) {
		t.Errorf("LR-: got %v, want %.6f", stats.NegativeLikelihoodRatio, lrMinus)
	}
	if !stats.DiagnosticOddsRatio.Defined || !almostEqual(stats.DiagnosticOddsRatio.Value, lrPlus/lrMinus, 1e-9) {
		t.Errorf("DOR: got %v, want %.6f", stats.DiagnosticOddsRatio, lrPlus/lrMinus)
	}

	ppv := 85.0 / 88.0
	f1 := 2 * ppv * sens / (ppv + sens)
	if !stats.F1Score.Defined || !almostEqual(stats.F1Score.Value, f1, 1e-9) {
		t.Errorf("F1: got %v, want %.6f", stats.F1Score, f1)
	}
	if !stats.MCCDefined {
		t.Error("expected MCC to be defined")
	}
}

func TestDiagnosticCalculator_UndefinedSentinels(t *testing.T) {
	calc := NewDiagnosticCalculator(DefaultConfidenceLevel)

	// No positive class at all: sensitivity, PPV, FNR and everything built
	// on them must be undefined rather than zero.
	stats, err := calc.Compute(assay.ConfusionCounts{TrueNegative: 40, FalsePositive: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Sensitivity.Defined {
		t.Error("sensitivity should be undefined with no positive cases")
	}
	if stats.FalseNegativeRate.Defined {
		t.Error("FNR should be undefined with no positive cases")
	}
	if stats.PositiveLikelihoodRatio.Defined {
		t.Error("LR+ should propagate the undefined sentinel")
	}
	if stats.F1Score.Defined {
		t.Error("F1 should propagate the undefined sentinel")
	}
	if stats.MCCDefined {
		t.Error("MCC should be undefined when a marginal is zero")
	}

	// Specificity side is fully determined here.
	if !stats.Specificity.Defined || !almostEqual(stats.Specificity.Value, 0.8, 1e-12) {
		t.Errorf("specificity: got %v, want 0.8", stats.Specificity)
	}
	if !stats.Accuracy.Defined {
		t.Error("accuracy is always defined for a validated matrix")
	}
}

func TestDiagnosticCalculator_RejectsInvalidMatrix(t *testing.T) {
	calc := NewDiagnosticCalculator(DefaultConfidenceLevel)
	if _, err := calc.Compute(assay.ConfusionCounts{}); !errors.Is(err, core.ErrInvalidMatrix) {
		t.Fatalf("expected ErrInvalidMatrix, got %v", err)
	}
}

func TestDiagnosticCalculator_MCCPerfect(t *testing.T) {
	calc := NewDiagnosticCalculator(DefaultConfidenceLevel)
	stats, err := calc.Compute(assay.ConfusionCounts{TruePositive: 50, TrueNegative: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !stats.MCCDefined || !almostEqual(stats.MCC, 1.0, 1e-12) {
		t.Errorf("MCC for a perfect classifier: got %v (defined=%v), want 1.0", stats.MCC, stats.MCCDefined)
	}
}

func TestWilsonInterval_Properties(t *testing.T) {
	z := zQuantile(0.95)

	cases := []struct {
		x, n int
	}{
		{85, 90},
		{1, 10},
		{0, 20},
		{20, 20},
		{50, 100},
	}
	for _, tc := range cases {
		ci := wilsonInterval(tc.x, tc.n, z)
		if ci.Lower < 0 || ci.Upper > 1 {
			t.Errorf("wilson(%d,%d): interval [%f,%f] escapes [0,1]", tc.x, tc.n, ci.Lower, ci.Upper)
		}
		if ci.Lower > ci.Upper {
			t.Errorf("wilson(%d,%d): lower %f above upper %f", tc.x, tc.n, ci.Lower, ci.Upper)
		}
		p := float64(tc.x) / float64(tc.n)
		if p < ci.Lower-1e-9 || p > ci.Upper+1e-9 {
			t.Errorf("wilson(%d,%d): point estimate %f outside [%f,%f]", tc.x, tc.n, p, ci.Lower, ci.Upper)
		}
	}

	// Unlike the normal approximation, Wilson bounds never collapse to a
	// zero-width interval at the extremes.
	ci := wilsonInterval(20, 20, z)
	if ci.Lower >= 1 {
		t.Errorf("wilson at p=1 should have lower bound below 1, got %f", ci.Lower)
	}
}

func TestZQuantile(t *testing.T) {
	if z := zQuantile(0.95); !almostEqual(z, 1.959964, 1e-4) {
		t.Errorf("z(0.95): got %f, want 1.959964", z)
	}
	if z := zQuantile(0.99); !almostEqual(z, 2.575829, 1e-4) {
		t.Errorf("z(0.99): got %f, want 2.575829", z)
	}
}
