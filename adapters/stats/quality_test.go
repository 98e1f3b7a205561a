package stats

import (
	"testing"

	"goassay/domain/assay"
)

func warningCodes(warnings []assay.QualityWarning) []assay.WarningCode {
	codes := make([]assay.WarningCode, 0, len(warnings))
	for _, w := range warnings {
		codes = append(codes, w.Code)
	}
	return codes
}

func assertCodes(t *testing.T, got []assay.WarningCode, want ...assay.WarningCode) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("warning codes: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("warning codes: got %v, want %v", got, want)
		}
	}
}

func TestQualityAnalyzer_CleanDataset(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())
	warnings := analyzer.Analyze(assay.ConfusionCounts{TruePositive: 45, FalsePositive: 5, TrueNegative: 45, FalseNegative: 5})
	if len(warnings) != 0 {
		t.Fatalf("balanced 100-sample dataset should produce no warnings, got %v", warningCodes(warnings))
	}
}

func TestQualityAnalyzer_SmallSampleOnly(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())

	// n=9 is below threshold, and with every sample a true positive the
	// classification is also perfect and one-class. Zero accuracy must NOT
	// fire: there are correct classifications.
	warnings := analyzer.Analyze(assay.ConfusionCounts{TruePositive: 9})
	assertCodes(t, warningCodes(warnings),
		assay.WarningSmallSample,
		assay.WarningNoNegatives,
		assay.WarningPerfectResult,
	)
}

func TestQualityAnalyzer_ZeroAccuracy(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())

	// A single misclassified sample: small, one-class, and every call wrong.
	warnings := analyzer.Analyze(assay.ConfusionCounts{FalseNegative: 1})
	assertCodes(t, warningCodes(warnings),
		assay.WarningSmallSample,
		assay.WarningNoNegatives,
		assay.WarningZeroAccuracy,
	)
}

func TestQualityAnalyzer_NoPositives(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())
	warnings := analyzer.Analyze(assay.ConfusionCounts{TrueNegative: 48, FalsePositive: 2})
	assertCodes(t, warningCodes(warnings), assay.WarningNoPositives)
}

func TestQualityAnalyzer_Imbalance(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())

	// 100 positives vs 5 negatives: ratio 20.0, well past the 10:1 default.
	warnings := analyzer.Analyze(assay.ConfusionCounts{TruePositive: 95, FalseNegative: 5, TrueNegative: 4, FalsePositive: 1})
	assertCodes(t, warningCodes(warnings), assay.WarningImbalanced)

	if ratio, ok := warnings[0].Params["ratio"].(float64); !ok || ratio != 20.0 {
		t.Errorf("imbalance ratio param: got %v, want 20.0", warnings[0].Params["ratio"])
	}
}

func TestQualityAnalyzer_ImbalanceBoundary(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())

	// Exactly 10:1 does not warn; the threshold is strict.
	warnings := analyzer.Analyze(assay.ConfusionCounts{TruePositive: 100, TrueNegative: 10})
	for _, w := range warnings {
		if w.Code == assay.WarningImbalanced {
			t.Fatalf("ratio exactly at threshold should not warn, got %v", warningCodes(warnings))
		}
	}
}

func TestQualityAnalyzer_EmissionOrder(t *testing.T) {
	analyzer := NewQualityAnalyzer(DefaultQualityConfig())

	// Small, imbalanced and perfect at once: order is fixed regardless of
	// which checks fire.
	warnings := analyzer.Analyze(assay.ConfusionCounts{TruePositive: 8, TrueNegative: 0, FalsePositive: 0, FalseNegative: 0})
	assertCodes(t, warningCodes(warnings),
		assay.WarningSmallSample,
		assay.WarningNoNegatives,
		assay.WarningPerfectResult,
	)
}

func TestQualityAnalyzer_CustomThresholds(t *testing.T) {
	analyzer := NewQualityAnalyzer(QualityConfig{SmallSampleThreshold: 200, ImbalanceRatio: 3})

	warnings := analyzer.Analyze(assay.ConfusionCounts{TruePositive: 75, FalsePositive: 5, TrueNegative: 15, FalseNegative: 5})
	assertCodes(t, warningCodes(warnings),
		assay.WarningSmallSample,
		assay.WarningImbalanced,
	)
}
