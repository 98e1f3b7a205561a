package assay

// WarningCode represents structured warning types
type WarningCode string

const (
	WarningSmallSample   WarningCode = "SMALL_SAMPLE"   // Total below the small-sample threshold
	WarningNoPositives   WarningCode = "NO_POSITIVES"   // No truly positive cases in the dataset
	WarningNoNegatives   WarningCode = "NO_NEGATIVES"   // No truly negative cases in the dataset
	WarningImbalanced    WarningCode = "IMBALANCED"     // Positive/negative ratio above threshold
	WarningPerfectResult WarningCode = "PERFECT_RESULT" // FP = 0 and FN = 0 (verify data)
	WarningZeroAccuracy  WarningCode = "ZERO_ACCURACY"  // TP = 0 and TN = 0 (verify data)
)

// Severity buckets a warning for presentation. Warnings are never fatal;
// computation always proceeds.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityCaution Severity = "caution"
)

// QualityWarning is a structured advisory attached to an otherwise
// successful evaluation. The engine returns records, not rendered text;
// the presentation boundary decides how to display them.
type QualityWarning struct {
	Code     WarningCode            `json:"code"`
	Severity Severity               `json:"severity"`
	Message  string                 `json:"message"`
	Params   map[string]interface{} `json:"params,omitempty"`
}
