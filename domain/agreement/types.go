package agreement

// KappaBand is the Landis-Koch interpretation bucket for a kappa value.
type KappaBand string

const (
	BandPoor          KappaBand = "poor"
	BandSlight        KappaBand = "slight"
	BandFair          KappaBand = "fair"
	BandModerate      KappaBand = "moderate"
	BandSubstantial   KappaBand = "substantial"
	BandAlmostPerfect KappaBand = "almost_perfect"
)

// Interpret maps a kappa value onto the Landis-Koch scale.
// Thresholds: <0 poor, <=0.20 slight, <=0.40 fair, <=0.60 moderate,
// <=0.80 substantial, above that almost perfect.
func Interpret(kappa float64) KappaBand {
	switch {
	case kappa < 0:
		return BandPoor
	case kappa <= 0.20:
		return BandSlight
	case kappa <= 0.40:
		return BandFair
	case kappa <= 0.60:
		return BandModerate
	case kappa <= 0.80:
		return BandSubstantial
	default:
		return BandAlmostPerfect
	}
}

// Result holds Cohen's kappa with its asymptotic standard error and
// confidence interval for a single 2x2 table.
type Result struct {
	Kappa             float64   `json:"kappa"`
	StandardError     float64   `json:"standard_error"`
	ConfidenceLow     float64   `json:"confidence_low"`
	ConfidenceHigh    float64   `json:"confidence_high"`
	ConfidenceLevel   float64   `json:"confidence_level"`
	ObservedAgreement float64   `json:"observed_agreement"`
	ExpectedAgreement float64   `json:"expected_agreement"`
	Interpretation    KappaBand `json:"interpretation"`
}
