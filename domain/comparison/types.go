package comparison

import (
	"goassay/domain/agreement"
	"goassay/domain/assay"
	"goassay/domain/core"
	"goassay/domain/cost"
)

// TechniqueInput is one technique's contribution to a comparison request:
// raw counts plus its cost model.
type TechniqueInput struct {
	TechniqueID core.TechniqueID      `json:"technique_id"`
	Counts      assay.ConfusionCounts `json:"counts"`
	CostModel   cost.Model            `json:"cost_model"`
}

// TechniqueOutcome collects every per-technique result produced by the
// engine. Assembled once; never mutated after ranking.
type TechniqueOutcome struct {
	TechniqueID   core.TechniqueID         `json:"technique_id"`
	Validation    assay.ValidationResult   `json:"validation"`
	Stats         assay.DiagnosticStats    `json:"stats"`
	Agreement     *agreement.Result        `json:"agreement,omitempty"` // nil when kappa is undefined
	AgreementErr  string                   `json:"agreement_error,omitempty"`
	Warnings      []assay.QualityWarning   `json:"warnings,omitempty"`
	Effectiveness cost.EffectivenessResult `json:"effectiveness"`
	Rank          int                      `json:"rank"` // 1 = best
}

// Result is the ranked outcome of a multi-technique comparison. Owned by
// the aggregator; persistence is a collaborator concern.
type Result struct {
	StudyID     core.StudyID       `json:"study_id"`
	Outcomes    []TechniqueOutcome `json:"outcomes"` // sorted by Rank ascending
	Weights     cost.Weights       `json:"weights"`
	Fingerprint core.Hash          `json:"fingerprint"`
	ComputedAt  core.Timestamp     `json:"computed_at"`
}

// Best returns the top-ranked outcome, or nil for an empty result.
func (r *Result) Best() *TechniqueOutcome {
	if len(r.Outcomes) == 0 {
		return nil
	}
	return &r.Outcomes[0]
}

// Outcome finds a technique's outcome by ID.
func (r *Result) Outcome(id core.TechniqueID) *TechniqueOutcome {
	for i := range r.Outcomes {
		if r.Outcomes[i].TechniqueID == id {
			return &r.Outcomes[i]
		}
	}
	return nil
}
