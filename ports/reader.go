package ports

import (
	"goassay/domain/assay"
)

// SkippedRow records why an uploaded row was not imported.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport is the outcome of reading an experiment file: rows that
// parsed cleanly plus the ones that were skipped, with reasons.
type ImportReport struct {
	Experiments []*assay.Experiment `json:"experiments"`
	Skipped     []SkippedRow        `json:"skipped,omitempty"`
}

// ExperimentReader parses experiment files (CSV or Excel) into experiments.
type ExperimentReader interface {
	Read(path string) (*ImportReport, error)
}
