package app

import (
	"context"
	"fmt"

	"goassay/domain/assay"
	"goassay/domain/core"
	"goassay/ports"
)

// ExperimentService manages stored experiments and their analyses.
type ExperimentService struct {
	repo     ports.ExperimentRepository
	analyzer *ComparisonService
}

// NewExperimentService creates an experiment service.
func NewExperimentService(repo ports.ExperimentRepository, analyzer *ComparisonService) *ExperimentService {
	return &ExperimentService{repo: repo, analyzer: analyzer}
}

// CreateExperiment validates, analyzes and stores a new experiment. Quality
// warnings never block creation; invalid matrices do.
func (s *ExperimentService) CreateExperiment(ctx context.Context, name, description string, technique core.TechniqueID, counts assay.ConfusionCounts) (*assay.Experiment, *ExperimentAnalysis, error) {
	analysis, err := s.analyzer.AnalyzeExperiment(ctx, counts)
	if err != nil {
		return nil, nil, err
	}

	exp, err := assay.NewExperiment(name, technique, counts)
	if err != nil {
		return nil, nil, err
	}
	exp.Description = description
	if err := s.repo.Create(ctx, exp); err != nil {
		return nil, nil, fmt.Errorf("failed to store experiment: %w", err)
	}
	return exp, analysis, nil
}

// GetExperiment loads a stored experiment with a fresh analysis. Statistics
// are always recomputed from the raw counts, never read back from storage.
func (s *ExperimentService) GetExperiment(ctx context.Context, id core.ExperimentID) (*assay.Experiment, *ExperimentAnalysis, error) {
	exp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	analysis, err := s.analyzer.AnalyzeExperiment(ctx, exp.Counts)
	if err != nil {
		return nil, nil, err
	}
	return exp, analysis, nil
}

// ListExperiments returns stored experiments, newest first.
func (s *ExperimentService) ListExperiments(ctx context.Context, limit, offset int) ([]*assay.Experiment, error) {
	return s.repo.List(ctx, limit, offset)
}

// InvalidImport pairs a rejected experiment with its rejection reason.
type InvalidImport struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// BatchImportResult summarizes a bulk import: stored experiments, rejected
// ones, and the overall success rate.
type BatchImportResult struct {
	Imported    []*assay.Experiment `json:"imported"`
	Invalid     []InvalidImport     `json:"invalid,omitempty"`
	Skipped     []ports.SkippedRow  `json:"skipped,omitempty"`
	SuccessRate float64             `json:"success_rate"`
}

// ImportFile reads an experiment file and stores every valid row. A row with
// an inadmissible matrix is recorded and skipped; it never aborts the batch.
func (s *ExperimentService) ImportFile(ctx context.Context, reader ports.ExperimentReader, path string) (*BatchImportResult, error) {
	report, err := reader.Read(path)
	if err != nil {
		return nil, err
	}

	result := &BatchImportResult{Skipped: report.Skipped}
	for _, exp := range report.Experiments {
		// Report the stored record, not the parsed one: its ID is the one
		// the repository knows.
		stored, _, err := s.CreateExperiment(ctx, exp.Name, exp.Description, exp.Technique, exp.Counts)
		if err != nil {
			result.Invalid = append(result.Invalid, InvalidImport{Name: exp.Name, Reason: err.Error()})
			continue
		}
		result.Imported = append(result.Imported, stored)
	}

	attempted := len(report.Experiments)
	if attempted > 0 {
		result.SuccessRate = float64(len(result.Imported)) / float64(attempted)
	}
	return result, nil
}
