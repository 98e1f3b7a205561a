package stats

import (
	"errors"
	"testing"

	"goassay/domain/assay"
	"goassay/domain/core"
)

func TestMatrixValidator_RejectsAllZero(t *testing.T) {
	v := NewMatrixValidator()
	_, err := v.Validate(assay.ConfusionCounts{})
	if !errors.Is(err, core.ErrInvalidMatrix) {
		t.Fatalf("expected ErrInvalidMatrix, got %v", err)
	}
}

func TestMatrixValidator_RejectsNegative(t *testing.T) {
	v := NewMatrixValidator()
	_, err := v.Validate(assay.ConfusionCounts{TruePositive: 10, FalseNegative: -1})
	if !errors.Is(err, core.ErrInvalidMatrix) {
		t.Fatalf("expected ErrInvalidMatrix, got %v", err)
	}
}

func TestMatrixValidator_AcceptsUnusualButLegal(t *testing.T) {
	v := NewMatrixValidator()

	// All mass in one cell is legal here; judging it is the quality
	// analyzer's job.
	result, err := v.Validate(assay.ConfusionCounts{TruePositive: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 42 {
		t.Errorf("expected total 42, got %d", result.Total)
	}
	if result.HasVariation {
		t.Error("single-cell matrix should not report variation")
	}
}

func TestMatrixValidator_ReportsVariation(t *testing.T) {
	v := NewMatrixValidator()
	result, err := v.Validate(assay.ConfusionCounts{TruePositive: 85, FalsePositive: 3, TrueNegative: 92, FalseNegative: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 185 {
		t.Errorf("expected total 185, got %d", result.Total)
	}
	if !result.HasVariation {
		t.Error("expected variation across cells")
	}
}
