package core

import (
	"errors"
	"testing"
)

func TestNewID_UniqueAndNonEmpty(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Fatal("generated ID is empty")
		}
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestParseIDs(t *testing.T) {
	if _, err := ParseExperimentID("  "); err == nil {
		t.Error("blank experiment ID must be rejected")
	}
	if _, err := ParseStudyID(""); err == nil {
		t.Error("empty study ID must be rejected")
	}
	id, err := ParseTechniqueID("qPCR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.String() != "qPCR" {
		t.Errorf("got %q, want qPCR", id)
	}
}

func TestComparisonFingerprint_OrderIndependent(t *testing.T) {
	a := ComparisonFingerprint(map[string]string{"qPCR": "85,3,92,5", "LAMP": "78,5,88,9"})
	b := ComparisonFingerprint(map[string]string{"LAMP": "78,5,88,9", "qPCR": "85,3,92,5"})
	if !a.Equals(b) {
		t.Error("fingerprint must not depend on map iteration order")
	}

	c := ComparisonFingerprint(map[string]string{"qPCR": "86,3,92,5", "LAMP": "78,5,88,9"})
	if a.Equals(c) {
		t.Error("different inputs must produce different fingerprints")
	}
}

func TestCountsFingerprint(t *testing.T) {
	if got := CountsFingerprint(85, 3, 92, 5); got != "85,3,92,5" {
		t.Errorf("got %q", got)
	}
	if got := CountsFingerprint(1.5, 0); got != "1.5,0" {
		t.Errorf("got %q", got)
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsNotFoundError(NewNotFoundError("experiment", "abc")) {
		t.Error("NewNotFoundError must satisfy IsNotFoundError")
	}
	if !errors.Is(NewInvalidMatrixError("all counts are zero"), ErrInvalidMatrix) {
		t.Error("NewInvalidMatrixError must wrap ErrInvalidMatrix")
	}
	if !errors.Is(NewUnknownTechniqueError("ddPCR"), ErrUnknownTechnique) {
		t.Error("NewUnknownTechniqueError must wrap ErrUnknownTechnique")
	}
	if !IsEngineError(ErrUndefinedKappa) || !IsEngineError(ErrEmptyComparison) {
		t.Error("engine sentinels must satisfy IsEngineError")
	}
	if IsEngineError(ErrNotFound) {
		t.Error("not-found is not an engine error")
	}
}
