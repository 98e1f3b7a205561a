package cost

import (
	"errors"
	"testing"

	"goassay/domain/core"
)

func TestCatalogModel_KnownTechniques(t *testing.T) {
	for _, id := range CatalogTechniques() {
		model, err := CatalogModel(id)
		if err != nil {
			t.Fatalf("catalog lookup failed for %s: %v", id, err)
		}
		if model.TechniqueID != id {
			t.Errorf("model for %s carries technique %s", id, model.TechniqueID)
		}
		if err := model.Validate(); err != nil {
			t.Errorf("catalog model for %s fails validation: %v", id, err)
		}
		if model.ThroughputPerHour <= 0 {
			t.Errorf("catalog model for %s has no throughput", id)
		}
	}
}

func TestCatalogModel_Unknown(t *testing.T) {
	_, err := CatalogModel("ddPCR")
	if !errors.Is(err, core.ErrUnknownTechnique) {
		t.Fatalf("expected ErrUnknownTechnique, got %v", err)
	}
}

func TestCatalogTechniques_SortedAndComplete(t *testing.T) {
	ids := CatalogTechniques()
	if len(ids) != 9 {
		t.Fatalf("expected 9 catalog techniques, got %d", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("catalog not sorted: %s before %s", ids[i-1], ids[i])
		}
	}
	for _, want := range []core.TechniqueID{"qPCR", "LAMP", "RPA", "NASBA"} {
		if _, err := CatalogModel(want); err != nil {
			t.Errorf("expected %s in catalog: %v", want, err)
		}
	}
}

func TestModel_Validate(t *testing.T) {
	m := Model{TechniqueID: "qPCR", EquipmentCost: 1000, ReagentCostPerSample: 10}
	if err := m.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.LaborCostPerSample = -5
	if err := m.Validate(); err == nil {
		t.Error("negative cost field must be rejected")
	}
}

func TestWeights_Validate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights must validate: %v", err)
	}
	if err := (Weights{Cost: 1}).Validate(); err != nil {
		t.Errorf("single-axis weights are allowed: %v", err)
	}
	if err := (Weights{}).Validate(); err == nil {
		t.Error("zero weights must be rejected")
	}
	if err := (Weights{Cost: -1, Accuracy: 2}).Validate(); err == nil {
		t.Error("negative weights must be rejected")
	}
}
