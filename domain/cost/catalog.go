package cost

import (
	"sort"

	"goassay/domain/core"
)

// Reference cost figures for common nucleic-acid amplification techniques,
// in THB (~35 THB = 1 USD). Labor is derived from operator time at bench
// rates; figures are defaults for users who have no site-specific model.
var builtinCatalog = map[core.TechniqueID]Model{
	"PCR": {
		TechniqueID:           "PCR",
		EquipmentCost:         525000,
		ReagentCostPerSample:  87.5,
		LaborCostPerSample:    62.5,
		ThroughputPerHour:     48,
		MaintenanceCostAnnual: 52500,
		PowerConsumptionWatts: 800,
		MinutesPerTest:        150,
	},
	"qPCR": {
		TechniqueID:           "qPCR",
		EquipmentCost:         1225000,
		ReagentCostPerSample:  192.5,
		LaborCostPerSample:    50,
		ThroughputPerHour:     96,
		MaintenanceCostAnnual: 122500,
		PowerConsumptionWatts: 1500,
		MinutesPerTest:        120,
	},
	"LAMP": {
		TechniqueID:           "LAMP",
		EquipmentCost:         87500,
		ReagentCostPerSample:  105,
		LaborCostPerSample:    18.75,
		ThroughputPerHour:     24,
		MaintenanceCostAnnual: 8750,
		PowerConsumptionWatts: 50,
		MinutesPerTest:        45,
	},
	"RPA": {
		TechniqueID:           "RPA",
		EquipmentCost:         35000,
		ReagentCostPerSample:  402.5,
		LaborCostPerSample:    6.25,
		ThroughputPerHour:     12,
		MaintenanceCostAnnual: 3500,
		PowerConsumptionWatts: 20,
		MinutesPerTest:        15,
	},
	"NASBA": {
		TechniqueID:           "NASBA",
		EquipmentCost:         52500,
		ReagentCostPerSample:  297.5,
		LaborCostPerSample:    37.5,
		ThroughputPerHour:     16,
		MaintenanceCostAnnual: 10500,
		PowerConsumptionWatts: 100,
		MinutesPerTest:        90,
	},
	"TMA": {
		TechniqueID:           "TMA",
		EquipmentCost:         280000,
		ReagentCostPerSample:  245,
		LaborCostPerSample:    25,
		ThroughputPerHour:     20,
		MaintenanceCostAnnual: 14000,
		PowerConsumptionWatts: 200,
		MinutesPerTest:        60,
	},
	"HDA": {
		TechniqueID:           "HDA",
		EquipmentCost:         3000,
		ReagentCostPerSample:  4.5,
		LaborCostPerSample:    31.25,
		ThroughputPerHour:     18,
		MaintenanceCostAnnual: 200,
		PowerConsumptionWatts: 80,
		MinutesPerTest:        75,
	},
	"SDA": {
		TechniqueID:           "SDA",
		EquipmentCost:         4000,
		ReagentCostPerSample:  6,
		LaborCostPerSample:    50,
		ThroughputPerHour:     15,
		MaintenanceCostAnnual: 300,
		PowerConsumptionWatts: 120,
		MinutesPerTest:        120,
	},
	"NEAR": {
		TechniqueID:           "NEAR",
		EquipmentCost:         2500,
		ReagentCostPerSample:  5.5,
		LaborCostPerSample:    37.5,
		ThroughputPerHour:     12,
		MaintenanceCostAnnual: 150,
		PowerConsumptionWatts: 60,
		MinutesPerTest:        90,
	},
}

// CatalogModel looks up the built-in cost model for a technique.
func CatalogModel(technique core.TechniqueID) (Model, error) {
	m, ok := builtinCatalog[technique]
	if !ok {
		return Model{}, core.NewUnknownTechniqueError(technique.String())
	}
	return m, nil
}

// CatalogTechniques lists the techniques in the built-in catalog, sorted.
func CatalogTechniques() []core.TechniqueID {
	ids := make([]core.TechniqueID, 0, len(builtinCatalog))
	for id := range builtinCatalog {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
