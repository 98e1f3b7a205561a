package costing

import (
	"goassay/domain/core"
	"goassay/domain/cost"
	"goassay/ports"
)

// builtinCatalog serves the built-in technique cost catalog through the
// TechniqueCatalog port.
type builtinCatalog struct{}

// NewBuiltinCatalog creates a catalog adapter over the built-in cost table.
func NewBuiltinCatalog() ports.TechniqueCatalog {
	return &builtinCatalog{}
}

func (c *builtinCatalog) Model(technique core.TechniqueID) (cost.Model, error) {
	return cost.CatalogModel(technique)
}

func (c *builtinCatalog) Techniques() []core.TechniqueID {
	return cost.CatalogTechniques()
}
