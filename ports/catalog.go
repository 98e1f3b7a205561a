package ports

import (
	"goassay/domain/core"
	"goassay/domain/cost"
)

// TechniqueCatalog resolves default cost models for known techniques.
type TechniqueCatalog interface {
	Model(technique core.TechniqueID) (cost.Model, error)
	Techniques() []core.TechniqueID
}
