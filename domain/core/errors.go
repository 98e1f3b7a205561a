package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound           = errors.New("resource not found")
	ErrExperimentNotFound = fmt.Errorf("%w: experiment", ErrNotFound)
	ErrStudyNotFound      = fmt.Errorf("%w: study", ErrNotFound)
	ErrUnknownTechnique   = errors.New("unknown technique")

	// Engine errors. All are recoverable at the caller: the engine reports
	// them as typed results, it never panics on degenerate input.
	ErrInvalidMatrix      = errors.New("invalid confusion matrix")
	ErrUndefinedKappa     = errors.New("kappa undefined: chance agreement is 1")
	ErrUndefinedCostRatio = errors.New("cost per correct result undefined: accuracy is zero or undefined")
	ErrEmptyComparison    = errors.New("comparison requires at least one technique")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewInvalidMatrixError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMatrix, reason)
}

func NewUnknownTechniqueError(technique string) error {
	return fmt.Errorf("%w: %s", ErrUnknownTechnique, technique)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsEngineError(err error) bool {
	return errors.Is(err, ErrInvalidMatrix) ||
		errors.Is(err, ErrUndefinedKappa) ||
		errors.Is(err, ErrUndefinedCostRatio) ||
		errors.Is(err, ErrEmptyComparison)
}
