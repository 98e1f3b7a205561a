package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ExperimentID ID
	StudyID      ID
	TechniqueID  ID
)

// String conversions for domain IDs
func (id ExperimentID) String() string { return ID(id).String() }
func (id StudyID) String() string      { return ID(id).String() }
func (id TechniqueID) String() string  { return ID(id).String() }

// ParseExperimentID parses a string into ExperimentID
func ParseExperimentID(s string) (ExperimentID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("experiment ID cannot be empty")
	}
	return ExperimentID(s), nil
}

// ParseStudyID parses a string into StudyID
func ParseStudyID(s string) (StudyID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("study ID cannot be empty")
	}
	return StudyID(s), nil
}

// ParseTechniqueID parses a string into TechniqueID
func ParseTechniqueID(s string) (TechniqueID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("technique ID cannot be empty")
	}
	return TechniqueID(s), nil
}
