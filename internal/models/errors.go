package models

import "errors"

// Domain-specific errors shared across layers
var (
	// ErrPlantNotFound indicates that no plant with the requested id exists
	ErrPlantNotFound = errors.New("plant not found")

	// ErrNotPlanted indicates that the plant has no garden planting
	ErrNotPlanted = errors.New("plant is not in the garden")
)
