package plant

import "errors"

// Plant-related errors
var (
	// Validation errors
	ErrEmptyPlantID     = errors.New("plant ID cannot be empty")
	ErrInvalidGrowZone  = errors.New("grow zone must be between 1 and 13")
	ErrNothingToImport  = errors.New("no plants to import")
	ErrDuplicatePlantID = errors.New("duplicate plant ID")
)
