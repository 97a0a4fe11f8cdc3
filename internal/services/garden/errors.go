package garden

import (
	"errors"
	"fmt"
)

// Garden-related errors
var (
	// Validation errors
	ErrEmptyPlantID = errors.New("plant ID cannot be empty")
)

// StoreError reports a failed write against the garden store.
type StoreError struct {
	Op      string
	PlantID string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.PlantID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
