package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/seed"
	"github.com/thenoetrevino/sprout/internal/services/garden"
	"github.com/thenoetrevino/sprout/internal/services/plant"
	"github.com/thenoetrevino/sprout/internal/unsplash"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, network errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing arguments, or a feature that needs configuration
	// (such as an image search access key) the user has not provided.
	ExitUsage = 2

	// ExitNotFound indicates a requested plant was not found, or is not
	// in the garden.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: A seed dataset that cannot be decoded or has invalid records.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty plant ids, grow zones outside 1-13.
	ExitValidation = 5
)

// CodedError pairs an error with the process exit code it should produce.
type CodedError struct {
	Code int
	Err  error
}

func (e *CodedError) Error() string {
	return e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an explicit exit code.
func Exit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &CodedError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to an exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}

	var recordErr *seed.RecordError
	switch {
	case errors.Is(err, models.ErrPlantNotFound),
		errors.Is(err, models.ErrNotPlanted):
		return ExitNotFound
	case errors.Is(err, garden.ErrEmptyPlantID),
		errors.Is(err, plant.ErrEmptyPlantID),
		errors.Is(err, plant.ErrInvalidGrowZone),
		errors.Is(err, unsplash.ErrEmptyQuery):
		return ExitValidation
	case errors.As(err, &recordErr),
		errors.Is(err, seed.ErrDuplicatePlant),
		errors.Is(err, plant.ErrDuplicatePlantID),
		errors.Is(err, plant.ErrNothingToImport):
		return ExitDataErr
	case errors.Is(err, unsplash.ErrMissingAccessKey):
		return ExitUsage
	default:
		return ExitError
	}
}

// ErrorCode returns the machine-readable code printed with JSON errors.
func ErrorCode(err error) string {
	if errors.Is(err, models.ErrNotPlanted) {
		return "NOT_PLANTED"
	}
	switch ExitCode(err) {
	case ExitNotFound:
		return "PLANT_NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitDataErr:
		return "INVALID_DATA"
	case ExitUsage:
		return "USAGE_ERROR"
	default:
		return "ERROR"
	}
}

// Suggestion returns a hint for errors the user can fix, or "".
func Suggestion(err error) string {
	switch {
	case errors.Is(err, models.ErrPlantNotFound):
		return "Use 'sprout plant list' to see available plant ids"
	case errors.Is(err, models.ErrNotPlanted):
		return "Add it first with 'sprout garden add <plant-id>'"
	case errors.Is(err, plant.ErrInvalidGrowZone):
		return fmt.Sprintf("Grow zones range from %d to %d", plant.MinGrowZone, plant.MaxGrowZone)
	case errors.Is(err, unsplash.ErrMissingAccessKey):
		return "Set SPROUT_UNSPLASH_ACCESS_KEY in your environment or .env file"
	default:
		return ""
	}
}
