// Package seed loads the plant catalog on first run.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/thenoetrevino/sprout/internal/models"
)

//go:embed plants.json
var defaultCatalog []byte

// Importer is the part of the plant use case seeding needs.
type Importer interface {
	CountPlants(ctx context.Context) (int, error)
	ImportPlants(ctx context.Context, plants []*models.Plant) (int, error)
}

// ErrDuplicatePlant is returned when a dataset lists the same id twice.
var ErrDuplicatePlant = errors.New("duplicate plant id in dataset")

// RecordError describes an invalid record in a dataset.
type RecordError struct {
	Index   int
	PlantID string
	Err     error
}

func (e *RecordError) Error() string {
	if e.PlantID == "" {
		return fmt.Sprintf("plant record %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("plant record %d (%s): %v", e.Index, e.PlantID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load decodes and validates a JSON plant dataset. Records without a
// watering interval get models.DefaultWateringInterval.
func Load(r io.Reader) ([]*models.Plant, error) {
	var plants []*models.Plant
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&plants); err != nil {
		return nil, fmt.Errorf("failed to decode plant dataset: %w", err)
	}

	seen := make(map[string]int, len(plants))
	for i, p := range plants {
		if p == nil {
			return nil, &RecordError{Index: i, Err: errors.New("null record")}
		}
		if p.WateringInterval == 0 {
			p.WateringInterval = models.DefaultWateringInterval
		}
		if err := validate.Struct(p); err != nil {
			return nil, &RecordError{Index: i, PlantID: p.ID, Err: err}
		}
		if first, dup := seen[p.ID]; dup {
			return nil, &RecordError{Index: i, PlantID: p.ID, Err: fmt.Errorf("%w (first at record %d)", ErrDuplicatePlant, first)}
		}
		seen[p.ID] = i
	}
	return plants, nil
}

// LoadFile loads the dataset at path, or the embedded catalog when path is empty.
func LoadFile(path string) ([]*models.Plant, error) {
	if path == "" {
		return Load(bytes.NewReader(defaultCatalog))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open plant dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}

// Run imports the dataset at path (or the embedded one) and returns how many
// plants were new.
func Run(ctx context.Context, imp Importer, path string) (int, error) {
	plants, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	n, err := imp.ImportPlants(ctx, plants)
	if err != nil {
		return 0, err
	}
	slog.Info("plant catalog seeded", "source", sourceName(path), "inserted", n, "records", len(plants))
	return n, nil
}

// IfEmpty seeds the catalog only when it has no plants yet.
func IfEmpty(ctx context.Context, imp Importer, path string) (int, error) {
	count, err := imp.CountPlants(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count plants: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	return Run(ctx, imp, path)
}

func sourceName(path string) string {
	if path == "" {
		return "embedded"
	}
	return path
}
