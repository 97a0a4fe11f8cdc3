package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/sprout/internal/models"
)

// gardenPlantingDAO issues the SQL for the garden_plantings table.
type gardenPlantingDAO struct {
	db      *sql.DB
	tracker *InvalidationTracker
}

// insert records a planting for plantID. It is idempotent: planting an
// already planted plant changes nothing and reports false.
func (d *gardenPlantingDAO) insert(ctx context.Context, plantID string, now time.Time) (bool, error) {
	result, err := d.db.ExecContext(ctx, `
		INSERT INTO garden_plantings (plant_id, plant_date, last_watering_date)
		VALUES (?, ?, ?)
		ON CONFLICT(plant_id) DO NOTHING
	`, plantID, now, now)
	if err != nil {
		return false, fmt.Errorf("failed to insert garden planting for %s: %w", plantID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		d.tracker.Notify(TableGardenPlantings)
	}
	return n > 0, nil
}

// deleteByPlantID removes the planting for plantID. Missing rows are not an
// error; the return value reports whether anything was deleted.
func (d *gardenPlantingDAO) deleteByPlantID(ctx context.Context, plantID string) (bool, error) {
	result, err := d.db.ExecContext(ctx, `DELETE FROM garden_plantings WHERE plant_id = ?`, plantID)
	if err != nil {
		return false, fmt.Errorf("failed to delete garden planting for %s: %w", plantID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		d.tracker.Notify(TableGardenPlantings)
	}
	return n > 0, nil
}

func (d *gardenPlantingDAO) water(ctx context.Context, plantID string, now time.Time) error {
	result, err := d.db.ExecContext(ctx,
		`UPDATE garden_plantings SET last_watering_date = ? WHERE plant_id = ?`,
		now, plantID,
	)
	if err != nil {
		return fmt.Errorf("failed to water garden planting for %s: %w", plantID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotPlanted
	}
	d.tracker.Notify(TableGardenPlantings)
	return nil
}

func (d *gardenPlantingDAO) isPlanted(ctx context.Context, plantID string) (bool, error) {
	var planted bool
	err := d.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM garden_plantings WHERE plant_id = ? LIMIT 1)`,
		plantID,
	).Scan(&planted)
	if err != nil {
		return false, fmt.Errorf("failed to check planting for %s: %w", plantID, err)
	}
	return planted, nil
}

func (d *gardenPlantingDAO) getByPlantID(ctx context.Context, plantID string) (gardenPlantingRow, error) {
	row, err := scanGardenPlantingRow(d.db.QueryRowContext(ctx,
		`SELECT `+gardenPlantingColumns+` FROM garden_plantings g WHERE g.plant_id = ?`,
		plantID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return gardenPlantingRow{}, models.ErrNotPlanted
	}
	if err != nil {
		return gardenPlantingRow{}, fmt.Errorf("failed to get garden planting for %s: %w", plantID, err)
	}
	return row, nil
}

func (d *gardenPlantingDAO) plantedGardens(ctx context.Context) ([]plantedGardenRow, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+plantColumns+`, `+gardenPlantingColumns+`
		FROM plants p
		INNER JOIN garden_plantings g ON g.plant_id = p.id
		ORDER BY g.plant_date, p.name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get planted gardens: %w", err)
	}
	defer rows.Close()

	var result []plantedGardenRow
	for rows.Next() {
		row, err := scanPlantedGardenRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planted garden: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
