package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/sprout/internal/models"
)

// plantDAO issues the SQL for the plants table.
// No mapping, no events, no validation - just database operations
type plantDAO struct {
	db      *sql.DB
	tracker *InvalidationTracker
}

func (d *plantDAO) queryPlants(ctx context.Context, query string, args ...any) ([]plantRow, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []plantRow
	for rows.Next() {
		row, err := scanPlantRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (d *plantDAO) getAll(ctx context.Context) ([]plantRow, error) {
	rows, err := d.queryPlants(ctx, `SELECT `+plantColumns+` FROM plants p ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("failed to get plants: %w", err)
	}
	return rows, nil
}

func (d *plantDAO) getByGrowZone(ctx context.Context, zone int) ([]plantRow, error) {
	rows, err := d.queryPlants(ctx,
		`SELECT `+plantColumns+` FROM plants p WHERE p.grow_zone_number = ? ORDER BY p.name`,
		zone,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get plants for grow zone %d: %w", zone, err)
	}
	return rows, nil
}

func (d *plantDAO) getByID(ctx context.Context, id string) (plantRow, error) {
	row, err := scanPlantRow(d.db.QueryRowContext(ctx,
		`SELECT `+plantColumns+` FROM plants p WHERE p.id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return plantRow{}, models.ErrPlantNotFound
	}
	if err != nil {
		return plantRow{}, fmt.Errorf("failed to get plant %s: %w", id, err)
	}
	return row, nil
}

func (d *plantDAO) count(ctx context.Context) (int, error) {
	var count int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count plants: %w", err)
	}
	return count, nil
}

// insertAll inserts rows in one transaction. Existing ids are left untouched.
func (d *plantDAO) insertAll(ctx context.Context, rows []plantRow) (int, error) {
	inserted := 0
	err := withTx(ctx, d.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO plants (id, name, description, grow_zone_number, watering_interval, image_url)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare plant insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			result, err := stmt.ExecContext(ctx,
				row.ID, row.Name, row.Description, row.GrowZoneNumber, row.WateringInterval, row.ImageURL,
			)
			if err != nil {
				return fmt.Errorf("failed to insert plant %s: %w", row.ID, err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			inserted += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		d.tracker.Notify(TablePlants)
	}
	return inserted, nil
}
